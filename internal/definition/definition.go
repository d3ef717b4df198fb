// =============================================================================
// Stormworks Definitions Converter - Definition Record
// =============================================================================
//
// This package holds the flat Definition record written to output.json and
// the normalizer that projects a parsed XML tree onto it.
//
// SCHEMA VARIANTS:
//   minimal  : name, description, shortDescription, type, mass, value,
//              flags, tags
//   extended : minimal + surfaces, buoyancySurfaces, voxels, voxelMin,
//              voxelMax, voxelPhysMin, voxelPhysMax, bbPhysMin, bbPhysMax,
//              compartmentSamplePos, constraintPosParent, constraintPosChild
//
// ABSENT VALUES:
//   Every scalar field is a *string and every geometry field a
//   *xmltree.Node, so a missing source path marshals as JSON null.
//   tags is [] in the extended variant and null in the minimal variant
//   when the source string is missing or empty.
//
// =============================================================================

package definition

import (
	"fmt"

	"github.com/ginjaninja78/stormworks-definitions-converter/internal/xmltree"
)

// =============================================================================
// SCHEMA VARIANT
// =============================================================================

// Variant selects the field set of a Definition. One variant applies to a
// whole run.
type Variant string

const (
	// VariantMinimal emits the scalar and tag fields only.
	VariantMinimal Variant = "minimal"

	// VariantExtended also emits the geometry fields.
	VariantExtended Variant = "extended"
)

// DefaultVariant is the schema used when none is configured.
const DefaultVariant = VariantExtended

// ParseVariant validates a variant name from configuration or flags.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantMinimal, VariantExtended:
		return Variant(s), nil
	case "":
		return DefaultVariant, nil
	default:
		return "", fmt.Errorf("unknown schema variant %q (want %q or %q)", s, VariantMinimal, VariantExtended)
	}
}

// =============================================================================
// RECORD STRUCTURES
// =============================================================================

// Definition is one game object's record. Field order matches the JSON
// output.
type Definition struct {
	Name             *string  `json:"name"`
	Description      *string  `json:"description"`
	ShortDescription *string  `json:"shortDescription"`
	Type             *string  `json:"type"`
	Mass             *string  `json:"mass"`
	Value            *string  `json:"value"`
	Flags            *string  `json:"flags"`
	Tags             []string `json:"tags"`

	// Geometry is nil for the minimal variant, which drops its fields from
	// the JSON output entirely.
	*Geometry
}

// Geometry carries the extended variant's structural fields. Values are
// passed through from the XML tree without interpretation.
type Geometry struct {
	Surfaces             *xmltree.Node `json:"surfaces"`
	BuoyancySurfaces     *xmltree.Node `json:"buoyancySurfaces"`
	Voxels               *xmltree.Node `json:"voxels"`
	VoxelMin             *xmltree.Node `json:"voxelMin"`
	VoxelMax             *xmltree.Node `json:"voxelMax"`
	VoxelPhysMin         *xmltree.Node `json:"voxelPhysMin"`
	VoxelPhysMax         *xmltree.Node `json:"voxelPhysMax"`
	BBPhysMin            *xmltree.Node `json:"bbPhysMin"`
	BBPhysMax            *xmltree.Node `json:"bbPhysMax"`
	CompartmentSamplePos *xmltree.Node `json:"compartmentSamplePos"`
	ConstraintPosParent  *xmltree.Node `json:"constraintPosParent"`
	ConstraintPosChild   *xmltree.Node `json:"constraintPosChild"`
}
