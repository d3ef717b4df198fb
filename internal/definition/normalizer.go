package definition

import (
	"strings"

	"github.com/ginjaninja78/stormworks-definitions-converter/internal/xmltree"
)

// RootElement is the element every definition file is rooted at.
const RootElement = "definition"

// TagSeparator splits the raw tags attribute.
const TagSeparator = ","

// =============================================================================
// FIELD RULES
// =============================================================================

// scalarField maps one output field to an attribute path under the root.
type scalarField struct {
	path   []string
	target func(d *Definition) **string
}

var scalarFields = []scalarField{
	{path: []string{xmltree.Attr("name")}, target: func(d *Definition) **string { return &d.Name }},
	{path: []string{"tooltip_properties", xmltree.Attr("description")}, target: func(d *Definition) **string { return &d.Description }},
	{path: []string{"tooltip_properties", xmltree.Attr("short_description")}, target: func(d *Definition) **string { return &d.ShortDescription }},
	{path: []string{xmltree.Attr("type")}, target: func(d *Definition) **string { return &d.Type }},
	{path: []string{xmltree.Attr("mass")}, target: func(d *Definition) **string { return &d.Mass }},
	{path: []string{xmltree.Attr("value")}, target: func(d *Definition) **string { return &d.Value }},
	{path: []string{xmltree.Attr("flags")}, target: func(d *Definition) **string { return &d.Flags }},
}

var tagsPath = []string{xmltree.Attr("tags")}

// geometryField maps one geometry field to an element path. Repeated
// elements (surfaces, voxels) keep their sequence even with one item;
// vector elements are unwrapped when they occur once.
type geometryField struct {
	path   []string
	unwrap bool
	target func(g *Geometry) **xmltree.Node
}

var geometryFields = []geometryField{
	{path: []string{"surfaces", "surface"}, target: func(g *Geometry) **xmltree.Node { return &g.Surfaces }},
	{path: []string{"buoyancy_surfaces", "surface"}, target: func(g *Geometry) **xmltree.Node { return &g.BuoyancySurfaces }},
	{path: []string{"voxels", "voxel"}, target: func(g *Geometry) **xmltree.Node { return &g.Voxels }},
	{path: []string{"voxel_min"}, unwrap: true, target: func(g *Geometry) **xmltree.Node { return &g.VoxelMin }},
	{path: []string{"voxel_max"}, unwrap: true, target: func(g *Geometry) **xmltree.Node { return &g.VoxelMax }},
	{path: []string{"voxel_physics_min"}, unwrap: true, target: func(g *Geometry) **xmltree.Node { return &g.VoxelPhysMin }},
	{path: []string{"voxel_physics_max"}, unwrap: true, target: func(g *Geometry) **xmltree.Node { return &g.VoxelPhysMax }},
	{path: []string{"bb_physics_min"}, unwrap: true, target: func(g *Geometry) **xmltree.Node { return &g.BBPhysMin }},
	{path: []string{"bb_physics_max"}, unwrap: true, target: func(g *Geometry) **xmltree.Node { return &g.BBPhysMax }},
	{path: []string{"compartment_sample_pos"}, unwrap: true, target: func(g *Geometry) **xmltree.Node { return &g.CompartmentSamplePos }},
	{path: []string{"constraint_pos_parent"}, unwrap: true, target: func(g *Geometry) **xmltree.Node { return &g.ConstraintPosParent }},
	{path: []string{"constraint_pos_child"}, unwrap: true, target: func(g *Geometry) **xmltree.Node { return &g.ConstraintPosChild }},
}

// =============================================================================
// NORMALIZER
// =============================================================================

// Normalizer projects parsed definition trees onto Definition records.
// The zero value uses DefaultVariant.
type Normalizer struct {
	Variant Variant
}

// NewNormalizer returns a Normalizer for the given variant.
func NewNormalizer(variant Variant) Normalizer {
	return Normalizer{Variant: variant}
}

// Normalize builds the record for one document tree as returned by
// xmltree.Parse. Missing paths degrade to absent values; Normalize never
// fails. A document whose root is not <definition> yields a record with
// every field absent.
func (n Normalizer) Normalize(doc *xmltree.Node) Definition {
	variant := n.Variant
	if variant == "" {
		variant = DefaultVariant
	}

	root, _ := xmltree.Lookup(doc, RootElement)

	var def Definition
	for _, field := range scalarFields {
		if s, ok := xmltree.LookupScalar(root, field.path...); ok {
			*field.target(&def) = &s
		}
	}

	raw, ok := xmltree.LookupScalar(root, tagsPath...)
	def.Tags = SplitTags(raw, ok, variant)

	if variant == VariantExtended {
		geometry := &Geometry{}
		for _, field := range geometryFields {
			node, ok := xmltree.Lookup(root, field.path...)
			if !ok {
				continue
			}
			if field.unwrap {
				node = xmltree.Unwrap(node)
			}
			*field.target(geometry) = node
		}
		def.Geometry = geometry
	}

	return def
}

// SplitTags splits the raw tags attribute on TagSeparator. Segments are
// kept literally: "a,,b" gives ["a", "", "b"] and " a" keeps its space.
// A missing or empty source gives an empty, non-nil slice for the extended
// variant and nil (JSON null) for the minimal variant.
func SplitTags(raw string, present bool, variant Variant) []string {
	if !present || raw == "" {
		if variant == VariantMinimal {
			return nil
		}
		return []string{}
	}
	return strings.Split(raw, TagSeparator)
}
