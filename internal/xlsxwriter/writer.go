// =============================================================================
// Stormworks Definitions Converter - XLSX Export
// =============================================================================
//
// This module writes an optional spreadsheet view of the converted
// definitions, one row per definition, for browsing in a spreadsheet tool.
//
// SHEET LAYOUT:
//
//   | A    | B    | C    | D     | E     | F    | G                 | H           |
//   |------|------|------|-------|-------|------|-------------------|-------------|
//   | Name | Type | Mass | Value | Flags | Tags | Short Description | Description |
//
//   - Absent values are written as empty cells.
//   - Tags are joined with the same "," separator they were split on.
//   - Geometry fields are not exported; output.json is the full record.
//
// =============================================================================

package xlsxwriter

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/stormworks-definitions-converter/internal/definition"
)

// SheetName is the worksheet holding the definitions.
const SheetName = "Definitions"

// Headers is the first row of the sheet.
var Headers = []string{"Name", "Type", "Mass", "Value", "Flags", "Tags", "Short Description", "Description"}

// Export writes defs to a new workbook at path, replacing any existing file.
func Export(defs []definition.Definition, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	header := lo.Map(Headers, func(h string, _ int) interface{} { return h })
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(Headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", lastHeader, bold); err != nil {
		return fmt.Errorf("failed to style header row: %w", err)
	}

	for i, def := range defs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := Row(def)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// Row returns the cell values for one definition in Headers order.
func Row(def definition.Definition) []interface{} {
	return []interface{}{
		lo.FromPtr(def.Name),
		lo.FromPtr(def.Type),
		lo.FromPtr(def.Mass),
		lo.FromPtr(def.Value),
		lo.FromPtr(def.Flags),
		strings.Join(def.Tags, definition.TagSeparator),
		lo.FromPtr(def.ShortDescription),
		lo.FromPtr(def.Description),
	}
}
