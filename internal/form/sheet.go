package form

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"reviewforms/internal/layout"
	"reviewforms/internal/textutil"
)

const instructionsText = "Fill in the yellow cells. Scores are whole numbers from 1 to 5; use the rating scale under each KPI as a guide."

// buildSheet assembles one review form on sheet: blank canvas, column
// widths, title and instructions, the identity header block, Section A from
// the source sheet's KPI rows, and Section B from the shared soft-skills
// rows when present.
func buildSheet(out *excelize.File, sheet, srcSheet string, rows, softRows []TemplateRow, period layout.Period, fiscalYear string) error {
	pal := newPalette(out)

	if err := fillCanvas(out, sheet, pal); err != nil {
		return fmt.Errorf("prepare canvas: %w", err)
	}
	for i, w := range layout.ColWidths {
		col, _ := excelize.ColumnNumberToName(layout.ColLabel + i)
		if err := out.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("set width of column %s: %w", col, err)
		}
	}

	title := "Performance Review Form for " + srcSheet
	if err := writeStyled(out, sheet, layout.ColLabel, layout.RowTitle, title, pal, cellSpec{font: fontTitle}); err != nil {
		return err
	}
	if err := writeStyled(out, sheet, layout.ColLabel, layout.RowInstructions, instructionsText, pal, cellSpec{}); err != nil {
		return err
	}

	if err := writeIdentityBlock(out, sheet, srcSheet, period, fiscalYear, pal); err != nil {
		return fmt.Errorf("identity block: %w", err)
	}

	if err := writeStyled(out, sheet, layout.ColLabel, layout.RowSectionA, layout.LabelSectionA, pal, cellSpec{font: fontSection}); err != nil {
		return err
	}
	cursor, err := writeBlocks(out, sheet, rows, layout.RowFirstBlock, pal)
	if err != nil {
		return fmt.Errorf("section A: %w", err)
	}

	// Section B is titled even when the shared soft-skills sheet is absent;
	// only the body is omitted.
	if err := writeStyled(out, sheet, layout.ColLabel, cursor, layout.LabelSectionB, pal, cellSpec{font: fontSection}); err != nil {
		return err
	}
	if len(softRows) > 0 {
		if _, err := writeBlocks(out, sheet, softRows, cursor+1, pal); err != nil {
			return fmt.Errorf("section B: %w", err)
		}
	}
	return nil
}

// fillCanvas pre-fills the working grid with invisible borders and the
// default wrapped left/top alignment, so later styling only has to set the
// edges it cares about.
func fillCanvas(out *excelize.File, sheet string, pal *palette) error {
	id, err := pal.style(cellSpec{})
	if err != nil {
		return err
	}
	return out.SetCellStyle(sheet,
		layout.Cell(layout.ColLabel, 1),
		layout.Cell(layout.ColGoals, layout.GridMaxRow), id)
}

// writeIdentityBlock writes the ordered label/value pairs the importer later
// reads back from fixed addresses. Value cells are merged across two
// columns; blank editable values carry the marker fill.
func writeIdentityBlock(out *excelize.File, sheet, srcSheet string, period layout.Period, fiscalYear string, pal *palette) error {
	jobTitle := textutil.StripSuffixFold(srcSheet, " KPI")

	fields := []struct {
		row      int
		label    string
		value    string
		editable bool
	}{
		{layout.RowJobTitle, layout.LabelJobTitle, jobTitle, false},
		{layout.RowFiscalYear, layout.LabelFiscalYear, fiscalYear, false},
		{layout.RowPeriod, layout.LabelPeriod, period.Label(), false},
		{layout.RowCompletedBy, layout.LabelCompletedBy, "", true},
		{layout.RowFirstName, layout.LabelFirstName, "", true},
		{layout.RowLastName, layout.LabelLastName, "", true},
	}

	box := func(col, row int) borders {
		return outlineBox(col, row, layout.ColLabel, layout.RowJobTitle, layout.ColScore, layout.RowLastName)
	}

	for _, fld := range fields {
		if err := writeStyled(out, sheet, layout.ColLabel, fld.row, fld.label, pal,
			cellSpec{font: fontBold, box: box(layout.ColLabel, fld.row)}); err != nil {
			return err
		}

		valueSpec := cellSpec{box: box(layout.ColDescription, fld.row)}
		tailSpec := cellSpec{box: box(layout.ColScore, fld.row)}
		if fld.editable {
			valueSpec.fill = fillMarker
			tailSpec.fill = fillMarker
		}
		if err := writeStyled(out, sheet, layout.ColDescription, fld.row, fld.value, pal, valueSpec); err != nil {
			return err
		}
		if err := pal.apply(sheet, layout.ColScore, fld.row, tailSpec); err != nil {
			return err
		}
		if err := out.MergeCell(sheet,
			layout.Cell(layout.ColDescription, fld.row),
			layout.Cell(layout.ColScore, fld.row)); err != nil {
			return fmt.Errorf("merge value cell for %q: %w", fld.label, err)
		}
	}

	// Completed By is constrained to an enumerated choice.
	dv := excelize.NewDataValidation(true)
	cell := layout.IdentityCell(layout.RowCompletedBy)
	dv.Sqref = cell + ":" + cell
	if err := dv.SetDropList(layout.CompletedByChoices); err != nil {
		return fmt.Errorf("completed-by drop list: %w", err)
	}
	dv.SetError(excelize.DataValidationErrorStyleStop, "Invalid value", "Choose Employee or Coordinator.")
	if err := out.AddDataValidation(sheet, dv); err != nil {
		return fmt.Errorf("completed-by validation: %w", err)
	}
	return nil
}

// writeStyled styles a cell then writes its value, skipping the write for
// empty values so blank inputs stay truly blank.
func writeStyled(out *excelize.File, sheet string, col, row int, value string, pal *palette, spec cellSpec) error {
	if err := pal.apply(sheet, col, row, spec); err != nil {
		return fmt.Errorf("style %s: %w", layout.Cell(col, row), err)
	}
	if value == "" {
		return nil
	}
	if err := out.SetCellStr(sheet, layout.Cell(col, row), value); err != nil {
		return fmt.Errorf("set %s: %w", layout.Cell(col, row), err)
	}
	return nil
}
