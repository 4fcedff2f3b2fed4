package form

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"reviewforms/internal/layout"
)

// writeBlocks lays out one fixed-height KPI block per non-blank template
// row, starting at startRow, and returns the cursor row after the last
// block. Blank rows emit nothing and do not advance the cursor. Block
// height is constant regardless of content length; text wraps within the
// fixed column widths.
func writeBlocks(f *excelize.File, sheet string, rows []TemplateRow, startRow int, pal *palette) (int, error) {
	cursor := startRow
	for i, row := range rows {
		if row.Blank() {
			continue
		}
		if err := writeBlock(f, sheet, row, cursor, pal); err != nil {
			return 0, fmt.Errorf("block for template row %d: %w", i+layout.TplFirstDataRow, err)
		}
		cursor += layout.BlockStride
	}
	return cursor, nil
}

// writeBlock emits a single 8-row block at top:
//
//	top+0  header sub-row (bold labels)
//	top+1  input sub-row (competency, description, score/notes/goals inputs)
//	top+2  legend title, merged across the main block
//	top+3..top+7  five legend rows pairing ordinals with rating texts
func writeBlock(f *excelize.File, sheet string, row TemplateRow, top int, pal *palette) error {
	headerRow := top
	inputRow := top + 1
	legendTitleRow := top + 2
	bottom := top + layout.BlockRows - 1

	type cell struct {
		col, row int
		value    string
		spec     cellSpec
	}

	mainBox := func(col, r int) borders {
		b := outlineBox(col, r, layout.ColLabel, top, layout.ColScore, bottom)
		if r == legendTitleRow {
			// Separator above the legend, plus forced side edges on every
			// cell of the merged title row: merged-cell borders render
			// unreliably unless set on each underlying cell.
			b.top = edgeMedium
			b.left = edgeMedium
			if col == layout.ColScore {
				b.right = edgeMedium
			}
		}
		return b
	}
	notesBox := func(col, r int) borders {
		return outlineBox(col, r, layout.ColNotes, top, layout.ColGoals, inputRow)
	}

	cells := []cell{
		{layout.ColLabel, headerRow, layout.LabelKPIPrefix + row.Title,
			cellSpec{font: fontBold, box: mainBox(layout.ColLabel, headerRow)}},
		{layout.ColDescription, headerRow, layout.LabelDescription,
			cellSpec{font: fontBold, box: mainBox(layout.ColDescription, headerRow)}},
		{layout.ColScore, headerRow, layout.LabelScore,
			cellSpec{font: fontBold, box: mainBox(layout.ColScore, headerRow)}},
		{layout.ColNotes, headerRow, layout.LabelNotes,
			cellSpec{font: fontBold, box: notesBox(layout.ColNotes, headerRow)}},
		{layout.ColGoals, headerRow, layout.LabelGoals,
			cellSpec{font: fontBold, box: notesBox(layout.ColGoals, headerRow)}},

		{layout.ColLabel, inputRow, row.Competency,
			cellSpec{box: mainBox(layout.ColLabel, inputRow)}},
		{layout.ColDescription, inputRow, row.Description,
			cellSpec{box: mainBox(layout.ColDescription, inputRow)}},
		{layout.ColScore, inputRow, "",
			cellSpec{font: fontBold, fill: fillMarker, box: mainBox(layout.ColScore, inputRow)}},
		{layout.ColNotes, inputRow, "",
			cellSpec{fill: fillMarker, box: notesBox(layout.ColNotes, inputRow)}},
		{layout.ColGoals, inputRow, "",
			cellSpec{fill: fillMarker, box: notesBox(layout.ColGoals, inputRow)}},
	}

	for col := layout.ColLabel; col <= layout.ColScore; col++ {
		value := ""
		if col == layout.ColLabel {
			value = layout.LabelRatingScale
		}
		cells = append(cells, cell{col, legendTitleRow, value,
			cellSpec{font: fontBold, align: alignCenter, box: mainBox(col, legendTitleRow)}})
	}

	for i := 0; i < 5; i++ {
		r := legendTitleRow + 1 + i
		fill := fillLegendLight
		if i%2 == 1 {
			fill = fillLegendDark
		}
		cells = append(cells,
			cell{layout.ColLabel, r, layout.Ordinals[i],
				cellSpec{fill: fill, box: mainBox(layout.ColLabel, r)}},
			cell{layout.ColDescription, r, row.Ratings[i],
				cellSpec{fill: fill, box: mainBox(layout.ColDescription, r)}},
			cell{layout.ColScore, r, "",
				cellSpec{fill: fill, box: mainBox(layout.ColScore, r)}},
		)
	}

	for _, c := range cells {
		if err := pal.apply(sheet, c.col, c.row, c.spec); err != nil {
			return fmt.Errorf("style %s: %w", layout.Cell(c.col, c.row), err)
		}
		if c.value == "" {
			continue
		}
		if err := f.SetCellStr(sheet, layout.Cell(c.col, c.row), c.value); err != nil {
			return fmt.Errorf("set %s: %w", layout.Cell(c.col, c.row), err)
		}
	}

	if err := f.MergeCell(sheet,
		layout.Cell(layout.ColLabel, legendTitleRow),
		layout.Cell(layout.ColScore, legendTitleRow)); err != nil {
		return fmt.Errorf("merge legend title: %w", err)
	}

	if err := addScoreValidation(f, sheet, layout.Cell(layout.ColScore, inputRow)); err != nil {
		return fmt.Errorf("score validation: %w", err)
	}
	return nil
}

// addScoreValidation constrains a score input cell to whole numbers in the
// accepted range, with a prompt and a stop-style error message.
func addScoreValidation(f *excelize.File, sheet, cell string) error {
	dv := excelize.NewDataValidation(true)
	dv.Sqref = cell + ":" + cell
	if err := dv.SetRange(layout.ScoreMin, layout.ScoreMax,
		excelize.DataValidationTypeWhole, excelize.DataValidationOperatorBetween); err != nil {
		return err
	}
	dv.SetInput("Score",
		fmt.Sprintf("Enter a whole number from %d to %d.", layout.ScoreMin, layout.ScoreMax))
	dv.SetError(excelize.DataValidationErrorStyleStop, "Invalid score",
		fmt.Sprintf("Scores must be whole numbers from %d to %d.", layout.ScoreMin, layout.ScoreMax))
	return f.AddDataValidation(sheet, dv)
}
