package form

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"reviewforms/internal/layout"
)

// TemplateRow is one KPI definition read from a source sheet: title,
// competency, description, and the five rating-scale descriptions for
// scores 1..5. Rows are read positionally and never modified after reading.
type TemplateRow struct {
	Title       string
	Competency  string
	Description string
	Ratings     [5]string
}

// Blank reports whether every considered column of the row was empty after
// trimming. Blank rows produce no output block.
func (r TemplateRow) Blank() bool {
	if r.Title != "" || r.Competency != "" || r.Description != "" {
		return false
	}
	for _, s := range r.Ratings {
		if s != "" {
			return false
		}
	}
	return true
}

// ReadRows reads the ordered KPI definitions from a source sheet, starting
// below the template's header row. Blank rows are kept in place so the
// layout algorithm owns the decision to skip them.
func ReadRows(f *excelize.File, sheet string) ([]TemplateRow, error) {
	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %q: %w", sheet, err)
	}

	var rows []TemplateRow
	for i := layout.TplFirstDataRow - 1; i < len(raw); i++ {
		cells := raw[i]
		at := func(col int) string {
			if col-1 < len(cells) {
				return strings.TrimSpace(cells[col-1])
			}
			return ""
		}

		row := TemplateRow{
			Title:       at(layout.TplColTitle),
			Competency:  at(layout.TplColCompetency),
			Description: at(layout.TplColDescription),
		}
		for j := 0; j < 5; j++ {
			row.Ratings[j] = at(layout.TplColRating1 + j)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
