// Package score imports completed review workbooks: it reads identity
// fields back from the fixed addresses the generator wrote them to,
// discovers score inputs by their marker fill, aggregates them into a
// percentage, and merges rows from a batch of files by identity.
package score

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"reviewforms/internal/layout"
	"reviewforms/internal/textutil"
)

// Role says who filled out a completed workbook.
type Role string

const (
	RoleEmployee    Role = "Employee"
	RoleCoordinator Role = "Coordinator"
	RoleUnknown     Role = "Unknown"
)

// ParseRole normalizes a Completed By value. Matching is case-insensitive
// and exact; anything else is Unknown.
func ParseRole(s string) Role {
	switch {
	case strings.EqualFold(strings.TrimSpace(s), string(RoleEmployee)):
		return RoleEmployee
	case strings.EqualFold(strings.TrimSpace(s), string(RoleCoordinator)):
		return RoleCoordinator
	default:
		return RoleUnknown
	}
}

// Row is the extraction result for one completed workbook: the identity
// fields plus the aggregate score. Average and Percent are nil when the
// file had no qualifying score cells; that is a valid degraded result, not
// an error.
type Row struct {
	JobTitle   string
	FiscalYear string
	Period     string
	FirstName  string
	LastName   string
	Role       Role
	Average    *float64
	Percent    *float64
}

// ExtractFile reads one completed workbook. Identity fields come from the
// layout descriptor's fixed addresses; score cells are found by scanning
// every cell of the form sheet for the marker fill plus a numeric value in
// the accepted range.
func ExtractFile(r io.Reader) (Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Row{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return Row{}, fmt.Errorf("workbook has no sheets")
	}

	identity := func(row int) string {
		v, _ := f.GetCellValue(sheet, layout.IdentityCell(row))
		return strings.TrimSpace(v)
	}
	out := Row{
		JobTitle:   identity(layout.RowJobTitle),
		FiscalYear: identity(layout.RowFiscalYear),
		Period:     identity(layout.RowPeriod),
		FirstName:  identity(layout.RowFirstName),
		LastName:   identity(layout.RowLastName),
		Role:       ParseRole(identity(layout.RowCompletedBy)),
	}

	scores, err := collectScores(f, sheet)
	if err != nil {
		return Row{}, err
	}
	if len(scores) > 0 {
		var sum float64
		for _, s := range scores {
			sum += s
		}
		avg := sum / float64(len(scores))
		pct := avg / layout.ScoreMax * 100
		out.Average = &avg
		out.Percent = &pct
	}
	return out, nil
}

// collectScores returns the values of all score cells on the sheet: cells
// whose solid-pattern fill matches the marker color and whose value parses
// to a number within the accepted range. Out-of-range values are excluded
// even when they carry the marker fill.
func collectScores(f *excelize.File, sheet string) ([]float64, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("scan sheet %q: %w", sheet, err)
	}

	var scores []float64
	for rowIdx, row := range rows {
		for colIdx, val := range row {
			v, ok := textutil.ParseNumber(val)
			if !ok || v < layout.ScoreMin || v > layout.ScoreMax {
				continue
			}
			cell := layout.Cell(colIdx+1, rowIdx+1)
			marked, err := hasMarkerFill(f, sheet, cell)
			if err != nil {
				return nil, err
			}
			if marked {
				scores = append(scores, v)
			}
		}
	}
	return scores, nil
}

// hasMarkerFill reports whether a cell's background is a solid pattern in
// the marker color.
func hasMarkerFill(f *excelize.File, sheet, cell string) (bool, error) {
	styleID, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		return false, fmt.Errorf("read style of %s: %w", cell, err)
	}
	style, err := f.GetStyle(styleID)
	if err != nil {
		return false, fmt.Errorf("resolve style of %s: %w", cell, err)
	}
	if style.Fill.Type != "pattern" || style.Fill.Pattern != 1 || len(style.Fill.Color) == 0 {
		return false, nil
	}
	return layout.MatchesMarker(style.Fill.Color[0]), nil
}
