// Package layout is the single source of truth for the generated form's
// geometry: every row/column constant, fixed identity-cell address, label
// string, column width, and marker color. Both the form generator and the
// score importer read from here, so a layout change cannot desynchronize
// the two sides.
package layout

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// Source template columns (1-based). A template row is blank when all
// eight are empty after trimming.
const (
	TplColTitle       = 1
	TplColCompetency  = 2
	TplColDescription = 3
	TplColRating1     = 4 // ratings for scores 1..5 occupy columns 4..8
	TplColCount       = 8

	// TplFirstDataRow is the first template row holding a KPI definition;
	// row 1 is the template's own header.
	TplFirstDataRow = 2
)

// Output sheet columns (1-based).
const (
	ColLabel       = 1 // A: KPI title / legend ordinals / identity labels
	ColDescription = 2 // B: descriptions / identity values
	ColScore       = 3 // C: score input / legend score column
	ColSpacer      = 4 // D
	ColNotes       = 5 // E
	ColGoals       = 6 // F
)

// Column widths, in the order ColLabel..ColGoals.
var ColWidths = [...]float64{30, 50, 12, 3, 30, 30}

// Fixed rows of the output sheet.
const (
	RowTitle        = 1
	RowInstructions = 2

	RowJobTitle    = 4
	RowFiscalYear  = 5
	RowPeriod      = 6
	RowCompletedBy = 7
	RowFirstName   = 8
	RowLastName    = 9

	RowSectionA   = 11
	RowFirstBlock = 12
)

// Block geometry: a KPI block is 8 rows (header, input, legend title, five
// legend rows) followed by 1 spacer row.
const (
	BlockRows   = 8
	BlockStride = 9
)

// GridMaxRow bounds the pre-filled blank canvas; generated sheets never
// reach it with realistic templates.
const GridMaxRow = 200

// Colors (RGB, no alpha). The marker fill flags a cell as human-editable;
// the importer treats marker-filled numeric cells as score inputs.
const (
	MarkerFill      = "FFFF00"
	LegendFillLight = "F2F2F2"
	LegendFillDark  = "D9D9D9"
	BorderBlack     = "000000"
	BorderWhite     = "FFFFFF"
)

// Sheet names with special meaning in the source workbook.
const (
	SheetDashboard  = "Dashboard"
	SheetSoftSkills = "Soft Skills KPI"
)

// MaxSheetTitle is the format's limit on sheet name length.
const MaxSheetTitle = 31

// Labels written by the generator.
const (
	LabelKPIPrefix   = "KPI - "
	LabelDescription = "Description of Work"
	LabelScore       = "Score (1-5)"
	LabelNotes       = "Notes"
	LabelGoals       = "Goals"
	LabelRatingScale = "Rating Scale (1-5)"

	LabelJobTitle    = "Job Title"
	LabelFiscalYear  = "Fiscal Year"
	LabelPeriod      = "Period"
	LabelCompletedBy = "Completed By"
	LabelFirstName   = "First Name"
	LabelLastName    = "Last Name"

	LabelSectionA = "Section A: Key Performance Indicators (KPIs)"
	LabelSectionB = "Section B: Soft Skills"
)

// Ordinals are the fixed legend labels paired with the per-KPI rating
// descriptions for scores 1..5.
var Ordinals = [5]string{
	"1 - Unsatisfactory",
	"2 - Needs Improvement",
	"3 - Meets Expectations",
	"4 - Exceeds Expectations",
	"5 - Exemplary",
}

// Score range accepted in the score input cell and by the importer.
const (
	ScoreMin = 1
	ScoreMax = 5
)

// CompletedByChoices constrains the Completed By identity cell.
var CompletedByChoices = []string{"Employee", "Coordinator"}

// Cell returns the A1-style name for a 1-based column/row pair.
func Cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// IdentityCell returns the address the importer reads an identity value
// from. Identity values are written merged across ColDescription:ColScore;
// the merged region is anchored at ColDescription.
func IdentityCell(row int) string {
	return Cell(ColDescription, row)
}

// MatchesMarker reports whether a fill color read back from a cell style is
// the marker fill. Colors round-trip with or without an alpha prefix
// depending on the writer, so the comparison is a case-insensitive suffix
// match.
func MatchesMarker(color string) bool {
	c := strings.ToUpper(strings.TrimPrefix(color, "#"))
	return strings.HasSuffix(c, MarkerFill)
}

// Period is the review period a form covers.
type Period string

const (
	PeriodMid Period = "mid"
	PeriodEnd Period = "end"
)

// ParsePeriod maps a request flag to a Period; anything unrecognized
// defaults to mid-year.
func ParsePeriod(s string) Period {
	if strings.EqualFold(strings.TrimSpace(s), string(PeriodEnd)) {
		return PeriodEnd
	}
	return PeriodMid
}

// Code returns the short file-name prefix for the period.
func (p Period) Code() string {
	if p == PeriodEnd {
		return "EOY"
	}
	return "MOY"
}

// Label returns the human-readable period written to the identity block.
func (p Period) Label() string {
	if p == PeriodEnd {
		return "End of Year"
	}
	return "Middle of Year"
}

// TitlePrefix returns the sheet-title prefix for the period.
func (p Period) TitlePrefix() string {
	if p == PeriodEnd {
		return "End-of-Year Review - "
	}
	return "Mid-Year Review - "
}
