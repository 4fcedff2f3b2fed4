package score

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"reviewforms/internal/form"
	"reviewforms/internal/layout"
)

// generateForm produces a completed-form starting point through the real
// generator, so extraction is tested against the layout actually written.
func generateForm(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Engineering KPI"))
	values := []string{"Communication", "Teamwork", "Responds promptly",
		"rarely", "sometimes", "usually", "often", "always"}
	for i, v := range values {
		require.NoError(t, f.SetCellStr("Engineering KPI", layout.Cell(i+1, 2), v))
	}
	_, err := f.NewSheet(layout.SheetSoftSkills)
	require.NoError(t, err)
	soft := []string{"Collaboration", "Culture", "Helps teammates",
		"never", "seldom", "sometimes", "mostly", "consistently"}
	for i, v := range soft {
		require.NoError(t, f.SetCellStr(layout.SheetSoftSkills, layout.Cell(i+1, 2), v))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	files, err := form.NewGenerator(form.WithFiscalYear("FY2025")).Generate(buf)
	require.NoError(t, err)
	require.Len(t, files, 1)
	return files[0].Data
}

// fillForm opens a generated form, applies the edits, and reserializes it.
func fillForm(t *testing.T, data []byte, edit func(f *excelize.File, sheet string)) *bytes.Buffer {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	edit(f, f.GetSheetName(0))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

// The generated form has two KPI blocks: Section A at rows 12..19 (score
// input C13) and the soft-skills block at rows 22..29 (score input C23).
const (
	scoreCellA = "C13"
	scoreCellB = "C23"
)

func TestExtractFile_RoundTrip(t *testing.T) {
	data := generateForm(t)
	buf := fillForm(t, data, func(f *excelize.File, sheet string) {
		require.NoError(t, f.SetCellStr(sheet, layout.IdentityCell(layout.RowCompletedBy), "Employee"))
		require.NoError(t, f.SetCellStr(sheet, layout.IdentityCell(layout.RowFirstName), "John"))
		require.NoError(t, f.SetCellStr(sheet, layout.IdentityCell(layout.RowLastName), "Doe"))
		require.NoError(t, f.SetCellValue(sheet, scoreCellA, 4))
		require.NoError(t, f.SetCellValue(sheet, scoreCellB, 5))
	})

	row, err := ExtractFile(buf)
	require.NoError(t, err)

	assert.Equal(t, "Engineering", row.JobTitle)
	assert.Equal(t, "FY2025", row.FiscalYear)
	assert.Equal(t, "Middle of Year", row.Period)
	assert.Equal(t, "John", row.FirstName)
	assert.Equal(t, "Doe", row.LastName)
	assert.Equal(t, RoleEmployee, row.Role)

	require.NotNil(t, row.Average)
	require.NotNil(t, row.Percent)
	assert.InDelta(t, 4.5, *row.Average, 1e-9)
	assert.InDelta(t, 90.0, *row.Percent, 1e-9)
}

func TestExtractFile_OutOfRangeExcluded(t *testing.T) {
	data := generateForm(t)
	buf := fillForm(t, data, func(f *excelize.File, sheet string) {
		require.NoError(t, f.SetCellValue(sheet, scoreCellA, 4))
		// Marker-filled but outside the accepted range.
		require.NoError(t, f.SetCellValue(sheet, scoreCellB, 9))
	})

	row, err := ExtractFile(buf)
	require.NoError(t, err)
	require.NotNil(t, row.Average)
	assert.InDelta(t, 4.0, *row.Average, 1e-9)
	assert.InDelta(t, 80.0, *row.Percent, 1e-9)
}

func TestExtractFile_UnmarkedNumericIgnored(t *testing.T) {
	data := generateForm(t)
	buf := fillForm(t, data, func(f *excelize.File, sheet string) {
		require.NoError(t, f.SetCellValue(sheet, scoreCellA, 3))
		// In-range number in a cell without the marker fill.
		require.NoError(t, f.SetCellValue(sheet, "D1", 5))
	})

	row, err := ExtractFile(buf)
	require.NoError(t, err)
	require.NotNil(t, row.Average)
	assert.InDelta(t, 3.0, *row.Average, 1e-9)
}

func TestExtractFile_NoScoresYieldsNil(t *testing.T) {
	row, err := ExtractFile(bytes.NewReader(generateForm(t)))
	require.NoError(t, err)
	assert.Nil(t, row.Average, "zero qualifying cells is a valid degraded result")
	assert.Nil(t, row.Percent)
}

func TestExtractFile_NumericText(t *testing.T) {
	data := generateForm(t)
	buf := fillForm(t, data, func(f *excelize.File, sheet string) {
		require.NoError(t, f.SetCellStr(sheet, scoreCellA, " 2 "))
	})

	row, err := ExtractFile(buf)
	require.NoError(t, err)
	require.NotNil(t, row.Average)
	assert.InDelta(t, 2.0, *row.Average, 1e-9)
}

func TestExtractFile_CorruptInput(t *testing.T) {
	_, err := ExtractFile(bytes.NewReader([]byte("not a workbook")))
	assert.Error(t, err)
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"Employee", RoleEmployee},
		{"employee", RoleEmployee},
		{" COORDINATOR ", RoleCoordinator},
		{"Manager", RoleUnknown},
		{"", RoleUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseRole(tt.in), "input %q", tt.in)
	}
}
