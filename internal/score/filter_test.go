package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_EmptyExpressionKeepsEverything(t *testing.T) {
	rows := []Combined{{FirstName: "John"}, {FirstName: "Jane"}}

	out, err := Filter(rows, "")
	require.NoError(t, err)
	assert.Equal(t, rows, out)

	out, err = Filter(rows, "   ")
	require.NoError(t, err)
	assert.Equal(t, rows, out)
}

func TestFilter_ByScore(t *testing.T) {
	rows := []Combined{
		{FirstName: "John", LastName: "Doe", EmployeeScore: pct(80)},
		{FirstName: "Jane", LastName: "Roe", EmployeeScore: pct(40)},
		{FirstName: "Jim", LastName: "Poe"},
	}

	out, err := Filter(rows, "EmployeeScore >= 50")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "John", out[0].FirstName)
}

func TestFilter_MissingScoreGuard(t *testing.T) {
	rows := []Combined{
		{FirstName: "John", EmployeeScore: pct(80)},
		{FirstName: "Jim"},
	}

	out, err := Filter(rows, "HasEmployeeScore")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "John", out[0].FirstName)
}

func TestFilter_ByIdentityField(t *testing.T) {
	rows := []Combined{
		{FirstName: "John", JobTitle: "Engineering"},
		{FirstName: "Jane", JobTitle: "Sales"},
	}

	out, err := Filter(rows, `JobTitle == "Sales"`)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Jane", out[0].FirstName)
}

func TestFilter_CompileError(t *testing.T) {
	_, err := Filter([]Combined{{}}, "EmployeeScore >>> 1")
	assert.Error(t, err)
}

func TestFilter_NonBooleanResultDropsRow(t *testing.T) {
	out, err := Filter([]Combined{{FirstName: "John"}}, `FirstName`)
	require.NoError(t, err)
	assert.Empty(t, out)
}
