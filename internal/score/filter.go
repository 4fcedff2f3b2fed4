package score

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
)

// Filter keeps the combined rows for which the expression evaluates to
// true. The expression sees the row's fields by name; score slots are
// exposed as numbers with companion Has* booleans so expressions do not
// have to deal with missing values. An empty expression keeps every row.
func Filter(rows []Combined, expression string) ([]Combined, error) {
	if strings.TrimSpace(expression) == "" {
		return rows, nil
	}

	prog, err := expr.Compile(expression, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("compile filter expression: %w", err)
	}

	var out []Combined
	for _, r := range rows {
		v, err := expr.Run(prog, filterEnv(r))
		if err != nil {
			return nil, fmt.Errorf("evaluate filter for %s %s: %w", r.FirstName, r.LastName, err)
		}
		if keep, ok := v.(bool); ok && keep {
			out = append(out, r)
		}
	}
	return out, nil
}

func filterEnv(r Combined) map[string]any {
	env := map[string]any{
		"JobTitle":            r.JobTitle,
		"FiscalYear":          r.FiscalYear,
		"Period":              r.Period,
		"FirstName":           r.FirstName,
		"LastName":            r.LastName,
		"EmployeeScore":       0.0,
		"CoordinatorScore":    0.0,
		"HasEmployeeScore":    r.EmployeeScore != nil,
		"HasCoordinatorScore": r.CoordinatorScore != nil,
	}
	if r.EmployeeScore != nil {
		env["EmployeeScore"] = *r.EmployeeScore
	}
	if r.CoordinatorScore != nil {
		env["CoordinatorScore"] = *r.CoordinatorScore
	}
	return env
}
