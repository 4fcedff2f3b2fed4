package score

import (
	"reviewforms/internal/textutil"
)

// Combined is one summary row per distinct identity: identity fields plus
// one score slot per role.
type Combined struct {
	JobTitle         string   `json:"jobTitle"`
	FiscalYear       string   `json:"fiscalYear"`
	Period           string   `json:"period"`
	FirstName        string   `json:"firstName"`
	LastName         string   `json:"lastName"`
	EmployeeScore    *float64 `json:"employeeScore"`
	CoordinatorScore *float64 `json:"coordinatorScore"`
}

// Merge groups extracted rows under a key built from the case-folded,
// whitespace-collapsed first+last name and combines each group into one
// row. Identity fields take the first non-empty value seen; score slots
// take the last value seen for the slot's role, so upload order decides
// ties. Unknown-role rows fill neither slot. Output order is the insertion
// order of each key's first appearance.
//
// The key deliberately ignores job title, fiscal year, and period, so
// common names across departments collide; that matches the producing
// system and is a known limitation.
func Merge(rows []Row) []Combined {
	index := make(map[string]int)
	var out []Combined

	for _, r := range rows {
		key := textutil.FoldKey(r.FirstName) + "\x00" + textutil.FoldKey(r.LastName)
		i, ok := index[key]
		if !ok {
			i = len(out)
			out = append(out, Combined{})
			index[key] = i
		}
		c := &out[i]

		setIfEmpty(&c.JobTitle, r.JobTitle)
		setIfEmpty(&c.FiscalYear, r.FiscalYear)
		setIfEmpty(&c.Period, r.Period)
		setIfEmpty(&c.FirstName, r.FirstName)
		setIfEmpty(&c.LastName, r.LastName)

		switch r.Role {
		case RoleEmployee:
			c.EmployeeScore = r.Percent
		case RoleCoordinator:
			c.CoordinatorScore = r.Percent
		}
	}
	return out
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
	}
}
