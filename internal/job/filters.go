package job

import "strings"

// Filters narrows a job search. Zero values mean "no filter".
type Filters struct {
	Search    string   `json:"search,omitempty" mapstructure:"search"`
	Location  string   `json:"location,omitempty" mapstructure:"location"`
	WorkMode  WorkMode `json:"work_mode,omitempty" mapstructure:"work-mode"`
	Level     Level    `json:"level,omitempty" mapstructure:"level"`
	SalaryMin int      `json:"salary_min,omitempty" mapstructure:"salary-min"`
	SalaryMax int      `json:"salary_max,omitempty" mapstructure:"salary-max"`
	Company   string   `json:"company,omitempty" mapstructure:"company"`
	Page      int      `json:"page,omitempty" mapstructure:"page"`
	Limit     int      `json:"limit,omitempty" mapstructure:"limit"`
}

// Match reports whether the job satisfies every set filter. The same
// predicate is applied to provider and synthetic results.
func (f *Filters) Match(j *Job) bool {
	if f == nil {
		return true
	}

	if f.Search != "" && !containsAny(j.FullText(), f.Search) {
		return false
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(j.Location), strings.ToLower(f.Location)) {
		return false
	}
	if f.WorkMode != "" && j.WorkMode != f.WorkMode {
		return false
	}
	if f.Level != "" && j.Level != f.Level {
		return false
	}
	if f.Company != "" && !strings.Contains(strings.ToLower(j.Company), strings.ToLower(f.Company)) {
		return false
	}

	if f.SalaryMin > 0 || f.SalaryMax > 0 {
		jobMin, jobMax, ok := ParseSalaryRange(j.SalaryRange)
		if ok {
			if f.SalaryMin > 0 && jobMax < f.SalaryMin {
				return false
			}
			if f.SalaryMax > 0 && jobMin > f.SalaryMax {
				return false
			}
		}
	}

	return true
}

// containsAny checks if text contains any of the comma-separated terms.
func containsAny(text, terms string) bool {
	for _, term := range strings.Split(terms, ",") {
		term = strings.TrimSpace(strings.ToLower(term))
		if term != "" && strings.Contains(text, term) {
			return true
		}
	}
	return false
}
