package job

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// WorkMode describes where the work happens.
type WorkMode string

const (
	WorkModeRemote WorkMode = "remote"
	WorkModeHybrid WorkMode = "hybrid"
	WorkModeOnsite WorkMode = "onsite"
)

// Level is the seniority bucket of a posting or a candidate.
type Level string

const (
	LevelJunior Level = "junior"
	LevelMid    Level = "mid"
	LevelSenior Level = "senior"
	LevelLead   Level = "lead"
)

// LevelRank returns the position of a level on the junior..lead hierarchy.
// Unknown levels rank as mid.
func LevelRank(l Level) int {
	switch l {
	case LevelJunior:
		return 0
	case LevelMid:
		return 1
	case LevelSenior:
		return 2
	case LevelLead:
		return 3
	default:
		return 1
	}
}

const (
	// MaxRequirements caps the requirement list on a canonical job.
	MaxRequirements = 5
	// MaxTechnologies caps the technology list on a canonical job.
	MaxTechnologies = 8
)

// Job is the canonical, provider-agnostic posting record used throughout the
// pipeline. ID is immutable once assigned and is the cache key.
type Job struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Company          string    `json:"company"`
	CompanyLogoURL   string    `json:"company_logo_url,omitempty"`
	Location         string    `json:"location"`
	WorkMode         WorkMode  `json:"work_mode"`
	Level            Level     `json:"level"`
	SalaryRange      string    `json:"salary_range,omitempty"`
	Description      string    `json:"description"`
	Requirements     []string  `json:"requirements,omitempty"`
	Technologies     []string  `json:"technologies,omitempty"`
	PostedAt         time.Time `json:"posted_at"`
	ApplicationCount int       `json:"application_count"`
	IsFeatured       bool      `json:"is_featured"`
	ApplyURL         string    `json:"apply_url,omitempty"`
	Source           string    `json:"source"`
}

// FullText returns all searchable text fields concatenated in lowercase.
func (j *Job) FullText() string {
	return strings.ToLower(
		j.Title + " " + j.Company + " " + j.Location + " " + j.Description + " " +
			strings.Join(j.Technologies, " ") + " " + strings.Join(j.Requirements, " "),
	)
}

// DedupKey returns a deduplication key. Two postings from different providers
// with the same title and company collapse to one.
func (j *Job) DedupKey() string {
	return strings.ToLower(j.Title + "|" + j.Company)
}

// Jobs is an ordered collection of canonical jobs.
type Jobs struct {
	Items []*Job
}

func (jl *Jobs) Len() int {
	return len(jl.Items)
}

func (jl *Jobs) Append(items ...*Job) {
	jl.Items = append(jl.Items, items...)
}

func (jl *Jobs) FindByID(id string) *Job {
	for _, j := range jl.Items {
		if j.ID == id {
			return j
		}
	}
	return nil
}

// Dedupe removes duplicates by id and by title|company key. The first
// occurrence wins, order is preserved.
func (jl *Jobs) Dedupe() {
	seenID := make(map[string]bool, len(jl.Items))
	seenKey := make(map[string]bool, len(jl.Items))
	kept := jl.Items[:0]

	for _, j := range jl.Items {
		if seenID[j.ID] || seenKey[j.DedupKey()] {
			continue
		}
		seenID[j.ID] = true
		seenKey[j.DedupKey()] = true
		kept = append(kept, j)
	}

	jl.Items = kept
}

// ReportByCompany groups the collection by company for human consumption.
func (jl *Jobs) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, j := range jl.Items {
		report[j.Company] = append(report[j.Company], map[string]string{
			"title":     j.Title,
			"location":  j.Location,
			"work_mode": string(j.WorkMode),
			"level":     string(j.Level),
			"salary":    j.SalaryRange,
			"source":    j.Source,
			"apply_url": j.ApplyURL,
		})
	}
	return report
}

// DumpToTmpFile writes the collection as indented JSON to a temporary file
// and returns its name.
func (jl *Jobs) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "jobs_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jl); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ParseSalaryRange extracts the first two numeric tokens from a free-text
// salary string as a [min, max] band. A single number yields min == max.
func ParseSalaryRange(s string) (min, max int, ok bool) {
	var numbers []int
	current := 0
	digits := 0

	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			current = current*10 + int(r-'0')
			digits++
		case r == '.' || r == ',':
			// thousands separators inside a number are skipped
			if digits == 0 {
				continue
			}
		default:
			if digits > 0 {
				numbers = append(numbers, current)
				current, digits = 0, 0
				if len(numbers) == 2 {
					return numbers[0], numbers[1], true
				}
			}
		}
	}
	if digits > 0 {
		numbers = append(numbers, current)
	}

	switch len(numbers) {
	case 0:
		return 0, 0, false
	case 1:
		return numbers[0], numbers[0], true
	default:
		return numbers[0], numbers[1], true
	}
}

func (j *Job) String() string {
	return fmt.Sprintf("%s / %s / %s / %s", j.ID, j.Title, j.Company, j.Location)
}
