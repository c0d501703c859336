// Package profile derives a structured analysis from raw user profile and
// skill records. The analysis is computed once per request and never
// persisted here.
package profile

import (
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/devlink/jobscout/internal/job"
)

// Proficiency is the self-reported mastery of a skill.
type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "beginner"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyExpert       Proficiency = "expert"
)

// Skill is one raw skill record, consumed as already loaded.
type Skill struct {
	Name        string      `mapstructure:"name"`
	Proficiency Proficiency `mapstructure:"proficiency"`
	Category    string      `mapstructure:"category"`
}

// Experience is one work-experience entry of the raw profile. Current marks
// an ongoing position, which counts until analysis time.
type Experience struct {
	Start   time.Time
	End     time.Time
	Current bool
}

// Profile is the raw user record handed in by the storage collaborator.
type Profile struct {
	Location          string
	PreferredWorkMode string
	Experiences       []Experience
}

// CareerFocus buckets.
const (
	FocusFrontend  = "frontend"
	FocusBackend   = "backend"
	FocusFullstack = "fullstack"
	FocusMobile    = "mobile"
	FocusDevops    = "devops"
	FocusData      = "data"
)

// WorkModeFlexible is the preference used when the profile states none.
const WorkModeFlexible = "flexible"

// Analysis is the derived summary used as the basis for scoring.
type Analysis struct {
	ExperienceLevel       job.Level
	YearsOfExperience     int
	PrimaryTechnologies   []string
	SecondaryTechnologies []string
	CareerFocus           string
	WorkModePreference    string
	SalaryMin             int
	SalaryMax             int
	SkillScore            int
}

// Technologies returns primary and secondary technologies combined.
func (a *Analysis) Technologies() []string {
	return append(append([]string{}, a.PrimaryTechnologies...), a.SecondaryTechnologies...)
}

// focusBuckets is the ordered classification table. The order is also the
// tie-break priority: when two buckets other than exactly
// {frontend, backend} tie, the first one listed here wins.
var focusBuckets = []struct {
	name     string
	keywords []string
}{
	{FocusBackend, []string{"node", "python", "java", "golang", "c#", "php", "ruby", "spring", "django", "api", "sql", "postgres", "mongo", "backend"}},
	{FocusFrontend, []string{"react", "vue", "angular", "javascript", "typescript", "css", "html", "next", "tailwind", "frontend"}},
	{FocusMobile, []string{"react native", "flutter", "swift", "kotlin", "android", "ios", "mobile"}},
	{FocusDevops, []string{"docker", "kubernetes", "aws", "azure", "gcp", "terraform", "jenkins", "linux", "devops", "ci"}},
	{FocusData, []string{"pandas", "spark", "airflow", "etl", "analytics", "machine learning", "data"}},
}

var proficiencyPoints = map[Proficiency]int{
	ProficiencyBeginner:     25,
	ProficiencyIntermediate: 50,
	ProficiencyAdvanced:     75,
	ProficiencyExpert:       100,
}

var baseSalaryBands = map[job.Level][2]int{
	job.LevelJunior: {2500, 4500},
	job.LevelMid:    {5000, 8500},
	job.LevelSenior: {9000, 14000},
	job.LevelLead:   {14000, 20000},
}

var focusMultipliers = map[string]float64{
	FocusDevops:    1.15,
	FocusData:      1.10,
	FocusBackend:   1.05,
	FocusFullstack: 1.00,
	FocusMobile:    1.00,
	FocusFrontend:  0.95,
}

// locationMultipliers is matched by lowercase substring; locations with no
// entry use the default multiplier.
var locationMultipliers = []struct {
	pattern    string
	multiplier float64
}{
	{"são paulo", 1.15},
	{"sao paulo", 1.15},
	{"rio de janeiro", 1.05},
	{"florianópolis", 1.00},
	{"curitiba", 0.95},
	{"belo horizonte", 0.95},
	{"remote", 1.10},
}

const defaultLocationMultiplier = 0.8

// Analyzer turns raw profile and skill records into an Analysis.
type Analyzer struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewAnalyzer(logger *zap.Logger) *Analyzer {
	return &Analyzer{logger: logger, now: time.Now}
}

// Analyze derives the full analysis. It is pure apart from reading the
// clock for ongoing experience entries.
func (a *Analyzer) Analyze(p *Profile, skills []Skill) *Analysis {
	years := a.yearsOfExperience(p, skills)

	var expertCount, advancedCount int
	for _, s := range skills {
		switch s.Proficiency {
		case ProficiencyExpert:
			expertCount++
		case ProficiencyAdvanced:
			advancedCount++
		}
	}

	level := classifyLevel(years, expertCount, advancedCount)
	focus := classifyFocus(skills)
	primary, secondary := rankTechnologies(skills)
	salaryMin, salaryMax := estimateSalary(level, focus, p.Location)

	analysis := &Analysis{
		ExperienceLevel:       level,
		YearsOfExperience:     years,
		PrimaryTechnologies:   primary,
		SecondaryTechnologies: secondary,
		CareerFocus:           focus,
		WorkModePreference:    workModePreference(p),
		SalaryMin:             salaryMin,
		SalaryMax:             salaryMax,
		SkillScore:            skillScore(skills),
	}

	a.logger.Debug("profile analyzed",
		zap.String("level", string(level)),
		zap.Int("years", years),
		zap.String("focus", focus),
		zap.Int("skill_score", analysis.SkillScore),
	)

	return analysis
}

// yearsOfExperience sums month spans across work experiences, ongoing
// entries ending now, rounded to years. Profiles without experience entries
// fall back to a coarse skill-count heuristic.
func (a *Analyzer) yearsOfExperience(p *Profile, skills []Skill) int {
	if p == nil || len(p.Experiences) == 0 {
		return len(skills) / 3
	}

	months := 0
	now := a.now()
	for _, e := range p.Experiences {
		end := e.End
		if e.Current || end.IsZero() {
			end = now
		}
		if end.Before(e.Start) {
			continue
		}
		months += (end.Year()-e.Start.Year())*12 + int(end.Month()) - int(e.Start.Month())
	}

	return int(math.Round(float64(months) / 12))
}

// classifyLevel is a decision table evaluated top-down, first match wins.
func classifyLevel(years, expertCount, advancedCount int) job.Level {
	switch {
	case years >= 8 || expertCount >= 3:
		return job.LevelLead
	case years >= 5 || (expertCount >= 1 && advancedCount >= 3):
		return job.LevelSenior
	case years >= 2 || advancedCount >= 2:
		return job.LevelMid
	default:
		return job.LevelJunior
	}
}

// classifyFocus buckets skill names by keyword containment and picks the
// strict maximum. A tie between exactly frontend and backend resolves to
// fullstack; any other tie resolves to the bucket listed first in the table.
// Profiles hitting no bucket classify as fullstack.
func classifyFocus(skills []Skill) string {
	hits := make(map[string]int, len(focusBuckets))
	for _, s := range skills {
		name := strings.ToLower(s.Name)
		for _, bucket := range focusBuckets {
			for _, kw := range bucket.keywords {
				if strings.Contains(name, kw) {
					hits[bucket.name]++
					break
				}
			}
		}
	}

	best := 0
	for _, bucket := range focusBuckets {
		if hits[bucket.name] > best {
			best = hits[bucket.name]
		}
	}
	if best == 0 {
		return FocusFullstack
	}

	var tied []string
	for _, bucket := range focusBuckets {
		if hits[bucket.name] == best {
			tied = append(tied, bucket.name)
		}
	}

	if len(tied) == 1 {
		return tied[0]
	}
	if len(tied) == 2 && contains(tied, FocusFrontend) && contains(tied, FocusBackend) {
		return FocusFullstack
	}
	return tied[0]
}

// rankTechnologies orders skills by proficiency (stable on input order) and
// splits them into up to 3 primary and 5 secondary names.
func rankTechnologies(skills []Skill) (primary, secondary []string) {
	ranked := make([]Skill, len(skills))
	copy(ranked, skills)

	// stable insertion sort by descending proficiency points
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && proficiencyPoints[ranked[j].Proficiency] > proficiencyPoints[ranked[j-1].Proficiency]; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}

	for i, s := range ranked {
		switch {
		case i < 3:
			primary = append(primary, s.Name)
		case i < 8:
			secondary = append(secondary, s.Name)
		}
	}
	return primary, secondary
}

// estimateSalary multiplies the level base band by the focus and location
// multipliers. Unmatched locations use the default multiplier.
func estimateSalary(level job.Level, focus, location string) (min, max int) {
	band := baseSalaryBands[level]

	focusMult, ok := focusMultipliers[focus]
	if !ok {
		focusMult = 1.0
	}

	locMult := defaultLocationMultiplier
	lower := strings.ToLower(location)
	for _, entry := range locationMultipliers {
		if strings.Contains(lower, entry.pattern) {
			locMult = entry.multiplier
			break
		}
	}

	min = int(math.Round(float64(band[0]) * focusMult * locMult))
	max = int(math.Round(float64(band[1]) * focusMult * locMult))
	return min, max
}

// skillScore averages the 25/50/75/100 proficiency scale across all skills.
func skillScore(skills []Skill) int {
	if len(skills) == 0 {
		return 0
	}
	total := 0
	for _, s := range skills {
		total += proficiencyPoints[s.Proficiency]
	}
	return int(math.Round(float64(total) / float64(len(skills))))
}

func workModePreference(p *Profile) string {
	if p == nil || strings.TrimSpace(p.PreferredWorkMode) == "" {
		return WorkModeFlexible
	}
	return strings.ToLower(strings.TrimSpace(p.PreferredWorkMode))
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
