// Package matching computes per-job match scores against a profile analysis
// and ranks the results.
package matching

import (
	"fmt"
	"math"
	"strings"

	"github.com/devlink/jobscout/internal/job"
	"github.com/devlink/jobscout/internal/profile"
)

// Fixed sub-score weights. They must sum to exactly 1.0.
const (
	weightLevel        = 0.25
	weightSkill        = 0.20
	weightLocation     = 0.15
	weightSalary       = 0.10
	weightTech         = 0.20
	weightRequirements = 0.10
)

const (
	maxReasons       = 3
	maxMissingSkills = 3
	maxRecs          = 3

	strongSubScore = 80
)

// Score is the immutable result of matching one job against one analysis.
// It is recomputed per request and never cached.
type Score struct {
	Job *job.Job

	Overall      int
	Level        int
	Skill        int
	Location     int
	Salary       int
	Tech         int
	Requirements int

	MatchReasons    []string
	MissingSkills   []string
	Recommendations []string

	// Insight is an optional AI-generated note. Deterministic fields above
	// are never replaced by it.
	Insight string
}

// Scorer computes match scores. It is stateless: scoring the same pair
// twice yields identical results.
type Scorer struct{}

func NewScorer() *Scorer {
	return &Scorer{}
}

// Score computes the six sub-scores and the weighted overall score.
func (s *Scorer) Score(j *job.Job, analysis *profile.Analysis) *Score {
	userTechs := analysis.Technologies()

	score := &Score{
		Job:          j,
		Level:        levelMatch(j.Level, analysis.ExperienceLevel),
		Skill:        skillMatch(j, userTechs),
		Location:     locationMatch(j.WorkMode, analysis.WorkModePreference),
		Salary:       salaryMatch(j.SalaryRange, analysis.SalaryMin, analysis.SalaryMax),
		Tech:         techMatch(j.Technologies, analysis.PrimaryTechnologies),
		Requirements: requirementsMatch(j.Requirements, userTechs),
	}

	score.Overall = int(math.Round(
		weightLevel*float64(score.Level) +
			weightSkill*float64(score.Skill) +
			weightLocation*float64(score.Location) +
			weightSalary*float64(score.Salary) +
			weightTech*float64(score.Tech) +
			weightRequirements*float64(score.Requirements),
	))

	score.MatchReasons = buildReasons(score)
	score.MissingSkills = missingSkills(j.Technologies, userTechs)
	score.Recommendations = buildRecommendations(score)

	return score
}

// levelMatch maps the distance on the junior..lead hierarchy: 0→100, 1→80,
// 2→60, anything further 40.
func levelMatch(jobLevel, userLevel job.Level) int {
	distance := job.LevelRank(jobLevel) - job.LevelRank(userLevel)
	if distance < 0 {
		distance = -distance
	}
	switch distance {
	case 0:
		return 100
	case 1:
		return 80
	case 2:
		return 60
	default:
		return 40
	}
}

// skillMatch is the matched fraction of the union of job technologies and
// requirements against all user technologies. Jobs listing no skills score a
// neutral 50.
func skillMatch(j *job.Job, userTechs []string) int {
	pool := append(append([]string{}, j.Technologies...), j.Requirements...)
	if len(pool) == 0 {
		return 50
	}

	matched := 0
	for _, item := range pool {
		if overlapsAny(item, userTechs) {
			matched++
		}
	}
	return fraction(matched, len(pool))
}

// locationMatch is the fixed work-mode preference table.
func locationMatch(mode job.WorkMode, preference string) int {
	switch preference {
	case string(job.WorkModeRemote):
		switch mode {
		case job.WorkModeRemote:
			return 100
		case job.WorkModeHybrid:
			return 70
		default:
			return 40
		}
	case string(job.WorkModeHybrid):
		switch mode {
		case job.WorkModeHybrid:
			return 100
		case job.WorkModeRemote:
			return 90
		default:
			return 70
		}
	default:
		if mode == job.WorkModeRemote {
			return 90
		}
		return 75
	}
}

// salaryMatch compares the job's salary band with the user's estimate:
// overlap scores 100, otherwise the score falls off with the gap relative to
// the user's maximum. Missing or unparsable salary strings score 70.
func salaryMatch(salaryRange string, userMin, userMax int) int {
	jobMin, jobMax, ok := job.ParseSalaryRange(salaryRange)
	if !ok || userMax <= 0 {
		return 70
	}

	if jobMax >= userMin && jobMin <= userMax {
		return 100
	}

	gap := jobMin - userMax
	if jobMax < userMin {
		gap = userMin - jobMax
	}

	relative := float64(gap) / float64(userMax)
	switch {
	case relative <= 0.2:
		return 80
	case relative <= 0.4:
		return 60
	default:
		return 40
	}
}

// techMatch is stricter than skillMatch: job technologies against primary
// technologies only. Jobs listing none score a neutral 50.
func techMatch(jobTechs, primary []string) int {
	if len(jobTechs) == 0 {
		return 50
	}

	matched := 0
	for _, tech := range jobTechs {
		if overlapsAny(tech, primary) {
			matched++
		}
	}
	return fraction(matched, len(jobTechs))
}

// requirementsMatch is the fraction of requirement strings mentioning any
// user technology. Jobs listing no requirements score 80.
func requirementsMatch(requirements, userTechs []string) int {
	if len(requirements) == 0 {
		return 80
	}

	matched := 0
	for _, req := range requirements {
		if overlapsAny(req, userTechs) {
			matched++
		}
	}
	return fraction(matched, len(requirements))
}

func buildReasons(s *Score) []string {
	var reasons []string
	add := func(subScore int, reason string) {
		if subScore >= strongSubScore && len(reasons) < maxReasons {
			reasons = append(reasons, reason)
		}
	}

	add(s.Level, "Seniority aligned with your experience level")
	add(s.Tech, "Your main technologies are a strong fit")
	add(s.Salary, "Salary compatible with your expectations")
	add(s.Location, "Work mode matches your preference")
	add(s.Skill, "Your broader skill set covers this role")
	add(s.Requirements, "You meet most of the listed requirements")

	return reasons
}

func missingSkills(jobTechs, userTechs []string) []string {
	var missing []string
	for _, tech := range jobTechs {
		if !overlapsAny(tech, userTechs) {
			missing = append(missing, tech)
			if len(missing) == maxMissingSkills {
				break
			}
		}
	}
	return missing
}

func buildRecommendations(s *Score) []string {
	var recs []string

	switch {
	case s.Overall >= 80:
		recs = append(recs, "Strong match, apply as soon as possible")
		recs = append(recs, "Highlight your main technologies in the application")
	case s.Overall >= 60:
		recs = append(recs, "Good match, worth applying")
		if len(s.MissingSkills) > 0 {
			recs = append(recs, fmt.Sprintf("Consider learning %s to strengthen your profile", s.MissingSkills[0]))
		}
	default:
		recs = append(recs, "Partial match, review the requirements before applying")
		recs = append(recs, "Focus on roles closer to your current stack")
	}

	if len(recs) > maxRecs {
		recs = recs[:maxRecs]
	}
	return recs
}

// overlapsAny reports whether the item substring-overlaps (either direction,
// case-insensitive) any of the candidates.
func overlapsAny(item string, candidates []string) bool {
	item = strings.ToLower(item)
	for _, c := range candidates {
		c = strings.ToLower(c)
		if c == "" || item == "" {
			continue
		}
		if strings.Contains(item, c) || strings.Contains(c, item) {
			return true
		}
	}
	return false
}

func fraction(matched, total int) int {
	return int(math.Round(float64(matched) / float64(total) * 100))
}
