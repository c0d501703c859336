// Package synthetic fabricates realistic job postings from fixed reference
// tables. It is the last link of the fallback chain and always succeeds.
package synthetic

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/devlink/jobscout/internal/job"
)

// Source is the provider identifier stamped on generated jobs.
const Source = "synthetic"

// idPrefix keeps generated ids disjoint from provider ids so the
// aggregator's cache never collides.
const idPrefix = "synth-"

// Generator is a pure, seedable job fabricator. The same seed always
// produces the same sequence.
type Generator struct {
	rng *rand.Rand
	seq int
}

func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate fabricates count jobs honoring the given filters. Candidates that
// fail the filter predicate are discarded and regenerated, bounded by a fixed
// attempt budget, so heavily restrictive filters may yield fewer jobs.
func (g *Generator) Generate(count int, filters *job.Filters) *job.Jobs {
	jobs := &job.Jobs{}
	if count <= 0 {
		return jobs
	}

	attempts := count * 20
	for jobs.Len() < count && attempts > 0 {
		attempts--
		candidate := g.generateOne(filters)
		if filters.Match(candidate) {
			jobs.Append(candidate)
		}
	}

	return jobs
}

// Featured returns the fixed curated set of highlighted postings.
func (g *Generator) Featured() *job.Jobs {
	now := time.Now()
	return &job.Jobs{Items: []*job.Job{
		{
			ID:               idPrefix + "featured-1",
			Title:            "Senior Backend Developer",
			Company:          "Nubank",
			CompanyLogoURL:   "https://logo.clearbit.com/nubank.com.br",
			Location:         "Remote",
			WorkMode:         job.WorkModeRemote,
			Level:            job.LevelSenior,
			SalaryRange:      "12000-16000",
			Description:      "Nubank is looking for a Senior Backend Developer to build the core banking platform used by millions of customers.",
			Requirements:     []string{"Experience with Golang", "Knowledge of PostgreSQL", "5+ years building distributed systems"},
			Technologies:     []string{"Golang", "PostgreSQL", "Kubernetes", "AWS"},
			PostedAt:         now.Add(-24 * time.Hour),
			ApplicationCount: 87,
			IsFeatured:       true,
			Source:           Source,
		},
		{
			ID:               idPrefix + "featured-2",
			Title:            "Mobile Developer",
			Company:          "iFood",
			CompanyLogoURL:   "https://logo.clearbit.com/ifood.com.br",
			Location:         "Hybrid - São Paulo",
			WorkMode:         job.WorkModeHybrid,
			Level:            job.LevelMid,
			SalaryRange:      "7000-9500",
			Description:      "iFood is looking for a Mobile Developer to evolve the consumer app serving tens of millions of orders.",
			Requirements:     []string{"Experience with React Native", "Knowledge of mobile release pipelines"},
			Technologies:     []string{"React Native", "TypeScript", "GraphQL"},
			PostedAt:         now.Add(-48 * time.Hour),
			ApplicationCount: 134,
			IsFeatured:       true,
			Source:           Source,
		},
		{
			ID:               idPrefix + "featured-3",
			Title:            "Tech Lead",
			Company:          "Stone",
			CompanyLogoURL:   "https://logo.clearbit.com/stone.com.br",
			Location:         "Rio de Janeiro, RJ",
			WorkMode:         job.WorkModeOnsite,
			Level:            job.LevelLead,
			SalaryRange:      "16000-20000",
			Description:      "Stone is looking for a Tech Lead to drive the payments acquiring platform.",
			Requirements:     []string{"Experience with Java", "Knowledge of event-driven architectures", "8+ years of engineering experience"},
			Technologies:     []string{"Java", "Spring", "Kafka", "Docker"},
			PostedAt:         now.Add(-72 * time.Hour),
			ApplicationCount: 45,
			IsFeatured:       true,
			Source:           Source,
		},
	}}
}

func (g *Generator) generateOne(filters *job.Filters) *job.Job {
	level := g.pickLevel(filters)
	title := pick(g.rng, titlesByLevel[level])
	comp := companies[g.rng.Intn(len(companies))]
	location := pick(g.rng, locations)
	workMode := g.workModeFor(location)
	technologies := g.pickTechnologies()
	salary := pick(g.rng, salaryBandsByLevel[level])

	g.seq++
	return &job.Job{
		ID:               fmt.Sprintf("%s%d-%08x", idPrefix, g.seq, g.rng.Uint32()),
		Title:            title,
		Company:          comp.name,
		CompanyLogoURL:   comp.logo,
		Location:         location,
		WorkMode:         workMode,
		Level:            level,
		SalaryRange:      salary,
		Description:      g.describe(comp.name, title, level, technologies),
		Requirements:     g.requirements(level, technologies),
		Technologies:     technologies,
		PostedAt:         time.Now().Add(-time.Duration(g.rng.Intn(720)) * time.Hour),
		ApplicationCount: g.rng.Intn(150),
		Source:           Source,
	}
}

// pickLevel uses the filter level when set, otherwise draws from the fixed
// distribution junior 0.25 / mid 0.40 / senior 0.25 / lead 0.10.
func (g *Generator) pickLevel(filters *job.Filters) job.Level {
	if filters != nil && filters.Level != "" {
		return filters.Level
	}

	r := g.rng.Float64()
	switch {
	case r < 0.25:
		return job.LevelJunior
	case r < 0.65:
		return job.LevelMid
	case r < 0.90:
		return job.LevelSenior
	default:
		return job.LevelLead
	}
}

// workModeFor derives the mode from the location string when it is explicit,
// otherwise draws a weighted mode.
func (g *Generator) workModeFor(location string) job.WorkMode {
	switch {
	case strings.Contains(location, "Remote"):
		return job.WorkModeRemote
	case strings.Contains(location, "Hybrid"):
		return job.WorkModeHybrid
	}

	r := g.rng.Float64()
	switch {
	case r < 0.30:
		return job.WorkModeRemote
	case r < 0.60:
		return job.WorkModeHybrid
	default:
		return job.WorkModeOnsite
	}
}

// pickTechnologies draws 2 items from one random area and fills up to a
// 3..8 total from the full pool without duplicates.
func (g *Generator) pickTechnologies() []string {
	area := techAreas[pick(g.rng, areaNames)]

	var techs []string
	seen := make(map[string]bool)
	add := func(t string) {
		if !seen[t] {
			seen[t] = true
			techs = append(techs, t)
		}
	}

	perm := g.rng.Perm(len(area))
	for _, idx := range perm[:2] {
		add(area[idx])
	}

	target := 3 + g.rng.Intn(job.MaxTechnologies-2) // 3..8
	var pool []string
	for _, name := range areaNames {
		pool = append(pool, techAreas[name]...)
	}
	for _, idx := range g.rng.Perm(len(pool)) {
		if len(techs) >= target {
			break
		}
		add(pool[idx])
	}

	return techs
}

func (g *Generator) describe(company, title string, level job.Level, technologies []string) string {
	return fmt.Sprintf(
		"%s is looking for a %s to join our engineering team. You will work with %s building products used by millions of people. We value ownership, collaboration and continuous learning, and we offer a %s-friendly career track.",
		company, title, strings.Join(technologies, ", "), level,
	)
}

func (g *Generator) requirements(level job.Level, technologies []string) []string {
	reqs := []string{
		"Experience with " + technologies[0],
		"Knowledge of " + technologies[1],
		fmt.Sprintf("%d+ years of professional experience", minYears(level)),
		"Good communication skills",
	}
	if len(reqs) > job.MaxRequirements {
		reqs = reqs[:job.MaxRequirements]
	}
	return reqs
}

func minYears(level job.Level) int {
	switch level {
	case job.LevelJunior:
		return 1
	case job.LevelMid:
		return 2
	case job.LevelSenior:
		return 5
	default:
		return 8
	}
}

func pick(rng *rand.Rand, items []string) string {
	return items[rng.Intn(len(items))]
}
