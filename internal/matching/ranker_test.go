package matching

import (
	"testing"

	"go.uber.org/zap"

	"github.com/devlink/jobscout/internal/job"
	"github.com/devlink/jobscout/internal/profile"
)

func rankerJobs() *job.Jobs {
	return &job.Jobs{Items: []*job.Job{
		{ID: "junior-onsite", Level: job.LevelJunior, WorkMode: job.WorkModeOnsite},
		{ID: "mid-hybrid", Level: job.LevelMid, WorkMode: job.WorkModeHybrid, Technologies: []string{"React"}},
		{ID: "senior-remote", Level: job.LevelSenior, WorkMode: job.WorkModeRemote, Technologies: []string{"React", "TypeScript"}, SalaryRange: "9000-12000"},
		{ID: "lead-remote", Level: job.LevelLead, WorkMode: job.WorkModeRemote, Technologies: []string{"React"}},
		{ID: "senior-onsite", Level: job.LevelSenior, WorkMode: job.WorkModeOnsite, Technologies: []string{"React", "TypeScript"}, SalaryRange: "9000-12000"},
	}}
}

func testAnalysis(level job.Level) *profile.Analysis {
	return &profile.Analysis{
		ExperienceLevel:       level,
		PrimaryTechnologies:   []string{"React", "TypeScript"},
		SecondaryTechnologies: []string{"Node.js"},
		WorkModePreference:    "remote",
		SalaryMin:             8000,
		SalaryMax:             13000,
	}
}

func TestRankSortsByOverallDescending(t *testing.T) {
	t.Parallel()

	ranker := NewRanker(zap.NewNop())
	scores := ranker.Rank(rankerJobs(), testAnalysis(job.LevelSenior), nil)

	if len(scores) != 5 {
		t.Fatalf("expected all jobs scored, got %d", len(scores))
	}
	for i := 1; i < len(scores); i++ {
		if scores[i-1].Overall < scores[i].Overall {
			t.Fatalf("expected descending order, got %d before %d", scores[i-1].Overall, scores[i].Overall)
		}
	}
	if scores[0].Job.ID != "senior-remote" {
		t.Fatalf("expected senior-remote first, got %s", scores[0].Job.ID)
	}
}

func TestRankExcludeOverqualifiedLeadUser(t *testing.T) {
	t.Parallel()

	ranker := NewRanker(zap.NewNop())
	scores := ranker.Rank(rankerJobs(), testAnalysis(job.LevelLead), &RankOptions{ExcludeOverqualified: true})

	for _, s := range scores {
		if s.Job.Level == job.LevelJunior || s.Job.Level == job.LevelMid {
			t.Fatalf("expected junior and mid jobs excluded for lead user, got %s", s.Job.ID)
		}
	}
	if len(scores) != 3 {
		t.Fatalf("expected 3 jobs left, got %d", len(scores))
	}
}

func TestRankExcludeOverqualifiedSeniorUser(t *testing.T) {
	t.Parallel()

	ranker := NewRanker(zap.NewNop())
	scores := ranker.Rank(rankerJobs(), testAnalysis(job.LevelSenior), &RankOptions{ExcludeOverqualified: true})

	for _, s := range scores {
		if s.Job.Level == job.LevelJunior {
			t.Fatalf("expected junior jobs excluded for senior user, got %s", s.Job.ID)
		}
	}
	if len(scores) != 4 {
		t.Fatalf("expected 4 jobs left, got %d", len(scores))
	}
}

func TestRankThreshold(t *testing.T) {
	t.Parallel()

	ranker := NewRanker(zap.NewNop())
	scores := ranker.Rank(rankerJobs(), testAnalysis(job.LevelSenior), &RankOptions{SkillMatchThreshold: 101})

	if len(scores) != 0 {
		t.Fatalf("expected an impossible threshold to drop everything, got %d", len(scores))
	}
}

func TestRankPrioritizeRemote(t *testing.T) {
	t.Parallel()

	ranker := NewRanker(zap.NewNop())
	scores := ranker.Rank(rankerJobs(), testAnalysis(job.LevelSenior), &RankOptions{PrioritizeRemoteWork: true})

	seenNonRemote := false
	for _, s := range scores {
		remote := s.Job.WorkMode == job.WorkModeRemote
		if remote && seenNonRemote {
			t.Fatalf("expected all remote jobs before non-remote ones")
		}
		if !remote {
			seenNonRemote = true
		}
	}

	if scores[0].Job.WorkMode != job.WorkModeRemote {
		t.Fatalf("expected a remote job first, got %s", scores[0].Job.ID)
	}
}
