package matching

import (
	"sort"

	"go.uber.org/zap"

	"github.com/devlink/jobscout/internal/job"
	"github.com/devlink/jobscout/internal/profile"
)

// RankOptions control the exclusion rules and ordering applied after
// scoring.
type RankOptions struct {
	// SkillMatchThreshold drops matches whose overall score is below it.
	SkillMatchThreshold int `mapstructure:"skill-match-threshold"`
	// ExcludeOverqualified drops jobs more than one level below the user.
	ExcludeOverqualified bool `mapstructure:"exclude-overqualified"`
	// PrioritizeRemoteWork partitions remote jobs first, then sorts each
	// partition by overall score.
	PrioritizeRemoteWork bool `mapstructure:"prioritize-remote"`
}

// Ranker scores a job list and orders it for presentation.
type Ranker struct {
	scorer *Scorer
	logger *zap.Logger
}

func NewRanker(logger *zap.Logger) *Ranker {
	return &Ranker{scorer: NewScorer(), logger: logger}
}

// Rank scores every job, applies the exclusion rules in order and sorts by
// overall score descending.
func (r *Ranker) Rank(jobs *job.Jobs, analysis *profile.Analysis, opts *RankOptions) []*Score {
	if opts == nil {
		opts = &RankOptions{}
	}

	initial := jobs.Len()
	scores := make([]*Score, 0, initial)
	for _, j := range jobs.Items {
		scores = append(scores, r.scorer.Score(j, analysis))
	}

	if opts.SkillMatchThreshold > 0 {
		scores = filterScores(scores, func(s *Score) bool {
			return s.Overall >= opts.SkillMatchThreshold
		})
	}

	if opts.ExcludeOverqualified {
		userRank := job.LevelRank(analysis.ExperienceLevel)
		scores = filterScores(scores, func(s *Score) bool {
			return userRank-job.LevelRank(s.Job.Level) < 2
		})
	}

	if opts.PrioritizeRemoteWork {
		sort.SliceStable(scores, func(i, k int) bool {
			iRemote := scores[i].Job.WorkMode == job.WorkModeRemote
			kRemote := scores[k].Job.WorkMode == job.WorkModeRemote
			if iRemote != kRemote {
				return iRemote
			}
			return scores[i].Overall > scores[k].Overall
		})
	} else {
		sort.SliceStable(scores, func(i, k int) bool {
			return scores[i].Overall > scores[k].Overall
		})
	}

	r.logger.Info("ranking completed",
		zap.Int("initial", initial),
		zap.Int("dropped", initial-len(scores)),
		zap.Int("left", len(scores)),
	)

	return scores
}

func filterScores(scores []*Score, keep func(*Score) bool) []*Score {
	kept := scores[:0]
	for _, s := range scores {
		if keep(s) {
			kept = append(kept, s)
		}
	}
	return kept
}
