package ai

import (
	"context"

	"github.com/devlink/jobscout/internal/matching"
	"github.com/devlink/jobscout/internal/profile"
)

// Insight is a short free-text note about one ranked match. It supplements
// the deterministic score fields and never replaces them.
type Insight struct {
	Summary string
	Raw     string
}

// Advisor produces insights for ranked matches.
type Advisor interface {
	Advise(ctx context.Context, analysis *profile.Analysis, score *matching.Score) (*Insight, error)
}
