// Package aggregator orchestrates providers in a fixed priority order with a
// fallback chain ending in the synthetic generator, so a search always
// resolves with data.
package aggregator

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/devlink/jobscout/internal/job"
	"github.com/devlink/jobscout/internal/provider"
	"github.com/devlink/jobscout/internal/synthetic"
	"github.com/devlink/jobscout/internal/utils"
)

// ErrJobNotFound is returned by JobByID when the id is resolvable neither
// through the cache nor through opaque-id decoding. It is the only
// caller-visible failure of this package.
var ErrJobNotFound = errors.New("job not found")

var errDecode = errors.New("opaque id decode failed")

const (
	defaultLimit      = 20
	defaultApplyDelay = time.Second
)

// Aggregator runs the fallback chain and owns the shared id→Job cache.
type Aggregator struct {
	providers []provider.Provider
	generator *synthetic.Generator
	cache     *Cache
	logger    *zap.Logger

	// ResultsCache, when set, is consulted before the provider chain and
	// populated on provider success. Synthetic results are never stored.
	ResultsCache *ResultsCache
	// ApplyDelay is the simulated latency of Apply.
	ApplyDelay time.Duration
}

// New builds an aggregator. Providers are tried strictly in the given order.
func New(logger *zap.Logger, providers []provider.Provider, generator *synthetic.Generator, cache *Cache) *Aggregator {
	return &Aggregator{
		providers:  providers,
		generator:  generator,
		cache:      cache,
		logger:     logger,
		ApplyDelay: defaultApplyDelay,
	}
}

// Search tries each provider in priority order and falls back to the
// synthetic generator when all of them fail or return nothing. Every job on
// a successful path is upserted into the id cache before returning. The
// result is non-empty unless the caller requested zero items.
func (a *Aggregator) Search(ctx context.Context, filters *job.Filters) (*job.Jobs, error) {
	if filters == nil {
		filters = &job.Filters{}
	}

	limit := filters.Limit
	if limit < 0 {
		return nil, fmt.Errorf("limit must be non-negative, got %d", limit)
	}
	if limit == 0 {
		limit = defaultLimit
	}

	if a.ResultsCache != nil {
		if cached, ok := a.ResultsCache.Get(ctx, filters); ok && cached.Len() > 0 {
			a.logger.Debug("search served from results cache", zap.Int("count", cached.Len()))
			a.cache.UpsertAll(cached)
			return cached, nil
		}
	}

	for _, p := range a.providers {
		jobs, err := p.Search(ctx, filters)
		if err != nil {
			a.logger.Warn("provider failed, trying next",
				zap.String("provider", p.Name()),
				zap.String("error_kind", string(provider.KindOf(err))),
				zap.Error(err),
			)
			continue
		}

		jobs.Dedupe()
		if dropped := enforceFilters(jobs, filters); dropped > 0 {
			a.logger.Info("dropped provider results violating filters",
				zap.String("provider", p.Name()),
				zap.Int("dropped", dropped),
			)
		}
		if jobs.Len() == 0 {
			a.logger.Info("provider returned no usable results, trying next",
				zap.String("provider", p.Name()),
			)
			continue
		}

		a.logger.Info("search resolved by provider",
			zap.String("provider", p.Name()),
			zap.Int("count", jobs.Len()),
		)

		a.cache.UpsertAll(jobs)
		if a.ResultsCache != nil {
			if err := a.ResultsCache.Set(ctx, filters, jobs); err != nil {
				a.logger.Warn("storing results cache", zap.Error(err))
			}
		}
		return jobs, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	jobs := a.generator.Generate(limit, filters)
	a.logger.Info("search resolved by synthetic generator", zap.Int("count", jobs.Len()))
	a.cache.UpsertAll(jobs)
	return jobs, nil
}

// enforceFilters removes jobs that do not satisfy the caller's filters and
// reports how many were removed. Adapters translate filters into provider
// requests on a best-effort basis only, so the predicate is re-applied here
// the same way the synthetic generator applies it.
func enforceFilters(jobs *job.Jobs, filters *job.Filters) int {
	kept := jobs.Items[:0]
	for _, j := range jobs.Items {
		if filters.Match(j) {
			kept = append(kept, j)
		}
	}

	dropped := len(jobs.Items) - len(kept)
	jobs.Items = kept
	return dropped
}

// Featured returns the curated featured set, cached like any search result.
func (a *Aggregator) Featured() *job.Jobs {
	jobs := a.generator.Featured()
	a.cache.UpsertAll(jobs)
	return jobs
}

// JobByID resolves a job by id: cache first, then an opaque-id decode
// fallback. Unresolvable ids yield ErrJobNotFound.
func (a *Aggregator) JobByID(id string) (*job.Job, error) {
	if j, ok := a.cache.Get(id); ok {
		return j, nil
	}

	j, err := decodeOpaqueID(id)
	if err != nil {
		a.logger.Debug("job id unresolvable", zap.String("id", id), zap.Error(err))
		return nil, ErrJobNotFound
	}

	return j, nil
}

// Apply simulates a job application. Persistence is owned by an external
// collaborator; this only resolves after a fixed latency.
func (a *Aggregator) Apply(ctx context.Context, jobID, userID string) error {
	if err := utils.WaitFor(ctx, a.ApplyDelay); err != nil {
		return err
	}

	a.logger.Info("application submitted",
		zap.String("job_id", jobID),
		zap.String("user_id", userID),
	)
	return nil
}

// opaquePayload is the minimal self-describing content an opaque job id
// must carry.
type opaquePayload struct {
	Title   string `mapstructure:"title"`
	Company string `mapstructure:"company"`
	Source  string `mapstructure:"source"`
}

// decodeOpaqueID interprets the id as base64-encoded JSON and synthesizes a
// minimal detail record from it.
func decodeOpaqueID(id string) (*job.Job, error) {
	raw, err := base64.StdEncoding.DecodeString(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errDecode, err)
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", errDecode, err)
	}

	var payload opaquePayload
	if err := mapstructure.WeakDecode(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", errDecode, err)
	}
	if payload.Title == "" || payload.Company == "" {
		return nil, fmt.Errorf("%w: payload missing title or company", errDecode)
	}

	source := payload.Source
	if source == "" {
		source = "unknown"
	}

	return &job.Job{
		ID:           id,
		Title:        payload.Title,
		Company:      payload.Company,
		Location:     "Not informed",
		WorkMode:     job.WorkModeOnsite,
		Level:        job.LevelMid,
		Description:  fmt.Sprintf("%s is hiring a %s. Full details are available on the original posting.", payload.Company, payload.Title),
		Requirements: []string{"See the original posting for requirements"},
		PostedAt:     time.Now(),
		ApplyURL:     searchURL(payload.Title, payload.Company),
		Source:       source,
	}, nil
}

func searchURL(title, company string) string {
	q := url.QueryEscape(title + " " + company)
	return "https://www.google.com/search?q=" + q
}
