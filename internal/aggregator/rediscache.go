package aggregator

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/devlink/jobscout/internal/job"
)

// ResultsCache is an optional Redis-backed cache of whole search results
// keyed by a hash of the filters. It sits in front of the provider chain;
// the in-process id→Job cache stays authoritative for detail lookups.
type ResultsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultsCache connects to Redis at the given URL.
// URL format: redis://localhost:6379
func NewResultsCache(redisURL string, ttl time.Duration) (*ResultsCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("results cache: invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("results cache: redis ping failed: %w", err)
	}

	return &ResultsCache{client: client, ttl: ttl}, nil
}

// Get retrieves cached jobs for the given filters, or nil and false.
func (c *ResultsCache) Get(ctx context.Context, filters *job.Filters) (*job.Jobs, bool) {
	data, err := c.client.Get(ctx, buildKey(filters)).Bytes()
	if err != nil {
		return nil, false
	}

	var jobs job.Jobs
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, false
	}

	return &jobs, true
}

// Set stores jobs for the given filters with the configured TTL.
func (c *ResultsCache) Set(ctx context.Context, filters *job.Filters, jobs *job.Jobs) error {
	data, err := json.Marshal(jobs)
	if err != nil {
		return fmt.Errorf("results cache: marshal error: %w", err)
	}

	return c.client.Set(ctx, buildKey(filters), data, c.ttl).Err()
}

// Close closes the Redis connection.
func (c *ResultsCache) Close() error {
	return c.client.Close()
}

func buildKey(filters *job.Filters) string {
	raw, _ := json.Marshal(filters)
	hash := sha256.Sum256(raw)
	return fmt.Sprintf("jobscout:search:%x", hash[:8])
}
