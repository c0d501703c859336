package aggregator

import (
	"sync"

	"github.com/devlink/jobscout/internal/job"
)

// Cache is the process-lifetime id→Job store. Every successful aggregation
// writes into it and detail lookups read from it. There is no eviction.
type Cache struct {
	mu   sync.RWMutex
	jobs map[string]*job.Job
}

func NewCache() *Cache {
	return &Cache{jobs: make(map[string]*job.Job)}
}

func (c *Cache) Upsert(j *job.Job) {
	if j == nil || j.ID == "" {
		return
	}
	c.mu.Lock()
	c.jobs[j.ID] = j
	c.mu.Unlock()
}

func (c *Cache) UpsertAll(jobs *job.Jobs) {
	if jobs == nil {
		return
	}
	for _, j := range jobs.Items {
		c.Upsert(j)
	}
}

func (c *Cache) Get(id string) (*job.Job, bool) {
	c.mu.RLock()
	j, ok := c.jobs[id]
	c.mu.RUnlock()
	return j, ok
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.jobs)
}
