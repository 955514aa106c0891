package web

import (
	"context"
	"sync"
	"time"

	"github.com/emiliopalmerini/churnboard/internal/domain"
	"github.com/emiliopalmerini/churnboard/internal/ports"
)

// reportCache keeps the last generated report for ttl so page views do not
// each hit the upstream API. Concurrent misses share one generation.
type reportCache struct {
	gen ports.ReportGenerator
	ttl time.Duration
	now func() time.Time

	mu        sync.Mutex
	report    *domain.Report
	fetchedAt time.Time
}

func newReportCache(gen ports.ReportGenerator, ttl time.Duration) *reportCache {
	return &reportCache{gen: gen, ttl: ttl, now: time.Now}
}

// Get returns the cached report, regenerating it when stale or when refresh is set.
// A failed regeneration leaves the previous snapshot in place.
func (c *reportCache) Get(ctx context.Context, refresh bool) (*domain.Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !refresh && c.report != nil && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.report, nil
	}
	r, err := c.gen.Generate(ctx)
	if err != nil {
		return nil, err
	}
	c.report = r
	c.fetchedAt = c.now()
	return r, nil
}
