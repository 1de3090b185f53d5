package commands

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftforge/rosterengine/internal/roster/application/ports"
	"github.com/shiftforge/rosterengine/internal/roster/domain"
)

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]domain.RosterResult
	gets    int
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]domain.RosterResult)}
}

func (c *fakeCache) Get(_ context.Context, key string) (domain.RosterResult, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	r, ok := c.entries[key]
	return r, ok, nil
}

func (c *fakeCache) Set(_ context.Context, key string, result domain.RosterResult, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.entries[key] = result
	return nil
}

type fakeRunRepo struct {
	mu   sync.Mutex
	runs []ports.RosterRun
}

func (r *fakeRunRepo) RecordRun(_ context.Context, run ports.RosterRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, run)
	return nil
}

func TestAuditedSolveRosterHandler_CachesAndRecordsRuns(t *testing.T) {
	d := demandRows(func(rows [][]int) { rows[domain.Monday][10] = 12 })
	cfg := domain.Config{ProductivityRate: 12, PTCapPct: 20, WeekenderCapPct: 30}

	cache := newFakeCache()
	runs := &fakeRunRepo{}
	audited := &AuditedSolveRosterHandler{
		Inner: NewSolveRosterHandler(referenceFactory),
		Cache: cache,
		Runs:  runs,
	}

	r1, err := audited.Handle(context.Background(), SolveRosterCommand{Demand: d, Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
	assert.Len(t, runs.runs, 1)

	r2, err := audited.Handle(context.Background(), SolveRosterCommand{Demand: d, Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets, "second call should hit the cache, not write again")
	assert.Len(t, runs.runs, 2, "a run is still recorded on a cache hit")
	assert.Equal(t, r1.TotalWorkers, r2.TotalWorkers)
}
