package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shiftforge/rosterengine/internal/roster/domain"
)

func TestCacheKey_SameInputsSameKey(t *testing.T) {
	d := demandRows(func(rows [][]int) { rows[domain.Monday][10] = 12 })
	cfg := domain.Config{ProductivityRate: 12, PTCapPct: 20, WeekenderCapPct: 30}

	assert.Equal(t, CacheKey(d, cfg), CacheKey(d, cfg))
}

func TestCacheKey_DifferentDemandDifferentKey(t *testing.T) {
	cfg := domain.Config{ProductivityRate: 12, PTCapPct: 20, WeekenderCapPct: 30}
	d1 := demandRows(func(rows [][]int) { rows[domain.Monday][10] = 12 })
	d2 := demandRows(func(rows [][]int) { rows[domain.Monday][10] = 24 })

	assert.NotEqual(t, CacheKey(d1, cfg), CacheKey(d2, cfg))
}

func TestCacheKey_DifferentConfigDifferentKey(t *testing.T) {
	d := demandRows(func(rows [][]int) { rows[domain.Monday][10] = 12 })
	cfg1 := domain.Config{ProductivityRate: 12, PTCapPct: 20, WeekenderCapPct: 30}
	cfg2 := domain.Config{ProductivityRate: 12, PTCapPct: 0, WeekenderCapPct: 30}

	assert.NotEqual(t, CacheKey(d, cfg1), CacheKey(d, cfg2))
}
