package services

import (
	"math"

	"github.com/shiftforge/rosterengine/internal/roster/domain"
)

// Reify converts a primal variable-name -> count map into a sequence of
// worker records and the coverage matrix they imply. Iteration
// order follows universe.All() (FT, then PT, then WFT, then WPT, each in
// catalogue-generation order), so worker ids are deterministic across runs
// given the same primal map; the round-trip/idempotence property depends
// on this.
func Reify(primal map[string]float64, universe TemplateUniverse) ([]domain.WorkerRecord, domain.CoverageMatrix, map[domain.WorkerType]int) {
	counts := domain.ZeroCounts()
	var workers []domain.WorkerRecord
	id := 1
	for _, t := range universe.All() {
		v, ok := primal[t.Name()]
		if !ok {
			continue
		}
		n := roundClamp(v)
		for i := 0; i < n; i++ {
			w := domain.FromTemplate(t)
			w.ID = id
			id++
			workers = append(workers, w)
			counts[t.Type]++
		}
	}
	coverage := domain.BuildCoverage(workers)
	return workers, coverage, counts
}

// roundClamp handles solver numeric noise: round(x), clamped at 0 so a
// small negative residual never yields a negative worker count.
func roundClamp(v float64) int {
	r := int(math.Round(v))
	if r < 0 {
		return 0
	}
	return r
}
