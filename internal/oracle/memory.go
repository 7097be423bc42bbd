package oracle

import (
	"context"
	"time"

	"github.com/mlapinski/openmemo/internal/domain"
)

const dayLayout = "2006-01-02"

// MemoryOracle is an in-memory WorkloadOracle over a slice of learning
// units, indexed by next-review date. Used by tests that schedule against
// an oracle without a database.
type MemoryOracle struct {
	states []*domain.LUState
	// excludeRef, if non-nil, is the OpaqueRef of the LU currently being
	// scheduled; it is never counted.
	excludeRef any
}

// NewMemoryOracle builds a MemoryOracle over states, excluding any entry
// whose OpaqueRef equals excludeRef from both queries.
func NewMemoryOracle(states []*domain.LUState, excludeRef any) *MemoryOracle {
	return &MemoryOracle{states: states, excludeRef: excludeRef}
}

func (o *MemoryOracle) GetWorkloads(ctx context.Context, from, to time.Time) ([]int, error) {
	counts := o.indexByDay(from, to, func(lu *domain.LUState) (float64, bool) { return 1, true })
	out := make([]int, len(counts))
	for i, c := range counts {
		out[i] = int(c)
	}
	return out, nil
}

func (o *MemoryOracle) GetAvgDifficulties(ctx context.Context, from, to time.Time) ([]float64, error) {
	sums := o.indexByDay(from, to, func(lu *domain.LUState) (float64, bool) { return lu.Difficulty, true })
	counts := o.indexByDay(from, to, func(lu *domain.LUState) (float64, bool) { return 1, true })
	out := make([]float64, len(sums))
	for i, s := range sums {
		if counts[i] == 0 {
			out[i] = 0.0
			continue
		}
		out[i] = s / counts[i]
	}
	return out, nil
}

// indexByDay buckets value(lu) for every tracked LU whose NextReview falls
// within [from, to], by day offset from from.
func (o *MemoryOracle) indexByDay(from, to time.Time, value func(*domain.LUState) (float64, bool)) []float64 {
	length := int(to.Sub(from).Hours()/24) + 1
	buckets := make([]float64, length)

	for _, lu := range o.states {
		if lu.NextReview == nil {
			continue
		}
		if o.excludeRef != nil && lu.OpaqueRef == o.excludeRef {
			continue
		}
		offset := int(lu.NextReview.Sub(from).Hours() / 24)
		if offset < 0 || offset >= length {
			continue
		}
		v, ok := value(lu)
		if !ok {
			continue
		}
		buckets[offset] += v
	}
	return buckets
}
