package oracle

import (
	"context"
	"fmt"
	"time"
)

// maxRangeGuard wraps a WorkloadOracle and refuses any query spanning more
// than maxDays, so a pathological SSRF interval can't force an unbounded
// range query against the underlying store.
type maxRangeGuard struct {
	inner   WorkloadOracle
	maxDays int
}

// WorkloadOracle mirrors ssrf.WorkloadOracle without importing it, so this
// package stays free of a dependency on the scheduler package.
type WorkloadOracle interface {
	GetWorkloads(ctx context.Context, from, to time.Time) ([]int, error)
	GetAvgDifficulties(ctx context.Context, from, to time.Time) ([]float64, error)
}

// NewMaxRangeGuard wraps inner so that any [from, to] query spanning more
// than maxDays calendar days is rejected before reaching inner. A
// non-positive maxDays disables the guard.
func NewMaxRangeGuard(inner WorkloadOracle, maxDays int) WorkloadOracle {
	if maxDays <= 0 {
		return inner
	}
	return &maxRangeGuard{inner: inner, maxDays: maxDays}
}

func (g *maxRangeGuard) GetWorkloads(ctx context.Context, from, to time.Time) ([]int, error) {
	if err := g.checkRange(from, to); err != nil {
		return nil, err
	}
	return g.inner.GetWorkloads(ctx, from, to)
}

func (g *maxRangeGuard) GetAvgDifficulties(ctx context.Context, from, to time.Time) ([]float64, error) {
	if err := g.checkRange(from, to); err != nil {
		return nil, err
	}
	return g.inner.GetAvgDifficulties(ctx, from, to)
}

func (g *maxRangeGuard) checkRange(from, to time.Time) error {
	days := int(to.Sub(from).Hours()/24) + 1
	if days > g.maxDays {
		return fmt.Errorf("oracle query spans %d days, exceeds the %d day safety cap", days, g.maxDays)
	}
	return nil
}
