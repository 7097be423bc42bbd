package ssrf

import (
	"context"
	"time"
)

// WorkloadOracle is a read-only view over the forward-looking per-day
// aggregate state the scheduler needs. Both queries cover an inclusive
// [from, to] day range and must not count the item currently being
// scheduled. The oracle is pure with respect to a single scheduling call:
// there is no visible mutation between the two queries.
//
// context.Context is threaded through because the SQLite implementation in
// this repo does I/O; the in-memory one ignores it.
type WorkloadOracle interface {
	// GetWorkloads returns the number of items already scheduled for each
	// day in [from, to], length to-from+1, each entry >= 0.
	GetWorkloads(ctx context.Context, from, to time.Time) ([]int, error)

	// GetAvgDifficulties returns the mean difficulty of items scheduled on
	// each day in [from, to], length to-from+1, each entry >= 0.0.
	GetAvgDifficulties(ctx context.Context, from, to time.Time) ([]float64, error)
}
