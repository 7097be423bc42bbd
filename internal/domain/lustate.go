package domain

import "time"

// LUState is the per-learning-unit record the scheduler reads and writes.
// OpaqueRef is never inspected by the scheduler; this repo uses it to hold
// the owning Card's ID.
type LUState struct {
	OpaqueRef   any
	Grade       Grade
	NumReviews  int
	AvgGrade    float64
	Priority    Priority
	Difficulty  float64
	Status      LUStatus
	LastReview  *time.Time
	NextReview  *time.Time
}
