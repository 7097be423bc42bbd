package ssrf

import (
	"fmt"

	"github.com/mlapinski/openmemo/internal/domain"
)

// validate checks the §3.4 invariants on lu, returning a *ContractViolation
// naming the first offending field.
func validate(lu *domain.LUState) error {
	if !lu.Grade.Valid() {
		return newViolation(ViolationInvalidGrade, fmt.Sprintf("grade must be in 0..5, got %d", lu.Grade))
	}
	if lu.NumReviews < 1 {
		return newViolation(ViolationInvalidNumReviews, fmt.Sprintf("num_reviews must be >= 1, got %d", lu.NumReviews))
	}
	if lu.AvgGrade < 0.0 || lu.AvgGrade > 5.0 {
		return newViolation(ViolationInvalidAvgGrade, fmt.Sprintf("avg_grade must be in [0.0, 5.0], got %v", lu.AvgGrade))
	}
	if !lu.Priority.Valid() {
		return newViolation(ViolationInvalidPriority, fmt.Sprintf("priority must be one of {2.0, 3.0, 4.0}, got %v", lu.Priority))
	}
	if lu.Difficulty < 0.0 {
		return newViolation(ViolationInvalidDifficulty, fmt.Sprintf("difficulty must be >= 0.0, got %v", lu.Difficulty))
	}
	return nil
}

// FillInitial sets lu to the state of a freshly introduced learning unit
// (§4.5). Callers may override Priority before the first Schedule call.
func FillInitial(lu *domain.LUState) {
	lu.Grade = domain.GradeNotRecognized
	lu.NumReviews = 1
	lu.AvgGrade = 2.5
	lu.Priority = domain.PriorityMid
	lu.Difficulty = 0.0
	lu.Status = domain.StatusMemorized
}
