package ssrf

import (
	"math"

	"github.com/mlapinski/openmemo/internal/domain"
)

// Difficulty compares an item's realised interval against the ideal
// interval for its priority, for an item with n prior reviews.
//
// D is non-negative whenever lastInterval <= the ideal interval; callers
// must uphold that, or the scheduler signals a contract violation.
func Difficulty(n int, priority domain.Priority, lastInterval int) float64 {
	ideal := Interval(n, 5.0, 5, priority)
	return math.Log(float64(ideal+1) / float64(lastInterval+1))
}
