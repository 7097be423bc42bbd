package ssrf

import (
	"math"

	"github.com/mlapinski/openmemo/internal/domain"
)

// Interval computes SSRF(n, AG, G, P): the day interval before an item with
// n prior review sessions, running average grade AG, most recent grade G,
// and priority P should next be reviewed.
//
// G is permitted to be -1, the sentinel used to derive Imin from a grade of
// 0 (§4.4 step 2). The result is always >= 1.
func Interval(n int, avgGrade float64, grade int, priority domain.Priority) int {
	raw := math.Pow(float64(n), avgGrade/2) * math.Exp(float64(grade)-float64(priority))
	return 1 + int(roundHalfAwayFromZero(raw))
}

func roundHalfAwayFromZero(x float64) float64 {
	if x < 0 {
		return math.Ceil(x - 0.5)
	}
	return math.Floor(x + 0.5)
}
