package ssrf

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/mlapinski/openmemo/internal/domain"
)

// Scheduler chooses the next review date for a learning unit by jointly
// optimising local accuracy (spacing) and global accuracy (load smoothing).
// It is a pure, single-threaded, synchronous collaborator: one Schedule call
// mutates exactly one LUState and makes at most two calls to the oracle.
type Scheduler struct {
	oracle WorkloadOracle
}

// New constructs a Scheduler backed by oracle. The oracle is borrowed for
// the duration of every Schedule call; ownership never transfers.
func New(oracle WorkloadOracle) *Scheduler {
	return &Scheduler{oracle: oracle}
}

// FillInitial sets lu to the initial state of a freshly introduced learning
// unit (§4.5).
func (s *Scheduler) FillInitial(lu *domain.LUState) {
	FillInitial(lu)
}

// Schedule chooses a day within [Imin, Imax] for lu's next review by
// consulting the oracle and minimising post-insertion load, and writes the
// result back into lu. If now is nil, the current UTC instant is used.
//
// Every error from the scheduler's own checks is a *ContractViolation; an
// error returned by the oracle is passed back unchanged. On any error lu is
// left exactly as it was before the call.
func (s *Scheduler) Schedule(ctx context.Context, lu *domain.LUState, now *time.Time) error {
	if err := validate(lu); err != nil {
		return err
	}

	instant := time.Now().UTC()
	if now != nil {
		instant = *now
	}
	today := dateOnly(instant)

	// Snapshot so a violation discovered mid-algorithm leaves lu untouched.
	snapshot := *lu

	if lu.Status == domain.StatusFinalDrill {
		updateStatus(lu)
		lastReview := instant
		lu.LastReview = &lastReview
		return nil
	}

	imin := Interval(lu.NumReviews, lu.AvgGrade, int(lu.Grade)-1, lu.Priority)
	imax := Interval(lu.NumReviews, lu.AvgGrade, int(lu.Grade), lu.Priority)
	if imin > imax {
		*lu = snapshot
		return newViolation(ViolationIntervalOrder, fmt.Sprintf("Imin (%d) > Imax (%d)", imin, imax))
	}

	from := today.AddDate(0, 0, imin)
	to := today.AddDate(0, 0, imax)
	length := imax - imin + 1

	w, err := s.oracle.GetWorkloads(ctx, from, to)
	if err != nil {
		*lu = snapshot
		return err
	}
	if len(w) != length {
		*lu = snapshot
		return newViolation(ViolationOracleLength, fmt.Sprintf("get_workloads returned %d values, want %d", len(w), length))
	}
	for _, v := range w {
		if v < 0 {
			*lu = snapshot
			return newViolation(ViolationNegativeWorkload, fmt.Sprintf("workload must be >= 0, got %d", v))
		}
	}

	var chosenOffset int
	if k, ok := largestZero(w); ok {
		chosenOffset = k
	} else {
		ad, err := s.oracle.GetAvgDifficulties(ctx, from, to)
		if err != nil {
			*lu = snapshot
			return err
		}
		if len(ad) != len(w) {
			*lu = snapshot
			return newViolation(ViolationOracleLength, fmt.Sprintf("get_avg_difficulties returned %d values, want %d", len(ad), len(w)))
		}
		for _, v := range ad {
			if v < 0.0 {
				*lu = snapshot
				return newViolation(ViolationNegativeDifficulty, fmt.Sprintf("average difficulty must be >= 0.0, got %v", v))
			}
		}

		wNew := make([]int, len(w))
		adNew := make([]float64, len(ad))
		for i := range w {
			wNew[i] = w[i] + 1
			dNew := Difficulty(lu.NumReviews, lu.Priority, imin+i)
			adNew[i] = (float64(w[i])*ad[i] + dNew) / float64(wNew[i])
		}

		lcOld := LoadCoeff(w, ad)
		lcNew := LoadCoeff(wNew, adNew)

		chosenOffset = chooseMinRatio(lcOld, lcNew)
	}

	iChosen := imin + chosenOffset

	numReviewsOld := lu.NumReviews
	lu.NumReviews = numReviewsOld + 1
	lu.AvgGrade = (lu.AvgGrade*float64(numReviewsOld) + float64(lu.Grade)) / float64(lu.NumReviews)
	lu.Difficulty = Difficulty(numReviewsOld, lu.Priority, iChosen)
	updateStatus(lu)

	lastReview := instant
	lu.LastReview = &lastReview
	nextReview := combine(today.AddDate(0, 0, iChosen), instant)
	lu.NextReview = &nextReview

	return nil
}

// updateStatus applies the §4.4.4 transition rule using lu.Grade.
func updateStatus(lu *domain.LUState) {
	if lu.Grade.IsFinalDrill() {
		lu.Status = domain.StatusFinalDrill
	} else {
		lu.Status = domain.StatusMemorized
	}
}

// largestZero returns the largest index i with w[i] == 0, and true, or
// (0, false) if no such index exists.
func largestZero(w []int) (int, bool) {
	for i := len(w) - 1; i >= 0; i-- {
		if w[i] == 0 {
			return i, true
		}
	}
	return 0, false
}

// chooseMinRatio returns the largest index k minimising lcNew[k]/lcOld[k],
// treating a zero lcOld[k] as an infinite ratio.
func chooseMinRatio(lcOld, lcNew []float64) int {
	best := 0
	bestRatio := ratio(lcOld[0], lcNew[0])
	for i := 1; i < len(lcOld); i++ {
		r := ratio(lcOld[i], lcNew[i])
		if r <= bestRatio {
			bestRatio = r
			best = i
		}
	}
	return best
}

func ratio(old, updated float64) float64 {
	if old == 0 {
		return math.Inf(1)
	}
	return updated / old
}

// dateOnly truncates t to its calendar day in t's own location.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// combine pairs a calendar day with a time-of-day taken from clock.
func combine(day, clock time.Time) time.Time {
	y, m, d := day.Date()
	h, min, s := clock.Clock()
	return time.Date(y, m, d, h, min, s, clock.Nanosecond(), clock.Location())
}
