package ssrf

import (
	"context"
	"testing"
	"time"

	"github.com/mlapinski/openmemo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubOracle returns fixed workload/difficulty sequences and records
// whether each query was invoked, for asserting the §5 call-ordering
// contract.
type stubOracle struct {
	workloads       []int
	avgDifficulties []float64
	workloadsCalled bool
	avgDiffCalled   bool
	callOrder       []string
}

func (o *stubOracle) GetWorkloads(ctx context.Context, from, to time.Time) ([]int, error) {
	o.workloadsCalled = true
	o.callOrder = append(o.callOrder, "workloads")
	return o.workloads, nil
}

func (o *stubOracle) GetAvgDifficulties(ctx context.Context, from, to time.Time) ([]float64, error) {
	o.avgDiffCalled = true
	o.callOrder = append(o.callOrder, "avg_difficulties")
	return o.avgDifficulties, nil
}

func fixedToday() time.Time {
	return time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
}

func TestSchedule_S1_FirstReviewGradeZero(t *testing.T) {
	lu := &domain.LUState{}
	FillInitial(lu)
	lu.Grade = domain.GradeNotRecognized

	oracle := &stubOracle{workloads: []int{0}}
	s := New(oracle)
	now := fixedToday()

	err := s.Schedule(context.Background(), lu, &now)
	require.NoError(t, err)

	assert.Equal(t, 2, lu.NumReviews)
	assert.InDelta(t, 1.25, lu.AvgGrade, 1e-9)
	assert.InDelta(t, 1.50, lu.Difficulty, 0.01)
	assert.Equal(t, domain.StatusFinalDrill, lu.Status)
	require.NotNil(t, lu.NextReview)
	assert.Equal(t, now.AddDate(0, 0, 1).Day(), lu.NextReview.Day())
	assert.False(t, oracle.avgDiffCalled, "shortcut path must not query difficulties")
}

func TestSchedule_S2_FirstReviewGradeTwo(t *testing.T) {
	lu := &domain.LUState{}
	FillInitial(lu)
	lu.Grade = domain.GradeRecognized

	oracle := &stubOracle{workloads: []int{5}, avgDifficulties: []float64{0.88}}
	s := New(oracle)
	now := fixedToday()

	err := s.Schedule(context.Background(), lu, &now)
	require.NoError(t, err)

	assert.Equal(t, 2, lu.NumReviews)
	assert.InDelta(t, 2.25, lu.AvgGrade, 1e-9)
	assert.InDelta(t, 1.50, lu.Difficulty, 0.01)
	assert.Equal(t, domain.StatusFinalDrill, lu.Status)
	assert.Equal(t, now.AddDate(0, 0, 1).Day(), lu.NextReview.Day())
}

func TestSchedule_S3_FirstReviewGradeThree(t *testing.T) {
	lu := &domain.LUState{}
	FillInitial(lu)
	lu.Grade = domain.GradePartialRecall

	oracle := &stubOracle{workloads: []int{0, 1}}
	s := New(oracle)
	now := fixedToday()

	err := s.Schedule(context.Background(), lu, &now)
	require.NoError(t, err)

	assert.Equal(t, 2, lu.NumReviews)
	assert.InDelta(t, 2.75, lu.AvgGrade, 1e-9)
	assert.InDelta(t, 1.50, lu.Difficulty, 0.01)
	assert.Equal(t, domain.StatusMemorized, lu.Status)
	assert.Equal(t, now.AddDate(0, 0, 1).Day(), lu.NextReview.Day())
}

func TestSchedule_S4_FirstReviewGradeFive(t *testing.T) {
	lu := &domain.LUState{}
	FillInitial(lu)
	lu.Grade = domain.GradeInstantRecall

	oracle := &stubOracle{
		workloads:       []int{5, 3, 2, 4, 8},
		avgDifficulties: []float64{2.5, 0.3, 0.1, 1.1, 0.8},
	}
	s := New(oracle)
	now := fixedToday()

	err := s.Schedule(context.Background(), lu, &now)
	require.NoError(t, err)

	assert.Equal(t, 2, lu.NumReviews)
	assert.InDelta(t, 3.75, lu.AvgGrade, 1e-9)
	assert.InDelta(t, 0.41, lu.Difficulty, 0.01)
	assert.Equal(t, domain.StatusMemorized, lu.Status)
	assert.Equal(t, now.AddDate(0, 0, 5).Day(), lu.NextReview.Day())
	assert.True(t, oracle.workloadsCalled)
	assert.True(t, oracle.avgDiffCalled)
	assert.Equal(t, []string{"workloads", "avg_difficulties"}, oracle.callOrder)
}

func TestSchedule_S5_ConsecutiveGradeTwo(t *testing.T) {
	lu := &domain.LUState{
		Grade:      domain.GradeRecognized,
		NumReviews: 3,
		AvgGrade:   3.7,
		Priority:   domain.PriorityLow,
		Difficulty: 1.70,
		Status:     domain.StatusMemorized,
	}

	oracle := &stubOracle{
		workloads:       []int{63, 40, 33, 20, 18, 50},
		avgDifficulties: []float64{6.0, 2.2, 1.5, 1.6, 3.5, 5.1},
	}
	s := New(oracle)
	now := fixedToday()

	err := s.Schedule(context.Background(), lu, &now)
	require.NoError(t, err)

	assert.Equal(t, 4, lu.NumReviews)
	assert.InDelta(t, 3.28, lu.AvgGrade, 0.01)
	assert.InDelta(t, 3.56, lu.Difficulty, 0.01)
	assert.Equal(t, domain.StatusFinalDrill, lu.Status)
}

func TestSchedule_S6_FinalDrillFastPath(t *testing.T) {
	lastReview := fixedToday().AddDate(0, 0, -3)
	nextReview := fixedToday().AddDate(0, 0, 2)
	lu := &domain.LUState{
		Grade:      domain.GradeInstantRecall,
		NumReviews: 5,
		AvgGrade:   3.2,
		Priority:   domain.PriorityMid,
		Difficulty: 0.75,
		Status:     domain.StatusFinalDrill,
		LastReview: &lastReview,
		NextReview: &nextReview,
	}

	oracle := &stubOracle{}
	s := New(oracle)
	now := fixedToday()

	err := s.Schedule(context.Background(), lu, &now)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusMemorized, lu.Status)
	assert.Equal(t, 5, lu.NumReviews)
	assert.InDelta(t, 3.2, lu.AvgGrade, 1e-9)
	assert.InDelta(t, 0.75, lu.Difficulty, 1e-9)
	require.NotNil(t, lu.NextReview)
	assert.Equal(t, nextReview, *lu.NextReview, "next_review must be untouched on the drill path")
	assert.False(t, oracle.workloadsCalled, "final-drill fast path must not call the oracle")
	assert.False(t, oracle.avgDiffCalled, "final-drill fast path must not call the oracle")
}

func TestSchedule_NowNilUsesCurrentInstant(t *testing.T) {
	lu := &domain.LUState{}
	FillInitial(lu)
	lu.Grade = domain.GradeNotRecognized

	oracle := &stubOracle{workloads: []int{0}}
	s := New(oracle)

	err := s.Schedule(context.Background(), lu, nil)
	require.NoError(t, err)
	assert.NotNil(t, lu.LastReview)
}

func TestSchedule_PostconditionIntervalBounds(t *testing.T) {
	lu := &domain.LUState{}
	FillInitial(lu)
	lu.Grade = domain.GradeInstantRecall

	oracle := &stubOracle{
		workloads:       []int{5, 3, 2, 4, 8},
		avgDifficulties: []float64{2.5, 0.3, 0.1, 1.1, 0.8},
	}
	s := New(oracle)
	now := fixedToday()
	today := dateOnly(now)

	require.NoError(t, s.Schedule(context.Background(), lu, &now))

	imin := Interval(1, 2.5, 4, domain.PriorityMid)
	imax := Interval(1, 2.5, 5, domain.PriorityMid)
	gotDays := int(lu.NextReview.Sub(today).Hours() / 24)
	assert.GreaterOrEqual(t, gotDays, imin)
	assert.LessOrEqual(t, gotDays, imax)
}
