package ssrf

import (
	"testing"

	"github.com/mlapinski/openmemo/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestInterval_AtLeastOne(t *testing.T) {
	cases := []struct {
		n     int
		ag    float64
		grade int
		p     domain.Priority
	}{
		{1, 0.0, -1, domain.PriorityHigh},
		{1, 0.0, 0, domain.PriorityHigh},
		{100, 5.0, 5, domain.PriorityLow},
	}
	for _, c := range cases {
		assert.GreaterOrEqual(t, Interval(c.n, c.ag, c.grade, c.p), 1)
	}
}

func TestInterval_MonotoneInN(t *testing.T) {
	for n := 1; n < 20; n++ {
		assert.LessOrEqual(t, Interval(n, 3.0, 3, domain.PriorityMid), Interval(n+1, 3.0, 3, domain.PriorityMid))
	}
}

func TestInterval_MonotoneInAvgGrade(t *testing.T) {
	ags := []float64{0.0, 1.0, 2.0, 3.0, 4.0, 5.0}
	for i := 0; i < len(ags)-1; i++ {
		assert.LessOrEqual(t, Interval(5, ags[i], 3, domain.PriorityMid), Interval(5, ags[i+1], 3, domain.PriorityMid))
	}
}

func TestInterval_MonotoneInGrade(t *testing.T) {
	for g := -1; g < 5; g++ {
		assert.LessOrEqual(t, Interval(5, 3.0, g, domain.PriorityMid), Interval(5, 3.0, g+1, domain.PriorityMid))
	}
}

func TestInterval_NonIncreasingInPriority(t *testing.T) {
	assert.GreaterOrEqual(t, Interval(5, 3.0, 3, domain.PriorityLow), Interval(5, 3.0, 3, domain.PriorityMid))
	assert.GreaterOrEqual(t, Interval(5, 3.0, 3, domain.PriorityMid), Interval(5, 3.0, 3, domain.PriorityHigh))
}

func TestInterval_S1Window(t *testing.T) {
	imin := Interval(1, 2.5, -1, domain.PriorityMid)
	imax := Interval(1, 2.5, 0, domain.PriorityMid)
	assert.Equal(t, 1, imin)
	assert.Equal(t, 1, imax)
}

func TestInterval_S4Window(t *testing.T) {
	imin := Interval(1, 2.5, 4, domain.PriorityMid)
	imax := Interval(1, 2.5, 5, domain.PriorityMid)
	assert.Equal(t, 4, imin)
	assert.Equal(t, 8, imax)
}
