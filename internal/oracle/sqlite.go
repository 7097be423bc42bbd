package oracle

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLiteOracle answers WorkloadOracle queries against the lu_states table,
// excluding the learning unit currently being scheduled.
type SQLiteOracle struct {
	db         *sql.DB
	excludeRef string
}

// NewSQLiteOracle builds a SQLiteOracle over db. excludeCardID, if
// non-empty, is the card ID of the LU currently being scheduled; it is
// excluded from both queries per §3.5.
func NewSQLiteOracle(db *sql.DB, excludeCardID string) *SQLiteOracle {
	return &SQLiteOracle{db: db, excludeRef: excludeCardID}
}

func (o *SQLiteOracle) GetWorkloads(ctx context.Context, from, to time.Time) ([]int, error) {
	rows, err := o.db.QueryContext(ctx, `
		SELECT date(next_review), COUNT(*)
		FROM lu_states
		WHERE date(next_review) BETWEEN ? AND ?
		  AND card_id != ?
		GROUP BY date(next_review)`,
		from.Format(dayLayout), to.Format(dayLayout), o.excludeRef)
	if err != nil {
		return nil, fmt.Errorf("querying workloads: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var day string
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("scanning workload row: %w", err)
		}
		counts[day] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating workload rows: %w", err)
	}

	return fillByDay(from, to, func(day string) int { return counts[day] }), nil
}

func (o *SQLiteOracle) GetAvgDifficulties(ctx context.Context, from, to time.Time) ([]float64, error) {
	rows, err := o.db.QueryContext(ctx, `
		SELECT date(next_review), AVG(difficulty)
		FROM lu_states
		WHERE date(next_review) BETWEEN ? AND ?
		  AND card_id != ?
		GROUP BY date(next_review)`,
		from.Format(dayLayout), to.Format(dayLayout), o.excludeRef)
	if err != nil {
		return nil, fmt.Errorf("querying average difficulties: %w", err)
	}
	defer rows.Close()

	avgs := make(map[string]float64)
	for rows.Next() {
		var day string
		var avg float64
		if err := rows.Scan(&day, &avg); err != nil {
			return nil, fmt.Errorf("scanning difficulty row: %w", err)
		}
		avgs[day] = avg
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating difficulty rows: %w", err)
	}

	return fillByDayFloat(from, to, func(day string) float64 { return avgs[day] }), nil
}

// fillByDay fills the [from, to] inclusive day range with lookup(day),
// defaulting missing days to 0, so the returned slice always has length
// to-from+1 regardless of which days actually had rows.
func fillByDay(from, to time.Time, lookup func(day string) int) []int {
	length := int(to.Sub(from).Hours()/24) + 1
	out := make([]int, length)
	for i := 0; i < length; i++ {
		day := from.AddDate(0, 0, i).Format(dayLayout)
		out[i] = lookup(day)
	}
	return out
}

func fillByDayFloat(from, to time.Time, lookup func(day string) float64) []float64 {
	length := int(to.Sub(from).Hours()/24) + 1
	out := make([]float64, length)
	for i := 0; i < length; i++ {
		day := from.AddDate(0, 0, i).Format(dayLayout)
		out[i] = lookup(day)
	}
	return out
}
