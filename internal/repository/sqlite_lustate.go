package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mlapinski/openmemo/internal/db"
	"github.com/mlapinski/openmemo/internal/domain"
)

// SQLiteLUStateRepo implements LUStateRepo against a db.DBTX, so it can run
// standalone against a *sql.DB or scoped to a transaction's *sql.Tx.
type SQLiteLUStateRepo struct {
	db db.DBTX
}

// NewSQLiteLUStateRepo creates a new SQLiteLUStateRepo.
func NewSQLiteLUStateRepo(conn db.DBTX) *SQLiteLUStateRepo {
	return &SQLiteLUStateRepo{db: conn}
}

func (r *SQLiteLUStateRepo) Create(ctx context.Context, cardID string, lu *domain.LUState) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO lu_states (card_id, grade, num_reviews, avg_grade, priority, difficulty, status, last_review, next_review)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cardID, int(lu.Grade), lu.NumReviews, lu.AvgGrade, float64(lu.Priority), lu.Difficulty, string(lu.Status),
		nullableTimeToString(lu.LastReview), nullableTimeToString(lu.NextReview))
	if err != nil {
		return fmt.Errorf("inserting lu_state: %w", err)
	}
	return nil
}

func (r *SQLiteLUStateRepo) GetByCardID(ctx context.Context, cardID string) (*domain.LUState, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT card_id, grade, num_reviews, avg_grade, priority, difficulty, status, last_review, next_review
		FROM lu_states WHERE card_id = ?`, cardID)
	return scanLUState(row)
}

func (r *SQLiteLUStateRepo) Update(ctx context.Context, cardID string, lu *domain.LUState) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE lu_states
		SET grade = ?, num_reviews = ?, avg_grade = ?, priority = ?, difficulty = ?, status = ?, last_review = ?, next_review = ?
		WHERE card_id = ?`,
		int(lu.Grade), lu.NumReviews, lu.AvgGrade, float64(lu.Priority), lu.Difficulty, string(lu.Status),
		nullableTimeToString(lu.LastReview), nullableTimeToString(lu.NextReview), cardID)
	if err != nil {
		return fmt.Errorf("updating lu_state: %w", err)
	}
	return checkRowsAffected(res, "lu_state")
}

func (r *SQLiteLUStateRepo) Delete(ctx context.Context, cardID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM lu_states WHERE card_id = ?`, cardID)
	if err != nil {
		return fmt.Errorf("deleting lu_state: %w", err)
	}
	return checkRowsAffected(res, "lu_state")
}

func (r *SQLiteLUStateRepo) ListDue(ctx context.Context, asOf time.Time) ([]*domain.LUState, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT card_id, grade, num_reviews, avg_grade, priority, difficulty, status, last_review, next_review
		FROM lu_states
		WHERE status = ? OR (status = ? AND next_review IS NOT NULL AND next_review <= ?)`,
		string(domain.StatusFinalDrill), string(domain.StatusMemorized), asOf.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("listing due lu_states: %w", err)
	}
	return scanLUStates(rows)
}

func (r *SQLiteLUStateRepo) ListAll(ctx context.Context) ([]*domain.LUState, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT card_id, grade, num_reviews, avg_grade, priority, difficulty, status, last_review, next_review
		FROM lu_states`)
	if err != nil {
		return nil, fmt.Errorf("listing lu_states: %w", err)
	}
	return scanLUStates(rows)
}

func scanLUStates(rows *sql.Rows) ([]*domain.LUState, error) {
	defer rows.Close()
	var states []*domain.LUState
	for rows.Next() {
		lu, err := scanLUState(rows)
		if err != nil {
			return nil, err
		}
		states = append(states, lu)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lu_states: %w", err)
	}
	return states, nil
}

func scanLUState(row rowScanner) (*domain.LUState, error) {
	var cardID, status string
	var grade, numReviews int
	var avgGrade, priority, difficulty float64
	var lastReview, nextReview sql.NullString

	err := row.Scan(&cardID, &grade, &numReviews, &avgGrade, &priority, &difficulty, &status, &lastReview, &nextReview)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning lu_state: %w", err)
	}

	return &domain.LUState{
		OpaqueRef:  cardID,
		Grade:      domain.Grade(grade),
		NumReviews: numReviews,
		AvgGrade:   avgGrade,
		Priority:   domain.Priority(priority),
		Difficulty: difficulty,
		Status:     domain.LUStatus(status),
		LastReview: parseNullableTime(lastReview),
		NextReview: parseNullableTime(nextReview),
	}, nil
}
