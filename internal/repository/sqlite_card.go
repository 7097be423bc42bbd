package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mlapinski/openmemo/internal/db"
	"github.com/mlapinski/openmemo/internal/domain"
)

// SQLiteCardRepo implements CardRepo against a db.DBTX, so it can run
// standalone against a *sql.DB or scoped to a transaction's *sql.Tx.
type SQLiteCardRepo struct {
	db db.DBTX
}

// NewSQLiteCardRepo creates a new SQLiteCardRepo.
func NewSQLiteCardRepo(conn db.DBTX) *SQLiteCardRepo {
	return &SQLiteCardRepo{db: conn}
}

func (r *SQLiteCardRepo) Create(ctx context.Context, c *domain.Card) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cards (id, question, answer, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Question, c.Answer,
		c.CreatedAt.Format(time.RFC3339), c.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting card: %w", err)
	}
	for _, res := range c.Resources {
		if err := r.insertResource(ctx, c.ID, res); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteCardRepo) insertResource(ctx context.Context, cardID string, res domain.Resource) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO resources (id, card_id, filename, mime_type, data)
		VALUES (?, ?, ?, ?, ?)`,
		res.ID, cardID, res.Filename, res.MimeType, res.Data)
	if err != nil {
		return fmt.Errorf("inserting resource: %w", err)
	}
	return nil
}

func (r *SQLiteCardRepo) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, question, answer, created_at, updated_at FROM cards WHERE id = ?`, id)
	c, err := r.scanCard(row)
	if err != nil {
		return nil, err
	}
	resources, err := r.resourcesForCard(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Resources = resources
	return c, nil
}

func (r *SQLiteCardRepo) List(ctx context.Context) ([]*domain.Card, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, question, answer, created_at, updated_at FROM cards ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing cards: %w", err)
	}
	defer rows.Close()

	var cards []*domain.Card
	for rows.Next() {
		c, err := r.scanCardFromRows(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cards: %w", err)
	}

	for _, c := range cards {
		resources, err := r.resourcesForCard(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		c.Resources = resources
	}
	return cards, nil
}

func (r *SQLiteCardRepo) Update(ctx context.Context, c *domain.Card) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cards SET question = ?, answer = ?, updated_at = ? WHERE id = ?`,
		c.Question, c.Answer, c.UpdatedAt.Format(time.RFC3339), c.ID)
	if err != nil {
		return fmt.Errorf("updating card: %w", err)
	}
	return checkRowsAffected(res, "card")
}

func (r *SQLiteCardRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting card: %w", err)
	}
	return checkRowsAffected(res, "card")
}

func (r *SQLiteCardRepo) resourcesForCard(ctx context.Context, cardID string) ([]domain.Resource, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, card_id, filename, mime_type, data FROM resources WHERE card_id = ?`, cardID)
	if err != nil {
		return nil, fmt.Errorf("listing resources: %w", err)
	}
	defer rows.Close()

	var resources []domain.Resource
	for rows.Next() {
		var res domain.Resource
		if err := rows.Scan(&res.ID, &res.CardID, &res.Filename, &res.MimeType, &res.Data); err != nil {
			return nil, fmt.Errorf("scanning resource: %w", err)
		}
		resources = append(resources, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating resources: %w", err)
	}
	return resources, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteCardRepo) scanCard(row rowScanner) (*domain.Card, error) {
	return scanCardRow(row)
}

func (r *SQLiteCardRepo) scanCardFromRows(rows *sql.Rows) (*domain.Card, error) {
	return scanCardRow(rows)
}

func scanCardRow(row rowScanner) (*domain.Card, error) {
	var c domain.Card
	var createdAt, updatedAt string
	if err := row.Scan(&c.ID, &c.Question, &c.Answer, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning card: %w", err)
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	c.CreatedAt = t
	t, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	c.UpdatedAt = t
	return &c, nil
}

func checkRowsAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
