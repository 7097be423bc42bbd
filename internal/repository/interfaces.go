package repository

import (
	"context"
	"time"

	"github.com/mlapinski/openmemo/internal/domain"
)

// CardRepo persists domain.Card records.
type CardRepo interface {
	Create(ctx context.Context, c *domain.Card) error
	GetByID(ctx context.Context, id string) (*domain.Card, error)
	List(ctx context.Context) ([]*domain.Card, error)
	Update(ctx context.Context, c *domain.Card) error
	Delete(ctx context.Context, id string) error
}

// LUStateRepo persists domain.LUState records, one per card.
type LUStateRepo interface {
	Create(ctx context.Context, cardID string, lu *domain.LUState) error
	GetByCardID(ctx context.Context, cardID string) (*domain.LUState, error)
	Update(ctx context.Context, cardID string, lu *domain.LUState) error
	Delete(ctx context.Context, cardID string) error

	// ListDue returns every LUState with status MEMORIZED whose NextReview
	// is on or before asOf, plus every LUState with status FINAL_DRILL
	// (final-drill items are always due within the current session).
	ListDue(ctx context.Context, asOf time.Time) ([]*domain.LUState, error)

	// ListAll returns every LUState, for oracle construction and export.
	ListAll(ctx context.Context) ([]*domain.LUState, error)
}
