package service

import (
	"context"
	"time"

	"github.com/mlapinski/openmemo/internal/domain"
)

// ReviewService runs the day-to-day review loop: listing due cards,
// creating new ones, and recording grades through the scheduler.
type ReviewService interface {
	DueCards(ctx context.Context, now *time.Time) ([]*domain.Card, error)
	SubmitGrade(ctx context.Context, cardID string, grade domain.Grade, now *time.Time) (*domain.LUState, error)
	NewCard(ctx context.Context, question, answer string, priority domain.Priority) (*domain.Card, error)
}

// ImportResult summarizes a completed import.
type ImportResult struct {
	CardCount int
}

// ImportService loads cards from a deck file into the store, assigning
// each a fresh LUState via ssrf.FillInitial.
type ImportService interface {
	ImportCSV(ctx context.Context, path string, defaultPriority domain.Priority) (*ImportResult, error)
	ImportSuperMemoQA(ctx context.Context, path string, defaultPriority domain.Priority) (*ImportResult, error)
}

// ExportService writes the full card store back out to a deck file.
type ExportService interface {
	ExportCSV(ctx context.Context, path string) error
	ExportSuperMemoQA(ctx context.Context, path string) error
}
