package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mlapinski/openmemo/internal/domain"
	"github.com/mlapinski/openmemo/internal/repository"
	"github.com/mlapinski/openmemo/internal/ssrf"
)

type reviewService struct {
	cards        repository.CardRepo
	lustates     repository.LUStateRepo
	newScheduler func(excludeCardID string) *ssrf.Scheduler
	observer     UseCaseObserver
}

// NewReviewService wires the review use cases against cards and lustates.
// newScheduler builds a *ssrf.Scheduler backed by an oracle that excludes
// excludeCardID (§3.5); it is called fresh for every Schedule/FillInitial
// call since the card being excluded changes from one call to the next.
func NewReviewService(
	cards repository.CardRepo,
	lustates repository.LUStateRepo,
	newScheduler func(excludeCardID string) *ssrf.Scheduler,
	observers ...UseCaseObserver,
) ReviewService {
	return &reviewService{
		cards:        cards,
		lustates:     lustates,
		newScheduler: newScheduler,
		observer:     useCaseObserverOrNoop(observers),
	}
}

func (s *reviewService) DueCards(ctx context.Context, now *time.Time) (cards []*domain.Card, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		fields["card_count"] = len(cards)
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "review.due-cards",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	asOf := time.Now().UTC()
	if now != nil {
		asOf = *now
	}

	due, err := s.lustates.ListDue(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("listing due lu_states: %w", err)
	}

	cards = make([]*domain.Card, 0, len(due))
	for _, lu := range due {
		cardID, _ := lu.OpaqueRef.(string)
		c, err := s.cards.GetByID(ctx, cardID)
		if err != nil {
			return nil, fmt.Errorf("loading card %s: %w", cardID, err)
		}
		cards = append(cards, c)
	}
	return cards, nil
}

func (s *reviewService) SubmitGrade(ctx context.Context, cardID string, grade domain.Grade, now *time.Time) (lu *domain.LUState, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"card_id": cardID,
		"grade":   int(grade),
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "review.submit-grade",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	lu, err = s.lustates.GetByCardID(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("loading lu_state for card %s: %w", cardID, err)
	}

	lu.Grade = grade
	if err := s.newScheduler(cardID).Schedule(ctx, lu, now); err != nil {
		return nil, fmt.Errorf("scheduling card %s: %w", cardID, err)
	}

	if err := s.lustates.Update(ctx, cardID, lu); err != nil {
		return nil, fmt.Errorf("persisting lu_state for card %s: %w", cardID, err)
	}
	return lu, nil
}

func (s *reviewService) NewCard(ctx context.Context, question, answer string, priority domain.Priority) (card *domain.Card, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "review.new-card",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	now := time.Now().UTC()
	card = &domain.Card{
		ID:        uuid.New().String(),
		Question:  question,
		Answer:    answer,
		CreatedAt: now,
		UpdatedAt: now,
	}
	fields["card_id"] = card.ID

	if err := s.cards.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("creating card: %w", err)
	}

	lu := &domain.LUState{OpaqueRef: card.ID}
	s.newScheduler("").FillInitial(lu)
	lu.Priority = priority

	if err := s.lustates.Create(ctx, card.ID, lu); err != nil {
		return nil, fmt.Errorf("creating lu_state for card %s: %w", card.ID, err)
	}
	return card, nil
}
