package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mlapinski/openmemo/internal/db"
	"github.com/mlapinski/openmemo/internal/domain"
	"github.com/mlapinski/openmemo/internal/importer"
	"github.com/mlapinski/openmemo/internal/importer/csv"
	"github.com/mlapinski/openmemo/internal/importer/smqa"
	"github.com/mlapinski/openmemo/internal/markup"
	"github.com/mlapinski/openmemo/internal/repository"
	"github.com/mlapinski/openmemo/internal/ssrf"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewImportService wires the import use cases against uow, running each
// import inside a single transaction.
func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportCSV(ctx context.Context, path string, defaultPriority domain.Priority) (*ImportResult, error) {
	return s.runImport(ctx, "import.csv", path, defaultPriority, csv.NewImporter().Import)
}

func (s *importService) ImportSuperMemoQA(ctx context.Context, path string, defaultPriority domain.Priority) (*ImportResult, error) {
	return s.runImport(ctx, "import.smqa", path, defaultPriority, smqa.NewImporter().Import)
}

func (s *importService) runImport(
	ctx context.Context,
	useCase string,
	path string,
	defaultPriority domain.Priority,
	parse func(io.Reader) ([]importer.ImportedCard, error),
) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"path": path}
	defer func() {
		if result != nil {
			fields["card_count"] = result.CardCount
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      useCase,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	f, err := os.Open(path)
	if err != nil {
		return nil, newImportError(ImportErrReadFile, "opening %q: %v", path, err)
	}
	imported, err := parse(f)
	closeErr := f.Close()
	if err != nil {
		return nil, newImportError(ImportErrConversion, "parsing %q: %v", path, err)
	}
	if closeErr != nil {
		return nil, newImportError(ImportErrReadFile, "closing %q: %v", path, closeErr)
	}

	rewriter := markup.NewRewriter(filepath.Dir(path))
	now := time.Now().UTC()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCards := repository.NewSQLiteCardRepo(tx)
		txLUStates := repository.NewSQLiteLUStateRepo(tx)

		for _, ic := range imported {
			card := &domain.Card{
				ID:        uuid.New().String(),
				CreatedAt: now,
				UpdatedAt: now,
			}
			collector := &resourceCollector{cardID: card.ID}

			question, err := rewriter.RewriteForImport(ic.Question, collector)
			if err != nil {
				return fmt.Errorf("rewriting question html: %w", err)
			}
			answer, err := rewriter.RewriteForImport(ic.Answer, collector)
			if err != nil {
				return fmt.Errorf("rewriting answer html: %w", err)
			}
			card.Question = question
			card.Answer = answer
			card.Resources = collector.resources

			if err := txCards.Create(ctx, card); err != nil {
				return fmt.Errorf("creating card: %w", err)
			}

			lu := &domain.LUState{OpaqueRef: card.ID}
			ssrf.FillInitial(lu)
			lu.Priority = defaultPriority
			if err := txLUStates.Create(ctx, card.ID, lu); err != nil {
				return fmt.Errorf("creating lu_state for card %s: %w", card.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, newImportError(ImportErrPersist, "importing %q: %v", path, err)
	}

	return &ImportResult{CardCount: len(imported)}, nil
}

// resourceCollector implements markup.ResourceSaver, accumulating the
// resources discovered while rewriting one card's HTML.
type resourceCollector struct {
	cardID    string
	resources []domain.Resource
}

func (c *resourceCollector) SaveResource(res domain.Resource) (string, error) {
	res.ID = uuid.New().String()
	res.CardID = c.cardID
	c.resources = append(c.resources, res)
	return res.ID, nil
}
