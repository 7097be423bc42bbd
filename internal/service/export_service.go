package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mlapinski/openmemo/internal/domain"
	"github.com/mlapinski/openmemo/internal/importer"
	"github.com/mlapinski/openmemo/internal/importer/csv"
	"github.com/mlapinski/openmemo/internal/importer/smqa"
	"github.com/mlapinski/openmemo/internal/markup"
	"github.com/mlapinski/openmemo/internal/repository"
)

type exportService struct {
	cards    repository.CardRepo
	observer UseCaseObserver
}

// NewExportService wires the export use cases against cards.
func NewExportService(cards repository.CardRepo, observers ...UseCaseObserver) ExportService {
	return &exportService{cards: cards, observer: useCaseObserverOrNoop(observers)}
}

func (s *exportService) ExportCSV(ctx context.Context, path string) error {
	exporter := csv.NewExporter()
	return s.runExport(ctx, "export.csv", path, exporter.Export)
}

func (s *exportService) ExportSuperMemoQA(ctx context.Context, path string) error {
	exporter := smqa.NewExporter()
	return s.runExport(ctx, "export.smqa", path, exporter.Export)
}

func (s *exportService) runExport(
	ctx context.Context,
	useCase string,
	path string,
	write func(io.Writer, []importer.ImportedCard) error,
) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"path": path}
	var cardCount int
	defer func() {
		fields["card_count"] = cardCount
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      useCase,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	cards, err := s.cards.List(ctx)
	if err != nil {
		return newExportError(ExportErrLoad, "listing cards: %v", err)
	}
	cardCount = len(cards)

	rewriter := markup.NewRewriter(filepath.Dir(path))
	exported := make([]importer.ImportedCard, 0, len(cards))
	for _, c := range cards {
		loader := resourceMapLoaderFromSlice(c.Resources)

		question, err := rewriter.RewriteForExport(c.Question, loader)
		if err != nil {
			return newExportError(ExportErrRewrite, "rewriting question html for card %s: %v", c.ID, err)
		}
		answer, err := rewriter.RewriteForExport(c.Answer, loader)
		if err != nil {
			return newExportError(ExportErrRewrite, "rewriting answer html for card %s: %v", c.ID, err)
		}
		exported = append(exported, importer.ImportedCard{Question: question, Answer: answer})
	}

	f, err := os.Create(path)
	if err != nil {
		return newExportError(ExportErrWriteFile, "creating %q: %v", path, err)
	}
	writeErr := write(f, exported)
	closeErr := f.Close()
	if writeErr != nil {
		return fmt.Errorf("writing %q: %w", path, writeErr)
	}
	if closeErr != nil {
		return newExportError(ExportErrWriteFile, "closing %q: %v", path, closeErr)
	}
	return nil
}

// resourceMapLoader implements markup.ResourceLoader over a card's already
// loaded resources, so export never re-hits the database per reference.
type resourceMapLoader map[string]domain.Resource

func (l resourceMapLoader) LoadResource(id string) (domain.Resource, error) {
	res, ok := l[id]
	if !ok {
		return domain.Resource{}, fmt.Errorf("resource %q not found on card", id)
	}
	return res, nil
}

func resourceMapLoaderFromSlice(resources []domain.Resource) resourceMapLoader {
	m := make(resourceMapLoader, len(resources))
	for _, r := range resources {
		m[r.ID] = r
	}
	return m
}
