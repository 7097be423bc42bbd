// Package csv imports and exports flash cards as two-column
// question/answer rows, grounded on the deck format's own CSV converter:
// \r\n line terminator, embedded newlines folded into the line terminator
// on export and restored on import.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/mlapinski/openmemo/internal/importer"
)

const lineTerminator = "\r\n"

// Importer reads two-column question/answer rows from a CSV reader.
type Importer struct{}

// NewImporter creates a CSV Importer.
func NewImporter() *Importer {
	return &Importer{}
}

// Import reads every row from r as an ImportedCard. Each row must have
// exactly two fields.
func (im *Importer) Import(r io.Reader) ([]importer.ImportedCard, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var cards []importer.ImportedCard
	lineNum := 0
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row %d: %w", lineNum, err)
		}
		lineNum++

		if len(fields) != 2 {
			return nil, importer.NewConversionFailure(importer.FailureFieldCountMismatch,
				"expected 2 values per line, got %d at line %d: %v", len(fields), lineNum, fields)
		}

		cards = append(cards, importer.ImportedCard{
			Question: restoreLineTerminator(fields[0]),
			Answer:   restoreLineTerminator(fields[1]),
		})
	}
	return cards, nil
}

func restoreLineTerminator(field string) string {
	return strings.ReplaceAll(field, lineTerminator, "\n")
}

// Exporter writes cards as two-column question/answer rows.
type Exporter struct{}

// NewExporter creates a CSV Exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export writes every card to w as one CSV row, with embedded newlines
// folded into the deck format's \r\n line terminator.
func (ex *Exporter) Export(w io.Writer, cards []importer.ImportedCard) error {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true

	for _, c := range cards {
		row := []string{foldLineTerminator(c.Question), foldLineTerminator(c.Answer)}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func foldLineTerminator(field string) string {
	return strings.ReplaceAll(field, "\n", lineTerminator)
}
