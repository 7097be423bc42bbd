// Package smqa imports and exports flash cards in a SuperMemo-style
// Q:/A: line-oriented text format, grounded on the deck format's own
// line-state-machine parser.
package smqa

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mlapinski/openmemo/internal/importer"
)

const lineTerminator = "\r\n"

type parseState int

const (
	stateQuestion parseState = iota
	stateAnswer
)

// Importer parses Q:/A: blocks, one card per blank-line-separated block.
type Importer struct{}

// NewImporter creates a SuperMemo Q/A Importer.
func NewImporter() *Importer {
	return &Importer{}
}

// Import reads every Q:/A: block from r as an ImportedCard.
func (im *Importer) Import(r io.Reader) ([]importer.ImportedCard, error) {
	scanner := bufio.NewScanner(r)

	var cards []importer.ImportedCard
	var question, answer strings.Builder
	state := stateQuestion
	justSaved := false
	lineNo := 0

	saveCard := func() {
		cards = append(cards, importer.ImportedCard{
			Question: strings.TrimRight(question.String(), "\n"),
			Answer:   strings.TrimRight(answer.String(), "\n"),
		})
		question.Reset()
		answer.Reset()
		state = stateQuestion
		justSaved = true
	}

	for scanner.Scan() {
		line := scanner.Text()
		lineNo++

		switch state {
		case stateQuestion:
			switch {
			case strings.HasPrefix(line, "A: "):
				state = stateAnswer
				justSaved = false
				answer.WriteString(line[3:])
				answer.WriteString("\n")
			case strings.HasPrefix(line, "Q: "):
				justSaved = false
				question.WriteString(line[3:])
				question.WriteString("\n")
			default:
				return nil, importer.NewConversionFailure(importer.FailureMalformedLine,
					"a question line (#%d) without the 'Q: ' prefix", lineNo)
			}
		case stateAnswer:
			if strings.TrimSpace(line) == "" {
				saveCard()
				continue
			}
			if !strings.HasPrefix(line, "A: ") {
				return nil, importer.NewConversionFailure(importer.FailureMalformedLine,
					"an answer line (#%d) without the 'A: ' prefix", lineNo)
			}
			answer.WriteString(line[3:])
			answer.WriteString("\n")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading smqa input: %w", err)
	}

	if state == stateAnswer {
		saveCard()
	}
	if !justSaved {
		return nil, importer.NewConversionFailure(importer.FailureIllegalEndState,
			"input ended without a complete card")
	}

	return cards, nil
}

// Exporter writes cards as Q:/A: blocks separated by a blank line.
type Exporter struct{}

// NewExporter creates a SuperMemo Q/A Exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export writes every card to w as a Q:/A: block, blank-line separated.
func (ex *Exporter) Export(w io.Writer, cards []importer.ImportedCard) error {
	bw := bufio.NewWriter(w)
	for i, c := range cards {
		if i != 0 {
			if _, err := bw.WriteString(lineTerminator); err != nil {
				return fmt.Errorf("writing smqa separator: %w", err)
			}
		}
		if err := writeBlock(bw, "Q: ", c.Question); err != nil {
			return err
		}
		if err := writeBlock(bw, "A: ", c.Answer); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeBlock(w *bufio.Writer, prefix, text string) error {
	for _, line := range strings.Split(text, "\n") {
		if _, err := w.WriteString(prefix + line + lineTerminator); err != nil {
			return fmt.Errorf("writing smqa line: %w", err)
		}
	}
	return nil
}
