package smqa

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mlapinski/openmemo/internal/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImporter_SingleCard(t *testing.T) {
	input := "Q: What is 2+2?\nA: 4\n"
	cards, err := NewImporter().Import(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "What is 2+2?", cards[0].Question)
	assert.Equal(t, "4", cards[0].Answer)
}

func TestImporter_MultipleCardsSeparatedByBlankLine(t *testing.T) {
	input := "Q: First?\nA: One\n\nQ: Second?\nA: Two\n"
	cards, err := NewImporter().Import(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "First?", cards[0].Question)
	assert.Equal(t, "Second?", cards[1].Question)
}

func TestImporter_MultilineQuestionAndAnswer(t *testing.T) {
	input := "Q: line one\nQ: line two\nA: ans one\nA: ans two\n"
	cards, err := NewImporter().Import(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "line one\nline two", cards[0].Question)
	assert.Equal(t, "ans one\nans two", cards[0].Answer)
}

func TestImporter_RejectsQuestionLineWithoutPrefix(t *testing.T) {
	input := "not a question\nA: answer\n"
	_, err := NewImporter().Import(strings.NewReader(input))
	require.Error(t, err)
	var failure *importer.ConversionFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, importer.FailureMalformedLine, failure.Code)
}

func TestImporter_RejectsAnswerLineWithoutPrefix(t *testing.T) {
	input := "Q: question\nA: answer\nnot an answer\n"
	_, err := NewImporter().Import(strings.NewReader(input))
	require.Error(t, err)
	var failure *importer.ConversionFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, importer.FailureMalformedLine, failure.Code)
}

func TestImporter_RejectsEmptyInput(t *testing.T) {
	_, err := NewImporter().Import(strings.NewReader(""))
	require.Error(t, err)
	var failure *importer.ConversionFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, importer.FailureIllegalEndState, failure.Code)
}

func TestImporter_ClosesTrailingCardWithoutBlankLine(t *testing.T) {
	input := "Q: What is 2+2?\nA: 4"
	cards, err := NewImporter().Import(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "4", cards[0].Answer)
}

func TestExporter_BlankLineSeparatesCards(t *testing.T) {
	cards := []importer.ImportedCard{
		{Question: "First?", Answer: "One"},
		{Question: "Second?", Answer: "Two"},
	}
	var buf bytes.Buffer
	require.NoError(t, NewExporter().Export(&buf, cards))
	assert.Contains(t, buf.String(), "Q: First?\r\nA: One\r\n\r\nQ: Second?\r\nA: Two\r\n")
}

func TestRoundTrip(t *testing.T) {
	cards := []importer.ImportedCard{
		{Question: "multi\nline question", Answer: "single line answer"},
	}
	var buf bytes.Buffer
	require.NoError(t, NewExporter().Export(&buf, cards))

	got, err := NewImporter().Import(&buf)
	require.NoError(t, err)
	assert.Equal(t, cards, got)
}
