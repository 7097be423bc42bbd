package importer

// ImportedCard is a raw question/answer pair read from a deck file, before
// HTML rewriting or persistence.
type ImportedCard struct {
	Question string
	Answer   string
}
