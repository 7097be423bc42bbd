package domain

import "time"

// Card is a flash card: the concrete learning unit this repo schedules.
type Card struct {
	ID        string
	Question  string
	Answer    string
	Resources []Resource
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Resource is an embedded image or sound reference extracted from a card's
// rewritten HTML.
type Resource struct {
	ID       string
	CardID   string
	Filename string
	MimeType string
	Data     []byte
}
