package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single user submission to the owner. Immutable once
// stored, append-only.
type Message struct {
	ID          uuid.UUID
	SenderID    int64
	SenderName  string
	Text        string
	Lang        string // ISO-639-1 code, empty when detection failed
	SubmittedAt time.Time
}
