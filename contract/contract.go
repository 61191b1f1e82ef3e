// Package contract holds the interfaces shared across component
// boundaries, so packages depend on behavior instead of each other.
package contract

import "context"

// Button is an inline link attached below an outbound message.
type Button struct {
	Label string
	URL   string
}

//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_sender.go -package=mocks

// Sender delivers one message to one chat. Implementations own
// platform-level concerns (rate limits, retries, timeouts); callers
// treat any returned error as a single failed best-effort attempt.
type Sender interface {
	Send(ctx context.Context, chatID int64, text string) error
	SendWithButtons(ctx context.Context, chatID int64, text string, buttons []Button) error
}
