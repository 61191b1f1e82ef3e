package domain

import "strings"

// Event is one inbound platform update, already stripped of transport
// detail. ChatID is where replies go; for private chats it equals
// SenderID.
type Event struct {
	SenderID   int64
	SenderName string
	ChatID     int64
	Text       string
	Private    bool
}

// IsCommand reports whether the event text starts a slash command.
func (e Event) IsCommand() bool {
	return strings.HasPrefix(e.Text, "/")
}

// Command returns the lowercased command name without the leading slash.
// A "@botname" suffix is dropped so "/send@SupportBot hi" parses the
// same as "/send hi". Empty string when the event is not a command.
func (e Event) Command() string {
	if !e.IsCommand() {
		return ""
	}
	name, _, _ := strings.Cut(e.Text[1:], " ")
	name, _, _ = strings.Cut(name, "@")
	return strings.ToLower(name)
}

// Args returns everything after the command token, trimmed.
func (e Event) Args() string {
	_, rest, _ := strings.Cut(e.Text, " ")
	return strings.TrimSpace(rest)
}
