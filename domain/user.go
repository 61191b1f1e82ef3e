// Package domain contains the core concepts of the support relay.
// No storage, transport, or UI logic should be added here.
package domain

// User is anyone who ever talked to the bot. Upserted on every inbound
// event, never deleted.
type User struct {
	ID          int64
	DisplayName string
}
