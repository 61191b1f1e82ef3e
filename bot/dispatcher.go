// Package bot routes inbound events to command handlers and owns the
// owner login flow. It knows nothing about the Telegram wire format;
// the telegram package feeds it domain.Events.
package bot

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"support-relay/auth"
	"support-relay/contract"
	"support-relay/domain"
	"support-relay/repositories"
	"support-relay/services"
	"support-relay/sessions"
)

// Links are the fixed URLs attached to the /start welcome message.
type Links struct {
	SupportURL string
	UpdatesURL string
}

// Dispatcher handles one inbound event at a time per goroutine. All
// shared state lives behind the session store's lock or the atomic
// counter, so concurrent updates from the transport are safe.
type Dispatcher struct {
	log      *slog.Logger
	ownerID  int64
	creds    auth.Credentials
	sessions *sessions.Store
	users    repositories.IUserRepository
	relay    services.IRelayService
	support  services.ISupportService
	sender   contract.Sender
	links    Links
	now      func() time.Time
	handled  atomic.Uint64
}

func NewDispatcher(
	log *slog.Logger,
	ownerID int64,
	creds auth.Credentials,
	sessionStore *sessions.Store,
	users repositories.IUserRepository,
	relay services.IRelayService,
	support services.ISupportService,
	sender contract.Sender,
	links Links,
) *Dispatcher {
	return &Dispatcher{
		log:      log,
		ownerID:  ownerID,
		creds:    creds,
		sessions: sessionStore,
		users:    users,
		relay:    relay,
		support:  support,
		sender:   sender,
		links:    links,
		now:      time.Now,
	}
}

// Handled returns the number of events dispatched since start.
func (d *Dispatcher) Handled() uint64 {
	return d.handled.Load()
}

// Dispatch routes one inbound event. Matching is priority-ordered:
// private text from an identity mid-login is credential input before
// any command parsing, so a stray "/messages" typed at the password
// prompt is treated as a (wrong) password, not a command. Only then
// does the event fall through to the command switch.
//
// No handler outcome stops the dispatcher; errors become fixed replies
// or log lines.
func (d *Dispatcher) Dispatch(ctx context.Context, e domain.Event) {
	d.handled.Add(1)

	if err := d.users.UpsertUser(domain.User{ID: e.SenderID, DisplayName: displayName(e.SenderName)}); err != nil {
		d.log.Error("user upsert failed", "sender_id", e.SenderID, "error", err)
	}

	if e.Private {
		switch d.sessions.Current(e.SenderID) {
		case sessions.AwaitingUsername:
			d.handleUsername(ctx, e)
			return
		case sessions.AwaitingPassword:
			d.handlePassword(ctx, e)
			return
		}
	}

	if e.Command() == "start" {
		d.handleStart(ctx, e)
		return
	}
	if !e.Private {
		return
	}

	switch e.Command() {
	case "send":
		d.handleSend(ctx, e)
	case "login":
		d.handleLogin(ctx, e)
	case "logout":
		d.handleLogout(ctx, e)
	case "messages":
		d.handleMessages(ctx, e)
	case "reply":
		d.handleReply(ctx, e)
	case "broadcast":
		d.handleBroadcast(ctx, e)
	}
}

// authorized gates the privileged commands: owner identity and a
// currently valid session. The validity check deletes an expired
// session as a side effect.
func (d *Dispatcher) authorized(e domain.Event) bool {
	return e.SenderID == d.ownerID && d.sessions.Valid(e.SenderID, d.now())
}

// reply sends a response to the chat the event came from. Transport
// failures on replies are best-effort like every other send.
func (d *Dispatcher) reply(ctx context.Context, e domain.Event, text string) {
	if err := d.sender.Send(ctx, e.ChatID, text); err != nil {
		d.log.Debug("reply send failed", "chat_id", e.ChatID, "error", err)
	}
}

func displayName(name string) string {
	if name == "" {
		return "NoUsername"
	}
	return name
}
