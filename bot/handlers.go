package bot

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"support-relay/contract"
	"support-relay/domain"
	"support-relay/errors"
)

const (
	replyNotAllowed   = "❌ You are not allowed to login."
	replyLoginFirst   = "❌ You must login first."
	replyNotLoggedIn  = "❌ You are not logged in."
	replyUserNotFound = "❌ User not found."
	replyInternal     = "⚠️ Something went wrong, try again later."

	welcomeText = "🚀 Welcome to the support bot\n\n" +
		"🤖 This bot relays your messages to the operator.\n" +
		"📩 Use /send <message> to reach out.\n"

	loggedInText = "✅ Successfully logged in!\n\nAvailable commands:\n" +
		"• /messages - View all messages\n" +
		"• /reply <username|id> <message> - Reply to user\n" +
		"• /broadcast <message> - Send broadcast\n" +
		"• /logout - Logout"
)

func (d *Dispatcher) handleStart(ctx context.Context, e domain.Event) {
	buttons := []contract.Button{
		{Label: "💬 Support", URL: d.links.SupportURL},
		{Label: "📢 Updates", URL: d.links.UpdatesURL},
	}
	if err := d.sender.SendWithButtons(ctx, e.ChatID, welcomeText, buttons); err != nil {
		d.log.Debug("welcome send failed", "chat_id", e.ChatID, "error", err)
	}
}

// handleSend is the relay path. The ack goes out as soon as the record
// is stored; the owner notification happens after and its outcome never
// reaches the sender.
func (d *Dispatcher) handleSend(ctx context.Context, e domain.Event) {
	sender := domain.User{ID: e.SenderID, DisplayName: displayName(e.SenderName)}
	message, err := d.relay.Submit(sender, e.Args())
	switch {
	case stderrors.Is(err, errors.ErrUsage):
		d.reply(ctx, e, "⚠️ Usage: /send <your message>")
		return
	case err != nil:
		d.log.Error("message submit failed", "sender_id", e.SenderID, "error", err)
		d.reply(ctx, e, replyInternal)
		return
	}

	d.reply(ctx, e, "✅ Your message has been sent to the operator!")
	d.relay.NotifyOwner(ctx, message)
}

func (d *Dispatcher) handleLogin(ctx context.Context, e domain.Event) {
	if e.SenderID != d.ownerID {
		d.reply(ctx, e, replyNotAllowed)
		return
	}
	d.sessions.Begin(e.SenderID)
	d.reply(ctx, e, "👤 Enter your username:")
}

// handleUsername consumes the username step. Wrong input leaves the
// session where it is; retries are unlimited.
func (d *Dispatcher) handleUsername(ctx context.Context, e domain.Event) {
	if !d.creds.MatchUsername(e.Text) {
		d.reply(ctx, e, "❌ Invalid username. Try again.")
		return
	}
	d.sessions.Advance(e.SenderID)
	d.reply(ctx, e, "🔑 Enter your password:")
}

func (d *Dispatcher) handlePassword(ctx context.Context, e domain.Event) {
	if !d.creds.MatchPassword(e.Text) {
		d.reply(ctx, e, "❌ Wrong password.")
		return
	}
	d.sessions.Authenticate(e.SenderID, d.now())
	d.reply(ctx, e, loggedInText)
}

func (d *Dispatcher) handleLogout(ctx context.Context, e domain.Event) {
	if !d.authorized(e) {
		d.reply(ctx, e, replyNotLoggedIn)
		return
	}
	d.sessions.Delete(e.SenderID)
	d.reply(ctx, e, "✅ You have been logged out.")
}

func (d *Dispatcher) handleMessages(ctx context.Context, e domain.Event) {
	if !d.authorized(e) {
		d.reply(ctx, e, replyLoginFirst)
		return
	}
	messages, err := d.support.ListMessages()
	if err != nil {
		d.log.Error("listing messages failed", "error", err)
		d.reply(ctx, e, replyInternal)
		return
	}
	d.reply(ctx, e, formatMessages(messages))
}

func (d *Dispatcher) handleReply(ctx context.Context, e domain.Event) {
	if !d.authorized(e) {
		d.reply(ctx, e, replyLoginFirst)
		return
	}
	target, text, _ := strings.Cut(e.Args(), " ")
	text = strings.TrimSpace(text)
	if target == "" || text == "" {
		d.reply(ctx, e, "⚠️ Usage: /reply <username|id> <message>")
		return
	}

	err := d.support.Reply(ctx, target, text)
	switch {
	case stderrors.Is(err, errors.ErrUserNotFound):
		d.reply(ctx, e, replyUserNotFound)
	case err != nil:
		d.log.Error("reply failed", "target", target, "error", err)
		d.reply(ctx, e, replyInternal)
	default:
		d.reply(ctx, e, "✅ Replied successfully!")
	}
}

func (d *Dispatcher) handleBroadcast(ctx context.Context, e domain.Event) {
	if !d.authorized(e) {
		d.reply(ctx, e, replyLoginFirst)
		return
	}
	sent, err := d.support.Broadcast(ctx, e.Args())
	switch {
	case stderrors.Is(err, errors.ErrUsage):
		d.reply(ctx, e, "⚠️ Usage: /broadcast <message>")
	case err != nil:
		d.log.Error("broadcast failed", "error", err)
		d.reply(ctx, e, replyInternal)
	default:
		d.reply(ctx, e, fmt.Sprintf("✅ Broadcast sent to %d users.", sent))
	}
}
