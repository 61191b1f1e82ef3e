package bot

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"support-relay/auth"
	"support-relay/domain"
	"support-relay/errors"
	"support-relay/mocks"
	"support-relay/sessions"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	ownerID    int64 = 99
	strangerID int64 = 7
)

type fixture struct {
	dispatcher *Dispatcher
	store      *sessions.Store
	users      *mocks.MockIUserRepository
	relay      *mocks.MockIRelayService
	support    *mocks.MockISupportService
	sender     *mocks.MockSender
}

func newFixture(t *testing.T, ctrl *gomock.Controller) *fixture {
	t.Helper()
	creds, err := auth.NewCredentials("bob", "hunter2-Pass!")
	require.NoError(t, err)

	f := &fixture{
		store:   sessions.NewStore(24 * time.Hour),
		users:   mocks.NewMockIUserRepository(ctrl),
		relay:   mocks.NewMockIRelayService(ctrl),
		support: mocks.NewMockISupportService(ctrl),
		sender:  mocks.NewMockSender(ctrl),
	}
	// Every inbound event upserts its sender, whatever happens next.
	f.users.EXPECT().UpsertUser(gomock.Any()).Return(nil).AnyTimes()

	f.dispatcher = NewDispatcher(
		slog.Default(), ownerID, creds, f.store,
		f.users, f.relay, f.support, f.sender,
		Links{SupportURL: "https://t.me/support", UpdatesURL: "https://t.me/updates"},
	)
	return f
}

func private(senderID int64, text string) domain.Event {
	return domain.Event{SenderID: senderID, SenderName: "someone", ChatID: senderID, Text: text, Private: true}
}

func (f *fixture) expectReply(chatID int64, text string) *gomock.Call {
	return f.sender.EXPECT().Send(gomock.Any(), chatID, text).Return(nil).Times(1)
}

func Test_NonOwner_Privileged_Commands_Always_Reject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)
	ctx := context.Background()

	rejections := map[string]string{
		"/login":        replyNotAllowed,
		"/messages":     replyLoginFirst,
		"/reply 7 hi":   replyLoginFirst,
		"/broadcast hi": replyLoginFirst,
		"/logout":       replyNotLoggedIn,
	}
	for command, reply := range rejections {
		f.expectReply(strangerID, reply)
		f.dispatcher.Dispatch(ctx, private(strangerID, command))
	}

	// Even a forged Authenticated session for a non-owner must not help:
	// the owner check runs before the session check.
	f.store.Authenticate(strangerID, time.Now())
	f.expectReply(strangerID, replyLoginFirst)
	f.dispatcher.Dispatch(ctx, private(strangerID, "/messages"))
}

func Test_Owner_Login_Flow_Then_Expiry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)
	ctx := context.Background()

	base := time.Now().UTC()
	f.dispatcher.now = func() time.Time { return base }

	// /login opens the challenge
	f.expectReply(ownerID, "👤 Enter your username:")
	f.dispatcher.Dispatch(ctx, private(ownerID, "/login"))

	// wrong username, state stays at the username prompt
	f.expectReply(ownerID, "❌ Invalid username. Try again.")
	f.dispatcher.Dispatch(ctx, private(ownerID, "alice"))
	require.Equal(t, sessions.AwaitingUsername, f.store.Current(ownerID))

	// right username advances
	f.expectReply(ownerID, "🔑 Enter your password:")
	f.dispatcher.Dispatch(ctx, private(ownerID, "bob"))

	// wrong password, state stays at the password prompt
	f.expectReply(ownerID, "❌ Wrong password.")
	f.dispatcher.Dispatch(ctx, private(ownerID, "nope"))
	require.Equal(t, sessions.AwaitingPassword, f.store.Current(ownerID))

	// right password authenticates
	f.expectReply(ownerID, loggedInText)
	f.dispatcher.Dispatch(ctx, private(ownerID, "hunter2-Pass!"))
	require.True(t, f.store.Valid(ownerID, base))

	// privileged command succeeds within the TTL
	f.support.EXPECT().ListMessages().Return(nil, nil).Times(1)
	f.expectReply(ownerID, "No messages yet.")
	f.dispatcher.Dispatch(ctx, private(ownerID, "/messages"))

	// and fails after 24h, deleting the session
	f.dispatcher.now = func() time.Time { return base.Add(24*time.Hour + time.Minute) }
	f.expectReply(ownerID, replyLoginFirst)
	f.dispatcher.Dispatch(ctx, private(ownerID, "/messages"))
	require.Equal(t, sessions.None, f.store.Current(ownerID))
}

func Test_MidLogin_Text_Never_Reaches_Command_Parsing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)
	ctx := context.Background()

	f.expectReply(ownerID, "👤 Enter your username:")
	f.dispatcher.Dispatch(ctx, private(ownerID, "/login"))

	// "/messages" typed at the username prompt is a wrong username, not
	// a command; no support call happens.
	f.expectReply(ownerID, "❌ Invalid username. Try again.")
	f.dispatcher.Dispatch(ctx, private(ownerID, "/messages"))
	require.Equal(t, sessions.AwaitingUsername, f.store.Current(ownerID))
}

func Test_Send_Relays_And_Acks_Independently(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)
	ctx := context.Background()

	t.Run("valid text is stored, acked, then forwarded", func(t *testing.T) {
		message := domain.Message{Text: "hello"}
		f.relay.EXPECT().
			Submit(domain.User{ID: strangerID, DisplayName: "someone"}, "hello").
			Return(message, nil).
			Times(1)
		ack := f.expectReply(strangerID, "✅ Your message has been sent to the operator!")
		f.relay.EXPECT().NotifyOwner(gomock.Any(), message).After(ack).Times(1)

		f.dispatcher.Dispatch(ctx, private(strangerID, "/send hello"))
	})

	t.Run("missing text is a usage error, no forward", func(t *testing.T) {
		f.relay.EXPECT().
			Submit(gomock.Any(), "").
			Return(domain.Message{}, errors.ErrUsage).
			Times(1)
		f.expectReply(strangerID, "⚠️ Usage: /send <your message>")

		f.dispatcher.Dispatch(ctx, private(strangerID, "/send"))
	})
}

func Test_Start_Sends_Welcome_With_Link_Buttons(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)
	req := require.New(t)

	f.sender.EXPECT().
		SendWithButtons(gomock.Any(), strangerID, gomock.Any(), gomock.Len(2)).
		Return(nil).
		Times(1)

	f.dispatcher.Dispatch(context.Background(), private(strangerID, "/start"))
	req.Equal(uint64(1), f.dispatcher.Handled())
}

func Test_Privileged_Commands_Ignored_Outside_Private_Chats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	event := domain.Event{SenderID: ownerID, SenderName: "owner", ChatID: -100, Text: "/messages", Private: false}
	f.dispatcher.Dispatch(context.Background(), event)
	// No replies, no service calls: the mocks would flag any.
}

func Test_Logout_Ends_The_Session_Once(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)
	ctx := context.Background()

	f.store.Authenticate(ownerID, time.Now())

	f.expectReply(ownerID, "✅ You have been logged out.")
	f.dispatcher.Dispatch(ctx, private(ownerID, "/logout"))
	require.Equal(t, sessions.None, f.store.Current(ownerID))

	f.expectReply(ownerID, replyNotLoggedIn)
	f.dispatcher.Dispatch(ctx, private(ownerID, "/logout"))
}

func Test_Broadcast_Reports_The_Success_Count(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)
	ctx := context.Background()

	f.store.Authenticate(ownerID, time.Now())

	f.support.EXPECT().Broadcast(gomock.Any(), "hello all").Return(2, nil).Times(1)
	f.expectReply(ownerID, "✅ Broadcast sent to 2 users.")
	f.dispatcher.Dispatch(ctx, private(ownerID, "/broadcast hello all"))

	f.support.EXPECT().Broadcast(gomock.Any(), "").Return(0, errors.ErrUsage).Times(1)
	f.expectReply(ownerID, "⚠️ Usage: /broadcast <message>")
	f.dispatcher.Dispatch(ctx, private(ownerID, "/broadcast"))
}

func Test_Reply_Routes_Errors_To_Fixed_Messages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)
	ctx := context.Background()

	f.store.Authenticate(ownerID, time.Now())

	f.support.EXPECT().Reply(gomock.Any(), "123", "hi there").Return(nil).Times(1)
	f.expectReply(ownerID, "✅ Replied successfully!")
	f.dispatcher.Dispatch(ctx, private(ownerID, "/reply 123 hi there"))

	f.support.EXPECT().
		Reply(gomock.Any(), "ghost", "hi").
		Return(fmt.Errorf("resolving: %w", errors.ErrUserNotFound)).
		Times(1)
	f.expectReply(ownerID, replyUserNotFound)
	f.dispatcher.Dispatch(ctx, private(ownerID, "/reply ghost hi"))

	// fewer than two tokens is a usage error before any service call
	f.expectReply(ownerID, "⚠️ Usage: /reply <username|id> <message>")
	f.dispatcher.Dispatch(ctx, private(ownerID, "/reply 123"))
}

func Test_Dispatcher_Survives_Handler_Failures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)
	ctx := context.Background()

	f.store.Authenticate(ownerID, time.Now())

	f.support.EXPECT().ListMessages().Return(nil, fmt.Errorf("db closed")).Times(1)
	f.expectReply(ownerID, replyInternal)
	f.dispatcher.Dispatch(ctx, private(ownerID, "/messages"))

	// next event still goes through
	f.support.EXPECT().ListMessages().Return([]domain.Message{{SenderName: "a", Text: "x"}}, nil).Times(1)
	f.sender.EXPECT().Send(gomock.Any(), ownerID, gomock.Any()).Return(nil).Times(1)
	f.dispatcher.Dispatch(ctx, private(ownerID, "/messages"))
}
