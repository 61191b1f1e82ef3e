// Package telegram adapts the Bot API to the dispatcher: long-polled
// updates become domain.Events, and outbound sends implement
// contract.Sender with a per-send timeout.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"support-relay/contract"
	"support-relay/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const pollTimeoutSeconds = 30

type Client struct {
	api     *tgbotapi.BotAPI
	timeout time.Duration
	log     *slog.Logger
}

func New(token string, sendTimeout time.Duration, log *slog.Logger) (*Client, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("bot api authorization: %w", err)
	}
	log.Info("authorized on telegram", "account", api.Self.UserName)
	return &Client{api: api, timeout: sendTimeout, log: log}, nil
}

// Run consumes the update channel until the context is canceled. Each
// update is handled on its own goroutine, which is why the session
// store and counters downstream are synchronized.
func (c *Client) Run(ctx context.Context, handle func(context.Context, domain.Event)) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeoutSeconds
	updates := c.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			c.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			event, ok := toEvent(update)
			if !ok {
				continue
			}
			go handle(ctx, event)
		}
	}
}

func (c *Client) Send(ctx context.Context, chatID int64, text string) error {
	return c.send(ctx, tgbotapi.NewMessage(chatID, text))
}

func (c *Client) SendWithButtons(ctx context.Context, chatID int64, text string, buttons []contract.Button) error {
	msg := tgbotapi.NewMessage(chatID, text)
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, b := range buttons {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(b.Label, b.URL),
		))
	}
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	return c.send(ctx, msg)
}

// send bounds each outbound call so a dead recipient cannot stall a
// broadcast. The library call itself has no context support; it
// finishes in the background after a timeout and the buffered channel
// keeps the goroutine from leaking.
func (c *Client) send(ctx context.Context, msg tgbotapi.Chattable) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		_, err := c.api.Send(msg)
		errCh <- err
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

func toEvent(update tgbotapi.Update) (domain.Event, bool) {
	m := update.Message
	if m == nil || m.From == nil || m.Chat == nil {
		return domain.Event{}, false
	}
	return domain.Event{
		SenderID:   m.From.ID,
		SenderName: m.From.UserName,
		ChatID:     m.Chat.ID,
		Text:       m.Text,
		Private:    m.Chat.IsPrivate(),
	}, true
}
