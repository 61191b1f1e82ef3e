package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"
)

func Test_ToEvent_Maps_Private_Messages(t *testing.T) {
	req := require.New(t)

	update := tgbotapi.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: 7, UserName: "alice"},
		Chat: &tgbotapi.Chat{ID: 7, Type: "private"},
		Text: "/send hello",
	}}

	event, ok := toEvent(update)
	req.True(ok)
	req.Equal(int64(7), event.SenderID)
	req.Equal("alice", event.SenderName)
	req.Equal(int64(7), event.ChatID)
	req.Equal("/send hello", event.Text)
	req.True(event.Private)
}

func Test_ToEvent_Skips_Non_Message_Updates(t *testing.T) {
	req := require.New(t)

	_, ok := toEvent(tgbotapi.Update{})
	req.False(ok)

	_, ok = toEvent(tgbotapi.Update{Message: &tgbotapi.Message{}})
	req.False(ok)
}

func Test_ToEvent_Group_Chat_Is_Not_Private(t *testing.T) {
	req := require.New(t)

	update := tgbotapi.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: 7, UserName: "alice"},
		Chat: &tgbotapi.Chat{ID: -100, Type: "supergroup"},
		Text: "/start",
	}}

	event, ok := toEvent(update)
	req.True(ok)
	req.Equal(int64(-100), event.ChatID)
	req.False(event.Private)
}
