//go:generate go run go.uber.org/mock/mockgen -source=relay_service.go -destination=../mocks/mock_relay_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"support-relay/contract"
	"support-relay/domain"
	"support-relay/errors"
	"support-relay/moderation"
	"support-relay/repositories"

	"github.com/abadojack/whatlanggo"
	"github.com/google/uuid"
)

type IRelayService interface {
	Submit(sender domain.User, text string) (domain.Message, error)
	NotifyOwner(ctx context.Context, message domain.Message)
}

// RelayService carries one user submission to the owner: persist first,
// forward after. The two steps are independent on purpose — once the
// record is stored the sender sees success, whatever happens to the
// notification.
type RelayService struct {
	messages repositories.IMessageRepository
	sender   contract.Sender
	censor   moderation.Moderator
	ownerID  int64
	log      *slog.Logger
}

func NewRelayService(
	messages repositories.IMessageRepository,
	sender contract.Sender,
	censor moderation.Moderator,
	ownerID int64,
	log *slog.Logger,
) *RelayService {
	return &RelayService{
		messages: messages,
		sender:   sender,
		censor:   censor,
		ownerID:  ownerID,
		log:      log,
	}
}

// Submit validates and persists one message. The language tag is
// best-effort; detection never blocks a store.
func (s *RelayService) Submit(sender domain.User, text string) (domain.Message, error) {
	if text == "" {
		return domain.Message{}, errors.ErrUsage
	}

	message := domain.Message{
		ID:          uuid.New(),
		SenderID:    sender.ID,
		SenderName:  sender.DisplayName,
		Text:        text,
		Lang:        whatlanggo.Detect(text).Lang.Iso6391(),
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.messages.StoreMessage(message); err != nil {
		return domain.Message{}, fmt.Errorf("storing message: %w", err)
	}
	return message, nil
}

// NotifyOwner forwards the stored message to the owner. Failures are
// logged and swallowed; the sender already got their ack.
func (s *RelayService) NotifyOwner(ctx context.Context, message domain.Message) {
	text := fmt.Sprintf(
		"📩 New message received\n\n👤 From: @%s (%d)\n🕒 %s\n🌐 %s\n💬 %s",
		message.SenderName,
		message.SenderID,
		message.SubmittedAt.Format(time.DateTime),
		langOrUnknown(message.Lang),
		s.censor.Censor(message.Text),
	)
	if err := s.sender.Send(ctx, s.ownerID, text); err != nil {
		s.log.Debug("owner notification failed", "sender_id", message.SenderID, "error", err)
	}
}

func langOrUnknown(lang string) string {
	if lang == "" {
		return "unknown"
	}
	return lang
}
