//go:generate go run go.uber.org/mock/mockgen -source=support_service.go -destination=../mocks/mock_support_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"support-relay/contract"
	"support-relay/domain"
	"support-relay/errors"
	"support-relay/moderation"
	"support-relay/repositories"
)

type ISupportService interface {
	ListMessages() ([]domain.Message, error)
	Reply(ctx context.Context, target, text string) error
	Broadcast(ctx context.Context, text string) (int, error)
}

// SupportService implements the owner-side operations behind the
// privileged commands.
type SupportService struct {
	users    repositories.IUserRepository
	messages repositories.IMessageRepository
	sender   contract.Sender
	censor   moderation.Moderator
	log      *slog.Logger
}

func NewSupportService(
	users repositories.IUserRepository,
	messages repositories.IMessageRepository,
	sender contract.Sender,
	censor moderation.Moderator,
	log *slog.Logger,
) *SupportService {
	return &SupportService{
		users:    users,
		messages: messages,
		sender:   sender,
		censor:   censor,
		log:      log,
	}
}

// ListMessages returns the whole log, most recent first.
func (s *SupportService) ListMessages() ([]domain.Message, error) {
	return s.messages.ListMessages()
}

// Reply resolves the target and sends one message. A numeric token is
// used as an identity directly, anything else is a display-name lookup.
// The send itself is best-effort: once the target resolves, the owner
// is told "replied" regardless of delivery.
func (s *SupportService) Reply(ctx context.Context, target, text string) error {
	targetID, err := strconv.ParseInt(target, 10, 64)
	if err != nil {
		user, err := s.users.GetUserByName(target)
		if err != nil {
			return fmt.Errorf("resolving %q: %w", target, err)
		}
		targetID = user.ID
	}

	body := fmt.Sprintf("💬 Reply from support:\n\n%s", s.censor.Censor(text))
	if err := s.sender.Send(ctx, targetID, body); err != nil {
		s.log.Debug("reply delivery failed", "target_id", targetID, "error", err)
	}
	return nil
}

// Broadcast sends one message to every known user. Each recipient is a
// separate best-effort attempt; a blocked bot or deleted account just
// doesn't count. Runs to completion over the full user set, no
// cancellation mid-flight.
func (s *SupportService) Broadcast(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, errors.ErrUsage
	}

	users, err := s.users.ListUsers()
	if err != nil {
		return 0, fmt.Errorf("listing users: %w", err)
	}

	body := fmt.Sprintf("📢 Broadcast:\n\n%s", s.censor.Censor(text))
	sent := 0
	for _, user := range users {
		if err := s.sender.Send(ctx, user.ID, body); err != nil {
			s.log.Debug("broadcast delivery failed", "user_id", user.ID, "error", err)
			continue
		}
		sent++
	}
	return sent, nil
}
