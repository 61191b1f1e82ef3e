package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"support-relay/auth"
	"support-relay/bot"
	"support-relay/moderation"
	"support-relay/repositories"
	"support-relay/services"
	"support-relay/sessions"
	"support-relay/telegram"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run wires everything and owns the process lifecycle. Returning the
// error instead of exiting in place keeps the defers (badger close)
// honest and the wiring testable.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Credentials & moderation
	creds, err := auth.NewCredentials(config.LoginUsername, config.LoginPassword)
	if err != nil {
		return fmt.Errorf("preparing credentials: %w", err)
	}
	censor, err := buildModerator(config)
	if err != nil {
		return fmt.Errorf("building moderator: %w", err)
	}

	// 4. Transport
	client, err := telegram.New(config.BotToken, config.SendTimeout, log)
	if err != nil {
		return fmt.Errorf("telegram client: %w", err)
	}

	// 5. Components
	userRepository := repositories.NewUserRepository(db)
	messageRepository := repositories.NewMessageRepository(db)
	sessionStore := sessions.NewStore(config.SessionTTL)
	relayService := services.NewRelayService(messageRepository, client, censor, config.OwnerID, log)
	supportService := services.NewSupportService(userRepository, messageRepository, client, censor, log)

	dispatcher := bot.NewDispatcher(
		log, config.OwnerID, creds, sessionStore,
		userRepository, relayService, supportService, client,
		bot.Links{SupportURL: config.SupportURL, UpdatesURL: config.UpdatesURL},
	)

	// 6. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go bot.NewHeartbeat(log, config.HeartbeatInterval, dispatcher).Run(ctx)

	// 7. Poll until shutdown
	log.Info("Bot is running...", "owner_id", config.OwnerID)
	client.Run(ctx, dispatcher.Dispatch)

	log.Info("Program stopped cleanly")
	return nil
}

func buildModerator(config Config) (moderation.Moderator, error) {
	words := strings.Split(config.CensoredWords, ",")
	words = trimEmpty(words)
	if len(words) == 0 {
		return moderation.Moderator{}, nil
	}
	char, err := characterRune(config.CensoredChar)
	if err != nil {
		return moderation.Moderator{}, err
	}
	return moderation.NewModerator(words, char)
}

func trimEmpty(words []string) []string {
	out := words[:0]
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			out = append(out, w)
		}
	}
	return out
}

func characterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf("CENSORED_CHAR must be a single character, got %q", str)
	}
	return r[0], nil
}
