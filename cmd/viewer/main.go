// Viewer dumps the bot's store as tables for quick inspection while
// the bot keeps running. Read-only, safe to point at a live directory.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"support-relay/domain"
	"support-relay/repositories"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

type Config struct {
	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
}

func main() {
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// BypassLockGuard allows opening while the bot process holds the lock.
	opts := badger.DefaultOptions(config.BadgerFilepath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.ERROR)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	users, err := repositories.NewUserRepository(db).ListUsers()
	if err != nil {
		log.Fatalf("Failed to list users: %v", err)
	}
	messages, err := repositories.NewMessageRepository(db).ListMessages()
	if err != nil {
		log.Fatalf("Failed to list messages: %v", err)
	}

	color.Bold.Println(fmt.Sprintf("Users (%d)", len(users)))
	renderTable([]string{"ID", "Display name"},
		lo.Map(users, func(u domain.User, _ int) []string {
			return []string{strconv.FormatInt(u.ID, 10), u.DisplayName}
		}))

	fmt.Println()
	color.Bold.Println(fmt.Sprintf("Messages (%d, newest first)", len(messages)))
	renderTable([]string{"At", "Sender", "Lang", "Text"},
		lo.Map(messages, func(m domain.Message, _ int) []string {
			return []string{
				m.SubmittedAt.Format(time.DateTime),
				fmt.Sprintf("@%s (%d)", m.SenderName, m.SenderID),
				m.Lang,
				m.Text,
			}
		}))
}

func renderTable(header []string, rows [][]string) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.AppendBulk(rows)
	table.Render()
}
