package bot

import (
	"fmt"
	"strings"
	"time"

	"support-relay/domain"

	"github.com/samber/lo"
)

// formatMessages renders the /messages listing as sender/time/text
// blocks, in the order the repository returned them (newest first).
func formatMessages(messages []domain.Message) string {
	if len(messages) == 0 {
		return "No messages yet."
	}
	blocks := lo.Map(messages, func(m domain.Message, _ int) string {
		return fmt.Sprintf("👤 @%s (%d)\n🕒 %s\n💬 %s",
			m.SenderName, m.SenderID, m.SubmittedAt.Format(time.DateTime), m.Text)
	})
	return "📜 User messages:\n\n" + strings.Join(blocks, "\n\n")
}
