package chat

import (
	"os"
	"strings"

	"github.com/gen2brain/beeep"
)

// notifyReply posts a desktop notification for a message that arrived while
// the user was scrolled away from the bottom.
func notifyReply(sender, text string) {
	if os.Getenv("BANTER_NO_NOTIFY") != "" {
		return
	}
	// Notification failures are non-fatal; the message is still in the log.
	_ = beeep.Notify("banter · "+sender, truncateNotification(text, 100), "")
}

func truncateNotification(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-1] + "…"
}
