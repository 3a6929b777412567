package reel

import (
	"fmt"
	"strings"

	"github.com/Vovarama1992/reels-analyzer/internal/models"
)

// FormatConfirmation renders the chat reply sent after a reel was saved.
func FormatConfirmation(s models.Summary, link string) string {
	tags := make([]string, 0, len(s.Tags))
	for _, t := range s.Tags {
		tags = append(tags, "#"+t)
	}

	return fmt.Sprintf("🚀 Saved!\n📍 %s\n🌍 Location: %s\n📄 Tags: %s\n📷 [View Post](%s)",
		s.Title,
		LocationText(s),
		strings.Join(tags, ", "),
		link,
	)
}
