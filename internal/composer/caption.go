package composer

import (
	"fmt"
	"strings"

	"github.com/orgball2608/affiliate-post-bot/internal/domain"
)

const captionTemplate = "🔥 %s 🔥\n%s\n\n👉 להזמנה:\n%s\n\n🔗 לשיתוף: %s"

// Render builds the channel caption. The text is passed to Telegram as HTML.
func Render(post domain.ComposedPost, shareLink string) string {
	return fmt.Sprintf(captionTemplate, post.Title, strings.Join(post.Body, "\n"), post.Link, shareLink)
}
