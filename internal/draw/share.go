package draw

import (
	"fmt"
	"strings"

	"lucklens/internal/domain"
)

// ComposeShareText renders the revealed result as a social post.
func ComposeShareText(result *domain.DrawResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("My %s fortune: %s (%d pts)\n", result.Date, result.Fortune.Text, result.Fortune.Score))
	sb.WriteString("DO: " + strings.Join(result.Fortune.Yi, ", ") + "\n")
	sb.WriteString("DON'T: " + strings.Join(result.Fortune.Ji, ", ") + "\n")
	sb.WriteString("Proverb: " + result.Proverb + "\n")
	sb.WriteString("#CryptoFortune")
	return sb.String()
}
