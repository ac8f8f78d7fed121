package bot

import (
	"strings"

	"github.com/omarshaarawi/trophybot/internal/models"
)

var markdownEscaper = strings.NewReplacer("_", `\_`, "*", `\*`, "`", "\\`", "[", `\[`)

// EscapeMarkdown makes text safe to send with Telegram's legacy Markdown.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// RenderMarkdown flattens a card into Telegram's legacy Markdown. League
// data inside the card is escaped; only the card's own bold and italic
// markers are kept.
func RenderMarkdown(card models.Card) string {
	var sb strings.Builder
	sb.WriteString("*" + EscapeMarkdown(card.Title) + "*\n")
	if card.Description != "" {
		sb.WriteString(toTelegram(card.Description) + "\n")
	}

	for _, f := range card.Fields {
		sb.WriteString("\n")
		if name := strings.Trim(f.Name, "\u200b "); name != "" {
			sb.WriteString("*" + EscapeMarkdown(name) + "*\n")
		}
		sb.WriteString(toTelegram(f.Value) + "\n")
	}

	if card.Footer != nil && card.Footer.Text != "" {
		sb.WriteString("\n_" + EscapeMarkdown(card.Footer.Text) + "_")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// toTelegram converts a card value to Telegram Markdown. Each line is either
// wrapped whole in underscores (italic) or uses ** pairs for bold.
func toTelegram(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if len(line) > 2 && strings.HasPrefix(line, "_") && strings.HasSuffix(line, "_") {
			lines[i] = "_" + EscapeMarkdown(line[1:len(line)-1]) + "_"
			continue
		}
		parts := strings.Split(line, "**")
		for j, p := range parts {
			parts[j] = EscapeMarkdown(p)
		}
		lines[i] = strings.Join(parts, "*")
	}
	return strings.Join(lines, "\n")
}
