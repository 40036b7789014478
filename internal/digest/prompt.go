package digest

import (
	"fmt"
	"strings"

	"TickerBrief/internal/models"
)

// BuildUserPrompt renders the requested symbols and a 1-indexed listing of
// every article into the user message for the generation call.
func BuildUserPrompt(symbols []string, articles []models.Article) string {
	var sb strings.Builder

	sb.WriteString("Create a newsletter summary for these articles from yesterday.\n")
	sb.WriteString(fmt.Sprintf("Ticker symbols requested: %s\n\n", strings.Join(symbols, ",")))
	sb.WriteString("Articles:\n")

	for i, a := range articles {
		sb.WriteString(fmt.Sprintf("%d. %s\n%s\nSource: %s\n\n", i+1, a.Title, a.Description, a.URL))
	}

	return sb.String()
}
