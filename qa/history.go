package qa

import (
	"fmt"
	"strings"
)

// Exchange is one answered question in the session.
type Exchange struct {
	Question string
	Answer   string
}

// FormatHistory renders prior exchanges as a single block for prompt
// inclusion. An empty history yields a fixed sentinel so the engine always
// receives well-formed context.
func FormatHistory(history []Exchange) string {
	if len(history) == 0 {
		return "No previous conversation."
	}
	lines := []string{"Previous conversation:"}
	for i, ex := range history {
		lines = append(lines,
			fmt.Sprintf("\nQ%d: %s", i+1, ex.Question),
			fmt.Sprintf("A%d: %s", i+1, ex.Answer),
		)
	}
	return strings.Join(lines, "\n")
}

// elide caps s for display, marking the cut when one happens.
func elide(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
