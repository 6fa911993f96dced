// Package prompt assembles the request prompt from heterogeneous context
// sources and builds the message list for a chat completion.
package prompt

import (
	"fmt"
	"strings"
)

// Collect concatenates the non-absent context fragments into one tagged
// prompt string, in fixed order: terminal history, piped input, query. An
// absent fragment is omitted entirely rather than emitted as an empty tag.
// Absence of the optional sources is normal, not an error.
func Collect(history, stdin, query string) string {
	var parts []string

	if history != "" {
		parts = append(parts, fmt.Sprintf("<terminal_history>\n%s\n</terminal_history>", history))
	}
	if stdin != "" {
		parts = append(parts, fmt.Sprintf("<context>\n%s</context>", stdin))
	}
	parts = append(parts, fmt.Sprintf("<query>\n%s\n</query>", query))

	return strings.Join(parts, "\n")
}
