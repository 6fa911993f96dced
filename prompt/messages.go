package prompt

import (
	"strings"

	"github.com/ngerold/shellsage/llm"
)

// Build converts a collected prompt and a persona instruction into the
// message list for a chat request: one system entry carrying the persona and
// one user entry carrying the prompt. A request must always carry
// instructions and content, so either being blank is an error.
func Build(promptText, persona string) ([]llm.ChatMessage, error) {
	if strings.TrimSpace(persona) == "" {
		return nil, &llm.ValidationError{Field: "persona", Reason: "instruction is empty"}
	}
	if strings.TrimSpace(promptText) == "" {
		return nil, &llm.ValidationError{Field: "prompt", Reason: "prompt is empty"}
	}

	return []llm.ChatMessage{
		llm.SystemMessage(persona),
		llm.UserMessage(promptText),
	}, nil
}
