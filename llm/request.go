package llm

import (
	"fmt"
	"strings"
)

// DefaultMaxTokens is applied when a request does not set a token limit.
const DefaultMaxTokens = 4096

// ChatRequest is a validated chat completion request. Construct with
// NewRequest; a ChatRequest is immutable once built and discarded after
// dispatch.
type ChatRequest struct {
	Model       string           `json:"model"`
	Messages    []ChatMessage    `json:"messages"`
	System      string           `json:"system,omitempty"`
	Temperature float64          `json:"temperature"`
	MaxTokens   int              `json:"max_tokens"`
	Tools       []ToolDefinition `json:"tools,omitempty"`
	ToolChoice  *ToolChoice      `json:"tool_choice,omitempty"`
	Stream      bool             `json:"stream"`
}

// RequestOptions are the optional parameters of a chat request.
type RequestOptions struct {
	System      string
	Temperature float64
	MaxTokens   int // 0 means DefaultMaxTokens
	Tools       []ToolDefinition
	ToolChoice  *ToolChoice
	Stream      bool
}

// NewRequest validates and normalizes call parameters into a ChatRequest.
// It returns a *ValidationError identifying the first violated invariant.
// Validation is pure: it never contacts the network, and unknown model
// identifiers are rejected here rather than by the provider.
func NewRequest(model string, messages []ChatMessage, opts RequestOptions) (*ChatRequest, error) {
	if !KnownModel(model) {
		return nil, &ValidationError{Field: "model", Reason: fmt.Sprintf("unknown model %q", model)}
	}
	if len(messages) == 0 {
		return nil, &ValidationError{Field: "messages", Reason: "message list is empty"}
	}
	for i, msg := range messages {
		if err := validateMessage(i, msg); err != nil {
			return nil, err
		}
	}
	if opts.Temperature < 0 || opts.Temperature > 1 {
		return nil, &ValidationError{
			Field:  "temperature",
			Reason: fmt.Sprintf("%g is outside [0, 1]", opts.Temperature),
		}
	}
	if opts.MaxTokens < 0 {
		return nil, &ValidationError{
			Field:  "max_tokens",
			Reason: fmt.Sprintf("%d is negative", opts.MaxTokens),
		}
	}
	if opts.ToolChoice != nil && opts.ToolChoice.Kind == ToolChoiceTool {
		if !hasTool(opts.Tools, opts.ToolChoice.Name) {
			return nil, &ValidationError{
				Field:  "tool_choice",
				Reason: fmt.Sprintf("tool %q is not declared", opts.ToolChoice.Name),
			}
		}
	}

	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxTokens
	}

	return &ChatRequest{
		Model:       model,
		Messages:    messages,
		System:      opts.System,
		Temperature: opts.Temperature,
		MaxTokens:   maxTokens,
		Tools:       opts.Tools,
		ToolChoice:  opts.ToolChoice,
		Stream:      opts.Stream,
	}, nil
}

func validateMessage(i int, msg ChatMessage) error {
	if !msg.Role.Valid() {
		return &ValidationError{
			Field:  fmt.Sprintf("messages[%d].role", i),
			Reason: fmt.Sprintf("%q is not one of system, user, assistant", msg.Role),
		}
	}
	if len(msg.Parts) > 0 {
		for j, part := range msg.Parts {
			if part.Type == PartText && strings.TrimSpace(part.Text) == "" {
				return &ValidationError{
					Field:  fmt.Sprintf("messages[%d].parts[%d]", i, j),
					Reason: "text part is empty",
				}
			}
		}
		return nil
	}
	// A bare assistant turn may carry empty placeholder text to keep
	// user/assistant alternation.
	if msg.Role != RoleAssistant && strings.TrimSpace(msg.Content) == "" {
		return &ValidationError{
			Field:  fmt.Sprintf("messages[%d].content", i),
			Reason: "content is empty",
		}
	}
	return nil
}

func hasTool(tools []ToolDefinition, name string) bool {
	for _, t := range tools {
		if t.Name == name {
			return true
		}
	}
	return false
}
