// Package llm provides the request/response normalization layer for chat
// completions: typed messages and content parts, request validation,
// dispatch (blocking and streaming), and reply extraction.
package llm

import (
	"encoding/base64"
	"encoding/json"
	"sort"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether the role is one of the three enumerated values.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// PartType tags a ContentPart variant.
type PartType string

const (
	PartText    PartType = "text"
	PartToolUse PartType = "tool_use"
	PartImage   PartType = "image"
	PartUnknown PartType = "unknown"
)

// ContentPart is one unit of a structured content sequence. Exactly the
// fields for the tagged variant are set; unrecognized provider blocks are
// carried as PartUnknown with the raw payload preserved.
type ContentPart struct {
	Type    PartType        `json:"type"`
	Text    string          `json:"text,omitempty"`
	ToolUse *ToolUse        `json:"tool_use,omitempty"`
	Image   *ImageSource    `json:"image,omitempty"`
	Raw     json.RawMessage `json:"raw,omitempty"`
}

// ToolUse is a tool invocation requested by the model.
type ToolUse struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Input json.RawMessage `json:"input"`
}

// ImageSource holds base64-encoded image data.
type ImageSource struct {
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

// TextPart creates a text content part.
func TextPart(text string) ContentPart {
	return ContentPart{Type: PartText, Text: text}
}

// ImagePart creates an image content part from raw bytes.
func ImagePart(mediaType string, data []byte) ContentPart {
	return ContentPart{Type: PartImage, Image: &ImageSource{
		MediaType: mediaType,
		Data:      base64.StdEncoding.EncodeToString(data),
	}}
}

// ChatMessage represents a chat message with role and content.
// Content carries plain text; Parts, when set, carries an ordered sequence
// of typed content parts instead (e.g. text plus images).
type ChatMessage struct {
	Role    Role          `json:"role"`
	Content string        `json:"content"`
	Parts   []ContentPart `json:"parts,omitempty"`
}

// SystemMessage creates a system message.
func SystemMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleSystem, Content: content}
}

// UserMessage creates a user message.
func UserMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleUser, Content: content}
}

// AssistantMessage creates an assistant message. An empty content string is
// allowed here: a placeholder assistant turn keeps user/assistant alternation
// when stitching multiple user fragments together.
func AssistantMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleAssistant, Content: content}
}

// ToolDefinition defines a tool the model may call.
type ToolDefinition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"` // JSON Schema
}

// ToolChoiceKind tags a ToolChoice variant.
type ToolChoiceKind string

const (
	// ToolChoiceAuto lets the model decide whether to call a tool.
	ToolChoiceAuto ToolChoiceKind = "auto"
	// ToolChoiceAny forces the model to call some tool.
	ToolChoiceAny ToolChoiceKind = "any"
	// ToolChoiceTool forces the model to call one named tool.
	ToolChoiceTool ToolChoiceKind = "tool"
)

// ToolChoice selects how the model should use declared tools.
type ToolChoice struct {
	Kind ToolChoiceKind `json:"type"`
	Name string         `json:"name,omitempty"`
}

// ToolChoiceFrom builds a ToolChoice from a single ergonomic input:
// a non-empty tool name forces that tool, true forces "any", and
// nil (or false, or an empty name) means automatic.
func ToolChoiceFrom(choice interface{}) ToolChoice {
	switch v := choice.(type) {
	case string:
		if v != "" {
			return ToolChoice{Kind: ToolChoiceTool, Name: v}
		}
	case bool:
		if v {
			return ToolChoice{Kind: ToolChoiceAny}
		}
	}
	return ToolChoice{Kind: ToolChoiceAuto}
}

// Model identifiers for supported providers.
const (
	// Anthropic
	ModelClaudeOpus45   = "claude-opus-4-5-20251101"
	ModelClaudeSonnet4  = "claude-sonnet-4-20250514"
	ModelClaudeHaiku4   = "claude-haiku-4-20250514"
	ModelClaude35Sonnet = "claude-3-5-sonnet-20241022"
	ModelClaude35Haiku  = "claude-3-5-haiku-20241022"
	ModelClaude3Opus    = "claude-3-opus-20240229"
	ModelClaude3Haiku   = "claude-3-haiku-20240307"

	// OpenAI
	ModelGPT52      = "gpt-5.2"
	ModelGPT52Codex = "gpt-5.2-codex"
	ModelGPT5       = "gpt-5"
	ModelO3Mini     = "o3-mini"
	ModelGPT4o      = "gpt-4o"
	ModelGPT4oMini  = "gpt-4o-mini"

	// DeepSeek
	ModelDeepSeekChat     = "deepseek-chat"
	ModelDeepSeekReasoner = "deepseek-reasoner"

	// Gemini
	ModelGeminiFlash3  = "gemini-3-flash"
	ModelGeminiPro3    = "gemini-3-pro"
	ModelGemini25Flash = "gemini-2.5-flash"
)

// modelInfo ties a model identifier to its provider and pricing family.
type modelInfo struct {
	provider string
	family   string
}

var models = map[string]modelInfo{
	ModelClaudeOpus45:   {"anthropic", "opus"},
	ModelClaudeSonnet4:  {"anthropic", "sonnet"},
	ModelClaudeHaiku4:   {"anthropic", "haiku-3-5"},
	ModelClaude35Sonnet: {"anthropic", "sonnet"},
	ModelClaude35Haiku:  {"anthropic", "haiku-3-5"},
	ModelClaude3Opus:    {"anthropic", "opus"},
	ModelClaude3Haiku:   {"anthropic", "haiku-3"},

	ModelGPT52:      {"openai", ""},
	ModelGPT52Codex: {"openai", ""},
	ModelGPT5:       {"openai", ""},
	ModelO3Mini:     {"openai", ""},
	ModelGPT4o:      {"openai", ""},
	ModelGPT4oMini:  {"openai", ""},

	ModelDeepSeekChat:     {"deepseek", ""},
	ModelDeepSeekReasoner: {"deepseek", ""},

	ModelGeminiFlash3:  {"gemini", ""},
	ModelGeminiPro3:    {"gemini", ""},
	ModelGemini25Flash: {"gemini", ""},
}

// pricingTable maps pricing families to cost per million tokens:
// input, output, cache write, cache read.
var pricingTable = map[string]Pricing{
	"opus":      {Input: 15, Output: 75, CacheWrite: 18.75, CacheRead: 1.5},
	"sonnet":    {Input: 3, Output: 15, CacheWrite: 3.75, CacheRead: 0.3},
	"haiku-3":   {Input: 0.25, Output: 1.25, CacheWrite: 0.3, CacheRead: 0.03},
	"haiku-3-5": {Input: 1, Output: 3, CacheWrite: 1.25, CacheRead: 0.1},
}

// KnownModel reports whether a model identifier is in the registry.
func KnownModel(id string) bool {
	_, ok := models[id]
	return ok
}

// ProviderForModel returns the provider name for a model identifier.
func ProviderForModel(id string) (string, bool) {
	info, ok := models[id]
	return info.provider, ok
}

// PricingFor returns the price table entry for a model, when one exists.
func PricingFor(id string) (Pricing, bool) {
	info, ok := models[id]
	if !ok || info.family == "" {
		return Pricing{}, false
	}
	p, ok := pricingTable[info.family]
	return p, ok
}

// Models returns all known model identifiers, sorted.
func Models() []string {
	ids := make([]string, 0, len(models))
	for id := range models {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
