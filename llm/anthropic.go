// Anthropic Provider implementation using official anthropic-sdk-go.
//
// Information Hiding:
// - API endpoint and authentication
// - Request/response format for Anthropic Messages API
// - Streaming via official SDK

package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicProvider implements the Provider interface for Anthropic Claude.
type AnthropicProvider struct {
	client anthropic.Client
	model  string
}

// NewAnthropicProvider creates a new Anthropic provider.
func NewAnthropicProvider(apiKey, model string) *AnthropicProvider {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &AnthropicProvider{
		client: client,
		model:  model,
	}
}

// Name returns the provider name.
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// Model returns the current model.
func (p *AnthropicProvider) Model() string {
	return p.model
}

// Chat sends a chat completion request.
func (p *AnthropicProvider) Chat(ctx context.Context, req *ChatRequest) (*Response, error) {
	params := p.buildParams(req)

	message, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	var parts []ContentPart
	for _, block := range message.Content {
		parts = append(parts, convertAnthropicBlock(block))
	}

	return &Response{
		Parts: parts,
		Usage: convertAnthropicUsage(message.Usage),
	}, nil
}

// StreamChat streams a chat completion.
func (p *AnthropicProvider) StreamChat(ctx context.Context, req *ChatRequest, chunks chan<- string) (*Usage, error) {
	params := p.buildParams(req)

	stream := p.client.Messages.NewStreaming(ctx, params)

	var usage *Usage
	for stream.Next() {
		event := stream.Current()

		switch eventVariant := event.AsAny().(type) {
		case anthropic.MessageStartEvent:
			// Input and cache counters arrive with message start.
			u := eventVariant.Message.Usage
			if u.InputTokens > 0 || u.CacheCreationInputTokens > 0 || u.CacheReadInputTokens > 0 {
				usage = &Usage{
					InputTokens:      uint32(u.InputTokens),
					CacheWriteTokens: uint32(u.CacheCreationInputTokens),
					CacheReadTokens:  uint32(u.CacheReadInputTokens),
				}
			}
		case anthropic.ContentBlockDeltaEvent:
			switch deltaVariant := eventVariant.Delta.AsAny().(type) {
			case anthropic.TextDelta:
				if deltaVariant.Text != "" {
					select {
					case chunks <- deltaVariant.Text:
					case <-ctx.Done():
						return usage, ctx.Err()
					}
				}
			}
		case anthropic.MessageDeltaEvent:
			// Output tokens arrive with the final message delta.
			if eventVariant.Usage.OutputTokens > 0 {
				if usage == nil {
					usage = &Usage{}
				}
				usage.OutputTokens = uint32(eventVariant.Usage.OutputTokens)
			}
		}
	}

	if stream.Err() != nil {
		return usage, fmt.Errorf("stream error: %w", stream.Err())
	}

	return usage, nil
}

func (p *AnthropicProvider) buildParams(req *ChatRequest) anthropic.MessageNewParams {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(req.Model),
		MaxTokens:   int64(req.MaxTokens),
		Messages:    convertToAnthropicMessages(req.Messages),
		Temperature: anthropic.Float(req.Temperature),
	}

	system := req.System
	if system == "" {
		// A system-role entry in the message list serves the same purpose.
		for _, msg := range req.Messages {
			if msg.Role == RoleSystem {
				system = msg.Content
			}
		}
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: system},
		}
	}

	if len(req.Tools) > 0 {
		params.Tools = convertToAnthropicTools(req.Tools)
	}
	if req.ToolChoice != nil {
		params.ToolChoice = convertToAnthropicToolChoice(*req.ToolChoice)
	}

	return params
}

// convertToAnthropicMessages converts our ChatMessage to Anthropic format.
// System messages are carried separately in params.System and skipped here.
func convertToAnthropicMessages(messages []ChatMessage) []anthropic.MessageParam {
	var anthropicMessages []anthropic.MessageParam

	for _, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			continue
		case RoleUser:
			anthropicMessages = append(anthropicMessages, anthropic.NewUserMessage(
				convertToAnthropicBlocks(msg)...,
			))
		case RoleAssistant:
			anthropicMessages = append(anthropicMessages, anthropic.NewAssistantMessage(
				convertToAnthropicBlocks(msg)...,
			))
		}
	}

	return anthropicMessages
}

func convertToAnthropicBlocks(msg ChatMessage) []anthropic.ContentBlockParamUnion {
	if len(msg.Parts) == 0 {
		return []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(msg.Content)}
	}

	var blocks []anthropic.ContentBlockParamUnion
	for _, part := range msg.Parts {
		switch part.Type {
		case PartText:
			blocks = append(blocks, anthropic.NewTextBlock(part.Text))
		case PartImage:
			if part.Image != nil {
				blocks = append(blocks, anthropic.NewImageBlockBase64(part.Image.MediaType, part.Image.Data))
			}
		}
	}
	return blocks
}

// convertAnthropicBlock maps one SDK content block to a tagged ContentPart.
// Unrecognized block types are preserved raw rather than dropped.
func convertAnthropicBlock(block anthropic.ContentBlockUnion) ContentPart {
	switch variant := block.AsAny().(type) {
	case anthropic.TextBlock:
		return TextPart(variant.Text)
	case anthropic.ToolUseBlock:
		inputJSON, _ := json.Marshal(variant.Input)
		return ContentPart{
			Type: PartToolUse,
			ToolUse: &ToolUse{
				ID:    variant.ID,
				Name:  variant.Name,
				Input: inputJSON,
			},
		}
	default:
		raw, _ := json.Marshal(block)
		return ContentPart{Type: PartUnknown, Raw: raw}
	}
}

func convertAnthropicUsage(u anthropic.Usage) *Usage {
	if u.InputTokens == 0 && u.OutputTokens == 0 {
		return nil
	}
	return &Usage{
		InputTokens:      uint32(u.InputTokens),
		OutputTokens:     uint32(u.OutputTokens),
		CacheWriteTokens: uint32(u.CacheCreationInputTokens),
		CacheReadTokens:  uint32(u.CacheReadInputTokens),
	}
}

// convertToAnthropicTools converts tool definitions to Anthropic format.
func convertToAnthropicTools(tools []ToolDefinition) []anthropic.ToolUnionParam {
	result := make([]anthropic.ToolUnionParam, len(tools))
	for i, t := range tools {
		properties, _ := t.Parameters["properties"].(map[string]interface{})
		required, _ := t.Parameters["required"].([]string)

		toolParam := anthropic.ToolParam{
			Name:        t.Name,
			Description: anthropic.String(t.Description),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: properties,
				Required:   required,
			},
		}
		result[i] = anthropic.ToolUnionParam{OfTool: &toolParam}
	}
	return result
}

func convertToAnthropicToolChoice(tc ToolChoice) anthropic.ToolChoiceUnionParam {
	switch tc.Kind {
	case ToolChoiceTool:
		return anthropic.ToolChoiceUnionParam{
			OfTool: &anthropic.ToolChoiceToolParam{Name: tc.Name},
		}
	case ToolChoiceAny:
		return anthropic.ToolChoiceUnionParam{
			OfAny: &anthropic.ToolChoiceAnyParam{},
		}
	default:
		return anthropic.ToolChoiceUnionParam{
			OfAuto: &anthropic.ToolChoiceAutoParam{},
		}
	}
}

// Verify AnthropicProvider implements Provider
var _ Provider = (*AnthropicProvider)(nil)
