// OpenAI Provider implementation using go-openai library.
//
// Information Hiding:
// - API endpoint and authentication
// - Request/response format for OpenAI Chat Completions API
// - Streaming via go-openai library

package llm

import (
	"context"
	"errors"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements the Provider interface for OpenAI.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	name   string
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  model,
		name:   "openai",
	}
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return p.name
}

// Model returns the current model.
func (p *OpenAIProvider) Model() string {
	return p.model
}

// Chat sends a chat completion request.
func (p *OpenAIProvider) Chat(ctx context.Context, req *ChatRequest) (*Response, error) {
	resp, err := p.client.CreateChatCompletion(ctx, p.buildRequest(req, false))
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	var parts []ContentPart
	if len(resp.Choices) > 0 {
		msg := resp.Choices[0].Message
		if msg.Content != "" {
			parts = append(parts, TextPart(msg.Content))
		}
		for _, tc := range msg.ToolCalls {
			parts = append(parts, ContentPart{
				Type: PartToolUse,
				ToolUse: &ToolUse{
					ID:    tc.ID,
					Name:  tc.Function.Name,
					Input: []byte(tc.Function.Arguments),
				},
			})
		}
	}

	return &Response{
		Parts: parts,
		Usage: &Usage{
			InputTokens:  uint32(resp.Usage.PromptTokens),
			OutputTokens: uint32(resp.Usage.CompletionTokens),
		},
	}, nil
}

// StreamChat streams a chat completion.
func (p *OpenAIProvider) StreamChat(ctx context.Context, req *ChatRequest, chunks chan<- string) (*Usage, error) {
	oaiReq := p.buildRequest(req, true)
	oaiReq.StreamOptions = &openai.StreamOptions{
		IncludeUsage: true,
	}

	stream, err := p.client.CreateChatCompletionStream(ctx, oaiReq)
	if err != nil {
		return nil, fmt.Errorf("stream creation failed: %w", err)
	}
	defer stream.Close()

	var usage *Usage
	for {
		response, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return usage, nil
		}
		if err != nil {
			return usage, fmt.Errorf("stream recv failed: %w", err)
		}

		// Token usage arrives in the final chunk.
		if response.Usage != nil {
			usage = &Usage{
				InputTokens:  uint32(response.Usage.PromptTokens),
				OutputTokens: uint32(response.Usage.CompletionTokens),
			}
		}

		if len(response.Choices) > 0 {
			content := response.Choices[0].Delta.Content
			if content != "" {
				select {
				case chunks <- content:
				case <-ctx.Done():
					return usage, ctx.Err()
				}
			}
		}
	}
}

func (p *OpenAIProvider) buildRequest(req *ChatRequest, stream bool) openai.ChatCompletionRequest {
	oaiReq := openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    convertToOpenAIMessages(req),
		MaxTokens:   req.MaxTokens,
		Temperature: float32(req.Temperature),
		Stream:      stream,
	}

	if len(req.Tools) > 0 {
		oaiReq.Tools = convertToOpenAITools(req.Tools)
	}
	if req.ToolChoice != nil {
		switch req.ToolChoice.Kind {
		case ToolChoiceTool:
			oaiReq.ToolChoice = openai.ToolChoice{
				Type:     openai.ToolTypeFunction,
				Function: openai.ToolFunction{Name: req.ToolChoice.Name},
			}
		case ToolChoiceAny:
			oaiReq.ToolChoice = "required"
		}
	}

	return oaiReq
}

// convertToOpenAIMessages converts our messages to openai.ChatCompletionMessage.
// A separate system instruction is prepended as a system-role message.
func convertToOpenAIMessages(req *ChatRequest) []openai.ChatCompletionMessage {
	var result []openai.ChatCompletionMessage
	if req.System != "" {
		result = append(result, openai.ChatCompletionMessage{
			Role:    "system",
			Content: req.System,
		})
	}
	for _, msg := range req.Messages {
		result = append(result, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: flattenContent(msg),
		})
	}
	return result
}

// flattenContent reduces typed parts to plain text for providers whose
// message shape carries a single string.
func flattenContent(msg ChatMessage) string {
	if len(msg.Parts) == 0 {
		return msg.Content
	}
	content := ""
	for _, part := range msg.Parts {
		if part.Type == PartText {
			content += part.Text
		}
	}
	return content
}

// convertToOpenAITools converts tool definitions to OpenAI format.
func convertToOpenAITools(tools []ToolDefinition) []openai.Tool {
	result := make([]openai.Tool, len(tools))
	for i, t := range tools {
		result[i] = openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		}
	}
	return result
}

// Verify OpenAIProvider implements Provider
var _ Provider = (*OpenAIProvider)(nil)
