// Google Gemini Provider implementation using official google.golang.org/genai SDK.
//
// Information Hiding:
// - API authentication and client creation
// - Request/response format for Gemini API
// - System instruction handling via config
// - Streaming via official SDK iterator

package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiProvider implements the Provider interface for Google Gemini.
type GeminiProvider struct {
	client  *genai.Client
	model   string
	initErr error // Stores client initialization error for deferred reporting
}

// NewGeminiProvider creates a new Gemini provider.
// If client initialization fails, the error is stored and returned on first use.
func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return &GeminiProvider{
			model:   model,
			initErr: fmt.Errorf("failed to initialize Gemini client: %w", err),
		}
	}

	return &GeminiProvider{
		client: client,
		model:  model,
	}
}

// Name returns the provider name.
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Model returns the current model.
func (p *GeminiProvider) Model() string {
	return p.model
}

// Chat sends a chat completion request.
func (p *GeminiProvider) Chat(ctx context.Context, req *ChatRequest) (*Response, error) {
	if p.initErr != nil {
		return nil, p.initErr
	}

	contents, config := p.buildRequest(req)

	response, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	var parts []ContentPart
	if text := response.Text(); text != "" {
		parts = append(parts, TextPart(text))
	}

	return &Response{
		Parts: parts,
		Usage: convertGeminiUsage(response.UsageMetadata),
	}, nil
}

// StreamChat streams a chat completion.
func (p *GeminiProvider) StreamChat(ctx context.Context, req *ChatRequest, chunks chan<- string) (*Usage, error) {
	if p.initErr != nil {
		return nil, p.initErr
	}

	contents, config := p.buildRequest(req)

	var usage *Usage
	// GenerateContentStream returns iter.Seq2[*GenerateContentResponse, error]
	for response, err := range p.client.Models.GenerateContentStream(ctx, p.model, contents, config) {
		if err != nil {
			return usage, fmt.Errorf("stream error: %w", err)
		}

		if u := convertGeminiUsage(response.UsageMetadata); u != nil {
			usage = u
		}

		text := response.Text()
		if text != "" {
			select {
			case chunks <- text:
			case <-ctx.Done():
				return usage, ctx.Err()
			}
		}
	}

	return usage, nil
}

func (p *GeminiProvider) buildRequest(req *ChatRequest) ([]*genai.Content, *genai.GenerateContentConfig) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(req.Temperature)),
		MaxOutputTokens: int32(req.MaxTokens),
	}

	var contents []*genai.Content
	system := req.System
	for _, msg := range req.Messages {
		switch msg.Role {
		case RoleSystem:
			system = msg.Content
		case RoleUser:
			contents = append(contents, genai.NewContentFromText(flattenContent(msg), genai.RoleUser))
		case RoleAssistant:
			contents = append(contents, genai.NewContentFromText(flattenContent(msg), genai.RoleModel))
		}
	}

	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	return contents, config
}

func convertGeminiUsage(m *genai.GenerateContentResponseUsageMetadata) *Usage {
	if m == nil {
		return nil
	}
	return &Usage{
		InputTokens:     uint32(m.PromptTokenCount),
		OutputTokens:    uint32(m.CandidatesTokenCount),
		CacheReadTokens: uint32(m.CachedContentTokenCount),
	}
}

// Verify GeminiProvider implements Provider
var _ Provider = (*GeminiProvider)(nil)
