// LLM Provider interface - the abstract interface for LLM providers.
// Each provider implementation hides:
// - API client initialization and authentication
// - Request/response format conversion
// - Provider-specific error handling

package llm

import (
	"context"
)

// Provider defines the abstract interface for LLM providers.
// Implementations hide provider-specific details while exposing
// a consistent interface for chat completions.
type Provider interface {
	// Name returns the provider name (for logging/debugging).
	Name() string

	// Model returns the current model being used.
	Model() string

	// Chat sends a validated chat completion request and returns the
	// structured response.
	Chat(ctx context.Context, req *ChatRequest) (*Response, error)

	// StreamChat streams a chat completion, sending text fragments to the
	// provided channel. Returns token usage when the provider reports it;
	// usage is only complete once the stream has reached its end.
	StreamChat(ctx context.Context, req *ChatRequest, chunks chan<- string) (*Usage, error)
}
