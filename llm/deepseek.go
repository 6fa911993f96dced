// DeepSeek Provider implementation using go-openai library.
//
// Information Hiding:
// - Uses OpenAI-compatible API with different base URL
// - Supports deepseek-chat and deepseek-reasoner models

package llm

import (
	openai "github.com/sashabaranov/go-openai"
)

const deepseekBaseURL = "https://api.deepseek.com/v1"

// NewDeepSeekProvider creates a new DeepSeek provider. DeepSeek speaks the
// OpenAI wire protocol, so it reuses the OpenAI provider with a different
// base URL.
func NewDeepSeekProvider(apiKey, model string) *OpenAIProvider {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = deepseekBaseURL

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  model,
		name:   "deepseek",
	}
}
