package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/ngerold/shellsage/llm"
)

func TestRunRejectsCrossProviderModel(t *testing.T) {
	opts := DefaultOptions()
	opts.Provider = "openai"
	opts.Model = llm.ModelClaude35Sonnet

	err := Run(context.Background(), "why did this fail", opts)
	if err == nil {
		t.Fatal("expected an error for an anthropic model on the openai provider")
	}
	if !strings.Contains(err.Error(), "anthropic") || !strings.Contains(err.Error(), "openai") {
		t.Errorf("error should name both providers, got %v", err)
	}
}

func TestRunRejectsUnknownProvider(t *testing.T) {
	opts := DefaultOptions()
	opts.Provider = "mistral"

	if err := Run(context.Background(), "hello", opts); err == nil {
		t.Fatal("expected an error for an unknown provider")
	}
}
