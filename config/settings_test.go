package config

import (
	"testing"
)

func TestNewValidProvider(t *testing.T) {
	settings, err := New("anthropic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.LLM.Provider != "anthropic" {
		t.Errorf("expected provider 'anthropic', got %q", settings.LLM.Provider)
	}
	if settings.CLI.HistoryLines != 200 {
		t.Errorf("expected default 200 history lines, got %d", settings.CLI.HistoryLines)
	}
}

func TestNewWithAlias(t *testing.T) {
	settings, err := New("claude")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.LLM.Provider != "anthropic" {
		t.Errorf("expected provider 'anthropic' (normalized from 'claude'), got %q", settings.LLM.Provider)
	}
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := New("unknown_provider")
	if err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNewWithInvalidEnvVar(t *testing.T) {
	t.Setenv("LLM_MAX_TOKENS", "not-a-number")

	_, err := New("anthropic")
	if err == nil {
		t.Error("expected error for invalid LLM_MAX_TOKENS")
	}
}

func TestNewReadsOverrides(t *testing.T) {
	t.Setenv("LLM_TEMPERATURE", "0.2")
	t.Setenv("SSAGE_HISTORY_LINES", "50")
	t.Setenv("SSAGE_LOG_USAGE", "true")
	t.Setenv("ANTHROPIC_MODEL", "claude-3-5-haiku-20241022")

	settings, err := New("anthropic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.LLM.Temperature != 0.2 {
		t.Errorf("expected temperature 0.2, got %g", settings.LLM.Temperature)
	}
	if settings.CLI.HistoryLines != 50 {
		t.Errorf("expected 50 history lines, got %d", settings.CLI.HistoryLines)
	}
	if !settings.CLI.LogUsage {
		t.Error("expected usage logging enabled")
	}
	if settings.LLM.Model != "claude-3-5-haiku-20241022" {
		t.Errorf("unexpected model %q", settings.LLM.Model)
	}
}

func TestAPIKeyForFromEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("ANTHROPIC_API_KEY", "test-key")

	key, err := APIKeyFor("anthropic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "test-key" {
		t.Errorf("expected 'test-key', got %q", key)
	}
}

func TestAPIKeyForMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("ANTHROPIC_API_KEY", "")

	_, err := APIKeyFor("anthropic")
	if err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestAPIKeyForUnknownProvider(t *testing.T) {
	_, err := APIKeyFor("unknown")
	if err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestModelFor(t *testing.T) {
	model, err := ModelFor("openai")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model == "" {
		t.Error("expected non-empty model")
	}
}

func TestSupportedProviders(t *testing.T) {
	names := SupportedProviders()
	if len(names) == 0 {
		t.Error("expected at least one supported provider")
	}
}
