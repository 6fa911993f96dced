package llm

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestContentsFirstTextPart(t *testing.T) {
	resp := &Response{Parts: []ContentPart{
		{Type: PartToolUse, ToolUse: &ToolUse{ID: "t1", Name: "search", Input: json.RawMessage(`{}`)}},
		{Type: PartText, Text: " hi "},
	}}

	got, err := Contents(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hi" {
		t.Errorf("expected trimmed text from the text part, got %q", got)
	}
}

func TestContentsFallbackToFirstPart(t *testing.T) {
	resp := &Response{Parts: []ContentPart{
		{Type: PartToolUse, ToolUse: &ToolUse{ID: "t1", Name: "search", Input: json.RawMessage(`{"q":"x"}`)}},
	}}

	got, err := Contents(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "search") {
		t.Errorf("expected stringified tool_use part, got %q", got)
	}
}

func TestContentsUnknownPart(t *testing.T) {
	resp := &Response{Parts: []ContentPart{
		{Type: PartUnknown, Raw: json.RawMessage(`{"type":"thinking"}`)},
	}}

	got, err := Contents(resp)
	if err != nil {
		t.Fatalf("unrecognized part types must not fail: %v", err)
	}
	if got == "" {
		t.Error("expected a generic rendering, got empty string")
	}
}

func TestContentsEmptyResponse(t *testing.T) {
	_, err := Contents(&Response{})
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}

	_, err = Contents(nil)
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse for nil response, got %v", err)
	}
}

func TestContentsTrimsWhitespace(t *testing.T) {
	resp := &Response{Parts: []ContentPart{TextPart("\n  answer  \n")}}
	got, err := Contents(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "answer" {
		t.Errorf("expected %q, got %q", "answer", got)
	}
}
