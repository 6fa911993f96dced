package render

import (
	"io"
	"os"
	"strings"
	"testing"
)

func TestMarkdownRendersContent(t *testing.T) {
	out := Markdown("# Title\n\nsome `code`\n", "dark")
	if !strings.Contains(out, "Title") {
		t.Errorf("rendered output lost content: %q", out)
	}
}

func TestMarkdownBadThemeFallsBack(t *testing.T) {
	content := "plain **text**"
	out := Markdown(content, "no-such-style")
	if out == "" {
		t.Error("expected fallback output, got empty string")
	}
}

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stderr = w
	fn()
	w.Close()
	os.Stderr = old
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading captured stderr: %v", err)
	}
	return string(data)
}

func TestErrorfWritesStyledLineToStderr(t *testing.T) {
	out := captureStderr(t, func() { Errorf("key missing for %s", "openai") })
	if !strings.Contains(out, "key missing for openai") {
		t.Errorf("stderr output lost the message: %q", out)
	}
	if !strings.Contains(out, "Error:") {
		t.Errorf("expected the error prefix, got %q", out)
	}
}

func TestNoticefWritesToStderr(t *testing.T) {
	out := captureStderr(t, func() { Noticef("history unavailable") })
	if !strings.Contains(out, "history unavailable") {
		t.Errorf("stderr output lost the message: %q", out)
	}
}
