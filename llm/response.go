package llm

import (
	"fmt"
	"strings"
)

// Response is a structured provider response: an ordered sequence of
// heterogeneous content parts plus usage, when the provider reported it.
type Response struct {
	Parts []ContentPart
	Usage *Usage
}

// Contents extracts the canonical answer text from a response.
//
// The parts are scanned in order for the first text part. If there is none
// but the sequence is non-empty, the first part is rendered instead:
// providers may legitimately lead with non-text content (a tool_use block,
// say) and the caller should still get something useful back. Only an empty
// part sequence is an error.
func Contents(resp *Response) (string, error) {
	if resp == nil || len(resp.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	part := resp.Parts[0]
	for _, p := range resp.Parts {
		if p.Type == PartText {
			part = p
			break
		}
	}
	return renderPart(part), nil
}

// renderPart yields the part's text field when present, or a generic string
// form otherwise. Never fails on unrecognized part types.
func renderPart(p ContentPart) string {
	if p.Text != "" {
		return strings.TrimSpace(p.Text)
	}
	switch p.Type {
	case PartToolUse:
		if p.ToolUse != nil {
			return fmt.Sprintf("[tool_use %s %s]", p.ToolUse.Name, string(p.ToolUse.Input))
		}
	case PartImage:
		if p.Image != nil {
			return fmt.Sprintf("[image %s]", p.Image.MediaType)
		}
	}
	if len(p.Raw) > 0 {
		return string(p.Raw)
	}
	return fmt.Sprintf("[%s]", p.Type)
}
