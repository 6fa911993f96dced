package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// fakeProvider scripts responses for dispatcher tests.
type fakeProvider struct {
	resp      *Response
	err       error
	fragments []string
	usage     *Usage
	streamErr error

	exited chan struct{} // closed when StreamChat returns
}

func (f *fakeProvider) Name() string  { return "fake" }
func (f *fakeProvider) Model() string { return "fake-model" }

func (f *fakeProvider) Chat(ctx context.Context, req *ChatRequest) (*Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func (f *fakeProvider) StreamChat(ctx context.Context, req *ChatRequest, chunks chan<- string) (*Usage, error) {
	if f.exited != nil {
		defer close(f.exited)
	}
	for _, frag := range f.fragments {
		select {
		case chunks <- frag:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.usage, f.streamErr
}

func testRequest(t *testing.T) *ChatRequest {
	t.Helper()
	req, err := NewRequest(ModelClaude35Sonnet, []ChatMessage{UserMessage("q")}, RequestOptions{})
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	return req
}

func TestCompleteAppendsUsage(t *testing.T) {
	log := NewUsageLog()
	provider := &fakeProvider{resp: &Response{
		Parts: []ContentPart{TextPart("answer")},
		Usage: &Usage{InputTokens: 7, OutputTokens: 3},
	}}
	client := NewClient(provider, WithUsageLog(log))

	resp, err := client.Complete(context.Background(), testRequest(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := Contents(resp); got != "answer" {
		t.Errorf("expected %q, got %q", "answer", got)
	}
	if len(log.Records()) != 1 {
		t.Fatalf("expected one usage record, got %d", len(log.Records()))
	}
	if log.Total().InputTokens != 7 {
		t.Errorf("unexpected usage total: %+v", log.Total())
	}
}

func TestCompleteWithoutLog(t *testing.T) {
	provider := &fakeProvider{resp: &Response{Parts: []ContentPart{TextPart("ok")}}}
	client := NewClient(provider)

	if _, err := client.Complete(context.Background(), testRequest(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestChatReturnsExtractedText(t *testing.T) {
	provider := &fakeProvider{resp: &Response{
		Parts: []ContentPart{TextPart("  the answer  ")},
	}}
	client := NewClient(provider)

	got, err := client.Chat(context.Background(), testRequest(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "the answer" {
		t.Errorf("expected %q, got %q", "the answer", got)
	}
}

func TestChatEmptyResponse(t *testing.T) {
	client := NewClient(&fakeProvider{resp: &Response{}})

	_, err := client.Chat(context.Background(), testRequest(t))
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestCompleteWrapsDispatchError(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	client := NewClient(&fakeProvider{err: cause})

	_, err := client.Complete(context.Background(), testRequest(t))
	var derr *DispatchError
	if !errors.As(err, &derr) {
		t.Fatalf("expected DispatchError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("DispatchError should preserve the original cause")
	}
}

func TestStreamFullConsumption(t *testing.T) {
	log := NewUsageLog()
	provider := &fakeProvider{
		fragments: []string{"he", "llo"},
		usage:     &Usage{InputTokens: 4, OutputTokens: 2},
	}
	client := NewClient(provider, WithUsageLog(log))

	stream := client.Stream(context.Background(), testRequest(t))
	var got string
	for stream.Next() {
		got += stream.Text()
	}
	if err := stream.Err(); err != nil {
		t.Fatalf("unexpected stream error: %v", err)
	}
	if got != "hello" {
		t.Errorf("expected %q, got %q", "hello", got)
	}

	usage, ok := stream.Usage()
	if !ok {
		t.Fatal("usage should be available after the final chunk")
	}
	if usage.OutputTokens != 2 {
		t.Errorf("unexpected usage: %+v", usage)
	}
	if len(log.Records()) != 1 {
		t.Errorf("expected one usage record after stream end, got %d", len(log.Records()))
	}
}

func TestStreamUsageVisibleAtExhaustion(t *testing.T) {
	// Usage must be readable the moment Next reports end of stream, not
	// merely after the producer goroutine is eventually scheduled out.
	for i := 0; i < 100; i++ {
		provider := &fakeProvider{
			fragments: []string{"a"},
			usage:     &Usage{OutputTokens: 1},
		}
		client := NewClient(provider)

		stream := client.Stream(context.Background(), testRequest(t))
		for stream.Next() {
		}
		if _, ok := stream.Usage(); !ok {
			t.Fatalf("iteration %d: usage unavailable right after Next returned false", i)
		}
	}
}

func TestStreamEarlyAbandonment(t *testing.T) {
	log := NewUsageLog()
	provider := &fakeProvider{
		fragments: []string{"first", "second", "third"},
		usage:     &Usage{InputTokens: 4, OutputTokens: 2},
		exited:    make(chan struct{}),
	}
	client := NewClient(provider, WithUsageLog(log))

	stream := client.Stream(context.Background(), testRequest(t))
	if !stream.Next() {
		t.Fatal("expected a first fragment")
	}
	if stream.Text() != "first" {
		t.Errorf("expected %q, got %q", "first", stream.Text())
	}

	if err := stream.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// The producer must have been torn down, not left parked.
	select {
	case <-provider.exited:
	case <-time.After(time.Second):
		t.Fatal("provider goroutine still running after Close")
	}

	if _, ok := stream.Usage(); ok {
		t.Error("abandoned stream should not report usage")
	}
	if len(log.Records()) != 0 {
		t.Error("abandoned stream should not append a usage record")
	}
	if stream.Err() != nil {
		t.Errorf("abandonment is not a dispatch error, got %v", stream.Err())
	}
}

func TestStreamErrorSurfaced(t *testing.T) {
	provider := &fakeProvider{
		fragments: []string{"partial"},
		streamErr: fmt.Errorf("connection reset"),
	}
	client := NewClient(provider)

	stream := client.Stream(context.Background(), testRequest(t))
	for stream.Next() {
	}

	var derr *DispatchError
	if !errors.As(stream.Err(), &derr) {
		t.Fatalf("expected DispatchError, got %v", stream.Err())
	}
}

func TestStreamExhaustedWithoutUsage(t *testing.T) {
	provider := &fakeProvider{fragments: []string{"x"}}
	client := NewClient(provider)

	stream := client.Stream(context.Background(), testRequest(t))
	for stream.Next() {
	}
	if _, ok := stream.Usage(); ok {
		t.Error("expected no usage when the provider reported none")
	}
}
