// Client - completion dispatcher over a Provider.
//
// One Client serves one invocation: it dispatches a validated ChatRequest in
// blocking or streaming mode, wraps failures in DispatchError, and appends
// one usage record per completed call to an optional, explicitly owned log.

package llm

import (
	"context"
)

// Client dispatches validated requests to a provider.
type Client struct {
	provider Provider
	usage    *UsageLog
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithUsageLog enables usage logging into the given accumulator.
// The log is owned by the caller; the Client only appends to it.
func WithUsageLog(log *UsageLog) ClientOption {
	return func(c *Client) { c.usage = log }
}

// NewClient creates a dispatcher for the given provider.
func NewClient(provider Provider, opts ...ClientOption) *Client {
	c := &Client{provider: provider}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Provider returns the underlying provider.
func (c *Client) Provider() Provider {
	return c.provider
}

// Complete dispatches a request in blocking mode and returns the structured
// response. Transport, auth, and provider failures are wrapped in a
// *DispatchError carrying the original cause; no retries happen here.
func (c *Client) Complete(ctx context.Context, req *ChatRequest) (*Response, error) {
	resp, err := c.provider.Chat(ctx, req)
	if err != nil {
		return nil, &DispatchError{Provider: c.provider.Name(), Err: err}
	}
	if c.usage != nil && resp.Usage != nil {
		c.usage.Append(*resp.Usage)
	}
	return resp, nil
}

// Chat dispatches a request in blocking mode and returns just the extracted
// answer text.
func (c *Client) Chat(ctx context.Context, req *ChatRequest) (string, error) {
	resp, err := c.Complete(ctx, req)
	if err != nil {
		return "", err
	}
	return Contents(resp)
}

// Stream dispatches a request in streaming mode and returns a pull-based
// handle over the text fragments. The provider goroutine is torn down on
// every exit path: normal exhaustion, transport error, or the consumer
// abandoning the stream early via Close.
func (c *Client) Stream(ctx context.Context, req *ChatRequest) *Stream {
	ctx, cancel := context.WithCancel(ctx)
	s := &Stream{
		chunks: make(chan string),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		usage, err := c.provider.StreamChat(ctx, req, s.chunks)
		if err != nil && ctx.Err() == nil {
			s.err = &DispatchError{Provider: c.provider.Name(), Err: err}
		}
		s.usage = usage
		// Usage is known only after the final chunk; append before closing
		// the channel so consumers that drain the stream observe the record.
		if err == nil && c.usage != nil && usage != nil {
			c.usage.Append(*usage)
		}
		// done must close before chunks: a consumer unblocked by the chunks
		// close then observes err and usage without racing the producer.
		close(s.done)
		close(s.chunks)
	}()

	return s
}

// Stream is a finite, consumed-at-most-once sequence of text fragments.
// Fragments are produced only when pulled, so backpressure is implicit.
type Stream struct {
	chunks chan string
	cancel context.CancelFunc
	done   chan struct{}

	cur   string
	err   error
	usage *Usage
}

// Next pulls the next fragment, blocking until one is available or the
// stream ends. It returns false at end of stream; check Err afterwards.
func (s *Stream) Next() bool {
	text, ok := <-s.chunks
	if !ok {
		return false
	}
	s.cur = text
	return true
}

// Text returns the fragment pulled by the last successful Next.
func (s *Stream) Text() string {
	return s.cur
}

// Err returns the dispatch error that terminated the stream, if any.
// Valid once Next has returned false.
func (s *Stream) Err() error {
	return s.err
}

// Usage returns the provider's usage statistics and whether they are
// available. Usage only materializes once the underlying stream has reached
// its end; a stream abandoned early, or a provider that reports no counters,
// yields ok == false.
func (s *Stream) Usage() (Usage, bool) {
	select {
	case <-s.done:
	default:
		return Usage{}, false
	}
	if s.usage == nil {
		return Usage{}, false
	}
	return *s.usage, true
}

// Close abandons the stream and releases the provider connection. It is safe
// to call after partial consumption and waits for the producer to exit, so
// the connection is closed on every path.
func (s *Stream) Close() error {
	s.cancel()
	// Unblock a producer parked on an unconsumed fragment.
	for range s.chunks {
	}
	<-s.done
	return nil
}
