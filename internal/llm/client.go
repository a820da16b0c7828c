// Package llm contains the completion-provider clients. The pipeline talks
// to providers exclusively through the Client interface; OpenRouter is the
// default transport for every model, with an optional native Gemini client
// for google/ models when a direct API key is configured.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dr-ninja/toolko/internal/api"
)

// defaultTimeout caps any single provider call. The HTTP layer also
// enforces a per-request deadline via context; this is the hard backstop.
const defaultTimeout = 120 * time.Second

// CompletionRequest is a fully-assembled generation call: the substituted
// system prompt, the assembled user message, optional image attachments
// (base64 data URIs), and the tool's generation settings.
type CompletionRequest struct {
	Model        string
	SystemPrompt string
	UserMessage  string
	Images       []string
	MaxTokens    int
	Temperature  float64
	TopP         *float64
}

// CompletionResult is the normalized provider response.
type CompletionResult struct {
	Content string
	Model   string
	Usage   api.Usage
}

// Client is the universal interface all completion providers implement.
// Implementations must honor ctx cancellation by aborting the outbound
// call promptly and returning a *CancelledError.
type Client interface {
	CreateCompletion(ctx context.Context, req *CompletionRequest) (*CompletionResult, error)
}

// ClientResolver picks the client responsible for a model id. The
// composition root wires the actual routing (OpenRouter by default,
// native Gemini for google/ models when configured).
type ClientResolver func(modelID string) Client

// UpstreamError reports a failed provider call: a non-2xx response or a
// transport failure. Message may contain provider-internal detail and must
// only ever reach server logs.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// CancelledError reports that the call was aborted by caller-driven
// cancellation or timeout. It is deliberately distinct from UpstreamError
// so callers can present "timed out" rather than "failed".
type CancelledError struct {
	Err error
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("completion call cancelled: %v", e.Err)
}

func (e *CancelledError) Unwrap() error { return e.Err }

// classifyTransportErr wraps a transport failure as either CancelledError
// (context cancelled or deadline exceeded) or UpstreamError.
func classifyTransportErr(provider string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &CancelledError{Err: err}
	}
	return &UpstreamError{Provider: provider, Message: "request failed", Err: err}
}
