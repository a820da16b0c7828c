package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *OpenRouterClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewOpenRouterClient("test-key", "https://example.com", "Example")
	if err != nil {
		t.Fatalf("NewOpenRouterClient() error = %v", err)
	}
	return client.WithBaseURL(srv.URL)
}

func TestNewOpenRouterClientRequiresConfig(t *testing.T) {
	t.Parallel()

	if _, err := NewOpenRouterClient("", "https://example.com", "x"); err == nil {
		t.Error("empty api key must be rejected")
	}
	if _, err := NewOpenRouterClient("key", "", "x"); err == nil {
		t.Error("empty site URL must be rejected")
	}
}

func TestCreateCompletion(t *testing.T) {
	t.Parallel()

	var gotReq openRouterRequest
	var gotHeaders http.Header
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "generated text"}},
			},
			"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 20, "total_tokens": 30},
		})
	})

	result, err := client.CreateCompletion(context.Background(), &CompletionRequest{
		Model:        "anthropic/claude-3-haiku",
		SystemPrompt: "You are a storyteller.",
		UserMessage:  "Topic: lighthouses",
		MaxTokens:    1500,
		Temperature:  0.8,
	})
	if err != nil {
		t.Fatalf("CreateCompletion() error = %v", err)
	}

	if result.Content != "generated text" {
		t.Errorf("Content = %q", result.Content)
	}
	if result.Usage.TotalTokens != 30 {
		t.Errorf("TotalTokens = %d, want 30", result.Usage.TotalTokens)
	}

	if got := gotHeaders.Get("Authorization"); got != "Bearer test-key" {
		t.Errorf("Authorization = %q", got)
	}
	if got := gotHeaders.Get("HTTP-Referer"); got != "https://example.com" {
		t.Errorf("HTTP-Referer = %q", got)
	}
	if got := gotHeaders.Get("X-Title"); got != "Example" {
		t.Errorf("X-Title = %q", got)
	}

	if gotReq.Model != "anthropic/claude-3-haiku" || gotReq.MaxTokens != 1500 {
		t.Errorf("request payload = %+v", gotReq)
	}
	if len(gotReq.Messages) != 2 {
		t.Fatalf("messages = %d, want system + user", len(gotReq.Messages))
	}
	if gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Errorf("message roles = %q, %q", gotReq.Messages[0].Role, gotReq.Messages[1].Role)
	}
	if content, ok := gotReq.Messages[1].Content.(string); !ok || content != "Topic: lighthouses" {
		t.Errorf("user content = %#v, want plain string", gotReq.Messages[1].Content)
	}
}

func TestCreateCompletionWithImages(t *testing.T) {
	t.Parallel()

	var raw map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": "moody"}}},
		})
	})

	_, err := client.CreateCompletion(context.Background(), &CompletionRequest{
		Model:        "google/gemini-2.0-flash-exp:free",
		SystemPrompt: "Describe the mood.",
		Images:       []string{"data:image/png;base64,aGVsbG8="},
	})
	if err != nil {
		t.Fatalf("CreateCompletion() error = %v", err)
	}

	messages := raw["messages"].([]any)
	user := messages[len(messages)-1].(map[string]any)
	parts, ok := user["content"].([]any)
	if !ok {
		t.Fatalf("user content = %#v, want content parts", user["content"])
	}
	part := parts[0].(map[string]any)
	if part["type"] != "image_url" {
		t.Errorf("part type = %v", part["type"])
	}
	imageURL := part["image_url"].(map[string]any)
	if imageURL["url"] != "data:image/png;base64,aGVsbG8=" {
		t.Errorf("image url = %v", imageURL["url"])
	}
}

func TestCreateCompletionUsageOmitted(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": "x"}}},
		})
	})

	result, err := client.CreateCompletion(context.Background(), &CompletionRequest{Model: "m"})
	if err != nil {
		t.Fatalf("CreateCompletion() error = %v", err)
	}
	if result.Usage.TotalTokens != 0 {
		t.Errorf("TotalTokens = %d, want 0 when usage is absent", result.Usage.TotalTokens)
	}
}

func TestCreateCompletionUpstreamError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "rate limit exceeded"},
		})
	})

	_, err := client.CreateCompletion(context.Background(), &CompletionRequest{Model: "m"})
	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("CreateCompletion() error = %v, want *UpstreamError", err)
	}
	if upErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d", upErr.StatusCode)
	}
	if upErr.Message != "rate limit exceeded" {
		t.Errorf("Message = %q", upErr.Message)
	}
}

func TestCreateCompletionNoChoices(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	_, err := client.CreateCompletion(context.Background(), &CompletionRequest{Model: "m"})
	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("CreateCompletion() error = %v, want *UpstreamError", err)
	}
}

func TestCreateCompletionCancelled(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so net/http can detect the client disconnect
		// and cancel the request context.
		io.Copy(io.Discard, r.Body)
		close(started)
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := client.CreateCompletion(ctx, &CompletionRequest{Model: "m"})
	var cancelErr *CancelledError
	if !errors.As(err, &cancelErr) {
		t.Fatalf("CreateCompletion() error = %v, want *CancelledError", err)
	}
}

func TestCreateCompletionDeadlineExceeded(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so net/http can detect the client disconnect
		// and cancel the request context.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.CreateCompletion(ctx, &CompletionRequest{Model: "m"})
	var cancelErr *CancelledError
	if !errors.As(err, &cancelErr) {
		t.Fatalf("CreateCompletion() error = %v, want *CancelledError", err)
	}
}
