package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dr-ninja/toolko/internal/api"
)

const defaultOpenRouterURL = "https://openrouter.ai/api/v1/chat/completions"

// openRouterRequest is the chat-completions payload OpenRouter expects.
type openRouterRequest struct {
	Model       string              `json:"model"`
	Messages    []openRouterMessage `json:"messages"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
	Temperature float64             `json:"temperature"`
	TopP        *float64            `json:"top_p,omitempty"`
}

// openRouterMessage carries either a plain string or, for image-bearing
// user turns, a list of content parts.
type openRouterMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type openRouterContentPart struct {
	Type     string              `json:"type"`
	Text     string              `json:"text,omitempty"`
	ImageURL *openRouterImageURL `json:"image_url,omitempty"`
}

type openRouterImageURL struct {
	URL string `json:"url"`
}

type openRouterResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage *api.Usage `json:"usage,omitempty"`
}

type openRouterErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// OpenRouterClient dispatches completions through the OpenRouter API. It
// attributes requests to the deploying site via the HTTP-Referer and
// X-Title headers OpenRouter uses for rankings.
//
// The client makes exactly one attempt per call: retrying a failed
// generation is the caller's decision, never the pipeline's.
type OpenRouterClient struct {
	apiKey     string
	siteURL    string
	siteName   string
	apiURL     string
	httpClient *http.Client
}

var _ Client = (*OpenRouterClient)(nil)

// NewOpenRouterClient creates a configured OpenRouter client. Both the API
// key and the attribution site URL are mandatory; missing values are a
// configuration fault the process should fail fast on.
func NewOpenRouterClient(apiKey, siteURL, siteName string) (*OpenRouterClient, error) {
	if apiKey == "" {
		return nil, errors.New("OpenRouter API key cannot be empty")
	}
	if siteURL == "" {
		return nil, errors.New("site URL for provider attribution cannot be empty")
	}
	return &OpenRouterClient{
		apiKey:   apiKey,
		siteURL:  siteURL,
		siteName: siteName,
		apiURL:   defaultOpenRouterURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}, nil
}

// WithBaseURL overrides the API endpoint. Tests point this at a local
// httptest server.
func (c *OpenRouterClient) WithBaseURL(url string) *OpenRouterClient {
	c.apiURL = url
	return c
}

// CreateCompletion performs a single blocking chat-completions call.
func (c *OpenRouterClient) CreateCompletion(ctx context.Context, req *CompletionRequest) (*CompletionResult, error) {
	payload, err := json.Marshal(buildOpenRouterRequest(req))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal openrouter payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create openrouter request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("HTTP-Referer", c.siteURL)
	httpReq.Header.Set("X-Title", c.siteName)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyTransportErr("openrouter", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportErr("openrouter", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody openRouterErrorBody
		message := resp.Status
		if json.Unmarshal(body, &errBody) == nil && errBody.Error.Message != "" {
			message = errBody.Error.Message
		}
		return nil, &UpstreamError{Provider: "openrouter", StatusCode: resp.StatusCode, Message: message}
	}

	var parsed openRouterResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &UpstreamError{Provider: "openrouter", Message: "failed to decode response", Err: err}
	}
	if len(parsed.Choices) == 0 {
		return nil, &UpstreamError{Provider: "openrouter", Message: "no choices returned"}
	}

	result := &CompletionResult{
		Content: parsed.Choices[0].Message.Content,
		Model:   req.Model,
	}
	// Usage is optional in the provider contract; absent means zero.
	if parsed.Usage != nil {
		result.Usage = *parsed.Usage
	}
	return result, nil
}

// buildOpenRouterRequest converts the internal request into the wire shape.
// Text-only user messages stay plain strings; image attachments switch the
// user turn to the multi-part content form.
func buildOpenRouterRequest(req *CompletionRequest) openRouterRequest {
	messages := make([]openRouterMessage, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, openRouterMessage{Role: "system", Content: req.SystemPrompt})
	}

	if len(req.Images) == 0 {
		messages = append(messages, openRouterMessage{Role: "user", Content: req.UserMessage})
	} else {
		parts := make([]openRouterContentPart, 0, len(req.Images)+1)
		if req.UserMessage != "" {
			parts = append(parts, openRouterContentPart{Type: "text", Text: req.UserMessage})
		}
		for _, img := range req.Images {
			parts = append(parts, openRouterContentPart{
				Type:     "image_url",
				ImageURL: &openRouterImageURL{URL: img},
			})
		}
		messages = append(messages, openRouterMessage{Role: "user", Content: parts})
	}

	return openRouterRequest{
		Model:       req.Model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		TopP:        req.TopP,
	}
}
