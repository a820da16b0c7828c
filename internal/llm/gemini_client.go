package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/dr-ninja/toolko/internal/api"
)

// GeminiClient calls Google's Gemini API directly, bypassing OpenRouter.
// Used for google/ models when GEMINI_API_KEY is configured: the direct
// path avoids the relay hop and its quota.
type GeminiClient struct {
	client *genai.Client
}

var _ Client = (*GeminiClient)(nil)

// NewGeminiClient creates a client for the Gemini API.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key cannot be empty")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiClient{client: client}, nil
}

// Close releases the underlying connection.
func (c *GeminiClient) Close() error { return c.client.Close() }

// NativeGeminiModel strips the OpenRouter routing decorations from a model
// id: "google/gemini-2.0-flash-exp:free" -> "gemini-2.0-flash-exp".
func NativeGeminiModel(modelID string) string {
	name := strings.TrimPrefix(modelID, "google/")
	if i := strings.IndexByte(name, ':'); i >= 0 {
		name = name[:i]
	}
	return name
}

// CreateCompletion performs a blocking generation call against Gemini.
func (c *GeminiClient) CreateCompletion(ctx context.Context, req *CompletionRequest) (*CompletionResult, error) {
	model := c.client.GenerativeModel(NativeGeminiModel(req.Model))
	if req.SystemPrompt != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.SystemPrompt)}}
	}
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	model.SetTemperature(float32(req.Temperature))
	if req.TopP != nil {
		model.SetTopP(float32(*req.TopP))
	}

	parts := make([]genai.Part, 0, len(req.Images)+1)
	if req.UserMessage != "" {
		parts = append(parts, genai.Text(req.UserMessage))
	}
	for _, img := range req.Images {
		format, data, err := decodeDataURI(img)
		if err != nil {
			return nil, &UpstreamError{Provider: "gemini", Message: "invalid image attachment", Err: err}
		}
		parts = append(parts, genai.ImageData(format, data))
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, classifyTransportErr("gemini", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, &UpstreamError{Provider: "gemini", Message: "no candidates returned"}
	}

	var content strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			content.WriteString(string(txt))
		}
	}

	result := &CompletionResult{
		Content: content.String(),
		Model:   req.Model,
	}
	if resp.UsageMetadata != nil {
		result.Usage = api.Usage{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}
	return result, nil
}

// decodeDataURI splits "data:image/png;base64,<payload>" into the image
// format ("png") and decoded bytes.
func decodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:image/")
	if !ok {
		return "", nil, fmt.Errorf("not an image data URI")
	}
	format, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return "", nil, fmt.Errorf("data URI is not base64-encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	return format, data, nil
}
