package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dr-ninja/toolko/internal/api"
	"github.com/dr-ninja/toolko/internal/llm"
	"github.com/dr-ninja/toolko/internal/prompt"
)

// ExecutionRequest is a generation request after validation: Inputs holds
// normalized values only (string, float64, or api.ImageInput).
type ExecutionRequest struct {
	VariantID string
	ModelID   string
	Inputs    map[string]any
}

// ExecutionResult is the normalized outcome of a successful execution.
type ExecutionResult struct {
	Content    string `json:"content"`
	Model      string `json:"model"`
	TokensUsed int    `json:"tokensUsed"`
}

// NotFoundError reports a variant id the tool does not declare.
type NotFoundError struct {
	ToolID    string
	VariantID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("variant %q not found for tool %q", e.VariantID, e.ToolID)
}

// PolicyError reports a model id outside the tool's allow-list.
type PolicyError struct {
	ToolID  string
	ModelID string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("model %q is not allowed for tool %q", e.ModelID, e.ToolID)
}

// MissingInputError reports a required input that is absent or empty at
// message-assembly time. Validation normally catches this earlier; the
// executor re-checks before dispatch.
type MissingInputError struct {
	Field string
	Label string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("required input %q is missing", e.Label)
}

// Executor ties the whole pipeline together: variant resolution, model
// allow-listing, prompt resolution, placeholder substitution, user-message
// assembly, and the completion dispatch.
//
// Each step is a gate: the first failure aborts with a typed error and no
// observable side effects. The executor never retries; the caller
// owns timeout and retry policy through ctx and re-invocation.
type Executor struct {
	resolver *prompt.Resolver
	clients  llm.ClientResolver
	log      *slog.Logger
}

// NewExecutor creates an executor. A nil logger falls back to slog.Default.
func NewExecutor(resolver *prompt.Resolver, clients llm.ClientResolver, log *slog.Logger) *Executor {
	if log == nil {
		log = slog.Default()
	}
	return &Executor{resolver: resolver, clients: clients, log: log}
}

// Execute runs one generation request against a tool.
func (e *Executor) Execute(ctx context.Context, tool *ToolConfig, req *ExecutionRequest) (*ExecutionResult, error) {
	// 1. Variant resolution.
	variant, ok := tool.Variant(req.VariantID)
	if !ok {
		return nil, &NotFoundError{ToolID: tool.ID, VariantID: req.VariantID}
	}

	// 2. Model resolution and allow-list check.
	modelID := req.ModelID
	if modelID == "" {
		modelID = tool.DefaultModel
	}
	if !tool.ModelAllowed(modelID) {
		return nil, &PolicyError{ToolID: tool.ID, ModelID: modelID}
	}

	// 3. Prompt resolution for the request's language. A variant with a
	// fixed language pins its template regardless of the request.
	language := prompt.DefaultLanguage
	if lang, isStr := req.Inputs["language"].(string); isStr && lang != "" {
		language = lang
	}
	if variant.Language != "" {
		language = variant.Language
	}
	template, err := e.resolver.Resolve(variant.PromptPath, language)
	if err != nil {
		return nil, err
	}

	// 4. Placeholder substitution. The reserved {{variant}} token is set
	// last so a user input named "variant" can never shadow it.
	values := make(map[string]string, len(req.Inputs)+1)
	for key, v := range req.Inputs {
		if _, isImage := v.(api.ImageInput); isImage {
			continue
		}
		values[key] = prompt.Stringify(v)
	}
	values[prompt.VariantToken] = variant.Name
	systemPrompt := prompt.Substitute(template, values)
	if unresolved := prompt.FindUnresolved(systemPrompt); len(unresolved) > 0 {
		// A leftover token is a template bug, not a user error;
		// generation continues.
		e.log.Warn("unresolved prompt placeholders",
			"tool", tool.ID, "variant", variant.ID, "tokens", unresolved)
	}

	// 5. User-message assembly.
	userMessage, images, err := buildUserMessage(tool, variant, req.Inputs)
	if err != nil {
		return nil, err
	}

	e.log.Debug("dispatching generation",
		"tool", tool.ID, "variant", variant.ID, "model", modelID,
		"language", language, "system_prompt", systemPrompt, "user_message", userMessage)

	// 6. Completion dispatch.
	client := e.clients(modelID)
	result, err := client.CreateCompletion(ctx, &llm.CompletionRequest{
		Model:        modelID,
		SystemPrompt: systemPrompt,
		UserMessage:  userMessage,
		Images:       images,
		MaxTokens:    tool.Settings.MaxTokens,
		Temperature:  tool.Settings.Temperature,
		TopP:         tool.Settings.TopP,
	})
	if err != nil {
		return nil, err
	}

	// 7. Normalized result; TokensUsed stays 0 when the provider omitted
	// usage data.
	return &ExecutionResult{
		Content:    result.Content,
		Model:      modelID,
		TokensUsed: result.Usage.TotalTokens,
	}, nil
}

// buildUserMessage renders the "{label}: {value}" content lines in declared
// input order. The language input is consumed by prompt selection only and
// never appears as a content line; image inputs become attachments rather
// than text.
func buildUserMessage(tool *ToolConfig, variant *Variant, inputs map[string]any) (string, []string, error) {
	var lines []string
	var images []string

	// Name the sub-style when it is a real choice, not just the tool again.
	if variant.ID != tool.ID {
		lines = append(lines, "Content Type: "+variant.Name)
	}

	for i := range tool.Inputs {
		input := &tool.Inputs[i]
		v, present := inputs[input.ID]

		if img, isImage := v.(api.ImageInput); isImage {
			images = append(images, img.Data)
			continue
		}

		value := ""
		if present {
			value = prompt.Stringify(v)
		}
		if input.Required && value == "" {
			return "", nil, &MissingInputError{Field: "inputs." + input.ID, Label: input.Label}
		}
		if input.ID == "language" || value == "" {
			continue
		}
		lines = append(lines, input.Label+": "+value)
	}

	return strings.Join(lines, "\n\n"), images, nil
}
