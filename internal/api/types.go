// Package api defines the wire-level request and response types shared
// between the HTTP handlers and the tool execution pipeline. These are the
// only shapes clients ever see; internal errors are translated into the
// ErrorInfo codes defined here before leaving the process.
package api

// Error codes returned in ErrorInfo.Code. Validation-class codes carry the
// precise failure message; infrastructure-class codes carry a sanitized one.
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeToolNotFound    = "TOOL_NOT_FOUND"
	CodeInvalidTool     = "INVALID_TOOL"
	CodeGenerationError = "GENERATION_ERROR"
	CodeServerError     = "SERVER_ERROR"
)

// GenerationRequest is the inbound body of POST /api/v1/generate.
//
// Inputs is deliberately loose at the wire level: values may be strings,
// numbers, or image-upload objects ({type, size, data}). The validation
// layer normalizes it into typed values before the executor ever sees it.
type GenerationRequest struct {
	ToolID    string         `json:"toolId" binding:"required"`
	VariantID string         `json:"variantId" binding:"required"`
	ModelID   string         `json:"modelId,omitempty"`
	Inputs    map[string]any `json:"inputs" binding:"required"`
}

// ImageInput is the structured form of a file-kind input after validation.
// Data holds the full base64 data URI (data:image/<kind>;base64,...).
type ImageInput struct {
	Type string `json:"type"`
	Size int64  `json:"size"`
	Data string `json:"data"`
}

// GenerationData is the payload of a successful generation.
type GenerationData struct {
	Content    string `json:"content"`
	Model      string `json:"model"`
	TokensUsed int    `json:"tokensUsed"`
}

// ErrorInfo describes a failed request. Field is the dotted path of the
// offending input ("inputs.topic") when the failure is field-scoped.
type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
}

// ApiResponse is the envelope every endpoint answers with.
type ApiResponse[T any] struct {
	Success bool       `json:"success"`
	Data    *T         `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// OK wraps data in a successful envelope.
func OK[T any](data T) ApiResponse[T] {
	return ApiResponse[T]{Success: true, Data: &data}
}

// Fail builds an error envelope with the given code and message.
func Fail[T any](code, message, field string) ApiResponse[T] {
	return ApiResponse[T]{Success: false, Error: &ErrorInfo{Message: message, Code: code, Field: field}}
}

// Usage holds token accounting reported by the completion provider.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

