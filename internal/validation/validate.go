package validation

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/dr-ninja/toolko/internal/api"
	"github.com/dr-ninja/toolko/internal/tools"
)

// Length bounds applied to free-text inputs. Select values are exempt:
// their legality comes from the declared option set, not their length.
const (
	minTextLength     = 3
	maxTextLength     = 500
	minTextareaLength = 10
	maxTextareaLength = 5000
)

// Error is a field-scoped validation failure. The message is written for
// end users and is always safe to return verbatim; Field is the dotted
// path of the offending input ("inputs.image.size").
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

func failf(field, format string, args ...any) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Values holds validated, normalized inputs keyed by field id. String and
// number inputs stay string/float64; file inputs become api.ImageInput.
type Values map[string]any

// ValidateInputs checks raw against the tool's declared inputs and returns
// the normalized values. Validation stops at the first failing field; on
// failure nothing downstream may run.
//
// Raw keys that no input declares are passed through sanitized (strings)
// or as-is (numbers) so templates can reference them, but objects under
// undeclared keys are dropped.
func ValidateInputs(tool *tools.ToolConfig, raw map[string]any) (Values, error) {
	values := make(Values, len(raw))

	for i := range tool.Inputs {
		input := &tool.Inputs[i]
		field := "inputs." + input.ID
		v, present := raw[input.ID]
		if !present || v == nil {
			if input.Required {
				return nil, failf(field, "%s is required", input.Label)
			}
			continue
		}

		switch input.Kind {
		case tools.InputText, tools.InputTextarea:
			s, ok := v.(string)
			if !ok {
				return nil, failf(field, "%s must be a string", input.Label)
			}
			s = SanitizeText(s)
			if s == "" {
				if input.Required {
					return nil, failf(field, "%s is required", input.Label)
				}
				continue
			}
			min, max := minTextLength, maxTextLength
			if input.Kind == tools.InputTextarea {
				min, max = minTextareaLength, maxTextareaLength
			}
			// Bounds count characters, not bytes: Cyrillic and Arabic
			// text is multibyte in UTF-8.
			length := utf8.RuneCountInString(s)
			if length < min {
				return nil, failf(field, "%s must be at least %d characters", input.Label, min)
			}
			if length > max {
				return nil, failf(field, "%s must be less than %d characters", input.Label, max)
			}
			values[input.ID] = s

		case tools.InputSelect:
			s, ok := v.(string)
			if !ok {
				return nil, failf(field, "%s must be a string", input.Label)
			}
			if !optionAllowed(input.Options, s) {
				return nil, failf(field, "%s must be one of: %s", input.Label, optionValues(input.Options))
			}
			values[input.ID] = s

		case tools.InputNumber:
			n, ok := asNumber(v)
			if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
				return nil, failf(field, "%s must be a number", input.Label)
			}
			if input.Min != nil && n < *input.Min {
				return nil, failf(field, "%s must be at least %g", input.Label, *input.Min)
			}
			if input.Max != nil && n > *input.Max {
				return nil, failf(field, "%s must be at most %g", input.Label, *input.Max)
			}
			values[input.ID] = n

		case tools.InputFile:
			img, verr := validateImage(field, input, v)
			if verr != nil {
				return nil, verr
			}
			values[input.ID] = *img

		default:
			return nil, failf(field, "%s has an unsupported input kind", input.Label)
		}
	}

	// Undeclared scalar extras survive for template substitution.
	declared := make(map[string]bool, len(tool.Inputs))
	for _, in := range tool.Inputs {
		declared[in.ID] = true
	}
	for key, v := range raw {
		if declared[key] {
			continue
		}
		switch val := v.(type) {
		case string:
			values[key] = SanitizeText(val)
		case float64:
			values[key] = val
		}
	}

	return values, nil
}

// validateImage checks a file-kind input as a structured upload object:
// {type, size, data} with the MIME type drawn from the input's accept
// list, the size under the input's ceiling, and the data URI prefix
// matching the declared type.
func validateImage(field string, input *tools.Input, v any) (*api.ImageInput, *Error) {
	obj, ok := v.(map[string]any)
	if !ok {
		// Already normalized (internal callers).
		if img, isImg := v.(api.ImageInput); isImg {
			obj = map[string]any{"type": img.Type, "size": float64(img.Size), "data": img.Data}
		} else {
			return nil, failf(field, "%s must be an object", input.Label)
		}
	}

	mimeType, ok := obj["type"].(string)
	if !ok || mimeType == "" {
		return nil, failf(field+".type", "%s type is required and must be a string", input.Label)
	}
	size, ok := asNumber(obj["size"])
	if !ok || size <= 0 {
		return nil, failf(field+".size", "%s size is required and must be a number", input.Label)
	}
	data, ok := obj["data"].(string)
	if !ok || data == "" {
		return nil, failf(field+".data", "%s data is required and must be a string", input.Label)
	}

	if !mimeAllowed(input.Accept, mimeType) {
		return nil, failf(field+".type", "%s must be one of: %s", input.Label, strings.Join(input.Accept, ", "))
	}
	// Compare before truncating so a fractional over-limit size cannot
	// slip under the ceiling.
	if size > float64(input.MaxSize) {
		return nil, failf(field+".size", "%s size must not exceed %d bytes", input.Label, input.MaxSize)
	}
	if !strings.HasPrefix(data, "data:"+mimeType+";base64,") {
		return nil, failf(field+".data", "%s must be a base64 data URI matching its MIME type", input.Label)
	}

	return &api.ImageInput{Type: mimeType, Size: int64(size), Data: data}, nil
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func optionAllowed(options []tools.Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}

func optionValues(options []tools.Option) string {
	vals := make([]string, len(options))
	for i, o := range options {
		vals[i] = o.Value
	}
	return strings.Join(vals, ", ")
}

func mimeAllowed(accept []string, mimeType string) bool {
	for _, a := range accept {
		if a == mimeType {
			return true
		}
	}
	return false
}
