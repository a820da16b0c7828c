package validation

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/dr-ninja/toolko/internal/api"
	"github.com/dr-ninja/toolko/internal/tools"
)

func validatorTool() *tools.ToolConfig {
	minQty, maxQty := 5.0, 20.0
	return &tools.ToolConfig{
		ID: "test-tool",
		Inputs: []tools.Input{
			{ID: "topic", Label: "Topic", Kind: tools.InputTextarea, Required: true},
			{ID: "title", Label: "Title", Kind: tools.InputText},
			{ID: "tone", Label: "Tone", Kind: tools.InputSelect, Required: true, Options: []tools.Option{
				{Value: "funny", Label: "Funny"},
				{Value: "dramatic", Label: "Dramatic"},
			}},
			{ID: "quantity", Label: "Quantity", Kind: tools.InputNumber, Min: &minQty, Max: &maxQty},
			{ID: "image", Label: "Image", Kind: tools.InputFile, Accept: []string{"image/png", "image/jpeg"}, MaxSize: 10 * 1024 * 1024},
		},
	}
}

func pngUpload(size int64) map[string]any {
	return pngUploadSize(float64(size))
}

func pngUploadSize(size float64) map[string]any {
	return map[string]any{
		"type": "image/png",
		"size": size,
		"data": "data:image/png;base64,aGVsbG8=",
	}
}

func TestValidateInputsSuccess(t *testing.T) {
	t.Parallel()

	values, err := ValidateInputs(validatorTool(), map[string]any{
		"topic":    "  A story about <b>perseverance</b> in hard times  ",
		"tone":     "funny",
		"quantity": float64(10),
		"image":    pngUpload(2048),
	})
	if err != nil {
		t.Fatalf("ValidateInputs() error = %v", err)
	}

	if got := values["topic"]; got != "A story about perseverance in hard times" {
		t.Errorf("topic = %q, want sanitized text", got)
	}
	if got := values["tone"]; got != "funny" {
		t.Errorf("tone = %v", got)
	}
	if got := values["quantity"]; got != float64(10) {
		t.Errorf("quantity = %v", got)
	}
	img, ok := values["image"].(api.ImageInput)
	if !ok {
		t.Fatalf("image = %T, want api.ImageInput", values["image"])
	}
	if img.Type != "image/png" || img.Size != 2048 {
		t.Errorf("image = %+v", img)
	}
	if _, present := values["title"]; present {
		t.Error("absent optional input should not appear in values")
	}
}

func TestValidateInputsFailures(t *testing.T) {
	t.Parallel()

	base := func() map[string]any {
		return map[string]any{
			"topic": "A story about perseverance",
			"tone":  "funny",
		}
	}

	tests := []struct {
		name      string
		mutate    func(raw map[string]any)
		wantField string
		wantIn    string
	}{
		{
			name:      "required textarea missing",
			mutate:    func(raw map[string]any) { delete(raw, "topic") },
			wantField: "inputs.topic",
			wantIn:    "required",
		},
		{
			name:      "textarea under minimum after sanitization",
			mutate:    func(raw map[string]any) { raw["topic"] = "<b>hi</b>" },
			wantField: "inputs.topic",
			wantIn:    "at least 10",
		},
		{
			name:      "textarea over maximum",
			mutate:    func(raw map[string]any) { raw["topic"] = strings.Repeat("a", 5001) },
			wantField: "inputs.topic",
			wantIn:    "less than 5000",
		},
		{
			name:      "text over maximum",
			mutate:    func(raw map[string]any) { raw["title"] = strings.Repeat("a", 501) },
			wantField: "inputs.title",
			wantIn:    "less than 500",
		},
		{
			name:      "cyrillic textarea over maximum in characters",
			mutate:    func(raw map[string]any) { raw["topic"] = strings.Repeat("ы", 5001) },
			wantField: "inputs.topic",
			wantIn:    "less than 5000",
		},
		{
			name:      "cyrillic text under minimum in characters",
			mutate:    func(raw map[string]any) { raw["title"] = "ыы" },
			wantField: "inputs.title",
			wantIn:    "at least 3",
		},
		{
			name:      "image fractionally over size ceiling",
			mutate:    func(raw map[string]any) { raw["image"] = pngUploadSize(10*1024*1024 + 0.5) },
			wantField: "inputs.image.size",
			wantIn:    "must not exceed",
		},
		{
			name:      "select outside declared options",
			mutate:    func(raw map[string]any) { raw["tone"] = "sarcastic" },
			wantField: "inputs.tone",
			wantIn:    "must be one of: funny, dramatic",
		},
		{
			name:      "select wrong type",
			mutate:    func(raw map[string]any) { raw["tone"] = 12.0 },
			wantField: "inputs.tone",
			wantIn:    "must be a string",
		},
		{
			name:      "number below minimum",
			mutate:    func(raw map[string]any) { raw["quantity"] = float64(4) },
			wantField: "inputs.quantity",
			wantIn:    "at least 5",
		},
		{
			name:      "number above maximum",
			mutate:    func(raw map[string]any) { raw["quantity"] = float64(21) },
			wantField: "inputs.quantity",
			wantIn:    "at most 20",
		},
		{
			name:      "number wrong type",
			mutate:    func(raw map[string]any) { raw["quantity"] = "ten" },
			wantField: "inputs.quantity",
			wantIn:    "must be a number",
		},
		{
			name:      "image over size ceiling",
			mutate:    func(raw map[string]any) { raw["image"] = pngUpload(10*1024*1024 + 1) },
			wantField: "inputs.image.size",
			wantIn:    "must not exceed",
		},
		{
			name: "image mime outside accept list",
			mutate: func(raw map[string]any) {
				img := pngUpload(1024)
				img["type"] = "image/gif"
				img["data"] = "data:image/gif;base64,aGVsbG8="
				raw["image"] = img
			},
			wantField: "inputs.image.type",
			wantIn:    "image/png, image/jpeg",
		},
		{
			name: "image data prefix must match declared mime",
			mutate: func(raw map[string]any) {
				img := pngUpload(1024)
				img["type"] = "image/jpeg"
				raw["image"] = img
			},
			wantField: "inputs.image.data",
			wantIn:    "base64 data URI",
		},
		{
			name:      "image not an object",
			mutate:    func(raw map[string]any) { raw["image"] = "data:image/png;base64,aGVsbG8=" },
			wantField: "inputs.image",
			wantIn:    "must be an object",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			raw := base()
			tt.mutate(raw)

			_, err := ValidateInputs(validatorTool(), raw)
			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("ValidateInputs() error = %v, want *Error", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
			if !strings.Contains(verr.Message, tt.wantIn) {
				t.Errorf("Message = %q, want substring %q", verr.Message, tt.wantIn)
			}
		})
	}
}

func TestValidateInputsMultibyteLengthBounds(t *testing.T) {
	t.Parallel()

	// 2600 Cyrillic characters are 5200 bytes; the textarea ceiling of
	// 5000 is a character count, so this must pass.
	values, err := ValidateInputs(validatorTool(), map[string]any{
		"topic": strings.Repeat("ы", 2600),
		"tone":  "funny",
	})
	if err != nil {
		t.Fatalf("ValidateInputs() error = %v", err)
	}
	if got := values["topic"].(string); utf8.RuneCountInString(got) != 2600 {
		t.Errorf("topic length = %d characters", utf8.RuneCountInString(got))
	}
}

func TestValidateInputsImageAtExactCeiling(t *testing.T) {
	t.Parallel()

	values, err := ValidateInputs(validatorTool(), map[string]any{
		"topic": "A story about perseverance",
		"tone":  "funny",
		"image": pngUpload(10 * 1024 * 1024),
	})
	if err != nil {
		t.Fatalf("ValidateInputs() at exact size ceiling error = %v", err)
	}
	if img := values["image"].(api.ImageInput); img.Size != 10*1024*1024 {
		t.Errorf("image size = %d", img.Size)
	}
}

func TestValidateInputsFirstFailureWins(t *testing.T) {
	t.Parallel()

	// Both topic and tone are invalid; topic is declared first.
	_, err := ValidateInputs(validatorTool(), map[string]any{
		"tone": "sarcastic",
	})
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("ValidateInputs() error = %v, want *Error", err)
	}
	if verr.Field != "inputs.topic" {
		t.Errorf("Field = %q, want the first declared failure inputs.topic", verr.Field)
	}
}

func TestValidateInputsUndeclaredExtras(t *testing.T) {
	t.Parallel()

	values, err := ValidateInputs(validatorTool(), map[string]any{
		"topic":    "A story about perseverance",
		"tone":     "funny",
		"audience": "<i>students</i>",
		"rating":   4.5,
		"payload":  map[string]any{"nested": true},
	})
	if err != nil {
		t.Fatalf("ValidateInputs() error = %v", err)
	}
	if got := values["audience"]; got != "students" {
		t.Errorf("undeclared string extra = %v, want sanitized passthrough", got)
	}
	if got := values["rating"]; got != 4.5 {
		t.Errorf("undeclared number extra = %v", got)
	}
	if _, present := values["payload"]; present {
		t.Error("undeclared object extras must be dropped")
	}
}
