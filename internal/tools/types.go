// Package tools defines the data model for the platform's content-generation
// tools, the registry that holds them, and the executor that turns a
// validated generation request into a completion-provider call.
//
// A Tool is a declarative bundle: the form fields it presents (inputs), the
// sub-styles it offers (variants, each bound to a prompt template), the
// models it may use, and its generation settings. Tool definitions are
// constructed once at startup, registered into a Registry, and never
// mutated afterwards.
package tools

import "fmt"

// Category classifies a tool for listing and filtering. The set is closed;
// anything that does not fit gets CategoryOther.
type Category string

const (
	CategoryContent      Category = "content"
	CategorySocial       Category = "social"
	CategoryAnalysis     Category = "analysis"
	CategoryProductivity Category = "productivity"
	CategoryOther        Category = "other"
)

// InputKind enumerates the form-field kinds a tool may declare.
type InputKind string

const (
	InputText     InputKind = "text"
	InputTextarea InputKind = "textarea"
	InputSelect   InputKind = "select"
	InputNumber   InputKind = "number"
	InputFile     InputKind = "file"
)

// Option is one selectable value/label pair of a select input.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Input declares a single form field of a tool.
//
// IDs must be unique within a tool. Select inputs must declare a non-empty
// Options list; file inputs must declare Accept and MaxSize. The validation
// layer derives its per-field rules directly from these declarations, so a
// select's Options double as the closed set of legal values.
type Input struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Kind        InputKind `json:"type"`
	Placeholder string    `json:"placeholder,omitempty"`
	Required    bool      `json:"required"`
	Options     []Option  `json:"options,omitempty"`
	Default     any       `json:"defaultValue,omitempty"`

	// Accept lists the MIME types a file input allows (file kind only).
	Accept []string `json:"accept,omitempty"`
	// MaxSize is the upload byte ceiling (file kind only).
	MaxSize int64 `json:"maxSize,omitempty"`

	// Min and Max bound number inputs when non-nil.
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Variant is a named sub-style of a tool, bound to a prompt template.
//
// PromptPath may contain a `{lang}` token that the resolver replaces with
// a normalized 2-letter language code ("story/general/{lang}.md"). When
// Language is set it overrides the request's language input entirely, which
// pins the variant to a single template file.
type Variant struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PromptPath  string `json:"systemPromptPath"`
	Language    string `json:"language,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// Settings holds the generation parameters a tool dispatches with.
type Settings struct {
	MaxTokens   int      `json:"maxTokens"`
	Temperature float64  `json:"temperature"`
	TopP        *float64 `json:"topP,omitempty"`
}

// ToolConfig is the aggregate definition of one tool. ID is the registry
// key: globally unique and immutable. When AllowedModels is non-empty,
// DefaultModel must be a member (see Validate).
type ToolConfig struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Category    Category `json:"category"`

	DefaultModel  string   `json:"defaultModel"`
	AllowedModels []string `json:"allowedModels,omitempty"`

	Inputs   []Input   `json:"inputs"`
	Variants []Variant `json:"variants"`

	Settings Settings `json:"settings"`
}

// Variant returns the variant with the given id, or false when the tool
// does not declare it.
func (t *ToolConfig) Variant(id string) (*Variant, bool) {
	for i := range t.Variants {
		if t.Variants[i].ID == id {
			return &t.Variants[i], true
		}
	}
	return nil, false
}

// Validate checks the structural invariants of a tool definition. The
// registry itself never calls this; the catalog does, once, at startup.
func (t *ToolConfig) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("tool has no id")
	}
	if t.DefaultModel == "" {
		return fmt.Errorf("tool %q: defaultModel is empty", t.ID)
	}
	if len(t.AllowedModels) > 0 && !t.ModelAllowed(t.DefaultModel) {
		return fmt.Errorf("tool %q: defaultModel %q is not in allowedModels", t.ID, t.DefaultModel)
	}
	seen := make(map[string]bool, len(t.Inputs))
	for _, in := range t.Inputs {
		if seen[in.ID] {
			return fmt.Errorf("tool %q: duplicate input id %q", t.ID, in.ID)
		}
		seen[in.ID] = true
		switch in.Kind {
		case InputSelect:
			if len(in.Options) == 0 {
				return fmt.Errorf("tool %q: select input %q has no options", t.ID, in.ID)
			}
		case InputFile:
			if len(in.Accept) == 0 || in.MaxSize <= 0 {
				return fmt.Errorf("tool %q: file input %q needs accept and maxSize", t.ID, in.ID)
			}
		}
	}
	seenVariants := make(map[string]bool, len(t.Variants))
	for _, v := range t.Variants {
		if seenVariants[v.ID] {
			return fmt.Errorf("tool %q: duplicate variant id %q", t.ID, v.ID)
		}
		seenVariants[v.ID] = true
		if v.PromptPath == "" {
			return fmt.Errorf("tool %q: variant %q has no prompt path", t.ID, v.ID)
		}
	}
	if t.Settings.MaxTokens <= 0 {
		return fmt.Errorf("tool %q: settings.maxTokens must be positive", t.ID)
	}
	return nil
}

// ModelAllowed reports whether modelID may be used with this tool.
// An empty allow-list means any model is acceptable.
func (t *ToolConfig) ModelAllowed(modelID string) bool {
	if len(t.AllowedModels) == 0 {
		return true
	}
	for _, m := range t.AllowedModels {
		if m == modelID {
			return true
		}
	}
	return false
}
