package tools

import "fmt"

// languageInput is the select field shared by every tool. Its value picks
// the prompt template language; the executor never forwards it to the model
// as a content line.
func languageInput() Input {
	return Input{
		ID:       "language",
		Label:    "Output Language",
		Kind:     InputSelect,
		Required: true,
		Options: []Option{
			{Value: "english", Label: "English"},
			{Value: "russian", Label: "Russian"},
			{Value: "arabic", Label: "Arabic"},
		},
	}
}

// toneInput is the tone select shared by the writing tools.
func toneInput(options ...Option) Input {
	return Input{
		ID:       "tone",
		Label:    "Tone",
		Kind:     InputSelect,
		Required: true,
		Options:  options,
	}
}

// DefaultCatalog returns the platform's built-in tools in presentation order.
func DefaultCatalog() []*ToolConfig {
	return []*ToolConfig{
		StoryCreatorTool(),
		PostCreatorTool(),
		SceneCreatorTool(),
		QuoteGeneratorTool(),
		ReelsCreatorTool(),
		SceneMoodDescriberTool(),
	}
}

// RegisterDefaults validates every built-in tool and registers it.
// A broken definition is a programming error, so the first one aborts
// startup rather than being skipped.
func RegisterDefaults(r *Registry) error {
	for _, tool := range DefaultCatalog() {
		if err := tool.Validate(); err != nil {
			return fmt.Errorf("invalid tool definition: %w", err)
		}
		r.Register(tool)
	}
	return nil
}
