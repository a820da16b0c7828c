package tools

// SceneCreatorTool turns story text into a sequence of detailed video scene
// prompts.
func SceneCreatorTool() *ToolConfig {
	return &ToolConfig{
		ID:          "scene-creator",
		Name:        "Scene Creator",
		Description: "Convert story text into detailed video scene prompts (3-7 scenes)",
		Icon:        "video",
		Category:    CategoryContent,

		DefaultModel: "arcee-ai/trinity-mini:free",
		AllowedModels: []string{
			"arcee-ai/trinity-mini:free",
			"openai/gpt-oss-120b:free",
			"deepseek/deepseek-r1-0528:free",
		},

		Inputs: []Input{
			{
				ID:          "storyText",
				Label:       "Story Text",
				Kind:        InputTextarea,
				Placeholder: "Paste your story text here...",
				Required:    true,
			},
			languageInput(),
		},

		Variants: []Variant{
			{
				ID:          "scene-creator",
				Name:        "Scene Prompts",
				Description: "Break a story into cinematic scene prompts",
				PromptPath:  "scene/{lang}.md",
			},
		},

		Settings: Settings{
			MaxTokens:   2000,
			Temperature: 0.7,
		},
	}
}
