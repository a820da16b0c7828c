package tools

// ReelsCreatorTool produces a complete reels package in one call: concept,
// script, and the scene prompts to film it.
func ReelsCreatorTool() *ToolConfig {
	return &ToolConfig{
		ID:          "reels-creator",
		Name:        "Reels Creator",
		Description: "Generate complete reels package: concept + script + video scene prompts",
		Icon:        "video",
		Category:    CategoryContent,

		DefaultModel: "arcee-ai/trinity-large-preview:free",
		AllowedModels: []string{
			"arcee-ai/trinity-large-preview:free",
			"arcee-ai/trinity-mini:free",
			"openai/gpt-oss-120b:free",
			"deepseek/deepseek-r1-0528:free",
		},

		Inputs: []Input{
			{
				ID:          "topic",
				Label:       "Topic",
				Kind:        InputText,
				Placeholder: "What is your reel about?",
				Required:    true,
			},
			languageInput(),
		},

		Variants: []Variant{
			{
				ID:          "reels-creator",
				Name:        "Reels Package",
				Description: "Concept, script and scene prompts in one pass",
				PromptPath:  "reels/{lang}.md",
			},
		},

		Settings: Settings{
			MaxTokens:   3000,
			Temperature: 0.8,
		},
	}
}
