package tools

// PostCreatorTool writes platform-specific social media posts. The platform
// select carries the length conventions in its labels; the template reads
// the selected value through a {{platform}} token.
func PostCreatorTool() *ToolConfig {
	return &ToolConfig{
		ID:          "post-creator",
		Name:        "Post Creator",
		Description: "Create platform-specific posts optimized for VK, Facebook, and Dzen",
		Icon:        "share-2",
		Category:    CategorySocial,

		DefaultModel: "arcee-ai/trinity-large-preview:free",
		AllowedModels: []string{
			"arcee-ai/trinity-large-preview:free",
			"arcee-ai/trinity-mini:free",
			"openai/gpt-oss-120b:free",
			"deepseek/deepseek-r1-0528:free",
		},

		Inputs: []Input{
			{
				ID:       "platform",
				Label:    "Platform",
				Kind:     InputSelect,
				Required: true,
				Options: []Option{
					{Value: "vk", Label: "VK Post (700-900 chars)"},
					{Value: "facebook", Label: "Facebook (40-80 chars)"},
					{Value: "dzen", Label: "Yandex Dzen Article (2000-2500 chars)"},
				},
			},
			{
				ID:          "topic",
				Label:       "Topic or Message",
				Kind:        InputTextarea,
				Placeholder: "What do you want to post about?",
				Required:    true,
			},
			languageInput(),
			toneInput(
				Option{Value: "professional", Label: "Professional"},
				Option{Value: "casual", Label: "Casual"},
				Option{Value: "friendly", Label: "Friendly"},
				Option{Value: "enthusiastic", Label: "Enthusiastic"},
				Option{Value: "informative", Label: "Informative"},
			),
		},

		Variants: []Variant{
			{
				ID:          "post-creator",
				Name:        "Social Media Post",
				Description: "Create engaging social media posts",
				PromptPath:  "post/{lang}.md",
			},
		},

		Settings: Settings{
			MaxTokens:   1200,
			Temperature: 0.7,
		},
	}
}
