package tools

// StoryCreatorTool generates stories for social media, reels, or general
// content. It is the most variant-rich tool: each variant maps to a
// platform-specific storytelling style with its own template per language.
func StoryCreatorTool() *ToolConfig {
	return &ToolConfig{
		ID:          "story-creator",
		Name:        "Story Creator",
		Description: "Generate engaging stories for social media, reels, or general content",
		Icon:        "book-open",
		Category:    CategoryContent,

		DefaultModel: "anthropic/claude-3-haiku",
		AllowedModels: []string{
			"anthropic/claude-3-haiku",
			"anthropic/claude-3-sonnet",
			"anthropic/claude-3.5-sonnet",
			"openai/gpt-4o-mini",
			"google/gemini-flash-1.5",
		},

		Inputs: []Input{
			{
				ID:          "topic",
				Label:       "Topic or Theme",
				Kind:        InputTextarea,
				Placeholder: "What should the story be about?",
				Required:    true,
			},
			toneInput(
				Option{Value: "engaging", Label: "Engaging"},
				Option{Value: "emotional", Label: "Emotional"},
				Option{Value: "funny", Label: "Funny"},
				Option{Value: "inspiring", Label: "Inspiring"},
				Option{Value: "dramatic", Label: "Dramatic"},
			),
			{
				ID:       "length",
				Label:    "Length",
				Kind:     InputSelect,
				Required: true,
				Options: []Option{
					{Value: "short", Label: "Short (30-60 sec read)"},
					{Value: "medium", Label: "Medium (1-2 min read)"},
					{Value: "long", Label: "Long (3-5 min read)"},
				},
			},
			languageInput(),
		},

		Variants: []Variant{
			{
				ID:          "reels",
				Name:        "Instagram Reels",
				Description: "Hook-driven stories for short video content",
				PromptPath:  "story/reels/{lang}.md",
			},
			{
				ID:          "tiktok",
				Name:        "TikTok Story",
				Description: "Viral-style storytelling for TikTok",
				PromptPath:  "story/tiktok/{lang}.md",
			},
			{
				ID:          "general",
				Name:        "General Story",
				Description: "Classic storytelling format",
				PromptPath:  "story/general/{lang}.md",
			},
			{
				ID:          "short-form",
				Name:        "Short Form Content",
				Description: "Quick, impactful stories",
				PromptPath:  "story/short-form/{lang}.md",
			},
		},

		Settings: Settings{
			MaxTokens:   1500,
			Temperature: 0.8,
		},
	}
}
