package tools

func ptrFloat(v float64) *float64 { return &v }

// QuoteGeneratorTool produces batches of short quotes for a fixed set of
// themes. Quantity is the only number input in the catalog and is bounded
// so a single request cannot ask for hundreds of quotes.
func QuoteGeneratorTool() *ToolConfig {
	return &ToolConfig{
		ID:          "quote-generator",
		Name:        "Quote Generator",
		Description: "Generate fresh, non-clichéd quotes under 100 characters for 8 themes",
		Icon:        "quote",
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
				ID:       "theme",
				Label:    "Theme",
				Kind:     InputSelect,
				Required: true,
				Options: []Option{
					{Value: "motivation", Label: "Motivation"},
					{Value: "wisdom", Label: "Wisdom"},
					{Value: "life", Label: "Life"},
					{Value: "love", Label: "Love"},
					{Value: "success", Label: "Success"},
					{Value: "happiness", Label: "Happiness"},
					{Value: "strength", Label: "Strength"},
					{Value: "creativity", Label: "Creativity"},
				},
			},
			languageInput(),
			{
				ID:          "quantity",
				Label:       "Number of Quotes",
				Kind:        InputNumber,
				Placeholder: "5-20",
				Required:    true,
				Default:     10,
				Min:         ptrFloat(5),
				Max:         ptrFloat(20),
			},
		},

		Variants: []Variant{
			{
				ID:          "quote-generator",
				Name:        "Quote Generator",
				Description: "Generate inspiring and engaging quotes",
				PromptPath:  "quote/{lang}.md",
			},
		},

		Settings: Settings{
			MaxTokens:   1000,
			Temperature: 0.9,
		},
	}
}
