package tools

// SceneMoodDescriberTool analyzes an uploaded image and produces detailed
// regeneration prompts covering mood, lighting, and composition.
//
// Vision models handle multilingual output from an English instruction, so
// the single variant pins the template language to English and the template
// steers the output language through a {{language}} token instead. The
// accepted image formats are narrower than the generic image set: GIF is
// not supported by the vision models this tool targets.
func SceneMoodDescriberTool() *ToolConfig {
	return &ToolConfig{
		ID:          "scene-mood-describer",
		Name:        "Scene Mood Describer",
		Description: "Upload an image and get detailed AI regeneration prompts with mood, lighting, and composition analysis",
		Icon:        "image",
		Category:    CategoryAnalysis,

		DefaultModel: "google/gemini-2.0-flash-exp:free",
		AllowedModels: []string{
			"google/gemini-2.0-flash-exp:free",
			"meta-llama/llama-3.2-90b-vision-instruct:free",
		},

		Inputs: []Input{
			{
				ID:       "image",
				Label:    "Upload Image",
				Kind:     InputFile,
				Required: true,
				Accept:   []string{"image/jpeg", "image/png", "image/webp"},
				MaxSize:  10 * 1024 * 1024,
			},
			languageInput(),
		},

		Variants: []Variant{
			{
				ID:          "scene-mood-describer",
				Name:        "Scene Mood Analysis",
				Description: "Analyze the mood and atmosphere of images",
				PromptPath:  "scene-mood/{lang}.md",
				Language:    "english",
			},
		},

		Settings: Settings{
			MaxTokens:   1500,
			Temperature: 0.6,
		},
	}
}
