package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ModelPricing is the per-token USD price of a model, as published by the
// provider (prompt and completion priced separately).
type ModelPricing struct {
	Prompt     float64 `yaml:"prompt" json:"prompt"`
	Completion float64 `yaml:"completion" json:"completion"`
}

// ModelInfo describes one selectable completion model.
type ModelInfo struct {
	ID            string       `yaml:"id" json:"id"`
	Name          string       `yaml:"name" json:"name"`
	Provider      string       `yaml:"provider" json:"provider"`
	ContextLength int          `yaml:"contextLength" json:"contextLength"`
	Pricing       ModelPricing `yaml:"pricing" json:"pricing"`
}

// ModelsConfig is the model catalog loaded from models.yaml and served
// verbatim on GET /api/v1/models.
type ModelsConfig struct {
	Models         []ModelInfo `yaml:"models" json:"models"`
	DefaultModelID string      `yaml:"defaultModelId" json:"defaultModelId"`
}

// HasModel reports whether the catalog declares the given model id.
func (m *ModelsConfig) HasModel(id string) bool {
	for i := range m.Models {
		if m.Models[i].ID == id {
			return true
		}
	}
	return false
}

// AppConfig holds all configuration for the service, loaded from the
// environment and the models config file.
type AppConfig struct {
	OpenRouterAPIKey string
	GeminiAPIKey     string
	SiteURL          string
	SiteName         string
	RedisAddr        string
	PromptsDir       string
	Port             string
	Models           *ModelsConfig
}

// LoadConfig loads all configuration from a .env file, environment
// variables, and models.yaml.
func LoadConfig() (*AppConfig, error) {
	// Only attempt to load a .env file in a local development environment.
	// In Docker (where GIN_MODE="release"), configuration is provided
	// directly as environment variables.
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("WARNING: No .env file found for local development.")
		}
	}

	cfg := &AppConfig{
		OpenRouterAPIKey: os.Getenv("OPENROUTER_API_KEY"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		SiteURL:          os.Getenv("SITE_URL"),
		SiteName:         os.Getenv("SITE_NAME"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		PromptsDir:       os.Getenv("PROMPTS_DIR"),
		Port:             os.Getenv("PORT"),
	}

	if cfg.OpenRouterAPIKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY environment variable is not set")
	}
	if cfg.SiteURL == "" {
		return nil, fmt.Errorf("SITE_URL environment variable is not set")
	}
	if cfg.SiteName == "" {
		cfg.SiteName = "ToolKo Platform"
	}
	if cfg.PromptsDir == "" {
		cfg.PromptsDir = "prompts"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	models, err := loadModelsConfig()
	if err != nil {
		return nil, err
	}
	cfg.Models = models

	return cfg, nil
}

// loadModelsConfig reads the model catalog from the path in MODELS_CONFIG
// (default models.yaml).
func loadModelsConfig() (*ModelsConfig, error) {
	path := os.Getenv("MODELS_CONFIG")
	if path == "" {
		path = "models.yaml"
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read models config %s: %w", path, err)
	}

	var models ModelsConfig
	if err := yaml.Unmarshal(raw, &models); err != nil {
		return nil, fmt.Errorf("failed to parse models config %s: %w", path, err)
	}
	if len(models.Models) == 0 {
		return nil, fmt.Errorf("models config %s declares no models", path)
	}
	if models.DefaultModelID != "" && !models.HasModel(models.DefaultModelID) {
		return nil, fmt.Errorf("models config %s: defaultModelId %q is not in the model list", path, models.DefaultModelID)
	}

	return &models, nil
}
