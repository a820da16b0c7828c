package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dr-ninja/toolko/internal/cache"
	"github.com/dr-ninja/toolko/internal/llm"
	"github.com/dr-ninja/toolko/internal/observe"
	"github.com/dr-ninja/toolko/internal/prompt"
	"github.com/dr-ninja/toolko/internal/tools"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// main is the entry point for the application.
// Its primary role is the "Composition Root": it loads configuration,
// initializes all services, injects dependencies, and starts the server.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	buildInfo := GetBuildInfo()
	log.Printf("🚀 Starting ToolKo | Version: %s | Commit: %s", buildInfo.Version, buildInfo.GitCommit)

	// 1. LOAD CONFIGURATION
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("❌ FATAL: Configuration Error: %v", err)
	}
	log.Println("✅ Configuration loaded.")

	logger := newLogger(os.Getenv("LOG_LEVEL"))
	slog.SetDefault(logger)

	// 2. INITIALIZE SERVICES
	shutdownTelemetry, err := observe.InitProvider(context.Background(), observe.ProviderConfig{
		ServiceName:    "toolko",
		ServiceVersion: buildInfo.Version,
	})
	if err != nil {
		log.Fatalf("❌ FATAL: Could not initialize telemetry: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(ctx); err != nil {
			log.Printf("WARNING: Telemetry shutdown failed: %v", err)
		}
	}()

	responseCache := initializeCache(cfg, logger)

	resolveClient, closeClients, err := initializeLLMClients(cfg)
	if err != nil {
		log.Fatalf("❌ FATAL: %v", err)
	}
	defer closeClients()

	registry, err := initializeRegistry(logger)
	if err != nil {
		log.Fatalf("❌ FATAL: %v", err)
	}

	promptResolver := prompt.NewResolver(prompt.NewFSStore(os.DirFS(cfg.PromptsDir)))
	if err := tools.Preflight(context.Background(), promptResolver, registry.GetAll()); err != nil {
		log.Fatalf("❌ FATAL: Prompt preflight failed: %v", err)
	}
	log.Println("✅ All prompt templates resolved.")

	executor := tools.NewExecutor(promptResolver, resolveClient, logger)
	apiHandler := NewAPIHandler(registry, executor, responseCache, observe.DefaultMetrics(), cfg.Models, logger)
	log.Println("✅ All services initialized.")

	// 3. SETUP AND RUN THE WEB SERVER
	gin.SetMode(os.Getenv("GIN_MODE"))
	engine := gin.Default()
	v1 := engine.Group("/api/v1")
	{
		v1.POST("/generate", apiHandler.HandleGeneration)
		v1.GET("/tools", apiHandler.HandleListTools)
		v1.GET("/tools/:id", apiHandler.HandleGetTool)
		v1.GET("/models", apiHandler.HandleListModels)
		v1.POST("/analyze-scene-mood", apiHandler.HandleSceneMood)
	}
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{Addr: fmt.Sprintf(":%s", cfg.Port), Handler: engine}
	runServerWithGracefulShutdown(srv)
}

// initializeLLMClients builds the model-to-client routing. OpenRouter
// serves every model; when a Gemini key is configured, google/ models are
// dispatched to the native client instead.
func initializeLLMClients(cfg *AppConfig) (llm.ClientResolver, func(), error) {
	openRouter, err := llm.NewOpenRouterClient(cfg.OpenRouterAPIKey, cfg.SiteURL, cfg.SiteName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create OpenRouter client: %w", err)
	}

	var gemini *llm.GeminiClient
	if cfg.GeminiAPIKey != "" {
		gemini, err = llm.NewGeminiClient(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		log.Println("✅ Native Gemini client enabled for google/ models.")
	}

	resolve := func(modelID string) llm.Client {
		if gemini != nil && strings.HasPrefix(modelID, "google/") {
			return gemini
		}
		return openRouter
	}
	closeClients := func() {
		if gemini != nil {
			if err := gemini.Close(); err != nil {
				log.Printf("WARNING: Failed to close Gemini client: %v", err)
			}
		}
	}
	return resolve, closeClients, nil
}

// initializeRegistry creates the tool registry and registers the built-in
// catalog. The registry is written only here; after startup it is
// read-only.
func initializeRegistry(logger *slog.Logger) (*tools.Registry, error) {
	registry := tools.NewRegistry(logger)
	if err := tools.RegisterDefaults(registry); err != nil {
		return nil, fmt.Errorf("failed to register tool catalog: %w", err)
	}
	log.Printf("✅ Tool registry initialized with %d tools.", registry.Count())
	return registry, nil
}

// initializeCache connects to Redis when REDIS_ADDR is set. Without it the
// service runs uncached, which keeps local development dependency-free.
func initializeCache(cfg *AppConfig, logger *slog.Logger) *cache.ResponseCache {
	if cfg.RedisAddr == "" {
		log.Println("⚠️ REDIS_ADDR not set, response caching disabled.")
		return cache.New(nil, logger)
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("❌ FATAL: Could not connect to Redis: %v", err)
	}
	log.Println("✅ Response cache connected to Redis.")
	return cache.New(rdb, logger)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// runServerWithGracefulShutdown handles the server lifecycle.
func runServerWithGracefulShutdown(srv *http.Server) {
	go func() {
		log.Printf("👂 ToolKo is listening on http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Listen error: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server shutdown failed:", err)
	}

	log.Println("👋 Server exited gracefully.")
}
