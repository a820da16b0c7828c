package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/dr-ninja/toolko/internal/api"
	"github.com/dr-ninja/toolko/internal/cache"
	"github.com/dr-ninja/toolko/internal/llm"
	"github.com/dr-ninja/toolko/internal/observe"
	"github.com/dr-ninja/toolko/internal/prompt"
	"github.com/dr-ninja/toolko/internal/tools"
	"github.com/dr-ninja/toolko/internal/validation"

	"github.com/gin-gonic/gin"
)

// requestTimeout bounds a single generation end to end, including the
// upstream completion call.
const requestTimeout = 120 * time.Second

// sceneMoodToolID is the registry id of the vision tool behind the
// dedicated analyze-scene-mood endpoint.
const sceneMoodToolID = "scene-mood-describer"

// APIHandler holds every dependency the HTTP layer needs. All fields are
// wired once in main and never mutated afterwards, so handlers are safe
// under concurrent requests.
type APIHandler struct {
	registry *tools.Registry
	executor *tools.Executor
	cache    *cache.ResponseCache
	metrics  *observe.Metrics
	models   *ModelsConfig
	log      *slog.Logger
}

func NewAPIHandler(registry *tools.Registry, executor *tools.Executor, responseCache *cache.ResponseCache, metrics *observe.Metrics, models *ModelsConfig, log *slog.Logger) *APIHandler {
	if log == nil {
		log = slog.Default()
	}
	return &APIHandler{
		registry: registry,
		executor: executor,
		cache:    responseCache,
		metrics:  metrics,
		models:   models,
		log:      log,
	}
}

// ToolsResponse is the payload of GET /api/v1/tools.
type ToolsResponse struct {
	Tools []*tools.ToolConfig `json:"tools"`
}

// HandleGeneration serves POST /api/v1/generate: bind, tool lookup, input
// validation, cache probe, then the execution pipeline.
func (h *APIHandler) HandleGeneration(c *gin.Context) {
	start := time.Now()

	var req api.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail[api.GenerationData](api.CodeValidationError, "Invalid request: "+err.Error(), ""))
		return
	}

	tool, ok := h.registry.GetByID(req.ToolID)
	if !ok {
		c.JSON(http.StatusNotFound, api.Fail[api.GenerationData](api.CodeToolNotFound, fmt.Sprintf("tool %q not found", req.ToolID), ""))
		return
	}

	values, err := validation.ValidateInputs(tool, req.Inputs)
	if err != nil {
		h.respondValidationError(c, req.ToolID, start, err)
		return
	}

	cacheKey := cache.Key(&req)
	if data, hit := h.cache.Check(c.Request.Context(), cacheKey); hit {
		h.metrics.RecordGeneration(c.Request.Context(), req.ToolID, observe.OutcomeCacheHit, time.Since(start))
		c.JSON(http.StatusOK, api.OK(*data))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	result, err := h.executor.Execute(ctx, tool, &tools.ExecutionRequest{
		VariantID: req.VariantID,
		ModelID:   req.ModelID,
		Inputs:    values,
	})
	if err != nil {
		h.respondExecutionError(c, req.ToolID, start, err)
		return
	}

	data := api.GenerationData{
		Content:    result.Content,
		Model:      result.Model,
		TokensUsed: result.TokensUsed,
	}
	h.cache.Store(c.Request.Context(), cacheKey, &data)

	h.metrics.RecordGeneration(c.Request.Context(), req.ToolID, observe.OutcomeSuccess, time.Since(start))
	h.metrics.RecordTokens(c.Request.Context(), req.ToolID, result.Model, result.TokensUsed)
	c.JSON(http.StatusOK, api.OK(data))
}

// HandleListTools serves GET /api/v1/tools.
func (h *APIHandler) HandleListTools(c *gin.Context) {
	c.JSON(http.StatusOK, api.OK(ToolsResponse{Tools: h.registry.GetAll()}))
}

// HandleGetTool serves GET /api/v1/tools/:id.
func (h *APIHandler) HandleGetTool(c *gin.Context) {
	id := c.Param("id")
	tool, ok := h.registry.GetByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, api.Fail[tools.ToolConfig](api.CodeToolNotFound, fmt.Sprintf("tool %q not found", id), ""))
		return
	}
	c.JSON(http.StatusOK, api.OK(*tool))
}

// HandleListModels serves GET /api/v1/models.
func (h *APIHandler) HandleListModels(c *gin.Context) {
	c.JSON(http.StatusOK, api.OK(*h.models))
}

// SceneMoodRequest is the inbound body of POST /api/v1/analyze-scene-mood.
// Image carries the full base64 data URI; language and model are
// optional and fall back to the tool's defaults.
type SceneMoodRequest struct {
	Image    string `json:"image" binding:"required"`
	Language string `json:"language,omitempty"`
	Model    string `json:"model,omitempty"`
}

var imageDataURIPattern = regexp.MustCompile(`^data:(image/[a-z]+);base64,`)

// HandleSceneMood serves the dedicated vision endpoint. It normalizes the
// raw data URI into the file-input shape the validator expects, then runs
// the same execution pipeline as the generic generate endpoint.
func (h *APIHandler) HandleSceneMood(c *gin.Context) {
	start := time.Now()

	var req SceneMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail[api.GenerationData](api.CodeValidationError, "Invalid request: "+err.Error(), ""))
		return
	}

	tool, ok := h.registry.GetByID(sceneMoodToolID)
	if !ok {
		h.log.Error("scene mood tool missing from registry")
		c.JSON(http.StatusInternalServerError, api.Fail[api.GenerationData](api.CodeServerError, "An unexpected error occurred.", ""))
		return
	}

	m := imageDataURIPattern.FindStringSubmatch(req.Image)
	if m == nil {
		c.JSON(http.StatusBadRequest, api.Fail[api.GenerationData](api.CodeValidationError, "image must be a base64 data URL (data:image/...)", "inputs.image"))
		return
	}
	mimeType := m[1]
	payload := req.Image[strings.Index(req.Image, ",")+1:]
	size := int64(base64.StdEncoding.DecodedLen(len(payload)))

	language := req.Language
	if language == "" {
		language = prompt.DefaultLanguage
	}

	values, err := validation.ValidateInputs(tool, map[string]any{
		"image":    map[string]any{"type": mimeType, "size": size, "data": req.Image},
		"language": language,
	})
	if err != nil {
		h.respondValidationError(c, sceneMoodToolID, start, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	result, err := h.executor.Execute(ctx, tool, &tools.ExecutionRequest{
		VariantID: sceneMoodToolID,
		ModelID:   req.Model,
		Inputs:    values,
	})
	if err != nil {
		h.respondExecutionError(c, sceneMoodToolID, start, err)
		return
	}

	data := api.GenerationData{
		Content:    result.Content,
		Model:      result.Model,
		TokensUsed: result.TokensUsed,
	}
	h.metrics.RecordGeneration(c.Request.Context(), sceneMoodToolID, observe.OutcomeSuccess, time.Since(start))
	h.metrics.RecordTokens(c.Request.Context(), sceneMoodToolID, result.Model, result.TokensUsed)
	c.JSON(http.StatusOK, api.OK(data))
}

// respondValidationError translates a validation failure into the wire
// envelope. Anything that is not a *validation.Error is unexpected.
func (h *APIHandler) respondValidationError(c *gin.Context, toolID string, start time.Time, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		h.metrics.RecordGeneration(c.Request.Context(), toolID, observe.OutcomeRejected, time.Since(start))
		c.JSON(http.StatusBadRequest, api.Fail[api.GenerationData](api.CodeValidationError, verr.Message, verr.Field))
		return
	}
	h.log.Error("input validation failed unexpectedly", "tool", toolID, "error", err)
	c.JSON(http.StatusInternalServerError, api.Fail[api.GenerationData](api.CodeServerError, "An unexpected error occurred.", ""))
}

// respondExecutionError maps a pipeline error onto a status code and wire
// code. Client-caused failures keep their precise message; infrastructure
// failures are logged in full and answered with a sanitized one.
func (h *APIHandler) respondExecutionError(c *gin.Context, toolID string, start time.Time, err error) {
	elapsed := time.Since(start)

	var (
		notFoundErr *tools.NotFoundError
		policyErr   *tools.PolicyError
		missingErr  *tools.MissingInputError
		tmplErr     *prompt.TemplateMissingError
		cancelErr   *llm.CancelledError
		upstreamErr *llm.UpstreamError
	)
	switch {
	case errors.As(err, &notFoundErr):
		h.metrics.RecordGeneration(c.Request.Context(), toolID, observe.OutcomeRejected, elapsed)
		c.JSON(http.StatusNotFound, api.Fail[api.GenerationData](api.CodeToolNotFound, notFoundErr.Error(), ""))

	case errors.As(err, &policyErr):
		h.metrics.RecordGeneration(c.Request.Context(), toolID, observe.OutcomeRejected, elapsed)
		c.JSON(http.StatusBadRequest, api.Fail[api.GenerationData](api.CodeInvalidTool, policyErr.Error(), ""))

	case errors.As(err, &missingErr):
		h.metrics.RecordGeneration(c.Request.Context(), toolID, observe.OutcomeRejected, elapsed)
		c.JSON(http.StatusBadRequest, api.Fail[api.GenerationData](api.CodeValidationError, missingErr.Error(), missingErr.Field))

	case errors.As(err, &cancelErr):
		h.metrics.RecordGeneration(c.Request.Context(), toolID, observe.OutcomeCancelled, elapsed)
		h.log.Warn("generation cancelled", "tool", toolID, "elapsed", elapsed, "error", err)
		c.JSON(http.StatusGatewayTimeout, api.Fail[api.GenerationData](api.CodeGenerationError, "The request was cancelled before the model responded.", ""))

	case errors.As(err, &upstreamErr):
		h.metrics.RecordGeneration(c.Request.Context(), toolID, observe.OutcomeUpstream, elapsed)
		h.log.Error("upstream completion failed", "tool", toolID, "provider", upstreamErr.Provider, "status", upstreamErr.StatusCode, "error", err)
		c.JSON(http.StatusBadGateway, api.Fail[api.GenerationData](api.CodeGenerationError, "The model provider returned an error.", ""))

	case errors.As(err, &tmplErr):
		h.metrics.RecordGeneration(c.Request.Context(), toolID, observe.OutcomeUpstream, elapsed)
		h.log.Error("prompt template unavailable", "tool", toolID, "path", tmplErr.Path, "error", err)
		c.JSON(http.StatusBadGateway, api.Fail[api.GenerationData](api.CodeServerError, "A required prompt template is unavailable.", ""))

	default:
		h.metrics.RecordGeneration(c.Request.Context(), toolID, observe.OutcomeUpstream, elapsed)
		h.log.Error("generation failed unexpectedly", "tool", toolID, "error", err)
		c.JSON(http.StatusInternalServerError, api.Fail[api.GenerationData](api.CodeServerError, "An unexpected error occurred.", ""))
	}
}
