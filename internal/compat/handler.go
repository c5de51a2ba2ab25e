package compat

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"devtools-backend/internal/catalog"
	"devtools-backend/internal/shared/metrics"
	"devtools-backend/internal/shared/server/respond"
)

// Handler exposes pairwise scoring and stack analysis over HTTP.
type Handler struct {
	Store    catalog.Store
	Analyzer *Analyzer
}

// NewHandler constructs a Handler.
func NewHandler(store catalog.Store, analyzer *Analyzer) *Handler {
	return &Handler{Store: store, Analyzer: analyzer}
}

// RegisterRoutes attaches compatibility routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/compatibility/:idA/:idB", h.pair)
	rg.POST("/stack/analyze", h.analyze)
}

type scoreResponse struct {
	ToolAID             string   `json:"tool_a_id"`
	ToolBID             string   `json:"tool_b_id"`
	Score               float64  `json:"score"`
	Difficulty          string   `json:"difficulty"`
	Notes               string   `json:"notes"`
	VerifiedIntegration bool     `json:"verified_integration"`
	SetupSteps          []string `json:"setup_steps"`
	Dependencies        []string `json:"dependencies"`
}

func (h *Handler) pair(c *gin.Context) {
	idA := c.Param("idA")
	idB := c.Param("idB")
	if idA == idB {
		respond.Error(c, http.StatusBadRequest, "validation_error", "cannot score a tool against itself", nil)
		return
	}

	ctx := c.Request.Context()
	toolA, err := h.Store.GetTool(ctx, idA)
	if err == nil {
		var toolB catalog.Tool
		toolB, err = h.Store.GetTool(ctx, idB)
		if err == nil {
			score := h.Analyzer.ResolvePair(ctx, toolA, toolB)
			metrics.IncScoreComputed()
			respond.JSON(c, http.StatusOK, toScoreResponse(score))
			return
		}
	}

	if errors.Is(err, catalog.ErrNotFound) {
		respond.Error(c, http.StatusNotFound, "not_found", "tool not found", nil)
		return
	}
	respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to score pair", nil)
}

type analyzeRequest struct {
	ToolIDs []string `json:"tool_ids"`
}

type issueResponse struct {
	ToolA   string  `json:"tool_a"`
	ToolB   string  `json:"tool_b"`
	Score   float64 `json:"score"`
	Message string  `json:"message"`
}

func (h *Handler) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	analysis, err := h.Analyzer.Analyze(c.Request.Context(), req.ToolIDs)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to analyze stack", nil)
		}
		return
	}
	metrics.IncStackAnalyzed()

	respond.JSON(c, http.StatusOK, toAnalysisResponse(analysis))
}

func toScoreResponse(score Score) scoreResponse {
	steps := score.SetupSteps
	if steps == nil {
		steps = []string{}
	}
	deps := score.Dependencies
	if deps == nil {
		deps = []string{}
	}
	return scoreResponse{
		ToolAID:             score.ToolAID,
		ToolBID:             score.ToolBID,
		Score:               score.Score,
		Difficulty:          score.Difficulty,
		Notes:               score.Notes,
		VerifiedIntegration: score.VerifiedIntegration,
		SetupSteps:          steps,
		Dependencies:        deps,
	}
}

func toAnalysisResponse(analysis Analysis) gin.H {
	conflicts := make([]issueResponse, 0, len(analysis.Conflicts))
	for _, issue := range analysis.Conflicts {
		conflicts = append(conflicts, issueResponse(issue))
	}
	warnings := make([]issueResponse, 0, len(analysis.Warnings))
	for _, issue := range analysis.Warnings {
		warnings = append(warnings, issueResponse(issue))
	}
	pairs := make([]scoreResponse, 0, len(analysis.Pairs))
	for _, pair := range analysis.Pairs {
		pairs = append(pairs, toScoreResponse(pair))
	}
	return gin.H{
		"tool_ids":        analysis.ToolIDs,
		"harmony_score":   analysis.HarmonyScore,
		"pairs":           pairs,
		"conflicts":       conflicts,
		"warnings":        warnings,
		"recommendations": analysis.Recommendations,
	}
}
