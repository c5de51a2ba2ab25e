package planner

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"devtools-backend/internal/catalog"
	"devtools-backend/internal/shared/server/respond"
)

// Handler exposes blueprint planning over HTTP.
type Handler struct {
	Planner *Planner
}

// NewHandler constructs a Handler.
func NewHandler(planner *Planner) *Handler {
	return &Handler{Planner: planner}
}

// RegisterRoutes attaches planning routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/blueprints", h.plan)
}

type planRequest struct {
	Description string   `json:"description"`
	Preferred   []string `json:"preferred_tools"`
	Avoided     []string `json:"avoided_tools"`
	Budget      string   `json:"budget"`
	Timeline    string   `json:"timeline"`
}

func (h *Handler) plan(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "description is required", nil)
		return
	}

	blueprint, err := h.Planner.Plan(c.Request.Context(), req.Description, Constraints{
		PreferredTools: req.Preferred,
		AvoidedTools:   req.Avoided,
		Budget:         req.Budget,
		Timeline:       req.Timeline,
	})
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate blueprint", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, toBlueprintResponse(blueprint))
}

func toBlueprintResponse(blueprint Blueprint) gin.H {
	recommendations := make([]gin.H, 0, len(blueprint.Recommendations))
	for _, rec := range blueprint.Recommendations {
		entry := gin.H{
			"tool_id":   rec.ToolID,
			"tool_name": rec.ToolName,
			"category":  rec.CategoryID,
			"reason":    rec.Reason,
		}
		if rec.CompatibilityScore != nil {
			entry["compatibility_score"] = *rec.CompatibilityScore
		}
		recommendations = append(recommendations, entry)
	}

	alternatives := make([]gin.H, 0, len(blueprint.Alternatives))
	for _, alt := range blueprint.Alternatives {
		alternatives = append(alternatives, gin.H{
			"tool_ids":      alt.ToolIDs,
			"tool_names":    alt.ToolNames,
			"harmony_score": alt.HarmonyScore,
		})
	}

	return gin.H{
		"id":                 blueprint.ID,
		"title":              blueprint.Title,
		"tech_stack_summary": blueprint.TechStackSummary,
		"backend_logic":      blueprint.BackendLogic,
		"frontend_logic":     blueprint.FrontendLogic,
		"workflow": gin.H{
			"name":   blueprint.Workflow.Name,
			"stages": blueprint.Workflow.Stages,
		},
		"recommendations":   recommendations,
		"analysis":          gin.H{"harmony_score": blueprint.Analysis.HarmonyScore, "conflicts": len(blueprint.Analysis.Conflicts), "warnings": len(blueprint.Analysis.Warnings), "recommendations": blueprint.Analysis.Recommendations},
		"alternatives":      alternatives,
		"timeline_estimate": blueprint.TimelineEstimate,
		"cost_estimate":     blueprint.CostEstimate,
		"created_at":        blueprint.CreatedAt,
	}
}
