package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"devtools-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the catalog service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches catalog routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tools", h.list)
	rg.POST("/tools", h.create)
	rg.GET("/tools/:id", h.get)
	rg.PUT("/tools/:id", h.update)
	rg.DELETE("/tools/:id", h.remove)
	rg.GET("/categories", h.categories)
	rg.GET("/stats", h.stats)
}

func (h *Handler) list(c *gin.Context) {
	page := intQuery(c, "page", 1)
	perPage := intQuery(c, "per_page", 20)
	summary := c.Query("summary") == "true"

	result, err := h.Svc.List(c.Request.Context(), c.Query("category"), c.Query("search"), page, perPage)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list tools", nil)
		return
	}

	var tools any
	if summary {
		out := make([]toolSummaryResponse, 0, len(result.Tools))
		for _, tool := range result.Tools {
			out = append(out, toSummaryResponse(tool))
		}
		tools = out
	} else {
		out := make([]toolResponse, 0, len(result.Tools))
		for _, tool := range result.Tools {
			out = append(out, toResponse(tool))
		}
		tools = out
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"tools": tools,
		"pagination": gin.H{
			"page":     result.Page,
			"per_page": result.PerPage,
			"total":    result.Total,
			"pages":    result.Pages,
			"has_next": result.HasNext,
			"has_prev": result.HasPrev,
		},
	})
}

func (h *Handler) get(c *gin.Context) {
	tool, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "tool not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch tool", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(tool))
}

func (h *Handler) create(c *gin.Context) {
	var req toolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	tool, err := h.Svc.Create(c.Request.Context(), req.toTool())
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "name and category are required", nil)
		case errors.Is(err, ErrDuplicate):
			respond.Error(c, http.StatusConflict, "duplicate", "tool with this name already exists", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create tool", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, toResponse(tool))
}

func (h *Handler) update(c *gin.Context) {
	var req toolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	tool := req.toTool()
	tool.ID = c.Param("id")
	updated, err := h.Svc.Update(c.Request.Context(), tool)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "tool not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update tool", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(updated))
}

func (h *Handler) remove(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "tool not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete tool", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) categories(c *gin.Context) {
	categories, err := h.Svc.Categories(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list categories", nil)
		return
	}
	out := make([]gin.H, 0, len(categories))
	for _, category := range categories {
		out = append(out, gin.H{
			"id":          category.ID,
			"name":        category.Name,
			"description": category.Description,
		})
	}
	respond.JSON(c, http.StatusOK, gin.H{"categories": out})
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.Svc.Stats(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute stats", nil)
		return
	}
	breakdown := make(gin.H, len(stats.CategoryBreakdown))
	for _, entry := range stats.CategoryBreakdown {
		breakdown[entry.Category] = entry.Count
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"total_tools":        stats.TotalTools,
		"total_categories":   stats.TotalCategories,
		"category_breakdown": breakdown,
	})
}

func intQuery(c *gin.Context, key string, def int) int {
	if v := c.Query(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
