package search

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"devtools-backend/internal/catalog"
	"devtools-backend/internal/shared/server/respond"
)

// Handler exposes cached catalog search over HTTP.
type Handler struct {
	Cache *Cache
}

// NewHandler constructs a Handler.
func NewHandler(cache *Cache) *Handler {
	return &Handler{Cache: cache}
}

// RegisterRoutes attaches search routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search", h.search)
	rg.GET("/search/suggest", h.suggest)
	rg.GET("/search/popular", h.popular)
	rg.GET("/search/stats", h.stats)
}

// RegisterDevRoutes attaches dev-only cache management routes.
func (h *Handler) RegisterDevRoutes(rg *gin.RouterGroup) {
	rg.POST("/search/clear", h.clear)
}

func (h *Handler) search(c *gin.Context) {
	criteria := Criteria{
		Query:         c.Query("q"),
		Category:      c.Query("category"),
		MinMaturity:   intQuery(c, "min_maturity"),
		MinPopularity: intQuery(c, "min_popularity"),
		Languages:     splitCSV(c.Query("languages")),
		Frameworks:    splitCSV(c.Query("frameworks")),
		SortBy:        c.Query("sort"),
		Page:          intQuery(c, "page"),
		PerPage:       intQuery(c, "per_page"),
	}

	result, err := h.Cache.Search(c.Request.Context(), criteria)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "search failed", nil)
		return
	}

	tools := make([]gin.H, 0, len(result.Items))
	for _, tool := range result.Items {
		tools = append(tools, toolSummary(tool))
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"tools":      tools,
		"count":      result.TotalCount,
		"from_cache": result.FromCache,
	})
}

func (h *Handler) suggest(c *gin.Context) {
	suggestions := h.Cache.Suggest(c.Request.Context(), c.Query("q"))
	respond.JSON(c, http.StatusOK, gin.H{"suggestions": suggestions})
}

func (h *Handler) popular(c *gin.Context) {
	limit := intQuery(c, "limit")
	if limit <= 0 {
		limit = 10
	}
	terms := h.Cache.PopularTerms(limit)
	out := make([]gin.H, 0, len(terms))
	for _, term := range terms {
		out = append(out, gin.H{"term": term.Term, "count": term.Count})
	}
	respond.JSON(c, http.StatusOK, gin.H{"terms": out})
}

func (h *Handler) stats(c *gin.Context) {
	stats := h.Cache.Stats()
	terms := make([]gin.H, 0, len(stats.PopularTerms))
	for _, term := range stats.PopularTerms {
		terms = append(terms, gin.H{"term": term.Term, "count": term.Count})
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"cache_size":    stats.CacheSize,
		"popular_terms": terms,
	})
}

func (h *Handler) clear(c *gin.Context) {
	h.Cache.Clear()
	respond.JSON(c, http.StatusOK, gin.H{"cleared": true})
}

func toolSummary(tool catalog.Tool) gin.H {
	return gin.H{
		"id":               tool.ID,
		"name":             tool.Name,
		"category":         tool.Category,
		"description":      tool.Description,
		"url":              tool.URL,
		"maturity_score":   tool.MaturityScore,
		"popularity_score": tool.PopularityScore,
	}
}

func intQuery(c *gin.Context, key string) int {
	if v := c.Query(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return 0
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
