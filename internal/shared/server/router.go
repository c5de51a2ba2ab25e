package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"devtools-backend/internal/catalog"
	"devtools-backend/internal/compat"
	"devtools-backend/internal/planner"
	"devtools-backend/internal/search"
	"devtools-backend/internal/shared/config"
	"devtools-backend/internal/shared/metrics"
	"devtools-backend/internal/shared/server/middleware"
	"devtools-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config         config.Config
	CatalogHandler *catalog.Handler
	CompatHandler  *compat.Handler
	PlannerHandler *planner.Handler
	SearchHandler  *search.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			DefaultGroup: "DEFAULT",
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodGet && c.FullPath() == "/api/v1/search" {
					return "SEARCH"
				}
				return "DEFAULT"
			},
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT": {Rate: 10, Burst: 30},
				"SEARCH":  {Rate: 25, Burst: 60},
			},
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.CatalogHandler != nil {
		deps.CatalogHandler.RegisterRoutes(api)
	}
	if deps.CompatHandler != nil {
		deps.CompatHandler.RegisterRoutes(api)
	}
	if deps.PlannerHandler != nil {
		deps.PlannerHandler.RegisterRoutes(api)
	}
	if deps.SearchHandler != nil {
		deps.SearchHandler.RegisterRoutes(api)
		if deps.Config.Env == "dev" {
			dev := api.Group("/dev")
			deps.SearchHandler.RegisterDevRoutes(dev)
		}
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
