package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"devtools-backend/internal/catalog"
	"devtools-backend/internal/compat"
	"devtools-backend/internal/planner"
	"devtools-backend/internal/search"
	"devtools-backend/internal/shared/config"
	"devtools-backend/internal/shared/server"
	"devtools-backend/internal/shared/storage/db"
)

// App holds shared dependencies.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	CatalogRepo    catalog.Repo
	CatalogService *catalog.Service
	Scorer         *compat.Scorer
	Analyzer       *compat.Analyzer
	Planner        *planner.Planner
	SearchCache    *search.Cache
	CatalogHandler *catalog.Handler
	CompatHandler  *compat.Handler
	PlannerHandler *planner.Handler
	SearchHandler  *search.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var repo catalog.Repo
	if sqlDB != nil {
		repo = &catalog.PGRepo{DB: sqlDB}
	} else {
		repo = catalog.NewMemoryRepo()
	}

	catalogSvc := &catalog.Service{Repo: repo}
	scorer := compat.NewScorer()
	analyzer := compat.NewAnalyzer(repo, scorer)
	stackPlanner := planner.NewPlanner(repo, analyzer)
	cache := search.NewCache(repo, search.Config{
		Capacity: cfg.CacheCapacity,
		TTL:      cfg.CacheTTL,
		MaxTerms: cfg.SearchTermsMax,
	})

	app := &App{
		Config:         cfg,
		DB:             sqlDB,
		CatalogRepo:    repo,
		CatalogService: catalogSvc,
		Scorer:         scorer,
		Analyzer:       analyzer,
		Planner:        stackPlanner,
		SearchCache:    cache,
		CatalogHandler: catalog.NewHandler(catalogSvc),
		CompatHandler:  compat.NewHandler(repo, analyzer),
		PlannerHandler: planner.NewHandler(stackPlanner),
		SearchHandler:  search.NewHandler(cache),
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         app.Config,
		CatalogHandler: app.CatalogHandler,
		CompatHandler:  app.CompatHandler,
		PlannerHandler: app.PlannerHandler,
		SearchHandler:  app.SearchHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repository")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repository: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
