package catalog

import "context"

// Store is the read-only catalog view the scoring and planning engine
// consumes. GetCompatibility returns ErrNotFound when no persisted score
// exists for the pair.
type Store interface {
	GetTool(ctx context.Context, id string) (Tool, error)
	ListTools(ctx context.Context) ([]Tool, error)
	ListToolsByCategory(ctx context.Context, categoryID string) ([]Tool, error)
	GetCompatibility(ctx context.Context, idA, idB string) (Compatibility, error)
	ListCategories(ctx context.Context) ([]Category, error)
}

// Repo extends Store with the write operations used by the admin API and
// the importer. The engine itself never writes.
type Repo interface {
	Store
	CreateTool(ctx context.Context, tool Tool) error
	UpdateTool(ctx context.Context, tool Tool) error
	DeleteTool(ctx context.Context, id string) error
	GetToolByName(ctx context.Context, name string) (Tool, error)
	UpsertCompatibility(ctx context.Context, compat Compatibility) error
	CreateCategory(ctx context.Context, category Category) error
	CategoryBreakdown(ctx context.Context) ([]CategoryCount, error)
}
