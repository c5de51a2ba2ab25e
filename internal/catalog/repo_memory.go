package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo, used in dev mode and
// tests when no database is configured.
type MemoryRepo struct {
	mu         sync.RWMutex
	tools      map[string]Tool
	categories map[string]Category
	compat     map[string]Compatibility // pairKey -> record
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		tools:      make(map[string]Tool),
		categories: make(map[string]Category),
		compat:     make(map[string]Compatibility),
	}
}

func pairKey(idA, idB string) string {
	if idB < idA {
		idA, idB = idB, idA
	}
	return idA + "|" + idB
}

// GetTool returns a tool by ID.
func (r *MemoryRepo) GetTool(ctx context.Context, id string) (Tool, error) {
	if err := ctx.Err(); err != nil {
		return Tool{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[id]
	if !ok {
		return Tool{}, ErrNotFound
	}
	return tool, nil
}

// GetToolByName returns a tool by exact name, case-insensitive.
func (r *MemoryRepo) GetToolByName(ctx context.Context, name string) (Tool, error) {
	if err := ctx.Err(); err != nil {
		return Tool{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, tool := range r.tools {
		if strings.EqualFold(tool.Name, name) {
			return tool, nil
		}
	}
	return Tool{}, ErrNotFound
}

// ListTools returns all tools sorted by name.
func (r *MemoryRepo) ListTools(ctx context.Context) ([]Tool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		out = append(out, tool)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

// ListToolsByCategory returns tools in a category sorted by name.
func (r *MemoryRepo) ListToolsByCategory(ctx context.Context, categoryID string) ([]Tool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Tool, 0)
	for _, tool := range r.tools {
		if strings.EqualFold(tool.Category, categoryID) {
			out = append(out, tool)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

// GetCompatibility looks up a persisted pairwise score in either ID order.
func (r *MemoryRepo) GetCompatibility(ctx context.Context, idA, idB string) (Compatibility, error) {
	if err := ctx.Err(); err != nil {
		return Compatibility{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.compat[pairKey(idA, idB)]
	if !ok {
		return Compatibility{}, ErrNotFound
	}
	return record, nil
}

// ListCategories returns all categories sorted by name.
func (r *MemoryRepo) ListCategories(ctx context.Context) ([]Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Category, 0, len(r.categories))
	for _, category := range r.categories {
		out = append(out, category)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

// CreateTool stores a new tool. Names are unique, case-insensitive.
func (r *MemoryRepo) CreateTool(ctx context.Context, tool Tool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.tools {
		if strings.EqualFold(existing.Name, tool.Name) {
			return ErrDuplicate
		}
	}
	r.tools[tool.ID] = tool
	return nil
}

// UpdateTool replaces a stored tool.
func (r *MemoryRepo) UpdateTool(ctx context.Context, tool Tool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tools[tool.ID]; !ok {
		return ErrNotFound
	}
	r.tools[tool.ID] = tool
	return nil
}

// DeleteTool removes a tool by ID.
func (r *MemoryRepo) DeleteTool(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tools[id]; !ok {
		return ErrNotFound
	}
	delete(r.tools, id)
	return nil
}

// UpsertCompatibility stores a pairwise score under the normalized pair key.
func (r *MemoryRepo) UpsertCompatibility(ctx context.Context, compat Compatibility) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.compat[pairKey(compat.ToolAID, compat.ToolBID)] = compat
	return nil
}

// CreateCategory stores a category, overwriting any existing entry by ID.
func (r *MemoryRepo) CreateCategory(ctx context.Context, category Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[category.ID] = category
	return nil
}

// CategoryBreakdown tallies tools per category.
func (r *MemoryRepo) CategoryBreakdown(ctx context.Context) ([]CategoryCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[string]int)
	for _, tool := range r.tools {
		counts[tool.Category]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for category, count := range counts {
		out = append(out, CategoryCount{Category: category, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Category < out[j].Category
	})
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
