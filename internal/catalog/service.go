package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service contains catalog business logic for the admin API.
type Service struct {
	Repo Repo
}

// ListPage is a paginated tool listing.
type ListPage struct {
	Tools   []Tool
	Page    int
	PerPage int
	Total   int
	Pages   int
	HasNext bool
	HasPrev bool
}

// Stats summarizes the catalog.
type Stats struct {
	TotalTools        int
	TotalCategories   int
	CategoryBreakdown []CategoryCount
}

// List returns a page of tools, optionally filtered by category or a text
// search over name, description and features.
func (s *Service) List(ctx context.Context, category, search string, page, perPage int) (ListPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}

	tools, err := s.Repo.ListTools(ctx)
	if err != nil {
		return ListPage{}, err
	}

	filtered := make([]Tool, 0, len(tools))
	category = strings.ToLower(strings.TrimSpace(category))
	search = strings.ToLower(strings.TrimSpace(search))
	for _, tool := range tools {
		if category != "" && !strings.Contains(strings.ToLower(tool.Category), category) {
			continue
		}
		if search != "" && !matchesSearch(tool, search) {
			continue
		}
		filtered = append(filtered, tool)
	}

	total := len(filtered)
	pages := (total + perPage - 1) / perPage
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return ListPage{
		Tools:   filtered[start:end],
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1 && total > 0,
	}, nil
}

// Get returns a tool by ID.
func (s *Service) Get(ctx context.Context, id string) (Tool, error) {
	if strings.TrimSpace(id) == "" {
		return Tool{}, ErrInvalidInput
	}
	return s.Repo.GetTool(ctx, id)
}

// Create validates and stores a new tool.
func (s *Service) Create(ctx context.Context, tool Tool) (Tool, error) {
	tool.Name = strings.TrimSpace(tool.Name)
	tool.Category = strings.TrimSpace(tool.Category)
	if tool.Name == "" || tool.Category == "" {
		return Tool{}, ErrInvalidInput
	}
	if tool.MaturityScore < 0 || tool.MaturityScore > 100 ||
		tool.PopularityScore < 0 || tool.PopularityScore > 100 {
		return Tool{}, ErrInvalidInput
	}
	if tool.ID == "" {
		tool.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	tool.CreatedAt = now
	tool.UpdatedAt = now
	if err := s.Repo.CreateTool(ctx, tool); err != nil {
		return Tool{}, err
	}
	return tool, nil
}

// Update applies changes to an existing tool.
func (s *Service) Update(ctx context.Context, tool Tool) (Tool, error) {
	if strings.TrimSpace(tool.ID) == "" {
		return Tool{}, ErrInvalidInput
	}
	existing, err := s.Repo.GetTool(ctx, tool.ID)
	if err != nil {
		return Tool{}, err
	}
	tool.CreatedAt = existing.CreatedAt
	tool.UpdatedAt = time.Now().UTC()
	if strings.TrimSpace(tool.Name) == "" {
		tool.Name = existing.Name
	}
	if strings.TrimSpace(tool.Category) == "" {
		tool.Category = existing.Category
	}
	if err := s.Repo.UpdateTool(ctx, tool); err != nil {
		return Tool{}, err
	}
	return tool, nil
}

// Delete removes a tool.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.Repo.DeleteTool(ctx, id)
}

// Categories lists all categories.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	return s.Repo.ListCategories(ctx)
}

// Stats returns catalog totals and a per-category breakdown.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	breakdown, err := s.Repo.CategoryBreakdown(ctx)
	if err != nil {
		return Stats{}, err
	}
	total := 0
	for _, entry := range breakdown {
		total += entry.Count
	}
	return Stats{
		TotalTools:        total,
		TotalCategories:   len(breakdown),
		CategoryBreakdown: breakdown,
	}, nil
}

func matchesSearch(tool Tool, search string) bool {
	if strings.Contains(strings.ToLower(tool.Name), search) {
		return true
	}
	if strings.Contains(strings.ToLower(tool.Description), search) {
		return true
	}
	for _, feature := range tool.Features {
		if strings.Contains(strings.ToLower(feature), search) {
			return true
		}
	}
	return false
}
