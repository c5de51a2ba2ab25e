package search

import (
	"context"
	"fmt"
	"testing"
	"time"

	"devtools-backend/internal/catalog"
)

func seedTool(t *testing.T, repo *catalog.MemoryRepo, tool catalog.Tool) {
	t.Helper()
	if err := repo.CreateTool(context.Background(), tool); err != nil {
		t.Fatalf("seed tool %s: %v", tool.Name, err)
	}
}

func seedCatalog(t *testing.T) *catalog.MemoryRepo {
	t.Helper()
	repo := catalog.NewMemoryRepo()
	seedTool(t, repo, catalog.Tool{
		ID: "copilot", Name: "Copilot", Category: "ai-assist",
		Description: "AI pair programmer",
		Languages:   []string{"JavaScript", "Python", "Go"},
		Frameworks:  []string{"VS Code"},
		Features:    []string{"code generation", "autocomplete"},
		MaturityScore: 85, PopularityScore: 95,
	})
	seedTool(t, repo, catalog.Tool{
		ID: "cody", Name: "Cody", Category: "ai-assist",
		Description: "Codebase-aware assistant",
		Languages:   []string{"TypeScript", "Go"},
		Features:    []string{"code review"},
		MaturityScore: 70, PopularityScore: 75,
	})
	seedTool(t, repo, catalog.Tool{
		ID: "vercel", Name: "Vercel", Category: "dev-env",
		Description: "Frontend hosting platform",
		Languages:   []string{"JavaScript"},
		Features:    []string{"deployment"},
		MaturityScore: 80, PopularityScore: 85,
	})
	return repo
}

func TestSearchCachesNormalizedCriteria(t *testing.T) {
	cache := NewCache(seedCatalog(t), Config{})

	first, err := cache.Search(context.Background(), Criteria{
		Query:     "assistant",
		Languages: []string{"Go", "TypeScript"},
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if first.FromCache {
		t.Fatalf("expected first search to miss the cache")
	}

	// Same criteria with different case and value order must hit.
	second, err := cache.Search(context.Background(), Criteria{
		Query:     "  Assistant ",
		Languages: []string{"typescript", "GO"},
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !second.FromCache {
		t.Fatalf("expected normalized criteria to hit the cache")
	}
	if second.TotalCount != first.TotalCount {
		t.Fatalf("cached count %d differs from live count %d", second.TotalCount, first.TotalCount)
	}
}

func TestSearchTTLExpiry(t *testing.T) {
	cache := NewCache(seedCatalog(t), Config{TTL: time.Minute})
	current := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	if _, err := cache.Search(context.Background(), Criteria{Query: "copilot"}); err != nil {
		t.Fatalf("Search: %v", err)
	}

	current = current.Add(30 * time.Second)
	result, err := cache.Search(context.Background(), Criteria{Query: "copilot"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !result.FromCache {
		t.Fatalf("expected hit inside the TTL window")
	}

	current = current.Add(2 * time.Minute)
	result, err = cache.Search(context.Background(), Criteria{Query: "copilot"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.FromCache {
		t.Fatalf("expected miss after TTL expiry")
	}
}

func TestSearchCapacityEvictsOldest(t *testing.T) {
	cache := NewCache(seedCatalog(t), Config{Capacity: 2})

	for _, query := range []string{"copilot", "cody", "vercel"} {
		if _, err := cache.Search(context.Background(), Criteria{Query: query}); err != nil {
			t.Fatalf("Search %s: %v", query, err)
		}
	}

	if size := cache.Stats().CacheSize; size != 2 {
		t.Fatalf("expected cache size 2 at capacity, got %d", size)
	}

	// The oldest entry was evicted, the newest ones still hit.
	result, err := cache.Search(context.Background(), Criteria{Query: "copilot"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.FromCache {
		t.Fatalf("expected evicted entry to miss")
	}
	result, err = cache.Search(context.Background(), Criteria{Query: "vercel"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !result.FromCache {
		t.Fatalf("expected recent entry to hit")
	}
}

func TestSearchFilters(t *testing.T) {
	cache := NewCache(seedCatalog(t), Config{})

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{
			name:     "category filter",
			criteria: Criteria{Category: "ai-assist"},
			want:     []string{"Copilot", "Cody"},
		},
		{
			name:     "min popularity",
			criteria: Criteria{MinPopularity: 80},
			want:     []string{"Copilot", "Vercel"},
		},
		{
			name:     "language filter",
			criteria: Criteria{Languages: []string{"typescript"}},
			want:     []string{"Cody"},
		},
		{
			name:     "feature text match",
			criteria: Criteria{Query: "deployment"},
			want:     []string{"Vercel"},
		},
		{
			name:     "combined filters exclude all",
			criteria: Criteria{Category: "ai-assist", MinMaturity: 90},
			want:     []string{},
		},
	}

	for _, tc := range tests {
		result, err := cache.Search(context.Background(), tc.criteria)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if len(result.Items) != len(tc.want) {
			t.Fatalf("%s: expected %d tools, got %d", tc.name, len(tc.want), len(result.Items))
		}
		for i, name := range tc.want {
			if result.Items[i].Name != name {
				t.Fatalf("%s: expected %s at %d, got %s", tc.name, name, i, result.Items[i].Name)
			}
		}
	}
}

func TestSearchSortOrders(t *testing.T) {
	cache := NewCache(seedCatalog(t), Config{})

	tests := []struct {
		sortBy string
		want   []string
	}{
		{sortBy: "name", want: []string{"Cody", "Copilot", "Vercel"}},
		{sortBy: "popularity", want: []string{"Copilot", "Vercel", "Cody"}},
		{sortBy: "maturity", want: []string{"Copilot", "Vercel", "Cody"}},
		{sortBy: "", want: []string{"Copilot", "Vercel", "Cody"}},
	}
	for _, tc := range tests {
		result, err := cache.Search(context.Background(), Criteria{SortBy: tc.sortBy})
		if err != nil {
			t.Fatalf("sort %q: %v", tc.sortBy, err)
		}
		for i, name := range tc.want {
			if result.Items[i].Name != name {
				t.Fatalf("sort %q: expected %s at %d, got %s", tc.sortBy, name, i, result.Items[i].Name)
			}
		}
	}
}

func TestSearchPagination(t *testing.T) {
	repo := catalog.NewMemoryRepo()
	for i := 0; i < 25; i++ {
		seedTool(t, repo, catalog.Tool{
			ID:   fmt.Sprintf("tool-%02d", i),
			Name: fmt.Sprintf("Tool %02d", i),
		})
	}
	cache := NewCache(repo, Config{})

	result, err := cache.Search(context.Background(), Criteria{SortBy: "name", Page: 2, PerPage: 10})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.TotalCount != 25 {
		t.Fatalf("expected total 25, got %d", result.TotalCount)
	}
	if len(result.Items) != 10 {
		t.Fatalf("expected 10 items on page 2, got %d", len(result.Items))
	}
	if result.Items[0].Name != "Tool 10" {
		t.Fatalf("expected page 2 to start at Tool 10, got %s", result.Items[0].Name)
	}

	// Past the last page returns an empty slice, not an error.
	result, err = cache.Search(context.Background(), Criteria{SortBy: "name", Page: 9, PerPage: 10})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(result.Items) != 0 {
		t.Fatalf("expected empty page, got %d items", len(result.Items))
	}
}

func TestClearKeepsPopularTerms(t *testing.T) {
	cache := NewCache(seedCatalog(t), Config{})

	if _, err := cache.Search(context.Background(), Criteria{Query: "copilot"}); err != nil {
		t.Fatalf("Search: %v", err)
	}
	cache.Clear()

	stats := cache.Stats()
	if stats.CacheSize != 0 {
		t.Fatalf("expected empty cache after clear, got %d", stats.CacheSize)
	}
	if len(stats.PopularTerms) != 1 || stats.PopularTerms[0].Term != "copilot" {
		t.Fatalf("expected popularity analytics to survive clear, got %+v", stats.PopularTerms)
	}

	result, err := cache.Search(context.Background(), Criteria{Query: "copilot"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.FromCache {
		t.Fatalf("expected miss after clear")
	}
}
