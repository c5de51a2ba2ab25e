package search

import (
	"context"
	"strings"

	"devtools-backend/internal/compat"
	"devtools-backend/internal/shared/telemetry"
)

const maxSuggestions = 8

// Suggest merges tool-name matches, category-name matches and common
// feature keywords for a partial query, deduplicated and capped. A failing
// source contributes nothing instead of failing the call.
func (c *Cache) Suggest(ctx context.Context, partial string) []string {
	query := strings.ToLower(strings.TrimSpace(partial))
	if query == "" {
		return []string{}
	}

	out := make([]string, 0, maxSuggestions)
	seen := make(map[string]struct{}, maxSuggestions)
	add := func(suggestion string) {
		if len(out) >= maxSuggestions {
			return
		}
		key := strings.ToLower(suggestion)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, suggestion)
	}

	if tools, err := c.store.ListTools(ctx); err == nil {
		for _, tool := range tools {
			if strings.Contains(strings.ToLower(tool.Name), query) {
				add(tool.Name)
			}
		}
	} else {
		telemetry.Error("search.suggest_tools_failed", map[string]any{"error": err.Error()})
	}

	if categories, err := c.store.ListCategories(ctx); err == nil {
		for _, category := range categories {
			if strings.Contains(strings.ToLower(category.Name), query) {
				add(category.Name)
			}
		}
	} else {
		telemetry.Error("search.suggest_categories_failed", map[string]any{"error": err.Error()})
	}

	for _, keyword := range compat.CommonFeatureKeywords {
		if strings.Contains(keyword, query) {
			add(keyword)
		}
	}

	return out
}
