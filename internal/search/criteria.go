package search

import (
	"sort"
	"strconv"
	"strings"

	"devtools-backend/internal/catalog"
)

// Criteria describes one catalog search: text and category filters, score
// thresholds, multi-value language/framework filters, sort and pagination.
type Criteria struct {
	Query         string
	Category      string
	MinMaturity   int
	MinPopularity int
	Languages     []string
	Frameworks    []string
	SortBy        string // name | popularity | maturity | recency | "" (combined)
	Page          int
	PerPage       int
}

// normalized clamps pagination and lowercases/sorts the multi-value filters
// so equivalent criteria collide to the same cache key.
func (c Criteria) normalized() Criteria {
	out := c
	out.Query = strings.ToLower(strings.TrimSpace(c.Query))
	out.Category = strings.ToLower(strings.TrimSpace(c.Category))
	out.SortBy = strings.ToLower(strings.TrimSpace(c.SortBy))
	out.Languages = normalizeValues(c.Languages)
	out.Frameworks = normalizeValues(c.Frameworks)
	if out.Page < 1 {
		out.Page = 1
	}
	if out.PerPage < 1 {
		out.PerPage = 20
	}
	if out.PerPage > 100 {
		out.PerPage = 100
	}
	return out
}

// Key is the canonical cache key for the criteria.
func (c Criteria) Key() string {
	n := c.normalized()
	parts := []string{
		"q=" + n.Query,
		"cat=" + n.Category,
		"mat=" + strconv.Itoa(n.MinMaturity),
		"pop=" + strconv.Itoa(n.MinPopularity),
		"langs=" + strings.Join(n.Languages, ","),
		"fws=" + strings.Join(n.Frameworks, ","),
		"sort=" + n.SortBy,
		"page=" + strconv.Itoa(n.Page),
		"per=" + strconv.Itoa(n.PerPage),
	}
	return strings.Join(parts, "|")
}

func normalizeValues(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.ToLower(strings.TrimSpace(value))
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	sort.Strings(out)
	return out
}

// matches applies all filters of normalized criteria to a tool.
func (c Criteria) matches(tool catalog.Tool) bool {
	if c.Query != "" && !matchesText(tool, c.Query) {
		return false
	}
	if c.Category != "" && !strings.Contains(strings.ToLower(tool.Category), c.Category) {
		return false
	}
	if c.MinMaturity > 0 && tool.MaturityScore < c.MinMaturity {
		return false
	}
	if c.MinPopularity > 0 && tool.PopularityScore < c.MinPopularity {
		return false
	}
	if len(c.Languages) > 0 && !sharesValue(c.Languages, tool.Languages) {
		return false
	}
	if len(c.Frameworks) > 0 && !sharesValue(c.Frameworks, tool.Frameworks) {
		return false
	}
	return true
}

func matchesText(tool catalog.Tool, query string) bool {
	if strings.Contains(strings.ToLower(tool.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(tool.Description), query) {
		return true
	}
	for _, feature := range tool.Features {
		if strings.Contains(strings.ToLower(feature), query) {
			return true
		}
	}
	return false
}

// sharesValue reports whether any requested value appears, as a substring,
// in the tool's own list.
func sharesValue(requested, own []string) bool {
	for _, want := range requested {
		for _, have := range own {
			if strings.Contains(strings.ToLower(have), want) {
				return true
			}
		}
	}
	return false
}

// sortTools orders tools per the requested sort key, with a stable name
// tie-break for determinism.
func sortTools(tools []catalog.Tool, sortBy string) {
	less := func(i, j int) bool {
		return strings.ToLower(tools[i].Name) < strings.ToLower(tools[j].Name)
	}
	switch sortBy {
	case "name":
		// name ascending is the tie-break itself
	case "popularity":
		less = byScoreDesc(tools, func(t catalog.Tool) int { return t.PopularityScore })
	case "maturity":
		less = byScoreDesc(tools, func(t catalog.Tool) int { return t.MaturityScore })
	case "recency":
		less = func(i, j int) bool {
			if !tools[i].UpdatedAt.Equal(tools[j].UpdatedAt) {
				return tools[i].UpdatedAt.After(tools[j].UpdatedAt)
			}
			return strings.ToLower(tools[i].Name) < strings.ToLower(tools[j].Name)
		}
	default:
		less = byScoreDesc(tools, func(t catalog.Tool) int { return t.PopularityScore + t.MaturityScore })
	}
	sort.SliceStable(tools, less)
}

func byScoreDesc(tools []catalog.Tool, score func(catalog.Tool) int) func(i, j int) bool {
	return func(i, j int) bool {
		if score(tools[i]) != score(tools[j]) {
			return score(tools[i]) > score(tools[j])
		}
		return strings.ToLower(tools[i].Name) < strings.ToLower(tools[j].Name)
	}
}
