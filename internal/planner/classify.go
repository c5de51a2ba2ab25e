package planner

import "strings"

// CategoryRule maps description keywords to a catalog category. Rules are
// evaluated in order; the order also fixes greedy selection order.
type CategoryRule struct {
	CategoryID   string
	CategoryName string
	Keywords     []string
}

// DefaultCategoryRules returns the stock keyword table. It is configuration:
// planners accept an alternative table without any logic change.
func DefaultCategoryRules() []CategoryRule {
	return []CategoryRule{
		{
			CategoryID:   "frontend",
			CategoryName: "Frontend",
			Keywords:     []string{"react", "vue", "ui", "frontend", "website", "dashboard", "web"},
		},
		{
			CategoryID:   "backend",
			CategoryName: "Backend",
			Keywords:     []string{"api", "database", "auth", "backend", "server", "storage"},
		},
		{
			CategoryID:   "ai-assist",
			CategoryName: "AI-Assist",
			Keywords:     []string{"ai", "ml", "llm", "copilot", "assistant"},
		},
		{
			CategoryID:   "dev-env",
			CategoryName: "DevEnv",
			Keywords:     []string{"deploy", "hosting", "devops", "pipeline", "infrastructure"},
		},
		{
			CategoryID:   "no-code",
			CategoryName: "No-Code",
			Keywords:     []string{"prototype", "mvp", "no-code", "nocode"},
		},
		{
			CategoryID:   "commerce",
			CategoryName: "Commerce",
			Keywords:     []string{"payment", "subscription", "checkout", "ecommerce", "shop"},
		},
	}
}

// fallbackCategoryIDs keeps planning productive when no keyword matches.
var fallbackCategoryIDs = []string{"dev-env", "frontend", "backend"}

// classify matches the description against the rule table, preserving table
// order. An empty match falls back to the default trio so a blueprint is
// always produced.
func classify(description string, rules []CategoryRule) []CategoryRule {
	lowered := strings.ToLower(description)
	matched := make([]CategoryRule, 0, len(rules))
	for _, rule := range rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lowered, keyword) {
				matched = append(matched, rule)
				break
			}
		}
	}
	if len(matched) > 0 {
		return matched
	}

	fallback := make([]CategoryRule, 0, len(fallbackCategoryIDs))
	for _, id := range fallbackCategoryIDs {
		for _, rule := range rules {
			if rule.CategoryID == id {
				fallback = append(fallback, rule)
				break
			}
		}
	}
	return fallback
}
