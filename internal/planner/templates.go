package planner

import (
	"fmt"
	"strings"
	"unicode"
)

const defaultTitle = "Custom Project Blueprint"

// blueprintTitle capitalizes the first five words of the description.
func blueprintTitle(description string) string {
	words := strings.Fields(strings.TrimSpace(description))
	if len(words) == 0 {
		return defaultTitle
	}
	if len(words) > 5 {
		words = words[:5]
	}
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

var backendLogicBase = []string{
	"Design the data model and API contracts",
	"Set up authentication and session handling",
	"Implement the core business logic services",
	"Add input validation and error handling",
	"Write integration tests for the API surface",
}

var frontendLogicBase = []string{
	"Scaffold the application shell and routing",
	"Build the core screens and shared components",
	"Wire screens to the API with loading and error states",
	"Add client-side validation for all forms",
}

var workflowStagesBase = []string{
	"Scaffold the project with the selected tools",
	"Integrate the tools pairwise, starting with the backend",
	"Test the combined workflow end to end",
	"Deploy and monitor the first release",
}

// backendHooks and frontendHooks extend the templates when a selected tool
// name matches a known keyword.
var backendHooks = map[string]string{
	"supabase": "Wire up real-time subscriptions for live data",
	"firebase": "Configure realtime listeners and security rules",
	"stripe":   "Implement webhook handlers for payment events",
}

var frontendHooks = map[string]string{
	"react":    "Set up component-level state management",
	"vue":      "Organize stores and composables for shared state",
	"tailwind": "Establish the design tokens and utility conventions",
}

func extendSteps(base []string, hooks map[string]string, toolNames []string) []string {
	out := append([]string(nil), base...)
	for _, name := range toolNames {
		lowered := strings.ToLower(name)
		for keyword, step := range hooks {
			if strings.Contains(lowered, keyword) {
				out = append(out, step)
			}
		}
	}
	return out
}

// complexityFor maps harmony to integration complexity using the same
// brackets as the analyzer's recommendation text.
func complexityFor(harmony int) string {
	switch {
	case harmony < 40:
		return "high"
	case harmony < 70:
		return "medium"
	default:
		return "low"
	}
}

// timelineEstimates is keyed by (timeline scope, integration complexity).
var timelineEstimates = map[string]map[string]string{
	"short": {
		"low":    "1-2 weeks",
		"medium": "2-4 weeks",
		"high":   "4-6 weeks",
	},
	"standard": {
		"low":    "3-5 weeks",
		"medium": "5-8 weeks",
		"high":   "8-12 weeks",
	},
	"extended": {
		"low":    "6-10 weeks",
		"medium": "10-16 weeks",
		"high":   "16-24 weeks",
	},
}

// costEstimates is keyed by budget tier.
var costEstimates = map[string]string{
	"free":   "Free tiers only; expect usage caps",
	"low":    "Roughly $0-50/month across the stack",
	"medium": "Roughly $50-250/month across the stack",
	"high":   "Above $250/month; enterprise plans available",
}

func timelineScope(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(lowered, "week") || strings.Contains(lowered, "asap") || strings.Contains(lowered, "short"):
		return "short"
	case strings.Contains(lowered, "quarter") || strings.Contains(lowered, "long") || strings.Contains(lowered, "year"):
		return "extended"
	default:
		return "standard"
	}
}

func budgetTier(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(lowered, "free") || strings.Contains(lowered, "none"):
		return "free"
	case strings.Contains(lowered, "low") || strings.Contains(lowered, "small"):
		return "low"
	case strings.Contains(lowered, "high") || strings.Contains(lowered, "enterprise"):
		return "high"
	default:
		return "medium"
	}
}

func stackSummary(selections []selection, harmony int) string {
	if len(selections) == 0 {
		return "No suitable tools were found for the requested categories."
	}
	parts := make([]string, 0, len(selections))
	for _, sel := range selections {
		parts = append(parts, fmt.Sprintf("%s (%s)", sel.Tool.Name, sel.CategoryName))
	}
	return fmt.Sprintf("Recommended stack: %s. Overall harmony score %d/100.",
		strings.Join(parts, ", "), harmony)
}
