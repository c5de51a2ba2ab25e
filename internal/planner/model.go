package planner

import (
	"time"

	"devtools-backend/internal/compat"
)

// Constraints narrows planning: preferred tools bypass scoring, avoided
// tools are excluded, budget and timeline feed the estimate tables.
type Constraints struct {
	PreferredTools []string
	AvoidedTools   []string
	Budget         string
	Timeline       string
}

// ToolRecommendation is one selected tool with the reasoning behind it.
// CompatibilityScore is the average pairwise score against the tools chosen
// before it; nil for the first selection.
type ToolRecommendation struct {
	ToolID             string
	ToolName           string
	CategoryID         string
	CategoryName       string
	Reason             string
	CompatibilityScore *float64
}

// Workflow is a named, ordered sequence of delivery stages.
type Workflow struct {
	Name   string
	Stages []string
}

// AlternativeStack is a diversified greedy run over the same categories.
type AlternativeStack struct {
	ToolIDs      []string
	ToolNames    []string
	HarmonyScore int
}

// Blueprint is the generated recommendation artifact for one planning
// request. It is not persisted by the engine.
type Blueprint struct {
	ID               string
	Title            string
	TechStackSummary string
	BackendLogic     []string
	FrontendLogic    []string
	Workflow         Workflow
	Recommendations  []ToolRecommendation
	Analysis         compat.Analysis
	Alternatives     []AlternativeStack
	TimelineEstimate string
	CostEstimate     string
	CreatedAt        time.Time
}
