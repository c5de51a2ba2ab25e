package planner

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"devtools-backend/internal/catalog"
	"devtools-backend/internal/compat"
	"devtools-backend/internal/shared/metrics"
)

// Harmony below this triggers alternative-stack exploration.
const alternativesThreshold = 60

// Planner assembles a recommended tool stack from a free-text project
// description. Selection is greedy per category in rule-table order; each
// pick biases later picks through a compatibility bonus. The primary run is
// deterministic; alternatives randomize candidate order via Shuffle.
type Planner struct {
	Store    catalog.Store
	Analyzer *compat.Analyzer
	Rules    []CategoryRule
	Shuffle  func(n int, swap func(i, j int))
}

// NewPlanner constructs a Planner with the default rule table and shuffle.
func NewPlanner(store catalog.Store, analyzer *compat.Analyzer) *Planner {
	return &Planner{
		Store:    store,
		Analyzer: analyzer,
		Rules:    DefaultCategoryRules(),
		Shuffle:  rand.Shuffle,
	}
}

type selection struct {
	Tool         catalog.Tool
	CategoryID   string
	CategoryName string
	Preferred    bool
	AvgCompat    *float64
}

// Plan produces a Blueprint for the description under the given constraints.
func (p *Planner) Plan(ctx context.Context, description string, constraints Constraints) (Blueprint, error) {
	start := time.Now()
	rules := classify(description, p.Rules)

	selections, err := p.selectStack(ctx, rules, constraints, false)
	if err != nil {
		return Blueprint{}, err
	}

	ids := make([]string, 0, len(selections))
	names := make([]string, 0, len(selections))
	for _, sel := range selections {
		ids = append(ids, sel.Tool.ID)
		names = append(names, sel.Tool.Name)
	}

	analysis, err := p.Analyzer.Analyze(ctx, ids)
	if err != nil {
		return Blueprint{}, err
	}

	var alternatives []AlternativeStack
	if analysis.HarmonyScore < alternativesThreshold {
		alternatives, err = p.exploreAlternatives(ctx, rules, constraints)
		if err != nil {
			return Blueprint{}, err
		}
	}

	blueprint := Blueprint{
		ID:               uuid.NewString(),
		Title:            blueprintTitle(description),
		TechStackSummary: stackSummary(selections, analysis.HarmonyScore),
		BackendLogic:     extendSteps(backendLogicBase, backendHooks, names),
		FrontendLogic:    extendSteps(frontendLogicBase, frontendHooks, names),
		Workflow: Workflow{
			Name:   "Build & Integrate",
			Stages: append([]string(nil), workflowStagesBase...),
		},
		Recommendations:  toRecommendations(selections),
		Analysis:         analysis,
		Alternatives:     alternatives,
		TimelineEstimate: timelineEstimates[timelineScope(constraints.Timeline)][complexityFor(analysis.HarmonyScore)],
		CostEstimate:     costEstimates[budgetTier(constraints.Budget)],
		CreatedAt:        time.Now().UTC(),
	}

	metrics.IncPlanGenerated()
	metrics.ObservePlanDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	return blueprint, nil
}

// selectStack runs greedy selection over the classified categories. With
// randomize set, candidate order is shuffled and the lexicographic tie-break
// is skipped so equal-scoring candidates can differ between runs.
func (p *Planner) selectStack(ctx context.Context, rules []CategoryRule, constraints Constraints, randomize bool) ([]selection, error) {
	avoided := nameSet(constraints.AvoidedTools)
	preferred := nameSet(constraints.PreferredTools)

	selections := make([]selection, 0, len(rules))
	for _, rule := range rules {
		tools, err := p.Store.ListToolsByCategory(ctx, rule.CategoryID)
		if err != nil {
			return nil, err
		}

		candidates := make([]catalog.Tool, 0, len(tools))
		for _, tool := range tools {
			if matchesSet(avoided, tool) {
				continue
			}
			candidates = append(candidates, tool)
		}
		if len(candidates) == 0 {
			continue
		}

		// Preferred tools bypass scoring entirely.
		tookPreferred := false
		for _, tool := range candidates {
			if matchesSet(preferred, tool) {
				selections = append(selections, selection{
					Tool:         tool,
					CategoryID:   rule.CategoryID,
					CategoryName: rule.CategoryName,
					Preferred:    true,
				})
				tookPreferred = true
			}
		}
		if tookPreferred {
			continue
		}

		if randomize && p.Shuffle != nil {
			p.Shuffle(len(candidates), func(i, j int) {
				candidates[i], candidates[j] = candidates[j], candidates[i]
			})
		}

		best := -1
		bestScore := 0.0
		var bestCompat *float64
		for i, tool := range candidates {
			score := float64(tool.PopularityScore + tool.MaturityScore)
			var avgCompat *float64
			if len(selections) > 0 {
				avg := p.averageCompat(ctx, tool, selections)
				score += avg / 10
				avgCompat = &avg
			}
			better := score > bestScore
			if !better && best >= 0 && score == bestScore && !randomize {
				better = strings.ToLower(tool.Name) < strings.ToLower(candidates[best].Name)
			}
			if best < 0 || better {
				best = i
				bestScore = score
				bestCompat = avgCompat
			}
		}

		selections = append(selections, selection{
			Tool:         candidates[best],
			CategoryID:   rule.CategoryID,
			CategoryName: rule.CategoryName,
			AvgCompat:    bestCompat,
		})
	}
	return selections, nil
}

func (p *Planner) averageCompat(ctx context.Context, candidate catalog.Tool, selections []selection) float64 {
	sum := 0.0
	for _, sel := range selections {
		sum += p.Analyzer.ResolvePair(ctx, candidate, sel.Tool).Score
	}
	return sum / float64(len(selections))
}

// exploreAlternatives reruns greedy selection twice with randomized
// candidate order, best-effort diversification only.
func (p *Planner) exploreAlternatives(ctx context.Context, rules []CategoryRule, constraints Constraints) ([]AlternativeStack, error) {
	alternatives := make([]AlternativeStack, 0, 2)
	for run := 0; run < 2; run++ {
		selections, err := p.selectStack(ctx, rules, constraints, true)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(selections))
		names := make([]string, 0, len(selections))
		for _, sel := range selections {
			ids = append(ids, sel.Tool.ID)
			names = append(names, sel.Tool.Name)
		}
		harmony, err := p.Analyzer.HarmonyScore(ctx, ids)
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, AlternativeStack{
			ToolIDs:      ids,
			ToolNames:    names,
			HarmonyScore: harmony,
		})
	}
	sort.Slice(alternatives, func(i, j int) bool {
		return alternatives[i].HarmonyScore > alternatives[j].HarmonyScore
	})
	return alternatives, nil
}

func toRecommendations(selections []selection) []ToolRecommendation {
	out := make([]ToolRecommendation, 0, len(selections))
	for _, sel := range selections {
		reason := fmt.Sprintf("Top %s pick by popularity and maturity", sel.CategoryName)
		if sel.Preferred {
			reason = "Requested explicitly in the planning constraints"
		} else if sel.AvgCompat != nil {
			reason = fmt.Sprintf("%s; averages %.1f compatibility with earlier picks", reason, *sel.AvgCompat)
		}
		out = append(out, ToolRecommendation{
			ToolID:             sel.Tool.ID,
			ToolName:           sel.Tool.Name,
			CategoryID:         sel.CategoryID,
			CategoryName:       sel.CategoryName,
			Reason:             reason,
			CompatibilityScore: sel.AvgCompat,
		})
	}
	return out
}

func nameSet(names []string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, name := range names {
		trimmed := strings.ToLower(strings.TrimSpace(name))
		if trimmed != "" {
			out[trimmed] = struct{}{}
		}
	}
	return out
}

func matchesSet(set map[string]struct{}, tool catalog.Tool) bool {
	if len(set) == 0 {
		return false
	}
	if _, ok := set[strings.ToLower(tool.Name)]; ok {
		return true
	}
	_, ok := set[strings.ToLower(tool.ID)]
	return ok
}
