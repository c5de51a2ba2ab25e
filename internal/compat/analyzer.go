package compat

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"devtools-backend/internal/catalog"
	"devtools-backend/internal/shared/telemetry"
)

// Stack harmony floors. Pairs under the hard floor are blocking conflicts;
// pairs under the soft floor are warnings.
const (
	hardFloor = 40
	softFloor = 60
)

// Analyzer aggregates pairwise compatibility over a tool set. Persisted
// catalog scores are preferred over live scoring; the analyzer never writes
// computed scores back.
type Analyzer struct {
	Store  catalog.Store
	Scorer *Scorer
}

// NewAnalyzer constructs an Analyzer.
func NewAnalyzer(store catalog.Store, scorer *Scorer) *Analyzer {
	return &Analyzer{Store: store, Scorer: scorer}
}

// Analyze resolves every unordered pair in the tool set and aggregates the
// scores. Fewer than two distinct IDs yields harmony 100 with no findings.
func (a *Analyzer) Analyze(ctx context.Context, toolIDs []string) (Analysis, error) {
	ids := dedupeIDs(toolIDs)
	if len(ids) < 2 {
		return Analysis{ToolIDs: ids, HarmonyScore: 100, Recommendations: []string{}}, nil
	}

	tools := make([]catalog.Tool, 0, len(ids))
	for _, id := range ids {
		tool, err := a.Store.GetTool(ctx, id)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return Analysis{}, fmt.Errorf("tool %q: %w", id, catalog.ErrNotFound)
			}
			return Analysis{}, err
		}
		tools = append(tools, tool)
	}

	analysis := Analysis{ToolIDs: ids, Recommendations: []string{}}
	sum := 0.0
	for i := 0; i < len(tools); i++ {
		for j := i + 1; j < len(tools); j++ {
			pair := a.ResolvePair(ctx, tools[i], tools[j])
			analysis.Pairs = append(analysis.Pairs, pair)
			sum += pair.Score
			switch {
			case pair.Score < hardFloor:
				analysis.Conflicts = append(analysis.Conflicts, PairIssue{
					ToolA: tools[i].Name,
					ToolB: tools[j].Name,
					Score: pair.Score,
					Message: fmt.Sprintf("%s and %s score %.1f, below the compatibility floor of %d",
						tools[i].Name, tools[j].Name, pair.Score, hardFloor),
				})
			case pair.Score < softFloor:
				analysis.Warnings = append(analysis.Warnings, PairIssue{
					ToolA: tools[i].Name,
					ToolB: tools[j].Name,
					Score: pair.Score,
					Message: fmt.Sprintf("%s and %s score %.1f; expect extra integration work",
						tools[i].Name, tools[j].Name, pair.Score),
				})
			}
		}
	}

	pairCount := len(tools) * (len(tools) - 1) / 2
	analysis.HarmonyScore = int(math.Round(sum / float64(pairCount)))
	analysis.Recommendations = recommendationsFor(analysis.HarmonyScore)
	return analysis, nil
}

// HarmonyScore returns only the aggregate harmony for a tool set.
func (a *Analyzer) HarmonyScore(ctx context.Context, toolIDs []string) (int, error) {
	analysis, err := a.Analyze(ctx, toolIDs)
	if err != nil {
		return 0, err
	}
	return analysis.HarmonyScore, nil
}

// ResolvePair returns the persisted score for a pair when one exists,
// falling back to live scoring otherwise. A failing persisted lookup
// degrades to live scoring rather than failing the analysis.
func (a *Analyzer) ResolvePair(ctx context.Context, toolA, toolB catalog.Tool) Score {
	record, err := a.Store.GetCompatibility(ctx, toolA.ID, toolB.ID)
	if err == nil {
		return fromRecord(record, toolA.ID, toolB.ID)
	}
	if !errors.Is(err, catalog.ErrNotFound) {
		telemetry.Error("compat.persisted_lookup_failed", map[string]any{
			"tool_a": toolA.ID,
			"tool_b": toolB.ID,
			"error":  err.Error(),
		})
	}
	return a.Scorer.Score(toolA, toolB)
}

func fromRecord(record catalog.Compatibility, idA, idB string) Score {
	difficulty := record.Difficulty
	if difficulty == "" {
		difficulty = DifficultyFor(record.Score)
	}
	return Score{
		ToolAID:             idA,
		ToolBID:             idB,
		Score:               record.Score,
		Difficulty:          difficulty,
		Notes:               record.Notes,
		VerifiedIntegration: record.Verified,
		SetupSteps:          record.SetupSteps,
		Dependencies:        record.Dependencies,
	}
}

func recommendationsFor(harmony int) []string {
	switch {
	case harmony < 50:
		return []string{
			"Replace the lowest-compatibility tools before committing to this stack",
			"Review integration complexity for the flagged pairs",
		}
	case harmony > 80:
		return []string{
			"Strong stack harmony, proceed with confidence",
		}
	default:
		return []string{}
	}
}

func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		trimmed := strings.TrimSpace(id)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
