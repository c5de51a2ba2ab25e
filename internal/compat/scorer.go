package compat

import (
	"fmt"
	"math"
	"strings"

	"devtools-backend/internal/catalog"
)

// Scorer computes pairwise compatibility scores from static tool attributes.
// It is pure and safe for concurrent use. Callers must not pass the same
// tool twice; self-pairs are not a meaningful comparison.
type Scorer struct {
	tables Tables
}

// NewScorer constructs a Scorer with the default tables.
func NewScorer() *Scorer {
	return &Scorer{tables: DefaultTables()}
}

// NewScorerWithTables constructs a Scorer with custom scoring tables.
func NewScorerWithTables(tables Tables) *Scorer {
	return &Scorer{tables: tables}
}

// Score computes the compatibility of two distinct tools. The result is
// symmetric: Score(a, b).Score == Score(b, a).Score.
func (s *Scorer) Score(a, b catalog.Tool) Score {
	t := s.tables

	categoryRaw := t.CrossCategoryRaw
	if strings.EqualFold(strings.TrimSpace(a.Category), strings.TrimSpace(b.Category)) {
		categoryRaw = t.SameCategoryRaw
	}

	frameworkRaw := overlapRatio(a.Frameworks, b.Frameworks) * t.FrameworkRawMax
	languageRaw := overlapRatio(a.Languages, b.Languages) * t.LanguageRawMax

	integrationRaw := 0.0
	mention := mentions(a.Integrations(), b.Name) || mentions(b.Integrations(), a.Name)
	if mention {
		integrationRaw = t.MentionRaw
	} else {
		integrationRaw = overlapRatio(a.Integrations(), b.Integrations()) * t.SharedEntryRawMax
	}

	featureRaw := s.featureComplementarity(a.Features, b.Features)

	maturityBonus := t.MaturityBonusMax - math.Abs(float64(a.MaturityScore-b.MaturityScore))
	if maturityBonus < 0 {
		maturityBonus = 0
	}

	total := t.Baseline +
		categoryRaw*t.CategoryWeight +
		frameworkRaw*t.FrameworkWeight +
		languageRaw*t.LanguageWeight +
		integrationRaw*t.IntegrationWeight +
		featureRaw*t.FeatureWeight +
		maturityBonus
	total = clamp(total, 0, 100)
	total = math.Round(total*10) / 10

	difficulty := DifficultyFor(total)
	shared := sharedTokens(a, b, t.MaxDependencies)

	return Score{
		ToolAID:             a.ID,
		ToolBID:             b.ID,
		Score:               total,
		Difficulty:          difficulty,
		Notes:               buildNotes(a, b, categoryRaw == t.SameCategoryRaw, frameworkRaw > 0, languageRaw > 0, mention),
		VerifiedIntegration: integrationRaw > t.VerifiedThreshold,
		SetupSteps:          setupSteps(a.Name, b.Name, difficulty),
		Dependencies:        shared,
	}
}

// DifficultyFor maps a final score to its integration difficulty tier.
func DifficultyFor(score float64) string {
	switch {
	case score >= 75:
		return DifficultyEasy
	case score >= 55:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}

// overlapRatio is |shared| / max(|a|, |b|) over distinct, case-insensitive
// entries; zero when either list is empty.
func overlapRatio(a, b []string) float64 {
	setA := normalizeSet(a)
	setB := normalizeSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	shared := 0
	for entry := range setA {
		if _, ok := setB[entry]; ok {
			shared++
		}
	}
	denom := len(setA)
	if len(setB) > denom {
		denom = len(setB)
	}
	return float64(shared) / float64(denom)
}

func normalizeSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, item := range items {
		trimmed := strings.ToLower(strings.TrimSpace(item))
		if trimmed != "" {
			out[trimmed] = struct{}{}
		}
	}
	return out
}

// mentions reports whether any integration entry names the tool.
func mentions(integrations []string, toolName string) bool {
	name := strings.ToLower(strings.TrimSpace(toolName))
	if name == "" {
		return false
	}
	for _, entry := range integrations {
		if strings.Contains(strings.ToLower(entry), name) {
			return true
		}
	}
	return false
}

// featureComplementarity rewards complementary feature pairs and penalizes
// near-duplicate feature entries, floored at zero.
func (s *Scorer) featureComplementarity(featuresA, featuresB []string) float64 {
	t := s.tables
	raw := 0.0
	for _, pair := range t.ComplementaryFeatures {
		if (hasKeyword(featuresA, pair[0]) && hasKeyword(featuresB, pair[1])) ||
			(hasKeyword(featuresA, pair[1]) && hasKeyword(featuresB, pair[0])) {
			raw += t.FeaturePairRaw
		}
	}
	setA := normalizeSet(featuresA)
	setB := normalizeSet(featuresB)
	for entry := range setA {
		if _, ok := setB[entry]; ok {
			raw -= t.DuplicatePenalty
		}
	}
	if raw < 0 {
		raw = 0
	}
	return raw
}

func hasKeyword(features []string, keyword string) bool {
	for _, feature := range features {
		if strings.Contains(strings.ToLower(feature), keyword) {
			return true
		}
	}
	return false
}

// sharedTokens derives dependency tokens from the framework and language
// intersections, capped at limit unique entries.
func sharedTokens(a, b catalog.Tool, limit int) []string {
	out := make([]string, 0, limit)
	seen := make(map[string]struct{}, limit)
	add := func(token string) {
		if len(out) >= limit {
			return
		}
		if _, ok := seen[token]; ok {
			return
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}

	setB := normalizeSet(b.Frameworks)
	for _, framework := range a.Frameworks {
		key := strings.ToLower(strings.TrimSpace(framework))
		if _, ok := setB[key]; ok && key != "" {
			add(key)
		}
	}
	langB := normalizeSet(b.Languages)
	for _, language := range a.Languages {
		key := strings.ToLower(strings.TrimSpace(language))
		if _, ok := langB[key]; ok && key != "" {
			add(key + "-runtime")
		}
	}
	return out
}

func setupSteps(nameA, nameB, difficulty string) []string {
	switch difficulty {
	case DifficultyEasy:
		return []string{
			fmt.Sprintf("Install %s and %s", nameA, nameB),
			fmt.Sprintf("Connect %s to %s using the available integration", nameA, nameB),
			"Run a smoke test to verify the connection",
		}
	case DifficultyMedium:
		return []string{
			fmt.Sprintf("Install %s and %s", nameA, nameB),
			"Review both tools' configuration requirements",
			fmt.Sprintf("Configure %s to expose the interfaces %s expects", nameA, nameB),
			"Run an integration test covering the main workflow",
		}
	default:
		return []string{
			fmt.Sprintf("Install %s and %s in isolated environments first", nameA, nameB),
			"Audit both tools for conflicting dependencies and runtimes",
			"Build a thin adapter layer between the two tools",
			fmt.Sprintf("Integrate %s and %s incrementally, one workflow at a time", nameA, nameB),
			"Add regression tests before relying on the pairing",
		}
	}
}

func buildNotes(a, b catalog.Tool, sameCategory, sharedFrameworks, sharedLanguages, mention bool) string {
	parts := make([]string, 0, 4)
	if sameCategory {
		parts = append(parts, "same category")
	} else {
		parts = append(parts, "cross-category pairing")
	}
	if sharedFrameworks {
		parts = append(parts, "shared frameworks")
	}
	if sharedLanguages {
		parts = append(parts, "shared languages")
	}
	if mention {
		parts = append(parts, "documented integration path")
	}
	return fmt.Sprintf("%s + %s: %s", a.Name, b.Name, strings.Join(parts, ", "))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
