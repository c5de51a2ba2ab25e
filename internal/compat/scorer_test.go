package compat

import (
	"testing"

	"devtools-backend/internal/catalog"
)

func TestScoreSymmetry(t *testing.T) {
	scorer := NewScorer()
	a := catalog.Tool{
		ID:            "tool-a",
		Name:          "Alpha",
		Category:      "frontend",
		Frameworks:    []string{"React"},
		Languages:     []string{"JavaScript", "TypeScript"},
		Features:      []string{"UI design"},
		MaturityScore: 80,
	}
	b := catalog.Tool{
		ID:                 "tool-b",
		Name:               "Beta",
		Category:           "backend",
		Frameworks:         []string{"Express"},
		Languages:          []string{"JavaScript"},
		Features:           []string{"Backend routing"},
		NativeIntegrations: []string{"Alpha"},
		MaturityScore:      70,
	}

	ab := scorer.Score(a, b)
	ba := scorer.Score(b, a)
	if ab.Score != ba.Score {
		t.Fatalf("expected symmetric scores, got %.1f and %.1f", ab.Score, ba.Score)
	}
	if ab.VerifiedIntegration != ba.VerifiedIntegration {
		t.Fatalf("expected symmetric verified flags")
	}
}

func TestScoreEmptyAttributes(t *testing.T) {
	scorer := NewScorer()
	a := catalog.Tool{ID: "a", Name: "Bare A"}
	b := catalog.Tool{ID: "b", Name: "Bare B"}

	got := scorer.Score(a, b)
	// Baseline 50, same (empty) category 7.5, full maturity bonus 10.
	if got.Score != 67.5 {
		t.Fatalf("expected 67.5 for attribute-free tools, got %.1f", got.Score)
	}
	if got.Difficulty != DifficultyMedium {
		t.Fatalf("expected medium difficulty, got %s", got.Difficulty)
	}
	if got.VerifiedIntegration {
		t.Fatalf("expected unverified pairing")
	}
	if len(got.Dependencies) != 0 {
		t.Fatalf("expected no shared dependencies, got %v", got.Dependencies)
	}
}

func TestScoreStaysWithinBounds(t *testing.T) {
	scorer := NewScorer()
	rich := catalog.Tool{
		ID:                   "rich-a",
		Name:                 "Rich A",
		Category:             "dev-env",
		Frameworks:           []string{"React", "Vue", "Angular"},
		Languages:            []string{"JavaScript", "TypeScript", "Go"},
		Features:             []string{"code generation", "ui design", "frontend", "testing", "monitoring"},
		NativeIntegrations:   []string{"Rich B", "GitHub", "Slack"},
		VerifiedIntegrations: []string{"VS Code"},
		MaturityScore:        90,
	}
	twin := rich
	twin.ID = "rich-b"
	twin.Name = "Rich B"
	twin.Features = []string{"debugging", "backend", "api", "deployment", "database"}

	got := scorer.Score(rich, twin)
	if got.Score < 0 || got.Score > 100 {
		t.Fatalf("score out of bounds: %.1f", got.Score)
	}
}

func TestDifficultyFor(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{score: 75, want: DifficultyEasy},
		{score: 92.3, want: DifficultyEasy},
		{score: 74.9, want: DifficultyMedium},
		{score: 55, want: DifficultyMedium},
		{score: 54.9, want: DifficultyHard},
		{score: 0, want: DifficultyHard},
	}
	for _, tc := range tests {
		if got := DifficultyFor(tc.score); got != tc.want {
			t.Fatalf("DifficultyFor(%.1f) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestScoreFrontendBackendPairing(t *testing.T) {
	scorer := NewScorer()
	react := catalog.Tool{
		ID:            "react",
		Name:          "React",
		Category:      "development-frameworks",
		Frameworks:    []string{"React"},
		Languages:     []string{"JavaScript", "TypeScript"},
		Features:      []string{"UI design", "State management"},
		MaturityScore: 90,
	}
	express := catalog.Tool{
		ID:                   "express",
		Name:                 "Express",
		Category:             "development-frameworks",
		Frameworks:           []string{"Express"},
		Languages:            []string{"JavaScript"},
		Features:             []string{"Backend routing", "Middleware"},
		VerifiedIntegrations: []string{"React"},
		MaturityScore:        85,
	}

	got := scorer.Score(react, express)
	// 50 baseline + 7.5 category + 2.25 languages + 10 documented
	// integration + 2.25 complementary features + 5 maturity bonus.
	if got.Score != 77.0 {
		t.Fatalf("expected 77.0, got %.1f", got.Score)
	}
	if got.Difficulty != DifficultyEasy {
		t.Fatalf("expected easy difficulty, got %s", got.Difficulty)
	}
	if !got.VerifiedIntegration {
		t.Fatalf("expected verified integration")
	}
	if len(got.Dependencies) != 1 || got.Dependencies[0] != "javascript-runtime" {
		t.Fatalf("unexpected dependencies: %v", got.Dependencies)
	}
	if len(got.SetupSteps) != 3 {
		t.Fatalf("expected 3 setup steps for an easy pairing, got %d", len(got.SetupSteps))
	}
}

func TestDuplicateFeaturesNeverGoNegative(t *testing.T) {
	scorer := NewScorer()
	base := catalog.Tool{
		ID:            "a",
		Name:          "A",
		Category:      "testing",
		MaturityScore: 50,
	}
	other := catalog.Tool{
		ID:            "b",
		Name:          "B",
		Category:      "testing",
		MaturityScore: 50,
	}

	plain := scorer.Score(base, other)

	base.Features = []string{"Testing", "Coverage reports"}
	other.Features = []string{"Testing", "Coverage reports"}
	duplicated := scorer.Score(base, other)

	if duplicated.Score != plain.Score {
		t.Fatalf("duplicate features should floor at zero contribution: %.1f vs %.1f", duplicated.Score, plain.Score)
	}
}

func TestSharedDependenciesCapped(t *testing.T) {
	scorer := NewScorer()
	a := catalog.Tool{
		ID:         "a",
		Name:       "A",
		Category:   "dev-env",
		Frameworks: []string{"React", "Vue", "Angular", "Svelte"},
		Languages:  []string{"JavaScript", "TypeScript"},
	}
	b := a
	b.ID = "b"
	b.Name = "B"

	got := scorer.Score(a, b)
	if len(got.Dependencies) != 5 {
		t.Fatalf("expected dependency list capped at 5, got %d: %v", len(got.Dependencies), got.Dependencies)
	}
}
