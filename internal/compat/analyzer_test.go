package compat

import (
	"context"
	"errors"
	"testing"

	"devtools-backend/internal/catalog"
)

func seedTool(t *testing.T, repo *catalog.MemoryRepo, tool catalog.Tool) {
	t.Helper()
	if err := repo.CreateTool(context.Background(), tool); err != nil {
		t.Fatalf("seed tool %s: %v", tool.Name, err)
	}
}

func TestAnalyzeVacuousSets(t *testing.T) {
	repo := catalog.NewMemoryRepo()
	analyzer := NewAnalyzer(repo, NewScorer())

	for _, ids := range [][]string{nil, {}, {"only-one"}, {"dup", "dup", " dup "}} {
		analysis, err := analyzer.Analyze(context.Background(), ids)
		if err != nil {
			t.Fatalf("Analyze(%v): %v", ids, err)
		}
		if analysis.HarmonyScore != 100 {
			t.Fatalf("expected vacuous harmony 100 for %v, got %d", ids, analysis.HarmonyScore)
		}
		if len(analysis.Pairs) != 0 || len(analysis.Conflicts) != 0 || len(analysis.Warnings) != 0 {
			t.Fatalf("expected no findings for %v", ids)
		}
	}
}

func TestAnalyzeUnknownTool(t *testing.T) {
	repo := catalog.NewMemoryRepo()
	analyzer := NewAnalyzer(repo, NewScorer())
	seedTool(t, repo, catalog.Tool{ID: "a", Name: "A", Category: "frontend"})

	_, err := analyzer.Analyze(context.Background(), []string{"a", "missing"})
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAnalyzePrefersPersistedScores(t *testing.T) {
	repo := catalog.NewMemoryRepo()
	analyzer := NewAnalyzer(repo, NewScorer())
	seedTool(t, repo, catalog.Tool{ID: "a", Name: "A", Category: "frontend"})
	seedTool(t, repo, catalog.Tool{ID: "b", Name: "B", Category: "backend"})

	persisted := catalog.Compatibility{
		ToolAID:  "a",
		ToolBID:  "b",
		Score:    42,
		Verified: true,
		Notes:    "curated pairing",
	}
	if err := repo.UpsertCompatibility(context.Background(), persisted); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	analysis, err := analyzer.Analyze(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(analysis.Pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(analysis.Pairs))
	}
	pair := analysis.Pairs[0]
	if pair.Score != 42 {
		t.Fatalf("expected persisted score 42, got %.1f", pair.Score)
	}
	if pair.Difficulty != DifficultyHard {
		t.Fatalf("expected derived difficulty hard, got %s", pair.Difficulty)
	}
	if !pair.VerifiedIntegration {
		t.Fatalf("expected persisted verified flag to carry over")
	}
	if len(analysis.Warnings) != 1 {
		t.Fatalf("expected 1 warning for score 42, got %d", len(analysis.Warnings))
	}
	if len(analysis.Conflicts) != 0 {
		t.Fatalf("expected no conflicts for score 42, got %d", len(analysis.Conflicts))
	}
}

func TestAnalyzeFallsBackToLiveScoring(t *testing.T) {
	repo := catalog.NewMemoryRepo()
	scorer := NewScorer()
	analyzer := NewAnalyzer(repo, scorer)

	a := catalog.Tool{ID: "a", Name: "A", Category: "frontend", Languages: []string{"TypeScript"}, MaturityScore: 70}
	b := catalog.Tool{ID: "b", Name: "B", Category: "backend", Languages: []string{"TypeScript"}, MaturityScore: 75}
	seedTool(t, repo, a)
	seedTool(t, repo, b)

	analysis, err := analyzer.Analyze(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	want := scorer.Score(a, b)
	if analysis.Pairs[0].Score != want.Score {
		t.Fatalf("expected live score %.1f, got %.1f", want.Score, analysis.Pairs[0].Score)
	}
}

func TestAnalyzeConflictsAndHarmony(t *testing.T) {
	repo := catalog.NewMemoryRepo()
	analyzer := NewAnalyzer(repo, NewScorer())
	seedTool(t, repo, catalog.Tool{ID: "a", Name: "A", Category: "frontend"})
	seedTool(t, repo, catalog.Tool{ID: "b", Name: "B", Category: "backend"})
	seedTool(t, repo, catalog.Tool{ID: "c", Name: "C", Category: "dev-env"})

	scores := map[[2]string]float64{
		{"a", "b"}: 30,
		{"a", "c"}: 55,
		{"b", "c"}: 90,
	}
	for pair, score := range scores {
		err := repo.UpsertCompatibility(context.Background(), catalog.Compatibility{
			ToolAID: pair[0],
			ToolBID: pair[1],
			Score:   score,
		})
		if err != nil {
			t.Fatalf("upsert %v: %v", pair, err)
		}
	}

	analysis, err := analyzer.Analyze(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(analysis.Pairs) != 3 {
		t.Fatalf("expected 3 pairs, got %d", len(analysis.Pairs))
	}
	// mean(30, 55, 90) = 58.33 -> 58
	if analysis.HarmonyScore != 58 {
		t.Fatalf("expected harmony 58, got %d", analysis.HarmonyScore)
	}
	if len(analysis.Conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(analysis.Conflicts))
	}
	if analysis.Conflicts[0].ToolA != "A" || analysis.Conflicts[0].ToolB != "B" {
		t.Fatalf("unexpected conflict pair: %+v", analysis.Conflicts[0])
	}
	if len(analysis.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(analysis.Warnings))
	}
	if len(analysis.Recommendations) != 0 {
		t.Fatalf("expected no recommendations in the middle band, got %v", analysis.Recommendations)
	}
}

func TestAnalyzeRecommendations(t *testing.T) {
	repo := catalog.NewMemoryRepo()
	analyzer := NewAnalyzer(repo, NewScorer())
	seedTool(t, repo, catalog.Tool{ID: "a", Name: "A", Category: "frontend"})
	seedTool(t, repo, catalog.Tool{ID: "b", Name: "B", Category: "backend"})

	tests := []struct {
		score     float64
		wantCount int
	}{
		{score: 90, wantCount: 1},
		{score: 45, wantCount: 2},
		{score: 65, wantCount: 0},
	}
	for _, tc := range tests {
		err := repo.UpsertCompatibility(context.Background(), catalog.Compatibility{
			ToolAID: "a", ToolBID: "b", Score: tc.score,
		})
		if err != nil {
			t.Fatalf("upsert: %v", err)
		}
		analysis, err := analyzer.Analyze(context.Background(), []string{"a", "b"})
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		if len(analysis.Recommendations) != tc.wantCount {
			t.Fatalf("score %.0f: expected %d recommendations, got %d", tc.score, tc.wantCount, len(analysis.Recommendations))
		}
	}
}
