package compat

// Difficulty tiers for integrating a pair of tools.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Score is a symmetric pairwise compatibility result in [0,100].
type Score struct {
	ToolAID             string
	ToolBID             string
	Score               float64
	Difficulty          string
	Notes               string
	VerifiedIntegration bool
	SetupSteps          []string
	Dependencies        []string
}

// PairIssue flags a tool pair whose score fell below a floor.
type PairIssue struct {
	ToolA   string
	ToolB   string
	Score   float64
	Message string
}

// Analysis aggregates pairwise scores for a candidate stack. HarmonyScore is
// the mean pairwise score rounded to a whole percent; sets of fewer than two
// tools are vacuously harmonious at 100.
type Analysis struct {
	ToolIDs         []string
	HarmonyScore    int
	Pairs           []Score
	Conflicts       []PairIssue
	Warnings        []PairIssue
	Recommendations []string
}
