package catalog

import "time"

// Tool is a catalog entry for a developer tool. The engine treats tools as
// immutable; only the catalog layer mutates them.
type Tool struct {
	ID                   string
	Name                 string
	Category             string // primary category ID
	Description          string
	URL                  string
	Frameworks           []string
	Languages            []string
	Features             []string
	NativeIntegrations   []string
	VerifiedIntegrations []string
	NotableStrengths     []string
	KnownLimitations     []string
	MaturityScore        int // 0-100
	PopularityScore      int // 0-100
	Pricing              string
	Notes                string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Integrations returns the combined native and verified integration entries.
func (t Tool) Integrations() []string {
	out := make([]string, 0, len(t.NativeIntegrations)+len(t.VerifiedIntegrations))
	out = append(out, t.NativeIntegrations...)
	out = append(out, t.VerifiedIntegrations...)
	return out
}

// Category groups tools by what they do.
type Category struct {
	ID          string
	Name        string
	Description string
}

// Compatibility is a persisted pairwise compatibility record. The pair is
// unordered; implementations store and look it up regardless of ID order.
type Compatibility struct {
	ToolAID      string
	ToolBID      string
	Score        float64
	Difficulty   string
	Notes        string
	Verified     bool
	SetupSteps   []string
	Dependencies []string
	UpdatedAt    time.Time
}

// CategoryCount is a per-category tool tally for stats.
type CategoryCount struct {
	Category string
	Count    int
}
