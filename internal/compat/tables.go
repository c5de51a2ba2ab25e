package compat

// Tables holds the tunable scoring configuration. The numeric weights and
// sub-ranges are hand-authored heuristics carried over from the catalog's
// original scoring rules; treat them as data to tune, not business rules.
type Tables struct {
	Baseline float64

	CategoryWeight    float64
	SameCategoryRaw   float64
	CrossCategoryRaw  float64
	FrameworkWeight   float64
	FrameworkRawMax   float64
	LanguageWeight    float64
	LanguageRawMax    float64
	IntegrationWeight float64
	MentionRaw        float64
	SharedEntryRawMax float64
	FeatureWeight     float64
	FeaturePairRaw    float64
	DuplicatePenalty  float64
	MaturityBonusMax  float64

	// ComplementaryFeatures rewards tools doing different-but-related jobs.
	// A pair matches when one tool has a feature containing the first
	// keyword and the other a feature containing the second, in either
	// direction.
	ComplementaryFeatures [][2]string

	VerifiedThreshold float64
	MaxDependencies   int
}

// DefaultTables returns the stock scoring configuration.
func DefaultTables() Tables {
	return Tables{
		Baseline: 50,

		CategoryWeight:    0.25,
		SameCategoryRaw:   30,
		CrossCategoryRaw:  10,
		FrameworkWeight:   0.20,
		FrameworkRawMax:   40,
		LanguageWeight:    0.15,
		LanguageRawMax:    30,
		IntegrationWeight: 0.20,
		MentionRaw:        50,
		SharedEntryRawMax: 35,
		FeatureWeight:     0.15,
		FeaturePairRaw:    15,
		DuplicatePenalty:  5,
		MaturityBonusMax:  10,

		ComplementaryFeatures: [][2]string{
			{"code generation", "debugging"},
			{"code generation", "code review"},
			{"ui design", "backend"},
			{"ui design", "api"},
			{"frontend", "backend"},
			{"database", "api"},
			{"testing", "deployment"},
			{"monitoring", "deployment"},
			{"autocomplete", "refactoring"},
			{"prototyping", "hosting"},
		},

		VerifiedThreshold: 30,
		MaxDependencies:   5,
	}
}

// CommonFeatureKeywords feeds search suggestions; it mirrors the feature
// vocabulary used by the complementary-feature table.
var CommonFeatureKeywords = []string{
	"code generation",
	"autocomplete",
	"debugging",
	"code review",
	"testing",
	"refactoring",
	"ui design",
	"deployment",
	"monitoring",
	"database",
}
