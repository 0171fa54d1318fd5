package matching

// Weights holds every point value and threshold of the compatibility
// rubric. The defaults are empirically chosen and deliberately preserved;
// they can be overridden through configuration but are never re-tuned in
// code. Each criterion is capped independently and the total is clamped
// to TotalCap.
type Weights struct {
	// Goal alignment: all or nothing.
	GoalAlignment int `mapstructure:"goal-alignment"`

	// Experience match: full credit when the provider targets the client's
	// level, partial credit otherwise.
	ExperienceFull    int `mapstructure:"experience-full"`
	ExperiencePartial int `mapstructure:"experience-partial"`

	// Cultural compatibility, graded by the provider's cultural-experience
	// ordinal. CulturalDefault applies when no special context is required.
	CulturalMax             int `mapstructure:"cultural-max"`
	CulturalNative          int `mapstructure:"cultural-native"`
	CulturalExtensive       int `mapstructure:"cultural-extensive"`
	CulturalModerate        int `mapstructure:"cultural-moderate"`
	CulturalLimited         int `mapstructure:"cultural-limited"`
	CulturalAdaptationBonus int `mapstructure:"cultural-adaptation-bonus"`
	CulturalDefault         int `mapstructure:"cultural-default"`

	// Language compatibility.
	LanguageMax             int     `mapstructure:"language-max"`
	LanguageSpoken          int     `mapstructure:"language-spoken"`
	LanguageLearningSupport int     `mapstructure:"language-learning-support"`
	LanguageMinimal         int     `mapstructure:"language-minimal"`
	TeachingBonus           int     `mapstructure:"teaching-bonus"`
	TeachingRatingThreshold float64 `mapstructure:"teaching-rating-threshold"`

	// Constraint fit.
	ConstraintMax  int `mapstructure:"constraint-max"`
	SpaceBonus     int `mapstructure:"space-bonus"`
	EquipmentBonus int `mapstructure:"equipment-bonus"`

	// Budget fit.
	BudgetMax            int `mapstructure:"budget-max"`
	BudgetDefault        int `mapstructure:"budget-default"`
	StudentDiscountBonus int `mapstructure:"student-discount-bonus"`

	TotalCap      int `mapstructure:"total-cap"`
	FallbackScore int `mapstructure:"fallback-score"`
}

// DefaultWeights returns the rubric used in production.
func DefaultWeights() Weights {
	return Weights{
		GoalAlignment: 25,

		ExperienceFull:    20,
		ExperiencePartial: 10,

		CulturalMax:             20,
		CulturalNative:          20,
		CulturalExtensive:       15,
		CulturalModerate:        10,
		CulturalLimited:         5,
		CulturalAdaptationBonus: 5,
		CulturalDefault:         15,

		LanguageMax:             15,
		LanguageSpoken:          15,
		LanguageLearningSupport: 10,
		LanguageMinimal:         5,
		TeachingBonus:           5,
		TeachingRatingThreshold: 4.0,

		ConstraintMax:  10,
		SpaceBonus:     5,
		EquipmentBonus: 5,

		BudgetMax:            10,
		BudgetDefault:        5,
		StudentDiscountBonus: 2,

		TotalCap:      100,
		FallbackScore: 85,
	}
}

// budgetTable maps (client budget, provider pricing tier) to points.
var budgetTable = map[string]map[string]int{
	"low":      {"budget_friendly": 10, "moderate": 5, "premium": 0},
	"moderate": {"budget_friendly": 10, "moderate": 10, "premium": 5},
	"high":     {"budget_friendly": 10, "moderate": 10, "premium": 10},
}
