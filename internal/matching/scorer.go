// Package matching ranks catalog providers against a client profile using a
// fixed-weight rubric. Scoring is deterministic and fully auditable: every
// total decomposes into named sub-score contributions.
package matching

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/networkout/networkout/internal/catalog"
	"github.com/networkout/networkout/internal/intake"
)

// Contribution is one capped, independently computed component of a score.
type Contribution struct {
	Criterion string `json:"criterion"`
	Points    int    `json:"points"`
	Max       int    `json:"max"`
}

// ScoredCandidate pairs a provider with its compatibility score for one
// request. Candidates are ephemeral and rebuilt on every run.
type ScoredCandidate struct {
	Provider    *catalog.Provider `json:"provider"`
	Score       int               `json:"score"`
	Breakdown   []Contribution    `json:"breakdown"`
	Reasons     []string          `json:"reasons"`
	CulturalFit string            `json:"cultural_fit"`
}

// Result is the matching stage payload handed to the display layer.
type Result struct {
	Recommended  *ScoredCandidate   `json:"recommended"`
	Reasoning    string             `json:"reasoning"`
	Alternatives []*ScoredCandidate `json:"alternatives"`
	Ranked       []*ScoredCandidate `json:"ranked"`

	Insights      []string `json:"insights"`
	CulturalNotes string   `json:"cultural_notes"`
	Handoff       string   `json:"handoff"`
	Fallback      bool     `json:"fallback,omitempty"`
}

// Scorer ranks providers for a profile. The catalog is injected and
// read-only; a Scorer is safe for concurrent use.
type Scorer struct {
	providers *catalog.Providers
	weights   Weights
	logger    *zap.Logger
}

func NewScorer(providers *catalog.Providers, weights Weights, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{providers: providers, weights: weights, logger: logger}
}

// Score returns one candidate per catalog entry, ordered by score
// descending. Ties keep catalog order.
func (s *Scorer) Score(profile *intake.Profile) []*ScoredCandidate {
	candidates := make([]*ScoredCandidate, 0, s.providers.Len())
	for _, provider := range s.providers.Items {
		total, breakdown := s.scoreOne(profile, provider)
		candidates = append(candidates, &ScoredCandidate{
			Provider:    provider,
			Score:       total,
			Breakdown:   breakdown,
			Reasons:     s.reasons(profile, provider),
			CulturalFit: culturalFitLabel(profile, provider),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates
}

// Match runs the full matching stage: rank the catalog, pick the top
// candidate, and build the display envelope. Any internal fault falls back
// to the designated safe-default provider so the pipeline always has a
// recommendation.
func (s *Scorer) Match(profile *intake.Profile) (result *Result) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("matching fault, using safe default provider", zap.Any("cause", r))
			result = s.fallbackResult()
		}
	}()

	ranked := s.Score(profile)
	if len(ranked) == 0 {
		return s.fallbackResult()
	}
	top := ranked[0]

	alternatives := ranked[1:]
	if len(alternatives) > 2 {
		alternatives = alternatives[:2]
	}

	s.logger.Debug("matching complete",
		zap.String("provider_id", top.Provider.ID),
		zap.Int("score", top.Score),
		zap.Int("candidates", len(ranked)),
	)

	return &Result{
		Recommended:  top,
		Reasoning:    s.reasoning(profile, top),
		Alternatives: alternatives,
		Ranked:       ranked,
		Insights: []string{
			fmt.Sprintf("Found %d compatible trainers based on your profile", len(ranked)),
			fmt.Sprintf("Top match has %d%% compatibility", top.Score),
			fmt.Sprintf("Cultural compatibility: %s", top.CulturalFit),
		},
		CulturalNotes: culturalNotes(profile, top.Provider),
		Handoff: fmt.Sprintf("Trainer selected: %s (%d%% match). Ready for workout planning with cultural considerations: %s.",
			top.Provider.Name, top.Score, profile.Demographics.CulturalContext),
	}
}

func (s *Scorer) scoreOne(profile *intake.Profile, provider *catalog.Provider) (int, []Contribution) {
	w := s.weights
	breakdown := []Contribution{
		{"goal_alignment", s.goalScore(profile, provider), w.GoalAlignment},
		{"experience_match", s.experienceScore(profile, provider), w.ExperienceFull},
		{"cultural_compatibility", s.culturalScore(profile, provider), w.CulturalMax},
		{"language_compatibility", s.languageScore(profile, provider), w.LanguageMax},
		{"constraint_fit", s.constraintScore(profile, provider), w.ConstraintMax},
		{"budget_fit", s.budgetScore(profile, provider), w.BudgetMax},
	}

	total := 0
	for _, c := range breakdown {
		total += c.Points
	}
	if total > w.TotalCap {
		total = w.TotalCap
	}
	return total, breakdown
}

func (s *Scorer) goalScore(profile *intake.Profile, provider *catalog.Provider) int {
	for _, goal := range profile.Fitness.Goals {
		if provider.HasSpecialty(goal) {
			return s.weights.GoalAlignment
		}
	}
	return 0
}

// levelKeywords maps a client level to the provider tags that indicate a
// level-appropriate coaching focus.
var levelKeywords = map[intake.ExperienceLevel][]string{
	intake.LevelBeginner:     {"beginner_friendly", "beginners"},
	intake.LevelIntermediate: {"intermediate_advanced", "intermediate"},
	intake.LevelAdvanced:     {"intermediate_advanced", "advanced"},
}

func (s *Scorer) experienceScore(profile *intake.Profile, provider *catalog.Provider) int {
	for _, keyword := range levelKeywords[profile.Fitness.Level] {
		if provider.HasSpecialty(keyword) || provider.HasDemographic(keyword) {
			return s.weights.ExperienceFull
		}
	}
	return s.weights.ExperiencePartial
}

func (s *Scorer) culturalScore(profile *intake.Profile, provider *catalog.Provider) int {
	w := s.weights
	if profile.Demographics.CulturalContext != intake.ContextChineseMainland {
		return w.CulturalDefault
	}

	score := 0
	switch provider.CulturalExperience {
	case catalog.CulturalExperienceNative:
		score = w.CulturalNative
	case catalog.CulturalExperienceExtensive:
		score = w.CulturalExtensive
	case catalog.CulturalExperienceModerate:
		score = w.CulturalModerate
	case catalog.CulturalExperienceLimited:
		score = w.CulturalLimited
	}
	if len(provider.CulturalAdaptations) > 0 {
		score += w.CulturalAdaptationBonus
	}
	if score > w.CulturalMax {
		score = w.CulturalMax
	}
	return score
}

func (s *Scorer) languageScore(profile *intake.Profile, provider *catalog.Provider) int {
	w := s.weights
	if profile.Demographics.Language != intake.LanguageChinese {
		return w.LanguageSpoken
	}

	score := w.LanguageMinimal
	switch {
	case provider.SpeaksLanguage("mandarin") || provider.SpeaksLanguage("chinese"):
		score = w.LanguageSpoken
	case provider.LanguageLearningSupport:
		score = w.LanguageLearningSupport
	}

	if profile.Cultural.LanguageLearningInterest && provider.Ratings.EnglishTeaching > w.TeachingRatingThreshold {
		score += w.TeachingBonus
	}
	if score > w.LanguageMax {
		score = w.LanguageMax
	}
	return score
}

func (s *Scorer) constraintScore(profile *intake.Profile, provider *catalog.Provider) int {
	score := 0
	if profile.Constraints.Space == intake.SpaceSmallApartment {
		if provider.HasSpecialty("apartment_workouts") || provider.HasSpecialty("home_fitness") {
			score += s.weights.SpaceBonus
		}
	}
	if profile.HasEquipment("none") {
		if provider.HasSpecialty("minimal_equipment") || provider.HasSpecialty("home_fitness") {
			score += s.weights.EquipmentBonus
		}
	}
	return score
}

func (s *Scorer) budgetScore(profile *intake.Profile, provider *catalog.Provider) int {
	w := s.weights
	score := w.BudgetDefault
	if tiers, ok := budgetTable[string(profile.Constraints.Budget)]; ok {
		if points, ok := tiers[provider.Pricing.Tier]; ok {
			score = points
		}
	}
	if profile.Constraints.Budget == intake.BudgetLow && provider.Pricing.StudentDiscount {
		score += w.StudentDiscountBonus
	}
	if score > w.BudgetMax {
		score = w.BudgetMax
	}
	return score
}

// reasons builds the named reason list for a candidate. Each phrase is
// included only when its underlying condition holds, independently of the
// numeric score.
func (s *Scorer) reasons(profile *intake.Profile, provider *catalog.Provider) []string {
	var reasons []string

	if matched := matchingGoals(profile, provider); len(matched) > 0 {
		reasons = append(reasons, fmt.Sprintf("Specializes in %s", strings.Join(matched, " and ")))
	}

	if profile.Demographics.CulturalContext == intake.ContextChineseMainland {
		switch provider.CulturalExperience {
		case catalog.CulturalExperienceNative:
			reasons = append(reasons, "Native bicultural understanding")
		case catalog.CulturalExperienceExtensive:
			reasons = append(reasons, "Extensive experience with Chinese clients")
		}
		if provider.SpeaksLanguage("mandarin") {
			reasons = append(reasons, "Speaks Mandarin")
		}
	}

	if profile.Fitness.Level == intake.LevelBeginner && provider.HasSpecialty("beginner_friendly") {
		reasons = append(reasons, "Patient with beginners")
	}

	if profile.Constraints.Space == intake.SpaceSmallApartment && provider.HasSpecialty("apartment_workouts") {
		reasons = append(reasons, "Apartment-friendly workouts")
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "Good overall compatibility")
	}
	return reasons
}

// reasoning builds the multi-sentence narrative for the top candidate.
func (s *Scorer) reasoning(profile *intake.Profile, top *ScoredCandidate) string {
	provider := top.Provider
	sentences := []string{fmt.Sprintf("%s is an ideal match because:", provider.Name)}

	if profile.Demographics.CulturalContext == intake.ContextChineseMainland {
		switch provider.CulturalExperience {
		case catalog.CulturalExperienceNative:
			sentences = append(sentences, "They have native bicultural understanding and can bridge Chinese and American fitness approaches perfectly.")
		case catalog.CulturalExperienceExtensive:
			sentences = append(sentences, "They have extensive experience working with Chinese clients and understand cultural nuances.")
		}
	}

	if matched := matchingGoals(profile, provider); len(matched) > 0 {
		sentences = append(sentences, fmt.Sprintf("Their specialties in %s align perfectly with your goals.", strings.Join(matched, " and ")))
	}

	if profile.Constraints.Space == intake.SpaceSmallApartment && provider.HasSpecialty("apartment_workouts") {
		sentences = append(sentences, "They specialize in apartment-friendly workouts that work within your space constraints.")
	}

	if profile.Cultural.LanguageLearningInterest && provider.Ratings.EnglishTeaching > s.weights.TeachingRatingThreshold {
		sentences = append(sentences, "They can help you practice English while working out, supporting your language learning goals.")
	}

	return strings.Join(sentences, " ")
}

func matchingGoals(profile *intake.Profile, provider *catalog.Provider) []string {
	var matched []string
	for _, goal := range profile.Fitness.Goals {
		if provider.HasSpecialty(goal) {
			matched = append(matched, goal)
		}
	}
	return matched
}

// culturalFitLabel derives the display label from the provider's
// cultural-experience ordinal alone.
func culturalFitLabel(profile *intake.Profile, provider *catalog.Provider) string {
	if profile.Demographics.CulturalContext != intake.ContextChineseMainland {
		return "Good"
	}
	switch provider.CulturalExperience {
	case catalog.CulturalExperienceNative:
		return "Excellent"
	case catalog.CulturalExperienceExtensive:
		return "Very Good"
	case catalog.CulturalExperienceModerate:
		return "Good"
	default:
		return "Fair"
	}
}

func culturalNotes(profile *intake.Profile, provider *catalog.Provider) string {
	if profile.Demographics.CulturalContext == intake.ContextChineseMainland {
		return fmt.Sprintf("%s understands Chinese cultural preferences for supportive coaching, apartment living constraints, and can facilitate English practice during sessions.", provider.Name)
	}
	return fmt.Sprintf("%s will adapt their coaching style to your personal preferences and cultural background.", provider.Name)
}

// fallbackResult wraps the catalog's safe-default provider with a fixed
// score and canned reasoning.
func (s *Scorer) fallbackResult() *Result {
	provider := s.providers.SafeDefault()
	candidate := &ScoredCandidate{
		Provider:    provider,
		Score:       s.weights.FallbackScore,
		Reasons:     []string{"Excellent all-around trainer with cultural sensitivity and beginner-friendly approach."},
		CulturalFit: "Good",
	}
	name := "the default trainer"
	if provider != nil {
		name = provider.Name
	}
	return &Result{
		Recommended: candidate,
		Reasoning:   "Excellent all-around trainer with cultural sensitivity and beginner-friendly approach.",
		Ranked:      []*ScoredCandidate{candidate},
		Insights: []string{
			"Using fallback matching due to processing error",
			"Selected trainer has excellent ratings",
			"Cultural compatibility verified",
		},
		CulturalNotes: "Trainer has experience with diverse cultural backgrounds and adaptive coaching methods.",
		Handoff:       fmt.Sprintf("Fallback trainer selected: %s. Ready for workout planning.", name),
		Fallback:      true,
	}
}
