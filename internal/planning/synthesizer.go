// Package planning turns a profile and a matched provider into a
// constraint-respecting multi-week workout plan drawn from the exercise
// catalog.
package planning

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/networkout/networkout/internal/catalog"
	"github.com/networkout/networkout/internal/intake"
)

const (
	// perGoalExercises is how many catalog entries each goal contributes
	// before filtering.
	perGoalExercises = 3
	// minExercises is the floor guaranteed by backfilling.
	minExercises = 6
	// maxExercises is the hard ceiling after truncation.
	maxExercises = 8
)

// chineseNames is the fixed name-translation table. Entries absent here
// keep their original name.
var chineseNames = map[string]string{
	"Bodyweight Squats":    "深蹲",
	"Modified Push-ups":    "改良式俯卧撑",
	"Plank Hold":           "平板支撑",
	"Lunges":               "弓步蹲",
	"Mountain Climbers":    "登山式",
	"Wall Sit":             "靠墙静蹲",
	"Resistance Band Rows": "弹力带划船",
	"Yoga Flow Sequence":   "瑜伽流动序列",
	"Dumbbell Curls":       "哑铃弯举",
	"Glute Bridges":        "臀桥",
}

// Synthesizer builds plans from the injected, read-only exercise catalog.
type Synthesizer struct {
	exercises *catalog.Exercises
	logger    *zap.Logger
}

func NewSynthesizer(exercises *catalog.Exercises, logger *zap.Logger) *Synthesizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Synthesizer{exercises: exercises, logger: logger}
}

// Synthesize builds the planning stage result. Any internal fault yields a
// fixed minimal plan; the error never propagates.
func (s *Synthesizer) Synthesize(profile *intake.Profile, provider *catalog.Provider) (result *Result) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("plan synthesis fault, using minimal plan", zap.Any("cause", r))
			result = fallbackResult()
		}
	}()

	plan := s.buildPlan(profile, provider)

	s.logger.Debug("plan synthesized",
		zap.Int("exercises", len(plan.Exercises)),
		zap.String("duration", plan.Overview.Duration),
	)

	return &Result{
		Plan: plan,
		Insights: []string{
			fmt.Sprintf("Generated %d-exercise routine tailored to your goals", len(plan.Exercises)),
			fmt.Sprintf("Adapted for %s with %s equipment", profile.Constraints.Space, strings.Join(profile.Constraints.Equipment, "/")),
			fmt.Sprintf("Includes cultural considerations for %s context", profile.Demographics.CulturalContext),
		},
		CulturalNotes: planCulturalNotes(profile),
		Handoff: fmt.Sprintf("Complete workout plan ready! %s program with %s schedule, culturally adapted for %s preferences.",
			plan.Overview.Duration, plan.Overview.Frequency, profile.Demographics.CulturalContext),
	}
}

func (s *Synthesizer) buildPlan(profile *intake.Profile, provider *catalog.Provider) *Plan {
	weeks := planWeeks(profile.Fitness.Level, profile.Fitness.Goals)
	progression := "moderate"
	if profile.Fitness.Level == intake.LevelBeginner {
		progression = "gradual"
	}

	overview := Overview{
		Duration:      fmt.Sprintf("%d weeks", weeks),
		DurationWeeks: weeks,
		Frequency:     planFrequency(profile.Fitness.Level),
		SessionLength: sessionLength(profile.Constraints.TimeAvailable),
		Progression:   progression,
		Focus:         strings.Join(profile.Fitness.Goals, " + "),
	}

	var practice *LanguagePractice
	if profile.Demographics.Language == intake.LanguageChinese {
		practice = languagePracticeKit()
	}

	return &Plan{
		Overview:         overview,
		Exercises:        s.selectExercises(profile),
		Adaptations:      adaptations(profile),
		LanguagePractice: practice,
		Progression:      progressionPhases(profile.Fitness.Level, weeks),
		NutritionNotes:   nutritionNotes(profile),
		Motivation:       motivationalApproach(profile.Demographics.Language),
	}
}

// planWeeks derives the program length: beginners get a fixed short
// program, otherwise the first matching goal decides.
func planWeeks(level intake.ExperienceLevel, goals []string) int {
	if level == intake.LevelBeginner {
		return 8
	}
	for _, goal := range goals {
		switch goal {
		case intake.GoalWeightLoss:
			return 12
		case intake.GoalMuscleBuilding:
			return 16
		}
	}
	return 10
}

func planFrequency(level intake.ExperienceLevel) string {
	if level == intake.LevelBeginner {
		return "3x per week"
	}
	return "4x per week"
}

func sessionLength(available intake.TimeAvailable) string {
	if available == intake.Time30Min {
		return "30 minutes"
	}
	return "45 minutes"
}

// selectExercises picks up to perGoalExercises entries per goal in goal
// order, filters by equipment and space, backfills with no-equipment
// apartment-friendly entries up to minExercises, and truncates to
// maxExercises. Catalog order is preserved throughout; duplicates across
// goals are not collapsed before filtering.
func (s *Synthesizer) selectExercises(profile *intake.Profile) []*PlannedExercise {
	var picked []*catalog.Exercise
	for _, goal := range profile.Fitness.Goals {
		picked = append(picked, s.exercises.ByGoal(goal).First(perGoalExercises).Items...)
	}

	var filtered []*catalog.Exercise
	for _, ex := range picked {
		if !ex.RequiresOnly(profile.Constraints.Equipment) {
			continue
		}
		if profile.Constraints.Space == intake.SpaceSmallApartment && !ex.ApartmentFriendly {
			continue
		}
		filtered = append(filtered, ex)
	}

	if len(filtered) < minExercises {
		for _, ex := range s.exercises.NoEquipment().Items {
			if len(filtered) >= minExercises {
				break
			}
			filtered = append(filtered, ex)
		}
	}
	if len(filtered) > maxExercises {
		filtered = filtered[:maxExercises]
	}

	out := make([]*PlannedExercise, 0, len(filtered))
	for _, ex := range filtered {
		out = append(out, annotate(ex, profile))
	}
	return out
}

func annotate(ex *catalog.Exercise, profile *intake.Profile) *PlannedExercise {
	planned := &PlannedExercise{
		Name:         ex.Name,
		Reps:         ex.Reps,
		Difficulty:   ex.Difficulty,
		Muscles:      ex.Muscles,
		CulturalNote: exerciseNote(ex, profile),
	}
	if profile.Demographics.Language == intake.LanguageChinese {
		if name, ok := chineseNames[ex.Name]; ok {
			planned.LocalizedName = name
		}
	}
	return planned
}

func exerciseNote(ex *catalog.Exercise, profile *intake.Profile) string {
	if profile.Demographics.Language == intake.LanguageChinese {
		if ex.Quiet {
			return "适合公寓环境，不会打扰邻居 (Apartment-friendly, won't disturb neighbors)"
		}
		return "注意控制音量，考虑邻居感受 (Control noise level, consider neighbors)"
	}
	if ex.ApartmentFriendly {
		return "Suitable for home environment"
	}
	return "May require more space"
}

func adaptations(profile *intake.Profile) []string {
	var notes []string
	if profile.Demographics.Language == intake.LanguageChinese {
		notes = append(notes,
			"All exercises designed for apartment living with noise consideration",
			"Instructions provided in both English and Chinese",
			"Respects Chinese cultural preferences for discrete, non-disruptive exercise",
		)
		if profile.Constraints.Space == intake.SpaceSmallApartment {
			notes = append(notes, "Optimized for typical Chinese apartment space constraints")
		}
	}
	if profile.HasEquipment("none") {
		notes = append(notes, "No equipment needed - perfect for minimalist approach")
	}
	if profile.Constraints.Budget == intake.BudgetLow {
		notes = append(notes, "Cost-effective routine requiring no gym membership or expensive equipment")
	}
	return notes
}

func languagePracticeKit() *LanguagePractice {
	return &LanguagePractice{
		WeeklyVocabulary: []string{
			"form (姿势)", "repetition (重复)", "set (组)", "rest (休息)",
			"strength (力量)", "endurance (耐力)", "balance (平衡)",
		},
		ExercisePhrases: []string{
			"Good form! 姿势很好！",
			"Take a rest. 休息一下。",
			"You're getting stronger! 你变强了！",
			"Focus on your breathing. 专注呼吸。",
		},
		ConversationStarters: []string{
			"How did that exercise feel? 这个动作感觉怎么样？",
			"Are you ready for the next set? 准备好下一组了吗？",
			"What's your energy level today? 今天精力如何？",
		},
	}
}

// progressionPhases returns the three beginner phases with boundaries
// derived from the total week count, or an empty list for other levels.
func progressionPhases(level intake.ExperienceLevel, weeks int) []Phase {
	if level != intake.LevelBeginner {
		return nil
	}
	mid := weeks / 2
	return []Phase{
		{
			Phase:       "Weeks 1-2",
			Focus:       "Form and Habit Building",
			Progression: "Master basic movements, establish routine",
		},
		{
			Phase:       fmt.Sprintf("Weeks 3-%d", mid),
			Focus:       "Strength Foundation",
			Progression: "Increase repetitions, add complexity",
		},
		{
			Phase:       fmt.Sprintf("Weeks %d-%d", mid+1, weeks),
			Focus:       "Goal Optimization",
			Progression: "Intensify based on primary goals",
		},
	}
}

func nutritionNotes(profile *intake.Profile) []string {
	if profile.Demographics.Language != intake.LanguageChinese {
		return []string{"Maintain balanced nutrition to support your fitness goals"}
	}

	notes := []string{"考虑中式饮食习惯，平衡蛋白质摄入 (Consider Chinese dietary habits, balance protein intake)"}
	if profile.HasGoal(intake.GoalWeightLoss) {
		notes = append(notes, "减少米饭分量，增加蔬菜 (Reduce rice portions, increase vegetables)")
	}
	if profile.HasGoal(intake.GoalMuscleBuilding) {
		notes = append(notes, "确保充足蛋白质：豆腐、鸡蛋、瘦肉 (Ensure adequate protein: tofu, eggs, lean meat)")
	}
	return notes
}

func motivationalApproach(language intake.Language) Motivation {
	if language == intake.LanguageChinese {
		return Motivation{
			Style:         "Supportive and encouraging with cultural sensitivity",
			Communication: "Patient guidance with English practice opportunities",
			Feedback:      "Positive reinforcement respecting Chinese communication preferences",
		}
	}
	return Motivation{
		Style:         "Direct and encouraging",
		Communication: "Clear instruction with motivational support",
		Feedback:      "Regular progress check-ins and goal adjustments",
	}
}

func planCulturalNotes(profile *intake.Profile) string {
	if profile.Demographics.Language == intake.LanguageChinese {
		return "Workout plan respects Chinese cultural norms: quiet exercises for apartment living, gradual progression matching Chinese preference for steady improvement, and integrated English learning opportunities during exercise sessions."
	}
	return "Workout plan adapted to personal preferences with emphasis on sustainable progress and goal achievement."
}

// fallbackResult is the fixed minimal plan used when synthesis faults.
func fallbackResult() *Result {
	return &Result{
		Plan: &Plan{
			Overview: Overview{
				Duration:      "8 weeks",
				DurationWeeks: 8,
				Frequency:     "3x per week",
				SessionLength: "30 minutes",
				Progression:   "gradual",
				Focus:         "general fitness",
			},
			Exercises: []*PlannedExercise{
				{
					Name:          "Bodyweight Squats",
					LocalizedName: "深蹲",
					Reps:          "3 sets x 12 reps",
					CulturalNote:  "Apartment-friendly, quiet exercise",
				},
				{
					Name:          "Modified Push-ups",
					LocalizedName: "改良式俯卧撑",
					Reps:          "3 sets x 8 reps",
					CulturalNote:  "Can be done silently",
				},
			},
			Adaptations: []string{"Suitable for apartment living", "No equipment required"},
		},
		Insights:      []string{"Basic workout plan generated", "Suitable for beginners", "Culturally adapted"},
		CulturalNotes: "Plan designed with cultural sensitivity and space constraints in mind.",
		Handoff:       "Fallback workout plan ready for immediate use.",
		Fallback:      true,
	}
}
