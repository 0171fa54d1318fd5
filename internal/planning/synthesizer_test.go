package planning

import (
	"testing"

	"github.com/networkout/networkout/internal/catalog"
	"github.com/networkout/networkout/internal/intake"
)

func loadExercises(t *testing.T) *catalog.Exercises {
	t.Helper()
	exercises, err := catalog.LoadExercises()
	if err != nil {
		t.Fatalf("loading embedded exercises: %v", err)
	}
	return exercises
}

func chineseBeginnerProfile() *intake.Profile {
	return &intake.Profile{
		Demographics: intake.Demographics{
			Language:        intake.LanguageChinese,
			CulturalContext: intake.ContextChineseMainland,
		},
		Fitness: intake.Fitness{
			Level: intake.LevelBeginner,
			Goals: []string{intake.GoalWeightLoss},
		},
		Constraints: intake.Constraints{
			Equipment:     []string{"none"},
			Space:         intake.SpaceSmallApartment,
			TimeAvailable: intake.Time30Min,
			Budget:        intake.BudgetLow,
		},
	}
}

func TestSynthesizeChineseBeginner(t *testing.T) {
	s := NewSynthesizer(loadExercises(t), nil)

	result := s.Synthesize(chineseBeginnerProfile(), nil)

	if result.Fallback {
		t.Fatalf("did not expect a fallback plan")
	}
	plan := result.Plan

	if len(plan.Exercises) != 6 {
		t.Fatalf("expected the plan backfilled to 6 exercises, got %d", len(plan.Exercises))
	}
	if plan.Overview.DurationWeeks != 8 {
		t.Fatalf("beginner program must run 8 weeks, got %d", plan.Overview.DurationWeeks)
	}
	if plan.Overview.Frequency != "3x per week" {
		t.Fatalf("unexpected frequency: %q", plan.Overview.Frequency)
	}
	if plan.Overview.SessionLength != "30 minutes" {
		t.Fatalf("unexpected session length: %q", plan.Overview.SessionLength)
	}

	first := plan.Exercises[0]
	if first.Name != "Bodyweight Squats" {
		t.Fatalf("expected catalog order preserved, first exercise is %q", first.Name)
	}
	if first.LocalizedName != "深蹲" {
		t.Fatalf("expected a Chinese name for a Chinese speaker, got %q", first.LocalizedName)
	}

	if plan.LanguagePractice == nil {
		t.Fatalf("expected a language practice kit for a Chinese speaker")
	}
	if len(plan.Progression) != 3 {
		t.Fatalf("expected 3 beginner phases, got %d", len(plan.Progression))
	}
	if plan.Progression[1].Phase != "Weeks 3-4" || plan.Progression[2].Phase != "Weeks 5-8" {
		t.Fatalf("unexpected phase boundaries: %q, %q", plan.Progression[1].Phase, plan.Progression[2].Phase)
	}
}

func TestSynthesizeCapsExercisesAtEight(t *testing.T) {
	s := NewSynthesizer(loadExercises(t), nil)

	profile := &intake.Profile{
		Demographics: intake.Demographics{Language: intake.LanguageEnglish},
		Fitness: intake.Fitness{
			Level: intake.LevelAdvanced,
			Goals: []string{intake.GoalWeightLoss, intake.GoalMuscleBuilding, intake.GoalEndurance},
		},
		Constraints: intake.Constraints{
			Equipment:     []string{"none", "basic"},
			Space:         intake.SpaceNormalHome,
			TimeAvailable: intake.Time45Min,
			Budget:        intake.BudgetModerate,
		},
	}

	plan := s.Synthesize(profile, nil).Plan

	if len(plan.Exercises) > 8 {
		t.Fatalf("plan exceeds the 8-exercise ceiling: %d", len(plan.Exercises))
	}
	if plan.Overview.DurationWeeks != 12 {
		t.Fatalf("first goal weight_loss must set 12 weeks, got %d", plan.Overview.DurationWeeks)
	}
	if plan.Overview.Frequency != "4x per week" {
		t.Fatalf("unexpected frequency: %q", plan.Overview.Frequency)
	}
}

func TestSynthesizeEnglishSpeaker(t *testing.T) {
	s := NewSynthesizer(loadExercises(t), nil)

	profile := chineseBeginnerProfile()
	profile.Demographics.Language = intake.LanguageEnglish
	profile.Demographics.CulturalContext = intake.ContextOther
	profile.Fitness.Level = intake.LevelIntermediate

	plan := s.Synthesize(profile, nil).Plan

	if plan.LanguagePractice != nil {
		t.Fatalf("did not expect a language practice kit for an English speaker")
	}
	for _, ex := range plan.Exercises {
		if ex.LocalizedName != "" {
			t.Fatalf("did not expect localized names, got %q for %s", ex.LocalizedName, ex.Name)
		}
	}
	if len(plan.Progression) != 0 {
		t.Fatalf("progression phases are beginner-only, got %d", len(plan.Progression))
	}
}

func TestPlanWeeks(t *testing.T) {
	cases := []struct {
		level intake.ExperienceLevel
		goals []string
		want  int
	}{
		{intake.LevelBeginner, []string{intake.GoalMuscleBuilding}, 8},
		{intake.LevelIntermediate, []string{intake.GoalWeightLoss}, 12},
		{intake.LevelIntermediate, []string{intake.GoalMuscleBuilding}, 16},
		{intake.LevelAdvanced, []string{intake.GoalEndurance}, 10},
	}
	for _, tc := range cases {
		if got := planWeeks(tc.level, tc.goals); got != tc.want {
			t.Fatalf("planWeeks(%s, %v) = %d, want %d", tc.level, tc.goals, got, tc.want)
		}
	}
}

func TestSynthesizeFallbackOnFault(t *testing.T) {
	s := NewSynthesizer(loadExercises(t), nil)

	// A nil profile faults inside plan building; the stage must recover
	// into the fixed minimal plan.
	result := s.Synthesize(nil, nil)

	if !result.Fallback {
		t.Fatalf("expected a fallback plan")
	}
	if result.Plan.Overview.DurationWeeks != 8 {
		t.Fatalf("fallback plan runs 8 weeks, got %d", result.Plan.Overview.DurationWeeks)
	}
	if len(result.Plan.Exercises) != 2 {
		t.Fatalf("fallback plan carries 2 exercises, got %d", len(result.Plan.Exercises))
	}
}
