package intake

import (
	"reflect"
	"testing"
)

func TestExtractChineseWeightLossApartment(t *testing.T) {
	e := NewExtractor(nil)

	profile := e.Extract("我想减肥但是我的英语不好我住在上海的小公寓里")

	if profile.Demographics.Language != LanguageChinese {
		t.Fatalf("expected Chinese language, got %q", profile.Demographics.Language)
	}
	if profile.Demographics.Location != "Shanghai" {
		t.Fatalf("expected Shanghai location, got %q", profile.Demographics.Location)
	}
	if profile.Demographics.EnglishLevel != LevelBeginner {
		t.Fatalf("expected beginner English for stated concern, got %q", profile.Demographics.EnglishLevel)
	}
	if profile.Demographics.CulturalContext != ContextChineseMainland {
		t.Fatalf("unexpected cultural context: %q", profile.Demographics.CulturalContext)
	}
	if !profile.HasGoal(GoalWeightLoss) {
		t.Fatalf("expected weight_loss goal, got %v", profile.Fitness.Goals)
	}
	if profile.Constraints.Space != SpaceSmallApartment {
		t.Fatalf("expected small_apartment space, got %q", profile.Constraints.Space)
	}
	if !profile.Cultural.LanguageLearningInterest {
		t.Fatalf("expected language learning interest for a Chinese speaker")
	}

	wantInsights := []string{
		"User prefers Chinese communication with potential English learning interest",
		"Limited space requires apartment-friendly, quiet exercise routines",
		"English language practice could be valuable secondary benefit",
	}
	if !reflect.DeepEqual(profile.Insights, wantInsights) {
		t.Fatalf("unexpected insights: %v", profile.Insights)
	}
}

func TestExtractEnglishBeginnerMuscle(t *testing.T) {
	e := NewExtractor(nil)

	profile := e.Extract("I want to build muscle but I am a beginner. I prefer working out at home and would like to practice English.")

	if profile.Demographics.Language != LanguageEnglish {
		t.Fatalf("expected English language, got %q", profile.Demographics.Language)
	}
	if !profile.HasGoal(GoalMuscleBuilding) {
		t.Fatalf("expected muscle_building goal, got %v", profile.Fitness.Goals)
	}
	if profile.Fitness.Level != LevelBeginner {
		t.Fatalf("expected beginner level, got %q", profile.Fitness.Level)
	}
	if !profile.HasEquipment("basic") {
		t.Fatalf("expected basic equipment default, got %v", profile.Constraints.Equipment)
	}
}

func TestExtractStudentBudget(t *testing.T) {
	e := NewExtractor(nil)

	profile := e.Extract("我是学生预算有限想要增强体质和学习健身英语")

	if profile.Constraints.Budget != BudgetLow {
		t.Fatalf("expected low budget for a student, got %q", profile.Constraints.Budget)
	}
	if !profile.HasGoal(GoalMuscleBuilding) {
		t.Fatalf("expected muscle_building goal, got %v", profile.Fitness.Goals)
	}
	if profile.Demographics.Language != LanguageChinese {
		t.Fatalf("expected Chinese language, got %q", profile.Demographics.Language)
	}
}

func TestExtractNoEquipmentAndTimeLimit(t *testing.T) {
	e := NewExtractor(nil)

	profile := e.Extract("I am very busy and have no equipment at home")

	if !profile.HasEquipment("none") {
		t.Fatalf("expected no equipment, got %v", profile.Constraints.Equipment)
	}
	if profile.Constraints.TimeAvailable != Time30Min {
		t.Fatalf("expected 30min sessions for busy schedule, got %q", profile.Constraints.TimeAvailable)
	}
	if !reflect.DeepEqual(profile.Fitness.Preferences, []string{"home_workout"}) {
		t.Fatalf("unexpected preferences: %v", profile.Fitness.Preferences)
	}
}

func TestExtractCombinedConstraintScenario(t *testing.T) {
	e := NewExtractor(nil)

	profile := e.Extract("我是初学者想减肥，住小公寓，没有器械")

	if profile.Demographics.Language != LanguageChinese {
		t.Fatalf("expected Chinese language, got %q", profile.Demographics.Language)
	}
	if profile.Constraints.Space != SpaceSmallApartment {
		t.Fatalf("expected small_apartment space, got %q", profile.Constraints.Space)
	}
	if !profile.HasEquipment("none") {
		t.Fatalf("expected no equipment, got %v", profile.Constraints.Equipment)
	}
	if !profile.HasGoal(GoalWeightLoss) {
		t.Fatalf("expected weight_loss goal, got %v", profile.Fitness.Goals)
	}
	if profile.Fitness.Level != LevelBeginner {
		t.Fatalf("expected beginner level, got %q", profile.Fitness.Level)
	}
}

func TestExtractBeginnerWinsLevelConflict(t *testing.T) {
	e := NewExtractor(nil)

	profile := e.Extract("I am a beginner but I have been running regularly for years")

	if profile.Fitness.Level != LevelBeginner {
		t.Fatalf("expected beginner to win the level conflict, got %q", profile.Fitness.Level)
	}
}

func TestExtractEmptyInputYieldsDefaults(t *testing.T) {
	e := NewExtractor(nil)

	profile := e.Extract("")

	if !reflect.DeepEqual(profile.Fitness.Goals, []string{GoalGeneralFitness}) {
		t.Fatalf("expected general_fitness only, got %v", profile.Fitness.Goals)
	}
	if profile.Fitness.Level != LevelIntermediate {
		t.Fatalf("expected intermediate default level, got %q", profile.Fitness.Level)
	}
	if !reflect.DeepEqual(profile.Insights, fallbackInsights) {
		t.Fatalf("expected fallback insights, got %v", profile.Insights)
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	e := NewExtractor(nil)
	text := "我想减肥 and build strength, no equipment"

	first := e.Extract(text)
	second := e.Extract(text)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("extraction is not deterministic for the same input")
	}
}

func TestDefaultProfileIsComplete(t *testing.T) {
	profile := DefaultProfile()

	if len(profile.Fitness.Goals) == 0 {
		t.Fatalf("default profile must carry at least one goal")
	}
	if len(profile.Insights) != 3 {
		t.Fatalf("expected 3 generic insights, got %d", len(profile.Insights))
	}
	if profile.Fitness.Level != LevelIntermediate {
		t.Fatalf("expected intermediate default level, got %q", profile.Fitness.Level)
	}
}
