package planning

// Overview summarizes the shape of a plan.
type Overview struct {
	Duration      string `json:"duration"`
	DurationWeeks int    `json:"duration_weeks"`
	Frequency     string `json:"frequency"`
	SessionLength string `json:"session_length"`
	Progression   string `json:"difficulty_progression"`
	Focus         string `json:"focus"`
}

// PlannedExercise is one selected activity, annotated for the client.
type PlannedExercise struct {
	Name string `json:"name"`
	// LocalizedName carries the Chinese name when the profile requires it
	// and the translation table knows the exercise.
	LocalizedName string `json:"localized_name,omitempty"`
	Reps          string `json:"reps"`
	Difficulty    string `json:"difficulty,omitempty"`
	Muscles       []string `json:"muscles,omitempty"`
	CulturalNote  string `json:"cultural_note"`
}

// Phase is one slice of a multi-week progression.
type Phase struct {
	Phase       string `json:"phase"`
	Focus       string `json:"focus"`
	Progression string `json:"progression"`
}

// LanguagePractice is the English-practice supplement included for
// Chinese-speaking clients.
type LanguagePractice struct {
	WeeklyVocabulary     []string `json:"weekly_vocabulary"`
	ExercisePhrases      []string `json:"exercise_phrases"`
	ConversationStarters []string `json:"conversation_starters"`
}

// Motivation describes the coaching style applied to the plan.
type Motivation struct {
	Style         string `json:"style"`
	Communication string `json:"communication"`
	Feedback      string `json:"feedback"`
}

// Plan is the synthesized multi-week program. Immutable once returned.
type Plan struct {
	Overview         Overview           `json:"overview"`
	Exercises        []*PlannedExercise `json:"exercises"`
	Adaptations      []string           `json:"cultural_adaptations"`
	LanguagePractice *LanguagePractice  `json:"language_practice,omitempty"`
	Progression      []Phase            `json:"progression_plan"`
	NutritionNotes   []string           `json:"nutrition_notes"`
	Motivation       Motivation         `json:"motivational_approach"`
}

// Result is the planning stage payload handed to the display layer.
type Result struct {
	Plan          *Plan    `json:"workout_plan"`
	Insights      []string `json:"insights"`
	CulturalNotes string   `json:"cultural_notes"`
	Handoff       string   `json:"handoff"`
	Fallback      bool     `json:"fallback,omitempty"`
}
