// Package intake turns a free-text statement of fitness goals, written in
// English, Chinese, or a mix of both, into a structured Profile.
package intake

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// signals is the set of boolean findings produced by the detector registry.
type signals struct {
	chinese        bool
	englishConcern bool
	weightLoss     bool
	muscleBuilding bool
	endurance      bool
	beginner       bool
	experienced    bool
	apartment      bool
	student        bool
	noEquipment    bool
	budgetConcern  bool
	timeLimit      bool
}

// detector is one independent, side-effect-free signal rule. Detectors may
// be added, removed, or reordered freely; the registry order only fixes the
// order of appended insights.
type detector struct {
	name    string
	pattern *regexp.Regexp
	set     func(*signals)
	// insight, when non-empty, is appended if the detector fires and
	// insightIf (when set) also holds for the full signal set.
	insight   string
	insightIf func(signals) bool
}

// defaultDetectors covers both supported languages in each pattern.
// Language detection itself is a character-class test for CJK ideographs.
var defaultDetectors = []detector{
	{
		name:    "chinese_language",
		pattern: regexp.MustCompile(`[\x{4e00}-\x{9fff}]`),
		set:     func(s *signals) { s.chinese = true },
		insight: "User prefers Chinese communication with potential English learning interest",
	},
	{
		name:    "apartment_space",
		pattern: regexp.MustCompile(`(?i)公寓|apartment|small.*space|limited.*space`),
		set:     func(s *signals) { s.apartment = true },
		insight: "Limited space requires apartment-friendly, quiet exercise routines",
	},
	{
		name:    "student",
		pattern: regexp.MustCompile(`(?i)学生|student|university|college|school`),
		set:     func(s *signals) { s.student = true },
		insight: "Budget-conscious student seeking affordable fitness solutions",
	},
	{
		name:      "english_concern",
		pattern:   regexp.MustCompile(`(?i)英语不好|english.*not.*good|english.*poor|don't speak english well`),
		set:       func(s *signals) { s.englishConcern = true },
		insight:   "English language practice could be valuable secondary benefit",
		insightIf: func(s signals) bool { return s.chinese },
	},
	{
		name:    "time_limited",
		pattern: regexp.MustCompile(`(?i)忙|busy|limited.*time|短时间|quick|没时间`),
		set:     func(s *signals) { s.timeLimit = true },
		insight: "Time-efficient workouts needed for busy schedule",
	},
	{
		name:    "no_equipment",
		pattern: regexp.MustCompile(`(?i)没有器械|no equipment|no gym|home.*only`),
		set:     func(s *signals) { s.noEquipment = true },
		insight: "Bodyweight exercises essential - no equipment available",
	},
	{
		name:    "goal_weight_loss",
		pattern: regexp.MustCompile(`(?i)减肥|减重|瘦身|weight.*loss|lose.*weight|slim down`),
		set:     func(s *signals) { s.weightLoss = true },
	},
	{
		name:    "goal_muscle_building",
		pattern: regexp.MustCompile(`(?i)增肌|健身|muscle|build|strength|强壮|力量`),
		set:     func(s *signals) { s.muscleBuilding = true },
	},
	{
		name:    "goal_endurance",
		pattern: regexp.MustCompile(`(?i)跑步|有氧|cardio|endurance|stamina|running`),
		set:     func(s *signals) { s.endurance = true },
	},
	{
		name:    "level_beginner",
		pattern: regexp.MustCompile(`(?i)初学者|新手|beginner|never|first time|不会|不懂`),
		set:     func(s *signals) { s.beginner = true },
	},
	{
		name:    "level_experienced",
		pattern: regexp.MustCompile(`(?i)经验|experienced|familiar|已经|regularly|for years`),
		set:     func(s *signals) { s.experienced = true },
	},
	{
		name:    "budget_limited",
		pattern: regexp.MustCompile(`(?i)便宜|cheap|budget|limited.*money|can't afford`),
		set:     func(s *signals) { s.budgetConcern = true },
	},
}

// fallbackInsights is used verbatim when no detector produced an insight.
var fallbackInsights = []string{
	"User seeking personalized fitness guidance",
	"Flexible approach needed based on stated preferences",
	"Good candidate for structured fitness program",
}

// Extractor converts raw client text into a Profile.
type Extractor struct {
	detectors []detector
	logger    *zap.Logger
}

// NewExtractor builds an Extractor with the default detector registry.
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{detectors: defaultDetectors, logger: logger}
}

// Extract never fails outward: any internal fault yields the documented
// default profile so downstream stages always have something to work with.
func (e *Extractor) Extract(text string) (profile *Profile) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("intake extraction fault, using default profile", zap.Any("cause", r))
			profile = DefaultProfile()
		}
	}()

	var found signals
	var insights []string

	for _, d := range e.detectors {
		if !d.pattern.MatchString(text) {
			continue
		}
		d.set(&found)
		e.logger.Debug("signal detected", zap.String("detector", d.name))
	}

	// Insights follow registry order; a second pass keeps conditional
	// insights (which may depend on later detectors) correct.
	for _, d := range e.detectors {
		if d.insight == "" || !d.pattern.MatchString(text) {
			continue
		}
		if d.insightIf != nil && !d.insightIf(found) {
			continue
		}
		insights = append(insights, d.insight)
	}
	if len(insights) == 0 {
		insights = append(insights, fallbackInsights...)
	}

	return buildProfile(found, insights)
}

// buildProfile resolves the fired signal set into a complete Profile.
// Every field gets a value; ambiguity is resolved by documented defaults,
// never by an error.
func buildProfile(s signals, insights []string) *Profile {
	goals := make([]string, 0, 4)
	if s.weightLoss {
		goals = append(goals, GoalWeightLoss)
	}
	if s.muscleBuilding {
		goals = append(goals, GoalMuscleBuilding)
	}
	if s.endurance {
		goals = append(goals, GoalEndurance)
	}
	if len(goals) == 0 {
		goals = append(goals, GoalGeneralFitness)
	}

	// Beginner wins when both level signals fire.
	level := LevelIntermediate
	switch {
	case s.beginner:
		level = LevelBeginner
	case s.experienced:
		level = LevelAdvanced
	}

	language := LanguageEnglish
	englishLevel := LevelAdvanced
	location := "California"
	culturalContext := ContextOther
	if s.chinese {
		language = LanguageChinese
		englishLevel = LevelIntermediate
		location = "Shanghai"
		culturalContext = ContextChineseMainland
	}
	if s.englishConcern {
		englishLevel = LevelBeginner
	}

	equipment := []string{"basic"}
	if s.noEquipment {
		equipment = []string{"none"}
	}

	space := SpaceNormalHome
	if s.apartment {
		space = SpaceSmallApartment
	}

	timeAvailable := Time45Min
	if s.timeLimit {
		timeAvailable = Time30Min
	}

	budget := BudgetModerate
	if s.student || s.budgetConcern {
		budget = BudgetLow
	}

	experience := "some"
	switch {
	case s.beginner:
		experience = "none"
	case s.experienced:
		experience = "experienced"
	}

	preferences := []string{"home_workout", "flexible"}
	if s.apartment || s.noEquipment {
		preferences = []string{"home_workout"}
	}

	motivationStyle := "encouraging"
	if s.chinese {
		motivationStyle = "supportive"
	}
	communication := "encouraging"
	socialComfort := "reserved"
	if s.englishConcern {
		communication = "patient"
		socialComfort = "shy_initially"
	}

	culturalNotes := "Standard Western fitness approach with personalized modifications based on stated preferences."
	if s.chinese {
		culturalNotes = "Requires cultural sensitivity for Chinese social norms, apartment living constraints, and potential language learning opportunities."
	}

	return &Profile{
		Demographics: Demographics{
			Language:        language,
			EnglishLevel:    englishLevel,
			Location:        location,
			CulturalContext: culturalContext,
		},
		Fitness: Fitness{
			Level:       level,
			Goals:       goals,
			Experience:  experience,
			Preferences: preferences,
		},
		Constraints: Constraints{
			Equipment:     equipment,
			Space:         space,
			TimeAvailable: timeAvailable,
			Budget:        budget,
		},
		Cultural: Cultural{
			MotivationStyle:          motivationStyle,
			CommunicationPreference:  communication,
			SocialComfort:            socialComfort,
			LanguageLearningInterest: s.chinese,
		},
		Insights:      insights,
		CulturalNotes: culturalNotes,
		Handoff:       handoffSummary(s, goals),
	}
}

func handoffSummary(s signals, goals []string) string {
	speaker := "English"
	if s.chinese {
		speaker = "Chinese"
	}
	who := "individual"
	if s.student {
		who = "student"
	}
	communication := "flexible communication"
	if s.englishConcern {
		communication = "English learning interest"
	}
	spaceNote := "flexible space"
	if s.apartment {
		spaceNote = "space constraints"
	}
	return fmt.Sprintf("Profile ready for matching: %s-speaking %s seeking %s support with %s and %s.",
		speaker, who, strings.Join(goals, " and "), communication, spaceNote)
}

// DefaultProfile is the documented fallback used when extraction faults or
// no usable signal exists in the input.
func DefaultProfile() *Profile {
	return &Profile{
		Demographics: Demographics{
			Language:        LanguageEnglish,
			EnglishLevel:    LevelIntermediate,
			Location:        "San Francisco",
			CulturalContext: ContextOther,
		},
		Fitness: Fitness{
			Level:       LevelIntermediate,
			Goals:       []string{GoalGeneralFitness},
			Experience:  "some",
			Preferences: []string{"home_workout", "flexible"},
		},
		Constraints: Constraints{
			Equipment:     []string{"basic"},
			Space:         SpaceNormalHome,
			TimeAvailable: Time45Min,
			Budget:        BudgetModerate,
		},
		Cultural: Cultural{
			MotivationStyle:         "supportive",
			CommunicationPreference: "encouraging",
			SocialComfort:           "reserved",
		},
		Insights:      append([]string(nil), fallbackInsights...),
		CulturalNotes: "Standard fitness approach with personalized modifications.",
		Handoff:       "Profile ready for matching: English-speaking individual seeking general fitness support.",
	}
}
