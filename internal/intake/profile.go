package intake

// Language is the detected communication language of a client.
type Language string

const (
	LanguageEnglish Language = "English"
	LanguageChinese Language = "Chinese"
)

// ExperienceLevel describes a client's training background.
type ExperienceLevel string

const (
	LevelBeginner     ExperienceLevel = "beginner"
	LevelIntermediate ExperienceLevel = "intermediate"
	LevelAdvanced     ExperienceLevel = "advanced"
)

// Space describes the workout area available to a client.
type Space string

const (
	SpaceSmallApartment Space = "small_apartment"
	SpaceNormalHome     Space = "normal_home"
)

// TimeAvailable is the session budget a client can commit to.
type TimeAvailable string

const (
	Time30Min TimeAvailable = "30min"
	Time45Min TimeAvailable = "45min"
)

// Budget is the client's spending tier.
type Budget string

const (
	BudgetLow      Budget = "low"
	BudgetModerate Budget = "moderate"
	BudgetHigh     Budget = "high"
)

// CulturalContext drives downstream cultural adaptation.
type CulturalContext string

const (
	ContextChineseMainland CulturalContext = "Chinese mainland"
	ContextOther           CulturalContext = "Other"
)

// Goal tags come from a fixed vocabulary shared with provider specialties
// and exercise tags.
const (
	GoalWeightLoss     = "weight_loss"
	GoalMuscleBuilding = "muscle_building"
	GoalEndurance      = "endurance"
	GoalGeneralFitness = "general_fitness"
)

// Profile is the structured result of intake analysis. It is created once
// per request and never mutated afterwards.
type Profile struct {
	Demographics Demographics `json:"demographics"`
	Fitness      Fitness      `json:"fitness"`
	Constraints  Constraints  `json:"constraints"`
	Cultural     Cultural     `json:"cultural"`

	// Insights are human-readable findings in detector-priority order.
	// They are diagnostic only and never consumed programmatically.
	Insights      []string `json:"insights"`
	CulturalNotes string   `json:"cultural_notes"`
	Handoff       string   `json:"handoff"`
}

type Demographics struct {
	Language        Language        `json:"language"`
	EnglishLevel    ExperienceLevel `json:"english_level"`
	Location        string          `json:"location"`
	CulturalContext CulturalContext `json:"cultural_context"`
}

type Fitness struct {
	Level       ExperienceLevel `json:"current_level"`
	Goals       []string        `json:"goals"`
	Experience  string          `json:"experience"`
	Preferences []string        `json:"preferences"`
}

type Constraints struct {
	Equipment     []string      `json:"equipment"`
	Space         Space         `json:"space"`
	TimeAvailable TimeAvailable `json:"time_available"`
	Budget        Budget        `json:"budget"`
}

type Cultural struct {
	MotivationStyle          string `json:"motivation_style"`
	CommunicationPreference  string `json:"communication_preference"`
	SocialComfort            string `json:"social_comfort"`
	LanguageLearningInterest bool   `json:"language_learning_interest"`
}

// HasGoal reports whether the profile contains the given goal tag.
func (p *Profile) HasGoal(goal string) bool {
	for _, g := range p.Fitness.Goals {
		if g == goal {
			return true
		}
	}
	return false
}

// HasEquipment reports whether the profile's equipment set contains the tag.
func (p *Profile) HasEquipment(tag string) bool {
	for _, e := range p.Constraints.Equipment {
		if e == tag {
			return true
		}
	}
	return false
}
