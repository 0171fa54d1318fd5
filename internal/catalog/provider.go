package catalog

import "strings"

// CulturalExperience grades how deeply a provider has worked with
// Chinese-speaking clients. Higher values compare greater.
type CulturalExperience int

const (
	CulturalExperienceLimited CulturalExperience = iota
	CulturalExperienceModerate
	CulturalExperienceExtensive
	CulturalExperienceNative
)

var culturalExperienceNames = map[string]CulturalExperience{
	"limited":   CulturalExperienceLimited,
	"moderate":  CulturalExperienceModerate,
	"extensive": CulturalExperienceExtensive,
	"native":    CulturalExperienceNative,
}

func (c CulturalExperience) String() string {
	switch c {
	case CulturalExperienceNative:
		return "native"
	case CulturalExperienceExtensive:
		return "extensive"
	case CulturalExperienceModerate:
		return "moderate"
	default:
		return "limited"
	}
}

// UnmarshalYAML accepts the string grade used in catalog files.
func (c *CulturalExperience) UnmarshalYAML(unmarshal func(any) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	grade, ok := culturalExperienceNames[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		grade = CulturalExperienceLimited
	}
	*c = grade
	return nil
}

type Providers struct {
	Items []*Provider
}

// Provider is a static catalog entry describing one trainer.
type Provider struct {
	ID        string   `yaml:"id" json:"id"`
	Name      string   `yaml:"name" json:"name"`
	Location  string   `yaml:"location" json:"location"`
	Languages []string `yaml:"languages" json:"languages"`

	Specialties        []string `yaml:"specialties" json:"specialties"`
	Certifications     []string `yaml:"certifications" json:"certifications,omitempty"`
	ExperienceYears    int      `yaml:"experience_years" json:"experience_years"`
	ClientDemographics []string `yaml:"client_demographics" json:"client_demographics,omitempty"`

	CulturalExperience      CulturalExperience `yaml:"cultural_experience" json:"cultural_experience"`
	CulturalAdaptations     []string           `yaml:"cultural_adaptations" json:"cultural_adaptations,omitempty"`
	LanguageLearningSupport bool               `yaml:"language_learning_support" json:"language_learning_support"`
	MotivationalStyle       string             `yaml:"motivational_style" json:"motivational_style,omitempty"`

	Ratings Ratings `yaml:"ratings" json:"ratings"`
	Pricing Pricing `yaml:"pricing" json:"pricing"`
}

type Ratings struct {
	Overall             float64 `yaml:"overall" json:"overall"`
	Patience            float64 `yaml:"patience" json:"patience"`
	CulturalSensitivity float64 `yaml:"cultural_sensitivity" json:"cultural_sensitivity"`
	EnglishTeaching     float64 `yaml:"english_teaching" json:"english_teaching"`
	Communication       float64 `yaml:"communication" json:"communication"`
}

type Pricing struct {
	Tier            string `yaml:"tier" json:"tier"`
	StudentDiscount bool   `yaml:"student_discount" json:"student_discount"`
	TrialSession    bool   `yaml:"trial_session" json:"trial_session"`
}

// HasSpecialty reports whether the provider lists the given specialty tag.
func (p *Provider) HasSpecialty(tag string) bool {
	for _, s := range p.Specialties {
		if s == tag {
			return true
		}
	}
	return false
}

// HasDemographic reports whether the provider lists the given client demographic tag.
func (p *Provider) HasDemographic(tag string) bool {
	for _, d := range p.ClientDemographics {
		if d == tag {
			return true
		}
	}
	return false
}

// SpeaksLanguage matches a language by substring so catalog entries like
// "Fluent Mandarin" or "Basic Mandarin" count as speaking Mandarin.
func (p *Provider) SpeaksLanguage(language string) bool {
	needle := strings.ToLower(strings.TrimSpace(language))
	if needle == "" {
		return false
	}
	for _, lang := range p.Languages {
		if strings.Contains(strings.ToLower(lang), needle) {
			return true
		}
	}
	return false
}

func (p *Providers) Len() int {
	return len(p.Items)
}

func (p *Providers) FindByID(id string) *Provider {
	for _, provider := range p.Items {
		if provider.ID == id {
			return provider
		}
	}
	return nil
}

// BySpecialty returns providers that list the given specialty, preserving catalog order.
func (p *Providers) BySpecialty(tag string) *Providers {
	out := &Providers{}
	for _, provider := range p.Items {
		if provider.HasSpecialty(tag) {
			out.Items = append(out.Items, provider)
		}
	}
	return out
}

// ByLanguage returns providers speaking the given language, preserving catalog order.
func (p *Providers) ByLanguage(language string) *Providers {
	out := &Providers{}
	for _, provider := range p.Items {
		if provider.SpeaksLanguage(language) {
			out.Items = append(out.Items, provider)
		}
	}
	return out
}

// budgetTiers maps a client budget to the pricing tiers considered affordable.
var budgetTiers = map[string][]string{
	"low":      {"budget_friendly"},
	"moderate": {"budget_friendly", "moderate"},
	"high":     {"budget_friendly", "moderate", "premium"},
}

// ByBudget returns providers whose pricing tier fits the given client budget.
func (p *Providers) ByBudget(budget string) *Providers {
	tiers := budgetTiers[budget]
	out := &Providers{}
	for _, provider := range p.Items {
		for _, tier := range tiers {
			if provider.Pricing.Tier == tier {
				out.Items = append(out.Items, provider)
				break
			}
		}
	}
	return out
}

// SafeDefault returns the provider used when matching has to fall back.
// By convention it is the first catalog entry. Returns nil for an empty catalog.
func (p *Providers) SafeDefault() *Provider {
	if len(p.Items) == 0 {
		return nil
	}
	return p.Items[0]
}
