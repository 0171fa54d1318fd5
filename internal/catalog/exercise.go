package catalog

type Exercises struct {
	Items []*Exercise
}

// Exercise is a static activity template tagged for selection.
type Exercise struct {
	Name              string   `yaml:"name" json:"name"`
	Goals             []string `yaml:"goals" json:"goals"`
	Equipment         []string `yaml:"equipment" json:"equipment"`
	ApartmentFriendly bool     `yaml:"apartment_friendly" json:"apartment_friendly"`
	Reps              string   `yaml:"reps" json:"reps"`
	Difficulty        string   `yaml:"difficulty" json:"difficulty"`
	Muscles           []string `yaml:"muscles" json:"muscles"`
	Quiet             bool     `yaml:"quiet" json:"quiet"`
}

// TargetsGoal reports whether the exercise is tagged with the given goal.
func (e *Exercise) TargetsGoal(goal string) bool {
	for _, g := range e.Goals {
		if g == goal {
			return true
		}
	}
	return false
}

// RequiresOnly reports whether the exercise can be done with any of the
// given equipment tags.
func (e *Exercise) RequiresOnly(available []string) bool {
	for _, have := range available {
		for _, need := range e.Equipment {
			if need == have {
				return true
			}
		}
	}
	return false
}

func (e *Exercises) Len() int {
	return len(e.Items)
}

// ByGoal returns exercises tagged with the goal, preserving catalog order.
func (e *Exercises) ByGoal(goal string) *Exercises {
	out := &Exercises{}
	for _, ex := range e.Items {
		if ex.TargetsGoal(goal) {
			out.Items = append(out.Items, ex)
		}
	}
	return out
}

// NoEquipment returns apartment-friendly exercises that need no equipment,
// preserving catalog order. Used for backfilling sparse plans.
func (e *Exercises) NoEquipment() *Exercises {
	out := &Exercises{}
	for _, ex := range e.Items {
		if ex.ApartmentFriendly && ex.RequiresOnly([]string{"none"}) {
			out.Items = append(out.Items, ex)
		}
	}
	return out
}

// First returns up to n leading items as a new collection.
func (e *Exercises) First(n int) *Exercises {
	if n < 0 {
		n = 0
	}
	if n > len(e.Items) {
		n = len(e.Items)
	}
	return &Exercises{Items: e.Items[:n]}
}
