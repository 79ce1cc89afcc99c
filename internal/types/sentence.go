package types

// Rubric limits for a single bullet sentence.
const (
	ComponentMax        = 10
	SentenceMax         = 50
	SuggestionThreshold = 45
)

// Component is one rubric dimension of a sentence.
type Component struct {
	Score    float64 `json:"score" validate:"gte=0,lte=10"`
	Feedback string  `json:"feedback"`
}

// Components holds the five rubric dimensions.
type Components struct {
	ActionVerb  Component `json:"action_verb"`
	What        Component `json:"what"`
	How         Component `json:"how"`
	Impact      Component `json:"impact"`
	Conciseness Component `json:"conciseness"`
}

// Total sums the five component scores.
func (c Components) Total() float64 {
	return c.ActionVerb.Score + c.What.Score + c.How.Score + c.Impact.Score + c.Conciseness.Score
}

// Clamped returns a copy with every score bounded to [0, ComponentMax].
func (c Components) Clamped() Components {
	for _, comp := range []*Component{&c.ActionVerb, &c.What, &c.How, &c.Impact, &c.Conciseness} {
		comp.Score = min(ComponentMax, max(0, comp.Score))
	}
	return c
}

// Mistake names a missing or incorrect element of a sentence.
type Mistake struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Example     string `json:"example"`
}

// SentenceScore is the rubric result for one bullet. TotalScore always equals
// Components.Total().
type SentenceScore struct {
	Sentence              string     `json:"sentence"`
	TotalScore            float64    `json:"total_score" validate:"gte=0,lte=50"`
	Components            Components `json:"components"`
	ImprovementSuggestion string     `json:"improvement_suggestion"`
	Mistakes              []Mistake  `json:"mistakes"`
}

// NeedsImprovement reports whether the sentence qualifies for a suggestion.
func (s SentenceScore) NeedsImprovement() bool {
	return s.TotalScore <= SuggestionThreshold
}
