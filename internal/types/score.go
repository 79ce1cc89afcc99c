package types

// Category names a résumé score category. The values are the breakdown keys.
type Category string

const (
	CategoryKeywordMatch        Category = "keyword_match_score"
	CategoryFormatting          Category = "formatting_score"
	CategoryExperienceAlignment Category = "experience_alignment_score"
	CategoryImpactMetrics       Category = "impact_metrics_score"
	CategoryEducation           Category = "education_score"
)

// Categories lists the résumé categories in reporting order.
var Categories = []Category{
	CategoryKeywordMatch,
	CategoryFormatting,
	CategoryExperienceAlignment,
	CategoryImpactMetrics,
	CategoryEducation,
}

// WeightKey is the methodology weight key for the category.
func (c Category) WeightKey() string {
	switch c {
	case CategoryKeywordMatch:
		return "keyword_match"
	case CategoryFormatting:
		return "formatting"
	case CategoryExperienceAlignment:
		return "experience_alignment"
	case CategoryImpactMetrics:
		return "impact_metrics"
	case CategoryEducation:
		return "education"
	default:
		return string(c)
	}
}

// Breakdown maps each category to its points.
type Breakdown map[Category]float64

// Sum returns the total of all categories.
func (b Breakdown) Sum() float64 {
	var total float64
	for _, v := range b {
		total += v
	}
	return total
}

// MaxScore is the ceiling of a score result.
const MaxScore = 100

type ScoreSummary struct {
	Total       float64 `json:"total" validate:"gte=0,lte=100"`
	MaxPossible int     `json:"max_possible"`
	Grade       string  `json:"grade" validate:"required"`
	Percentile  string  `json:"percentile"`
}

type IndustryResult struct {
	Detected   string `json:"detected" validate:"required"`
	Confidence string `json:"confidence" validate:"required"`
}

type Status struct {
	ATSCompatibility string `json:"ats_compatibility"`
	Recommendation   string `json:"recommendation"`
}

type Methodology struct {
	Weights map[string]string `json:"weights"`
	Focus   string            `json:"focus"`
}

// ResumeScoreResult is the single-résumé ATS score.
type ResumeScoreResult struct {
	Score       ScoreSummary   `json:"score"`
	Industry    IndustryResult `json:"industry"`
	Breakdown   Breakdown      `json:"breakdown"`
	Status      Status         `json:"status"`
	Insights    []string       `json:"insights"`
	Methodology Methodology    `json:"methodology"`
}

// Failed reports whether the result is the error placeholder.
func (r ResumeScoreResult) Failed() bool {
	return r.Score.Grade == GradeError
}

const GradeError = "ERROR"

// ErrorScoreResult is returned instead of an error when scoring fails.
func ErrorScoreResult(err error) ResumeScoreResult {
	msg := "Unknown error"
	if err != nil {
		msg = err.Error()
	}
	return ResumeScoreResult{
		Score: ScoreSummary{
			MaxPossible: MaxScore,
			Grade:       GradeError,
		},
		Industry:  IndustryResult{Detected: "unknown", Confidence: "low"},
		Breakdown: Breakdown{},
		Status: Status{
			ATSCompatibility: "ERROR - Unable to process",
			Recommendation:   "Error calculating ATS score: " + msg,
		},
		Insights:    []string{},
		Methodology: Methodology{Weights: map[string]string{}, Focus: "unknown"},
	}
}
