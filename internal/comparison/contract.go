package comparison

import (
	"fmt"
	"strings"

	"github.com/spigell/ats-scorer/internal/types"
)

// Breakdown keys of the résumé–job comparison.
const (
	CategoryTechnicalSkills      = "technical_skills"
	CategorySoftSkills           = "soft_skills"
	CategoryExperienceMatch      = "experience_match"
	CategoryEducationFit         = "education_fit"
	CategoryProjectRelevance     = "project_relevance"
	CategoryKeywordCoverage      = "keyword_coverage"
	CategoryJobTitleAlignment    = "job_title_alignment"
	CategoryFormattingCompliance = "formatting_compliance"
)

// Weight is the maximum number of points a breakdown category can earn.
type Weight struct {
	Category  string
	MaxPoints float64
}

// Contract is the ordered weight table a comparison must follow.
type Contract []Weight

// DefaultContract weights technical skills most heavily; the table sums to 100.
var DefaultContract = Contract{
	{CategoryTechnicalSkills, 45},
	{CategorySoftSkills, 10},
	{CategoryExperienceMatch, 15},
	{CategoryEducationFit, 10},
	{CategoryProjectRelevance, 10},
	{CategoryKeywordCoverage, 5},
	{CategoryJobTitleAlignment, 3},
	{CategoryFormattingCompliance, 2},
}

// ContractError reports a weight table or breakdown that breaks the contract.
type ContractError struct {
	Problems []string
}

func (e *ContractError) Error() string {
	return "comparison contract violated: " + strings.Join(e.Problems, "; ")
}

// Validate checks that the table has unique positive weights summing to 100.
func (c Contract) Validate() error {
	var problems []string
	seen := make(map[string]bool, len(c))
	var total float64
	for _, w := range c {
		if seen[w.Category] {
			problems = append(problems, fmt.Sprintf("duplicate category %q", w.Category))
		}
		seen[w.Category] = true
		if w.MaxPoints <= 0 {
			problems = append(problems, fmt.Sprintf("category %q has non-positive weight", w.Category))
		}
		total += w.MaxPoints
	}
	if total != types.MaxScore {
		problems = append(problems, fmt.Sprintf("weights sum to %g, want %d", total, types.MaxScore))
	}
	if len(problems) > 0 {
		return &ContractError{Problems: problems}
	}
	return nil
}

// Apply rewrites breakdown so that it holds exactly the contract categories
// with contract max points and clamped scores. Max points that disagreed with
// the contract are reported as a ContractError; the breakdown is fixed either
// way.
func (c Contract) Apply(breakdown map[string]types.CategoryScore) (map[string]types.CategoryScore, error) {
	out := make(map[string]types.CategoryScore, len(c))
	var problems []string

	for _, w := range c {
		got, ok := breakdown[w.Category]
		if !ok {
			problems = append(problems, fmt.Sprintf("category %q missing", w.Category))
		} else if got.MaxPoints != 0 && got.MaxPoints != w.MaxPoints {
			problems = append(problems, fmt.Sprintf("category %q max points %g, want %g", w.Category, got.MaxPoints, w.MaxPoints))
		}

		got.MaxPoints = w.MaxPoints
		got.Weight = fmt.Sprintf("%g%%", w.MaxPoints)
		got.Score = min(w.MaxPoints, max(0, got.Score))
		out[w.Category] = got
	}

	for key := range breakdown {
		if _, ok := out[key]; !ok {
			problems = append(problems, fmt.Sprintf("unexpected category %q", key))
		}
	}

	if len(problems) > 0 {
		return out, &ContractError{Problems: problems}
	}
	return out, nil
}

// Total sums the breakdown scores of the contract categories.
func (c Contract) Total(breakdown map[string]types.CategoryScore) float64 {
	var total float64
	for _, w := range c {
		total += breakdown[w.Category].Score
	}
	return total
}

type gradeStep struct {
	min   float64
	label string
}

var gradeScale = []gradeStep{
	{90, "Excellent"},
	{80, "Very Good"},
	{70, "Good"},
	{60, "Fair"},
}

// GradeFor maps an overall match score to its label.
func GradeFor(score float64) string {
	for _, g := range gradeScale {
		if score >= g.min {
			return g.label
		}
	}
	return "Poor"
}
