package scoring

import (
	"strings"

	"github.com/spigell/ats-scorer/internal/types"
)

// ladder maps a category score to diagnostic lines. Rungs are checked in
// order; a score below a rung's limit yields its lines.
type ladder struct {
	rungs  []rung
	strong []string
}

type rung struct {
	below float64
	lines []string
}

func (l ladder) lines(score float64) []string {
	for _, r := range l.rungs {
		if score < r.below {
			return r.lines
		}
	}
	return l.strong
}

var insightLadders = []struct {
	category types.Category
	ladder   ladder
}{
	{types.CategoryKeywordMatch, ladder{
		rungs: []rung{
			{40, []string{
				"CRITICAL: Low keyword match - Resume may be filtered out immediately",
				"Add more technical skills relevant to your target role",
				"Include industry-specific terms and technologies",
			}},
			{50, []string{
				"MODERATE: Keyword density needs improvement for competitive roles",
				"Research job descriptions and include missing technical keywords",
			}},
		},
		strong: []string{"STRONG: Good keyword optimization for ATS systems"},
	}},
	{types.CategoryFormatting, ladder{
		rungs: []rung{
			{10, []string{
				"CRITICAL: Poor ATS parseability - Information may be lost",
				"Use standard section headers (Experience, Education, Skills)",
				"Ensure contact information is clearly formatted",
			}},
			{13, []string{
				"MODERATE: Some formatting issues may affect parsing",
				"Use consistent bullet points and avoid complex layouts",
			}},
		},
		strong: []string{"STRONG: Resume is well-formatted for ATS parsing"},
	}},
	{types.CategoryExperienceAlignment, ladder{
		rungs: []rung{
			{8, []string{
				"CRITICAL: Experience doesn't demonstrate required seniority level",
				"Highlight leadership and complex project involvement",
				"Use senior-level action verbs (Led, Architected, Spearheaded)",
			}},
			{10, []string{"MODERATE: Experience could better demonstrate role complexity"}},
		},
		strong: []string{"STRONG: Experience aligns well with target role level"},
	}},
	{types.CategoryImpactMetrics, ladder{
		rungs: []rung{
			{4, []string{
				"CRITICAL: Lacks quantified achievements - Major red flag for top companies",
				"Add specific numbers: percentages, dollar amounts, user counts",
				"Quantify improvements: 'reduced by 40%', 'increased by 25%'",
			}},
			{6, []string{
				"MODERATE: Need more quantified results for competitive positions",
				"Every bullet point should ideally include a metric",
			}},
		},
		strong: []string{"STRONG: Good use of quantified achievements"},
	}},
	{types.CategoryEducation, ladder{
		rungs: []rung{
			{3, []string{
				"CRITICAL: Education details missing or unparseable",
				"Add degree, institution and graduation year in a standard Education section",
			}},
			{6, []string{
				"MODERATE: Education section could be strengthened",
				"Include relevant coursework or academic projects",
			}},
		},
		strong: []string{"STRONG: Education credentials are well-presented"},
	}},
}

// Insights builds the ordered diagnostic lines for a breakdown.
func Insights(industry Industry, breakdown types.Breakdown, total float64) []string {
	out := []string{"Industry detected: " + strings.ToUpper(string(industry)) + " - Scoring adjusted accordingly"}
	for _, l := range insightLadders {
		out = append(out, l.ladder.lines(breakdown[l.category])...)
	}
	return append(out, overallInsight(total))
}

func overallInsight(total float64) string {
	switch {
	case total >= 85:
		return "EXCELLENT: Resume optimized for top-tier ATS systems (FAANG-ready)"
	case total >= 75:
		return "GOOD: Strong ATS compatibility for most tech companies"
	case total >= 65:
		return "AVERAGE: Meets basic ATS requirements, room for optimization"
	default:
		return "NEEDS WORK: Significant ATS optimization required"
	}
}
