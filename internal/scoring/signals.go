package scoring

import (
	"regexp"
	"strings"

	"github.com/spigell/ats-scorer/internal/types"
)

var relevantTitleTerms = []string{"engineer", "developer", "analyst", "manager", "specialist", "lead", "senior"}

var bulletGlyphs = []string{"•", "●", "-", "*"}

// structuredLineCount is the line count above which a résumé is taken to
// have several sections or entries.
const structuredLineCount = 15

var seniorityVerbs = []string{
	"led", "managed", "architected", "designed", "spearheaded", "established",
	"developed", "created", "built", "implemented", "improved", "optimized",
	"collaborated", "coordinated", "assisted", "contributed", "worked",
}

// Overlapping patterns are intentional: "increased revenue by 40%" counts
// under the percentage, the verb and the two-digit patterns.
var impactPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+%`),
	regexp.MustCompile(`\$\d+`),
	regexp.MustCompile(`\d+k\+?`),
	regexp.MustCompile(`\d+x`),
	regexp.MustCompile(`\d+\+`),
	regexp.MustCompile(`reduced.*\d+`),
	regexp.MustCompile(`increased.*\d+`),
	regexp.MustCompile(`improved.*\d+`),
	regexp.MustCompile(`\d+\s*(users?|customers?|clients?)`),
	regexp.MustCompile(`\d+\s*(hours?|days?|weeks?|months?)`),
	regexp.MustCompile(`\d+\s*(projects?|features?|tasks?)`),
	regexp.MustCompile(`\d+\s*(years?|yr)`),
	regexp.MustCompile(`\b\d{2,}\b`),
}

// TechnicalSkillCount sums the technical skill groups of a profile.
func TechnicalSkillCount(p *types.ResumeProfile) int {
	return p.Skills.Technical.Count()
}

// RelevantTitleCount counts experience entries whose title names a relevant role.
func RelevantTitleCount(p *types.ResumeProfile) int {
	n := 0
	for _, exp := range p.Experience {
		if containsAny(strings.ToLower(exp.Title), relevantTitleTerms) {
			n++
		}
	}
	return n
}

// HasBullets reports whether text uses any bullet glyph.
func HasBullets(text string) bool {
	return containsAny(text, bulletGlyphs)
}

// HasStructure reports whether text spans more than structuredLineCount lines.
func HasStructure(text string) bool {
	return strings.Count(text, "\n")+1 > structuredLineCount
}

// SeniorityCount counts experience bullets that use at least one seniority verb.
func SeniorityCount(p *types.ResumeProfile) int {
	n := 0
	for _, h := range p.ExperienceHighlights() {
		if containsAny(strings.ToLower(h), seniorityVerbs) {
			n++
		}
	}
	return n
}

// ImpactMetricCount sums the matches of every impact pattern in text.
func ImpactMetricCount(text string) int {
	lower := strings.ToLower(text)
	n := 0
	for _, re := range impactPatterns {
		n += len(re.FindAllStringIndex(lower, -1))
	}
	return n
}

// educationPoints walks the education entries through the degree ladder of p
// and adds the school and GPA bonuses of the first entry.
func (p profile) educationPoints(entries []types.Education) float64 {
	var points float64

entries:
	for _, edu := range entries {
		degree := strings.ToLower(edu.Degree)
		for _, tier := range p.degrees {
			if containsAny(degree, tier.terms) {
				points += tier.points
				break entries
			}
		}
		if !blank(edu.Degree) {
			points += p.degreeFallback
		}
	}

	if len(entries) > 0 {
		first := entries[0]
		points += p.schoolBonus(first.School)
		points += p.gpaBonus(first.GPA)
	}
	return points
}

func lowerTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
