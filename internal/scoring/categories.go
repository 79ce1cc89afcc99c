package scoring

import (
	"github.com/spigell/ats-scorer/internal/types"
)

// Shared band tables. Industry-specific tables live on the profile.
var (
	relevantTitleBands = bands{{3, 15}, {2, 12}, {1, 8}}
	experienceBands    = bands{{2, 6}, {1, 5}}
	seniorityBands     = bands{{3, 6}, {2, 5}, {1, 3}}
	impactBands        = bands{{5, 8}, {3, 7}, {2, 6}, {1, 4}}
)

// Category floors and fixed awards.
const (
	effectivenessPoints = 15
	contactPoints       = 8
	bulletPoints        = 2
	structurePoints     = 2
	experienceFloor     = 3
	seniorityFloor      = 1
	impactFloor         = 2
)

func (p profile) keywordMatch(resume *types.ResumeProfile, kw *types.KeywordAnalysis) float64 {
	score := p.technicalSkills.award(TechnicalSkillCount(resume), 0)
	score += relevantTitleBands.award(RelevantTitleCount(resume), 0)
	if eff, ok := kw.Effectiveness(); ok {
		score += eff / 100 * effectivenessPoints
	}
	return min(round1(score), p.max[types.CategoryKeywordMatch])
}

func (p profile) formatting(resume *types.ResumeProfile, text string, opts FormatOptions) float64 {
	score := float64(resume.ContactInfo.RequiredPresent()) / types.RequiredFields * contactPoints
	if HasBullets(text) {
		score += bulletPoints
	}
	if HasStructure(text) {
		score += structurePoints
	}
	score += CleanFormattingScore(text, opts)
	return min(score, p.max[types.CategoryFormatting])
}

func (p profile) experienceAlignment(resume *types.ResumeProfile) float64 {
	score := experienceBands.award(len(resume.Experience), experienceFloor)
	score += seniorityBands.award(SeniorityCount(resume), seniorityFloor)
	return min(score, p.max[types.CategoryExperienceAlignment])
}

// impactMetrics is bounded by its band table, which never exceeds the
// smallest industry ceiling.
func (p profile) impactMetrics(text string) float64 {
	return impactBands.award(ImpactMetricCount(text), impactFloor)
}

func (p profile) education(resume *types.ResumeProfile) float64 {
	score := p.educationPoints(resume.Education)
	if score == 0 {
		score = p.educationFloor
	}
	return min(score, p.max[types.CategoryEducation])
}

// breakdown scores all five categories.
func (p profile) breakdown(resume *types.ResumeProfile, text string, kw *types.KeywordAnalysis, opts FormatOptions) types.Breakdown {
	return types.Breakdown{
		types.CategoryKeywordMatch:        p.keywordMatch(resume, kw),
		types.CategoryFormatting:          p.formatting(resume, text, opts),
		types.CategoryExperienceAlignment: p.experienceAlignment(resume),
		types.CategoryImpactMetrics:       p.impactMetrics(text),
		types.CategoryEducation:           p.education(resume),
	}
}
