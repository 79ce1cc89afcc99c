package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeLenientModelOutput(t *testing.T) {
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{
		"skill_keywords": {"languages": ["Go"]},
		"ineffective_keywords": {
			"vague_buzzwords": ["synergy", {"term": "go-getter", "count": "2"}],
			"weak_verbs": []
		},
		"keyword_stats": {
			"ineffective_score": "85%",
			"ineffective_count": "3",
			"technical_skills_count": 9.0,
			"soft_skills_count": "n/a"
		}
	}`), &raw))

	var kw KeywordAnalysis
	require.NoError(t, Decode(raw, &kw))

	assert.Equal(t, []string{"Go"}, kw.SkillKeywords["languages"])
	require.Len(t, kw.IneffectiveKeywords.VagueBuzzwords, 2)
	assert.Equal(t, "synergy", kw.IneffectiveKeywords.VagueBuzzwords[0].Term)
	assert.Equal(t, "2", kw.IneffectiveKeywords.VagueBuzzwords[1].Count)
	require.NotNil(t, kw.KeywordStats)
	assert.Equal(t, 85.0, kw.KeywordStats.IneffectiveScore)
	assert.Equal(t, 3, kw.KeywordStats.IneffectiveCount)
	assert.Equal(t, 9, kw.KeywordStats.TechnicalSkillsCount)
	assert.Equal(t, 0, kw.KeywordStats.SoftSkillsCount)
}

func TestDecodeResumeProfile(t *testing.T) {
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{
		"contact_info": {"name": "Jane", "email": "jane@example.com"},
		"skills": {"technical": {"languages": ["Go", "Python"]}, "soft": ["Communication"]},
		"experience": [{"title": "Engineer", "highlights": ["Built things"]}],
		"projects": [{"name": "CLI", "highlights": ["Shipped v1"]}],
		"education": [{"school": "MIT", "gpa": 3.9}]
	}`), &raw))

	var p ResumeProfile
	require.NoError(t, Decode(raw, &p))
	p.Normalize()

	assert.Equal(t, 2, p.Skills.Technical.Count())
	assert.Equal(t, 2, p.ContactInfo.RequiredPresent())
	assert.Equal(t, "3.9", p.Education[0].GPA)
	assert.Equal(t, []string{"Built things", "Shipped v1"}, p.Highlights())
	assert.NotNil(t, p.Certifications)
	assert.NotNil(t, p.Experience[0].Highlights)
}

func TestEmptyResumeProfileKeepsShape(t *testing.T) {
	out, err := json.Marshal(EmptyResumeProfile())
	require.NoError(t, err)
	assert.Contains(t, string(out), `"experience":[]`)
	assert.Contains(t, string(out), `"languages":[]`)
	assert.NotContains(t, string(out), "null")
}

func TestDefaultJobProfile(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p := DefaultJobProfile(now)

	assert.Equal(t, "2024-03-01T12:00:00Z", p.Metadata.ExtractionDate)
	assert.Equal(t, 30, p.Metadata.ScoringWeights.TechnicalSkills)
	assert.Equal(t, "Any", p.EducationRequirements.DegreeLevel)
	assert.NotNil(t, p.RequiredSkills.APIs)
	assert.Nil(t, p.JobID)
	assert.Empty(t, p.RequiredSkills.All())
}

func TestKeywordFeedback(t *testing.T) {
	assert.Equal(t, 100.0, EffectivenessFor(0))
	assert.Equal(t, 70.0, EffectivenessFor(3))
	assert.Equal(t, 0.0, EffectivenessFor(12))

	assert.Equal(t, FeedbackLessBoth, BalanceFeedbackFor(6, 0))
	assert.Equal(t, FeedbackLessTechnical, BalanceFeedbackFor(6, 2))
	assert.Equal(t, FeedbackLessSoft, BalanceFeedbackFor(7, 0))
	assert.Equal(t, FeedbackGoodBalance, BalanceFeedbackFor(7, 1))
}

func TestKeywordEffectiveness(t *testing.T) {
	var missing *KeywordAnalysis
	_, ok := missing.Effectiveness()
	assert.False(t, ok)

	_, ok = (&KeywordAnalysis{}).Effectiveness()
	assert.False(t, ok)

	eff, ok := (&KeywordAnalysis{KeywordStats: &KeywordStats{IneffectiveScore: 140}}).Effectiveness()
	assert.True(t, ok)
	assert.Equal(t, 100.0, eff)
}

func TestComponentsClamped(t *testing.T) {
	c := Components{
		ActionVerb:  Component{Score: 12},
		What:        Component{Score: -3},
		How:         Component{Score: 5},
		Impact:      Component{Score: 10},
		Conciseness: Component{Score: 0},
	}.Clamped()

	assert.Equal(t, 10.0, c.ActionVerb.Score)
	assert.Equal(t, 0.0, c.What.Score)
	assert.Equal(t, 25.0, c.Total())

	s := SentenceScore{TotalScore: c.Total()}
	assert.True(t, s.NeedsImprovement())
	assert.NoError(t, Validate(s))
}

func TestFailedResults(t *testing.T) {
	c := FailedComparison()
	assert.Equal(t, GradeAnalysisFailed, c.MatchAnalysis.Grade)
	assert.Equal(t, []string{"Analysis failed - unable to process"}, c.PotentialRedFlags)
	assert.NotNil(t, c.Recommendations.HighPriority)

	r := ErrorScoreResult(nil)
	assert.True(t, r.Failed())
	assert.Equal(t, "Error calculating ATS score: Unknown error", r.Status.Recommendation)
}

func TestValidateCategoryScore(t *testing.T) {
	assert.NoError(t, Validate(CategoryScore{Score: 10, MaxPoints: 10}))
	assert.Error(t, Validate(CategoryScore{Score: 11, MaxPoints: 10}))
	assert.Error(t, Validate(CategoryScore{Score: -1, MaxPoints: 10}))
}
