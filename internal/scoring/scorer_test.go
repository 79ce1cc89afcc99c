package scoring

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/spigell/ats-scorer/internal/types"
)

const wellFormattedResume = `Jane Doe
jane@example.com - 555-123-4567
Summary
- Backend engineer focused on distributed systems
Skills
- Go, Python, Kubernetes, PostgreSQL
Certifications
- AWS Certified Developer
Professional Experience
Senior Software Engineer, Acme Corp 2019 - 2023
- Built payment APIs serving 2M users
- Reduced latency by 40% with caching
Software Developer, Beta Inc 2016 - 2019
- Implemented CI pipelines with Jenkins
- Migrated services to AWS
University Education
State University, BS Computer Science 2016
- Graduated with honors`

func skills(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "skill"
	}
	return out
}

func TestDetectIndustry(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Industry
	}{
		{"finance only", "Investment banking associate covering equity portfolio risk", IndustryFinance},
		{"tie defaults to software", "Audit, credit and equity work using Python, Docker and React", IndustrySoftware},
		{"single vote each", "analyst and developer", IndustrySoftware},
		{"too few finance votes", "Investment banking", IndustrySoftware},
		{"empty", "", IndustrySoftware},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectIndustry(tt.text)
			assert.Equal(t, tt.want, got.Industry)
			assert.Equal(t, ConfidenceHigh, got.Confidence)
		})
	}
}

func TestDetectIndustryCountsEachTermOnce(t *testing.T) {
	got := DetectIndustry("finance finance finance finance")
	assert.Equal(t, 1, got.Finance)
	assert.Equal(t, IndustrySoftware, got.Industry)
}

func TestMaxPointsSumToHundred(t *testing.T) {
	for _, industry := range []Industry{IndustryFinance, IndustrySoftware} {
		assert.InDelta(t, float64(types.MaxScore), MaxPoints(industry).Sum(), 1e-9, "industry %s", industry)
	}
}

func TestBandTablesFitCeilings(t *testing.T) {
	for _, p := range []profile{financeProfile, softwareProfile} {
		keyword := p.technicalSkills.ceiling() + relevantTitleBands.ceiling() + effectivenessPoints
		assert.GreaterOrEqual(t, keyword, p.max[types.CategoryKeywordMatch])
		assert.LessOrEqual(t, impactBands.ceiling(), p.max[types.CategoryImpactMetrics])
	}
}

func TestKeywordMatchScenario(t *testing.T) {
	resume := types.EmptyResumeProfile()
	resume.Skills.Technical.Languages = skills(10)
	resume.Skills.Technical.CloudTechnologies = skills(6)
	resume.Experience = []types.Experience{
		{Title: "Senior Engineer"},
		{Title: "Software Developer"},
		{Title: "Team Lead"},
	}
	kw := &types.KeywordAnalysis{KeywordStats: &types.KeywordStats{IneffectiveScore: 80}}

	got := softwareProfile.keywordMatch(&resume, kw)
	assert.InDelta(t, 25+15+12, got, 1e-9)

	kw.KeywordStats.IneffectiveScore = 150
	assert.InDelta(t, 55, softwareProfile.keywordMatch(&resume, kw), 1e-9)
	assert.InDelta(t, 45, financeProfile.keywordMatch(&resume, kw), 1e-9)

	assert.InDelta(t, 40, softwareProfile.keywordMatch(&resume, nil), 1e-9)
}

func TestKeywordBandsAreGreedy(t *testing.T) {
	assert.Equal(t, 0.0, softwareProfile.technicalSkills.award(2, 0))
	assert.Equal(t, 5.0, softwareProfile.technicalSkills.award(3, 0))
	assert.Equal(t, 20.0, softwareProfile.technicalSkills.award(14, 0))
	assert.Equal(t, 5.0, financeProfile.technicalSkills.award(1, 0))
	assert.Equal(t, 25.0, financeProfile.technicalSkills.award(8, 0))
}

func TestFormattingScenario(t *testing.T) {
	resume := types.EmptyResumeProfile()
	resume.ContactInfo = types.ContactInfo{Name: "Jane Doe", Email: "jane@example.com", Phone: "555-123-4567"}

	issues := InspectFormatting(wellFormattedResume)
	assert.Equal(t, FormattingIssues{}, issues)
	assert.Equal(t, FormattingIssues{}, InspectFormattingWith(wellFormattedResume, FormatOptions{KeepLines: true}))
	assert.True(t, HasBullets(wellFormattedResume))
	assert.True(t, HasStructure(wellFormattedResume))
	assert.InDelta(t, 15, softwareProfile.formatting(&resume, wellFormattedResume, FormatOptions{}), 1e-9)

	resume.ContactInfo.Phone = " "
	assert.InDelta(t, 8.0*2/3+7, softwareProfile.formatting(&resume, wellFormattedResume, FormatOptions{}), 1e-9)
}

func TestNormalize(t *testing.T) {
	in := "Experience...\n\n\n\nLead   Engineer\n___\n•Built — things"
	assert.Equal(t, "Experience. Lead Engineer  Built things", Normalize(in))
	assert.Equal(t, "Experience.\n\nLead Engineer\n\nBuilt things", NormalizeWith(in, FormatOptions{KeepLines: true}))
}

func TestCleanFormattingFlattensLines(t *testing.T) {
	text := "Jane Doe\nExperience\nAcme\n- " + strings.Repeat("Designed and implemented services ", 4) + "\nSkills\n- Go"

	assert.Equal(t, FormattingIssues{}, InspectFormatting(text))
	assert.Equal(t, 3.0, CleanFormattingScore(text, FormatOptions{}))

	lines := InspectFormattingWith(text, FormatOptions{KeepLines: true})
	assert.Equal(t, FormattingIssues{Inconsistent: true, PoorExperience: true}, lines)
	assert.Equal(t, 1.5, lines.Score())
}

func TestCleanFormattingDeductions(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts FormatOptions
		want FormattingIssues
	}{
		{
			name: "code fence survives normalization",
			text: "Summary\n```go\nfmt.Println()\n```",
			want: FormattingIssues{ProblemPatterns: true},
		},
		{
			name: "flattened text has no line checks",
			text: "Name\nWork History\nAcme Corp 2020\nIntern\n" + strings.Repeat("a", 120),
			want: FormattingIssues{},
		},
		{
			name: "line length jump",
			text: "Summary\n" + strings.Repeat("a", 120),
			opts: FormatOptions{KeepLines: true},
			want: FormattingIssues{Inconsistent: true},
		},
		{
			name: "education line without markers",
			text: "Name\nEducation\nGraduated 2015\nHonors",
			opts: FormatOptions{KeepLines: true},
			want: FormattingIssues{PoorEducation: true},
		},
		{
			name: "short experience line",
			text: "Name\nWork History\nAcme Corp 2020\nIntern",
			opts: FormatOptions{KeepLines: true},
			want: FormattingIssues{PoorExperience: true},
		},
		{
			name: "bullets are not checked",
			text: "Name\nWork History 2020\n- x",
			opts: FormatOptions{KeepLines: true},
			want: FormattingIssues{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InspectFormattingWith(tt.text, tt.opts))
		})
	}

	all := FormattingIssues{ProblemPatterns: true, Inconsistent: true, PoorEducation: true, PoorExperience: true}
	assert.Equal(t, 0.0, all.Score())
	assert.Equal(t, 1.5, FormattingIssues{ProblemPatterns: true}.Score())
}

func TestImpactMetricCountDoubleCounts(t *testing.T) {
	assert.Equal(t, 3, ImpactMetricCount("Increased revenue by 40%"))
	assert.Equal(t, 0, ImpactMetricCount("Worked on stuff"))
	assert.Equal(t, 2.0, softwareProfile.impactMetrics("Worked on stuff"))
	assert.Equal(t, 7.0, softwareProfile.impactMetrics("Increased revenue by 40%"))
}

func TestExperienceAlignment(t *testing.T) {
	resume := types.EmptyResumeProfile()
	assert.Equal(t, 4.0, softwareProfile.experienceAlignment(&resume))

	resume.Experience = []types.Experience{
		{Highlights: []string{"Led the platform team", "Built a billing service", "Designed APIs"}},
		{Highlights: []string{"Attended meetings"}},
	}
	assert.Equal(t, 3, SeniorityCount(&resume))
	assert.Equal(t, 12.0, softwareProfile.experienceAlignment(&resume))
	assert.Equal(t, 12.0, financeProfile.experienceAlignment(&resume))
}

func TestEducation(t *testing.T) {
	finance := []types.Education{{School: "The Wharton School", Degree: "MBA", GPA: "3.8"}}
	assert.Equal(t, 15.0, financeProfile.educationPoints(finance))

	software := []types.Education{{School: "State University", Degree: "BS Computer Science", GPA: "3.1"}}
	assert.Equal(t, 10.0, softwareProfile.educationPoints(software))

	fallback := []types.Education{{Degree: "Coursework only"}, {Degree: "Coursework only"}}
	assert.Equal(t, 4.0, softwareProfile.educationPoints(fallback))

	firstMatchStops := []types.Education{{Degree: "Associate"}, {Degree: "PhD"}}
	assert.Equal(t, 3.0, softwareProfile.educationPoints(firstMatchStops))

	empty := types.EmptyResumeProfile()
	assert.Equal(t, 2.0, softwareProfile.education(&empty))
	assert.Equal(t, 3.0, financeProfile.education(&empty))
}

func TestScoreEmptyProfileKeepsFloors(t *testing.T) {
	s := NewScorer(zaptest.NewLogger(t))
	resume := types.EmptyResumeProfile()

	got := s.Score(&resume, "", nil)

	assert.Equal(t, types.Breakdown{
		types.CategoryKeywordMatch:        0,
		types.CategoryFormatting:          3,
		types.CategoryExperienceAlignment: 4,
		types.CategoryImpactMetrics:       2,
		types.CategoryEducation:           2,
	}, got.Breakdown)
	assert.Equal(t, 11.0, got.Score.Total)
	assert.Equal(t, "POOR", got.Score.Grade)
	assert.Equal(t, "High rejection risk", got.Score.Percentile)
	assert.Equal(t, "Resume likely to be filtered out by ATS systems", got.Status.Recommendation)
	assert.Equal(t, "technical_skills", got.Methodology.Focus)
	assert.Equal(t, "55%", got.Methodology.Weights["keyword_match"])

	require.Len(t, got.Insights, 16)
	assert.Equal(t, "Industry detected: SOFTWARE - Scoring adjusted accordingly", got.Insights[0])
	assert.Equal(t, "CRITICAL: Education details missing or unparseable", got.Insights[13])
	assert.Equal(t, "NEEDS WORK: Significant ATS optimization required", got.Insights[15])
}

func TestScoreIsDeterministicAndBounded(t *testing.T) {
	s := NewScorer(zap.NewNop())
	resume := types.EmptyResumeProfile()
	resume.ContactInfo = types.ContactInfo{Name: "Jane Doe", Email: "jane@example.com", Phone: "555-123-4567"}
	resume.Skills.Technical.Languages = skills(20)
	resume.Experience = []types.Experience{
		{Title: "Senior Software Engineer", Highlights: []string{"Built payment APIs serving 2M users", "Improved latency by 40%"}},
		{Title: "Software Developer", Highlights: []string{"Implemented CI pipelines"}},
	}
	resume.Education = []types.Education{{School: "State University", Degree: "BS Computer Science", GPA: "3.4"}}
	kw := &types.KeywordAnalysis{KeywordStats: &types.KeywordStats{IneffectiveScore: 90}}

	first := s.Score(&resume, wellFormattedResume, kw)
	second := s.Score(&resume, wellFormattedResume, kw)
	assert.Equal(t, first, second)

	maxPoints := MaxPoints(IndustrySoftware)
	for _, c := range types.Categories {
		assert.GreaterOrEqual(t, first.Breakdown[c], 0.0)
		assert.LessOrEqual(t, first.Breakdown[c], maxPoints[c], "category %s", c)
	}

	// keyword 25 + 12 + 13.5, formatting 15, experience 12, impact 8, education 10.
	assert.Equal(t, 95.5, first.Score.Total)
	assert.Equal(t, "EXCELLENT", first.Score.Grade)
	assert.Equal(t, "Top 10% of candidates", first.Score.Percentile)
	assert.Equal(t, "EXCELLENT: Resume optimized for top-tier ATS systems (FAANG-ready)", first.Insights[len(first.Insights)-1])
}

func TestScoreNilProfile(t *testing.T) {
	got := NewScorer(nil).Score(nil, "text", nil)
	assert.True(t, got.Failed())
	assert.Equal(t, "unknown", got.Industry.Detected)
	assert.Equal(t, "low", got.Industry.Confidence)
	assert.Contains(t, got.Status.Recommendation, ErrNilProfile.Error())
}

func TestStatusTiers(t *testing.T) {
	assert.Equal(t, "GOOD - Above average candidate", statusFor(84.96).compatibility)
	assert.Equal(t, "AVERAGE - Standard candidate pool", statusFor(65).compatibility)
	assert.Equal(t, "BELOW AVERAGE - Needs improvement", statusFor(50).compatibility)
	assert.Equal(t, "POOR - High rejection risk", statusFor(49.99).compatibility)
}

func TestScoreResultRoundTrip(t *testing.T) {
	resume := types.EmptyResumeProfile()
	resume.ContactInfo = types.ContactInfo{Name: "Jane Doe", Email: "jane@example.com"}
	resume.Skills.Technical.Languages = skills(5)
	resume.Experience = []types.Experience{{Title: "Software Engineer", Highlights: []string{"Led the billing rewrite"}}}

	want := NewScorer(zap.NewNop()).Score(&resume, wellFormattedResume, nil)
	require.NotEqual(t, types.GradeError, want.Score.Grade)
	require.NotEqual(t, want.Breakdown[types.CategoryFormatting], float64(int(want.Breakdown[types.CategoryFormatting])))

	data, err := json.Marshal(want)
	require.NoError(t, err)

	var got types.ResumeScoreResult
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, want, got)
}

func TestScorerWithFormatOptions(t *testing.T) {
	resume := types.EmptyResumeProfile()
	text := "Jane Doe\nExperience\nAcme\n- " + strings.Repeat("Designed and implemented services ", 4) + "\nSkills\n- Go"

	base := NewScorer(zap.NewNop())
	lineAware := base.WithFormatOptions(FormatOptions{KeepLines: true})

	flat := base.Score(&resume, text, nil).Breakdown[types.CategoryFormatting]
	lines := lineAware.Score(&resume, text, nil).Breakdown[types.CategoryFormatting]
	assert.InDelta(t, 1.5, flat-lines, 1e-9)
	assert.Equal(t, FormatOptions{}, base.formatting)
}
