package types

// CategoryScore is one weighted entry of the résumé–job breakdown.
type CategoryScore struct {
	Score     float64 `json:"score" validate:"gte=0,ltefield=MaxPoints"`
	MaxPoints float64 `json:"max_points"`
	Weight    string  `json:"weight"`
	Analysis  string  `json:"analysis"`
}

type MatchAnalysis struct {
	OverallScore    float64 `json:"overall_score" validate:"gte=0,lte=100"`
	Grade           string  `json:"grade"`
	MatchPercentage float64 `json:"match_percentage"`
	Recommendation  string  `json:"recommendation"`
}

type TechnicalSkillsAnalysis struct {
	ExactMatches       []string `json:"exact_matches"`
	PartialMatches     []string `json:"partial_matches"`
	MissingRequired    []string `json:"missing_required"`
	MissingPreferred   []string `json:"missing_preferred"`
	CoveragePercentage float64  `json:"coverage_percentage"`
	StrengthAreas      []string `json:"strength_areas"`
	WeaknessAreas      []string `json:"weakness_areas"`
}

type SoftSkillsAnalysis struct {
	MatchedSkills      []string `json:"matched_skills"`
	MissingRequired    []string `json:"missing_required"`
	MissingPreferred   []string `json:"missing_preferred"`
	CoveragePercentage float64  `json:"coverage_percentage"`
}

type ExperienceAnalysis struct {
	YearsMatch                bool     `json:"years_match"`
	SeniorityMatch            bool     `json:"seniority_match"`
	DomainExperienceMatch     []string `json:"domain_experience_match"`
	MissingExperienceAreas    []string `json:"missing_experience_areas"`
	ExperienceLevelAssessment string   `json:"experience_level_assessment"`
}

type EducationAnalysis struct {
	DegreeLevelMatch      bool     `json:"degree_level_match"`
	FieldRelevance        float64  `json:"field_relevance"`
	CertificationMatches  []string `json:"certification_matches"`
	MissingCertifications []string `json:"missing_certifications"`
	EducationScore        float64  `json:"education_score"`
}

type ProjectAnalysis struct {
	RelevantProjects        []string `json:"relevant_projects"`
	TechnologyOverlap       []string `json:"technology_overlap"`
	ProjectImpactAssessment string   `json:"project_impact_assessment"`
	MissingProjectTypes     []string `json:"missing_project_types"`
}

type KeywordCoverageAnalysis struct {
	KeywordDensity           float64  `json:"keyword_density"`
	MatchedIndustryTerms     []string `json:"matched_industry_terms"`
	MissingCriticalKeywords  []string `json:"missing_critical_keywords"`
	KeywordOptimizationScore float64  `json:"keyword_optimization_score"`
}

type DetailedAnalysis struct {
	TechnicalSkills *TechnicalSkillsAnalysis `json:"technical_skills_analysis,omitempty"`
	SoftSkills      *SoftSkillsAnalysis      `json:"soft_skills_analysis,omitempty"`
	Experience      *ExperienceAnalysis      `json:"experience_analysis,omitempty"`
	Education       *EducationAnalysis       `json:"education_analysis,omitempty"`
	Projects        *ProjectAnalysis         `json:"project_analysis,omitempty"`
	Keywords        *KeywordCoverageAnalysis `json:"keyword_analysis,omitempty"`
}

type MissingRequirements struct {
	CriticalMissingSkills  []string `json:"critical_missing_skills"`
	PreferredMissingSkills []string `json:"preferred_missing_skills"`
	MissingCertifications  []string `json:"missing_certifications"`
	MissingExperienceAreas []string `json:"missing_experience_areas"`
	MissingKeywords        []string `json:"missing_keywords"`
	MissingSoftSkills      []string `json:"missing_soft_skills"`
}

type Recommendations struct {
	HighPriority           []string `json:"high_priority"`
	MediumPriority         []string `json:"medium_priority"`
	LowPriority            []string `json:"low_priority"`
	ResumeOptimizationTips []string `json:"resume_optimization_tips"`
	KeywordSuggestions     []string `json:"keyword_suggestions"`
}

// All returns recommendations across the three priority tiers.
func (r Recommendations) All() []string {
	out := make([]string, 0, len(r.HighPriority)+len(r.MediumPriority)+len(r.LowPriority))
	out = append(out, r.HighPriority...)
	out = append(out, r.MediumPriority...)
	return append(out, r.LowPriority...)
}

type ATSCompatibility struct {
	ParseabilityScore   float64 `json:"parseability_score"`
	KeywordDensity      float64 `json:"keyword_density"`
	SectionCompleteness float64 `json:"section_completeness"`
	FormatCompliance    string  `json:"format_compliance"`
	ATSFriendlyScore    float64 `json:"ats_friendly_score"`
}

type InterviewReadiness struct {
	TechnicalInterviewScore  float64 `json:"technical_interview_score"`
	BehavioralInterviewScore float64 `json:"behavioral_interview_score"`
	DomainKnowledgeScore     float64 `json:"domain_knowledge_score"`
	OverallReadiness         string  `json:"overall_readiness"`
}

type SalaryCompetitiveness struct {
	ExperienceLevelMatch  string   `json:"experience_level_match"`
	SkillPremiumFactors   []string `json:"skill_premium_factors"`
	MarketCompetitiveness string   `json:"market_competitiveness"`
}

// ComparisonResult is the résumé–job match analysis.
type ComparisonResult struct {
	MatchAnalysis         MatchAnalysis            `json:"ats_match_analysis"`
	ScoringBreakdown      map[string]CategoryScore `json:"scoring_breakdown" validate:"dive"`
	DetailedAnalysis      DetailedAnalysis         `json:"detailed_analysis"`
	MissingRequirements   MissingRequirements      `json:"missing_requirements"`
	Recommendations       Recommendations          `json:"actionable_recommendations"`
	CandidateStrengths    []string                 `json:"candidate_strengths"`
	PotentialRedFlags     []string                 `json:"potential_red_flags"`
	ATSCompatibility      ATSCompatibility         `json:"ats_compatibility"`
	InterviewReadiness    InterviewReadiness       `json:"interview_readiness"`
	SalaryCompetitiveness SalaryCompetitiveness    `json:"salary_competitiveness"`
}

// Normalize replaces nil lists with empty ones.
func (c *ComparisonResult) Normalize() {
	if c.ScoringBreakdown == nil {
		c.ScoringBreakdown = map[string]CategoryScore{}
	}
	for _, s := range []*[]string{
		&c.MissingRequirements.CriticalMissingSkills, &c.MissingRequirements.PreferredMissingSkills,
		&c.MissingRequirements.MissingCertifications, &c.MissingRequirements.MissingExperienceAreas,
		&c.MissingRequirements.MissingKeywords, &c.MissingRequirements.MissingSoftSkills,
		&c.Recommendations.HighPriority, &c.Recommendations.MediumPriority, &c.Recommendations.LowPriority,
		&c.Recommendations.ResumeOptimizationTips, &c.Recommendations.KeywordSuggestions,
		&c.CandidateStrengths, &c.PotentialRedFlags,
		&c.SalaryCompetitiveness.SkillPremiumFactors,
	} {
		nonNil(s)
	}
}

// Grade labels for the résumé–job match.
const (
	GradeAnalysisFailed = "Analysis Failed"
	Unknown             = "Unknown"
)

// FailedComparison is returned when the delegated comparison cannot be used.
func FailedComparison() ComparisonResult {
	c := ComparisonResult{
		MatchAnalysis: MatchAnalysis{
			Grade:          GradeAnalysisFailed,
			Recommendation: "Unable to analyze - please try again",
		},
		PotentialRedFlags:     []string{"Analysis failed - unable to process"},
		ATSCompatibility:      ATSCompatibility{FormatCompliance: Unknown},
		InterviewReadiness:    InterviewReadiness{OverallReadiness: Unknown},
		SalaryCompetitiveness: SalaryCompetitiveness{MarketCompetitiveness: Unknown},
	}
	c.Normalize()
	return c
}
