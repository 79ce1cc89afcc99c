package types

// IneffectiveKeyword is a term flagged as weak, vague or overused, with the
// context it appeared in and what to use instead.
type IneffectiveKeyword struct {
	Term        string   `json:"term"`
	Category    string   `json:"category,omitempty"`
	Context     string   `json:"context,omitempty"`
	Suggestion  string   `json:"suggestion,omitempty"`
	Count       string   `json:"count,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type IneffectiveKeywords struct {
	VagueBuzzwords   []IneffectiveKeyword `json:"vague_buzzwords"`
	WeakVerbs        []IneffectiveKeyword `json:"weak_verbs"`
	OverusedVerbs    []IneffectiveKeyword `json:"overused_verbs"`
	UncommonAcronyms []IneffectiveKeyword `json:"uncommon_acronyms"`
	EmptySoftSkills  []IneffectiveKeyword `json:"empty_soft_skills"`
	OutdatedTech     []IneffectiveKeyword `json:"outdated_tech"`
}

// Total returns the number of flagged terms across all buckets.
func (k IneffectiveKeywords) Total() int {
	return len(k.VagueBuzzwords) + len(k.WeakVerbs) + len(k.OverusedVerbs) +
		len(k.UncommonAcronyms) + len(k.EmptySoftSkills) + len(k.OutdatedTech)
}

// KeywordStats summarises keyword quality. IneffectiveScore is the
// effectiveness percentage consumed by the keyword-match category.
type KeywordStats struct {
	IneffectiveScore      float64 `json:"ineffective_score" validate:"gte=0,lte=100"`
	IneffectiveCount      int     `json:"ineffective_count" validate:"gte=0"`
	TotalKeywordsAnalyzed int     `json:"total_keywords_analyzed" validate:"gte=0"`
	TechnicalSkillsCount  int     `json:"technical_skills_count" validate:"gte=0"`
	SoftSkillsCount       int     `json:"soft_skills_count" validate:"gte=0"`
	BalanceFeedback       string  `json:"balance_feedback"`
}

const (
	minTechnicalSkills = 7
	minSoftSkills      = 1
)

// Balance feedback messages.
const (
	FeedbackLessTechnical = "Less technical skills mentioned"
	FeedbackLessSoft      = "Less soft skills mentioned"
	FeedbackLessBoth      = "Less technical skills and soft skills mentioned"
	FeedbackGoodBalance   = "Good skill balance"
)

// EffectivenessFor converts a count of ineffective keywords into a 0-100 score.
func EffectivenessFor(ineffectiveCount int) float64 {
	return max(0, 100-10*float64(ineffectiveCount))
}

// BalanceFeedbackFor describes the balance between technical and soft skills.
func BalanceFeedbackFor(technical, soft int) string {
	lowTech := technical < minTechnicalSkills
	lowSoft := soft < minSoftSkills
	switch {
	case lowTech && lowSoft:
		return FeedbackLessBoth
	case lowTech:
		return FeedbackLessTechnical
	case lowSoft:
		return FeedbackLessSoft
	default:
		return FeedbackGoodBalance
	}
}

// KeywordAnalysis is the keyword extraction result for a résumé.
type KeywordAnalysis struct {
	SkillKeywords       map[string][]string `json:"skill_keywords"`
	ToolKeywords        map[string][]string `json:"tool_keywords"`
	DomainKeywords      map[string][]string `json:"domain_keywords"`
	PowerVerbs          []string            `json:"power_verbs"`
	SoftSkills          []string            `json:"soft_skills"`
	IneffectiveKeywords IneffectiveKeywords `json:"ineffective_keywords"`
	KeywordStats        *KeywordStats       `json:"keyword_stats,omitempty"`
}

// Effectiveness returns the keyword effectiveness percentage, or false when
// no stats were supplied.
func (k *KeywordAnalysis) Effectiveness() (float64, bool) {
	if k == nil || k.KeywordStats == nil {
		return 0, false
	}
	return min(100, max(0, k.KeywordStats.IneffectiveScore)), true
}
