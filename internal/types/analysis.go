package types

// ResumeAnalysis is the full single-résumé analysis: the extracted profile
// together with keyword, sentence and score results.
type ResumeAnalysis struct {
	AnalysisID string `json:"analysis_id"`
	ResumeProfile
	KeywordAnalysis  *KeywordAnalysis   `json:"keyword_analysis"`
	SentenceAnalysis []SentenceScore    `json:"sentence_analysis"`
	ResumeScore      *ResumeScoreResult `json:"resume_score"`
}

// ComprehensiveAnalysis is the sentence-level pass over the whole résumé text.
type ComprehensiveAnalysis struct {
	ResumeText             string           `json:"resume_text"`
	JobDescription         string           `json:"job_description"`
	SentenceAnalyses       []SentenceScore  `json:"sentence_analyses"`
	KeywordAnalysis        *KeywordAnalysis `json:"keyword_analysis"`
	OverallScore           int              `json:"overall_score"`
	TotalSentencesAnalyzed int              `json:"total_sentences_analyzed"`
	AnalysisTimestamp      string           `json:"analysis_timestamp"`
}

// ScanResult is the résumé plus job description analysis.
type ScanResult struct {
	AnalysisID         string                `json:"analysis_id"`
	Analysis           ComprehensiveAnalysis `json:"analysis"`
	ResumeJSON         ResumeProfile         `json:"resumeJson"`
	JobDescriptionJSON JobProfile            `json:"jobDescriptionJson"`
	ComparisonJSON     ComparisonResult      `json:"comparisonJson"`
}
