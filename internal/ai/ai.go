// Package ai defines the model-facing contracts of the scorer: raw prompt
// completion and the structured extraction operations built on top of it.
package ai

import (
	"context"
	"errors"

	"github.com/spigell/ats-scorer/internal/types"
)

// Operation names, used for logging and cache keys.
const (
	OperationParseResume     = "parse_resume"
	OperationExtractJob      = "extract_job"
	OperationAnalyzeKeywords = "analyze_keywords"
	OperationJudgeSentence   = "judge_sentence"
	OperationListMistakes    = "list_mistakes"
	OperationSuggest         = "suggest_improvement"
	OperationCompare         = "compare_resume_job"
)

// ErrEmptyResponse is returned when a provider answers without any text.
var ErrEmptyResponse = errors.New("model returned empty response")

// Request is a single prompt sent to a model.
type Request struct {
	Operation string
	System    string
	Prompt    string
	// JSON asks the provider to constrain the reply to a JSON object.
	JSON bool
}

// Completer sends one prompt to a language model and returns its text reply.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
	Model() string
}

// StructuredExtractor turns free text into the structures the scorer works
// with. Implementations return a typed default value together with any error
// so callers can degrade instead of failing.
type StructuredExtractor interface {
	ParseResume(ctx context.Context, text string) (types.ResumeProfile, error)
	ExtractJob(ctx context.Context, description string) (types.JobProfile, error)
	AnalyzeKeywords(ctx context.Context, text string) (*types.KeywordAnalysis, error)
	JudgeSentence(ctx context.Context, sentence string) (types.Components, error)
	ListMistakes(ctx context.Context, sentence string, components types.Components) ([]types.Mistake, error)
	SuggestImprovement(ctx context.Context, sentence string) (string, error)
	// CompareResumeJob returns the raw comparison JSON; the comparison
	// package owns its validation.
	CompareResumeJob(ctx context.Context, resume types.ResumeProfile, job types.JobProfile) (string, error)
}
