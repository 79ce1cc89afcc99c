package pipeline

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/types"
)

// Input errors.
var (
	ErrEmptyResume         = errors.New("resume text is required")
	ErrEmptyJobDescription = errors.New("job description is required")
)

// Toggles switch optional stages off.
type Toggles struct {
	Sentences  bool
	Keywords   bool
	Comparison bool
}

// AllStages enables every optional stage.
var AllStages = Toggles{Sentences: true, Keywords: true, Comparison: true}

const disabledByConfig = "disabled in configuration"

// Analyzer runs the upload and scan flows.
type Analyzer struct {
	deps   Deps
	upload []Stage
	scan   []Stage
	newID  func() string
}

// NewAnalyzer wires the stages of both flows.
func NewAnalyzer(deps Deps, toggles Toggles) *Analyzer {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	a := &Analyzer{
		deps: deps,
		upload: []Stage{
			NewParseResume(),
			NewKeywords(),
			NewSentences(),
			NewScore(),
		},
		scan: []Stage{
			NewParseResumeAndJob(),
			NewComparison(),
			NewComprehensive(toggles.Keywords),
		},
		newID: func() string { return uuid.NewString() },
	}

	if !toggles.Keywords {
		DisableByName(a.upload, StageKeywords, disabledByConfig)
	}
	if !toggles.Sentences {
		DisableByName(a.upload, StageSentences, disabledByConfig)
		DisableByName(a.scan, StageComprehensive, disabledByConfig)
	}
	if !toggles.Comparison {
		DisableByName(a.scan, StageComparison, disabledByConfig)
	}
	return a
}

// AnalyzeResume runs the upload flow: profile extraction, keyword analysis,
// highlight rubric and deterministic scoring.
func (a *Analyzer) AnalyzeResume(ctx context.Context, text string) (types.ResumeAnalysis, error) {
	if strings.TrimSpace(text) == "" {
		return types.ResumeAnalysis{}, ErrEmptyResume
	}

	id := a.newID()
	state := &State{Text: text, Sentences: []types.SentenceScore{}}
	if err := Run(ctx, a.withID(id), a.upload, state); err != nil {
		return types.ResumeAnalysis{}, err
	}

	return types.ResumeAnalysis{
		AnalysisID:       id,
		ResumeProfile:    state.Profile,
		KeywordAnalysis:  state.Keywords,
		SentenceAnalysis: state.Sentences,
		ResumeScore:      state.Score,
	}, nil
}

// Scan runs the résumé and job description flow.
func (a *Analyzer) Scan(ctx context.Context, resumeText, jobDescription string) (types.ScanResult, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return types.ScanResult{}, ErrEmptyJobDescription
	}
	if strings.TrimSpace(resumeText) == "" {
		return types.ScanResult{}, ErrEmptyResume
	}

	id := a.newID()
	state := &State{
		Text:           resumeText,
		JobDescription: jobDescription,
		Comparison:     types.FailedComparison(),
	}
	if err := Run(ctx, a.withID(id), a.scan, state); err != nil {
		return types.ScanResult{}, err
	}

	if state.Comprehensive.SentenceAnalyses == nil {
		state.Comprehensive.SentenceAnalyses = []types.SentenceScore{}
	}

	return types.ScanResult{
		AnalysisID:         id,
		Analysis:           state.Comprehensive,
		ResumeJSON:         state.Profile,
		JobDescriptionJSON: state.Job,
		ComparisonJSON:     state.Comparison,
	}, nil
}

// Describe reports the stages of both flows.
func (a *Analyzer) Describe() map[string][]Status {
	return map[string][]Status{
		"upload": Describe(a.upload),
		"scan":   Describe(a.scan),
	}
}

func (a *Analyzer) withID(id string) Deps {
	deps := a.deps
	deps.Logger = deps.Logger.With(zap.String("analysis_id", id))
	return deps
}
