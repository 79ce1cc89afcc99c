package pipeline

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Stage names.
const (
	StageParseResume   = "parse_resume"
	StageParseBoth     = "parse_resume_and_job"
	StageKeywords      = "keywords"
	StageSentences     = "sentences"
	StageScore         = "score"
	StageComparison    = "comparison"
	StageComprehensive = "comprehensive"
)

var (
	errNoExtractor  = errors.New("structured extractor is required")
	errNoRubric     = errors.New("rubric coordinator is required")
	errNoScorer     = errors.New("scorer is required")
	errNoComparator = errors.New("comparator is required")
)

// toggle carries the enabled state shared by every stage.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

func (t *toggle) status(name string, details map[string]string) Status {
	return Status{Name: name, Enabled: !t.disabled, Reason: t.reason, Details: details}
}

func warn(deps Deps, msg string, err error) {
	if deps.Logger != nil {
		deps.Logger.Warn(msg, zap.Error(err))
	}
}

type parseResumeStage struct{ toggle }

// NewParseResume creates the stage that extracts the résumé profile.
func NewParseResume() Stage { return &parseResumeStage{} }

func (s *parseResumeStage) Name() string { return StageParseResume }

func (s *parseResumeStage) Validate(deps Deps) error {
	if deps.Extractor == nil {
		return errNoExtractor
	}
	return nil
}

func (s *parseResumeStage) Apply(ctx context.Context, deps Deps, state *State) (Step, error) {
	profile, err := deps.Extractor.ParseResume(ctx, state.Text)
	state.Profile = profile
	if err != nil {
		warn(deps, "resume parsing degraded", err)
		return Step{Degraded: true}, nil
	}
	return Step{Items: len(profile.Experience) + len(profile.Projects) + len(profile.Education)}, nil
}

func (s *parseResumeStage) Status() Status { return s.status(s.Name(), nil) }

type parseBothStage struct{ toggle }

// NewParseResumeAndJob creates the stage that extracts the résumé and the job
// profile concurrently.
func NewParseResumeAndJob() Stage { return &parseBothStage{} }

func (s *parseBothStage) Name() string { return StageParseBoth }

func (s *parseBothStage) Validate(deps Deps) error {
	if deps.Extractor == nil {
		return errNoExtractor
	}
	return nil
}

func (s *parseBothStage) Apply(ctx context.Context, deps Deps, state *State) (Step, error) {
	var resumeErr, jobErr error

	var g errgroup.Group
	g.Go(func() error {
		state.Profile, resumeErr = deps.Extractor.ParseResume(ctx, state.Text)
		return nil
	})
	g.Go(func() error {
		state.Job, jobErr = deps.Extractor.ExtractJob(ctx, state.JobDescription)
		return nil
	})
	_ = g.Wait()

	step := Step{Items: 2}
	if resumeErr != nil {
		warn(deps, "resume parsing degraded", resumeErr)
		step.Degraded = true
	}
	if jobErr != nil {
		warn(deps, "job extraction degraded", jobErr)
		step.Degraded = true
	}
	return step, nil
}

func (s *parseBothStage) Status() Status { return s.status(s.Name(), nil) }

type keywordsStage struct{ toggle }

// NewKeywords creates the keyword analysis stage.
func NewKeywords() Stage { return &keywordsStage{} }

func (s *keywordsStage) Name() string { return StageKeywords }

func (s *keywordsStage) Validate(deps Deps) error {
	if deps.Extractor == nil {
		return errNoExtractor
	}
	return nil
}

func (s *keywordsStage) Apply(ctx context.Context, deps Deps, state *State) (Step, error) {
	kw, err := deps.Extractor.AnalyzeKeywords(ctx, state.Text)
	state.Keywords = kw
	if err != nil {
		warn(deps, "keyword analysis degraded", err)
		return Step{Degraded: true}, nil
	}
	return Step{Items: kw.IneffectiveKeywords.Total()}, nil
}

func (s *keywordsStage) Status() Status { return s.status(s.Name(), nil) }

type sentencesStage struct{ toggle }

// NewSentences creates the stage that runs the rubric over résumé highlights.
func NewSentences() Stage { return &sentencesStage{} }

func (s *sentencesStage) Name() string { return StageSentences }

func (s *sentencesStage) Validate(deps Deps) error {
	if deps.Rubric == nil {
		return errNoRubric
	}
	return nil
}

func (s *sentencesStage) Apply(ctx context.Context, deps Deps, state *State) (Step, error) {
	state.Sentences = deps.Rubric.AnalyzeHighlights(ctx, &state.Profile)
	return Step{Items: len(state.Sentences)}, nil
}

func (s *sentencesStage) Status() Status { return s.status(s.Name(), nil) }

type scoreStage struct{ toggle }

// NewScore creates the deterministic scoring stage.
func NewScore() Stage { return &scoreStage{} }

func (s *scoreStage) Name() string { return StageScore }

func (s *scoreStage) Validate(deps Deps) error {
	if deps.Scorer == nil {
		return errNoScorer
	}
	return nil
}

func (s *scoreStage) Apply(_ context.Context, deps Deps, state *State) (Step, error) {
	result := deps.Scorer.Score(&state.Profile, state.Text, state.Keywords)
	state.Score = &result
	return Step{Items: len(result.Breakdown), Degraded: result.Failed()}, nil
}

func (s *scoreStage) Status() Status { return s.status(s.Name(), nil) }

type comparisonStage struct{ toggle }

// NewComparison creates the résumé to job comparison stage.
func NewComparison() Stage { return &comparisonStage{} }

func (s *comparisonStage) Name() string { return StageComparison }

func (s *comparisonStage) Validate(deps Deps) error {
	if deps.Comparator == nil {
		return errNoComparator
	}
	return nil
}

func (s *comparisonStage) Apply(ctx context.Context, deps Deps, state *State) (Step, error) {
	state.Comparison = deps.Comparator.Compare(ctx, state.Profile, state.Job)
	return Step{
		Items:    len(state.Comparison.ScoringBreakdown),
		Degraded: len(state.Comparison.ScoringBreakdown) == 0,
	}, nil
}

func (s *comparisonStage) Status() Status { return s.status(s.Name(), nil) }

type comprehensiveStage struct {
	toggle
	keywords bool
}

// NewComprehensive creates the sentence-level pass over the whole résumé
// text. withKeywords controls whether it also runs keyword analysis.
func NewComprehensive(withKeywords bool) Stage {
	return &comprehensiveStage{keywords: withKeywords}
}

func (s *comprehensiveStage) Name() string { return StageComprehensive }

func (s *comprehensiveStage) Validate(deps Deps) error {
	if deps.Rubric == nil {
		return errNoRubric
	}
	if s.keywords && deps.Extractor == nil {
		return errNoExtractor
	}
	return nil
}

func (s *comprehensiveStage) Apply(ctx context.Context, deps Deps, state *State) (Step, error) {
	var step Step
	kw := state.Keywords
	if s.keywords && kw == nil {
		var err error
		kw, err = deps.Extractor.AnalyzeKeywords(ctx, state.Text)
		if err != nil {
			warn(deps, "keyword analysis degraded", err)
			step.Degraded = true
		}
		state.Keywords = kw
	}

	state.Comprehensive = deps.Rubric.Comprehensive(ctx, state.Text, state.JobDescription, kw)
	step.Items = state.Comprehensive.TotalSentencesAnalyzed
	return step, nil
}

func (s *comprehensiveStage) Status() Status {
	return s.status(s.Name(), map[string]string{"keywords": strconv.FormatBool(s.keywords)})
}
