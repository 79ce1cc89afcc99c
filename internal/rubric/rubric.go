// Package rubric scores résumé bullets against the five-dimension sentence
// rubric and requests fixes for the weak ones.
package rubric

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/spigell/ats-scorer/internal/types"
)

const (
	defaultTimeout        = 30 * time.Second
	defaultMaxConcurrency = 5
	minHighlightLength    = 10
)

// Judge is the part of the structured extractor the rubric delegates to.
type Judge interface {
	JudgeSentence(ctx context.Context, sentence string) (types.Components, error)
	ListMistakes(ctx context.Context, sentence string, components types.Components) ([]types.Mistake, error)
	SuggestImprovement(ctx context.Context, sentence string) (string, error)
}

// Options tune how delegated calls are issued. A zero RatePerSecond means
// no pacing.
type Options struct {
	Timeout        time.Duration
	MaxConcurrency int
	RatePerSecond  float64
}

// Coordinator runs the rubric over sentences.
type Coordinator struct {
	judge          Judge
	logger         *zap.Logger
	timeout        time.Duration
	maxConcurrency int
	limiter        *rate.Limiter
	now            func() time.Time
}

// NewCoordinator creates a Coordinator around judge.
func NewCoordinator(judge Judge, opts Options, log *zap.Logger) *Coordinator {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = defaultMaxConcurrency
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RatePerSecond), opts.MaxConcurrency)
	}

	return &Coordinator{
		judge:          judge,
		logger:         log,
		timeout:        opts.Timeout,
		maxConcurrency: opts.MaxConcurrency,
		limiter:        limiter,
		now:            time.Now,
	}
}

// Analyze scores one sentence. Sentences totalling at most
// types.SuggestionThreshold also get a mistakes list and a rewrite; others
// get neither. An error means the sentence could not be judged at all.
func (c *Coordinator) Analyze(ctx context.Context, sentence string) (types.SentenceScore, error) {
	if c.judge == nil {
		return types.SentenceScore{}, errors.New("rubric judge is not configured")
	}

	var components types.Components
	err := c.call(ctx, func(ctx context.Context) error {
		var err error
		components, err = c.judge.JudgeSentence(ctx, sentence)
		return err
	})
	if err != nil {
		return types.SentenceScore{}, fmt.Errorf("judge sentence: %w", err)
	}

	components = components.Clamped()
	score := types.SentenceScore{
		Sentence:   sentence,
		TotalScore: components.Total(),
		Components: components,
		Mistakes:   []types.Mistake{},
	}
	if !score.NeedsImprovement() {
		return score, nil
	}

	err = c.call(ctx, func(ctx context.Context) error {
		mistakes, err := c.judge.ListMistakes(ctx, sentence, components)
		if mistakes != nil {
			score.Mistakes = mistakes
		}
		return err
	})
	if err != nil {
		c.logger.Warn("mistakes analysis failed", zap.Error(err))
	}

	err = c.call(ctx, func(ctx context.Context) error {
		var err error
		score.ImprovementSuggestion, err = c.judge.SuggestImprovement(ctx, sentence)
		return err
	})
	if err != nil {
		c.logger.Warn("improvement suggestion failed", zap.Error(err))
		score.ImprovementSuggestion = ""
		score.Mistakes = []types.Mistake{}
	}

	return score, nil
}

// call paces and bounds a single delegated call.
func (c *Coordinator) call(ctx context.Context, fn func(context.Context) error) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return fn(ctx)
}

// AnalyzeAll scores sentences concurrently and waits for all of them. The
// result keeps input order; sentences that could not be judged are dropped.
func (c *Coordinator) AnalyzeAll(ctx context.Context, sentences []string) []types.SentenceScore {
	results := make([]*types.SentenceScore, len(sentences))

	var g errgroup.Group
	g.SetLimit(c.maxConcurrency)
	for i, sentence := range sentences {
		g.Go(func() error {
			score, err := c.Analyze(ctx, sentence)
			if err != nil {
				c.logger.Warn("sentence analysis failed",
					zap.Int("index", i),
					zap.Error(err),
				)
				return nil
			}
			results[i] = &score
			return nil
		})
	}
	_ = g.Wait()

	out := make([]types.SentenceScore, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}

// AnalyzeHighlights scores the experience and project bullets of a profile
// whose trimmed length exceeds ten characters.
func (c *Coordinator) AnalyzeHighlights(ctx context.Context, profile *types.ResumeProfile) []types.SentenceScore {
	if profile == nil {
		return []types.SentenceScore{}
	}

	var sentences []string
	for _, h := range profile.Highlights() {
		if len(strings.TrimSpace(h)) > minHighlightLength {
			sentences = append(sentences, h)
		}
	}
	return c.AnalyzeAll(ctx, sentences)
}

// Comprehensive runs the rubric over every substantial sentence of the raw
// résumé text.
func (c *Coordinator) Comprehensive(ctx context.Context, text, jobDescription string, kw *types.KeywordAnalysis) types.ComprehensiveAnalysis {
	sentences := SplitSentences(text)
	analyses := c.AnalyzeAll(ctx, sentences)

	c.logger.Debug("comprehensive analysis finished",
		zap.Int("sentences", len(sentences)),
		zap.Int("analyzed", len(analyses)),
	)

	return types.ComprehensiveAnalysis{
		ResumeText:             flatten(text),
		JobDescription:         jobDescription,
		SentenceAnalyses:       analyses,
		KeywordAnalysis:        kw,
		OverallScore:           OverallScore(analyses),
		TotalSentencesAnalyzed: len(analyses),
		AnalysisTimestamp:      c.now().UTC().Format(time.RFC3339),
	}
}

// OverallScore is the rounded mean sentence total, or 0 without sentences.
func OverallScore(analyses []types.SentenceScore) int {
	if len(analyses) == 0 {
		return 0
	}
	var sum float64
	for _, a := range analyses {
		sum += a.TotalScore
	}
	return int(math.Round(sum / float64(len(analyses))))
}
