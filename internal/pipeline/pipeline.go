// Package pipeline runs the résumé analysis flows as ordered stages that can
// be disabled individually.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/ai"
	"github.com/spigell/ats-scorer/internal/comparison"
	"github.com/spigell/ats-scorer/internal/rubric"
	"github.com/spigell/ats-scorer/internal/scoring"
	"github.com/spigell/ats-scorer/internal/types"
)

// Stage represents a single step of an analysis flow.
type Stage interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(deps Deps) error
	Apply(ctx context.Context, deps Deps, state *State) (Step, error)
}

// Deps aggregates the collaborators shared across all stages.
type Deps struct {
	Extractor  ai.StructuredExtractor
	Rubric     *rubric.Coordinator
	Scorer     *scoring.Scorer
	Comparator *comparison.Comparator
	Logger     *zap.Logger
}

// State is the analysis being built up by the stages of one run.
type State struct {
	Text           string
	JobDescription string

	Profile       types.ResumeProfile
	Job           types.JobProfile
	Keywords      *types.KeywordAnalysis
	Sentences     []types.SentenceScore
	Score         *types.ResumeScoreResult
	Comparison    types.ComparisonResult
	Comprehensive types.ComprehensiveAnalysis
}

// Step describes the result of executing a stage. Degraded is set when a
// delegated call failed and a default value was used instead.
type Step struct {
	Items    int
	Degraded bool
	Elapsed  time.Duration
}

// Status represents runtime information about a stage.
type Status struct {
	Name    string            `json:"name"`
	Enabled bool              `json:"enabled"`
	Reason  string            `json:"reason,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// statusProvider is implemented by stages that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// DisableByName marks a stage with the provided name as disabled while keeping it in the list.
func DisableByName(stages []Stage, name, reason string) {
	for _, stage := range stages {
		if stage.Name() == name {
			stage.Disable(reason)
		}
	}
}

// Run validates every enabled stage and then applies them in order.
func Run(ctx context.Context, deps Deps, stages []Stage, state *State) error {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	for _, stage := range stages {
		if !stage.IsEnabled() {
			continue
		}
		if err := stage.Validate(deps); err != nil {
			return fmt.Errorf("%s: %w", stage.Name(), err)
		}
	}

	for _, stage := range stages {
		if !stage.IsEnabled() {
			log.Debug("stage disabled", zap.String("name", stage.Name()))
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		started := time.Now()
		info, err := stage.Apply(ctx, deps, state)
		if err != nil {
			return fmt.Errorf("%s: %w", stage.Name(), err)
		}
		info.Elapsed = time.Since(started)

		log.Info("analysis step",
			zap.String("name", stage.Name()),
			zap.Int("items", info.Items),
			zap.Bool("degraded", info.Degraded),
			zap.Duration("elapsed", info.Elapsed),
		)
	}

	return nil
}

// Describe returns status entries for the provided stages.
func Describe(stages []Stage) []Status {
	statuses := make([]Status, 0, len(stages))
	for _, stage := range stages {
		if reporter, ok := stage.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    stage.Name(),
			Enabled: stage.IsEnabled(),
		})
	}
	return statuses
}
