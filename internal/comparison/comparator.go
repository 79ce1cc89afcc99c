// Package comparison validates and post-processes the weighted résumé to job
// match produced by the extraction collaborator.
package comparison

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/types"
)

//go:embed schema.json
var schemaJSON string

// Delegate produces the raw comparison JSON.
type Delegate interface {
	CompareResumeJob(ctx context.Context, resume types.ResumeProfile, job types.JobProfile) (string, error)
}

// FieldError is a single schema violation.
type FieldError struct {
	Field       string
	Description string
}

// SchemaError lists every schema violation of a comparison reply.
type SchemaError struct {
	Errors []FieldError
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Description)
	}
	return "comparison does not match schema: " + strings.Join(parts, "; ")
}

// Comparator turns delegated comparison replies into ComparisonResult values.
type Comparator struct {
	delegate Delegate
	contract Contract
	schema   *gojsonschema.Schema
	logger   *zap.Logger
}

// New creates a Comparator using DefaultContract.
func New(delegate Delegate, log *zap.Logger) (*Comparator, error) {
	return NewWithContract(delegate, DefaultContract, log)
}

// NewWithContract creates a Comparator with a custom weight table.
func NewWithContract(delegate Delegate, contract Contract, log *zap.Logger) (*Comparator, error) {
	if err := contract.Validate(); err != nil {
		return nil, err
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile comparison schema: %w", err)
	}

	if log == nil {
		log = zap.NewNop()
	}
	return &Comparator{
		delegate: delegate,
		contract: contract,
		schema:   schema,
		logger:   log,
	}, nil
}

// Compare matches a résumé against a job. It never fails: any delegated or
// validation error yields types.FailedComparison.
func (c *Comparator) Compare(ctx context.Context, resume types.ResumeProfile, job types.JobProfile) types.ComparisonResult {
	if c.delegate == nil {
		c.logger.Warn("comparison skipped", zap.String("reason", "no delegate"))
		return types.FailedComparison()
	}

	raw, err := c.delegate.CompareResumeJob(ctx, resume, job)
	if err != nil {
		c.logger.Warn("comparison failed", zap.Error(err))
		return types.FailedComparison()
	}

	result, err := c.Parse(raw)
	if err != nil {
		c.logger.Warn("comparison reply rejected", zap.Error(err))
		return types.FailedComparison()
	}
	return result
}

// Parse validates a raw comparison reply and applies the contract to it.
func (c *Comparator) Parse(raw string) (types.ComparisonResult, error) {
	if err := c.validate(raw); err != nil {
		return types.ComparisonResult{}, err
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return types.ComparisonResult{}, fmt.Errorf("decode comparison: %w", err)
	}

	var result types.ComparisonResult
	if err := types.Decode(obj, &result); err != nil {
		return types.ComparisonResult{}, err
	}
	result.Normalize()

	breakdown, err := c.contract.Apply(result.ScoringBreakdown)
	var contractErr *ContractError
	switch {
	case errors.As(err, &contractErr):
		c.logger.Debug("comparison breakdown adjusted to contract", zap.Strings("problems", contractErr.Problems))
	case err != nil:
		return types.ComparisonResult{}, err
	}
	result.ScoringBreakdown = breakdown

	overall := math.Round(c.contract.Total(breakdown)*10) / 10
	result.MatchAnalysis.OverallScore = overall
	result.MatchAnalysis.Grade = GradeFor(overall)
	if !hasMatchPercentage(obj) {
		result.MatchAnalysis.MatchPercentage = overall
	}

	if generic := GenericRecommendations(result.Recommendations); len(generic) > 0 {
		c.logger.Debug("recommendations without a specific skill or project", zap.Strings("recommendations", generic))
	}

	if err := types.Validate(result); err != nil {
		return types.ComparisonResult{}, fmt.Errorf("validate comparison: %w", err)
	}
	return result, nil
}

func (c *Comparator) validate(raw string) error {
	res, err := c.schema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return fmt.Errorf("validate comparison: %w", err)
	}
	if res.Valid() {
		return nil
	}

	schemaErr := &SchemaError{}
	for _, e := range res.Errors() {
		schemaErr.Errors = append(schemaErr.Errors, FieldError{Field: e.Field(), Description: e.Description()})
	}
	return schemaErr
}

func hasMatchPercentage(obj map[string]any) bool {
	analysis, ok := obj["ats_match_analysis"].(map[string]any)
	if !ok {
		return false
	}
	v, ok := analysis["match_percentage"]
	if !ok || v == nil {
		return false
	}
	n, ok := v.(float64)
	return !ok || n != 0
}
