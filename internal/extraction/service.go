// Package extraction implements ai.StructuredExtractor on top of a raw model
// completer: it renders the embedded prompts, reads the JSON replies and
// substitutes typed defaults when a call fails.
package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/ai"
	"github.com/spigell/ats-scorer/internal/logger"
	"github.com/spigell/ats-scorer/internal/types"
	"github.com/spigell/ats-scorer/internal/utils"
)

const (
	defaultMaxLogLength = 200
	defaultTimeout      = 60 * time.Second
	rawPrefixLength     = 500
)

var errNoCompleter = errors.New("extraction completer is not configured")

// Options configures a Service.
type Options struct {
	// Provider names the model backend in logs.
	Provider string
	// Timeout bounds every model call. An expired call counts as failed.
	Timeout time.Duration
	// MaxLogLength bounds the prompt and response previews written at debug level.
	MaxLogLength int
}

// Service is the model-backed structured extractor.
type Service struct {
	completer    ai.Completer
	logger       *zap.Logger
	provider     string
	timeout      time.Duration
	maxLogLength int
	now          func() time.Time
}

var _ ai.StructuredExtractor = (*Service)(nil)

// New creates a Service.
func New(completer ai.Completer, opts Options, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.MaxLogLength <= 0 {
		opts.MaxLogLength = defaultMaxLogLength
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return &Service{
		completer:    completer,
		logger:       log,
		provider:     opts.Provider,
		timeout:      opts.Timeout,
		maxLogLength: opts.MaxLogLength,
		now:          time.Now,
	}
}

// ParseResume extracts the structured profile from résumé text. On failure
// the empty profile is returned with the error.
func (s *Service) ParseResume(ctx context.Context, text string) (types.ResumeProfile, error) {
	fallback := types.EmptyResumeProfile()

	prompt, err := renderPrompt(promptResume, map[string]string{"RESUME_TEXT": CleanText(text)})
	if err != nil {
		return fallback, err
	}

	raw, err := s.complete(ctx, ai.Request{
		Operation: ai.OperationParseResume,
		System:    systemResume,
		Prompt:    prompt,
		JSON:      true,
	})
	if err != nil {
		return fallback, s.fallback(ai.OperationParseResume, err)
	}

	var profile types.ResumeProfile
	if _, err := decodeReply(ai.OperationParseResume, raw, &profile); err != nil {
		return fallback, s.fallback(ai.OperationParseResume, err)
	}
	profile.Normalize()
	return profile, nil
}

// ExtractJob extracts the job requirements from a job description. On failure
// the default job profile stamped with the current time is returned.
func (s *Service) ExtractJob(ctx context.Context, description string) (types.JobProfile, error) {
	now := s.now()
	fallback := types.DefaultJobProfile(now)

	prompt, err := renderPrompt(promptJob, map[string]string{
		"EXTRACTION_DATE": now.UTC().Format(time.RFC3339),
		"JOB_DESCRIPTION": strings.TrimSpace(description),
	})
	if err != nil {
		return fallback, err
	}

	raw, err := s.complete(ctx, ai.Request{
		Operation: ai.OperationExtractJob,
		System:    systemJob,
		Prompt:    prompt,
		JSON:      true,
	})
	if err != nil {
		return fallback, s.fallback(ai.OperationExtractJob, err)
	}

	var job types.JobProfile
	if _, err := decodeReply(ai.OperationExtractJob, raw, &job); err != nil {
		return fallback, s.fallback(ai.OperationExtractJob, err)
	}
	if job.Metadata.ExtractionDate == "" {
		job.Metadata = types.DefaultJobMetadata(now)
	}
	job.Normalize()
	return job, nil
}

// AnalyzeKeywords classifies the résumé vocabulary. A nil analysis is
// returned on failure so that scoring treats it as absent.
func (s *Service) AnalyzeKeywords(ctx context.Context, text string) (*types.KeywordAnalysis, error) {
	prompt, err := renderPrompt(promptKeywords, map[string]string{"RESUME_TEXT": strings.TrimSpace(text)})
	if err != nil {
		return nil, err
	}

	raw, err := s.complete(ctx, ai.Request{
		Operation: ai.OperationAnalyzeKeywords,
		System:    systemKeywords,
		Prompt:    prompt,
		JSON:      true,
	})
	if err != nil {
		return nil, s.fallback(ai.OperationAnalyzeKeywords, err)
	}

	var kw types.KeywordAnalysis
	obj, err := decodeReply(ai.OperationAnalyzeKeywords, raw, &kw)
	if err != nil {
		return nil, s.fallback(ai.OperationAnalyzeKeywords, err)
	}
	finishKeywordStats(&kw, obj)
	return &kw, nil
}

// finishKeywordStats recomputes the derived statistics instead of trusting
// the model's arithmetic.
func finishKeywordStats(kw *types.KeywordAnalysis, obj map[string]any) {
	if kw.KeywordStats == nil {
		return
	}
	stats := kw.KeywordStats
	if rawStats, ok := obj["keyword_stats"].(map[string]any); ok {
		if _, counted := rawStats["ineffective_count"]; counted {
			stats.IneffectiveScore = types.EffectivenessFor(stats.IneffectiveCount)
		}
	}
	stats.BalanceFeedback = types.BalanceFeedbackFor(stats.TechnicalSkillsCount, stats.SoftSkillsCount)
}

// JudgeSentence scores a bullet against the five-dimension rubric. Scores
// are returned as the model reported them.
func (s *Service) JudgeSentence(ctx context.Context, sentence string) (types.Components, error) {
	prompt, err := renderPrompt(promptSentence, map[string]string{"SENTENCE": sentence})
	if err != nil {
		return types.Components{}, err
	}

	raw, err := s.complete(ctx, ai.Request{
		Operation: ai.OperationJudgeSentence,
		System:    systemSentence,
		Prompt:    prompt,
		JSON:      true,
	})
	if err != nil {
		return types.Components{}, s.fallback(ai.OperationJudgeSentence, err)
	}

	var reply struct {
		Components *types.Components `json:"components"`
	}
	obj, err := decodeReply(ai.OperationJudgeSentence, raw, &reply)
	if err != nil {
		return types.Components{}, s.fallback(ai.OperationJudgeSentence, err)
	}
	if reply.Components != nil {
		return *reply.Components, nil
	}

	// Some replies put the dimensions at the top level.
	var flat types.Components
	if err := types.Decode(obj, &flat); err != nil {
		return types.Components{}, s.fallback(ai.OperationJudgeSentence,
			&ParseError{Operation: ai.OperationJudgeSentence, Raw: raw, Err: err})
	}
	return flat, nil
}

// ListMistakes names what a sentence is missing given its component scores.
func (s *Service) ListMistakes(ctx context.Context, sentence string, components types.Components) ([]types.Mistake, error) {
	encoded, err := json.MarshalIndent(components, "", "  ")
	if err != nil {
		return []types.Mistake{}, fmt.Errorf("encode components: %w", err)
	}

	prompt, err := renderPrompt(promptMistakes, map[string]string{
		"SENTENCE":        sentence,
		"COMPONENTS_JSON": string(encoded),
	})
	if err != nil {
		return []types.Mistake{}, err
	}

	raw, err := s.complete(ctx, ai.Request{
		Operation: ai.OperationListMistakes,
		System:    systemMistakes,
		Prompt:    prompt,
		JSON:      true,
	})
	if err != nil {
		return []types.Mistake{}, s.fallback(ai.OperationListMistakes, err)
	}

	var reply struct {
		Mistakes []types.Mistake `json:"mistakes"`
	}
	if _, err := decodeReply(ai.OperationListMistakes, raw, &reply); err != nil {
		return []types.Mistake{}, s.fallback(ai.OperationListMistakes, err)
	}
	if reply.Mistakes == nil {
		return []types.Mistake{}, nil
	}
	return reply.Mistakes, nil
}

// SuggestImprovement rewrites a bullet so that it meets every rubric
// criterion. The reply is plain text with double quotes removed.
func (s *Service) SuggestImprovement(ctx context.Context, sentence string) (string, error) {
	prompt, err := renderPrompt(promptSuggestion, map[string]string{"SENTENCE": sentence})
	if err != nil {
		return "", err
	}

	raw, err := s.complete(ctx, ai.Request{
		Operation: ai.OperationSuggest,
		System:    systemSuggestion,
		Prompt:    prompt,
	})
	if err != nil {
		return "", s.fallback(ai.OperationSuggest, err)
	}
	return strings.ReplaceAll(strings.TrimSpace(raw), `"`, ""), nil
}

// CompareResumeJob asks for the weighted résumé to job comparison and
// returns the reply JSON unvalidated.
func (s *Service) CompareResumeJob(ctx context.Context, resume types.ResumeProfile, job types.JobProfile) (string, error) {
	resumeJSON, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode resume: %w", err)
	}
	jobJSON, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode job: %w", err)
	}

	prompt, err := renderPrompt(promptComparison, map[string]string{
		"RESUME_JSON": string(resumeJSON),
		"JOB_JSON":    string(jobJSON),
	})
	if err != nil {
		return "", err
	}

	raw, err := s.complete(ctx, ai.Request{
		Operation: ai.OperationCompare,
		System:    systemComparison,
		Prompt:    prompt,
		JSON:      true,
	})
	if err != nil {
		return "", s.fallback(ai.OperationCompare, err)
	}
	if _, err := parseObject(ai.OperationCompare, raw); err != nil {
		return "", s.fallback(ai.OperationCompare, err)
	}
	return extractJSON(raw), nil
}

func (s *Service) complete(ctx context.Context, req ai.Request) (string, error) {
	if s.completer == nil {
		return "", errNoCompleter
	}

	log := logger.ForCall(s.logger, logger.Call{
		Provider:  s.provider,
		Model:     s.completer.Model(),
		Operation: req.Operation,
	})
	log.Debug("sending model request",
		zap.Int("prompt_length", len(req.Prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(req.Prompt, s.maxLogLength)),
		zap.Duration("timeout", s.timeout),
	)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	raw, err := s.completer.Complete(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", req.Operation, err)
	}

	log.Debug("received model response",
		zap.Int("response_length", len(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, s.maxLogLength)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return raw, nil
}

// fallback logs a failed operation before its typed default is returned.
func (s *Service) fallback(operation string, err error) error {
	fields := []zap.Field{zap.String(logger.FieldOperation, operation), zap.Error(err)}

	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		fields = append(fields, zap.String("raw_prefix", utils.TruncateForLog(parseErr.Raw, rawPrefixLength)))
	}

	s.logger.Warn("model call failed, using default result", fields...)
	return err
}
