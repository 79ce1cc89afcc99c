package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spigell/ats-scorer/internal/ai"
	"github.com/spigell/ats-scorer/internal/ai/cache"
	"github.com/spigell/ats-scorer/internal/ai/gemini"
	"github.com/spigell/ats-scorer/internal/ai/openai"
	"github.com/spigell/ats-scorer/internal/comparison"
	"github.com/spigell/ats-scorer/internal/extraction"
	"github.com/spigell/ats-scorer/internal/pipeline"
	"github.com/spigell/ats-scorer/internal/rubric"
	"github.com/spigell/ats-scorer/internal/scoring"
	"github.com/spigell/ats-scorer/internal/secrets"

	"go.uber.org/zap"
)

const (
	providerGemini = "gemini"
	providerOpenAI = "openai"
)

// application bundles everything a command needs to run an analysis.
type application struct {
	analyzer *pipeline.Analyzer
	scorer   *scoring.Scorer
	close    func() error
}

func newApplication(ctx context.Context, config *Config, logger *zap.Logger) (*application, error) {
	completer, err := newCompleter(ctx, config.AI, logger)
	if err != nil {
		return nil, err
	}

	closeFn := func() error { return nil }
	if config.Cache.Enabled {
		cached := cache.New(completer, cache.Options{
			RedisURL:   config.Cache.RedisURL,
			TTL:        config.Cache.TTL,
			MaxEntries: config.Cache.MaxEntries,
		}, logger.Named("cache"))
		completer = cached
		closeFn = func() error {
			stats := cached.Stats()
			logger.Debug("completion cache stats",
				zap.Int64("hits", stats.Hits),
				zap.Int64("misses", stats.Misses),
				zap.Int("entries", stats.Entries),
			)
			return cached.Close()
		}
	}

	extractor := extraction.New(completer, extraction.Options{
		Provider:     providerName(config.AI.Provider),
		Timeout:      config.AI.RequestTimeout,
		MaxLogLength: config.AI.MaxLogLength,
	}, logger.Named("extraction"))

	comparator, err := comparison.New(extractor, logger.Named("comparison"))
	if err != nil {
		return nil, fmt.Errorf("creating comparator: %w", err)
	}

	coordinator := rubric.NewCoordinator(extractor, rubric.Options{
		Timeout:        config.AI.RequestTimeout,
		MaxConcurrency: config.AI.MaxConcurrency,
		RatePerSecond:  config.AI.RatePerSecond,
	}, logger.Named("rubric"))

	scorer := scoring.NewScorer(logger.Named("scoring")).WithFormatOptions(scoring.FormatOptions{
		KeepLines: config.Analysis.LineAwareFormatting,
	})

	analyzer := pipeline.NewAnalyzer(pipeline.Deps{
		Extractor:  extractor,
		Rubric:     coordinator,
		Scorer:     scorer,
		Comparator: comparator,
		Logger:     logger,
	}, pipeline.Toggles{
		Sentences:  config.Analysis.Sentences,
		Keywords:   config.Analysis.Keywords,
		Comparison: config.Analysis.Comparison,
	})

	for flow, stages := range analyzer.Describe() {
		for _, st := range stages {
			logger.Debug("analysis stage",
				zap.String("flow", flow),
				zap.String("stage", st.Name),
				zap.Bool("enabled", st.Enabled),
				zap.String("reason", st.Reason),
			)
		}
	}

	return &application{analyzer: analyzer, scorer: scorer, close: closeFn}, nil
}

// providerName returns the configured provider, defaulting to openai.
func providerName(configured string) string {
	if p := strings.TrimSpace(strings.ToLower(configured)); p != "" {
		return p
	}
	return providerOpenAI
}

func newCompleter(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Completer, error) {
	switch providerName(cfg.Provider) {
	case providerGemini:
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: cfg.Gemini.APIKey,
			File:  cfg.Gemini.APIKeyFile,
			Env:   "GEMINI_API_KEY",
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
		}

		genLogger := logger.With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries))
		generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
		if err != nil {
			return nil, err
		}
		return generator, nil
	case providerOpenAI:
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "openai api key",
			Value: cfg.OpenAI.APIKey,
			File:  cfg.OpenAI.APIKeyFile,
			Env:   "OPENAI_API_KEY",
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.openai.api-key-file or OPENAI_API_KEY)", err)
		}

		client, err := openai.New(openai.Config{
			APIKey:     apiKey,
			BaseURL:    cfg.OpenAI.BaseURL,
			Model:      cfg.OpenAI.Model,
			MaxRetries: cfg.OpenAI.MaxRetries,
		}, logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}
