package cmd

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spigell/ats-scorer/internal/server"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "ats-scorer"
)

type Config struct {
	AI       *AIConfig       `mapstructure:"ai"`
	Cache    *CacheConfig    `mapstructure:"cache"`
	Server   server.Config   `mapstructure:"server"`
	Analysis *AnalysisConfig `mapstructure:"analysis"`
}

type AIConfig struct {
	Provider       string        `mapstructure:"provider"`
	RequestTimeout time.Duration `mapstructure:"request-timeout"`
	MaxConcurrency int           `mapstructure:"max-concurrency"`
	RatePerSecond  float64       `mapstructure:"rate-per-second"`
	MaxLogLength   int           `mapstructure:"max-log-length"`
	Gemini         *GeminiConfig `mapstructure:"gemini"`
	OpenAI         *OpenAIConfig `mapstructure:"openai"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	MaxRetries int    `mapstructure:"max-retries"`
}

type OpenAIConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	BaseURL    string `mapstructure:"base-url"`
	MaxRetries int    `mapstructure:"max-retries"`
}

type CacheConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	TTL        time.Duration `mapstructure:"ttl"`
	MaxEntries int           `mapstructure:"max-entries"`
	RedisURL   string        `mapstructure:"redis-url"`
}

// AnalysisConfig switches optional analysis stages.
type AnalysisConfig struct {
	Sentences  bool `mapstructure:"sentences"`
	Keywords   bool `mapstructure:"keywords"`
	Comparison bool `mapstructure:"comparison"`

	// LineAwareFormatting keeps line breaks for the clean-formatting checks.
	LineAwareFormatting bool `mapstructure:"line-aware-formatting"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "ats-scorer rates resumes the way applicant tracking systems do and matches them against job descriptions",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	viper.SetEnvPrefix("ATS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	for key, env := range map[string]string{
		"ai.openai.api-key": "OPENAI_API_KEY",
		"ai.gemini.api-key": "GEMINI_API_KEY",
		"cache.redis-url":   "ATS_REDIS_URL",
	} {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	viper.SetDefault("ai.provider", "openai")
	viper.SetDefault("ai.request-timeout", 30*time.Second)
	viper.SetDefault("ai.max-concurrency", 5)
	viper.SetDefault("ai.max-log-length", 200)
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.ttl", time.Hour)
	viper.SetDefault("cache.max-entries", 1000)
	viper.SetDefault("server.addr", ":5000")
	viper.SetDefault("server.max-upload-bytes", 2<<20)
	viper.SetDefault("analysis.sentences", true)
	viper.SetDefault("analysis.keywords", true)
	viper.SetDefault("analysis.comparison", true)
	viper.SetDefault("analysis.line-aware-formatting", false)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is ats-scorer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Without an explicit --config the file is optional: env and defaults are enough.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}
	if config.AI.OpenAI == nil {
		config.AI.OpenAI = &OpenAIConfig{}
	}
	if config.Cache == nil {
		config.Cache = &CacheConfig{}
	}
	if config.Analysis == nil {
		config.Analysis = &AnalysisConfig{Sentences: true, Keywords: true, Comparison: true}
	}

	return config, nil
}
