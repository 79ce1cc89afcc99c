package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spigell/ats-scorer/internal/logger"
	"github.com/spigell/ats-scorer/internal/textextract"
	"github.com/spigell/ats-scorer/internal/types"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptBack = "back"
	stdinPath  = "-"
)

var scoreCmd = &cobra.Command{
	Use:   "score FILE",
	Short: "Analyze and score a resume (PDF, DOCX or plain text)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		score(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().BoolP("review", "r", false, "browse weak sentences interactively after the analysis")
}

func score(cmd *cobra.Command, path string) {
	ctx, logger, app := prepare()
	defer closeApplication(app, logger)

	text, err := readDocument(path)
	if err != nil {
		logger.Fatal("reading resume", zap.String("path", path), zap.Error(err))
	}

	analysis, err := app.analyzer.AnalyzeResume(ctx, text)
	if err != nil {
		logger.Fatal("analyzing resume", zap.Error(err))
	}

	if err := printJSON(analysis); err != nil {
		logger.Fatal("printing analysis", zap.Error(err))
	}

	if review, _ := cmd.Flags().GetBool("review"); review {
		if err := reviewSentences(analysis.SentenceAnalysis, logger); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

// prepare builds the logger, reads the config and wires the analysis stack.
// Any failure here is fatal.
func prepare() (context.Context, *zap.Logger, *application) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the ats-scorer",
		zap.String("version", resolveVersion()),
		zap.String("provider", config.AI.Provider),
	)

	app, err := newApplication(ctx, config, logger)
	if err != nil {
		logger.Fatal("preparing the analyzer", zap.Error(err))
	}

	return ctx, logger, app
}

func closeApplication(app *application, logger *zap.Logger) {
	if err := app.close(); err != nil {
		logger.Warn("closing the completion cache", zap.Error(err))
	}
}

// readDocument reads path, or stdin for "-", and extracts its text.
func readDocument(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == stdinPath {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", err
	}
	return textextract.Extract(data)
}

func printJSON(v any) error {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(pretty))
	return err
}

func reviewSentences(sentences []types.SentenceScore, logger *zap.Logger) error {
	weak := make([]types.SentenceScore, 0, len(sentences))
	for _, s := range sentences {
		if s.NeedsImprovement() {
			weak = append(weak, s)
		}
	}

	if len(weak) == 0 {
		logger.Info("nothing to review", zap.String("reason", "no weak sentences found"))
		return nil
	}

	for {
		items := make([]string, 0, len(weak)+1)
		for i, s := range weak {
			items = append(items, fmt.Sprintf("%d [%g/%d] %s", i+1, s.TotalScore, types.SentenceMax, s.Sentence))
		}

		sentencePrompt := promptui.Select{
			Label: "Choose a sentence and press ENTER",
			Items: append(items, PromptBack),
			Size:  10,
		}

		idx, selected, err := sentencePrompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			return err
		}

		if selected == PromptBack {
			return nil
		}

		fmt.Fprintln(os.Stdout, describeSentence(weak[idx]))
	}
}

func describeSentence(s types.SentenceScore) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n", s.Sentence)
	fmt.Fprintf(&b, "score: %g/%d\n", s.TotalScore, types.SentenceMax)
	for _, c := range []struct {
		name string
		comp types.Component
	}{
		{"action verb", s.Components.ActionVerb},
		{"what", s.Components.What},
		{"how", s.Components.How},
		{"impact", s.Components.Impact},
		{"conciseness", s.Components.Conciseness},
	} {
		fmt.Fprintf(&b, "  %-12s %4g  %s\n", c.name, c.comp.Score, c.comp.Feedback)
	}

	if len(s.Mistakes) > 0 {
		b.WriteString("mistakes:\n")
		for _, m := range s.Mistakes {
			fmt.Fprintf(&b, "  - %s: %s\n", m.Type, m.Description)
			if m.Example != "" {
				fmt.Fprintf(&b, "    e.g. %s\n", m.Example)
			}
		}
	}

	if s.ImprovementSuggestion != "" {
		fmt.Fprintf(&b, "suggestion:\n  %s\n", s.ImprovementSuggestion)
	}

	return b.String()
}
