package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var scanCmd = &cobra.Command{
	Use:   "scan FILE",
	Short: "Match a resume against a job description",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		scan(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().String("job", "", "file with the job description, or - for stdin")
	scanCmd.MarkFlagRequired("job")
}

func scan(cmd *cobra.Command, path string) {
	jobPath, _ := cmd.Flags().GetString("job")
	if path == stdinPath && jobPath == stdinPath {
		cobra.CheckErr("resume and job description cannot both be read from stdin")
	}

	ctx, logger, app := prepare()
	defer closeApplication(app, logger)

	resumeText, err := readDocument(path)
	if err != nil {
		logger.Fatal("reading resume", zap.String("path", path), zap.Error(err))
	}

	jobDescription, err := readDocument(jobPath)
	if err != nil {
		logger.Fatal("reading job description", zap.String("path", jobPath), zap.Error(err))
	}

	result, err := app.analyzer.Scan(ctx, resumeText, jobDescription)
	if err != nil {
		logger.Fatal("scanning resume", zap.Error(err))
	}

	logger.Info("scan completed",
		zap.String("analysis_id", result.AnalysisID),
		zap.Float64("match_score", result.ComparisonJSON.MatchAnalysis.OverallScore),
		zap.String("grade", result.ComparisonJSON.MatchAnalysis.Grade),
	)

	if err := printJSON(result); err != nil {
		logger.Fatal("printing scan result", zap.Error(err))
	}
}
