// Package scoring computes the deterministic ATS score of a résumé from its
// structured profile, its raw text and optional keyword statistics.
package scoring

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/types"
)

// ErrNilProfile is reported in the error result when no profile was supplied.
var ErrNilProfile = errors.New("resume profile is required")

type statusTier struct {
	min            float64
	compatibility  string
	recommendation string
}

var statusTiers = []statusTier{
	{85, "EXCELLENT - Top 10% of candidates", "Likely to pass initial ATS screening for FAANG/top-tier positions"},
	{75, "GOOD - Above average candidate", "Strong chance of passing ATS screening for most tech positions"},
	{65, "AVERAGE - Standard candidate pool", "May pass ATS for some positions, needs optimization for competitive roles"},
	{50, "BELOW AVERAGE - Needs improvement", "Limited ATS compatibility, significant improvements needed"},
}

var poorTier = statusTier{0, "POOR - High rejection risk", "Resume likely to be filtered out by ATS systems"}

func statusFor(total float64) statusTier {
	for _, t := range statusTiers {
		if total >= t.min {
			return t
		}
	}
	return poorTier
}

// Scorer produces résumé scores. It holds no state between calls.
type Scorer struct {
	logger     *zap.Logger
	formatting FormatOptions
}

// NewScorer creates a Scorer. A nil logger disables logging.
func NewScorer(logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{logger: logger}
}

// WithFormatOptions returns a copy of s that applies opts to the
// clean-formatting checks.
func (s *Scorer) WithFormatOptions(opts FormatOptions) *Scorer {
	c := *s
	c.formatting = opts
	return &c
}

// Score rates the résumé. It never fails: a missing profile or an internal
// fault yields types.ErrorScoreResult.
func (s *Scorer) Score(resume *types.ResumeProfile, text string, kw *types.KeywordAnalysis) (result types.ResumeScoreResult) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%v", r)
			s.logger.Error("resume scoring panicked", zap.Error(err))
			result = types.ErrorScoreResult(err)
		}
	}()

	if resume == nil {
		s.logger.Warn("resume scoring skipped", zap.Error(ErrNilProfile))
		return types.ErrorScoreResult(ErrNilProfile)
	}

	industry := DetectIndustry(text)
	p := profileFor(industry.Industry)
	breakdown := p.breakdown(resume, text, kw, s.formatting)

	sum := breakdown.Sum()
	status := statusFor(sum)
	grade, percentile, _ := strings.Cut(status.compatibility, " - ")

	s.logger.Debug("resume scored",
		zap.String("industry", string(industry.Industry)),
		zap.Int("finance_votes", industry.Finance),
		zap.Int("software_votes", industry.Software),
		zap.Float64("total", sum),
	)

	return types.ResumeScoreResult{
		Score: types.ScoreSummary{
			Total:       round1(sum),
			MaxPossible: types.MaxScore,
			Grade:       grade,
			Percentile:  percentile,
		},
		Industry: types.IndustryResult{
			Detected:   string(industry.Industry),
			Confidence: industry.Confidence,
		},
		Breakdown: breakdown,
		Status: types.Status{
			ATSCompatibility: status.compatibility,
			Recommendation:   status.recommendation,
		},
		Insights: Insights(industry.Industry, breakdown, sum),
		Methodology: types.Methodology{
			Weights: p.weights(),
			Focus:   p.focus,
		},
	}
}
