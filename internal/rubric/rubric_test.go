package rubric

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/types"
)

type stubJudge struct {
	mu          sync.Mutex
	scores      map[string]float64
	judgeErr    map[string]error
	mistakesErr error
	suggestErr  error
	calls       map[string]int

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func newStubJudge(scores map[string]float64) *stubJudge {
	return &stubJudge{scores: scores, judgeErr: map[string]error{}, calls: map[string]int{}}
}

func (s *stubJudge) record(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[op]++
}

func (s *stubJudge) count(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// components spreads score evenly over the five dimensions.
func components(score float64) types.Components {
	each := types.Component{Score: score / 5}
	return types.Components{ActionVerb: each, What: each, How: each, Impact: each, Conciseness: each}
}

func (s *stubJudge) JudgeSentence(_ context.Context, sentence string) (types.Components, error) {
	s.record("judge")

	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		m := s.maxInFlight.Load()
		if n <= m || s.maxInFlight.CompareAndSwap(m, n) {
			break
		}
	}
	time.Sleep(time.Millisecond)

	if err := s.judgeErr[sentence]; err != nil {
		return types.Components{}, err
	}
	return components(s.scores[sentence]), nil
}

func (s *stubJudge) ListMistakes(_ context.Context, sentence string, _ types.Components) ([]types.Mistake, error) {
	s.record("mistakes")
	if s.mistakesErr != nil {
		return []types.Mistake{}, s.mistakesErr
	}
	return []types.Mistake{{Type: "Impact/Result", Description: "no metric in " + sentence}}, nil
}

func (s *stubJudge) SuggestImprovement(_ context.Context, sentence string) (string, error) {
	s.record("suggest")
	if s.suggestErr != nil {
		return "", s.suggestErr
	}
	return "Improved: " + sentence, nil
}

func TestAnalyzeStrongSentence(t *testing.T) {
	judge := newStubJudge(map[string]float64{"Led migration of billing to Go, cutting costs 30%": 50})
	c := NewCoordinator(judge, Options{}, zap.NewNop())

	score, err := c.Analyze(context.Background(), "Led migration of billing to Go, cutting costs 30%")
	require.NoError(t, err)

	assert.Equal(t, 50.0, score.TotalScore)
	assert.Equal(t, "", score.ImprovementSuggestion)
	assert.NotNil(t, score.Mistakes)
	assert.Empty(t, score.Mistakes)
	assert.Zero(t, judge.count("mistakes"))
	assert.Zero(t, judge.count("suggest"))
}

func TestAnalyzeWeakSentenceRequestsFixes(t *testing.T) {
	judge := newStubJudge(map[string]float64{"Worked on stuff": 5})
	c := NewCoordinator(judge, Options{}, zap.NewNop())

	score, err := c.Analyze(context.Background(), "Worked on stuff")
	require.NoError(t, err)

	assert.Equal(t, 5.0, score.TotalScore)
	assert.Equal(t, "Improved: Worked on stuff", score.ImprovementSuggestion)
	require.Len(t, score.Mistakes, 1)
	assert.Equal(t, 1, judge.count("mistakes"))
	assert.Equal(t, 1, judge.count("suggest"))
}

func TestAnalyzeThresholdIsInclusive(t *testing.T) {
	judge := newStubJudge(map[string]float64{"Built internal tooling": 45})
	c := NewCoordinator(judge, Options{}, zap.NewNop())

	score, err := c.Analyze(context.Background(), "Built internal tooling")
	require.NoError(t, err)
	assert.NotEmpty(t, score.ImprovementSuggestion)
}

func TestAnalyzeClampsComponents(t *testing.T) {
	judge := newStubJudge(map[string]float64{"Overscored sentence": 100})
	c := NewCoordinator(judge, Options{}, zap.NewNop())

	score, err := c.Analyze(context.Background(), "Overscored sentence")
	require.NoError(t, err)

	assert.Equal(t, 50.0, score.TotalScore)
	assert.Equal(t, score.Components.Total(), score.TotalScore)
	assert.NoError(t, types.Validate(score))
}

func TestAnalyzeMistakesFailureStillSuggests(t *testing.T) {
	judge := newStubJudge(map[string]float64{"Helped the team": 10})
	judge.mistakesErr = errors.New("model unavailable")
	c := NewCoordinator(judge, Options{}, zap.NewNop())

	score, err := c.Analyze(context.Background(), "Helped the team")
	require.NoError(t, err)
	assert.Empty(t, score.Mistakes)
	assert.NotNil(t, score.Mistakes)
	assert.Equal(t, "Improved: Helped the team", score.ImprovementSuggestion)
}

func TestAnalyzeSuggestionFailureClearsMistakes(t *testing.T) {
	judge := newStubJudge(map[string]float64{"Helped the team": 10})
	judge.suggestErr = errors.New("model unavailable")
	c := NewCoordinator(judge, Options{}, zap.NewNop())

	score, err := c.Analyze(context.Background(), "Helped the team")
	require.NoError(t, err)
	assert.Equal(t, 1, judge.count("mistakes"))
	assert.Equal(t, "", score.ImprovementSuggestion)
	assert.NotNil(t, score.Mistakes)
	assert.Empty(t, score.Mistakes)
	assert.Equal(t, 10.0, score.TotalScore)
}

func TestAnalyzeAllKeepsOrderAndDropsFailures(t *testing.T) {
	sentences := []string{"first sentence here", "second sentence fails", "third sentence here", "fourth sentence here"}
	judge := newStubJudge(map[string]float64{
		"first sentence here":  50,
		"third sentence here":  20,
		"fourth sentence here": 48,
	})
	judge.judgeErr["second sentence fails"] = errors.New("bad reply")

	c := NewCoordinator(judge, Options{MaxConcurrency: 2}, zap.NewNop())
	got := c.AnalyzeAll(context.Background(), sentences)

	require.Len(t, got, 3)
	assert.Equal(t, "first sentence here", got[0].Sentence)
	assert.Equal(t, "third sentence here", got[1].Sentence)
	assert.Equal(t, "fourth sentence here", got[2].Sentence)
	assert.LessOrEqual(t, judge.maxInFlight.Load(), int32(2))
}

func TestAnalyzeHighlights(t *testing.T) {
	profile := &types.ResumeProfile{
		Experience: []types.Experience{{Highlights: []string{"Built payment service in Go", "  short  "}}},
		Projects:   []types.Project{{Highlights: []string{"Shipped a CLI used by 200 engineers"}}},
	}
	judge := newStubJudge(map[string]float64{
		"Built payment service in Go":         50,
		"Shipped a CLI used by 200 engineers": 50,
	})

	got := NewCoordinator(judge, Options{}, nil).AnalyzeHighlights(context.Background(), profile)

	require.Len(t, got, 2)
	assert.Equal(t, "Built payment service in Go", got[0].Sentence)
	assert.Equal(t, "Shipped a CLI used by 200 engineers", got[1].Sentence)
}

func TestAnalyzeRespectsCancelledContext(t *testing.T) {
	judge := newStubJudge(nil)
	c := NewCoordinator(judge, Options{RatePerSecond: 0.001, MaxConcurrency: 1}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Analyze(ctx, "Worked on stuff")
	assert.Error(t, err)
	assert.Zero(t, judge.count("judge"))
}

func TestSplitSentences(t *testing.T) {
	text := "Senior engineer.\nBuilt   a payments platform in Go!  Cut costs by 30%?? ok. Led a team of five engineers…"
	got := SplitSentences(text)

	assert.Equal(t, []string{
		"Senior engineer",
		"Built a payments platform in Go",
		"Cut costs by 30%",
		"Led a team of five engineers",
	}, got)
}

func TestSplitSentencesCapsAtTwenty(t *testing.T) {
	text := strings.Repeat("This is a long enough sentence. ", 30)
	assert.Len(t, SplitSentences(text), 20)
}

func TestComprehensive(t *testing.T) {
	judge := newStubJudge(map[string]float64{
		"Built a payments platform in Go": 40,
		"Led a team of five engineers":    45,
	})
	c := NewCoordinator(judge, Options{}, zap.NewNop())
	c.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	kw := &types.KeywordAnalysis{}

	got := c.Comprehensive(context.Background(), "Built a payments platform in Go. Led a team of five engineers.", "Go role", kw)

	assert.Equal(t, "Built a payments platform in Go. Led a team of five engineers.", got.ResumeText)
	assert.Equal(t, "Go role", got.JobDescription)
	assert.Equal(t, 2, got.TotalSentencesAnalyzed)
	assert.Equal(t, 43, got.OverallScore)
	assert.Same(t, kw, got.KeywordAnalysis)
	assert.Equal(t, "2024-01-02T03:04:05Z", got.AnalysisTimestamp)
}

func TestOverallScore(t *testing.T) {
	assert.Equal(t, 0, OverallScore(nil))
	assert.Equal(t, 23, OverallScore([]types.SentenceScore{{TotalScore: 20}, {TotalScore: 25}}))
}
