package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/spigell/ats-scorer/internal/ai"
)

type countingCompleter struct {
	calls int
	err   error
}

func (c *countingCompleter) Complete(_ context.Context, req ai.Request) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return "reply:" + req.Prompt, nil
}

func (c *countingCompleter) Model() string { return "model-x" }

func newTestCache(t *testing.T, next ai.Completer, opts Options) *Completer {
	t.Helper()
	c := New(next, opts, zaptest.NewLogger(t))
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCompleterServesRepeatsFromMemory(t *testing.T) {
	next := &countingCompleter{}
	c := newTestCache(t, next, Options{})
	req := ai.Request{Operation: ai.OperationJudgeSentence, Prompt: "Led a team"}

	first, err := c.Complete(context.Background(), req)
	require.NoError(t, err)
	second, err := c.Complete(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "reply:Led a team", first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, Stats{Hits: 1, Misses: 1, Entries: 1}, c.Stats())
	assert.Equal(t, "model-x", c.Model())
}

func TestCompleterDoesNotCacheFailures(t *testing.T) {
	next := &countingCompleter{err: errors.New("boom")}
	c := newTestCache(t, next, Options{})
	req := ai.Request{Prompt: "x"}

	_, err := c.Complete(context.Background(), req)
	require.Error(t, err)
	_, err = c.Complete(context.Background(), req)
	require.Error(t, err)

	assert.Equal(t, 2, next.calls)
	assert.Equal(t, 0, c.Stats().Entries)
}

func TestCompleterExpiresEntries(t *testing.T) {
	next := &countingCompleter{}
	c := newTestCache(t, next, Options{TTL: time.Minute})
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	req := ai.Request{Prompt: "x"}
	_, _ = c.Complete(context.Background(), req)
	now = now.Add(2 * time.Minute)
	_, _ = c.Complete(context.Background(), req)

	assert.Equal(t, 2, next.calls)
}

func TestCompleterEvictsOldest(t *testing.T) {
	next := &countingCompleter{}
	c := newTestCache(t, next, Options{MaxEntries: 2})
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	for _, p := range []string{"a", "b", "c"} {
		now = now.Add(time.Second)
		_, err := c.Complete(context.Background(), ai.Request{Prompt: p})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, c.Stats().Entries)

	_, ok := c.l1.Load(Key("model-x", ai.Request{Prompt: "a"}))
	assert.False(t, ok)
	_, ok = c.l1.Load(Key("model-x", ai.Request{Prompt: "c"}))
	assert.True(t, ok)
}

func TestKeyDependsOnEveryField(t *testing.T) {
	base := ai.Request{Operation: "op", System: "sys", Prompt: "p"}
	variants := []ai.Request{
		{Operation: "op2", System: "sys", Prompt: "p"},
		{Operation: "op", System: "sys2", Prompt: "p"},
		{Operation: "op", System: "sys", Prompt: "p2"},
		{Operation: "op", System: "sys", Prompt: "p", JSON: true},
	}

	keys := map[string]bool{Key("m", base): true, Key("other", base): true}
	for _, v := range variants {
		keys[Key("m", v)] = true
	}
	assert.Len(t, keys, 6)
}

func TestInvalidRedisURLDisablesSharedTier(t *testing.T) {
	c := newTestCache(t, &countingCompleter{}, Options{RedisURL: "not a url"})
	assert.False(t, c.Stats().Redis)
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}
