// Package cache memoises model completions in two tiers: an in-process map
// and an optional Redis instance shared between scorer processes.
package cache

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/ai"
)

const (
	defaultTTL             = time.Hour
	defaultCleanupInterval = 5 * time.Minute
	pingTimeout            = 3 * time.Second
	keyPrefix              = "ats:"
)

// Options configures the cache.
type Options struct {
	// RedisURL enables the shared tier when set, e.g. redis://localhost:6379/0.
	RedisURL        string
	TTL             time.Duration
	MaxEntries      int
	CleanupInterval time.Duration
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits    int64
	Misses  int64
	Entries int
	Redis   bool
}

type entry struct {
	text      string
	expiresAt time.Time
}

// Completer wraps another ai.Completer and serves repeated requests from cache.
// Failed completions are never stored.
type Completer struct {
	next   ai.Completer
	logger *zap.Logger

	l1         sync.Map
	rdb        *redis.Client
	ttl        time.Duration
	maxEntries int
	now        func() time.Time

	hits   atomic.Int64
	misses atomic.Int64

	stop     chan struct{}
	stopOnce sync.Once
}

var _ ai.Completer = (*Completer)(nil)

// New wraps next. An unreachable Redis only disables the shared tier.
func New(next ai.Completer, opts Options, logger *zap.Logger) *Completer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}

	c := &Completer{
		next:       next,
		logger:     logger,
		ttl:        opts.TTL,
		maxEntries: opts.MaxEntries,
		now:        time.Now,
		stop:       make(chan struct{}),
	}

	if url := strings.TrimSpace(opts.RedisURL); url != "" {
		c.rdb = connectRedis(url, logger)
	}

	logger.Info("completion cache initialized",
		zap.Duration("ttl", c.ttl),
		zap.Bool("redis", c.rdb != nil),
		zap.Int("max_entries", c.maxEntries),
	)

	go c.cleanupLoop(opts.CleanupInterval)
	return c
}

func connectRedis(url string, logger *zap.Logger) *redis.Client {
	opts, err := redis.ParseURL(url)
	if err != nil {
		logger.Warn("invalid redis url, shared cache disabled", zap.Error(err))
		return nil
	}

	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, shared cache disabled", zap.String("addr", opts.Addr), zap.Error(err))
		_ = rdb.Close()
		return nil
	}

	logger.Info("shared cache connected", zap.String("addr", opts.Addr))
	return rdb
}

// Key derives the cache key of a request for the given model.
func Key(model string, req ai.Request) string {
	joined := strings.Join([]string{model, req.Operation, req.System, req.Prompt, strconv.FormatBool(req.JSON)}, "|")
	sum := sha256.Sum256([]byte(joined))
	return fmt.Sprintf("%s%x", keyPrefix, sum[:16])
}

// Complete implements ai.Completer.
func (c *Completer) Complete(ctx context.Context, req ai.Request) (string, error) {
	key := Key(c.next.Model(), req)

	if text, ok := c.get(ctx, key); ok {
		c.hits.Add(1)
		c.logger.Debug("completion cache hit", zap.String("operation", req.Operation))
		return text, nil
	}
	c.misses.Add(1)

	text, err := c.next.Complete(ctx, req)
	if err != nil {
		return "", err
	}

	c.set(ctx, key, text)
	return text, nil
}

// Model returns the model of the wrapped completer.
func (c *Completer) Model() string {
	return c.next.Model()
}

func (c *Completer) get(ctx context.Context, key string) (string, bool) {
	if val, ok := c.l1.Load(key); ok {
		e := val.(*entry)
		if c.now().Before(e.expiresAt) {
			return e.text, true
		}
		c.l1.Delete(key)
	}

	if c.rdb == nil {
		return "", false
	}
	text, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Debug("redis get failed", zap.Error(err))
		}
		return "", false
	}
	c.l1.Store(key, &entry{text: text, expiresAt: c.now().Add(c.ttl)})
	return text, true
}

func (c *Completer) set(ctx context.Context, key, text string) {
	c.evictIfNeeded()
	c.l1.Store(key, &entry{text: text, expiresAt: c.now().Add(c.ttl)})

	if c.rdb != nil {
		if err := c.rdb.Set(ctx, key, text, c.ttl).Err(); err != nil {
			c.logger.Debug("redis set failed", zap.Error(err))
		}
	}
}

func (c *Completer) size() int {
	n := 0
	c.l1.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// evictIfNeeded makes room for one more entry: expired entries go first,
// then the entries closest to expiry.
func (c *Completer) evictIfNeeded() {
	if c.maxEntries <= 0 {
		return
	}
	count := c.size()
	if count < c.maxEntries {
		return
	}

	count -= c.removeExpired()

	for count >= c.maxEntries {
		var oldestKey any
		var oldestAt time.Time
		c.l1.Range(func(key, val any) bool {
			e := val.(*entry)
			if oldestKey == nil || e.expiresAt.Before(oldestAt) {
				oldestKey, oldestAt = key, e.expiresAt
			}
			return true
		})
		if oldestKey == nil {
			return
		}
		c.l1.Delete(oldestKey)
		count--
	}
}

func (c *Completer) removeExpired() int {
	now := c.now()
	removed := 0
	c.l1.Range(func(key, val any) bool {
		if now.After(val.(*entry).expiresAt) {
			c.l1.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

func (c *Completer) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.removeExpired()
		}
	}
}

// Stats returns the current counters.
func (c *Completer) Stats() Stats {
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.size(),
		Redis:   c.rdb != nil,
	}
}

// Close stops the cleanup loop and releases the Redis connection.
func (c *Completer) Close() error {
	var err error
	c.stopOnce.Do(func() {
		close(c.stop)
		if c.rdb != nil {
			err = c.rdb.Close()
		}
	})
	return err
}
