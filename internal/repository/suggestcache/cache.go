// Package suggestcache decorates a suggestion lookup with a key-value cache.
// Autocomplete traffic is bursty and highly repetitive (every keystroke past
// the second re-queries), so even a short TTL absorbs most of it.
package suggestcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/streamflix/catalog/internal/cache"
	"github.com/streamflix/catalog/internal/domain"
)

const cacheKeyPrefix = "catalog:suggest:"

// Suggester is the inner lookup the cache decorates.
type Suggester interface {
	Suggest(ctx context.Context, term string) ([]domain.Suggestion, error)
}

// store is the consumer interface for the cache backend (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedSuggester caches suggestion lists in a key-value store. Cache
// failures degrade to the inner lookup; they are never surfaced to callers.
type CachedSuggester struct {
	inner      Suggester
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner Suggester,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedSuggester {
	return &CachedSuggester{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Suggest returns a cached suggestion list or calls the inner lookup.
func (c *CachedSuggester) Suggest(ctx context.Context, term string) ([]domain.Suggestion, error) {
	key := c.cacheKey(term)

	if out, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return out, nil
	}

	c.incCache("miss")

	out, err := c.inner.Suggest(ctx, term)
	if err != nil {
		return nil, err
	}

	c.putToCache(ctx, key, out)
	return out, nil
}

func (c *CachedSuggester) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// cacheKey hashes the case-folded term so equivalent lookups share an entry.
func (c *CachedSuggester) cacheKey(term string) string {
	h := sha256.Sum256([]byte(strings.ToLower(term)))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

func (c *CachedSuggester) getFromCache(ctx context.Context, key string) ([]domain.Suggestion, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached suggestions", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var out []domain.Suggestion
	if err := json.Unmarshal(data, &out); err != nil {
		c.logger.Warn("Failed to parse cached suggestions", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return out, true
}

func (c *CachedSuggester) putToCache(ctx context.Context, key string, out []domain.Suggestion) {
	data, err := json.Marshal(out)
	if err != nil {
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache suggestions", zap.String("key", key), zap.Error(err))
	}
}
