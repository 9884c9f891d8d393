package embedding

import (
	"crypto/sha1"
	"encoding/hex"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"gujnews/internal/domain"
)

// WithLRUCache wraps an embedder with an expiring LRU cache keyed by model
// and text. Query embeddings repeat often (same search re-run with a
// different threshold), so this avoids paying the provider round trip twice.
func WithLRUCache(next domain.Embedder, size int, ttl time.Duration, logger *zap.Logger) domain.Embedder {
	if next == nil || size <= 0 || ttl <= 0 {
		return next
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &lruEmbedder{
		next:   next,
		cache:  expirable.NewLRU[string, []float64](size, nil, ttl),
		logger: logger,
	}
}

type lruEmbedder struct {
	next   domain.Embedder
	cache  *expirable.LRU[string, []float64]
	logger *zap.Logger
}

func (l *lruEmbedder) Name() string { return l.next.Name() }

func (l *lruEmbedder) Prepare(corpus []string) error { return l.next.Prepare(corpus) }

func (l *lruEmbedder) Dimension() int { return l.next.Dimension() }

func (l *lruEmbedder) Embed(text string) ([]float64, error) {
	key := cacheKey(l.next.Name(), text)
	if cached, ok := l.cache.Get(key); ok {
		l.logger.Debug("embedding cache hit", zap.String("model", l.next.Name()))
		return cloneVector(cached), nil
	}
	vec, err := l.next.Embed(text)
	if err != nil {
		return nil, err
	}
	l.cache.Add(key, cloneVector(vec))
	return vec, nil
}

func cacheKey(model, text string) string {
	h := sha1.Sum([]byte(model + "\x00" + text))
	return hex.EncodeToString(h[:])
}

func cloneVector(v []float64) []float64 {
	if len(v) == 0 {
		return nil
	}
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
