package embedding

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingEmbedder struct {
	calls int
	fail  bool
}

func (c *countingEmbedder) Name() string                  { return "counting" }
func (c *countingEmbedder) Prepare(corpus []string) error { return nil }
func (c *countingEmbedder) Dimension() int                { return 3 }

func (c *countingEmbedder) Embed(text string) ([]float64, error) {
	c.calls++
	if c.fail {
		return nil, errors.New("provider down")
	}
	return []float64{1, 0, 0}, nil
}

func TestLRUCachesRepeatedQueries(t *testing.T) {
	inner := &countingEmbedder{}
	e := WithLRUCache(inner, 16, time.Minute, nil)

	first, err := e.Embed("election")
	require.NoError(t, err)
	second, err := e.Embed("election")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, first, second)

	_, err = e.Embed("cricket")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestLRUReturnsIndependentCopies(t *testing.T) {
	e := WithLRUCache(&countingEmbedder{}, 16, time.Minute, nil)

	first, err := e.Embed("election")
	require.NoError(t, err)
	first[0] = 42

	second, err := e.Embed("election")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0}, second, "callers cannot poison the cache")
}

func TestLRUDoesNotCacheFailures(t *testing.T) {
	inner := &countingEmbedder{fail: true}
	e := WithLRUCache(inner, 16, time.Minute, nil)

	_, err := e.Embed("election")
	require.Error(t, err)
	_, err = e.Embed("election")
	require.Error(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestLRUDisabledPassthrough(t *testing.T) {
	inner := &countingEmbedder{}
	assert.Same(t, inner, WithLRUCache(inner, 0, time.Minute, nil).(*countingEmbedder))
	assert.Same(t, inner, WithLRUCache(inner, 16, 0, nil).(*countingEmbedder))
}

func TestLRUDelegates(t *testing.T) {
	inner := &countingEmbedder{}
	e := WithLRUCache(inner, 16, time.Minute, nil)
	assert.Equal(t, "counting", e.Name())
	assert.Equal(t, 3, e.Dimension())
	assert.NoError(t, e.Prepare([]string{"a"}))
}

func TestCacheKeyDistinguishesModelAndText(t *testing.T) {
	assert.NotEqual(t, cacheKey("a", "b"), cacheKey("b", "a"))
	assert.NotEqual(t, cacheKey("m", "x"), cacheKey("m", "y"))
	assert.Equal(t, cacheKey("m", "x"), cacheKey("m", "x"))
}
