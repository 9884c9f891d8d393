package embedding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func preparedTFIDF(t *testing.T, corpus []string) *TFIDFEmbedder {
	t.Helper()
	e := NewTFIDFEmbedder()
	require.NoError(t, e.Prepare(corpus))
	return e
}

func TestTFIDFPrepare(t *testing.T) {
	e := preparedTFIDF(t, []string{
		"cricket match today",
		"election results announced",
	})
	assert.Equal(t, "tfidf", e.Name())
	assert.Equal(t, 6, e.Dimension())
}

func TestTFIDFEmbedBeforePrepare(t *testing.T) {
	_, err := NewTFIDFEmbedder().Embed("anything")
	assert.Error(t, err)
}

func TestTFIDFPrepareEmptyCorpus(t *testing.T) {
	assert.Error(t, NewTFIDFEmbedder().Prepare(nil))
	assert.Error(t, NewTFIDFEmbedder().Prepare([]string{"   ", "..."}))
}

func TestTFIDFEmbedIsUnitLength(t *testing.T) {
	e := preparedTFIDF(t, []string{
		"cricket team wins the final",
		"gujarat election news today",
		"cricket news from gujarat",
	})
	vec, err := e.Embed("cricket news")
	require.NoError(t, err)
	require.Len(t, vec, e.Dimension())

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)
}

func TestTFIDFOutOfVocabularyIsZeroVector(t *testing.T) {
	e := preparedTFIDF(t, []string{"cricket match", "election results"})
	vec, err := e.Embed("quantum chromodynamics")
	require.NoError(t, err)
	for _, v := range vec {
		assert.Zero(t, v)
	}
}

func TestTFIDFRareTermsWeighMore(t *testing.T) {
	e := preparedTFIDF(t, []string{
		"cricket update",
		"cricket report",
		"cricket election",
	})
	// "election" appears in one document, "cricket" in all three.
	common, err := e.Embed("cricket")
	require.NoError(t, err)
	rare, err := e.Embed("election")
	require.NoError(t, err)

	dot := func(a, b []float64) float64 {
		var s float64
		for i := range a {
			s += a[i] * b[i]
		}
		return s
	}
	mixed, err := e.Embed("cricket election")
	require.NoError(t, err)
	assert.Greater(t, dot(mixed, rare), dot(mixed, common))
}

func TestTFIDFTokenizesGujarati(t *testing.T) {
	e := preparedTFIDF(t, []string{
		"ગુજરાત ચૂંટણી સમાચાર",
		"ક્રિકેટ મેચ આજે",
	})
	vec, err := e.Embed("ચૂંટણી")
	require.NoError(t, err)
	var nonZero int
	for _, v := range vec {
		if v != 0 {
			nonZero++
		}
	}
	assert.Equal(t, 1, nonZero)
}

func TestTFIDFStopwordsIgnored(t *testing.T) {
	e := preparedTFIDF(t, []string{
		"the cricket match",
		"an election result",
	})
	vec, err := e.Embed("the and of")
	require.NoError(t, err)
	for _, v := range vec {
		assert.Zero(t, v)
	}
}
