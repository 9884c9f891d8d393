package summarizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeSelectsFrequentSentences(t *testing.T) {
	text := "Cricket dominates the news. Cricket fans cheer for cricket. The weather was mild."
	out, err := NewFrequencySummarizer().Summarize(text, 1)
	require.NoError(t, err)
	assert.Contains(t, out, "Cricket")
	assert.NotContains(t, out, "weather")
}

func TestSummarizeKeepsOriginalOrder(t *testing.T) {
	text := "First news item here. Second news item here. Third news item here."
	out, err := NewFrequencySummarizer().Summarize(text, 2)
	require.NoError(t, err)
	first := strings.Index(out, "First")
	second := strings.Index(out, "Second")
	third := strings.Index(out, "Third")
	picked := 0
	for _, i := range []int{first, second, third} {
		if i >= 0 {
			picked++
		}
	}
	assert.Equal(t, 2, picked)
	if first >= 0 && second >= 0 {
		assert.Less(t, first, second)
	}
	if second >= 0 && third >= 0 {
		assert.Less(t, second, third)
	}
}

func TestSummarizeNoSentenceTerminators(t *testing.T) {
	out, err := NewFrequencySummarizer().Summarize("  just a fragment without punctuation  ", 3)
	require.NoError(t, err)
	assert.Equal(t, "just a fragment without punctuation", out)
}

func TestSummarizeGujaratiDanda(t *testing.T) {
	text := "ગુજરાતમાં ચૂંટણી યોજાશે। ચૂંટણી પરિણામ ચૂંટણી પંચ જાહેર કરશે। હવામાન સારું છે।"
	out, err := NewFrequencySummarizer().Summarize(text, 1)
	require.NoError(t, err)
	assert.Contains(t, out, "ચૂંટણી")
	assert.NotContains(t, out, "હવામાન")
}

func TestSummarizeMaxSentencesExceedsInput(t *testing.T) {
	out, err := NewFrequencySummarizer().Summarize("Only one sentence here.", 10)
	require.NoError(t, err)
	assert.Equal(t, "Only one sentence here.", out)
}
