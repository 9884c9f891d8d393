package summarizer

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// FrequencySummarizer ranks sentences by word frequency. It is the offline
// fallback used when no chat-completion summarizer is configured, and it
// produces the corpus overview line shown in the TUI header.
type FrequencySummarizer struct {
	tokenPattern    *regexp.Regexp
	sentencePattern *regexp.Regexp
}

// NewFrequencySummarizer creates a frequency-based sentence ranker summarizer.
func NewFrequencySummarizer() *FrequencySummarizer {
	return &FrequencySummarizer{
		// Any Unicode letter run; Gujarati has no case but ToLower is harmless.
		tokenPattern:    regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		sentencePattern: regexp.MustCompile(`(?m)(?U)([^.!?।]+[.!?।])`),
	}
}

// Summarize returns a short summary by ranking sentences using token frequency.
// Selected sentences keep their original order.
func (s *FrequencySummarizer) Summarize(text string, maxSentences int) (string, error) {
	if maxSentences <= 0 {
		maxSentences = 5
	}
	sentences := s.sentencePattern.FindAllString(text, -1)
	if len(sentences) == 0 {
		return strings.TrimSpace(text), nil
	}
	freq := map[string]float64{}
	for _, sent := range sentences {
		for _, tok := range s.tokens(sent) {
			freq[tok]++
		}
	}
	maxF := 0.0
	for _, v := range freq {
		if v > maxF {
			maxF = v
		}
	}
	if maxF > 0 {
		for k, v := range freq {
			freq[k] = v / maxF
		}
	}
	type pair struct {
		idx   int
		score float64
	}
	scores := make([]pair, len(sentences))
	for i, sent := range sentences {
		sscore := 0.0
		toks := s.tokens(sent)
		for _, tok := range toks {
			sscore += freq[tok]
		}
		// Normalize by sentence length to avoid bias toward long sentences
		if l := float64(len(toks)); l > 0 {
			sscore /= math.Sqrt(l)
		}
		scores[i] = pair{i, sscore}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	if maxSentences > len(scores) {
		maxSentences = len(scores)
	}
	selected := make([]int, maxSentences)
	for i := 0; i < maxSentences; i++ {
		selected[i] = scores[i].idx
	}
	sort.Ints(selected)
	var out []string
	for _, idx := range selected {
		out = append(out, strings.TrimSpace(sentences[idx]))
	}
	return strings.Join(out, " "), nil
}

func (s *FrequencySummarizer) tokens(text string) []string {
	return s.tokenPattern.FindAllString(strings.ToLower(text), -1)
}
