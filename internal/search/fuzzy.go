package search

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"gujnews/internal/domain"
)

var unicodeWordRe = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)

// FuzzySearcher scores articles by token-set overlap between the query and
// the article text using the Ochiai coefficient |A∩B| / sqrt(|A||B|), which
// lands in [0,1] and tolerates word-order and inflection differences that
// break plain substring search.
type FuzzySearcher struct {
	articles []domain.Article
	tokens   []map[string]struct{}
}

func NewFuzzySearcher() *FuzzySearcher { return &FuzzySearcher{} }

func (s *FuzzySearcher) Name() string { return "fuzzy" }

func (s *FuzzySearcher) Index(articles []domain.Article) error {
	s.articles = articles
	s.tokens = make([]map[string]struct{}, len(articles))
	for i, a := range articles {
		s.tokens[i] = tokenSet(a.Title + " " + a.Content)
	}
	return nil
}

func (s *FuzzySearcher) Search(query string, threshold float64) ([]domain.SearchResult, error) {
	qset := tokenSet(query)
	results := make([]domain.SearchResult, 0)
	for i, a := range s.articles {
		score := ochiai(qset, s.tokens[i])
		if score >= threshold {
			results = append(results, domain.SearchResult{Article: a, Score: score})
		}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results, nil
}

func tokenSet(text string) map[string]struct{} {
	tokens := unicodeWordRe.FindAllString(strings.ToLower(text), -1)
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}

func ochiai(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	return float64(inter) / math.Sqrt(float64(len(a))*float64(len(b)))
}
