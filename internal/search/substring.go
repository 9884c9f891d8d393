// Package search holds the strategy implementations behind the Searcher
// interface: plain substring containment, fuzzy token overlap, and semantic
// similarity over an embedding index.
package search

import (
	"strings"

	"gujnews/internal/domain"
)

// SubstringSearcher matches articles that contain the query verbatim,
// case-insensitively. Every match scores 1.0 and results keep corpus order.
type SubstringSearcher struct {
	articles []domain.Article
}

func NewSubstringSearcher() *SubstringSearcher { return &SubstringSearcher{} }

func (s *SubstringSearcher) Name() string { return "substring" }

func (s *SubstringSearcher) Index(articles []domain.Article) error {
	s.articles = articles
	return nil
}

func (s *SubstringSearcher) Search(query string, threshold float64) ([]domain.SearchResult, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	results := make([]domain.SearchResult, 0)
	if q == "" || threshold > 1 {
		return results, nil
	}
	for _, a := range s.articles {
		if strings.Contains(strings.ToLower(a.Content), q) || strings.Contains(strings.ToLower(a.Title), q) {
			results = append(results, domain.SearchResult{Article: a, Score: 1.0})
		}
	}
	return results, nil
}
