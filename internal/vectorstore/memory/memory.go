package memory

import (
	"errors"
	"math"
	"sort"
	"sync"

	"gujnews/internal/domain"
)

// Store is a simple in-memory vector store using a brute-force cosine scan.
// Results are filtered by threshold and ordered by descending score; equal
// scores keep insertion order.
type Store struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float64
	articles  []domain.Article
}

func NewStore() *Store { return &Store{} }

func (s *Store) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.vectors = nil
	s.articles = nil
	return nil
}

func (s *Store) Upsert(articles []domain.Article, vectors [][]float64) error {
	if len(articles) != len(vectors) {
		return errors.New("articles and vectors length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vectors {
		if len(v) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	s.articles = append(s.articles, articles...)
	s.vectors = append(s.vectors, vectors...)
	return nil
}

// Search scans every stored vector. An empty store yields an empty result,
// not an error. The threshold is applied as given, without clamping.
func (s *Store) Search(vector []float64, threshold float64) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results := make([]domain.SearchResult, 0, len(s.vectors))
	for i := range s.vectors {
		score := Cosine(vector, s.vectors[i])
		if score >= threshold {
			results = append(results, domain.SearchResult{Article: s.articles[i], Score: score})
		}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results, nil
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vectors = nil
	s.articles = nil
	return nil
}

// Cosine computes the cosine similarity of two vectors, defined as 0 when
// either norm is zero. Vectors of different lengths compare as 0.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
