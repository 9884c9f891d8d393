// Package qdrant is a minimal REST client to Qdrant, usable as a drop-in
// replacement for the in-memory store when the corpus outgrows a flat scan.
// It assumes cosine distance and creates the collection if missing.
package qdrant

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"gujnews/internal/domain"
)

type Store struct {
	url        string
	apiKey     string
	collection string
	dimension  int
	client     *http.Client
}

type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

func NewStore(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Store{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

func (s *Store) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.dimension = dimension
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	// Qdrant returns 200 OK if the collection already exists with the same schema.
	return s.putJSON(fmt.Sprintf("%s/collections/%s", s.url, s.collection), body)
}

func (s *Store) Upsert(articles []domain.Article, vectors [][]float64) error {
	if len(articles) != len(vectors) {
		return errors.New("articles and vectors length mismatch")
	}
	points := make([]map[string]any, len(articles))
	for i := range articles {
		points[i] = map[string]any{
			"id":     i,
			"vector": vectors[i],
			"payload": map[string]any{
				"source_file": articles[i].SourceFile,
				"title":       articles[i].Title,
				"content":     articles[i].Content,
				"position":    i,
			},
		}
	}
	body := map[string]any{"points": points}
	return s.putJSON(fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection), body)
}

// Search pushes the threshold down to Qdrant via score_threshold. Qdrant
// orders by score itself; ties keep point-id order, matching the in-memory
// store's insertion-order tie-break.
func (s *Store) Search(vector []float64, threshold float64) ([]domain.SearchResult, error) {
	req := map[string]any{
		"vector":          vector,
		"limit":           s.count(),
		"with_payload":    true,
		"score_threshold": threshold,
	}
	var resp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := s.postJSON(fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection), req, &resp); err != nil {
		return nil, err
	}
	results := make([]domain.SearchResult, 0, len(resp.Result))
	for _, r := range resp.Result {
		article := domain.Article{}
		if v, ok := r.Payload["source_file"].(string); ok {
			article.SourceFile = v
		}
		if v, ok := r.Payload["title"].(string); ok {
			article.Title = v
		}
		if v, ok := r.Payload["content"].(string); ok {
			article.Content = v
		}
		results = append(results, domain.SearchResult{Article: article, Score: r.Score})
	}
	return results, nil
}

func (s *Store) Clear() error {
	// Best-effort: drop collection
	req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/collections/%s", s.url, s.collection), nil)
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	_, _ = s.client.Do(req)
	return nil
}

func (s *Store) count() int {
	var resp struct {
		Result struct {
			Count int `json:"count"`
		} `json:"result"`
	}
	err := s.postJSON(fmt.Sprintf("%s/collections/%s/points/count", s.url, s.collection), map[string]any{"exact": true}, &resp)
	if err != nil || resp.Result.Count == 0 {
		return 1000
	}
	return resp.Result.Count
}

func (s *Store) putJSON(url string, body any) error {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPut, url, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant PUT %s failed: %s", url, resp.Status)
	}
	return nil
}

func (s *Store) postJSON(url string, body any, out any) error {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant POST %s failed: %s", url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
