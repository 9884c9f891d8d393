package search

import (
	"fmt"

	"go.uber.org/zap"

	"gujnews/internal/domain"
	"gujnews/internal/index"
)

// SemanticSearcher embeds the query with the same embedder that produced the
// corpus index and ranks articles by cosine similarity. The index is built at
// most once per process and loaded from the snapshot file when one exists.
type SemanticSearcher struct {
	embedder  domain.Embedder
	store     domain.VectorStore
	cachePath string
	logger    *zap.Logger
	empty     bool
}

func NewSemanticSearcher(emb domain.Embedder, store domain.VectorStore, cachePath string, logger *zap.Logger) *SemanticSearcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SemanticSearcher{embedder: emb, store: store, cachePath: cachePath, logger: logger}
}

func (s *SemanticSearcher) Name() string { return "semantic" }

// Index loads or builds the embedding snapshot and populates the vector
// store. A failed cache write is logged and tolerated; the in-memory table
// still serves queries.
func (s *SemanticSearcher) Index(articles []domain.Article) error {
	if len(articles) == 0 {
		s.empty = true
		return nil
	}
	snap, built, err := index.BuildOrLoad(s.cachePath, articles, s.embedder)
	if err != nil {
		if snap == nil {
			return fmt.Errorf("build embedding index: %w", err)
		}
		s.logger.Warn("embedding snapshot not persisted", zap.Error(err))
	}
	if !built {
		// Loaded verbatim from disk: prepare the embedder over the cached
		// corpus so query-time embedding has a vocabulary to work with.
		// Remote embedders treat Prepare as a no-op.
		texts := make([]string, len(snap.Articles))
		for i, a := range snap.Articles {
			texts[i] = a.Content
		}
		if err := s.embedder.Prepare(texts); err != nil {
			return fmt.Errorf("prepare embedder from snapshot: %w", err)
		}
		s.logger.Info("embedding snapshot loaded",
			zap.String("path", s.cachePath),
			zap.Int("articles", len(snap.Articles)),
			zap.String("model", snap.Model))
	} else {
		s.logger.Info("embedding snapshot built",
			zap.String("path", s.cachePath),
			zap.Int("articles", len(snap.Articles)),
			zap.String("model", snap.Model))
	}
	// Clear before Init: remote stores drop and recreate their collection.
	if err := s.store.Clear(); err != nil {
		return err
	}
	if err := s.store.Init(snap.Dimension); err != nil {
		return err
	}
	return s.store.Upsert(snap.Articles, snap.Vectors)
}

// Search embeds the query and scans the store. A provider failure aborts the
// query with no results. An empty corpus yields an empty result set.
func (s *SemanticSearcher) Search(query string, threshold float64) ([]domain.SearchResult, error) {
	if s.empty {
		return []domain.SearchResult{}, nil
	}
	vec, err := s.embedder.Embed(query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return s.store.Search(vec, threshold)
}
