// Package app assembles the search service from configuration. Both front
// ends (TUI and HTTP) share this wiring.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"gujnews/internal/config"
	"gujnews/internal/corpus"
	"gujnews/internal/domain"
	"gujnews/internal/embedding"
	"gujnews/internal/rerank"
	"gujnews/internal/search"
	"gujnews/internal/service"
	"gujnews/internal/summarizer"
	"gujnews/internal/translate"
	"gujnews/internal/vectorstore/memory"
	"gujnews/internal/vectorstore/qdrant"
)

// Assemble builds the search service from config: embedder, vector store,
// the three search strategies, the optional translator and summarizers, and
// finally ingests the corpus. The returned string is a short corpus overview.
func Assemble(cfg *config.AppConfig, logger *zap.Logger) (*service.SearchService, string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var emb domain.Embedder
	switch cfg.Embedder.Type {
	case "tfidf", "":
		emb = embedding.NewTFIDFEmbedder()
	case "openai":
		oc := cfg.Embedder.OpenAI
		if oc == nil {
			return nil, "", fmt.Errorf("openai embedder config missing")
		}
		client, err := embedding.NewOpenAIEmbedder(embedding.OpenAIConfig{
			BaseURL:   oc.BaseURL,
			APIKeyEnv: oc.APIKeyEnv,
			Model:     oc.Model,
			Timeout:   time.Duration(oc.TimeoutSecs) * time.Second,
		})
		if err != nil {
			return nil, "", fmt.Errorf("openai embedder init failed: %w", err)
		}
		emb = client
	default:
		return nil, "", fmt.Errorf("unknown embedder: %s", cfg.Embedder.Type)
	}
	emb = embedding.WithLRUCache(emb, cfg.Embedder.QueryLRU, time.Duration(cfg.Embedder.QueryLRUTTL)*time.Second, logger)

	var store domain.VectorStore
	switch cfg.VectorStore.Type {
	case "memory", "":
		store = memory.NewStore()
	case "qdrant":
		qc := cfg.VectorStore.Qdrant
		if qc == nil {
			return nil, "", fmt.Errorf("qdrant config missing")
		}
		store = qdrant.NewStore(qdrant.Config{
			URL:        qc.URL,
			APIKey:     qc.APIKey,
			Collection: qc.Collection,
			Timeout:    time.Duration(qc.TimeoutSecs) * time.Second,
		})
	default:
		return nil, "", fmt.Errorf("unknown vector store: %s", cfg.VectorStore.Type)
	}

	searchers := []domain.Searcher{
		search.NewSubstringSearcher(),
		search.NewFuzzySearcher(),
		search.NewSemanticSearcher(emb, store, cfg.Index.CachePath, logger),
	}

	var translator domain.Translator
	if cfg.Translator.Enabled {
		client, err := translate.NewClient(translate.Config{
			BaseURL:   cfg.Translator.BaseURL,
			APIKeyEnv: cfg.Translator.APIKeyEnv,
			Source:    cfg.Translator.Source,
			Target:    cfg.Translator.Target,
			Timeout:   time.Duration(cfg.Translator.TimeoutSecs) * time.Second,
		})
		if err != nil {
			return nil, "", fmt.Errorf("translator init failed: %w", err)
		}
		translator = client
	}

	var resultSum domain.ResultSummarizer
	if cfg.Summarizer.Type == "openai" {
		client, err := rerank.NewClient(rerank.Config{
			BaseURL:   cfg.Summarizer.BaseURL,
			APIKeyEnv: cfg.Summarizer.APIKeyEnv,
			Model:     cfg.Summarizer.Model,
		})
		if err != nil {
			return nil, "", fmt.Errorf("summarizer init failed: %w", err)
		}
		resultSum = client
	}

	svc, err := service.New(searchers, cfg.Searcher.Type, service.Options{
		Translator:       translator,
		Overview:         summarizer.NewFrequencySummarizer(),
		ResultSummarizer: resultSum,
		Logger:           logger,
		Threshold:        cfg.Searcher.Threshold,
		Limit:            cfg.Searcher.Limit,
	})
	if err != nil {
		return nil, "", err
	}

	loader := corpus.NewLoader(cfg.Corpus.Delimiter)
	overview, err := svc.Ingest(loader, cfg.Corpus.Dir)
	if err != nil {
		return nil, "", fmt.Errorf("ingest failed: %w", err)
	}
	if errs := svc.LoadErrors(); len(errs) > 0 {
		overview = fmt.Sprintf("%s (%d files skipped)", overview, len(errs))
	}
	return svc, overview, nil
}
