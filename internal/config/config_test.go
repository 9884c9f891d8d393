package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "data", cfg.Corpus.Dir)
	assert.Equal(t, "blank-line", cfg.Corpus.Delimiter)
	assert.Equal(t, "semantic", cfg.Searcher.Type)
	assert.Equal(t, 0.3, cfg.Searcher.Threshold)
	assert.Equal(t, 20, cfg.Searcher.Limit)
	assert.Equal(t, "tfidf", cfg.Embedder.Type)
	assert.Equal(t, "memory", cfg.VectorStore.Type)
	assert.Equal(t, "data/embeddings_cache.gob", cfg.Index.CachePath)
	assert.False(t, cfg.Translator.Enabled)
}

func TestLoadAppliesDefaultsToPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
corpus:
  dir: articles
searcher:
  type: fuzzy
  threshold: 0.5
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "articles", cfg.Corpus.Dir)
	assert.Equal(t, "blank-line", cfg.Corpus.Delimiter)
	assert.Equal(t, "fuzzy", cfg.Searcher.Type)
	assert.Equal(t, 0.5, cfg.Searcher.Threshold)
	assert.Equal(t, 20, cfg.Searcher.Limit, "unset limit falls back")
	assert.Equal(t, filepath.Join("articles", "embeddings_cache.gob"), cfg.Index.CachePath,
		"cache path follows the corpus dir")
	assert.Equal(t, "en", cfg.Translator.Source)
	assert.Equal(t, "gu", cfg.Translator.Target)
}

func TestLoadRejectsUnknownDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("corpus:\n  delimiter: tabs\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("corpus: [broken\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultConfig()
	cfg.Corpus.Delimiter = "slashes"
	cfg.Server.Addr = ":9090"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "slashes", loaded.Corpus.Delimiter)
	assert.Equal(t, ":9090", loaded.Server.Addr)
}

func TestOpenAIEmbedderDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
embedder:
  type: openai
  openai:
    base_url: http://localhost:1234/v1
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Embedder.OpenAI)
	assert.Equal(t, "http://localhost:1234/v1", cfg.Embedder.OpenAI.BaseURL)
	assert.Equal(t, "OPENAI_API_KEY", cfg.Embedder.OpenAI.APIKeyEnv)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedder.OpenAI.Model)
	assert.Equal(t, 30, cfg.Embedder.OpenAI.TimeoutSecs)
}
