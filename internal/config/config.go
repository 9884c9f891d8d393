package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CorpusConfig configures where articles are read from and how files are
// split into units.
type CorpusConfig struct {
	Dir string `yaml:"dir"`
	// Delimiter selects the unit separator for .txt files:
	// "blank-line", "newline", "slashes" (literal //) or "sentences".
	Delimiter string `yaml:"delimiter"`
}

// OpenAIEmbedderConfig holds configuration for the OpenAI-compatible embedder.
type OpenAIEmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Type        string                `yaml:"type"`
	OpenAI      *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
	QueryLRU    int                   `yaml:"query_lru_size"`
	QueryLRUTTL int                   `yaml:"query_lru_ttl_secs"`
}

// SearcherConfig selects the default search strategy and result shaping.
type SearcherConfig struct {
	Type      string  `yaml:"type"` // substring, fuzzy, semantic
	Threshold float64 `yaml:"threshold"`
	Limit     int     `yaml:"limit"`
}

// IndexConfig configures the persisted embedding snapshot.
type IndexConfig struct {
	CachePath string `yaml:"cache_path"`
}

// VectorStoreConfig selects and configures the vector store implementation.
type VectorStoreConfig struct {
	Type   string        `yaml:"type"`
	Qdrant *QdrantConfig `yaml:"qdrant,omitempty"`
}

// QdrantConfig contains connection details for a Qdrant vector store.
type QdrantConfig struct {
	URL         string `yaml:"url"`
	APIKey      string `yaml:"api_key"`
	Collection  string `yaml:"collection"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// TranslatorConfig configures the query translation endpoint.
type TranslatorConfig struct {
	Enabled     bool   `yaml:"enabled"`
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Source      string `yaml:"source"`
	Target      string `yaml:"target"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// SummarizerConfig selects and configures result summarization.
type SummarizerConfig struct {
	Type         string `yaml:"type"` // frequency or openai
	MaxSentences int    `yaml:"max_sentences"`
	Model        string `yaml:"model"`
	APIKeyEnv    string `yaml:"api_key_env"`
	BaseURL      string `yaml:"base_url"`
}

// ServerConfig configures the HTTP front end.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Corpus      CorpusConfig      `yaml:"corpus"`
	Searcher    SearcherConfig    `yaml:"searcher"`
	Embedder    EmbedderConfig    `yaml:"embedder"`
	Index       IndexConfig       `yaml:"index"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
	Translator  TranslatorConfig  `yaml:"translator"`
	Summarizer  SummarizerConfig  `yaml:"summarizer"`
	Server      ServerConfig      `yaml:"server"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := applyConfigDefaults(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/gujnews/config.yaml.
// If neither exists, it writes defaults to ~/.config/gujnews/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gujnews", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Corpus:      CorpusConfig{Dir: "data", Delimiter: "blank-line"},
		Searcher:    SearcherConfig{Type: "semantic", Threshold: 0.3, Limit: 20},
		Embedder:    EmbedderConfig{Type: "tfidf", QueryLRU: 256, QueryLRUTTL: 600},
		Index:       IndexConfig{CachePath: "data/embeddings_cache.gob"},
		VectorStore: VectorStoreConfig{Type: "memory"},
		Translator: TranslatorConfig{
			Enabled: false,
			Source:  "en",
			Target:  "gu",
		},
		Summarizer: SummarizerConfig{Type: "frequency", MaxSentences: 5},
		Server:     ServerConfig{Addr: ":8080"},
	}
}

func applyConfigDefaults(cfg *AppConfig) error {
	if cfg.Corpus.Dir == "" {
		cfg.Corpus.Dir = "data"
	}
	if cfg.Corpus.Delimiter == "" {
		cfg.Corpus.Delimiter = "blank-line"
	}
	switch cfg.Corpus.Delimiter {
	case "blank-line", "newline", "slashes", "sentences":
	default:
		return fmt.Errorf("unknown corpus delimiter: %s", cfg.Corpus.Delimiter)
	}
	if cfg.Searcher.Type == "" {
		cfg.Searcher.Type = "semantic"
	}
	if cfg.Searcher.Limit == 0 {
		cfg.Searcher.Limit = 20
	}
	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = "tfidf"
	}
	if cfg.Embedder.QueryLRU == 0 {
		cfg.Embedder.QueryLRU = 256
	}
	if cfg.Embedder.QueryLRUTTL == 0 {
		cfg.Embedder.QueryLRUTTL = 600
	}
	if cfg.Embedder.Type == "openai" && cfg.Embedder.OpenAI != nil {
		if cfg.Embedder.OpenAI.BaseURL == "" {
			cfg.Embedder.OpenAI.BaseURL = "https://api.openai.com/v1"
		}
		if cfg.Embedder.OpenAI.APIKeyEnv == "" {
			cfg.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Embedder.OpenAI.Model == "" {
			cfg.Embedder.OpenAI.Model = "text-embedding-3-small"
		}
		if cfg.Embedder.OpenAI.TimeoutSecs == 0 {
			cfg.Embedder.OpenAI.TimeoutSecs = 30
		}
	}
	if cfg.Index.CachePath == "" {
		cfg.Index.CachePath = filepath.Join(cfg.Corpus.Dir, "embeddings_cache.gob")
	}
	if cfg.VectorStore.Type == "" {
		cfg.VectorStore.Type = "memory"
	}
	if cfg.Translator.Source == "" {
		cfg.Translator.Source = "en"
	}
	if cfg.Translator.Target == "" {
		cfg.Translator.Target = "gu"
	}
	if cfg.Translator.TimeoutSecs == 0 {
		cfg.Translator.TimeoutSecs = 15
	}
	if cfg.Summarizer.Type == "" {
		cfg.Summarizer.Type = "frequency"
	}
	if cfg.Summarizer.MaxSentences == 0 {
		cfg.Summarizer.MaxSentences = 5
	}
	if cfg.Summarizer.Type == "openai" {
		if cfg.Summarizer.Model == "" {
			cfg.Summarizer.Model = "gpt-3.5-turbo"
		}
		if cfg.Summarizer.APIKeyEnv == "" {
			cfg.Summarizer.APIKeyEnv = "OPENAI_API_KEY"
		}
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	return nil
}
