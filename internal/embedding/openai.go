package embedding

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIConfig configures the OpenAI-compatible embeddings client.
type OpenAIConfig struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
	Timeout   time.Duration
}

// OpenAIEmbedder produces embeddings through the OpenAI API (or any
// API-compatible endpoint such as Ollama).
type OpenAIEmbedder struct {
	client    *openai.Client
	model     string
	timeout   time.Duration
	dimension int
}

// NewOpenAIEmbedder creates a new embeddings client using the provided configuration.
func NewOpenAIEmbedder(cfg OpenAIConfig) (*OpenAIEmbedder, error) {
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = "OPENAI_API_KEY"
	}
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.Model == "" {
		cfg.Model = "text-embedding-3-small"
	}
	t := cfg.Timeout
	if t == 0 {
		t = 30 * time.Second
	}
	clientCfg := openai.DefaultConfig(key)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: t}
	return &OpenAIEmbedder{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: t,
	}, nil
}

// Name returns the identifier of this embedder implementation.
func (e *OpenAIEmbedder) Name() string { return "openai-" + e.model }

// Prepare is not required for remote embedding. Dimension is set lazily on first embed.
func (e *OpenAIEmbedder) Prepare(corpus []string) error { return nil }

// Dimension returns the dimensionality of the produced embedding vectors.
func (e *OpenAIEmbedder) Dimension() int { return e.dimension }

// Embed returns an L2-normalized embedding vector for the given text.
func (e *OpenAIEmbedder) Embed(text string) ([]float64, error) {
	if text == "" {
		return nil, errors.New("cannot embed empty text")
	}
	resp, err := e.client.CreateEmbeddings(context.Background(), openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.model),
		Input: []string{text},
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding: %w", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, errors.New("no embedding returned")
	}
	raw := resp.Data[0].Embedding
	vec := make([]float64, len(raw))
	for i, v := range raw {
		vec[i] = float64(v)
	}
	l2normalize(vec)
	if e.dimension == 0 {
		e.dimension = len(vec)
	}
	return vec, nil
}

// l2normalize scales a vector to unit length so cosine similarity reduces to
// a dot product. A zero vector is left untouched.
func l2normalize(v []float64) {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	inv := 1.0 / math.Sqrt(sum)
	for i := range v {
		v[i] *= inv
	}
}
