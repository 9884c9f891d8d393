// Package rerank summarizes a result set with a chat-completion model so the
// UI can show a one-paragraph overview above the article list.
package rerank

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"gujnews/internal/domain"
)

// Config configures the chat-completion client.
type Config struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
	Timeout   time.Duration
}

// Client talks to an OpenAI-compatible chat completion endpoint.
type Client struct {
	client *openai.Client
	model  string
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = "OPENAI_API_KEY"
	}
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-3.5-turbo"
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
	return &Client{client: openai.NewClientWithConfig(clientCfg), model: cfg.Model}, nil
}

// SummarizeResults asks the model for a short overview of the top matches.
// At most ten articles are included in the prompt, truncated per article, so
// a large result set does not blow the context window.
func (c *Client) SummarizeResults(query string, results []domain.SearchResult) (string, error) {
	if len(results) == 0 {
		return "", nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Query: %s\n\nArticles:\n", query)
	limit := len(results)
	if limit > 10 {
		limit = 10
	}
	for i := 0; i < limit; i++ {
		a := results[i].Article
		text := truncateRunes(a.Content, 400)
		if a.Title != "" {
			fmt.Fprintf(&b, "%d. [%s] %s: %s\n", i+1, a.SourceFile, a.Title, text)
		} else {
			fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, a.SourceFile, text)
		}
	}
	resp, err := c.client.CreateChatCompletion(context.Background(), openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You summarize Gujarati newspaper search results. Reply with a short paragraph describing what the matching articles cover, in the language of the query.",
			},
			{Role: openai.ChatMessageRoleUser, Content: b.String()},
		},
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// truncateRunes cuts on rune boundaries so Gujarati text is never split
// mid-character.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
