// Package translate is a small REST client for a LibreTranslate-compatible
// translation endpoint, used to turn English queries into Gujarati before
// searching the corpus.
package translate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config configures the translation client.
type Config struct {
	BaseURL   string
	APIKeyEnv string
	Source    string
	Target    string
	Timeout   time.Duration
}

// Client translates text between a fixed language pair.
type Client struct {
	baseURL    string
	apiKey     string
	source     string
	target     string
	client     *http.Client
	maxRetries int
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("translator base_url is required")
	}
	var key string
	if cfg.APIKeyEnv != "" {
		key = os.Getenv(cfg.APIKeyEnv)
	}
	if cfg.Source == "" {
		cfg.Source = "en"
	}
	if cfg.Target == "" {
		cfg.Target = "gu"
	}
	t := cfg.Timeout
	if t == 0 {
		t = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     key,
		source:     cfg.Source,
		target:     cfg.Target,
		client:     &http.Client{Timeout: t},
		maxRetries: 3,
	}, nil
}

// Translate sends the text to the endpoint and returns the translation.
// Transient failures (429, 5xx, network) are retried with exponential
// backoff, respecting Retry-After when present.
func (c *Client) Translate(text string) (string, error) {
	type reqBody struct {
		Q      string `json:"q"`
		Source string `json:"source"`
		Target string `json:"target"`
		Format string `json:"format"`
		APIKey string `json:"api_key,omitempty"`
	}
	body := reqBody{Q: text, Source: c.source, Target: c.target, Format: "text", APIKey: c.apiKey}
	data, _ := json.Marshal(body)
	url := c.baseURL + "/translate"

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			if attempt < c.maxRetries {
				time.Sleep(retryDelay(attempt))
				continue
			}
			return "", err
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			delay := retryDelay(attempt)
			if ra := resp.Header.Get("Retry-After"); ra != "" {
				if secs, err := strconv.Atoi(ra); err == nil {
					delay = time.Duration(secs) * time.Second
				}
			}
			_ = resp.Body.Close()
			if attempt < c.maxRetries {
				time.Sleep(delay)
				continue
			}
			return "", fmt.Errorf("translate failed: %s", resp.Status)
		}

		if resp.StatusCode >= 300 {
			_ = resp.Body.Close()
			return "", fmt.Errorf("translate failed: %s", resp.Status)
		}

		var out struct {
			TranslatedText string `json:"translatedText"`
		}
		err = json.NewDecoder(resp.Body).Decode(&out)
		_ = resp.Body.Close()
		if err != nil {
			return "", err
		}
		if out.TranslatedText == "" {
			return "", errors.New("empty translation returned")
		}
		return out.TranslatedText, nil
	}
	return "", errors.New("translate failed")
}

func retryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	base := 200 * time.Millisecond
	// exponential backoff capped at 5s
	d := base << attempt
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}
