package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/tiktoken-go/tokenizer"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// ClientOption configures the client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// Client is a custom HTTP client for the Gemini generateContent API. It
// backs both description generation and translation.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger

	codecOnce sync.Once
	codec     tokenizer.Codec
}

// NewClient creates a new Gemini client bound to a single model.
func NewClient(apiKey, model string, logger *slog.Logger, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generate sends a single prompt and returns the first candidate's text.
// An empty candidate set or empty text is an error.
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateContentRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generative API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result generateContentResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("generative API returned no candidates")
	}

	text := strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("generative API returned empty text")
	}
	return text, nil
}

// promptTokens estimates the token count of a prompt. Gemini does not ship a
// local tokenizer, so cl100k is used as an approximation for logging only.
func (c *Client) promptTokens(prompt string) int {
	c.codecOnce.Do(func() {
		codec, err := tokenizer.Get(tokenizer.Cl100kBase)
		if err != nil {
			c.logger.Warn("failed to load tokenizer", slog.String("error", err.Error()))
			return
		}
		c.codec = codec
	})
	if c.codec == nil {
		return 0
	}
	ids, _, err := c.codec.Encode(prompt)
	if err != nil {
		return 0
	}
	return len(ids)
}
