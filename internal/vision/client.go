package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

const defaultBaseURL = "https://vision.googleapis.com/v1"

// requestedFeatures is the fixed feature set for product image analysis.
var requestedFeatures = []feature{
	{Type: "LABEL_DETECTION"},
	{Type: "OBJECT_LOCALIZATION"},
	{Type: "IMAGE_PROPERTIES"},
	{Type: "TEXT_DETECTION"},
	{Type: "SAFE_SEARCH_DETECTION"},
	{Type: "WEB_DETECTION"},
}

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

// Client is a custom HTTP client for the Cloud Vision REST API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new Vision API client.
func NewClient(apiKey string, logger *slog.Logger, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Analyze runs the full annotation feature set against a product image URL
// and flattens the result into ImageInsights. A nil annotation in the
// response is an error; the pipeline has nothing to generate from.
func (c *Client) Analyze(ctx context.Context, imageURL, correlationID string) (*ImageInsights, error) {
	c.logger.Info("analyzing product image",
		slog.String("correlation_id", correlationID),
		slog.String("image_url", imageURL),
	)

	reqBody := annotateRequest{
		Requests: []annotateImageRequest{{
			Image:    newImageSource(imageURL),
			Features: requestedFeatures,
		}},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/images:annotate?key=%s", c.baseURL, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vision API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result annotateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(result.Responses) == 0 || result.Responses[0] == nil {
		return nil, fmt.Errorf("message %s: image analysis returned no annotation", correlationID)
	}

	insights := flatten(result.Responses[0])
	c.logger.Info("image analysis completed",
		slog.String("correlation_id", correlationID),
	)
	return insights, nil
}

func newImageSource(imageURL string) imageSource {
	var src imageSource
	src.Source.ImageURI = imageURL
	return src
}
