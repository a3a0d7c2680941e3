package commercetools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/amal-thomson/pixelphraser-commercetools-connector/internal/config"
)

// ClientOption configures the client.
type ClientOption func(*Client)

// WithBaseURL sets a custom API base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client, replacing the OAuth2 client
// built from the configured credentials. Used by tests.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// Client is an HTTP client for the commercetools project API. All requests
// are scoped to a single project key and authenticated with the OAuth2
// client-credentials flow.
type Client struct {
	projectKey string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a project-scoped commercetools client.
func NewClient(cfg config.CommercetoolsConfig, logger *slog.Logger, opts ...ClientOption) *Client {
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     strings.TrimSuffix(cfg.AuthURL, "/") + "/oauth/token",
		Scopes:       cfg.Scopes,
	}

	// Token refresh is handled by the oauth2 transport; the otelhttp layer
	// sits outside it so spans cover the authenticated call.
	httpClient := cc.Client(context.Background())
	httpClient.Transport = otelhttp.NewTransport(httpClient.Transport)

	c := &Client{
		projectKey: cfg.ProjectKey,
		baseURL:    strings.TrimSuffix(cfg.APIURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs a GET against a project-relative path and decodes the
// response into out. Missing resources surface as ErrNotFound.
func (c *Client) get(ctx context.Context, path string, out any) error {
	url := fmt.Sprintf("%s/%s%s", c.baseURL, c.projectKey, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return c.decodeResponse(resp, out)
}

// post performs a POST with a JSON body against a project-relative path.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s%s", c.baseURL, c.projectKey, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return c.decodeResponse(resp, out)
}

func (c *Client) decodeResponse(resp *http.Response, out any) error {
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrVersionConflict, apiMessage(respBody))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &APIError{StatusCode: resp.StatusCode, Message: apiMessage(respBody)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

// apiMessage extracts the error message from a commercetools error body,
// falling back to the raw body.
func apiMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	return string(body)
}
