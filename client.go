package aiklyra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// AnalyseEndpoint is the path of the conversation-flow-analysis operation,
// appended to the client's base URL.
const AnalyseEndpoint = "conversation-flow-analysis"

const defaultTimeout = 30 * time.Second

// Client calls the Aiklyra analysis service. Its configuration is fixed at
// construction; a Client is safe for concurrent use because each call only
// reads it.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// ClientOption customizes a Client at construction.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client, e.g. to change the
// timeout or install a test transport.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient returns a client for the service at baseURL, authenticating
// every call with apiKey.
func NewClient(apiKey, baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured service base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type analyseOptions struct {
	minClusters *int
	maxClusters *int
}

// AnalyseOption sets an optional tuning parameter on a single Analyse call.
type AnalyseOption func(*analyseOptions)

// WithMinClusters sets the lower bound on the number of clusters the service
// may discover. Must be positive.
func WithMinClusters(n int) AnalyseOption {
	return func(o *analyseOptions) {
		o.minClusters = &n
	}
}

// WithMaxClusters sets the upper bound on the number of clusters the service
// may discover. Must be positive and not below the minimum.
func WithMaxClusters(n int) AnalyseOption {
	return func(o *analyseOptions) {
		o.maxClusters = &n
	}
}

// Analyse submits conversationData for flow analysis and returns the typed
// result.
//
// conversationData must be a map of session ids to ordered turns; the typed
// ConversationData form is the common case, but any map-shaped value that
// serializes to the same JSON is accepted. Validation failures are returned
// as *ValidationError before any request is sent. Service failures are
// returned as the error types described in the package documentation.
func (c *Client) Analyse(ctx context.Context, conversationData any, opts ...AnalyseOption) (*AnalysisResponse, error) {
	var options analyseOptions
	for _, opt := range opts {
		opt(&options)
	}

	if err := validateRequest(conversationData, options.minClusters, options.maxClusters); err != nil {
		return nil, err
	}

	payload := AnalysisRequest{
		ConversationData: conversationData,
		MinClusters:      options.minClusters,
		MaxClusters:      options.maxClusters,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode analysis request: %w", err)
	}

	url := c.baseURL + "/" + AnalyseEndpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build analysis request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analysis request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read analysis response: %w", err)
	}

	return classifyResponse(resp.StatusCode, respBody)
}
