package cmr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/cmrquery/query"
)

// DefaultBaseURL is the production CMR search root.
const DefaultBaseURL = "https://cmr.earthdata.nasa.gov/search"

// Doer performs HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Response is a decoded CMR JSON document.
type Response map[string]any

// Client executes queries against a CMR search endpoint
type Client struct {
	baseURL     string
	httpClient  Doer
	userAgent   string
	concurrency int
	metrics     *Metrics
	logger      zerolog.Logger
}

// NewClient creates a new CMR client rooted at baseURL, e.g. DefaultBaseURL
func NewClient(baseURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: CMR URL is required", ErrInvalidConfig)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	client := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  o.client(),
		userAgent:   o.userAgent,
		concurrency: o.concurrency,
		logger:      logger,
	}
	if o.registerer != nil {
		client.metrics = NewMetrics(o.registerer)
	}

	return client, nil
}

// URL validates q and returns the full request URL without sending anything
func (c *Client) URL(q query.Request) (string, error) {
	encoded, err := q.Encode()
	if err != nil {
		return "", err
	}

	endpoint := c.baseURL + "/" + q.Kind().Endpoint()
	if encoded == "" {
		return endpoint, nil
	}
	return endpoint + "?" + encoded, nil
}

// Execute validates and sends q, returning the decoded JSON body. Validation
// failures are returned before any request is made. Bodies that are not a
// JSON object, including null, are reported as *DecodeError. The query is not
// consumed, so calling Execute again sends a new request.
func (c *Client) Execute(ctx context.Context, q query.Request) (Response, error) {
	requestURL, err := c.URL(q)
	if err != nil {
		return nil, fmt.Errorf("invalid %s query: %w", q.Kind(), err)
	}

	body, err := c.get(ctx, q.Kind(), requestURL)
	if err != nil {
		return nil, err
	}

	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &DecodeError{URL: requestURL, Body: string(body), Err: err}
	}
	if resp == nil {
		return nil, &DecodeError{URL: requestURL, Body: string(body), Err: errNotObject}
	}

	return resp, nil
}

// get performs a single GET and returns the body of a non-error response
func (c *Client) get(ctx context.Context, kind query.Kind, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug().
		Str("kind", string(kind)).
		Str("url", requestURL).
		Msg("Making CMR search request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(kind, 0, time.Since(start))
		return nil, &TransportError{URL: requestURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	c.metrics.observe(kind, resp.StatusCode, elapsed)
	if err != nil {
		return nil, &TransportError{URL: requestURL, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		c.logger.Warn().
			Str("kind", string(kind)).
			Int("status", resp.StatusCode).
			Dur("elapsed", elapsed).
			Msg("CMR search request failed")
		return nil, &RequestError{URL: requestURL, StatusCode: resp.StatusCode, Body: string(body)}
	}

	c.logger.Debug().
		Str("kind", string(kind)).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("elapsed", elapsed).
		Msg("CMR search request completed")

	return body, nil
}

// FirstTen returns the entries of an unfiltered collection search, which CMR
// limits to its default page of ten
func (c *Client) FirstTen(ctx context.Context) ([]map[string]any, error) {
	resp, err := c.Execute(ctx, query.NewCollectionQuery())
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return Entries(resp), nil
}
