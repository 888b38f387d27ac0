package cmr

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultConcurrency = 4
	defaultUserAgent   = "cmrquery"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	timeout     time.Duration
	httpClient  Doer
	userAgent   string
	concurrency int
	registerer  prometheus.Registerer
}

func defaultOptions() clientOptions {
	return clientOptions{
		timeout:     defaultTimeout,
		userAgent:   defaultUserAgent,
		concurrency: defaultConcurrency,
	}
}

// WithTimeout sets the HTTP client timeout. Ignored when WithHTTPClient is used.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithHTTPClient replaces the transport used for GET requests.
func WithHTTPClient(client Doer) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		if userAgent != "" {
			o.userAgent = userAgent
		}
	}
}

// WithConcurrency bounds the number of in-flight requests in ExecuteAll.
func WithConcurrency(n int) Option {
	return func(o *clientOptions) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithMetrics registers request metrics on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *clientOptions) {
		o.registerer = reg
	}
}

func (o clientOptions) client() Doer {
	if o.httpClient != nil {
		return o.httpClient
	}
	return &http.Client{Timeout: o.timeout}
}
