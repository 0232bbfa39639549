package fetch

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ppiankov/cfpwatch/internal/cache"
	"github.com/ppiankov/cfpwatch/internal/model"
	"github.com/ppiankov/cfpwatch/internal/util"
	"github.com/ppiankov/cfpwatch/internal/worker"
)

// ErrDisallowed is returned when robots.txt forbids fetching a URL
var ErrDisallowed = errors.New("disallowed by robots.txt")

// fetchSleepFunc is the backoff sleep, swapped out in tests
var fetchSleepFunc = time.Sleep

const defaultMaxAttempts = 3

// Fetcher fetches HTML content from URLs
type Fetcher struct {
	httpClient  *http.Client
	userAgent   string
	maxBytes    int64
	maxAttempts int
	cache       cache.Cache
	cacheTTL    time.Duration
	robots      *util.RobotsChecker
	limiter     *worker.Limiter
	logger      *slog.Logger
}

// NewFetcher creates a new Fetcher with the given configuration
func NewFetcher(timeout time.Duration, userAgent string, maxBytes int64, insecureTLS bool, httpProxy, httpsProxy, noProxy string) *Fetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = util.NewProxyFunc(httpProxy, httpsProxy, noProxy)
	if insecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via config
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent:   userAgent,
		maxBytes:    maxBytes,
		maxAttempts: defaultMaxAttempts,
		cache:       cache.Noop{},
		logger:      slog.Default(),
	}
}

// NewFromConfig builds a fetcher from the HTTP section of the config
func NewFromConfig(cfg model.HTTPConfig) *Fetcher {
	f := NewFetcher(cfg.Timeout, cfg.UserAgent, cfg.MaxBodyBytes, cfg.InsecureTLS, cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy)
	if cfg.MaxRetries > 0 {
		f.maxAttempts = cfg.MaxRetries
	}
	return f
}

// WithCache stores successful responses in c for ttl
func (f *Fetcher) WithCache(c cache.Cache, ttl time.Duration) *Fetcher {
	if c != nil {
		f.cache = c
		f.cacheTTL = ttl
	}
	return f
}

// WithRobots consults robots.txt before every fetch
func (f *Fetcher) WithRobots(r *util.RobotsChecker) *Fetcher {
	f.robots = r
	return f
}

// WithLimiter throttles requests per domain
func (f *Fetcher) WithLimiter(l *worker.Limiter) *Fetcher {
	f.limiter = l
	return f
}

// WithLogger sets the logger
func (f *Fetcher) WithLogger(l *slog.Logger) *Fetcher {
	if l != nil {
		f.logger = l
	}
	return f
}

// Client returns the underlying HTTP client (shares proxy/TLS settings)
func (f *Fetcher) Client() *http.Client {
	return f.httpClient
}

// UserAgent returns the configured user agent
func (f *Fetcher) UserAgent() string {
	return f.userAgent
}

// FetchResult contains the fetched HTML and metadata
type FetchResult struct {
	HTML     string          `json:"html"`
	Meta     model.FetchMeta `json:"meta"`
	FinalURL string          `json:"final_url"`
}

// Fetch retrieves HTML content from the given URL
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	key := cache.Key("page", rawURL)
	if data, ok := f.cache.Get(key); ok {
		var cached FetchResult
		if err := json.Unmarshal(data, &cached); err == nil {
			cached.Meta.FromCache = true
			return &cached, nil
		}
	}

	if f.robots != nil {
		allowed, delay, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		if !allowed {
			return nil, fmt.Errorf("%s: %w", rawURL, ErrDisallowed)
		}
		if f.limiter != nil {
			f.limiter.ObserveCrawlDelay(rawURL, delay)
		}
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, rawURL); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	meta := model.FetchMeta{
		StatusCode:   resp.StatusCode,
		ContentType:  resp.Header.Get("Content-Type"),
		LastModified: resp.Header.Get("Last-Modified"),
		ETag:         resp.Header.Get("ETag"),
		Headers:      make(map[string]string),
	}

	for _, key := range []string{"Content-Length", "Server", "Cache-Control"} {
		if val := resp.Header.Get(key); val != "" {
			meta.Headers[key] = val
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	result := &FetchResult{
		HTML:     string(body),
		Meta:     meta,
		FinalURL: resp.Request.URL.String(),
	}

	if data, err := json.Marshal(result); err == nil {
		if err := f.cache.Set(key, data, f.cacheTTL); err != nil {
			f.logger.Debug("cache write failed", "url", rawURL, "error", err)
		}
	}

	return result, nil
}

// FetchWithRetry retries transient failures (5xx, 429, connection errors)
// with exponential backoff. Other failures return immediately.
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string) (*FetchResult, error) {
	var lastErr error
	backoff := time.Second

	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		result, err := f.Fetch(ctx, rawURL)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isRetryableFetchError(err) || attempt == f.maxAttempts {
			break
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		f.logger.Debug("transient fetch error, retrying", "url", rawURL, "attempt", attempt, "error", err)
		fetchSleepFunc(backoff)
		backoff *= 2
	}

	return nil, lastErr
}

// isRetryableFetchError classifies errors produced by Fetch
func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDisallowed) || errors.Is(err, context.Canceled) {
		return false
	}

	msg := err.Error()
	if strings.HasPrefix(msg, "create request") || strings.HasPrefix(msg, "read body") {
		return false
	}

	if idx := strings.Index(msg, "unexpected status: "); idx >= 0 {
		var code int
		if _, scanErr := fmt.Sscanf(msg[idx:], "unexpected status: %d", &code); scanErr != nil {
			return false
		}
		return code >= 500 || code == http.StatusTooManyRequests
	}

	lower := strings.ToLower(msg)
	for _, transient := range []string{
		"connection refused",
		"connection reset",
		"timeout",
		"deadline exceeded",
		"eof",
		"temporary failure",
	} {
		if strings.Contains(lower, transient) {
			return true
		}
	}
	return false
}
