package worker

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter throttles requests per host. "www.example.org" and "example.org"
// share one bucket.
type Limiter struct {
	mu       sync.Mutex
	hosts    map[string]*rate.Limiter
	delays   map[string]time.Duration
	fallback rate.Limit
	burst    int
}

// NewLimiter creates a limiter allowing requestsPerSecond per host.
// A non-positive rate disables throttling.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 1
	}
	limit := rate.Limit(requestsPerSecond)
	if requestsPerSecond <= 0 {
		limit = rate.Inf
	}
	return &Limiter{
		hosts:    make(map[string]*rate.Limiter),
		delays:   make(map[string]time.Duration),
		fallback: limit,
		burst:    burst,
	}
}

// Wait blocks until the host of rawURL may be contacted
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	host, err := hostKey(rawURL)
	if err != nil {
		return err
	}
	return l.forHost(host).Wait(ctx)
}

// SetRate overrides the rate for the host of rawURL, e.g. a search endpoint
func (l *Limiter) SetRate(rawURL string, requestsPerSecond float64, burst int) error {
	host, err := hostKey(rawURL)
	if err != nil {
		return err
	}
	if burst <= 0 {
		burst = 1
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.hosts[host] = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	return nil
}

// ObserveCrawlDelay slows a host down to one request per delay, as asked by
// its robots.txt. Delays that would speed the host up are ignored.
func (l *Limiter) ObserveCrawlDelay(rawURL string, delay time.Duration) {
	if delay <= 0 {
		return
	}
	host, err := hostKey(rawURL)
	if err != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if prev, ok := l.delays[host]; ok && prev >= delay {
		return
	}
	limit := rate.Every(delay)
	if current, ok := l.hosts[host]; ok && limit >= current.Limit() {
		return
	} else if !ok && limit >= l.fallback {
		return
	}
	l.delays[host] = delay
	l.hosts[host] = rate.NewLimiter(limit, 1)
}

func (l *Limiter) forHost(host string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.hosts[host]
	if !ok {
		limiter = rate.NewLimiter(l.fallback, l.burst)
		l.hosts[host] = limiter
	}
	return limiter
}

// hostKey lowercases the host and drops a leading "www."
func hostKey(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("no host in %q", rawURL)
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www."), nil
}
