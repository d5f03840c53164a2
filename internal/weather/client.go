package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bnin/internal/logger"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

var (
	ErrNotConfigured    = errors.New("weather api key not configured")
	ErrLocationRequired = errors.New("weather location required")
	ErrLocationNotFound = errors.New("weather location not found")
)

const (
	// free OpenWeatherMap tier allows 60 calls a minute
	rateLimit = 1
	rateBurst = 5

	maxRetries   = 3
	initialDelay = 500 * time.Millisecond
	maxDelay     = 8 * time.Second
)

// Client fetches current conditions from an OpenWeatherMap-compatible API
// with rate limiting, retry with backoff and a circuit breaker.
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	cb          *gobreaker.CircuitBreaker[*Reading]
	log         *logger.Logger

	maxRetries   int
	initialDelay time.Duration
	maxDelay     time.Duration
}

// NewClient creates a weather client. An empty apiKey yields a client whose
// lookups fail with ErrNotConfigured.
func NewClient(baseURL, apiKey string, timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		log:          log.With("component", "weather_client"),
		maxRetries:   maxRetries,
		initialDelay: initialDelay,
		maxDelay:     maxDelay,
	}

	CircuitBreakerState.Set(0)
	c.cb = gobreaker.NewCircuitBreaker[*Reading](gobreaker.Settings{
		Name:        "weather-api",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= 0.6 {
				c.log.Warn("opening weather circuit", "failures", counts.TotalFailures, "failure_rate", ratio)
				return true
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Info("weather circuit state change", "from", from.String(), "to", to.String())
			CircuitBreakerState.Set(stateToFloat(to))
			CircuitBreakerTransitions.WithLabelValues(from.String(), to.String()).Inc()
		},
		// caller mistakes say nothing about the health of the API
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrLocationNotFound) || errors.Is(err, context.Canceled)
		},
	})
	return c
}

// Current returns the weather at location.
func (c *Client) Current(ctx context.Context, location string) (*Reading, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, ErrLocationRequired
	}

	started := time.Now()
	defer func() { RequestDuration.Observe(time.Since(started).Seconds()) }()

	reading, err := c.cb.Execute(func() (*Reading, error) {
		params := url.Values{}
		params.Set("q", location)
		params.Set("appid", c.apiKey)
		params.Set("units", "metric")

		var resp currentResponse
		if err := c.doRequest(ctx, "/weather", params, &resp); err != nil {
			return nil, err
		}
		return resp.toReading(location), nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			RequestsTotal.WithLabelValues("rejected").Inc()
		} else {
			RequestsTotal.WithLabelValues("failure").Inc()
		}
		return nil, fmt.Errorf("failed to fetch weather for %q: %w", location, err)
	}
	RequestsTotal.WithLabelValues("success").Inc()
	return reading, nil
}

// doRequest performs a GET with rate limiting and retry on 429/5xx.
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	fullURL := c.baseURL + endpoint
	if params != nil {
		fullURL += "?" + params.Encode()
	}

	var lastErr error
	delay := c.initialDelay

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", "Bnin/1.0")
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if attempt < c.maxRetries && ctx.Err() == nil {
				c.log.Warn("weather request failed, retrying", "attempt", attempt+1, "delay", delay, "error", err)
				if err := sleep(ctx, delay); err != nil {
					return err
				}
				delay = minDuration(delay*2, c.maxDelay)
				continue
			}
			return fmt.Errorf("request failed after %d attempts: %w", attempt+1, err)
		}

		retry, err := c.handleResponse(resp, result)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry || attempt == c.maxRetries {
			return err
		}

		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if d, perr := time.ParseDuration(ra + "s"); perr == nil {
				delay = minDuration(d, c.maxDelay)
			}
		}
		c.log.Warn("weather api error, retrying", "status", resp.StatusCode, "attempt", attempt+1, "delay", delay)
		if err := sleep(ctx, delay); err != nil {
			return err
		}
		delay = minDuration(delay*2, c.maxDelay)
	}

	return fmt.Errorf("request failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

// handleResponse decodes a 200 into result; otherwise it reports whether the
// status is worth retrying.
func (c *Client) handleResponse(resp *http.Response, result interface{}) (bool, error) {
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return false, fmt.Errorf("failed to parse response: %w", err)
		}
		return false, nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if resp.StatusCode == http.StatusNotFound {
		return false, ErrLocationNotFound
	}
	return shouldRetry(resp.StatusCode), fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}

func shouldRetry(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= 500
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
