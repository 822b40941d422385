package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"ulascansenturk/city-explorer/internal/telemetry"
)

var (
	ErrNoResults        = errors.New("provider returned no results")
	ErrRateLimited      = errors.New("rate limited")
	ErrServerError      = errors.New("server error")
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrCircuitOpen      = errors.New("circuit breaker open")
	ErrMalformed        = errors.New("malformed response")
)

// maxBodySize caps how much of a provider response we are willing to buffer.
const maxBodySize = 4 << 20

// client is the shared HTTP plumbing behind every provider: one circuit
// breaker per provider, no retries.
type client struct {
	name    string
	http    *http.Client
	circuit *gobreaker.CircuitBreaker
}

func newClient(name string, httpClient *http.Client) *client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &client{
		name: name,
		http: httpClient,
		circuit: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// get performs a GET and returns the body of a 2xx response.
func (c *client) get(ctx context.Context, url string, header http.Header) ([]byte, error) {
	start := time.Now()
	status := "error"
	defer func() {
		telemetry.ProviderRequestDuration.WithLabelValues(c.name, status).Observe(time.Since(start).Seconds())
	}()

	result, err := c.circuit.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		for key, values := range header {
			for _, value := range values {
				req.Header.Add(key, value)
			}
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		status = strconv.Itoa(resp.StatusCode)

		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, ErrRateLimited
		}
		if resp.StatusCode >= 500 {
			return nil, fmt.Errorf("%w: %d", ErrServerError, resp.StatusCode)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
		}

		return io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%s: %w: %v", c.name, ErrCircuitOpen, err)
		}
		return nil, fmt.Errorf("%s request failed: %w", c.name, err)
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected result type from circuit breaker", c.name)
	}
	return body, nil
}
