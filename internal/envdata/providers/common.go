package providers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// Both upstream APIs (NASA POWER and SoilGrids) are slow and occasionally
// flaky, so every call goes through retries with exponential backoff and a
// circuit breaker. A request timeout is treated like any other failure; the
// caller's cache fallback handles it.

const defaultRequestTimeout = 30 * time.Second

var (
	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
	errBadStatus   = errors.New("unexpected status code")
	errCircuitOpen = errors.New("circuit breaker open")
)

// backoffPolicy controls retry behaviour for one upstream.
type backoffPolicy struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
}

func defaultBackoff() backoffPolicy {
	return backoffPolicy{
		maxRetries:      3,
		initialInterval: 500 * time.Millisecond,
		maxInterval:     5 * time.Second,
	}
}

// resilientClient wraps an http.Client with retries and a circuit breaker
// named after the upstream it protects.
type resilientClient struct {
	client  *http.Client
	backoff backoffPolicy
	circuit *gobreaker.CircuitBreaker
}

func newResilientClient(client *http.Client, name string) *resilientClient {
	if client == nil {
		client = &http.Client{Timeout: defaultRequestTimeout}
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
	return &resilientClient{
		client:  client,
		backoff: defaultBackoff(),
		circuit: cb,
	}
}

// do executes the request built by buildRequest, retrying transient failures.
// The caller owns the returned response body.
func (rc *resilientClient) do(ctx context.Context, buildRequest func() (*http.Request, error)) (*http.Response, error) {
	var attempt int
	var lastErr error

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := buildRequest()
		if err != nil {
			return nil, err
		}
		req = req.WithContext(ctx)

		result, err := rc.circuit.Execute(func() (interface{}, error) {
			resp, execErr := rc.client.Do(req)
			if execErr != nil {
				return nil, execErr
			}

			if resp.StatusCode == http.StatusTooManyRequests {
				resp.Body.Close()
				return nil, errRateLimited
			}
			if resp.StatusCode >= 500 {
				resp.Body.Close()
				return nil, errServerError
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				resp.Body.Close()
				return nil, fmt.Errorf("%w: %d", errBadStatus, resp.StatusCode)
			}

			return resp, nil
		})

		if err == nil {
			return result.(*http.Response), nil
		}

		// An open circuit means the upstream is known-bad; fail fast so the
		// cache fallback can take over.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		lastErr = err
		if attempt >= rc.backoff.maxRetries {
			return nil, lastErr
		}

		delay := rc.backoff.initialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if rc.backoff.maxInterval > 0 && delay > rc.backoff.maxInterval {
			delay = rc.backoff.maxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		attempt++
	}
}
