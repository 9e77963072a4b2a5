package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/nutriquiz/backend/internal/domain"
)

const maxAttempts = 3

// HTTPSource fetches the catalog document from a remote URL.
// Requests go through a rate limiter and transient failures are retried.
type HTTPSource struct {
	httpClient  *http.Client
	url         string
	rateLimiter *rate.Limiter
	logger      *zap.Logger
	backoff     func(attempt int) time.Duration
}

// NewHTTPSource creates a new remote catalog source
func NewHTTPSource(url string, timeout time.Duration, logger *zap.Logger) *HTTPSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &HTTPSource{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		url:         url,
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 3),
		logger:      logger,
		backoff:     linearBackoff,
	}
}

// linearBackoff waits 500ms more on every attempt
func linearBackoff(attempt int) time.Duration {
	return time.Duration(attempt*500) * time.Millisecond
}

// doRequest executes an HTTP GET request with proper headers
func (s *HTTPSource) doRequest(ctx context.Context) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "NutriQuiz/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	return resp, nil
}

// Load fetches and decodes the catalog, retrying up to three times on network
// errors and non-200 answers other than 404
func (s *HTTPSource) Load(ctx context.Context) (*domain.Catalog, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := s.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := s.doRequest(ctx)
		if err != nil {
			s.logger.Warn("catalog request failed", zap.Int("attempt", attempt), zap.Error(err))
			lastErr = err
			if err := s.wait(ctx, attempt); err != nil {
				return nil, err
			}
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("%w: read body: %v", domain.ErrCatalogUnavailable, err)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			s.logger.Warn("catalog endpoint returned an error",
				zap.Int("attempt", attempt),
				zap.Int("status", resp.StatusCode),
			)
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
			if resp.StatusCode == http.StatusNotFound {
				return nil, lastErr
			}
			if err := s.wait(ctx, attempt); err != nil {
				return nil, err
			}
			continue
		}

		return decode(bytes.NewReader(body))
	}

	return nil, lastErr
}

func (s *HTTPSource) wait(ctx context.Context, attempt int) error {
	if attempt == maxAttempts {
		return nil
	}
	timer := time.NewTimer(s.backoff(attempt))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
