package mlsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"mls-sync/internal/config"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// RawRecord is an upstream record as decoded from the wire. Records
// are typed by the normalizer before they reach storage.
type RawRecord map[string]interface{}

// BatchFunc receives each page of listings. Returning stop=true ends
// the fetch early; returning an error aborts it.
type BatchFunc func(batch []RawRecord, totalSoFar int) (stop bool, err error)

// envelope is the provider's response wrapper
type envelope struct {
	Value    []RawRecord `json:"value"`
	NextLink string      `json:"@odata.nextLink"`
}

// Client fetches paginated listing data and related resources from the
// upstream MLS provider. It knows nothing about local storage.
type Client struct {
	httpClient *http.Client
	logger     *logrus.Logger

	baseURL     string
	accessToken string
	pageSize    int
	maxRetries  int
	retryDelay  time.Duration
	chunkSize   int

	// limiter enforces the fixed inter-request delay. The first Wait in
	// a session consumes the initial token immediately, so the delay
	// applies before every request except the first.
	limiter *rate.Limiter
}

// NewClient creates an API client from the provider config
func NewClient(cfg config.MLSApiConfig, chunkSize int, logger *logrus.Logger) *Client {
	if chunkSize <= 0 {
		chunkSize = 50
	}
	return &Client{
		httpClient:  &http.Client{Timeout: cfg.GetTimeout()},
		logger:      logger,
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		pageSize:    cfg.PageSize,
		maxRetries:  cfg.MaxRetries,
		retryDelay:  cfg.GetRetryDelay(),
		chunkSize:   chunkSize,
		limiter:     rate.NewLimiter(rate.Every(cfg.GetRequestDelay()), 1),
	}
}

// FetchListings issues a filtered, ascending-modification-timestamp
// ordered request and follows the provider's continuation link until
// pages are exhausted, onBatch signals a stop, or sessionLimit is
// reached. Returns the total number of records delivered.
func (c *Client) FetchListings(ctx context.Context, filter string, onBatch BatchFunc, sessionLimit int) (int, error) {
	query := url.Values{}
	query.Set("$filter", filter)
	query.Set("$top", fmt.Sprintf("%d", c.pageSize))
	query.Set("$orderby", "ModificationTimestamp asc")

	requestURL := fmt.Sprintf("%s/Property?%s", c.baseURL, query.Encode())
	total := 0
	page := 0

	for requestURL != "" {
		env, err := c.fetchPage(ctx, requestURL)
		if err != nil {
			return total, err
		}
		page++

		total += len(env.Value)
		c.logger.WithFields(logrus.Fields{
			"page":  page,
			"count": len(env.Value),
			"total": total,
		}).Debug("MLSApi: fetched listing page")

		if len(env.Value) > 0 {
			stop, err := onBatch(env.Value, total)
			if err != nil {
				return total, err
			}
			if stop {
				return total, nil
			}
		}

		if sessionLimit > 0 && total >= sessionLimit {
			return total, nil
		}

		requestURL = env.NextLink
	}

	return total, nil
}

// FetchRelated fetches a related resource (Member, Office, Media,
// OpenHouse) for a set of keys. Keys are deduplicated and chunked to
// respect request-size limits; one OR-composed request is issued per
// chunk and the results are concatenated.
func (c *Client) FetchRelated(ctx context.Context, resource, keyField string, keys []string) ([]RawRecord, error) {
	unique := dedupe(keys)
	if len(unique) == 0 {
		return nil, nil
	}

	var records []RawRecord
	for start := 0; start < len(unique); start += c.chunkSize {
		end := start + c.chunkSize
		if end > len(unique) {
			end = len(unique)
		}

		query := url.Values{}
		query.Set("$filter", BuildKeyFilter(keyField, unique[start:end]))
		query.Set("$top", fmt.Sprintf("%d", c.pageSize))

		requestURL := fmt.Sprintf("%s/%s?%s", c.baseURL, resource, query.Encode())
		for requestURL != "" {
			env, err := c.fetchPage(ctx, requestURL)
			if err != nil {
				return nil, err
			}
			records = append(records, env.Value...)
			requestURL = env.NextLink
		}
	}

	c.logger.WithFields(logrus.Fields{
		"resource": resource,
		"keys":     len(unique),
		"records":  len(records),
	}).Debug("MLSApi: fetched related resource")

	return records, nil
}

// fetchPage performs one rate-limited GET with retry/backoff and
// decodes the response envelope
func (c *Client) fetchPage(ctx context.Context, requestURL string) (*envelope, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: delay * 2^(attempt-1), max 60s
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * c.retryDelay
			if backoff > 60*time.Second {
				backoff = 60 * time.Second
			}
			c.logger.WithFields(logrus.Fields{
				"attempt": attempt,
				"max":     c.maxRetries,
				"backoff": backoff.String(),
			}).Warn("MLSApi: retrying request")
			if err := sleepCtx(ctx, backoff); err != nil {
				return nil, err
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		env, err := c.doRequest(ctx, requestURL)
		if err == nil {
			return env, nil
		}
		if _, ok := err.(*TransientError); !ok {
			return nil, err
		}
		lastErr = err
	}

	return nil, &PermanentError{Err: fmt.Errorf("retries exhausted after %d attempts: %w", c.maxRetries, lastErr)}
}

// doRequest performs a single HTTP request, classifying failures as
// transient or permanent
func (c *Client) doRequest(ctx context.Context, requestURL string) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &PermanentError{Err: fmt.Errorf("failed to build request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransientError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		if isTransientStatus(resp.StatusCode) {
			return nil, &TransientError{StatusCode: resp.StatusCode, Err: fmt.Errorf("upstream returned %d", resp.StatusCode)}
		}
		return nil, &PermanentError{StatusCode: resp.StatusCode, Err: fmt.Errorf("upstream returned %d", resp.StatusCode)}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &PermanentError{Err: fmt.Errorf("malformed response body: %w", err)}
	}
	return &env, nil
}

// dedupe removes duplicate and empty keys, preserving order
func dedupe(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	var out []string
	for _, key := range keys {
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}

// sleepCtx sleeps for d or returns early when the context is canceled
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
