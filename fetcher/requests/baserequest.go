package requests

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fetcher is anything able to GET a url and return the body.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Returned when the CDN answers with a non 2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.StatusCode, e.URL)
}

// Client does the unauthenticated requests to the CDN.
type Client struct {
	http    *http.Client
	limiter *RateLimiter
}

// Create a client with the given timeout and request rate.
// A non positive rate disables the limiter.
func NewClient(timeout time.Duration, requestsPerSecond float64) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		limiter: NewRateLimiter(requestsPerSecond),
	}
}

// Create a simple GET request and return the body.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("couldn't read the body: %w", err)
	}
	return body, nil
}

// GetJSON requests the url and decodes the body into out.
func GetJSON(ctx context.Context, f Fetcher, url string, out any) error {
	body, err := f.Get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("couldn't convert the body to json: %w", err)
	}
	return nil
}
