package provider

import (
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 10 * time.Second
	contentType    = "application/json"
	userAgent      = "devlink/jobscout (jobs@devlink.app)"
)

// HTTPClient is a bearer-authorized http.Client with a bounded timeout and a
// per-provider rate limit.
type HTTPClient struct {
	inner   *http.Client
	limiter *rate.Limiter
	token   string
}

// NewHTTPClient builds a client allowing requestsPerSecond sustained calls
// with a burst of one.
func NewHTTPClient(token string, requestsPerSecond float64) *HTTPClient {
	return &HTTPClient{
		inner: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		token:   token,
	}
}

// Do waits for the rate limiter, sets the standard headers and executes the
// request.
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", contentType)

	return c.inner.Do(req)
}
