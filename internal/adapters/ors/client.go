package ors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.openrouteservice.org"

// Client is the shared OpenRouteService HTTP client. It owns
// authentication, the per-request timeout and outbound rate limiting for
// all ORS endpoints.
//
// The client is safe for concurrent use.
type Client struct {
	session *http.Client
	apiKey  string
	baseURL string
	profile string
	limiter *rate.Limiter
}

func NewClient(apiKey, baseURL string, timeout time.Duration, requestsPerSec float64) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if requestsPerSec <= 0 {
		requestsPerSec = 2
	}

	return &Client{
		session: &http.Client{Timeout: timeout},
		apiKey:  apiKey,
		baseURL: baseURL,
		profile: "driving-car",
		limiter: rate.NewLimiter(rate.Limit(requestsPerSec), 1),
	}, nil
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

func (c *Client) newRequest(
	ctx context.Context,
	method string,
	url string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// send issues exactly one attempt per call, after waiting on the shared
// rate limiter. The transport never retries: provider failure is masked
// downstream by the great-circle fallback, and the only retry in the whole
// pipeline is the estimator's single snap-radius escalation. Retrying here
// would multiply outbound traffic and delay the fallback answer.
func (c *Client) send(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := makeReq()
	if err != nil {
		return nil, fmt.Errorf("make request: %w", err)
	}

	return c.do(req)
}
