package smoke

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPClient wraps http.Client with a timeout.
type HTTPClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// response is a fully read HTTP response.
type response struct {
	status      int
	contentType string
	allow       string
	body        string
}

func (c *HTTPClient) do(ctx context.Context, method, rawURL string, body io.Reader, contentType string) (response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return response{}, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, fmt.Errorf("failed to read response body: %w", err)
	}
	return response{
		status:      resp.StatusCode,
		contentType: resp.Header.Get("Content-Type"),
		allow:       resp.Header.Get("Allow"),
		body:        string(data),
	}, nil
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, rawURL string) (response, error) {
	return c.do(ctx, http.MethodGet, rawURL, http.NoBody, "")
}

// PostForm performs a POST with url-encoded fields.
func (c *HTTPClient) PostForm(ctx context.Context, rawURL string, values url.Values) (response, error) {
	return c.do(ctx, http.MethodPost, rawURL, strings.NewReader(values.Encode()), "application/x-www-form-urlencoded")
}
