package backend

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"
)

// RESTClient issues requests against the resolved backend base URL.
type RESTClient struct {
	baseURL string
	client  *http.Client
}

func NewRESTClient(baseURL string, timeout time.Duration, client *http.Client) *RESTClient {
	if client == nil {
		client = &http.Client{Timeout: TimeoutOrDefault(timeout)}
	} else if timeout > 0 {
		client.Timeout = timeout
	}
	return &RESTClient{baseURL: ResolveBaseURL(baseURL), client: client}
}

// BaseURL returns the normalized http(s) base.
func (c *RESTClient) BaseURL() string {
	return c.baseURL
}

func (c *RESTClient) NewRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	url := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *RESTClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}

// TimeoutOrDefault falls back to 10s for non-positive timeouts.
func TimeoutOrDefault(value time.Duration) time.Duration {
	if value <= 0 {
		return 10 * time.Second
	}
	return value
}
