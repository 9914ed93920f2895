package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"occupancyDash/internal/modules/occupancy/application/port"
	"occupancyDash/internal/modules/occupancy/domain"
	"occupancyDash/internal/shared/backend"
)

const maxStatusBody = 1 << 20

// StatusHTTPClient implements port.StatusFetcher against /api/status/detailed.
type StatusHTTPClient struct {
	rest *backend.RESTClient
}

func NewStatusHTTPClient(baseURL string, timeout time.Duration, client *http.Client) *StatusHTTPClient {
	return &StatusHTTPClient{rest: backend.NewRESTClient(baseURL, timeout, client)}
}

// FetchDetailed reads one detailed status snapshot.
func (c *StatusHTTPClient) FetchDetailed(ctx context.Context) (*domain.DetailedStatus, error) {
	req, err := c.rest.NewRequest(ctx, http.MethodGet, backend.StatusPath, nil)
	if err != nil {
		return nil, fmt.Errorf("build status request: %w", err)
	}

	res, err := c.rest.Do(req)
	if err != nil {
		return nil, fmt.Errorf("status request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		slog.Debug("status fetch unexpected status", slog.Int("status", res.StatusCode), slog.String("url", req.URL.String()), slog.String("body", strings.TrimSpace(string(body))))
		return nil, fmt.Errorf("%w: %d", port.ErrStatusUnavailable, res.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxStatusBody))
	if err != nil {
		return nil, fmt.Errorf("read status body: %w", err)
	}
	status, err := domain.DecodeDetailedStatus(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrStatusMalformed, err)
	}
	return status, nil
}

var _ port.StatusFetcher = (*StatusHTTPClient)(nil)
