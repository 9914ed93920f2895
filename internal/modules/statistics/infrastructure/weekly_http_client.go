package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"occupancyDash/internal/modules/statistics/application/port"
	"occupancyDash/internal/modules/statistics/domain"
	"occupancyDash/internal/shared/backend"
)

const maxWeeklyBody = 1 << 20

// WeeklyQuery is the window requested from /api/stats/weekly.
type WeeklyQuery struct {
	DaysBack  int
	StartHour int
	EndHour   int
}

// DefaultWeeklyQuery asks for the last 30 days over the whole day.
func DefaultWeeklyQuery() WeeklyQuery {
	return WeeklyQuery{DaysBack: 30, StartHour: 0, EndHour: 23}
}

func (q WeeklyQuery) values() url.Values {
	values := url.Values{}
	values.Set("days_back", fmt.Sprint(q.DaysBack))
	values.Set("start_hour", fmt.Sprint(q.StartHour))
	values.Set("end_hour", fmt.Sprint(q.EndHour))
	return values
}

// WeeklyHTTPClient implements port.WeeklyFetcher.
type WeeklyHTTPClient struct {
	rest  *backend.RESTClient
	query WeeklyQuery
}

func NewWeeklyHTTPClient(baseURL string, timeout time.Duration, client *http.Client) *WeeklyHTTPClient {
	return &WeeklyHTTPClient{rest: backend.NewRESTClient(baseURL, timeout, client), query: DefaultWeeklyQuery()}
}

func (c *WeeklyHTTPClient) FetchWeekly(ctx context.Context) (*domain.WeeklyStats, error) {
	endpoint := backend.WeeklyStatsPath + "?" + c.query.values().Encode()
	req, err := c.rest.NewRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build weekly stats request: %w", err)
	}

	res, err := c.rest.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weekly stats request failed: %w", err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return nil, port.ErrStatsNotFound
	case res.StatusCode/100 != 2:
		body, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		slog.Debug("weekly stats unexpected status", slog.Int("status", res.StatusCode), slog.String("body", strings.TrimSpace(string(body))))
		return nil, fmt.Errorf("%w: %d", port.ErrStatsUnavailable, res.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxWeeklyBody))
	if err != nil {
		return nil, fmt.Errorf("read weekly stats body: %w", err)
	}
	stats, err := domain.DecodeWeeklyStats(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrStatsMalformed, err)
	}
	return stats, nil
}

var _ port.WeeklyFetcher = (*WeeklyHTTPClient)(nil)
