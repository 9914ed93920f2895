package infrastructure

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"occupancyDash/internal/modules/statistics/application/port"
	"occupancyDash/internal/modules/statistics/domain"
)

func TestWeeklyHTTPClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/stats/weekly", r.URL.Path)
		assert.Equal(t, "30", r.URL.Query().Get("days_back"))
		assert.Equal(t, "0", r.URL.Query().Get("start_hour"))
		assert.Equal(t, "23", r.URL.Query().Get("end_hour"))
		_, _ = w.Write([]byte(`{"hours":["12","13"],"occupancy":{"Пт":[5,7]},"total_capacity":40}`))
	}))
	defer srv.Close()

	stats, err := NewWeeklyHTTPClient(srv.URL, time.Second, nil).FetchWeekly(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 7}, stats.Series(domain.Friday))
	assert.Equal(t, []float64{0, 0}, stats.Series(domain.Monday))
	assert.Equal(t, float64(40), stats.TotalCapacity)
}

func TestWeeklyHTTPClientAcceptsAny2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNonAuthoritativeInfo)
		_, _ = w.Write([]byte(`{"occupancy":{"Ср":[3]}}`))
	}))
	defer srv.Close()

	stats, err := NewWeeklyHTTPClient(srv.URL, time.Second, nil).FetchWeekly(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, stats.Series(domain.Wednesday))
}

func TestWeeklyHTTPClientErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"not found", http.StatusNotFound, "", port.ErrStatsNotFound},
		{"server error", http.StatusInternalServerError, "boom", port.ErrStatsUnavailable},
		{"not modified", http.StatusNotModified, "", port.ErrStatsUnavailable},
		{"malformed", http.StatusOK, "[]", port.ErrStatsMalformed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewWeeklyHTTPClient(srv.URL, time.Second, nil).FetchWeekly(context.Background())
			require.ErrorIs(t, err, tc.want)
		})
	}
}
