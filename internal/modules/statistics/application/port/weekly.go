package port

import (
	"context"
	"errors"

	"occupancyDash/internal/modules/statistics/domain"
)

var (
	// ErrStatsUnavailable indicates the backend answered with a non-OK status.
	ErrStatsUnavailable = errors.New("weekly stats unavailable")
	// ErrStatsNotFound indicates the backend has no weekly endpoint.
	ErrStatsNotFound = errors.New("weekly stats not found")
	// ErrStatsMalformed indicates the body was not a weekly stats object.
	ErrStatsMalformed = errors.New("weekly stats payload malformed")
	// ErrUnknownDay indicates a day query outside the weekday list.
	ErrUnknownDay = errors.New("unknown day of week")
)

// WeeklyFetcher reads the hourly aggregate from the backend.
type WeeklyFetcher interface {
	FetchWeekly(ctx context.Context) (*domain.WeeklyStats, error)
}

// WeeklyCache stores the last decoded aggregate. A miss is (nil, false, nil).
type WeeklyCache interface {
	Get(ctx context.Context) (*domain.WeeklyStats, bool, error)
	Set(ctx context.Context, stats *domain.WeeklyStats) error
}
