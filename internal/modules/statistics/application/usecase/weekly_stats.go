package usecase

import (
	"context"
	"log/slog"

	"occupancyDash/internal/modules/statistics/application/port"
	"occupancyDash/internal/modules/statistics/domain"
	"occupancyDash/internal/platform/metrics"
)

// Source tells where a weekly aggregate came from.
type Source string

const (
	SourceUpstream Source = "upstream"
	SourceCache    Source = "cache"
	SourceDefault  Source = "default"
)

// WeeklyResult is a loaded aggregate plus its origin.
type WeeklyResult struct {
	Stats  *domain.WeeklyStats
	Source Source
	// Err is the upstream failure that forced a fallback, if any.
	Err error
}

// WeeklyStatsService loads the weekly aggregate on demand, independent of
// the status synchronizer. It never fails: upstream errors fall back to the
// built-in defaults.
type WeeklyStatsService struct {
	fetcher port.WeeklyFetcher
	cache   port.WeeklyCache
}

// NewWeeklyStatsService builds the service; cache may be nil.
func NewWeeklyStatsService(fetcher port.WeeklyFetcher, cache port.WeeklyCache) *WeeklyStatsService {
	return &WeeklyStatsService{fetcher: fetcher, cache: cache}
}

func (s *WeeklyStatsService) Load(ctx context.Context) WeeklyResult {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			slog.Warn("weekly stats cache read failed", slog.Any("error", err))
			metrics.IncStatsFetch(string(SourceCache), "error")
		case ok && cached != nil:
			metrics.IncStatsFetch(string(SourceCache), "hit")
			return WeeklyResult{Stats: cached, Source: SourceCache}
		default:
			metrics.IncStatsFetch(string(SourceCache), "miss")
		}
	}

	stats, err := s.fetcher.FetchWeekly(ctx)
	if err != nil || stats == nil {
		slog.Debug("weekly stats fetch failed, using defaults", slog.Any("error", err))
		metrics.IncStatsFetch(string(SourceUpstream), "error")
		return WeeklyResult{Stats: domain.DefaultWeeklyStats(), Source: SourceDefault, Err: err}
	}
	metrics.IncStatsFetch(string(SourceUpstream), "ok")

	if s.cache != nil {
		if err := s.cache.Set(ctx, stats); err != nil {
			slog.Warn("weekly stats cache write failed", slog.Any("error", err))
		}
	}
	return WeeklyResult{Stats: stats, Source: SourceUpstream}
}

// DayView is the statistics sheet model for one selected day.
type DayView struct {
	Days    []domain.DayOfWeek `json:"days"`
	Hours   []string           `json:"hours"`
	Summary domain.DaySummary  `json:"summary"`
	Source  Source             `json:"source"`
}

// Day loads the aggregate and summarizes rawDay. An empty rawDay selects
// Monday; an unrecognised one returns port.ErrUnknownDay.
func (s *WeeklyStatsService) Day(ctx context.Context, rawDay string) (DayView, error) {
	day, ok := domain.DayOrDefault(rawDay)
	if !ok {
		return DayView{}, port.ErrUnknownDay
	}

	result := s.Load(ctx)
	return DayView{
		Days:    append([]domain.DayOfWeek(nil), domain.Weekdays...),
		Hours:   append([]string(nil), result.Stats.Hours...),
		Summary: domain.SummarizeDay(result.Stats, day),
		Source:  result.Source,
	}, nil
}
