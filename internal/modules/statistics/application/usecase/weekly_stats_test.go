package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"occupancyDash/internal/modules/statistics/application/port"
	"occupancyDash/internal/modules/statistics/domain"
)

type fakeWeeklyFetcher struct {
	stats *domain.WeeklyStats
	err   error
	calls int
}

func (f *fakeWeeklyFetcher) FetchWeekly(context.Context) (*domain.WeeklyStats, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.stats.Clone(), nil
}

type memoryCache struct {
	stats  *domain.WeeklyStats
	getErr error
	sets   int
}

func (m *memoryCache) Get(context.Context) (*domain.WeeklyStats, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	if m.stats == nil {
		return nil, false, nil
	}
	return m.stats.Clone(), true, nil
}

func (m *memoryCache) Set(_ context.Context, stats *domain.WeeklyStats) error {
	m.sets++
	m.stats = stats.Clone()
	return nil
}

func busyTuesday() *domain.WeeklyStats {
	stats := domain.DefaultWeeklyStats()
	stats.Occupancy[domain.Tuesday] = []float64{0, 27, 0, 0, 0, 0, 0, 0}
	return stats
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	boom := errors.New("boom")
	service := NewWeeklyStatsService(&fakeWeeklyFetcher{err: boom}, nil)

	result := service.Load(context.Background())
	assert.Equal(t, SourceDefault, result.Source)
	assert.ErrorIs(t, result.Err, boom)
	assert.Equal(t, domain.DefaultHours(), result.Stats.Hours)
}

func TestLoadFetchesEveryTimeWithoutCache(t *testing.T) {
	fetcher := &fakeWeeklyFetcher{stats: busyTuesday()}
	service := NewWeeklyStatsService(fetcher, nil)

	service.Load(context.Background())
	result := service.Load(context.Background())
	assert.Equal(t, 2, fetcher.calls)
	assert.Equal(t, SourceUpstream, result.Source)
}

func TestLoadUsesCache(t *testing.T) {
	fetcher := &fakeWeeklyFetcher{stats: busyTuesday()}
	cache := &memoryCache{}
	service := NewWeeklyStatsService(fetcher, cache)

	first := service.Load(context.Background())
	second := service.Load(context.Background())

	assert.Equal(t, SourceUpstream, first.Source)
	assert.Equal(t, SourceCache, second.Source)
	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, 1, cache.sets)
}

func TestLoadIgnoresCacheErrors(t *testing.T) {
	fetcher := &fakeWeeklyFetcher{stats: busyTuesday()}
	service := NewWeeklyStatsService(fetcher, &memoryCache{getErr: errors.New("redis down")})

	result := service.Load(context.Background())
	assert.Equal(t, SourceUpstream, result.Source)
}

func TestDaySummarizesSelectedDay(t *testing.T) {
	service := NewWeeklyStatsService(&fakeWeeklyFetcher{stats: busyTuesday()}, nil)

	view, err := service.Day(context.Background(), "Вт")
	require.NoError(t, err)
	assert.Equal(t, domain.Tuesday, view.Summary.Day)
	assert.Equal(t, "10:00", view.Summary.PeakLabel())
	assert.Len(t, view.Days, 6)

	view, err = service.Day(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, domain.Monday, view.Summary.Day)
}

func TestDayRejectsUnknownDay(t *testing.T) {
	service := NewWeeklyStatsService(&fakeWeeklyFetcher{stats: busyTuesday()}, nil)

	_, err := service.Day(context.Background(), "Вс")
	require.ErrorIs(t, err, port.ErrUnknownDay)
}
