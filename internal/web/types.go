package web

import (
	"occupancyDash/internal/modules/occupancy/domain"
	statsdomain "occupancyDash/internal/modules/statistics/domain"
)

// OccupancyView is everything the occupancy panel draws.
type OccupancyView struct {
	Loaded     bool              `json:"loaded"`
	LastUpdate string            `json:"lastUpdate"`
	Summary    domain.Summary    `json:"summary"`
	Seats      []domain.SeatCell `json:"seats"`
}

// NewOccupancyView derives the panel model; a nil status yields the loading skeleton.
func NewOccupancyView(status *domain.DetailedStatus, layout domain.Layout) OccupancyView {
	view := OccupancyView{Seats: domain.BuildSeating(layout, status)}
	if status == nil {
		return view
	}
	view.Loaded = true
	view.LastUpdate = domain.FormatLastUpdate(status.LastUpdate)
	view.Summary = domain.Summarize(status)
	return view
}

// StatisticsView is the sheet model: one summary per weekday, one selected.
type StatisticsView struct {
	Selected statsdomain.DayOfWeek
	Days     []statsdomain.DaySummary
}

// NewStatisticsView summarizes every weekday of stats.
func NewStatisticsView(stats *statsdomain.WeeklyStats, selected statsdomain.DayOfWeek) StatisticsView {
	view := StatisticsView{Selected: selected, Days: make([]statsdomain.DaySummary, 0, len(statsdomain.Weekdays))}
	for _, day := range statsdomain.Weekdays {
		view.Days = append(view.Days, statsdomain.SummarizeDay(stats, day))
	}
	return view
}
