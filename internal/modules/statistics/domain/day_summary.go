package domain

import (
	occupancy "occupancyDash/internal/modules/occupancy/domain"
)

// NoPeak is shown when a day has no hourly values.
const NoPeak = "—"

// Bar is one hourly column of the day chart.
type Bar struct {
	Hour    string                `json:"hour"`
	Value   float64               `json:"value"`
	Height  float64               `json:"height"`
	Percent int                   `json:"percent"`
	Color   occupancy.StatusColor `json:"color"`
}

// DaySummary is the view model of one selected weekday.
type DaySummary struct {
	Day            DayOfWeek `json:"day"`
	AveragePercent int       `json:"averagePercent"`
	PeakHour       string    `json:"peakHour"`
	PeakValue      float64   `json:"peakValue"`
	Bars           []Bar     `json:"bars"`
}

// PeakLabel renders the peak hour as "HH:00".
func (d DaySummary) PeakLabel() string {
	if d.PeakHour == "" {
		return NoPeak
	}
	return d.PeakHour + ":00"
}

// SummarizeDay computes the average load, the first peak hour and the bars of day.
// Bar heights are scaled against the maximum over the whole week.
func SummarizeDay(stats *WeeklyStats, day DayOfWeek) DaySummary {
	summary := DaySummary{Day: day}
	values := stats.Series(day)
	if len(values) == 0 {
		return summary
	}

	capacity := 0.0
	if stats != nil {
		capacity = stats.TotalCapacity
	}
	scale := stats.MaxValue()

	sum := 0.0
	peakIndex := 0
	summary.Bars = make([]Bar, 0, len(values))
	for i, value := range values {
		sum += value
		if value > values[peakIndex] {
			peakIndex = i
		}
		summary.Bars = append(summary.Bars, Bar{
			Hour:    stats.HourAt(i),
			Value:   value,
			Height:  value / scale * 100,
			Percent: occupancy.RoundHalfUp(loadPercent(value, capacity)),
			Color:   occupancy.ClassifyPercent(loadPercent(value, capacity)),
		})
	}

	summary.AveragePercent = occupancy.RoundHalfUp(loadPercent(sum/float64(len(values)), capacity))
	summary.PeakHour = stats.HourAt(peakIndex)
	summary.PeakValue = values[peakIndex]
	return summary
}

func loadPercent(value, capacity float64) float64 {
	if capacity <= 0 {
		return 0
	}
	return value / capacity * 100
}
