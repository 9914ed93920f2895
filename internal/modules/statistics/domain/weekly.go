package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"occupancyDash/internal/shared/normalization"
)

const (
	DefaultTotalCapacity = 54
	DefaultHourCount     = 8
)

// ErrMalformedWeekly is returned when the payload is not a JSON object.
var ErrMalformedWeekly = errors.New("malformed weekly stats payload")

// DefaultHours is the hour axis used until the backend supplies its own.
func DefaultHours() []string {
	return []string{"09", "10", "11", "12", "13", "14", "15", "16"}
}

// WeeklyStats is the hourly occupancy aggregate per weekday.
// Occupancy series are positionally aligned with Hours.
type WeeklyStats struct {
	Days          []DayOfWeek             `json:"days"`
	Hours         []string                `json:"hours"`
	Occupancy     map[DayOfWeek][]float64 `json:"occupancy"`
	TotalCapacity float64                 `json:"total_capacity"`
}

// DefaultWeeklyStats returns the all-zero week shown before or instead of backend data.
func DefaultWeeklyStats() *WeeklyStats {
	return &WeeklyStats{
		Days:          append([]DayOfWeek(nil), Weekdays...),
		Hours:         DefaultHours(),
		Occupancy:     emptyOccupancy(DefaultHourCount),
		TotalCapacity: DefaultTotalCapacity,
	}
}

func emptyOccupancy(hours int) map[DayOfWeek][]float64 {
	occupancy := make(map[DayOfWeek][]float64, len(Weekdays))
	for _, day := range Weekdays {
		occupancy[day] = make([]float64, hours)
	}
	return occupancy
}

// DecodeWeeklyStats parses a backend response body.
func DecodeWeeklyStats(raw []byte) (*WeeklyStats, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var payload any
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedWeekly, err)
	}
	return BuildWeeklyStats(payload)
}

// BuildWeeklyStats merges a decoded payload over the defaults.
// Days and hours replace the defaults only when non-empty, total_capacity
// only when finite. Occupancy is laid over zero series for every weekday;
// keys outside the week are kept so they still count towards MaxValue.
func BuildWeeklyStats(payload any) (*WeeklyStats, error) {
	root, ok := payload.(map[string]any)
	if !ok {
		return nil, ErrMalformedWeekly
	}

	stats := DefaultWeeklyStats()
	if days := NormalizeDays(root["days"]); len(days) > 0 {
		stats.Days = days
	}

	rawHours := normalization.AsInterfaceSlice(root["hours"])
	if len(rawHours) > 0 {
		hours := make([]string, 0, len(rawHours))
		for _, item := range rawHours {
			hours = append(hours, hourLabel(item))
		}
		stats.Hours = hours
	}

	if capacity, ok := normalization.AsFloat64OK(root["total_capacity"]); ok {
		stats.TotalCapacity = capacity
	}

	if rawOccupancy, ok := root["occupancy"].(map[string]any); ok {
		hourCount := len(rawHours)
		if hourCount == 0 {
			hourCount = DefaultHourCount
		}
		stats.Occupancy = emptyOccupancy(hourCount)
		for key, value := range rawOccupancy {
			day, known := ParseDay(key)
			if !known {
				day = DayOfWeek(key)
			}
			stats.Occupancy[day] = series(value)
		}
	}

	return stats, nil
}

func hourLabel(value any) string {
	if number, ok := normalization.AsFloat64OK(value); ok {
		if _, isString := value.(string); !isString {
			return fmt.Sprintf("%02d", int(number))
		}
	}
	return normalization.AsString(value)
}

func series(value any) []float64 {
	items := normalization.AsInterfaceSlice(value)
	values := make([]float64, 0, len(items))
	for _, item := range items {
		values = append(values, normalization.AsFloat64(item))
	}
	return values
}

// Series returns the hourly values of a day, or nil when absent.
func (w *WeeklyStats) Series(day DayOfWeek) []float64 {
	if w == nil {
		return nil
	}
	return w.Occupancy[day]
}

// HourAt returns the hour label at index i, or "" past the axis.
func (w *WeeklyStats) HourAt(i int) string {
	if w == nil || i < 0 || i >= len(w.Hours) {
		return ""
	}
	return w.Hours[i]
}

// MaxValue is the chart scale: the largest value across all days, floored at 1.
func (w *WeeklyStats) MaxValue() float64 {
	peak := 0.0
	if w != nil {
		for _, values := range w.Occupancy {
			for _, value := range values {
				if value > peak {
					peak = value
				}
			}
		}
	}
	if peak <= 0 || math.IsNaN(peak) {
		return 1
	}
	return peak
}

// Clone returns a deep copy safe to hand to other goroutines.
func (w *WeeklyStats) Clone() *WeeklyStats {
	if w == nil {
		return nil
	}
	clone := &WeeklyStats{
		Days:          append([]DayOfWeek(nil), w.Days...),
		Hours:         append([]string(nil), w.Hours...),
		Occupancy:     make(map[DayOfWeek][]float64, len(w.Occupancy)),
		TotalCapacity: w.TotalCapacity,
	}
	for day, values := range w.Occupancy {
		clone.Occupancy[day] = append([]float64(nil), values...)
	}
	return clone
}
