package domain

import (
	"strings"

	"occupancyDash/internal/shared/normalization"
)

// DayOfWeek is the short Russian weekday label used as the occupancy key.
type DayOfWeek string

const (
	Monday    DayOfWeek = "Пн"
	Tuesday   DayOfWeek = "Вт"
	Wednesday DayOfWeek = "Ср"
	Thursday  DayOfWeek = "Чт"
	Friday    DayOfWeek = "Пт"
	Saturday  DayOfWeek = "Сб"
)

// Weekdays is the fixed display order of the statistics sheet.
var Weekdays = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

var allowedDays = map[string]DayOfWeek{
	"пн":        Monday,
	"вт":        Tuesday,
	"ср":        Wednesday,
	"чт":        Thursday,
	"пт":        Friday,
	"сб":        Saturday,
	"monday":    Monday,
	"tuesday":   Tuesday,
	"wednesday": Wednesday,
	"thursday":  Thursday,
	"friday":    Friday,
	"saturday":  Saturday,
	"mon":       Monday,
	"tue":       Tuesday,
	"wed":       Wednesday,
	"thu":       Thursday,
	"fri":       Friday,
	"sat":       Saturday,
}

// ParseDay accepts the Russian short labels and english names in any case.
func ParseDay(raw string) (DayOfWeek, bool) {
	day, ok := allowedDays[strings.ToLower(strings.TrimSpace(raw))]
	return day, ok
}

// DayOrDefault selects Monday for empty input. ok is false only when raw is
// non-empty and not a recognised day.
func DayOrDefault(raw string) (day DayOfWeek, ok bool) {
	if strings.TrimSpace(raw) == "" {
		return Monday, true
	}
	if day, ok = ParseDay(raw); ok {
		return day, true
	}
	return Monday, false
}

// NormalizeDays converts an arbitrary slice payload into known days, dropping the rest.
func NormalizeDays(value any) []DayOfWeek {
	items := normalization.AsInterfaceSlice(value)
	if len(items) == 0 {
		return nil
	}

	normalized := make([]DayOfWeek, 0, len(items))
	for _, item := range items {
		if day, ok := ParseDay(normalization.AsString(item)); ok {
			normalized = append(normalized, day)
		}
	}
	return normalized
}
