package domain

import "math"

const (
	MinVisibleTableID = 1
	MaxVisibleTableID = 18
)

// Summary aggregates the visible tables of a snapshot.
type Summary struct {
	Tables   int         `json:"tables"`
	Occupied int         `json:"occupied"`
	Capacity int         `json:"capacity"`
	Percent  int         `json:"percent"`
	Color    StatusColor `json:"color"`
}

// IsVisible reports whether a table id belongs to the seating plan.
func IsVisible(id int) bool {
	return id >= MinVisibleTableID && id <= MaxVisibleTableID
}

// VisibleTables filters the snapshot down to tables shown on the plan.
func VisibleTables(status *DetailedStatus) []TableSnapshot {
	if status == nil {
		return nil
	}
	visible := make([]TableSnapshot, 0, len(status.Tables))
	for _, table := range status.Tables {
		if IsVisible(table.ID) {
			visible = append(visible, table)
		}
	}
	return visible
}

// Summarize totals the visible tables. Values are summed verbatim, so a table
// reporting more occupants than seats pushes the percentage above 100.
func Summarize(status *DetailedStatus) Summary {
	visible := VisibleTables(status)
	summary := Summary{Tables: len(visible)}
	for _, table := range visible {
		summary.Occupied += table.Occupied
		summary.Capacity += table.Capacity
	}
	if summary.Capacity > 0 {
		summary.Percent = RoundHalfUp(float64(summary.Occupied) / float64(summary.Capacity) * 100)
	}
	summary.Color = ClassifyPercent(float64(summary.Percent))
	return summary
}

// BarWidth is the drawable width of the overall bar in percent.
func (s Summary) BarWidth() int {
	switch {
	case s.Percent < 0:
		return 0
	case s.Percent > 100:
		return 100
	default:
		return s.Percent
	}
}

// RoundHalfUp rounds .5 towards positive infinity.
func RoundHalfUp(value float64) int {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return int(math.Floor(value + 0.5))
}
