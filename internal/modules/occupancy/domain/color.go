package domain

import "strings"

// StatusColor is the traffic-light classification shared by tables, the
// overall bar and the statistics chart.
type StatusColor string

const (
	StatusColorNone   StatusColor = ""
	StatusColorGreen  StatusColor = "green"
	StatusColorYellow StatusColor = "yellow"
	StatusColorRed    StatusColor = "red"
)

// ParseStatusColor accepts the backend's colour names; anything else is ignored.
func ParseStatusColor(raw string) StatusColor {
	switch StatusColor(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusColorGreen:
		return StatusColorGreen
	case StatusColorYellow:
		return StatusColorYellow
	case StatusColorRed:
		return StatusColorRed
	default:
		return StatusColorNone
	}
}

// ClassifyRatio colours a single table by its occupied/capacity ratio.
// A zero capacity is treated as full.
func ClassifyRatio(occupied, capacity int) StatusColor {
	if capacity == 0 {
		return StatusColorRed
	}
	ratio := float64(occupied) / float64(capacity)
	switch {
	case ratio == 0, ratio < 0.5:
		return StatusColorGreen
	case ratio < 1:
		return StatusColorYellow
	default:
		return StatusColorRed
	}
}

// TableColor prefers the server-provided colour over the ratio.
func TableColor(table TableSnapshot) StatusColor {
	if table.StatusColor != StatusColorNone {
		return table.StatusColor
	}
	return ClassifyRatio(table.Occupied, table.Capacity)
}

// ClassifyPercent colours an aggregate load percentage.
func ClassifyPercent(percent float64) StatusColor {
	switch {
	case percent < 33:
		return StatusColorGreen
	case percent < 66:
		return StatusColorYellow
	default:
		return StatusColorRed
	}
}
