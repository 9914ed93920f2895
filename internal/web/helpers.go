package web

import (
	"bytes"
	"context"
	"strconv"

	"github.com/a-h/templ"

	"occupancyDash/internal/modules/occupancy/domain"
)

const topicSnapshot = domain.TopicOccupancySnapshot

func itoa(value int) string {
	return strconv.Itoa(value)
}

func ftoa(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func esc(value string) string {
	return templ.EscapeString(value)
}

func colorClass(color domain.StatusColor) string {
	switch color {
	case domain.StatusColorGreen:
		return "tone-green"
	case domain.StatusColorYellow:
		return "tone-yellow"
	case domain.StatusColorRed:
		return "tone-red"
	default:
		return "tone-none"
	}
}

// RenderString renders c into a string, used for websocket fragments.
func RenderString(ctx context.Context, c templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
