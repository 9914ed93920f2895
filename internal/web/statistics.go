package web

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	statsdomain "occupancyDash/internal/modules/statistics/domain"
)

const (
	StatisticsSheetID = "statistics-sheet"
	statisticsBodyID  = "statistics-body"
)

// StatisticsPanel renders the day selector and one chart per weekday. Only
// the selected day is visible; switching days happens client side so the
// weekly aggregate is requested once per sheet open.
func StatisticsPanel(view StatisticsView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<div class="statistics" data-selected="` + esc(string(view.Selected)) + `">`)

		b.WriteString(`<div class="day-picker" role="tablist">`)
		for _, day := range view.Days {
			variant := ButtonOutline
			selected := "false"
			if day.Day == view.Selected {
				variant = ButtonDefault
				selected = "true"
			}
			if err := Button(ButtonProps{
				Variant: variant,
				Label:   string(day.Day),
				Class:   "day-button",
				Attrs:   `role="tab" data-day="` + esc(string(day.Day)) + `" aria-selected="` + selected + `"`,
			}).Render(ctx, &b); err != nil {
				return err
			}
		}
		b.WriteString(`</div>`)

		for _, day := range view.Days {
			writeDayPanel(&b, day, day.Day == view.Selected)
		}

		b.WriteString(`<div class="chart-legend">`)
		b.WriteString(`<span><i class="dot tone-green"></i>&lt;33%</span>`)
		b.WriteString(`<span><i class="dot tone-yellow"></i>33-66%</span>`)
		b.WriteString(`<span><i class="dot tone-red"></i>&gt;66%</span>`)
		b.WriteString(`</div></div>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeDayPanel(b *strings.Builder, day statsdomain.DaySummary, visible bool) {
	b.WriteString(`<div class="day-panel" data-day-panel="` + esc(string(day.Day)) + `"`)
	if !visible {
		b.WriteString(` hidden`)
	}
	b.WriteString(`>`)

	b.WriteString(`<div class="day-summary">`)
	b.WriteString(`<div class="stat"><div class="stat-caption">Средняя загрузка</div><div class="stat-value">` + itoa(day.AveragePercent) + `%</div></div>`)
	b.WriteString(`<div class="stat"><div class="stat-caption">Пик загрузки</div><div class="stat-value">` + esc(day.PeakLabel()) + `</div></div>`)
	b.WriteString(`</div>`)

	b.WriteString(`<div class="chart">`)
	for _, bar := range day.Bars {
		minHeight := "0"
		if bar.Height > 0 {
			minHeight = "12px"
		}
		b.WriteString(`<div class="chart-column">`)
		b.WriteString(`<div class="chart-track"><div class="chart-bar ` + colorClass(bar.Color) + `" style="height: ` + ftoa(bar.Height) + `%; min-height: ` + minHeight + `">`)
		b.WriteString(`<span class="chart-percent">` + itoa(bar.Percent) + `%</span></div></div>`)
		b.WriteString(`<span class="chart-hour">` + esc(bar.Hour) + `</span></div>`)
	}
	b.WriteString(`</div></div>`)
}

// StatisticsSheet is the closed sheet shell; its body is loaded on open.
func StatisticsSheet() templ.Component {
	return Sheet(StatisticsSheetID, "Загруженность", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div id="`+statisticsBodyID+`" class="statistics-body"></div>`)
		return err
	}))
}
