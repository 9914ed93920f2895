package web

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"occupancyDash/internal/modules/occupancy/domain"
)

// OccupancyPanelID is the element the dashboard script swaps on updates.
const OccupancyPanelID = "occupancy"

// OccupancyPanel renders the banner, totals, legend and seating grid.
func OccupancyPanel(view OccupancyView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<div id="` + OccupancyPanelID + `" class="occupancy" data-loaded="`)
		if view.Loaded {
			b.WriteString(`true">`)
		} else {
			b.WriteString(`false">`)
		}

		lastUpdate := view.LastUpdate
		if lastUpdate == "" {
			lastUpdate = "—:—"
		}
		banner := templ.Raw(`<p>Данные актуальны на <span class="banner-time">` + esc(lastUpdate) + `</span> и обновляются каждые 3 минуты</p>`)
		if err := Card("banner", banner).Render(ctx, &b); err != nil {
			return err
		}
		b.WriteString(`<h1 class="title">Кафе «Восточное»</h1>`)
		b.WriteString(`<div class="table-count">Всего столов: ` + itoa(view.Summary.Tables) + `</div>`)

		b.WriteString(`<div class="overview">`)
		if err := Card("totals", totals(view)).Render(ctx, &b); err != nil {
			return err
		}
		if err := Card("legend", legend(view.Loaded)).Render(ctx, &b); err != nil {
			return err
		}
		b.WriteString(`</div>`)

		if err := Card("seating", seatingHeader(), seatGrid(view)).Render(ctx, &b); err != nil {
			return err
		}
		b.WriteString(`</div>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func totals(view OccupancyView) templ.Component {
	if !view.Loaded {
		return templ.Raw(`<div class="skeleton" aria-busy="true"><div class="sk sk-lg"></div><div class="sk sk-md"></div><div class="sk sk-bar"></div></div>`)
	}
	summary := view.Summary
	return templ.Raw(`<div class="totals-value">` + itoa(summary.Occupied) + `/` + itoa(summary.Capacity) + `</div>` +
		`<div class="totals-caption">Мест занято</div>` +
		`<div class="progress"><div class="progress-fill ` + colorClass(summary.Color) + `" style="width: ` + itoa(summary.BarWidth()) + `%"></div></div>` +
		`<div class="progress-label">Загрузка: ` + itoa(summary.Percent) + `%</div>`)
}

func legend(loaded bool) templ.Component {
	if !loaded {
		return templ.Raw(`<div class="skeleton" aria-busy="true"><div class="sk sk-md"></div><div class="sk sk-md"></div><div class="sk sk-md"></div></div>`)
	}
	var b strings.Builder
	for _, item := range []struct {
		color domain.StatusColor
		label string
	}{
		{domain.StatusColorGreen, "Свободно"},
		{domain.StatusColorYellow, "Есть места"},
		{domain.StatusColorRed, "Занято"},
	} {
		b.WriteString(`<div class="legend-item"><span class="dot ` + colorClass(item.color) + `"></span><span>` + item.label + `</span></div>`)
	}
	return templ.Raw(b.String())
}

func seatingHeader() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="seating-header"><h2>Посадочные места</h2>`); err != nil {
			return err
		}
		if err := Button(ButtonProps{
			Variant: ButtonGhost,
			Label:   "▥",
			Attrs:   `data-open-statistics aria-label="Статистика"`,
		}).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func seatGrid(view OccupancyView) templ.Component {
	var b strings.Builder
	b.WriteString(`<div class="seat-grid">`)
	for _, cell := range view.Seats {
		writeSeat(&b, cell, view.Loaded)
	}
	b.WriteString(`</div>`)
	return templ.Raw(b.String())
}

func writeSeat(b *strings.Builder, cell domain.SeatCell, loaded bool) {
	position := ` data-cell="` + itoa(cell.Index) + `"`
	if !loaded && cell.TableID != domain.EmptyCell {
		b.WriteString(`<div class="seat seat-loading"` + position + `><div class="sk sk-sm"></div></div>`)
		return
	}
	if cell.Placeholder() {
		b.WriteString(`<div class="seat seat-empty"` + position + ` aria-hidden="true"></div>`)
		return
	}
	b.WriteString(`<div class="seat ` + colorClass(cell.Color) + `"` + position + ` data-table="` + itoa(cell.TableID) + `">`)
	b.WriteString(`<span class="seat-icon" aria-hidden="true">●</span><span class="seat-label">` + esc(cell.Label()) + `</span></div>`)
}
