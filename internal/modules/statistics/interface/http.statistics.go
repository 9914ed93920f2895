package transport

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"occupancyDash/internal/modules/statistics/application/port"
	"occupancyDash/internal/modules/statistics/application/usecase"
	"occupancyDash/internal/modules/statistics/domain"
	"occupancyDash/internal/modules/statistics/infrastructure"
	"occupancyDash/internal/shared/httputil"
	"occupancyDash/internal/web"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// StatisticsHandler serves the weekly statistics sheet and its API.
type StatisticsHandler struct {
	service *usecase.WeeklyStatsService
	errors  *httputil.ErrorMapper
}

func NewStatisticsHandler(service *usecase.WeeklyStatsService) *StatisticsHandler {
	return &StatisticsHandler{
		service: service,
		errors: httputil.NewErrorMapper().
			WithMapping(port.ErrUnknownDay, http.StatusBadRequest, "unknown day").
			WithMapping(port.ErrStatsNotFound, http.StatusNotFound, "weekly stats not found").
			WithMapping(port.ErrStatsUnavailable, http.StatusBadGateway, "weekly stats unavailable").
			WithMapping(port.ErrStatsMalformed, http.StatusBadGateway, "weekly stats malformed"),
	}
}

// Register mounts the statistics routes.
func (h *StatisticsHandler) Register(e *echo.Echo) {
	e.GET("/partials/statistics", h.Partial)
	e.GET("/api/statistics", h.API)
	e.GET("/api/statistics/export.xlsx", h.Export)
}

// Partial renders the sheet body; every call reloads the weekly aggregate.
func (h *StatisticsHandler) Partial(c echo.Context) error {
	day, ok := domain.DayOrDefault(c.QueryParam("day"))
	if !ok {
		return h.errors.HTTPError(port.ErrUnknownDay)
	}

	result := h.service.Load(c.Request().Context())
	var buf bytes.Buffer
	if err := web.StatisticsPanel(web.NewStatisticsView(result.Stats, day)).Render(c.Request().Context(), &buf); err != nil {
		return fmt.Errorf("render statistics: %w", err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (h *StatisticsHandler) API(c echo.Context) error {
	view, err := h.service.Day(c.Request().Context(), c.QueryParam("day"))
	if err != nil {
		return h.errors.HTTPError(err)
	}
	return c.JSON(http.StatusOK, view)
}

// Export downloads the weekly table as a spreadsheet. Unlike the sheet it
// refuses to export the built-in defaults when the backend is unreachable.
func (h *StatisticsHandler) Export(c echo.Context) error {
	result := h.service.Load(c.Request().Context())
	if result.Source == usecase.SourceDefault && result.Err != nil {
		slog.Warn("statistics export without upstream data", slog.Any("error", result.Err))
		return h.errors.HTTPError(result.Err)
	}

	var buf bytes.Buffer
	if err := infrastructure.WriteWeeklyWorkbook(&buf, result.Stats); err != nil {
		return fmt.Errorf("export statistics: %w", err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="weekly-occupancy.xlsx"`)
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}
