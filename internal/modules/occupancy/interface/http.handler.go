package transport

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"occupancyDash/internal/modules/occupancy/application/port"
	"occupancyDash/internal/modules/occupancy/application/usecase"
	"occupancyDash/internal/modules/occupancy/domain"
	"occupancyDash/internal/modules/occupancy/infrastructure"
	"occupancyDash/internal/web"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// DashboardHandler serves the occupancy page, its fragment and the viewer websocket.
type DashboardHandler struct {
	synchronizer *usecase.Synchronizer
	hub          *infrastructure.Hub
	layout       domain.Layout
	commands     *infrastructure.CommandProcessor
}

func NewDashboardHandler(synchronizer *usecase.Synchronizer, hub *infrastructure.Hub, layout domain.Layout) *DashboardHandler {
	h := &DashboardHandler{synchronizer: synchronizer, hub: hub, layout: layout}
	h.commands = infrastructure.NewCommandProcessor(h.handleRefresh)
	return h
}

// Register mounts the dashboard routes.
func (h *DashboardHandler) Register(e *echo.Echo) {
	e.GET("/", h.Page)
	e.GET("/partials/occupancy", h.Partial)
	e.GET("/api/occupancy", h.API)
	e.GET("/healthz", h.Health)
	e.GET("/ws/dashboard", h.Viewer)
}

// View builds the panel model from the current snapshot.
func (h *DashboardHandler) View() web.OccupancyView {
	status, _ := h.synchronizer.Store().Current()
	return web.NewOccupancyView(status, h.layout)
}

func (h *DashboardHandler) Page(c echo.Context) error {
	return render(c, http.StatusOK, web.Dashboard(web.OccupancyPanel(h.View())))
}

func (h *DashboardHandler) Partial(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return render(c, http.StatusOK, web.OccupancyPanel(h.View()))
}

type occupancyResponse struct {
	View    web.OccupancyView  `json:"view"`
	Sync    usecase.SyncStatus `json:"sync"`
	Version uint64             `json:"version"`
}

func (h *DashboardHandler) API(c echo.Context) error {
	return c.JSON(http.StatusOK, occupancyResponse{
		View:    h.View(),
		Sync:    h.synchronizer.Status(),
		Version: h.synchronizer.Store().Version(),
	})
}

type healthResponse struct {
	Status            string             `json:"status"`
	Sync              usecase.SyncStatus `json:"sync"`
	Snapshot          bool               `json:"snapshot"`
	SnapshotUpdatedAt *time.Time         `json:"snapshotUpdatedAt,omitempty"`
	Viewers           int                `json:"viewers"`
}

// Health reports "ok" while the push channel is open and "degraded" otherwise;
// the service keeps serving the last snapshot either way.
func (h *DashboardHandler) Health(c echo.Context) error {
	status := h.synchronizer.Status()
	_, hasSnapshot := h.synchronizer.Store().Current()
	label := "ok"
	if status.State != usecase.SyncStateOpen {
		label = "degraded"
	}
	res := healthResponse{
		Status:   label,
		Sync:     status,
		Snapshot: hasSnapshot,
		Viewers:  h.hub.Count(),
	}
	if hasSnapshot {
		updatedAt := h.synchronizer.Store().UpdatedAt()
		res.SnapshotUpdatedAt = &updatedAt
	}
	return c.JSON(http.StatusOK, res)
}

// Viewer upgrades /ws/dashboard and immediately sends the current fragment.
func (h *DashboardHandler) Viewer(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error("ws viewer upgrade failed", slog.String("ip", c.RealIP()), slog.Any("error", err))
		return err
	}

	sessionID := uuid.NewString()
	client := infrastructure.NewClient(h.hub, conn, sessionID, c.RealIP(), 8, h.commands)
	h.hub.Attach(client)

	go client.WritePump()
	go client.ReadPump()

	client.SendMessage(&domain.Message{
		Topic:     domain.TopicSystemConnected,
		Entity:    domain.SystemEntity,
		Action:    domain.ActionConnected,
		Metadata:  map[string]string{"sessionId": sessionID},
		Timestamp: time.Now().UTC(),
	})
	h.sendFragment(c.Request().Context(), client)
	return nil
}

func (h *DashboardHandler) handleRefresh(client *infrastructure.Client, _ infrastructure.Command) {
	h.sendFragment(context.Background(), client)
}

func (h *DashboardHandler) sendFragment(ctx context.Context, client *infrastructure.Client) {
	msg, err := h.snapshotMessage(ctx, h.View())
	if err != nil {
		slog.Error("occupancy fragment render failed", slog.String("sessionId", client.SessionID()), slog.Any("error", err))
		return
	}
	client.SendMessage(msg)
}

func (h *DashboardHandler) snapshotMessage(ctx context.Context, view web.OccupancyView) (*domain.Message, error) {
	html, err := web.RenderString(ctx, web.OccupancyPanel(view))
	if err != nil {
		return nil, err
	}
	return &domain.Message{
		Topic:     domain.TopicOccupancySnapshot,
		Entity:    domain.OccupancyEntity,
		Action:    domain.ActionSnapshot,
		HTML:      html,
		Data:      view.Summary,
		Timestamp: time.Now().UTC(),
	}, nil
}

// BroadcastSink re-renders the panel for every applied snapshot and pushes it to all viewers.
func (h *DashboardHandler) BroadcastSink() port.SnapshotSink {
	return port.SnapshotSinkFunc(func(ctx context.Context, status *domain.DetailedStatus) {
		if h.hub.Count() == 0 {
			return
		}
		msg, err := h.snapshotMessage(ctx, web.NewOccupancyView(status, h.layout))
		if err != nil {
			slog.Error("occupancy broadcast render failed", slog.Any("error", err))
			return
		}
		h.hub.Broadcast(ctx, msg)
	})
}

// render buffers the component so a failure still reaches the error handler uncommitted.
func render(c echo.Context, status int, component templ.Component) error {
	var buf bytes.Buffer
	if err := component.Render(c.Request().Context(), &buf); err != nil {
		return fmt.Errorf("render %s: %w", c.Path(), err)
	}
	return c.HTMLBlob(status, buf.Bytes())
}
