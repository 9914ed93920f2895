package infrastructure

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"occupancyDash/internal/modules/occupancy/domain"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Client is one dashboard viewer connection.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
	remoteIP  string
	commands  *CommandProcessor
	limiter   *rate.Limiter

	closeOnce sync.Once
	closed    chan struct{}
}

// NewClient wraps an upgraded connection. buf sizes the outbound queue.
func NewClient(hub *Hub, conn *websocket.Conn, sessionID, remoteIP string, buf int, commands *CommandProcessor) *Client {
	if buf <= 0 {
		buf = 8
	}
	return &Client{
		hub:       hub,
		conn:      conn,
		send:      make(chan []byte, buf),
		sessionID: sessionID,
		remoteIP:  remoteIP,
		commands:  commands,
		limiter:   rate.NewLimiter(rate.Limit(5), 10),
		closed:    make(chan struct{}),
	}
}

func (c *Client) SessionID() string {
	return c.sessionID
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.closed)
		_ = c.conn.Close()
	})
}

// enqueue never blocks; false means the viewer is too slow or gone.
func (c *Client) enqueue(data []byte) bool {
	select {
	case <-c.closed:
		return false
	default:
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// SendMessage queues a single message for this viewer.
func (c *Client) SendMessage(msg *domain.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("websocket marshal error", slog.Any("error", err))
		return
	}
	if !c.enqueue(data) {
		slog.Warn("websocket send buffer full", slog.String("sessionId", c.sessionID))
		go c.hub.detachClient(c)
	}
}

func (c *Client) WritePump() {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-c.closed:
			return
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				slog.Warn("websocket write error", slog.String("sessionId", c.sessionID), slog.Any("error", err))
				c.hub.detachClient(c)
				return
			}
		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				slog.Warn("websocket ping error", slog.String("sessionId", c.sessionID), slog.Any("error", err))
				c.hub.detachClient(c)
				return
			}
		}
	}
}

func (c *Client) ReadPump() {
	c.conn.SetReadLimit(1 << 12)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	defer c.hub.detachClient(c)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Debug("websocket read error", slog.String("sessionId", c.sessionID), slog.Any("error", err))
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		if !c.limiter.Allow() {
			slog.Debug("ws command rate limited", slog.String("sessionId", c.sessionID))
			continue
		}
		if c.commands != nil {
			c.commands.Process(c, ParseCommand(data))
		}
	}
}
