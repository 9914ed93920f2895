package infrastructure

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"occupancyDash/internal/modules/occupancy/application/port"
	"occupancyDash/internal/shared/backend"
)

// StatusStreamClient dials the backend push channel at /ws/status.
type StatusStreamClient struct {
	url           string
	dialer        *websocket.Dialer
	writeDeadline time.Duration
}

func NewStatusStreamClient(baseURL string, handshakeTimeout time.Duration) *StatusStreamClient {
	return &StatusStreamClient{
		url: backend.StatusStreamURL(backend.ResolveBaseURL(baseURL)),
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: backend.TimeoutOrDefault(handshakeTimeout),
		},
		writeDeadline: 5 * time.Second,
	}
}

// URL is the resolved ws(s) address.
func (c *StatusStreamClient) URL() string {
	return c.url
}

func (c *StatusStreamClient) Dial(ctx context.Context) (port.StatusStream, error) {
	conn, res, err := c.dialer.DialContext(ctx, c.url, nil)
	if res != nil && res.Body != nil {
		_ = res.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", c.url, err)
	}
	conn.SetReadLimit(1 << 20)
	return &statusConn{conn: conn, writeDeadline: c.writeDeadline}, nil
}

// statusConn serializes writes; gorilla allows one concurrent reader and one writer.
type statusConn struct {
	conn          *websocket.Conn
	writeMu       sync.Mutex
	writeDeadline time.Duration
	closeOnce     sync.Once
	closeErr      error
}

func (s *statusConn) Send(text string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(s.writeDeadline))
	return s.conn.WriteMessage(websocket.TextMessage, []byte(text))
}

func (s *statusConn) Receive() ([]byte, error) {
	for {
		kind, data, err := s.conn.ReadMessage()
		if err != nil {
			return nil, err
		}
		if kind == websocket.TextMessage || kind == websocket.BinaryMessage {
			return data, nil
		}
	}
}

func (s *statusConn) Close() error {
	s.closeOnce.Do(func() {
		s.writeMu.Lock()
		_ = s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		s.writeMu.Unlock()
		s.closeErr = s.conn.Close()
	})
	return s.closeErr
}

var _ port.StatusStreamDialer = (*StatusStreamClient)(nil)
