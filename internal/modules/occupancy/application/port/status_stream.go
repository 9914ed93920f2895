package port

import "context"

// StatusStream is one open push channel connection.
type StatusStream interface {
	// Send writes a text frame.
	Send(text string) error
	// Receive blocks until the next frame arrives or the connection closes.
	Receive() ([]byte, error)
	Close() error
}

// StatusStreamDialer opens push channel connections.
type StatusStreamDialer interface {
	Dial(ctx context.Context) (StatusStream, error)
}
