package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"occupancyDash/internal/modules/occupancy/application/port"
	"occupancyDash/internal/modules/occupancy/domain"
)

type fakeFetcher struct {
	calls  atomic.Int32
	mu     sync.Mutex
	status *domain.DetailedStatus
	err    error
}

func (f *fakeFetcher) FetchDetailed(ctx context.Context) (*domain.DetailedStatus, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.status.Clone(), nil
}

type fakeStream struct {
	frames    chan []byte
	closed    chan struct{}
	closeOnce sync.Once
	mu        sync.Mutex
	sent      []string
}

func newFakeStream() *fakeStream {
	return &fakeStream{frames: make(chan []byte, 8), closed: make(chan struct{})}
}

func (s *fakeStream) Send(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, text)
	return nil
}

func (s *fakeStream) Receive() ([]byte, error) {
	select {
	case data := <-s.frames:
		return data, nil
	case <-s.closed:
		return nil, errors.New("stream closed")
	}
}

func (s *fakeStream) Close() error {
	s.closeOnce.Do(func() { close(s.closed) })
	return nil
}

func (s *fakeStream) Sent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sent...)
}

func (s *fakeStream) isClosed() bool {
	select {
	case <-s.closed:
		return true
	default:
		return false
	}
}

// fakeDialer hands out streams in order; failures are consumed first. When
// block is set Dial waits for cancellation, modelling a channel that never opens.
type fakeDialer struct {
	mu       sync.Mutex
	failures int
	block    bool
	streams  []*fakeStream
	dials    atomic.Int32
}

func (d *fakeDialer) Dial(ctx context.Context) (port.StatusStream, error) {
	d.dials.Add(1)
	if d.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failures > 0 {
		d.failures--
		return nil, errors.New("connection refused")
	}
	stream := newFakeStream()
	d.streams = append(d.streams, stream)
	return stream, nil
}

func (d *fakeDialer) stream(idx int) *fakeStream {
	d.mu.Lock()
	defer d.mu.Unlock()
	if idx >= len(d.streams) {
		return nil
	}
	return d.streams[idx]
}

func oneTable(occupied, capacity int) *domain.DetailedStatus {
	return &domain.DetailedStatus{
		OverallInside: occupied,
		TotalCapacity: capacity,
		Tables:        []domain.TableSnapshot{{ID: 1, Occupied: occupied, Capacity: capacity}},
		LastUpdate:    "2025-12-16 12:00:00",
	}
}

func fastOptions() SyncOptions {
	return SyncOptions{
		PollInterval:   20 * time.Millisecond,
		InitialBackoff: 5 * time.Millisecond,
		MaxBackoff:     20 * time.Millisecond,
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func startSync(t *testing.T, s *Synchronizer) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	finished := make(chan struct{})
	go func() {
		result <- s.Run(ctx)
		close(finished)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-finished:
		case <-time.After(2 * time.Second):
			t.Error("synchronizer did not stop")
		}
	})
	return cancel, result
}
