package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"occupancyDash/internal/modules/occupancy/application/port"
	"occupancyDash/internal/modules/occupancy/domain"
	"occupancyDash/internal/platform/metrics"
)

// ErrAlreadyRunning is returned when Run is called on a synchronizer that is already running.
var ErrAlreadyRunning = errors.New("synchronizer already running")

// SyncState is the connection state of the push channel.
type SyncState string

const (
	SyncStateIdle       SyncState = "idle"
	SyncStateConnecting SyncState = "connecting"
	SyncStateOpen       SyncState = "open"
	SyncStateBackoff    SyncState = "backoff"
	SyncStateStopped    SyncState = "stopped"
)

const (
	sourceFetch  = "fetch"
	sourceStream = "stream"
)

// SyncOptions tunes the synchronizer timings.
type SyncOptions struct {
	PollInterval   time.Duration
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	PingMessage    string
}

// DefaultSyncOptions polls every 3s and backs off 1s, 2s, 4s... up to 10s.
func DefaultSyncOptions() SyncOptions {
	return SyncOptions{
		PollInterval:   3 * time.Second,
		InitialBackoff: time.Second,
		MaxBackoff:     10 * time.Second,
		PingMessage:    "ping",
	}
}

func (o SyncOptions) withDefaults() SyncOptions {
	def := DefaultSyncOptions()
	if o.PollInterval <= 0 {
		o.PollInterval = def.PollInterval
	}
	if o.InitialBackoff <= 0 {
		o.InitialBackoff = def.InitialBackoff
	}
	if o.MaxBackoff <= 0 {
		o.MaxBackoff = def.MaxBackoff
	}
	if o.PingMessage == "" {
		o.PingMessage = def.PingMessage
	}
	return o
}

// SyncStatus is a point-in-time view of the synchronizer for health reporting.
type SyncStatus struct {
	State         SyncState     `json:"state"`
	Attempt       int           `json:"attempt"`
	RetryIn       time.Duration `json:"retryIn,omitempty"`
	LastSource    string        `json:"lastSource,omitempty"`
	LastAppliedAt time.Time     `json:"lastAppliedAt,omitempty"`
}

// Synchronizer keeps the snapshot store consistent with the remote status
// feed: one fetch on start, a push channel with exponential reconnect
// backoff, and a fallback poll that only fetches while the channel is not open.
type Synchronizer struct {
	fetcher port.StatusFetcher
	dialer  port.StatusStreamDialer
	store   *SnapshotStore
	sinks   []port.SnapshotSink
	opts    SyncOptions

	running atomic.Bool

	mu     sync.RWMutex
	status SyncStatus
}

func NewSynchronizer(fetcher port.StatusFetcher, dialer port.StatusStreamDialer, store *SnapshotStore, opts SyncOptions, sinks ...port.SnapshotSink) *Synchronizer {
	if store == nil {
		store = NewSnapshotStore()
	}
	return &Synchronizer{
		fetcher: fetcher,
		dialer:  dialer,
		store:   store,
		sinks:   sinks,
		opts:    opts.withDefaults(),
		status:  SyncStatus{State: SyncStateIdle},
	}
}

// Store exposes the snapshot store the synchronizer writes to.
func (s *Synchronizer) Store() *SnapshotStore {
	return s.store
}

// Status returns the current connection state.
func (s *Synchronizer) Status() SyncStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// AddSink registers a snapshot listener. It must be called before Run.
func (s *Synchronizer) AddSink(sink port.SnapshotSink) {
	if sink == nil {
		return
	}
	s.sinks = append(s.sinks, sink)
}

// Run drives the synchronizer until ctx is cancelled. On return every helper
// goroutine has exited, the channel is closed and all timers are stopped.
func (s *Synchronizer) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer s.running.Store(false)

	ctx, cancel := context.WithCancel(ctx)
	loop := &syncLoop{
		owner:  s,
		ctx:    ctx,
		events: make(chan syncEvent),
	}
	defer func() {
		cancel()
		loop.teardown()
		s.updateStatus(func(st *SyncStatus) {
			st.State = SyncStateStopped
			st.RetryIn = 0
		})
		slog.Info("status synchronizer stopped")
	}()

	slog.Info("status synchronizer started",
		slog.Duration("pollInterval", s.opts.PollInterval),
		slog.Duration("maxBackoff", s.opts.MaxBackoff))

	return loop.run()
}

func (s *Synchronizer) updateStatus(fn func(*SyncStatus)) {
	s.mu.Lock()
	fn(&s.status)
	state := s.status.State
	s.mu.Unlock()
	metrics.SetSyncState(string(state))
}

type syncEvent interface{}

type fetchResult struct {
	status *domain.DetailedStatus
	err    error
}

type streamOpened struct {
	generation int
	stream     port.StatusStream
}

type streamFrame struct {
	generation int
	data       []byte
}

type streamClosed struct {
	generation int
	err        error
}

// syncLoop owns every piece of mutable synchronizer state; it is only touched
// from the goroutine executing run.
type syncLoop struct {
	owner  *Synchronizer
	ctx    context.Context
	events chan syncEvent
	wg     sync.WaitGroup

	state      SyncState
	attempt    int
	generation int
	stream     port.StatusStream
	retry      *time.Timer
	poll       *time.Ticker
}

func (l *syncLoop) run() error {
	l.poll = time.NewTicker(l.owner.opts.PollInterval)

	l.fetch()
	l.connect()

	var retryC <-chan time.Time
	for {
		if l.retry != nil {
			retryC = l.retry.C
		} else {
			retryC = nil
		}

		select {
		case <-l.ctx.Done():
			return nil
		case <-l.poll.C:
			if l.state != SyncStateOpen {
				slog.Debug("status poll fallback", slog.String("state", string(l.state)))
				l.fetch()
			}
		case <-retryC:
			l.retry = nil
			l.connect()
		case event := <-l.events:
			l.handle(event)
		}
	}
}

func (l *syncLoop) handle(event syncEvent) {
	switch ev := event.(type) {
	case fetchResult:
		if ev.err != nil {
			metrics.IncStatusFetch("error")
			slog.Debug("status fetch failed", slog.Any("error", ev.err))
			return
		}
		metrics.IncStatusFetch("ok")
		l.apply(ev.status, sourceFetch)
	case streamOpened:
		if ev.generation != l.generation {
			_ = ev.stream.Close()
			return
		}
		l.stream = ev.stream
		l.attempt = 0
		l.setState(SyncStateOpen, 0)
		metrics.IncStreamEvent("open")
		slog.Info("status stream open")
		if err := ev.stream.Send(l.owner.opts.PingMessage); err != nil {
			slog.Debug("status stream ping failed", slog.Any("error", err))
		}
	case streamFrame:
		if ev.generation != l.generation {
			return
		}
		status, err := domain.DecodeDetailedStatus(ev.data)
		if err != nil {
			metrics.IncStreamEvent("invalid")
			slog.Debug("status stream frame ignored", slog.Int("bytes", len(ev.data)), slog.Any("error", err))
			return
		}
		metrics.IncStreamEvent("message")
		l.apply(status, sourceStream)
	case streamClosed:
		if ev.generation != l.generation {
			return
		}
		l.closeStream()
		l.scheduleReconnect(ev.err)
	}
}

func (l *syncLoop) apply(status *domain.DetailedStatus, source string) {
	if status == nil {
		return
	}
	l.owner.store.Replace(status)
	summary := domain.Summarize(status)
	metrics.SetSnapshotSeats(summary.Occupied, summary.Capacity)
	l.owner.updateStatus(func(st *SyncStatus) {
		st.LastSource = source
		st.LastAppliedAt = time.Now().UTC()
	})
	for _, sink := range l.owner.sinks {
		sink.Publish(l.ctx, status.Clone())
	}
}

func (l *syncLoop) setState(state SyncState, retryIn time.Duration) {
	l.state = state
	attempt := l.attempt
	l.owner.updateStatus(func(st *SyncStatus) {
		st.State = state
		st.Attempt = attempt
		st.RetryIn = retryIn
	})
}

func (l *syncLoop) scheduleReconnect(cause error) {
	delay := reconnectDelay(l.attempt, l.owner.opts.InitialBackoff, l.owner.opts.MaxBackoff)
	l.attempt++
	l.setState(SyncStateBackoff, delay)
	metrics.IncStreamEvent("close")
	metrics.ObserveReconnectDelay(delay.Seconds())
	slog.Info("status stream closed, reconnect scheduled",
		slog.Duration("delay", delay),
		slog.Int("attempt", l.attempt),
		slog.Any("error", cause))
	l.retry = time.NewTimer(delay)
}

func (l *syncLoop) connect() {
	l.generation++
	generation := l.generation
	l.setState(SyncStateConnecting, 0)

	l.spawn(func() {
		stream, err := l.owner.dialer.Dial(l.ctx)
		if err != nil {
			l.post(streamClosed{generation: generation, err: err})
			return
		}
		if !l.post(streamOpened{generation: generation, stream: stream}) {
			_ = stream.Close()
			return
		}
		for {
			data, err := stream.Receive()
			if err != nil {
				l.post(streamClosed{generation: generation, err: err})
				return
			}
			if !l.post(streamFrame{generation: generation, data: data}) {
				return
			}
		}
	})
}

func (l *syncLoop) fetch() {
	l.spawn(func() {
		status, err := l.owner.fetcher.FetchDetailed(l.ctx)
		l.post(fetchResult{status: status, err: err})
	})
}

func (l *syncLoop) spawn(fn func()) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		fn()
	}()
}

// post hands an event to the loop; it gives up once the loop is shutting down.
func (l *syncLoop) post(event syncEvent) bool {
	select {
	case l.events <- event:
		return true
	case <-l.ctx.Done():
		return false
	}
}

func (l *syncLoop) closeStream() {
	if l.stream == nil {
		return
	}
	if err := l.stream.Close(); err != nil {
		slog.Debug("status stream close error", slog.Any("error", err))
	}
	l.stream = nil
}

func (l *syncLoop) teardown() {
	if l.poll != nil {
		l.poll.Stop()
	}
	if l.retry != nil {
		l.retry.Stop()
		l.retry = nil
	}
	l.closeStream()
	l.wg.Wait()
}
