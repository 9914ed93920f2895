package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "occupancy_dash"

var (
	once sync.Once

	statusFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_fetch_total",
			Help:      "Detailed status HTTP fetches by result.",
		},
		[]string{"result"},
	)

	streamEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_stream_events_total",
			Help:      "Push channel lifecycle events (open, message, invalid, close).",
		},
		[]string{"event"},
	)

	reconnectDelay = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "status_stream_reconnect_delay_seconds",
			Help:      "Backoff delays scheduled before reconnecting the push channel.",
			Buckets:   []float64{1, 2, 4, 8, 10},
		},
	)

	syncState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sync_state",
			Help:      "1 for the synchronizer's current connection state.",
		},
		[]string{"state"},
	)

	snapshotSeats = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "snapshot_seats",
			Help:      "Seats of visible tables in the latest snapshot.",
		},
		[]string{"kind"},
	)

	viewers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dashboard_viewers",
			Help:      "Connected dashboard websocket viewers.",
		},
	)

	statsFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weekly_stats_fetch_total",
			Help:      "Weekly statistics lookups by source and result.",
		},
		[]string{"source", "result"},
	)

	knownStates []string
	stateMu     sync.Mutex
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(statusFetches, streamEvents, reconnectDelay, syncState, snapshotSeats, viewers, statsFetches)
	})
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func IncStatusFetch(result string) {
	statusFetches.WithLabelValues(result).Inc()
}

func IncStreamEvent(event string) {
	streamEvents.WithLabelValues(event).Inc()
}

func ObserveReconnectDelay(seconds float64) {
	reconnectDelay.Observe(seconds)
}

// SetSyncState flips the state gauge so exactly one state reads 1.
func SetSyncState(state string) {
	stateMu.Lock()
	defer stateMu.Unlock()
	found := false
	for _, known := range knownStates {
		if known == state {
			found = true
		}
		syncState.WithLabelValues(known).Set(0)
	}
	if !found {
		knownStates = append(knownStates, state)
	}
	syncState.WithLabelValues(state).Set(1)
}

func SetSnapshotSeats(occupied, capacity int) {
	snapshotSeats.WithLabelValues("occupied").Set(float64(occupied))
	snapshotSeats.WithLabelValues("capacity").Set(float64(capacity))
}

func SetViewers(count int) {
	viewers.Set(float64(count))
}

func IncStatsFetch(source, result string) {
	statsFetches.WithLabelValues(source, result).Inc()
}
