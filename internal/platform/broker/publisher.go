package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"occupancyDash/internal/modules/occupancy/domain"
)

// SnapshotPublisher forwards applied snapshots to a Kafka topic. Publish never
// blocks the caller: events queue on a buffered channel drained by Run, and
// the oldest pending snapshots are dropped when the queue is full.
type SnapshotPublisher struct {
	writer messageWriter
	topic  string
	queue  chan *domain.DetailedStatus
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewSnapshotPublisher returns nil when no brokers are configured.
func NewSnapshotPublisher(brokers []string, topic string) *SnapshotPublisher {
	if len(brokers) == 0 || topic == "" {
		return nil
	}
	return newSnapshotPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}, topic)
}

func newSnapshotPublisher(writer messageWriter, topic string) *SnapshotPublisher {
	return &SnapshotPublisher{writer: writer, topic: topic, queue: make(chan *domain.DetailedStatus, 16)}
}

// Publish implements port.SnapshotSink.
func (p *SnapshotPublisher) Publish(_ context.Context, status *domain.DetailedStatus) {
	if p == nil || status == nil {
		return
	}
	for {
		select {
		case p.queue <- status:
			return
		default:
		}
		select {
		case dropped := <-p.queue:
			slog.Debug("kafka snapshot dropped", slog.String("topic", p.topic), slog.String("lastUpdate", dropped.LastUpdate))
		default:
		}
	}
}

// Run writes queued snapshots until ctx is cancelled, then closes the writer.
func (p *SnapshotPublisher) Run(ctx context.Context) error {
	defer func() {
		if err := p.writer.Close(); err != nil {
			slog.Warn("kafka writer close error", slog.Any("error", err))
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case status := <-p.queue:
			msg, err := encodeSnapshot(status, time.Now().UTC())
			if err != nil {
				slog.Warn("kafka snapshot encode error", slog.Any("error", err))
				continue
			}
			if err := p.writer.WriteMessages(ctx, msg); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				slog.Warn("kafka write error", slog.String("topic", p.topic), slog.Any("error", err))
				continue
			}
			slog.Debug("kafka snapshot published", slog.String("topic", p.topic), slog.Int("tables", len(status.Tables)))
		}
	}
}

type snapshotEvent struct {
	Entity   string                 `json:"entity"`
	Action   string                 `json:"action"`
	Topic    string                 `json:"topic"`
	Metadata map[string]string      `json:"metadata"`
	Data     *domain.DetailedStatus `json:"data"`
}

func encodeSnapshot(status *domain.DetailedStatus, at time.Time) (kafka.Message, error) {
	summary := domain.Summarize(status)
	event := snapshotEvent{
		Entity: domain.OccupancyEntity,
		Action: domain.ActionSnapshot,
		Topic:  domain.TopicOccupancySnapshot,
		Metadata: map[string]string{
			"occupied":    strconv.Itoa(summary.Occupied),
			"capacity":    strconv.Itoa(summary.Capacity),
			"percent":     strconv.Itoa(summary.Percent),
			"publishedAt": at.Format(time.RFC3339),
		},
		Data: status,
	}
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode snapshot: %w", err)
	}
	return kafka.Message{
		Key:   []byte(domain.OccupancyEntity),
		Value: value,
		Time:  at,
	}, nil
}
