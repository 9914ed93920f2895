package broker

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"occupancyDash/internal/modules/occupancy/domain"
)

type recordingWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func (w *recordingWriter) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.msgs)
}

func TestNewSnapshotPublisherWithoutBrokers(t *testing.T) {
	if NewSnapshotPublisher(nil, "occupancy.snapshots") != nil {
		t.Fatal("expected nil publisher without brokers")
	}
	var p *SnapshotPublisher
	p.Publish(context.Background(), &domain.DetailedStatus{})
}

func TestEncodeSnapshot(t *testing.T) {
	at := time.Date(2025, 12, 16, 12, 0, 0, 0, time.UTC)
	status := &domain.DetailedStatus{Tables: []domain.TableSnapshot{{ID: 3, Occupied: 2, Capacity: 4}}}

	msg, err := encodeSnapshot(status, at)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(msg.Key) != domain.OccupancyEntity {
		t.Fatalf("unexpected key %s", msg.Key)
	}

	var event snapshotEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if event.Topic != domain.TopicOccupancySnapshot || event.Metadata["percent"] != "50" {
		t.Fatalf("unexpected event %+v", event)
	}
	if event.Data == nil || len(event.Data.Tables) != 1 || event.Data.Tables[0].ID != 3 {
		t.Fatalf("unexpected data %+v", event.Data)
	}
}

func TestSnapshotPublisherRun(t *testing.T) {
	writer := &recordingWriter{}
	publisher := newSnapshotPublisher(writer, "occupancy.snapshots")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = publisher.Run(ctx)
		close(done)
	}()

	publisher.Publish(ctx, &domain.DetailedStatus{})
	publisher.Publish(ctx, &domain.DetailedStatus{})

	deadline := time.Now().Add(2 * time.Second)
	for writer.count() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if writer.count() != 2 {
		t.Fatalf("expected 2 messages, got %d", writer.count())
	}

	cancel()
	<-done
	if !writer.closed {
		t.Fatal("writer should be closed after Run returns")
	}
}

func TestSnapshotPublisherDropsOldestWhenFull(t *testing.T) {
	publisher := newSnapshotPublisher(&recordingWriter{}, "t")
	for i := 0; i < cap(publisher.queue)+5; i++ {
		publisher.Publish(context.Background(), &domain.DetailedStatus{OverallInside: i})
	}
	if len(publisher.queue) != cap(publisher.queue) {
		t.Fatalf("queue should stay full, got %d", len(publisher.queue))
	}
	first := <-publisher.queue
	if first.OverallInside != 5 {
		t.Fatalf("expected oldest entries dropped, head is %d", first.OverallInside)
	}
}
