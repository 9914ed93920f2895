package port

import (
	"context"

	"occupancyDash/internal/modules/occupancy/domain"
)

// SnapshotSink is notified every time the synchronizer replaces the snapshot.
// Implementations must not block the caller for long.
type SnapshotSink interface {
	Publish(ctx context.Context, status *domain.DetailedStatus)
}

// SnapshotSinkFunc adapts a function to SnapshotSink.
type SnapshotSinkFunc func(ctx context.Context, status *domain.DetailedStatus)

func (f SnapshotSinkFunc) Publish(ctx context.Context, status *domain.DetailedStatus) {
	f(ctx, status)
}
