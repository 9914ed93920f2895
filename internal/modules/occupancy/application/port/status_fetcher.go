package port

import (
	"context"
	"errors"

	"occupancyDash/internal/modules/occupancy/domain"
)

var (
	// ErrStatusUnavailable indicates the backend answered with a non-OK status.
	ErrStatusUnavailable = errors.New("status fetch unavailable")
	// ErrStatusMalformed indicates the response body was not a detailed status.
	ErrStatusMalformed = errors.New("status payload malformed")
)

// StatusFetcher performs the one-shot HTTP read of the detailed status.
type StatusFetcher interface {
	FetchDetailed(ctx context.Context) (*domain.DetailedStatus, error)
}
