package driving

import (
	"context"

	"github.com/pipedata/curator/internal/core/domain"
)

// HistoryService exposes transmission history, the audit log and
// aggregate statistics. All operations are read-only projections.
type HistoryService interface {
	// Transmissions returns TransmissionRecords newest first, at
	// most limit of them (a sensible default applies when limit <= 0).
	Transmissions(ctx context.Context, limit int) ([]domain.TransmissionRecord, error)

	// Actions returns the audit log for one batch, newest first.
	Actions(ctx context.Context, batchID string, limit int) ([]domain.AdminAction, error)

	// Stats returns a point-in-time snapshot of batch and
	// transmission aggregates.
	Stats(ctx context.Context) (*domain.StatsSnapshot, error)
}
