package driven

import (
	"context"

	"github.com/pipedata/curator/internal/core/domain"
)

// HistoryStore reads the append-only transmission and audit history
// and computes aggregate statistics. All methods are read-only
// projections except AppendAction.
type HistoryStore interface {
	// AppendAction appends an entry to the administrative audit log.
	AppendAction(ctx context.Context, action *domain.AdminAction) error

	// ListActions returns audit entries for a batch, newest first,
	// at most limit of them.
	ListActions(ctx context.Context, batchID string, limit int) ([]domain.AdminAction, error)

	// ListTransmissions returns TransmissionRecords ordered by sent
	// timestamp descending, at most limit of them.
	ListTransmissions(ctx context.Context, limit int) ([]domain.TransmissionRecord, error)

	// BatchStats computes aggregate batch counts and quality.
	BatchStats(ctx context.Context) (*domain.BatchStats, error)

	// TransmissionStats computes aggregate transmission totals.
	TransmissionStats(ctx context.Context) (*domain.TransmissionStats, error)
}
