package driven

import (
	"context"
	"time"

	"github.com/pipedata/curator/internal/core/domain"
)

// BatchStore persists batches and enforces the claim invariant: an
// item identifier belongs to at most one batch, for the lifetime of
// the pool.
type BatchStore interface {
	// CreateBatch atomically claims batch.ItemIDs and persists the
	// batch in a single transaction. If any item is already claimed
	// by another batch, the whole transaction fails with
	// domain.ErrItemClaimed and nothing is persisted.
	CreateBatch(ctx context.Context, batch *domain.Batch) error

	// GetBatch retrieves a batch by ID, including its frozen item ID
	// list in insertion order. Returns domain.ErrNotFound if unknown.
	GetBatch(ctx context.Context, id string) (*domain.Batch, error)

	// ListByStatus returns batches in the given status ordered by
	// creation time descending.
	ListByStatus(ctx context.Context, status domain.BatchStatus) ([]domain.Batch, error)

	// RecordReview transitions a pending batch to approved or
	// rejected, recording the reviewer, timestamp and notes. The
	// update is guarded by the current status: if the batch is not
	// pending it fails with domain.ErrInvalidState and the batch is
	// left completely unchanged. Unknown IDs fail with
	// domain.ErrNotFound.
	RecordReview(ctx context.Context, id string, decision domain.BatchStatus,
		actor string, reviewedAt time.Time, notes string) error

	// FinalizeTransmission transitions an approved batch to sent and
	// persists the TransmissionRecord in a single transaction. The
	// transition is guarded by status = approved, so concurrent sends
	// produce exactly one record; the loser gets
	// domain.ErrInvalidState and writes nothing.
	FinalizeTransmission(ctx context.Context, record *domain.TransmissionRecord) error
}
