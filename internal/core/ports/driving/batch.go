package driving

import (
	"context"

	"github.com/pipedata/curator/internal/core/domain"
)

// BatchService creates and inspects batches of pool items.
type BatchService interface {
	// Create groups unclaimed pool items scoring at least minQuality
	// into a new pending batch of at most maxItems members. Fails
	// with domain.ErrNoEligibleItems when the pool yields nothing;
	// no batch is created in that case.
	Create(ctx context.Context, minQuality float64, maxItems int, actor string) (*domain.Batch, error)

	// ListPending returns all pending batches, newest first.
	ListPending(ctx context.Context) ([]domain.Batch, error)

	// Items returns the full item payloads of a batch's members in
	// their frozen insertion order.
	Items(ctx context.Context, batchID string) ([]domain.Item, error)
}
