package driving

import (
	"context"

	"github.com/pipedata/curator/internal/core/domain"
)

// Review actions accepted by ReviewService.Review.
const (
	ReviewApprove = "approve"
	ReviewReject  = "reject"
)

// ReviewService records the human approve/reject decision gating
// transmission.
type ReviewService interface {
	// Review applies an approve or reject decision to a pending
	// batch and returns the updated batch. A batch that is not
	// pending fails with domain.ErrInvalidState and is left
	// unchanged.
	Review(ctx context.Context, batchID, action, actor, notes string) (*domain.Batch, error)
}
