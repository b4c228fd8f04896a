package services

import (
	"context"
	"fmt"
	"time"

	"github.com/pipedata/curator/internal/core/domain"
	"github.com/pipedata/curator/internal/core/ports/driven"
	"github.com/pipedata/curator/internal/core/ports/driving"
	"github.com/pipedata/curator/internal/logger"
)

// Ensure ReviewService implements the interface.
var _ driving.ReviewService = (*ReviewService)(nil)

// ReviewService records approve/reject decisions against pending
// batches.
type ReviewService struct {
	batchStore driven.BatchStore
	history    driven.HistoryStore
}

// NewReviewService creates a new review service.
func NewReviewService(batchStore driven.BatchStore, history driven.HistoryStore) *ReviewService {
	return &ReviewService{
		batchStore: batchStore,
		history:    history,
	}
}

// Review applies an approve or reject decision to a pending batch.
// The store update is guarded by the current status, so two
// concurrent reviews of the same batch yield exactly one winner; the
// loser gets domain.ErrInvalidState with the batch untouched.
func (s *ReviewService) Review(
	ctx context.Context,
	batchID, action, actor, notes string,
) (*domain.Batch, error) {
	if batchID == "" || actor == "" {
		return nil, domain.ErrInvalidInput
	}

	var decision domain.BatchStatus
	switch action {
	case driving.ReviewApprove:
		decision = domain.StatusApproved
	case driving.ReviewReject:
		decision = domain.StatusRejected
	default:
		return nil, fmt.Errorf("%w: unknown review action %q", domain.ErrInvalidInput, action)
	}

	reviewedAt := time.Now().UTC()
	if err := s.batchStore.RecordReview(ctx, batchID, decision, actor, reviewedAt, notes); err != nil {
		return nil, err
	}

	logger.Info("Batch %s %s by %s", batchID, decision, actor)

	s.appendAction(ctx, actor, batchID, fmt.Sprintf("action=%s notes=%q", action, notes))

	return s.batchStore.GetBatch(ctx, batchID)
}

func (s *ReviewService) appendAction(ctx context.Context, actor, batchID, notes string) {
	action := &domain.AdminAction{
		ActorID:   actor,
		Kind:      domain.ActionReview,
		BatchID:   batchID,
		Notes:     notes,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.history.AppendAction(ctx, action); err != nil {
		logger.Warn("Failed to append admin action for batch %s: %v", batchID, err)
	}
}
