package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipedata/curator/internal/adapters/driven/storage/memory"
	"github.com/pipedata/curator/internal/core/domain"
	"github.com/pipedata/curator/internal/core/ports/driving"
)

func createPendingBatch(t *testing.T, store *memory.Store) *domain.Batch {
	t.Helper()
	seedItems(store,
		testItem("item-1", 9.0, "wiki"),
		testItem("item-2", 8.0, "forum"),
	)
	svc := NewBatchService(store.BatchStore(), store.ItemPool(), store.HistoryStore())
	batch, err := svc.Create(context.Background(), 7.0, 10, "admin")
	require.NoError(t, err)
	return batch
}

func TestReviewService_Approve(t *testing.T) {
	store := memory.NewStore()
	batch := createPendingBatch(t, store)
	svc := NewReviewService(store.BatchStore(), store.HistoryStore())

	reviewed, err := svc.Review(context.Background(), batch.ID, driving.ReviewApprove, "reviewer", "looks good")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusApproved, reviewed.Status)
	assert.Equal(t, "reviewer", reviewed.ReviewedBy)
	assert.False(t, reviewed.ReviewedAt.IsZero())
	assert.Equal(t, "looks good", reviewed.Notes)
}

func TestReviewService_Reject(t *testing.T) {
	store := memory.NewStore()
	batch := createPendingBatch(t, store)
	svc := NewReviewService(store.BatchStore(), store.HistoryStore())

	reviewed, err := svc.Review(context.Background(), batch.ID, driving.ReviewReject, "reviewer", "too noisy")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusRejected, reviewed.Status)
	assert.Equal(t, "too noisy", reviewed.Notes)
}

func TestReviewService_UnknownAction(t *testing.T) {
	store := memory.NewStore()
	batch := createPendingBatch(t, store)
	svc := NewReviewService(store.BatchStore(), store.HistoryStore())

	_, err := svc.Review(context.Background(), batch.ID, "defer", "reviewer", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReviewService_NotFound(t *testing.T) {
	store := memory.NewStore()
	svc := NewReviewService(store.BatchStore(), store.HistoryStore())

	_, err := svc.Review(context.Background(), "no-such-batch", driving.ReviewApprove, "reviewer", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReviewService_AlreadyReviewed(t *testing.T) {
	store := memory.NewStore()
	batch := createPendingBatch(t, store)
	svc := NewReviewService(store.BatchStore(), store.HistoryStore())

	_, err := svc.Review(context.Background(), batch.ID, driving.ReviewApprove, "first", "")
	require.NoError(t, err)

	// Second decision loses; the first one stands untouched.
	_, err = svc.Review(context.Background(), batch.ID, driving.ReviewReject, "second", "")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	kept, err := store.BatchStore().GetBatch(context.Background(), batch.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, kept.Status)
	assert.Equal(t, "first", kept.ReviewedBy)
}

func TestReviewService_MissingActor(t *testing.T) {
	store := memory.NewStore()
	batch := createPendingBatch(t, store)
	svc := NewReviewService(store.BatchStore(), store.HistoryStore())

	_, err := svc.Review(context.Background(), batch.ID, driving.ReviewApprove, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReviewService_AppendsAuditAction(t *testing.T) {
	store := memory.NewStore()
	batch := createPendingBatch(t, store)
	svc := NewReviewService(store.BatchStore(), store.HistoryStore())

	_, err := svc.Review(context.Background(), batch.ID, driving.ReviewApprove, "reviewer", "ok")
	require.NoError(t, err)

	actions, err := store.HistoryStore().ListActions(context.Background(), batch.ID, 10)
	require.NoError(t, err)
	require.Len(t, actions, 2) // create + review, newest first
	assert.Equal(t, domain.ActionReview, actions[0].Kind)
	assert.Equal(t, "reviewer", actions[0].ActorID)
}
