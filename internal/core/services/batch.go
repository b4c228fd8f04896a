package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pipedata/curator/internal/core/domain"
	"github.com/pipedata/curator/internal/core/ports/driven"
	"github.com/pipedata/curator/internal/core/ports/driving"
	"github.com/pipedata/curator/internal/logger"
)

// Ensure BatchService implements the interface.
var _ driving.BatchService = (*BatchService)(nil)

// BatchService groups scored pool items into frozen pending batches.
type BatchService struct {
	batchStore driven.BatchStore
	pool       driven.ItemPool
	history    driven.HistoryStore
}

// NewBatchService creates a new batch service.
func NewBatchService(
	batchStore driven.BatchStore,
	pool driven.ItemPool,
	history driven.HistoryStore,
) *BatchService {
	return &BatchService{
		batchStore: batchStore,
		pool:       pool,
		history:    history,
	}
}

// Create groups unclaimed pool items scoring at least minQuality into
// a new pending batch. Membership, the average score and the source
// set are frozen before the batch is persisted; the claim and the
// batch insert happen in one store transaction.
func (s *BatchService) Create(
	ctx context.Context,
	minQuality float64,
	maxItems int,
	actor string,
) (*domain.Batch, error) {
	if maxItems <= 0 || actor == "" {
		return nil, domain.ErrInvalidInput
	}

	items, err := s.pool.FetchUnclaimed(ctx, minQuality, maxItems)
	if err != nil {
		return nil, fmt.Errorf("fetch unclaimed items: %w", err)
	}
	if len(items) == 0 {
		return nil, domain.ErrNoEligibleItems
	}

	itemIDs := make([]string, len(items))
	sourceSet := make(map[string]struct{})
	var totalScore float64
	for i := range items {
		itemIDs[i] = items[i].ID
		totalScore += items[i].QualityScore
		sourceSet[items[i].Source] = struct{}{}
	}

	sources := make([]string, 0, len(sourceSet))
	for source := range sourceSet {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	batch := &domain.Batch{
		ID:              uuid.NewString(),
		CreatedAt:       time.Now().UTC(),
		ItemIDs:         itemIDs,
		TotalItems:      len(items),
		AvgQualityScore: totalScore / float64(len(items)),
		Sources:         sources,
		Status:          domain.StatusPending,
	}

	if err := s.batchStore.CreateBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("create batch: %w", err)
	}

	logger.Info("Created batch %s with %d items (avg quality %.2f)",
		batch.ID, batch.TotalItems, batch.AvgQualityScore)

	s.appendAction(ctx, actor, domain.ActionCreate, batch.ID,
		fmt.Sprintf("min_quality=%.2f max_items=%d claimed=%d", minQuality, maxItems, batch.TotalItems))

	return batch, nil
}

// ListPending returns all pending batches, newest first.
func (s *BatchService) ListPending(ctx context.Context) ([]domain.Batch, error) {
	return s.batchStore.ListByStatus(ctx, domain.StatusPending)
}

// Items returns the full item payloads of a batch in frozen order.
func (s *BatchService) Items(ctx context.Context, batchID string) ([]domain.Item, error) {
	batch, err := s.batchStore.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	items, err := s.pool.GetItems(ctx, batch.ItemIDs)
	if err != nil {
		return nil, fmt.Errorf("get batch items: %w", err)
	}
	return items, nil
}

// appendAction records an audit entry. Audit append is best effort:
// a failure is logged but does not roll back the operation it audits.
func (s *BatchService) appendAction(ctx context.Context, actor string, kind domain.ActionKind, batchID, notes string) {
	action := &domain.AdminAction{
		ActorID:   actor,
		Kind:      kind,
		BatchID:   batchID,
		Notes:     notes,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.history.AppendAction(ctx, action); err != nil {
		logger.Warn("Failed to append admin action for batch %s: %v", batchID, err)
	}
}
