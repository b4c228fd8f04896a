package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pipedata/curator/internal/core/domain"
	"github.com/pipedata/curator/internal/core/ports/driven"
	"github.com/pipedata/curator/internal/core/ports/driving"
	"github.com/pipedata/curator/internal/logger"
)

const (
	// DefaultConcurrency bounds parallel downstream submissions.
	DefaultConcurrency = 4

	// DefaultItemTimeout bounds each per-item downstream call. A
	// timed-out call counts as an error, never as a hang blocking
	// the whole send.
	DefaultItemTimeout = 30 * time.Second
)

// Ensure Transmitter implements the interface.
var _ driving.TransmitService = (*Transmitter)(nil)

// Transmitter sends approved batches to the downstream consumer,
// tallying per-item outcomes, and finalises the batch exactly once.
type Transmitter struct {
	batchStore  driven.BatchStore
	pool        driven.ItemPool
	downstream  driven.DownstreamConsumer
	history     driven.HistoryStore
	concurrency int
	itemTimeout time.Duration
}

// NewTransmitter creates a new transmitter. concurrency and
// itemTimeout fall back to defaults when non-positive.
func NewTransmitter(
	batchStore driven.BatchStore,
	pool driven.ItemPool,
	downstream driven.DownstreamConsumer,
	history driven.HistoryStore,
	concurrency int,
	itemTimeout time.Duration,
) *Transmitter {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if itemTimeout <= 0 {
		itemTimeout = DefaultItemTimeout
	}
	return &Transmitter{
		batchStore:  batchStore,
		pool:        pool,
		downstream:  downstream,
		history:     history,
		concurrency: concurrency,
		itemTimeout: itemTimeout,
	}
}

// Send dispatches every item of an approved batch downstream with
// bounded parallelism, then flips the batch to sent and persists the
// TransmissionRecord in a single guarded transaction. Per-item
// downstream failures are tallied, never propagated; even a batch
// whose every item failed finalises as sent with the counts recorded.
func (t *Transmitter) Send(ctx context.Context, batchID, actor string) (*domain.SendResult, error) {
	if batchID == "" || actor == "" {
		return nil, domain.ErrInvalidInput
	}

	batch, err := t.batchStore.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if batch.Status != domain.StatusApproved {
		return nil, fmt.Errorf("%w: batch %s is %s, want approved",
			domain.ErrInvalidState, batchID, batch.Status)
	}

	items, err := t.pool.GetItems(ctx, batch.ItemIDs)
	if err != nil {
		return nil, fmt.Errorf("get batch items: %w", err)
	}

	logger.Info("Sending batch %s: %d items, concurrency %d", batchID, len(items), t.concurrency)

	successCount := t.dispatch(ctx, items)
	errorCount := len(items) - successCount

	record := &domain.TransmissionRecord{
		ID:           uuid.NewString(),
		BatchID:      batchID,
		SentAt:       time.Now().UTC(),
		SentBy:       actor,
		ItemsCount:   len(items),
		SuccessCount: successCount,
		ErrorCount:   errorCount,
	}

	if err := t.batchStore.FinalizeTransmission(ctx, record); err != nil {
		return nil, err
	}

	logger.Info("Batch %s sent: %d ok, %d failed", batchID, successCount, errorCount)

	t.appendAction(ctx, actor, batchID,
		fmt.Sprintf("items=%d success=%d errors=%d", record.ItemsCount, record.SuccessCount, record.ErrorCount))

	return &domain.SendResult{
		BatchID:      batchID,
		RecordID:     record.ID,
		ItemsSent:    record.ItemsCount,
		SuccessCount: record.SuccessCount,
		ErrorCount:   record.ErrorCount,
	}, nil
}

// dispatch submits all items with bounded parallelism and returns the
// number of downstream accepts. Workers never return an error: a
// failed or timed-out submission only increments the tally.
func (t *Transmitter) dispatch(ctx context.Context, items []domain.Item) int {
	var successCount atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(t.concurrency)

	for i := range items {
		item := items[i]
		g.Go(func() error {
			itemCtx, cancel := context.WithTimeout(ctx, t.itemTimeout)
			defer cancel()

			if err := t.downstream.SubmitItem(itemCtx, item); err != nil {
				logger.Debug("Item %s rejected downstream: %v", item.ID, err)
				return nil
			}
			successCount.Add(1)
			return nil
		})
	}

	g.Wait() //nolint:errcheck // workers never return errors

	return int(successCount.Load())
}

func (t *Transmitter) appendAction(ctx context.Context, actor, batchID, notes string) {
	action := &domain.AdminAction{
		ActorID:   actor,
		Kind:      domain.ActionSend,
		BatchID:   batchID,
		Notes:     notes,
		CreatedAt: time.Now().UTC(),
	}
	if err := t.history.AppendAction(ctx, action); err != nil {
		logger.Warn("Failed to append admin action for batch %s: %v", batchID, err)
	}
}
