package sqlite

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipedata/curator/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func seedPool(t *testing.T, store *Store, items ...domain.Item) {
	t.Helper()
	require.NoError(t, store.SaveItems(context.Background(), items))
}

func poolItem(id string, score float64, source string, createdAt time.Time) domain.Item {
	return domain.Item{
		ID:           id,
		Question:     "Q for " + id,
		Answer:       "A for " + id,
		QualityScore: score,
		Source:       source,
		Difficulty:   "medium",
		Tags:         []string{"sample"},
		CreatedAt:    createdAt,
	}
}

func pendingBatch(id string, itemIDs ...string) *domain.Batch {
	return &domain.Batch{
		ID:         id,
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
		ItemIDs:    itemIDs,
		TotalItems: len(itemIDs),
		Sources:    []string{"wiki"},
		Status:     domain.StatusPending,
	}
}

func TestStore_MigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening must not re-run applied migrations.
	store, err = NewStore(dir)
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}

func TestBatchStore_CreateAndGet(t *testing.T) {
	store := newTestStore(t)
	now := time.Now().UTC().Truncate(time.Second)
	seedPool(t, store, poolItem("i1", 9.0, "wiki", now), poolItem("i2", 8.0, "wiki", now))
	batches := store.BatchStore()

	batch := pendingBatch("b1", "i1", "i2")
	batch.AvgQualityScore = 8.5
	require.NoError(t, batches.CreateBatch(context.Background(), batch))

	got, err := batches.GetBatch(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, []string{"i1", "i2"}, got.ItemIDs)
	assert.Equal(t, 2, got.TotalItems)
	assert.InDelta(t, 8.5, got.AvgQualityScore, 0.001)
	assert.Equal(t, []string{"wiki"}, got.Sources)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Empty(t, got.ReviewedBy)
	assert.True(t, got.ReviewedAt.IsZero())
}

func TestBatchStore_GetBatch_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.BatchStore().GetBatch(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBatchStore_CreateRejectsClaimedItems(t *testing.T) {
	store := newTestStore(t)
	now := time.Now().UTC()
	seedPool(t, store, poolItem("i1", 9.0, "wiki", now), poolItem("i2", 8.0, "wiki", now))
	batches := store.BatchStore()

	require.NoError(t, batches.CreateBatch(context.Background(), pendingBatch("b1", "i1")))

	err := batches.CreateBatch(context.Background(), pendingBatch("b2", "i1", "i2"))
	assert.ErrorIs(t, err, domain.ErrItemClaimed)

	// The losing transaction persisted nothing.
	_, err = batches.GetBatch(context.Background(), "b2")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	unclaimed, err := store.ItemPool().FetchUnclaimed(context.Background(), 0, 10)
	require.NoError(t, err)
	require.Len(t, unclaimed, 1)
	assert.Equal(t, "i2", unclaimed[0].ID)
}

func TestBatchStore_ConcurrentCreatesStayDisjoint(t *testing.T) {
	store := newTestStore(t)
	seedPool(t, store, poolItem("shared", 9.0, "wiki", time.Now().UTC()))
	batches := store.BatchStore()

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			errs[n] = batches.CreateBatch(context.Background(), pendingBatch(fmt.Sprintf("b%d", n), "shared"))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		}
	}
	assert.Equal(t, 1, winners)
}

func TestBatchStore_ListByStatus(t *testing.T) {
	store := newTestStore(t)
	batches := store.BatchStore()

	older := pendingBatch("b-old", "i1")
	older.CreatedAt = time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, batches.CreateBatch(context.Background(), older))

	newer := pendingBatch("b-new", "i2")
	require.NoError(t, batches.CreateBatch(context.Background(), newer))

	pending, err := batches.ListByStatus(context.Background(), domain.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "b-new", pending[0].ID)
	assert.Equal(t, "b-old", pending[1].ID)

	approved, err := batches.ListByStatus(context.Background(), domain.StatusApproved)
	require.NoError(t, err)
	assert.Empty(t, approved)
}

func TestBatchStore_RecordReview(t *testing.T) {
	store := newTestStore(t)
	batches := store.BatchStore()
	require.NoError(t, batches.CreateBatch(context.Background(), pendingBatch("b1", "i1")))

	reviewedAt := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, batches.RecordReview(context.Background(), "b1",
		domain.StatusApproved, "reviewer", reviewedAt, "ok"))

	got, err := batches.GetBatch(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status)
	assert.Equal(t, "reviewer", got.ReviewedBy)
	assert.Equal(t, "ok", got.Notes)

	// Guard loses against a decided batch.
	err = batches.RecordReview(context.Background(), "b1",
		domain.StatusRejected, "other", reviewedAt, "")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// And reports missing batches distinctly.
	err = batches.RecordReview(context.Background(), "missing",
		domain.StatusApproved, "reviewer", reviewedAt, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBatchStore_FinalizeTransmission(t *testing.T) {
	store := newTestStore(t)
	batches := store.BatchStore()
	require.NoError(t, batches.CreateBatch(context.Background(), pendingBatch("b1", "i1")))
	require.NoError(t, batches.RecordReview(context.Background(), "b1",
		domain.StatusApproved, "reviewer", time.Now().UTC(), ""))

	record := &domain.TransmissionRecord{
		ID:           "t1",
		BatchID:      "b1",
		SentAt:       time.Now().UTC().Truncate(time.Second),
		SentBy:       "admin",
		ItemsCount:   1,
		SuccessCount: 1,
	}
	require.NoError(t, batches.FinalizeTransmission(context.Background(), record))

	got, err := batches.GetBatch(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSent, got.Status)

	// Second finalisation loses the guard; still one record.
	err = batches.FinalizeTransmission(context.Background(), record)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	records, err := store.HistoryStore().ListTransmissions(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "b1", records[0].BatchID)
	assert.Equal(t, "admin", records[0].SentBy)
}

func TestBatchStore_FinalizeTransmission_PendingBatch(t *testing.T) {
	store := newTestStore(t)
	batches := store.BatchStore()
	require.NoError(t, batches.CreateBatch(context.Background(), pendingBatch("b1", "i1")))

	err := batches.FinalizeTransmission(context.Background(), &domain.TransmissionRecord{
		ID: "t1", BatchID: "b1", SentAt: time.Now().UTC(), SentBy: "admin",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	got, err := batches.GetBatch(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, got.Status)
}
