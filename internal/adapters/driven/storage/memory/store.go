// Package memory provides in-memory implementations of the storage
// ports. It mirrors the sqlite store's wrapper layout and is used by
// service and adapter tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pipedata/curator/internal/core/domain"
	"github.com/pipedata/curator/internal/core/ports/driven"
)

// Store holds all curation state in memory behind one mutex so that
// claims, batches and transmission records stay mutually consistent,
// like the single SQLite database they stand in for.
type Store struct {
	mu            sync.RWMutex
	items         []domain.Item
	batches       map[string]domain.Batch
	claims        map[string]string // item ID -> batch ID
	transmissions []domain.TransmissionRecord
	actions       []domain.AdminAction
	nextActionID  int64
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		batches: make(map[string]domain.Batch),
		claims:  make(map[string]string),
	}
}

// BatchStore returns a BatchStore backed by this store.
func (s *Store) BatchStore() driven.BatchStore {
	return &batchStore{store: s}
}

// ItemPool returns an ItemPool backed by this store.
func (s *Store) ItemPool() driven.ItemPool {
	return &itemPool{store: s}
}

// HistoryStore returns a HistoryStore backed by this store.
func (s *Store) HistoryStore() driven.HistoryStore {
	return &historyStore{store: s}
}

// AddItems seeds pool items. Test helper.
func (s *Store) AddItems(items ...domain.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, items...)
}

// ==================== Batch Store ====================

type batchStore struct {
	store *Store
}

var _ driven.BatchStore = (*batchStore)(nil)

// CreateBatch atomically claims the batch's item IDs and stores the
// batch. Any already-claimed item fails the whole call.
func (s *batchStore) CreateBatch(_ context.Context, batch *domain.Batch) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for _, itemID := range batch.ItemIDs {
		if _, claimed := s.store.claims[itemID]; claimed {
			return domain.ErrItemClaimed
		}
	}
	for _, itemID := range batch.ItemIDs {
		s.store.claims[itemID] = batch.ID
	}
	s.store.batches[batch.ID] = copyBatch(batch)
	return nil
}

func (s *batchStore) GetBatch(_ context.Context, id string) (*domain.Batch, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	batch, ok := s.store.batches[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := copyBatch(&batch)
	return &out, nil
}

func (s *batchStore) ListByStatus(_ context.Context, status domain.BatchStatus) ([]domain.Batch, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	var result []domain.Batch
	for id := range s.store.batches {
		batch := s.store.batches[id]
		if batch.Status == status {
			result = append(result, copyBatch(&batch))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *batchStore) RecordReview(
	_ context.Context,
	id string,
	decision domain.BatchStatus,
	actor string,
	reviewedAt time.Time,
	notes string,
) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	batch, ok := s.store.batches[id]
	if !ok {
		return domain.ErrNotFound
	}
	if batch.Status != domain.StatusPending {
		return domain.ErrInvalidState
	}

	batch.Status = decision
	batch.ReviewedBy = actor
	batch.ReviewedAt = reviewedAt
	batch.Notes = notes
	s.store.batches[id] = batch
	return nil
}

func (s *batchStore) FinalizeTransmission(_ context.Context, record *domain.TransmissionRecord) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	batch, ok := s.store.batches[record.BatchID]
	if !ok {
		return domain.ErrNotFound
	}
	if batch.Status != domain.StatusApproved {
		return domain.ErrInvalidState
	}

	batch.Status = domain.StatusSent
	s.store.batches[record.BatchID] = batch
	s.store.transmissions = append(s.store.transmissions, *record)
	return nil
}

func copyBatch(batch *domain.Batch) domain.Batch {
	out := *batch
	out.ItemIDs = append([]string(nil), batch.ItemIDs...)
	out.Sources = append([]string(nil), batch.Sources...)
	return out
}

// ==================== Item Pool ====================

type itemPool struct {
	store *Store
}

var _ driven.ItemPool = (*itemPool)(nil)

// FetchUnclaimed returns unclaimed items at or above minQuality,
// ordered by score descending, then creation time descending, then ID.
func (p *itemPool) FetchUnclaimed(_ context.Context, minQuality float64, limit int) ([]domain.Item, error) {
	p.store.mu.RLock()
	defer p.store.mu.RUnlock()

	var eligible []domain.Item
	for i := range p.store.items {
		item := p.store.items[i]
		if item.QualityScore < minQuality {
			continue
		}
		if _, claimed := p.store.claims[item.ID]; claimed {
			continue
		}
		eligible = append(eligible, item)
	}

	sort.Slice(eligible, func(i, j int) bool {
		if eligible[i].QualityScore != eligible[j].QualityScore {
			return eligible[i].QualityScore > eligible[j].QualityScore
		}
		if !eligible[i].CreatedAt.Equal(eligible[j].CreatedAt) {
			return eligible[i].CreatedAt.After(eligible[j].CreatedAt)
		}
		return eligible[i].ID < eligible[j].ID
	})

	if limit > 0 && len(eligible) > limit {
		eligible = eligible[:limit]
	}
	return eligible, nil
}

// GetItems returns items in the order the IDs were requested.
func (p *itemPool) GetItems(_ context.Context, ids []string) ([]domain.Item, error) {
	p.store.mu.RLock()
	defer p.store.mu.RUnlock()

	byID := make(map[string]domain.Item, len(p.store.items))
	for i := range p.store.items {
		byID[p.store.items[i].ID] = p.store.items[i]
	}

	result := make([]domain.Item, 0, len(ids))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			result = append(result, item)
		}
	}
	return result, nil
}

// ==================== History Store ====================

type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

func (h *historyStore) AppendAction(_ context.Context, action *domain.AdminAction) error {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	h.store.nextActionID++
	entry := *action
	entry.ID = h.store.nextActionID
	h.store.actions = append(h.store.actions, entry)
	return nil
}

func (h *historyStore) ListActions(_ context.Context, batchID string, limit int) ([]domain.AdminAction, error) {
	h.store.mu.RLock()
	defer h.store.mu.RUnlock()

	var result []domain.AdminAction
	for i := len(h.store.actions) - 1; i >= 0 && len(result) < limit; i-- {
		if h.store.actions[i].BatchID == batchID {
			result = append(result, h.store.actions[i])
		}
	}
	return result, nil
}

func (h *historyStore) ListTransmissions(_ context.Context, limit int) ([]domain.TransmissionRecord, error) {
	h.store.mu.RLock()
	defer h.store.mu.RUnlock()

	records := append([]domain.TransmissionRecord(nil), h.store.transmissions...)
	sort.Slice(records, func(i, j int) bool {
		return records[i].SentAt.After(records[j].SentAt)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (h *historyStore) BatchStats(_ context.Context) (*domain.BatchStats, error) {
	h.store.mu.RLock()
	defer h.store.mu.RUnlock()

	stats := &domain.BatchStats{}
	var weightedQuality float64
	for id := range h.store.batches {
		batch := h.store.batches[id]
		stats.TotalBatches++
		stats.TotalItems += batch.TotalItems
		weightedQuality += float64(batch.TotalItems) * batch.AvgQualityScore
		switch batch.Status {
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusApproved:
			stats.Approved++
		case domain.StatusRejected:
			stats.Rejected++
		case domain.StatusSent:
			stats.Sent++
		}
	}
	if stats.TotalItems > 0 {
		stats.OverallAvgQuality = weightedQuality / float64(stats.TotalItems)
	}
	return stats, nil
}

func (h *historyStore) TransmissionStats(_ context.Context) (*domain.TransmissionStats, error) {
	h.store.mu.RLock()
	defer h.store.mu.RUnlock()

	stats := &domain.TransmissionStats{}
	for i := range h.store.transmissions {
		record := h.store.transmissions[i]
		stats.TotalTransmissions++
		stats.TotalItemsSent += record.ItemsCount
		stats.TotalSuccess += record.SuccessCount
		stats.TotalErrors += record.ErrorCount
	}
	return stats, nil
}
