package services

import (
	"context"
	"fmt"
	"time"

	"github.com/pipedata/curator/internal/core/domain"
	"github.com/pipedata/curator/internal/core/ports/driven"
	"github.com/pipedata/curator/internal/core/ports/driving"
)

const (
	// DefaultHistoryLimit applies when the caller passes limit <= 0.
	DefaultHistoryLimit = 50

	// MaxHistoryLimit caps a single history read.
	MaxHistoryLimit = 500
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService exposes transmission history, the audit log and
// aggregate statistics as read-only projections.
type HistoryService struct {
	history driven.HistoryStore
}

// NewHistoryService creates a new history service.
func NewHistoryService(history driven.HistoryStore) *HistoryService {
	return &HistoryService{history: history}
}

// Transmissions returns TransmissionRecords newest first.
func (s *HistoryService) Transmissions(ctx context.Context, limit int) ([]domain.TransmissionRecord, error) {
	return s.history.ListTransmissions(ctx, clampLimit(limit))
}

// Actions returns the audit log for one batch, newest first.
func (s *HistoryService) Actions(ctx context.Context, batchID string, limit int) ([]domain.AdminAction, error) {
	if batchID == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.history.ListActions(ctx, batchID, clampLimit(limit))
}

// Stats returns a point-in-time snapshot of batch and transmission
// aggregates.
func (s *HistoryService) Stats(ctx context.Context) (*domain.StatsSnapshot, error) {
	batchStats, err := s.history.BatchStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("batch stats: %w", err)
	}
	txStats, err := s.history.TransmissionStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("transmission stats: %w", err)
	}
	return &domain.StatsSnapshot{
		Batches:       *batchStats,
		Transmissions: *txStats,
		GeneratedAt:   time.Now().UTC(),
	}, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		return MaxHistoryLimit
	}
	return limit
}
