package mcp

import (
	"context"

	"github.com/pipedata/curator/internal/core/domain"
)

// mockBatchService is a mock implementation of driving.BatchService.
type mockBatchService struct {
	batches []domain.Batch
	items   []domain.Item
	err     error
}

func (m *mockBatchService) Create(_ context.Context, _ float64, _ int, _ string) (*domain.Batch, error) {
	return nil, m.err
}

func (m *mockBatchService) ListPending(_ context.Context) ([]domain.Batch, error) {
	return m.batches, m.err
}

func (m *mockBatchService) Items(_ context.Context, _ string) ([]domain.Item, error) {
	return m.items, m.err
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	records  []domain.TransmissionRecord
	actions  []domain.AdminAction
	snapshot *domain.StatsSnapshot
	err      error
}

func (m *mockHistoryService) Transmissions(_ context.Context, _ int) ([]domain.TransmissionRecord, error) {
	return m.records, m.err
}

func (m *mockHistoryService) Actions(_ context.Context, _ string, _ int) ([]domain.AdminAction, error) {
	return m.actions, m.err
}

func (m *mockHistoryService) Stats(_ context.Context) (*domain.StatsSnapshot, error) {
	return m.snapshot, m.err
}
