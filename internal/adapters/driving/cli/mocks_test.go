package cli

import (
	"context"

	"github.com/pipedata/curator/internal/core/domain"
)

// mockBatchService is a mock implementation of driving.BatchService.
type mockBatchService struct {
	batch   *domain.Batch
	batches []domain.Batch
	items   []domain.Item
	err     error

	gotMinQuality float64
	gotMaxItems   int
	gotActor      string
}

func (m *mockBatchService) Create(_ context.Context, minQuality float64, maxItems int, actor string) (*domain.Batch, error) {
	m.gotMinQuality = minQuality
	m.gotMaxItems = maxItems
	m.gotActor = actor
	return m.batch, m.err
}

func (m *mockBatchService) ListPending(_ context.Context) ([]domain.Batch, error) {
	return m.batches, m.err
}

func (m *mockBatchService) Items(_ context.Context, _ string) ([]domain.Item, error) {
	return m.items, m.err
}

// mockReviewService is a mock implementation of driving.ReviewService.
type mockReviewService struct {
	batch *domain.Batch
	err   error

	gotBatchID string
	gotAction  string
	gotActor   string
	gotNotes   string
}

func (m *mockReviewService) Review(_ context.Context, batchID, action, actor, notes string) (*domain.Batch, error) {
	m.gotBatchID = batchID
	m.gotAction = action
	m.gotActor = actor
	m.gotNotes = notes
	return m.batch, m.err
}

// mockTransmitService is a mock implementation of driving.TransmitService.
type mockTransmitService struct {
	result *domain.SendResult
	err    error

	gotBatchID string
	gotActor   string
}

func (m *mockTransmitService) Send(_ context.Context, batchID, actor string) (*domain.SendResult, error) {
	m.gotBatchID = batchID
	m.gotActor = actor
	return m.result, m.err
}

// mockExportService is a mock implementation of driving.ExportService.
type mockExportService struct {
	artifact *domain.ExportArtifact
	err      error

	gotBatchID string
	gotFormat  domain.ExportFormat
}

func (m *mockExportService) Export(_ context.Context, batchID string, format domain.ExportFormat, _ string) (*domain.ExportArtifact, error) {
	m.gotBatchID = batchID
	m.gotFormat = format
	return m.artifact, m.err
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
