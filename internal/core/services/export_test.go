package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipedata/curator/internal/adapters/driven/storage/memory"
	"github.com/pipedata/curator/internal/core/domain"
)

// captureSink records the last artifact written.
type captureSink struct {
	name    string
	content []byte
}

func (s *captureSink) Write(_ context.Context, name string, content []byte) (string, error) {
	s.name = name
	s.content = content
	return "/exports/" + name, nil
}

func newTestExporter(store *memory.Store, sink *captureSink) *Exporter {
	e := NewExporter(store.BatchStore(), store.ItemPool(), sink, store.HistoryStore())
	e.now = func() time.Time {
		return time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	}
	return e
}

func TestExporter_JSON(t *testing.T) {
	store := memory.NewStore()
	batch := createPendingBatch(t, store)
	sink := &captureSink{}
	svc := newTestExporter(store, sink)

	artifact, err := svc.Export(context.Background(), batch.ID, domain.FormatJSON, "admin")
	require.NoError(t, err)

	assert.Equal(t, batch.ID, artifact.BatchID)
	assert.Equal(t, domain.FormatJSON, artifact.Format)
	assert.Equal(t, "/exports/batch_"+batch.ID+"_20260302_093000.json", artifact.Path)
	assert.Equal(t, len(sink.content), artifact.Size)

	var payload struct {
		BatchID    string  `json:"batch_id"`
		TotalItems int     `json:"total_items"`
		AvgQuality float64 `json:"avg_quality_score"`
		Items      []struct {
			ID       string `json:"id"`
			Question string `json:"question"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(sink.content, &payload))
	assert.Equal(t, batch.ID, payload.BatchID)
	assert.Equal(t, 2, payload.TotalItems)
	require.Len(t, payload.Items, 2)
	assert.Equal(t, "item-1", payload.Items[0].ID)
}

func TestExporter_CSV(t *testing.T) {
	store := memory.NewStore()
	batch := createPendingBatch(t, store)
	sink := &captureSink{}
	svc := newTestExporter(store, sink)

	_, err := svc.Export(context.Background(), batch.ID, domain.FormatCSV, "admin")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(sink.content), "\n"), "\n")
	require.Len(t, lines, 3) // header + 2 items
	assert.Equal(t, "id,question,answer,quality_score,source,difficulty,tags,created_at", lines[0])
	assert.Contains(t, lines[1], "item-1")
	assert.Contains(t, lines[1], "9.00")
}

func TestExporter_Table(t *testing.T) {
	store := memory.NewStore()
	batch := createPendingBatch(t, store)
	sink := &captureSink{}
	svc := newTestExporter(store, sink)

	_, err := svc.Export(context.Background(), batch.ID, domain.FormatTable, "admin")
	require.NoError(t, err)

	text := string(sink.content)
	assert.Contains(t, text, "Batch "+batch.ID)
	assert.Contains(t, text, "Total items:     2")
	assert.Contains(t, text, "Average quality: 8.50")
	assert.Contains(t, text, "forum")
	assert.Contains(t, text, "wiki")
	assert.Contains(t, text, "item-1")
}

func TestExporter_Deterministic(t *testing.T) {
	store := memory.NewStore()
	batch := createPendingBatch(t, store)
	sink := &captureSink{}
	svc := newTestExporter(store, sink)

	_, err := svc.Export(context.Background(), batch.ID, domain.FormatJSON, "admin")
	require.NoError(t, err)
	first := append([]byte(nil), sink.content...)

	_, err = svc.Export(context.Background(), batch.ID, domain.FormatJSON, "admin")
	require.NoError(t, err)

	// Artifact content carries no timestamps; re-export is identical.
	assert.Equal(t, first, sink.content)
}

func TestExporter_DoesNotChangeStatus(t *testing.T) {
	store := memory.NewStore()
	batch := createPendingBatch(t, store)
	sink := &captureSink{}
	svc := newTestExporter(store, sink)

	_, err := svc.Export(context.Background(), batch.ID, domain.FormatJSON, "admin")
	require.NoError(t, err)

	after, err := store.BatchStore().GetBatch(context.Background(), batch.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, after.Status)
}

func TestExporter_UnknownFormat(t *testing.T) {
	store := memory.NewStore()
	batch := createPendingBatch(t, store)
	svc := newTestExporter(store, &captureSink{})

	_, err := svc.Export(context.Background(), batch.ID, domain.ExportFormat("xlsx"), "admin")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExporter_BatchNotFound(t *testing.T) {
	store := memory.NewStore()
	svc := newTestExporter(store, &captureSink{})

	_, err := svc.Export(context.Background(), "no-such-batch", domain.FormatJSON, "admin")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExporter_AppendsAuditAction(t *testing.T) {
	store := memory.NewStore()
	batch := createPendingBatch(t, store)
	svc := newTestExporter(store, &captureSink{})

	_, err := svc.Export(context.Background(), batch.ID, domain.FormatCSV, "admin")
	require.NoError(t, err)

	actions, err := store.HistoryStore().ListActions(context.Background(), batch.ID, 10)
	require.NoError(t, err)
	require.NotEmpty(t, actions)
	assert.Equal(t, domain.ActionExport, actions[0].Kind)
	assert.Contains(t, actions[0].Notes, "format=csv")
}
