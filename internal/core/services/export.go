package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pipedata/curator/internal/core/domain"
	"github.com/pipedata/curator/internal/core/ports/driven"
	"github.com/pipedata/curator/internal/core/ports/driving"
	"github.com/pipedata/curator/internal/logger"
)

// Ensure Exporter implements the interface.
var _ driving.ExportService = (*Exporter)(nil)

// Exporter serialises a batch's frozen item set for offline
// inspection. Export never changes batch state, and artifact content
// carries no timestamps, so re-exporting an unmodified batch yields
// byte-identical output. The export time appears only in the
// artifact filename.
type Exporter struct {
	batchStore driven.BatchStore
	pool       driven.ItemPool
	sink       driven.ExportSink
	history    driven.HistoryStore

	// now stamps artifact filenames; swappable in tests.
	now func() time.Time
}

// NewExporter creates a new exporter.
func NewExporter(
	batchStore driven.BatchStore,
	pool driven.ItemPool,
	sink driven.ExportSink,
	history driven.HistoryStore,
) *Exporter {
	return &Exporter{
		batchStore: batchStore,
		pool:       pool,
		sink:       sink,
		history:    history,
		now:        time.Now,
	}
}

// Export serialises the batch in the given format and writes the
// artifact to the sink. Legal at any batch status.
func (e *Exporter) Export(
	ctx context.Context,
	batchID string,
	format domain.ExportFormat,
	actor string,
) (*domain.ExportArtifact, error) {
	if actor == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := domain.ParseExportFormat(string(format)); err != nil {
		return nil, fmt.Errorf("%w: unknown export format %q", domain.ErrInvalidInput, format)
	}

	batch, err := e.batchStore.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	items, err := e.pool.GetItems(ctx, batch.ItemIDs)
	if err != nil {
		return nil, fmt.Errorf("get batch items: %w", err)
	}

	var content []byte
	switch format {
	case domain.FormatJSON:
		content, err = renderJSON(batch, items)
	case domain.FormatCSV:
		content, err = renderCSV(items)
	case domain.FormatTable:
		content = renderTable(batch, items)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s export: %w", format, err)
	}

	name := fmt.Sprintf("batch_%s_%s.%s",
		batch.ID, e.now().UTC().Format("20060102_150405"), format.Extension())

	path, err := e.sink.Write(ctx, name, content)
	if err != nil {
		return nil, err
	}

	logger.Info("Exported batch %s as %s to %s (%d bytes)", batchID, format, path, len(content))

	e.appendAction(ctx, actor, batchID, fmt.Sprintf("format=%s artifact=%s", format, path))

	return &domain.ExportArtifact{
		BatchID: batch.ID,
		Format:  format,
		Path:    path,
		Size:    len(content),
	}, nil
}

// exportPayload is the JSON artifact shape.
type exportPayload struct {
	BatchID         string       `json:"batch_id"`
	TotalItems      int          `json:"total_items"`
	AvgQualityScore float64      `json:"avg_quality_score"`
	Sources         []string     `json:"sources"`
	Items           []exportItem `json:"items"`
}

type exportItem struct {
	ID           string   `json:"id"`
	Question     string   `json:"question"`
	Answer       string   `json:"answer"`
	QualityScore float64  `json:"quality_score"`
	Source       string   `json:"source"`
	Difficulty   string   `json:"difficulty,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	CreatedAt    string   `json:"created_at"`
}

func renderJSON(batch *domain.Batch, items []domain.Item) ([]byte, error) {
	payload := exportPayload{
		BatchID:         batch.ID,
		TotalItems:      batch.TotalItems,
		AvgQualityScore: batch.AvgQualityScore,
		Sources:         batch.Sources,
		Items:           make([]exportItem, len(items)),
	}
	for i := range items {
		payload.Items[i] = exportItem{
			ID:           items[i].ID,
			Question:     items[i].Question,
			Answer:       items[i].Answer,
			QualityScore: items[i].QualityScore,
			Source:       items[i].Source,
			Difficulty:   items[i].Difficulty,
			Tags:         items[i].Tags,
			CreatedAt:    items[i].CreatedAt.UTC().Format(time.RFC3339),
		}
	}
	return json.MarshalIndent(payload, "", "  ")
}

func renderCSV(items []domain.Item) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)

	header := []string{"id", "question", "answer", "quality_score", "source", "difficulty", "tags", "created_at"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for i := range items {
		row := []string{
			items[i].ID,
			items[i].Question,
			items[i].Answer,
			strconv.FormatFloat(items[i].QualityScore, 'f', 2, 64),
			items[i].Source,
			items[i].Difficulty,
			strings.Join(items[i].Tags, ", "),
			items[i].CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderTable produces the human-readable format: a summary section
// (item count, average quality, source breakdown) followed by
// per-item rows.
func renderTable(batch *domain.Batch, items []domain.Item) []byte {
	buf := new(bytes.Buffer)

	fmt.Fprintf(buf, "Batch %s\n", batch.ID)
	fmt.Fprintf(buf, "Status: %s\n\n", batch.Status)
	fmt.Fprintf(buf, "Summary\n")
	fmt.Fprintf(buf, "  Total items:     %d\n", batch.TotalItems)
	fmt.Fprintf(buf, "  Average quality: %.2f\n", batch.AvgQualityScore)
	fmt.Fprintf(buf, "  Sources:\n")

	counts := make(map[string]int)
	for i := range items {
		counts[items[i].Source]++
	}
	for _, source := range batch.Sources {
		fmt.Fprintf(buf, "    %-20s %d\n", source, counts[source])
	}

	fmt.Fprintf(buf, "\n%-36s  %-6s  %-16s  %s\n", "ID", "SCORE", "SOURCE", "QUESTION")
	for i := range items {
		fmt.Fprintf(buf, "%-36s  %6.2f  %-16s  %s\n",
			items[i].ID, items[i].QualityScore, items[i].Source, truncate(items[i].Question, 60))
	}

	return buf.Bytes()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func (e *Exporter) appendAction(ctx context.Context, actor, batchID, notes string) {
	action := &domain.AdminAction{
		ActorID:   actor,
		Kind:      domain.ActionExport,
		BatchID:   batchID,
		Notes:     notes,
		CreatedAt: time.Now().UTC(),
	}
	if err := e.history.AppendAction(ctx, action); err != nil {
		logger.Warn("Failed to append admin action for batch %s: %v", batchID, err)
	}
}
