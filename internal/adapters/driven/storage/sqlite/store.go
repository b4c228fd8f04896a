// Package sqlite provides the SQLite-backed storage adapter. A single
// Store owns the database and exposes the storage port interfaces
// through wrapper types so that claims, batches and history share one
// transaction boundary.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/pipedata/curator/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/pipedata/curator/internal/core/domain"
	"github.com/pipedata/curator/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to all
// storage port interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.curator/data/curator.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".curator", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "curator.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// BatchStore returns a BatchStore interface backed by this store.
func (s *Store) BatchStore() driven.BatchStore {
	return &batchStore{store: s}
}

// ItemPool returns an ItemPool interface backed by this store.
func (s *Store) ItemPool() driven.ItemPool {
	return &itemPool{store: s}
}

// HistoryStore returns a HistoryStore interface backed by this store.
func (s *Store) HistoryStore() driven.HistoryStore {
	return &historyStore{store: s}
}

// SaveItems inserts or updates pool items. This is the ingest point
// for the upstream collection pipeline and for tests.
func (s *Store) SaveItems(ctx context.Context, items []domain.Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO items (id, question, answer, quality_score, source, difficulty, tags, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			question = excluded.question,
			answer = excluded.answer,
			quality_score = excluded.quality_score,
			source = excluded.source,
			difficulty = excluded.difficulty,
			tags = excluded.tags
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		tagsJSON, err := json.Marshal(item.Tags)
		if err != nil {
			return fmt.Errorf("marshalling tags: %w", err)
		}
		createdAt := item.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		if _, err := stmt.ExecContext(ctx, item.ID, item.Question, item.Answer,
			item.QualityScore, item.Source, item.Difficulty, string(tagsJSON), createdAt); err != nil {
			return fmt.Errorf("saving item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// isUniqueViolation reports whether err is a SQLite unique-constraint
// failure. modernc.org/sqlite exposes no typed error for this.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// ==================== Batch Store ====================

// batchStore implements driven.BatchStore.
type batchStore struct {
	store *Store
}

var _ driven.BatchStore = (*batchStore)(nil)

// CreateBatch inserts the batch and claims its item IDs in one
// transaction. An already-claimed item fails the whole call with
// domain.ErrItemClaimed and persists nothing.
func (s *batchStore) CreateBatch(ctx context.Context, batch *domain.Batch) error {
	sourcesJSON, err := json.Marshal(batch.Sources)
	if err != nil {
		return fmt.Errorf("marshalling sources: %w", err)
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO batches (id, created_at, total_items, avg_quality_score, sources, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`, batch.ID, batch.CreatedAt, batch.TotalItems, batch.AvgQualityScore,
		string(sourcesJSON), string(batch.Status))
	if err != nil {
		return fmt.Errorf("inserting batch: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO item_claims (item_id, batch_id, position) VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing claim statement: %w", err)
	}
	defer stmt.Close()

	for i, itemID := range batch.ItemIDs {
		if _, err := stmt.ExecContext(ctx, itemID, batch.ID, i); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrItemClaimed
			}
			return fmt.Errorf("claiming item %s: %w", itemID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetBatch retrieves a batch by ID, including its claimed item IDs in
// frozen order.
func (s *batchStore) GetBatch(ctx context.Context, id string) (*domain.Batch, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, created_at, total_items, avg_quality_score, sources, status, reviewed_by, reviewed_at, notes
		FROM batches WHERE id = ?
	`, id)

	batch, err := scanBatch(row)
	if err != nil {
		return nil, err
	}

	itemIDs, err := s.batchItemIDs(ctx, batch.ID)
	if err != nil {
		return nil, err
	}
	batch.ItemIDs = itemIDs

	return batch, nil
}

// ListByStatus returns batches in the given status, newest first.
func (s *batchStore) ListByStatus(ctx context.Context, status domain.BatchStatus) ([]domain.Batch, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, created_at, total_items, avg_quality_score, sources, status, reviewed_by, reviewed_at, notes
		FROM batches WHERE status = ?
		ORDER BY created_at DESC, id
	`, string(status))
	if err != nil {
		return nil, fmt.Errorf("querying batches: %w", err)
	}
	defer rows.Close()

	var batches []domain.Batch //nolint:prealloc // size unknown from query
	for rows.Next() {
		batch, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		batches = append(batches, *batch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating batches: %w", err)
	}

	for i := range batches {
		itemIDs, err := s.batchItemIDs(ctx, batches[i].ID)
		if err != nil {
			return nil, err
		}
		batches[i].ItemIDs = itemIDs
	}

	return batches, nil
}

// RecordReview applies a review decision guarded by the current
// pending status. A lost guard distinguishes a missing batch from an
// already-decided one.
func (s *batchStore) RecordReview(
	ctx context.Context,
	id string,
	decision domain.BatchStatus,
	actor string,
	reviewedAt time.Time,
	notes string,
) error {
	result, err := s.store.db.ExecContext(ctx, `
		UPDATE batches SET status = ?, reviewed_by = ?, reviewed_at = ?, notes = ?
		WHERE id = ? AND status = ?
	`, string(decision), actor, reviewedAt, notes, id, string(domain.StatusPending))
	if err != nil {
		return fmt.Errorf("recording review: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking review result: %w", err)
	}
	if affected == 0 {
		return s.guardLoss(ctx, id)
	}
	return nil
}

// FinalizeTransmission flips the batch from approved to sent and
// inserts the transmission record in one transaction. The status guard
// plus the UNIQUE batch_id constraint make finalisation exactly-once.
func (s *batchStore) FinalizeTransmission(ctx context.Context, record *domain.TransmissionRecord) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	result, err := tx.ExecContext(ctx, `
		UPDATE batches SET status = ? WHERE id = ? AND status = ?
	`, string(domain.StatusSent), record.BatchID, string(domain.StatusApproved))
	if err != nil {
		return fmt.Errorf("updating batch status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking status update: %w", err)
	}
	if affected == 0 {
		return s.guardLoss(ctx, record.BatchID)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO transmission_records (id, batch_id, sent_at, sent_by, items_count, success_count, error_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.BatchID, record.SentAt, record.SentBy,
		record.ItemsCount, record.SuccessCount, record.ErrorCount)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrInvalidState
		}
		return fmt.Errorf("inserting transmission record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// guardLoss resolves a failed status-guarded update into ErrNotFound
// or ErrInvalidState.
func (s *batchStore) guardLoss(ctx context.Context, id string) error {
	var exists int
	err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM batches WHERE id = ?", id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking batch existence: %w", err)
	}
	if exists == 0 {
		return domain.ErrNotFound
	}
	return domain.ErrInvalidState
}

func (s *batchStore) batchItemIDs(ctx context.Context, batchID string) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT item_id FROM item_claims WHERE batch_id = ? ORDER BY position
	`, batchID)
	if err != nil {
		return nil, fmt.Errorf("querying claims: %w", err)
	}
	defer rows.Close()

	var itemIDs []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var itemID string
		if err := rows.Scan(&itemID); err != nil {
			return nil, fmt.Errorf("scanning claim: %w", err)
		}
		itemIDs = append(itemIDs, itemID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating claims: %w", err)
	}
	return itemIDs, nil
}

// scanner abstracts sql.Row and sql.Rows for scanBatch.
type scanner interface {
	Scan(dest ...any) error
}

func scanBatch(row scanner) (*domain.Batch, error) {
	var batch domain.Batch
	var status, sourcesJSON string
	var reviewedBy, notes sql.NullString
	var createdAt, reviewedAt sql.NullTime
	if err := row.Scan(&batch.ID, &createdAt, &batch.TotalItems, &batch.AvgQualityScore,
		&sourcesJSON, &status, &reviewedBy, &reviewedAt, &notes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning batch: %w", err)
	}

	if err := json.Unmarshal([]byte(sourcesJSON), &batch.Sources); err != nil {
		return nil, fmt.Errorf("unmarshaling sources: %w", err)
	}

	batch.Status = domain.BatchStatus(status)
	batch.ReviewedBy = reviewedBy.String
	batch.Notes = notes.String
	if createdAt.Valid {
		batch.CreatedAt = createdAt.Time
	}
	if reviewedAt.Valid {
		batch.ReviewedAt = reviewedAt.Time
	}

	return &batch, nil
}

// ==================== Item Pool ====================

// itemPool implements driven.ItemPool.
type itemPool struct {
	store *Store
}

var _ driven.ItemPool = (*itemPool)(nil)

// FetchUnclaimed returns unclaimed items at or above minQuality,
// ordered by score descending, then creation time descending, then ID.
func (p *itemPool) FetchUnclaimed(ctx context.Context, minQuality float64, limit int) ([]domain.Item, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := p.store.db.QueryContext(ctx, `
		SELECT id, question, answer, quality_score, source, difficulty, tags, created_at
		FROM items
		WHERE quality_score >= ?
		  AND id NOT IN (SELECT item_id FROM item_claims)
		ORDER BY quality_score DESC, created_at DESC, id
		LIMIT ?
	`, minQuality, limit)
	if err != nil {
		return nil, fmt.Errorf("querying unclaimed items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// GetItems retrieves items by ID, returned in request order. Unknown
// IDs are silently skipped.
func (p *itemPool) GetItems(ctx context.Context, ids []string) ([]domain.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := p.store.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, question, answer, quality_score, source, difficulty, tags, created_at
		FROM items WHERE id IN (%s)
	`, placeholders), args...)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Item, len(items))
	for i := range items {
		byID[items[i].ID] = items[i]
	}
	ordered := make([]domain.Item, 0, len(ids))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			ordered = append(ordered, item)
		}
	}
	return ordered, nil
}

func scanItems(rows *sql.Rows) ([]domain.Item, error) {
	var items []domain.Item //nolint:prealloc // size unknown from query
	for rows.Next() {
		var item domain.Item
		var tagsJSON string
		var createdAt sql.NullTime
		if err := rows.Scan(&item.ID, &item.Question, &item.Answer, &item.QualityScore,
			&item.Source, &item.Difficulty, &tagsJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		if err := json.Unmarshal([]byte(tagsJSON), &item.Tags); err != nil {
			return nil, fmt.Errorf("unmarshaling tags: %w", err)
		}
		if createdAt.Valid {
			item.CreatedAt = createdAt.Time
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return items, nil
}

// ==================== History Store ====================

// historyStore implements driven.HistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

// AppendAction records an audit entry and assigns its ID.
func (h *historyStore) AppendAction(ctx context.Context, action *domain.AdminAction) error {
	result, err := h.store.db.ExecContext(ctx, `
		INSERT INTO admin_actions (actor_id, kind, batch_id, notes, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, action.ActorID, string(action.Kind), action.BatchID, action.Notes, action.CreatedAt)
	if err != nil {
		return fmt.Errorf("appending admin action: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting action ID: %w", err)
	}
	action.ID = id
	return nil
}

// ListActions returns the audit entries for a batch, newest first.
func (h *historyStore) ListActions(ctx context.Context, batchID string, limit int) ([]domain.AdminAction, error) {
	rows, err := h.store.db.QueryContext(ctx, `
		SELECT id, actor_id, kind, batch_id, notes, created_at
		FROM admin_actions WHERE batch_id = ?
		ORDER BY id DESC LIMIT ?
	`, batchID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying admin actions: %w", err)
	}
	defer rows.Close()

	var actions []domain.AdminAction //nolint:prealloc // size unknown from query
	for rows.Next() {
		var action domain.AdminAction
		var kind string
		var notes sql.NullString
		var createdAt sql.NullTime
		if err := rows.Scan(&action.ID, &action.ActorID, &kind, &action.BatchID, &notes, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning admin action: %w", err)
		}
		action.Kind = domain.ActionKind(kind)
		action.Notes = notes.String
		if createdAt.Valid {
			action.CreatedAt = createdAt.Time
		}
		actions = append(actions, action)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating admin actions: %w", err)
	}
	return actions, nil
}

// ListTransmissions returns transmission records, newest first.
func (h *historyStore) ListTransmissions(ctx context.Context, limit int) ([]domain.TransmissionRecord, error) {
	rows, err := h.store.db.QueryContext(ctx, `
		SELECT id, batch_id, sent_at, sent_by, items_count, success_count, error_count
		FROM transmission_records
		ORDER BY sent_at DESC, id LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying transmission records: %w", err)
	}
	defer rows.Close()

	var records []domain.TransmissionRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var record domain.TransmissionRecord
		var sentAt sql.NullTime
		if err := rows.Scan(&record.ID, &record.BatchID, &sentAt, &record.SentBy,
			&record.ItemsCount, &record.SuccessCount, &record.ErrorCount); err != nil {
			return nil, fmt.Errorf("scanning transmission record: %w", err)
		}
		if sentAt.Valid {
			record.SentAt = sentAt.Time
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transmission records: %w", err)
	}
	return records, nil
}

// BatchStats aggregates batch counts and the item-weighted overall
// average quality.
func (h *historyStore) BatchStats(ctx context.Context) (*domain.BatchStats, error) {
	stats := &domain.BatchStats{}

	row := h.store.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(total_items), 0),
		       COALESCE(SUM(total_items * avg_quality_score), 0)
		FROM batches
	`)
	var weightedQuality float64
	if err := row.Scan(&stats.TotalBatches, &stats.TotalItems, &weightedQuality); err != nil {
		return nil, fmt.Errorf("scanning batch totals: %w", err)
	}
	if stats.TotalItems > 0 {
		stats.OverallAvgQuality = weightedQuality / float64(stats.TotalItems)
	}

	rows, err := h.store.db.QueryContext(ctx, `
		SELECT status, COUNT(*) FROM batches GROUP BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("querying status counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scanning status count: %w", err)
		}
		switch domain.BatchStatus(status) {
		case domain.StatusPending:
			stats.Pending = count
		case domain.StatusApproved:
			stats.Approved = count
		case domain.StatusRejected:
			stats.Rejected = count
		case domain.StatusSent:
			stats.Sent = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating status counts: %w", err)
	}

	return stats, nil
}

// TransmissionStats aggregates transmission totals.
func (h *historyStore) TransmissionStats(ctx context.Context) (*domain.TransmissionStats, error) {
	row := h.store.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(items_count), 0),
		       COALESCE(SUM(success_count), 0),
		       COALESCE(SUM(error_count), 0)
		FROM transmission_records
	`)

	stats := &domain.TransmissionStats{}
	if err := row.Scan(&stats.TotalTransmissions, &stats.TotalItemsSent,
		&stats.TotalSuccess, &stats.TotalErrors); err != nil {
		return nil, fmt.Errorf("scanning transmission totals: %w", err)
	}
	return stats, nil
}
