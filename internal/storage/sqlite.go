// Package storage provides the data persistence layer for review sessions.
// Only the durable review state lives here: the override map and the
// bulk-accept set. Enriched rows and classification summaries are derived
// on every recompute and never stored.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/rowanfields/pricelens/internal/common"
	"github.com/rowanfields/pricelens/internal/model"
)

// SQLiteStore implements review-session persistence using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// SessionRecord is the stored identity of a review session.
type SessionRecord struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	ID        string
	Name      string
	Threshold float64
}

// NewSQLiteStore opens (creating if needed) the session database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateSession registers a new named review session.
func (s *SQLiteStore) CreateSession(ctx context.Context, name string, threshold float64) (*SessionRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	record := &SessionRecord{
		ID:        uuid.NewString(),
		Name:      name,
		Threshold: threshold,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, name, threshold, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		record.ID, record.Name, record.Threshold, record.CreatedAt, record.UpdatedAt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return nil, fmt.Errorf("%w: %s", common.ErrDuplicateSession, name)
		}
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return record, nil
}

// GetSession looks up a session by name.
func (s *SQLiteStore) GetSession(ctx context.Context, name string) (*SessionRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var record SessionRecord
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, threshold, created_at, updated_at FROM sessions WHERE name = ?`, name).
		Scan(&record.ID, &record.Name, &record.Threshold, &record.CreatedAt, &record.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", common.ErrSessionNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &record, nil
}

// ListSessions returns all sessions, most recently updated first.
func (s *SQLiteStore) ListSessions(ctx context.Context) ([]SessionRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, threshold, created_at, updated_at FROM sessions ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []SessionRecord
	for rows.Next() {
		var record SessionRecord
		if err := rows.Scan(&record.ID, &record.Name, &record.Threshold, &record.CreatedAt, &record.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// UpdateThreshold stores a new confidence threshold for a session.
func (s *SQLiteStore) UpdateThreshold(ctx context.Context, sessionID string, threshold float64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET threshold = ?, updated_at = ? WHERE id = ?`,
		threshold, time.Now().UTC(), sessionID)
	if err != nil {
		return fmt.Errorf("failed to update threshold: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", common.ErrSessionNotFound, sessionID)
	}
	return nil
}

// SaveOverride upserts a reviewer correction for one row. Callers are
// expected to have validated the override through the engine first; the
// store persists exactly what it is given.
func (s *SQLiteStore) SaveOverride(ctx context.Context, sessionID string, rowIndex int, ov model.RowOverride) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(sessionID, "sessionID"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO row_overrides (session_id, row_index, std_qty, promo_qty, std_price, promo_price, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(session_id, row_index) DO UPDATE SET
		   std_qty = excluded.std_qty,
		   promo_qty = excluded.promo_qty,
		   std_price = excluded.std_price,
		   promo_price = excluded.promo_price,
		   updated_at = excluded.updated_at`,
		sessionID, rowIndex, ov.StandardQty, ov.PromoQty, ov.StandardPrice, ov.PromoPrice, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save override: %w", err)
	}
	return nil
}

// DeleteOverride removes the correction for one row. Deleting a row that
// has no override is a no-op: override removal is an explicit user action
// and must always succeed.
func (s *SQLiteStore) DeleteOverride(ctx context.Context, sessionID string, rowIndex int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM row_overrides WHERE session_id = ? AND row_index = ?`, sessionID, rowIndex)
	if err != nil {
		return fmt.Errorf("failed to delete override: %w", err)
	}
	return nil
}

// GetOverrides loads the full override map for a session, keyed by the
// row's original index.
func (s *SQLiteStore) GetOverrides(ctx context.Context, sessionID string) (map[int]model.RowOverride, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT row_index, std_qty, promo_qty, std_price, promo_price
		 FROM row_overrides WHERE session_id = ?`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load overrides: %w", err)
	}
	defer func() { _ = rows.Close() }()

	overrides := make(map[int]model.RowOverride)
	for rows.Next() {
		var rowIndex int
		var stdQty, promoQty sql.NullInt64
		var ov model.RowOverride
		if err := rows.Scan(&rowIndex, &stdQty, &promoQty, &ov.StandardPrice, &ov.PromoPrice); err != nil {
			return nil, fmt.Errorf("failed to scan override: %w", err)
		}
		if stdQty.Valid {
			v := int(stdQty.Int64)
			ov.StandardQty = &v
		}
		if promoQty.Valid {
			v := int(promoQty.Int64)
			ov.PromoQty = &v
		}
		overrides[rowIndex] = ov
	}
	return overrides, rows.Err()
}

// AddAcceptedItem records a bulk-accepted item code for a session.
func (s *SQLiteStore) AddAcceptedItem(ctx context.Context, sessionID, itemCode string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(itemCode, "itemCode"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO accepted_items (session_id, item_code, accepted_at) VALUES (?, ?, ?)`,
		sessionID, itemCode, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to add accepted item: %w", err)
	}
	return nil
}

// RemoveAcceptedItem drops an item code from a session's bulk-accept set.
func (s *SQLiteStore) RemoveAcceptedItem(ctx context.Context, sessionID, itemCode string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM accepted_items WHERE session_id = ? AND item_code = ?`, sessionID, itemCode)
	if err != nil {
		return fmt.Errorf("failed to remove accepted item: %w", err)
	}
	return nil
}

// GetAcceptedItems loads a session's bulk-accepted item codes, sorted.
func (s *SQLiteStore) GetAcceptedItems(ctx context.Context, sessionID string) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT item_code FROM accepted_items WHERE session_id = ? ORDER BY item_code`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accepted items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan accepted item: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}
