package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sentra/phishing-api/internal/domain"

	_ "modernc.org/sqlite" // SQLite driver
)

const schema = `
PRAGMA journal_mode = WAL;

CREATE TABLE IF NOT EXISTS analyses (
	id           TEXT PRIMARY KEY,
	text         TEXT NOT NULL,
	url          TEXT NOT NULL,
	status       TEXT NOT NULL,
	risk_score   INTEGER NOT NULL,
	raw_score    INTEGER NOT NULL,
	indicators   TEXT NOT NULL, -- JSON array of labels
	signals      TEXT NOT NULL, -- JSON array of signal objects
	explanation  TEXT NOT NULL,
	processed_at INTEGER NOT NULL -- unix nanoseconds, UTC
);

CREATE INDEX IF NOT EXISTS idx_analyses_status_time
	ON analyses (status, processed_at);
CREATE INDEX IF NOT EXISTS idx_analyses_time
	ON analyses (processed_at);

CREATE TABLE IF NOT EXISTS webhooks (
	id              TEXT PRIMARY KEY,
	url             TEXT NOT NULL,
	trigger_status  TEXT NOT NULL,
	created_at      INTEGER NOT NULL,
	active          INTEGER NOT NULL
);
`

// SQLite is a Store backed by a single-file SQLite database.
// Indicator and signal slices are stored as JSON columns; timestamps are
// stored as unix nanoseconds so range queries stay simple integer
// comparisons.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// NewSQLite opens (creating if necessary) the database at path and applies
// the schema. The parent directory is created if it does not exist.
func NewSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database handle.
func (s *SQLite) Close() error { return s.db.Close() }

// ─── Analyses ─────────────────────────────────────────────────────────────────

// SaveAnalysis persists an analysis record.
// Returns ErrDuplicateAnalysis if the ID already exists.
func (s *SQLite) SaveAnalysis(a *domain.Analysis) error {
	indicators, err := json.Marshal(a.Indicators)
	if err != nil {
		return fmt.Errorf("encode indicators: %w", err)
	}
	signals, err := json.Marshal(a.Signals)
	if err != nil {
		return fmt.Errorf("encode signals: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var exists int
	if err := tx.QueryRow(`SELECT COUNT(1) FROM analyses WHERE id = ?`, a.ID).Scan(&exists); err != nil {
		return fmt.Errorf("check duplicate: %w", err)
	}
	if exists > 0 {
		return ErrDuplicateAnalysis
	}

	_, err = tx.Exec(`
		INSERT INTO analyses
			(id, text, url, status, risk_score, raw_score, indicators, signals, explanation, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Text, a.URL, a.Status, a.RiskScore, a.RawScore,
		string(indicators), string(signals), a.Explanation, a.ProcessedAt.UTC().UnixNano())
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}

	return tx.Commit()
}

// GetAnalysis retrieves a single analysis by ID.
func (s *SQLite) GetAnalysis(id string) (*domain.Analysis, bool) {
	row := s.db.QueryRow(`
		SELECT id, text, url, status, risk_score, raw_score, indicators, signals, explanation, processed_at
		FROM analyses WHERE id = ?`, id)

	a, err := scanAnalysis(row)
	if err != nil {
		return nil, false
	}
	return a, true
}

// ListAnalyses returns every analysis processed at or after `since`.
func (s *SQLite) ListAnalyses(since time.Time) ([]*domain.Analysis, error) {
	return s.queryAnalyses(`
		SELECT id, text, url, status, risk_score, raw_score, indicators, signals, explanation, processed_at
		FROM analyses WHERE processed_at >= ?`, since.UTC().UnixNano())
}

// ListAnalysesByStatus returns analyses with the given status processed at or
// after `since`.
func (s *SQLite) ListAnalysesByStatus(status string, since time.Time) ([]*domain.Analysis, error) {
	return s.queryAnalyses(`
		SELECT id, text, url, status, risk_score, raw_score, indicators, signals, explanation, processed_at
		FROM analyses WHERE status = ? AND processed_at >= ?`, status, since.UTC().UnixNano())
}

func (s *SQLite) queryAnalyses(query string, args ...any) ([]*domain.Analysis, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	var result []*domain.Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(sc scanner) (*domain.Analysis, error) {
	var (
		a                   domain.Analysis
		indicators, sigs    string
		processedAtUnixNano int64
	)
	err := sc.Scan(&a.ID, &a.Text, &a.URL, &a.Status, &a.RiskScore, &a.RawScore,
		&indicators, &sigs, &a.Explanation, &processedAtUnixNano)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(indicators), &a.Indicators); err != nil {
		return nil, fmt.Errorf("decode indicators: %w", err)
	}
	if err := json.Unmarshal([]byte(sigs), &a.Signals); err != nil {
		return nil, fmt.Errorf("decode signals: %w", err)
	}
	a.ProcessedAt = time.Unix(0, processedAtUnixNano).UTC()
	return &a, nil
}

// ─── Webhooks ─────────────────────────────────────────────────────────────────

// SaveWebhook upserts a webhook configuration.
func (s *SQLite) SaveWebhook(wh *domain.WebhookConfig) error {
	active := 0
	if wh.Active {
		active = 1
	}
	_, err := s.db.Exec(`
		INSERT INTO webhooks (id, url, trigger_status, created_at, active)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			url = excluded.url,
			trigger_status = excluded.trigger_status,
			active = excluded.active`,
		wh.ID, wh.URL, wh.Trigger, wh.CreatedAt.UTC().UnixNano(), active)
	if err != nil {
		return fmt.Errorf("save webhook: %w", err)
	}
	return nil
}

// DeleteWebhook removes a webhook by ID. Returns false if not found.
func (s *SQLite) DeleteWebhook(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM webhooks WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete webhook: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListActiveWebhooks returns all webhooks that are currently active.
func (s *SQLite) ListActiveWebhooks() ([]*domain.WebhookConfig, error) {
	rows, err := s.db.Query(`
		SELECT id, url, trigger_status, created_at, active
		FROM webhooks WHERE active = 1`)
	if err != nil {
		return nil, fmt.Errorf("query webhooks: %w", err)
	}
	defer rows.Close()

	var result []*domain.WebhookConfig
	for rows.Next() {
		var (
			wh             domain.WebhookConfig
			createdAtNanos int64
			active         int
		)
		if err := rows.Scan(&wh.ID, &wh.URL, &wh.Trigger, &createdAtNanos, &active); err != nil {
			return nil, fmt.Errorf("scan webhook: %w", err)
		}
		wh.CreatedAt = time.Unix(0, createdAtNanos).UTC()
		wh.Active = active == 1
		result = append(result, &wh)
	}
	return result, rows.Err()
}
