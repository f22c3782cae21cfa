// Package sqlite is the plain database/sql journal backend, using the pure-Go
// sqlite driver so the binary builds without cgo.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"astromap/internal/store/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS request_journal (
	id TEXT PRIMARY KEY,
	created_at INTEGER NOT NULL,
	kind TEXT NOT NULL,
	epoch TEXT NOT NULL,
	jd REAL NOT NULL,
	fingerprint TEXT NOT NULL,
	body_count INTEGER NOT NULL,
	features INTEGER NOT NULL,
	cache_hit INTEGER NOT NULL,
	duration_ms REAL NOT NULL,
	status TEXT NOT NULL,
	error TEXT NOT NULL DEFAULT '',
	options TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_request_journal_created_at ON request_journal(created_at);
CREATE INDEX IF NOT EXISTS idx_request_journal_fingerprint ON request_journal(fingerprint);
`

// Journal is the database/sql implementation of store.Journal.
type Journal struct {
	mu sync.Mutex
	db *sql.DB
}

// NewJournal opens (or creates) the journal database at path.
func NewJournal(path string) (*Journal, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("journal path cannot be empty")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(2)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

func (j *Journal) Record(ctx context.Context, rec *model.RequestRecord) error {
	if rec == nil {
		return fmt.Errorf("nil journal record")
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO request_journal
			(id, created_at, kind, epoch, jd, fingerprint, body_count, features, cache_hit, duration_ms, status, error, options)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, createdAt.UnixMilli(), rec.Kind, rec.Epoch, rec.JD, rec.Fingerprint,
		rec.BodyCount, rec.Features, boolToInt(rec.CacheHit), rec.DurationMs,
		rec.Status, rec.Error, string(rec.Options),
	)
	return err
}

func (j *Journal) Recent(ctx context.Context, limit int) ([]model.RequestRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	rows, err := j.db.QueryContext(ctx, `
		SELECT id, created_at, kind, epoch, jd, fingerprint, body_count, features, cache_hit, duration_ms, status, error, options
		FROM request_journal ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RequestRecord
	for rows.Next() {
		var (
			rec       model.RequestRecord
			createdMs int64
			cacheHit  int
			options   string
		)
		if err := rows.Scan(&rec.ID, &createdMs, &rec.Kind, &rec.Epoch, &rec.JD,
			&rec.Fingerprint, &rec.BodyCount, &rec.Features, &cacheHit,
			&rec.DurationMs, &rec.Status, &rec.Error, &options); err != nil {
			return nil, err
		}
		rec.CreatedAt = time.UnixMilli(createdMs)
		rec.CacheHit = cacheHit != 0
		if options != "" {
			rec.Options = []byte(options)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
