// Package sqlite implements the per-directory metric cache on SQLite.
// Each model directory gets its own models.db holding a tabular
// snapshot of every parsed record. The cache is rewritten whole on
// save; on load, anything unusable (a missing file, a truncated
// database, a foreign schema) degrades to a cache miss and a full
// reparse, never to a load failure.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/kortemme-lab/smd-cli/internal/core/domain"
	"github.com/kortemme-lab/smd-cli/internal/core/ports/driven"
	"github.com/kortemme-lab/smd-cli/internal/logger"
)

// DefaultCacheFile is the cache database base name within each model
// directory.
const DefaultCacheFile = "models.db"

// schema is recreated on every save; the cache never migrates in
// place.
const schema = `
DROP TABLE IF EXISTS cells;
DROP TABLE IF EXISTS records;
CREATE TABLE records (
	id   INTEGER PRIMARY KEY,
	path TEXT NOT NULL
);
CREATE TABLE cells (
	record_id INTEGER NOT NULL REFERENCES records(id) ON DELETE CASCADE,
	metric    TEXT NOT NULL,
	kind      INTEGER NOT NULL,
	num       REAL,
	str       TEXT
);
`

// Ensure Store implements the interface.
var _ driven.CacheStore = (*Store)(nil)

// Store is the SQLite-backed cache store. It holds no open handles;
// each operation opens the directory's database and closes it again,
// since loads touch many directories once each.
type Store struct {
	filename string
}

// NewStore creates a cache store using the default cache file name.
func NewStore() *Store {
	return &Store{filename: DefaultCacheFile}
}

// CachePath returns the cache database path for a directory.
func (s *Store) CachePath(directory string) string {
	return filepath.Join(directory, s.filename)
}

// Load implements driven.CacheStore.
func (s *Store) Load(ctx context.Context, directory string) ([]*domain.Record, error) {
	path := s.CachePath(directory)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, domain.ErrCacheMiss
	}

	db, err := openDB(path)
	if err != nil {
		logger.Warn("cache %q unusable, treating as miss: %v", path, err)
		return nil, domain.ErrCacheMiss
	}
	defer db.Close()

	records, err := loadRecords(ctx, db)
	if err != nil {
		logger.Warn("cache %q unreadable, treating as miss: %v", path, err)
		return nil, domain.ErrCacheMiss
	}
	return records, nil
}

// Save implements driven.CacheStore. A corrupt existing cache file is
// removed and written fresh.
func (s *Store) Save(ctx context.Context, directory string, records []*domain.Record) error {
	path := s.CachePath(directory)

	err := s.save(ctx, path, records)
	if err == nil {
		return nil
	}

	// The old file may not be a database at all. Replace it outright
	// and try once more.
	logger.Warn("rewriting cache %q from scratch: %v", path, err)
	if removeErr := os.Remove(path); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
		return fmt.Errorf("replacing cache %q: %w", path, removeErr)
	}
	return s.save(ctx, path, records)
}

// save rewrites the cache database with the full record set.
func (s *Store) save(ctx context.Context, path string, records []*domain.Record) error {
	db, err := openDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("resetting cache schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning cache transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	insertRecord, err := tx.PrepareContext(ctx, "INSERT INTO records (id, path) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("preparing record insert: %w", err)
	}
	defer insertRecord.Close()

	insertCell, err := tx.PrepareContext(ctx, `
		INSERT INTO cells (record_id, metric, kind, num, str)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing cell insert: %w", err)
	}
	defer insertCell.Close()

	for i, record := range records {
		if _, err := insertRecord.ExecContext(ctx, i, record.Path); err != nil {
			return fmt.Errorf("saving record %q: %w", record.Path, err)
		}
		for _, name := range record.FieldNames() {
			value := record.Fields[name]
			var num sql.NullFloat64
			var str sql.NullString
			if value.IsNumber() {
				num = sql.NullFloat64{Float64: value.Num, Valid: true}
			} else {
				str = sql.NullString{String: value.Str, Valid: true}
			}
			if _, err := insertCell.ExecContext(ctx, i, name, int(value.Kind), num, str); err != nil {
				return fmt.Errorf("saving cell %q of %q: %w", name, record.Path, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing cache: %w", err)
	}
	return nil
}

// openDB opens the cache database with a busy timeout; model
// directories occasionally live on slow network filesystems.
func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}
	return db, nil
}

// loadRecords reconstructs the cached records in their stored order.
func loadRecords(ctx context.Context, db *sql.DB) ([]*domain.Record, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT r.id, r.path, c.metric, c.kind, c.num, c.str
		FROM records r
		LEFT JOIN cells c ON c.record_id = r.id
		ORDER BY r.id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying cache: %w", err)
	}
	defer rows.Close()

	var records []*domain.Record
	byID := make(map[int64]*domain.Record)
	for rows.Next() {
		var id int64
		var path string
		var metric sql.NullString
		var kind sql.NullInt64
		var num sql.NullFloat64
		var str sql.NullString
		if err := rows.Scan(&id, &path, &metric, &kind, &num, &str); err != nil {
			return nil, fmt.Errorf("scanning cache row: %w", err)
		}

		record, ok := byID[id]
		if !ok {
			record = domain.NewRecord(path)
			byID[id] = record
			records = append(records, record)
		}
		if !metric.Valid {
			continue // record without cells
		}

		switch domain.ValueKind(kind.Int64) {
		case domain.KindNumber:
			record.SetNumber(metric.String, num.Float64)
		case domain.KindText:
			record.SetText(metric.String, str.String)
		default:
			return nil, fmt.Errorf("unknown cell kind %d", kind.Int64)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cache rows: %w", err)
	}
	return records, nil
}
