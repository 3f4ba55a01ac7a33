package cache

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"hrconsole/internal/tabular"
)

//go:embed schema.sql
var schemaFS embed.FS

// DefaultDBName is the SQLite file written under the data directory.
const DefaultDBName = RecordName + ".db"

const metaLastFetchedAt = "last_fetched_at"

// SQLitePersister keeps one row per sheet in a local SQLite database.
type SQLitePersister struct {
	db *sql.DB
}

// NewSQLitePersister opens (and creates if needed) the database at dbPath.
func NewSQLitePersister(dbPath string) (*SQLitePersister, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	p := &SQLitePersister{db: db}
	if err := p.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return p, nil
}

func (p *SQLitePersister) initSchema() error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := p.db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Load implements Persister.
func (p *SQLitePersister) Load(ctx context.Context) (*Snapshot, error) {
	var fetched string
	err := p.db.QueryRowContext(ctx, `SELECT value FROM cache_meta WHERE key = ?`, metaLastFetchedAt).Scan(&fetched)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache_meta: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, fetched)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", metaLastFetchedAt, fetched, err)
	}

	rows, err := p.db.QueryContext(ctx, `SELECT name, rows_json FROM cache_sheets`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cache_sheets: %w", err)
	}
	defer rows.Close()

	snap := &Snapshot{Sheets: map[string]tabular.RawTable{}, LastFetchedAt: ts.UTC()}
	for rows.Next() {
		var name, raw string
		if err := rows.Scan(&name, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan cache_sheets: %w", err)
		}
		var table tabular.RawTable
		if err := json.Unmarshal([]byte(raw), &table); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", name, err)
		}
		if table == nil {
			table = tabular.RawTable{}
		}
		snap.Sheets[name] = table
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cache_sheets: %w", err)
	}
	return snap, nil
}

// Save implements Persister. The previous snapshot is replaced in one
// transaction.
func (p *SQLitePersister) Save(ctx context.Context, snap Snapshot) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cache_sheets`); err != nil {
		return fmt.Errorf("failed to clear cache_sheets: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO cache_sheets (name, rows_json, row_count) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for name, table := range snap.Sheets {
		if table == nil {
			table = tabular.RawTable{}
		}
		b, err := json.Marshal(table)
		if err != nil {
			return fmt.Errorf("sheet %s: %w", name, err)
		}
		if _, err := stmt.ExecContext(ctx, name, string(b), len(table)); err != nil {
			return fmt.Errorf("failed to insert sheet %s: %w", name, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO cache_meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, metaLastFetchedAt, snap.LastFetchedAt.UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("failed to write cache_meta: %w", err)
	}

	return tx.Commit()
}

// Close implements Persister.
func (p *SQLitePersister) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

var _ Persister = (*SQLitePersister)(nil)
