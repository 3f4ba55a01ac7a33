package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"hrconsole/internal/tabular"
)

const fileSchemaVersion = 1

// DefaultFileName is the snapshot file written under the data directory.
const DefaultFileName = RecordName + ".json"

// FilePersister keeps the snapshot in a single JSON file.
type FilePersister struct {
	path string
	now  func() time.Time
}

type fileRecord struct {
	SchemaVersion int                         `json:"schemaVersion"`
	Name          string                      `json:"name"`
	SavedAt       time.Time                   `json:"savedAt"`
	LastFetchedAt time.Time                   `json:"lastFetchedAt"`
	Sheets        map[string]tabular.RawTable `json:"sheets"`
}

// NewFilePersister stores the snapshot at path. The directory is created on
// first save.
func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path, now: time.Now}
}

// Path returns the snapshot file path.
func (p *FilePersister) Path() string { return p.path }

// Load implements Persister.
func (p *FilePersister) Load(ctx context.Context) (*Snapshot, error) {
	if !fileExists(p.path) {
		return nil, nil
	}
	var rec fileRecord
	if err := readJSON(p.path, &rec); err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", p.path, err)
	}
	if rec.SchemaVersion != fileSchemaVersion {
		return nil, fmt.Errorf("snapshot %s: unsupported schema version %d", p.path, rec.SchemaVersion)
	}
	if rec.Sheets == nil {
		rec.Sheets = map[string]tabular.RawTable{}
	}
	return &Snapshot{Sheets: rec.Sheets, LastFetchedAt: rec.LastFetchedAt.UTC()}, nil
}

// Save implements Persister.
func (p *FilePersister) Save(ctx context.Context, snap Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rec := fileRecord{
		SchemaVersion: fileSchemaVersion,
		Name:          RecordName,
		SavedAt:       p.now().UTC(),
		LastFetchedAt: snap.LastFetchedAt.UTC(),
		Sheets:        snap.Sheets,
	}
	if err := writeJSONAtomic(p.path, rec); err != nil {
		return fmt.Errorf("write snapshot %s: %w", p.path, err)
	}
	return nil
}

// Close implements Persister.
func (p *FilePersister) Close() error { return nil }

func readJSON(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func writeJSONAtomic(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}

var _ Persister = (*FilePersister)(nil)
