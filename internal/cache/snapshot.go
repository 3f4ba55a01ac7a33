package cache

import (
	"context"
	"time"

	"hrconsole/internal/tabular"
)

// State is the cache lifecycle state.
type State string

const (
	StateEmpty   State = "empty"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// RecordName is the name of the persisted snapshot record.
const RecordName = "hr-data-store"

// Snapshot is every cached sheet plus the time of the fetch that produced it.
type Snapshot struct {
	Sheets        map[string]tabular.RawTable `json:"sheets"`
	LastFetchedAt time.Time                   `json:"lastFetchedAt"`
}

// clone copies the sheet map; tables are shared and must not be mutated.
func (s Snapshot) clone() Snapshot {
	out := Snapshot{
		Sheets:        make(map[string]tabular.RawTable, len(s.Sheets)),
		LastFetchedAt: s.LastFetchedAt,
	}
	for k, v := range s.Sheets {
		out.Sheets[k] = v
	}
	return out
}

// Status is a read-only view of the cache for the UI layer.
type Status struct {
	State         State          `json:"state"`
	Loading       bool           `json:"loading"`
	Stale         bool           `json:"stale"`
	LastFetchedAt *time.Time     `json:"lastFetchedAt,omitempty"`
	Error         string         `json:"error,omitempty"`
	Rows          map[string]int `json:"rows"`
	FailedSheets  []string       `json:"failedSheets,omitempty"`
}

// Persister stores the snapshot durably between process restarts.
type Persister interface {
	// Load returns nil, nil when nothing has been saved yet.
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
	Close() error
}
