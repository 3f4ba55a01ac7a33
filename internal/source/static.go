package source

import (
	"context"
	"sync"

	"hrconsole/internal/tabular"
)

// StaticSource serves in-memory tables. Sheets set with SetError fail.
type StaticSource struct {
	mu     sync.RWMutex
	tables map[string]tabular.RawTable
	errs   map[string]error
	calls  map[string]int
}

// NewStaticSource creates a source over tables.
func NewStaticSource(tables map[string]tabular.RawTable) *StaticSource {
	s := &StaticSource{
		tables: make(map[string]tabular.RawTable, len(tables)),
		errs:   make(map[string]error),
		calls:  make(map[string]int),
	}
	for k, v := range tables {
		s.tables[k] = v
	}
	return s
}

// Set replaces one sheet's table and clears its error.
func (s *StaticSource) Set(name string, table tabular.RawTable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[name] = table
	delete(s.errs, name)
}

// SetError makes fetches of name fail with a transport error.
func (s *StaticSource) SetError(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[name] = err
}

// Calls returns how many times name was fetched.
func (s *StaticSource) Calls(name string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls[name]
}

// FetchSheet implements Source.
func (s *StaticSource) FetchSheet(ctx context.Context, name string) (Envelope, error) {
	s.mu.Lock()
	s.calls[name]++
	table, ok := s.tables[name]
	err := s.errs[name]
	s.mu.Unlock()

	if err != nil {
		return Envelope{}, transportError(name, err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Envelope{}, transportError(name, ctxErr)
	}
	if !ok {
		return Envelope{Success: false, Error: "Sheet not found"}, nil
	}
	return Envelope{Success: true, Data: table}, nil
}

var _ Source = (*StaticSource)(nil)
var _ Source = (*HTTPSource)(nil)
var _ Source = (*WorkbookSource)(nil)
