package cache

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"hrconsole/internal/logging"
	"hrconsole/internal/source"
	"hrconsole/internal/tabular"
)

const defaultSheetTimeout = 30 * time.Second

// ErrClosed is returned by refreshes started after Close.
var ErrClosed = errors.New("cache closed")

// Cache holds the last fetched table of every registered sheet. The
// snapshot is only ever replaced as a whole; readers get shared tables and
// must not modify them.
type Cache struct {
	src          source.Source
	names        []string
	persister    Persister
	maxAge       time.Duration
	sheetTimeout time.Duration
	now          func() time.Time
	log          *logging.Logger

	mu       sync.RWMutex
	snap     Snapshot
	state    State
	stale    bool
	lastErr  error
	failed   []string
	inflight int
	current  *cycle
	opened   bool
	closed   bool

	// cycles counts refreshes that have not finished persisting.
	cycles    sync.WaitGroup
	persistMu sync.Mutex
}

type cycle struct {
	id   string
	done chan struct{}
	err  error
}

type result struct {
	name  string
	table tabular.RawTable
	err   error
}

// Option configures a Cache.
type Option func(*Cache)

// WithPersister enables durable snapshots.
func WithPersister(p Persister) Option {
	return func(c *Cache) { c.persister = p }
}

// WithMaxAge makes a non-forced Refresh fetch again once the snapshot is
// older than d. Zero means a fetched snapshot never expires on its own.
func WithMaxAge(d time.Duration) Option {
	return func(c *Cache) { c.maxAge = d }
}

// WithSheetTimeout bounds each sheet fetch. A timeout counts as a failed sheet.
func WithSheetTimeout(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.sheetTimeout = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Cache) { c.log = l }
}

// New creates an empty cache for the given sheet names.
func New(src source.Source, names []string, opts ...Option) *Cache {
	c := &Cache{
		src:          src,
		names:        append([]string(nil), names...),
		sheetTimeout: defaultSheetTimeout,
		now:          time.Now,
		log:          logging.Discard(),
		state:        StateEmpty,
		snap:         Snapshot{Sheets: map[string]tabular.RawTable{}},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open rehydrates the persisted snapshot. It only has an effect the first
// time and must run before the first Refresh. A rehydrated snapshot is
// served immediately but marked stale, so the next Refresh fetches.
func (c *Cache) Open(ctx context.Context) error {
	c.mu.Lock()
	if c.opened || c.persister == nil {
		c.opened = true
		c.mu.Unlock()
		return nil
	}
	c.opened = true
	c.mu.Unlock()

	snap, err := c.persister.Load(ctx)
	if err != nil {
		c.log.Warn("[Cache] rehydrate failed: %v", err)
		return err
	}
	if snap == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateEmpty {
		return nil
	}
	if snap.Sheets == nil {
		snap.Sheets = map[string]tabular.RawTable{}
	}
	c.snap = *snap
	c.state = StateReady
	c.stale = true
	c.log.Info("[Cache] rehydrated %d sheets fetched at %s", len(snap.Sheets), snap.LastFetchedAt.Format(time.RFC3339))
	return nil
}

// Refresh fetches every sheet unless the cache is already warm. With force
// it always fetches. A non-forced call made while a fetch is running waits
// for that fetch instead of starting another.
func (c *Cache) Refresh(ctx context.Context, force bool) error {
	cyc, joined, err := c.startCycle(force)
	if err != nil || cyc == nil {
		return err
	}
	if joined {
		select {
		case <-cyc.done:
			return cyc.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return c.run(ctx, cyc)
}

func (c *Cache) warmLocked() bool {
	if c.state != StateReady || c.stale || c.snap.LastFetchedAt.IsZero() {
		return false
	}
	if c.maxAge > 0 && c.now().Sub(c.snap.LastFetchedAt) >= c.maxAge {
		return false
	}
	return true
}

// FetchAll fetches every registered sheet in parallel and waits for all of
// them to settle. Failed sheets are stored as empty tables. If every sheet
// fails the previous snapshot is kept and a *RefreshError is returned.
// Concurrent calls race; the one that settles last is what stays cached.
func (c *Cache) FetchAll(ctx context.Context) error {
	cyc, _, err := c.startCycle(true)
	if err != nil {
		return err
	}
	return c.run(ctx, cyc)
}

// startCycle decides under one lock whether a refresh is needed. It returns
// nil when the cache is warm, the running cycle with joined set when a
// non-forced caller should wait for it, or a newly registered cycle.
func (c *Cache) startCycle(force bool) (cyc *cycle, joined bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, false, ErrClosed
	}
	if !force {
		if c.warmLocked() {
			return nil, false, nil
		}
		if c.inflight > 0 && c.current != nil {
			return c.current, true, nil
		}
	}

	cyc = &cycle{id: uuid.NewString()[:8], done: make(chan struct{})}
	c.inflight++
	c.state = StateLoading
	c.current = cyc
	c.cycles.Add(1)
	return cyc, false, nil
}

func (c *Cache) run(ctx context.Context, cyc *cycle) error {
	defer c.cycles.Done()

	start := c.now()
	c.log.Debug("[Cache] cycle %s: fetching %d sheets", cyc.id, len(c.names))

	results := c.fetchSheets(ctx)
	err := c.commit(ctx, cyc.id, results)

	c.log.Info("[Cache] cycle %s settled in %s", cyc.id, c.now().Sub(start).Round(time.Millisecond))

	cyc.err = err
	close(cyc.done)
	return err
}

func (c *Cache) fetchSheets(ctx context.Context) []result {
	results := make([]result, len(c.names))

	var wg sync.WaitGroup
	for i, name := range c.names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()

			sheetCtx, cancel := context.WithTimeout(ctx, c.sheetTimeout)
			defer cancel()

			table, err := source.Fetch(sheetCtx, c.src, name)
			results[i] = result{name: name, table: table, err: err}
		}(i, name)
	}
	wg.Wait()

	return results
}

func (c *Cache) commit(ctx context.Context, id string, results []result) error {
	failures := make(map[string]error)
	sheets := make(map[string]tabular.RawTable, len(results))
	for _, r := range results {
		if r.err != nil {
			failures[r.name] = r.err
			c.log.Warn("[Cache] cycle %s: %v", id, r.err)
			sheets[r.name] = tabular.RawTable{}
			continue
		}
		sheets[r.name] = r.table
	}

	var err error
	if len(results) > 0 && len(failures) == len(results) {
		err = &RefreshError{Failures: failures}
	}

	c.mu.Lock()
	c.inflight--
	if err == nil {
		c.snap = Snapshot{Sheets: sheets, LastFetchedAt: c.now().UTC()}
		c.stale = false
		c.failed = sortedKeys(failures)
	}
	c.lastErr = err
	if c.inflight == 0 {
		c.current = nil
		if err != nil {
			c.state = StateError
		} else {
			c.state = StateReady
		}
	}
	c.mu.Unlock()

	if err != nil {
		c.log.Error("[Cache] cycle %s: %v", id, err)
		return err
	}

	if perr := c.persist(ctx); perr != nil {
		c.log.Warn("[Cache] cycle %s: persist failed: %v", id, perr)
	}
	return nil
}

// persist saves whatever snapshot is current, so the durable copy always
// ends up matching memory even when refreshes overlap.
func (c *Cache) persist(ctx context.Context) error {
	if c.persister == nil {
		return nil
	}
	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	return c.persister.Save(context.WithoutCancel(ctx), c.Snapshot())
}

// GetSheet returns the cached table for name, or an empty table.
func (c *Cache) GetSheet(name string) tabular.RawTable {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if t, ok := c.snap.Sheets[name]; ok && t != nil {
		return t
	}
	return tabular.RawTable{}
}

// Snapshot returns a copy of the current snapshot.
func (c *Cache) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap.clone()
}

// Names returns the registered sheet names.
func (c *Cache) Names() []string {
	return append([]string(nil), c.names...)
}

// State returns the lifecycle state.
func (c *Cache) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Err returns the error of the last settled refresh, nil on success.
func (c *Cache) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// Status summarizes the cache for display.
func (c *Cache) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	st := Status{
		State:        c.state,
		Loading:      c.inflight > 0,
		Stale:        c.stale,
		Rows:         make(map[string]int, len(c.names)),
		FailedSheets: append([]string(nil), c.failed...),
	}
	if !c.snap.LastFetchedAt.IsZero() {
		t := c.snap.LastFetchedAt
		st.LastFetchedAt = &t
	}
	if c.lastErr != nil {
		st.Error = c.lastErr.Error()
	}
	for _, name := range c.names {
		st.Rows[name] = len(c.snap.Sheets[name])
	}
	return st
}

// Close rejects new refreshes, waits for running ones to commit and
// persist, then closes the persister.
func (c *Cache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.cycles.Wait()

	if c.persister == nil {
		return nil
	}
	c.persistMu.Lock()
	defer c.persistMu.Unlock()
	return c.persister.Close()
}

// IsRefreshError reports whether err is a whole-cycle failure.
func IsRefreshError(err error) bool {
	var re *RefreshError
	return errors.As(err, &re)
}

func sortedKeys(m map[string]error) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
