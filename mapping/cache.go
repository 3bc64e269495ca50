package mapping

import (
	"context"
	"log"
	"sync"
	"time"
)

// Loader turns a definition into raw identifier pairs. Implementations
// delegate actual I/O to the HTTP/file layer and must not mutate global
// state. Tests inject counting fakes through this interface.
type Loader interface {
	Load(ctx context.Context, def *Definition) ([]Pair, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, def *Definition) ([]Pair, error)

func (f LoaderFunc) Load(ctx context.Context, def *Definition) ([]Pair, error) {
	return f(ctx, def)
}

// SnapshotStore persists built tables across processes. A hit bypasses
// the network backends entirely.
type SnapshotStore interface {
	Load(idTypeA, idTypeB string, taxon int) (*Table, bool, error)
	Save(t *Table) error
}

type cacheEntry struct {
	table      *Table
	lastAccess time.Time
}

// TableCache is the process-wide registry of built tables, keyed by the
// unordered ID-type pair plus taxon. At most one live table exists per
// key; concurrent requests for a missing key serialize construction so
// a multi-megabyte table is never built twice.
type TableCache struct {
	registry *Registry
	loader   Loader
	lifetime time.Duration
	store    SnapshotStore
	debug    bool

	mu      sync.Mutex
	entries map[pairKey]*cacheEntry
	// building holds a latch per key with a build in flight; waiters
	// block on the channel instead of starting a second build.
	building map[pairKey]chan struct{}
	lastErr  map[pairKey]error
}

// NewTableCache creates a cache over the given registry and loader.
// lifetime is the idle time after which Sweep evicts a table.
func NewTableCache(registry *Registry, loader Loader, lifetime time.Duration) *TableCache {
	return &TableCache{
		registry: registry,
		loader:   loader,
		lifetime: lifetime,
		entries:  make(map[pairKey]*cacheEntry),
		building: make(map[pairKey]chan struct{}),
		lastErr:  make(map[pairKey]error),
	}
}

// SetSnapshotStore enables on-disk snapshot reuse for built tables.
func (c *TableCache) SetSnapshotStore(store SnapshotStore) {
	c.store = store
}

// SetDebug enables build diagnostics.
func (c *TableCache) SetDebug(debug bool) {
	c.debug = debug
}

// GetOrBuild returns the table for (a, b, taxon), building it on first
// request. Candidate definitions are tried in registry priority order;
// a failed load falls through to the next candidate. If every candidate
// fails, or none exists, an empty sentinel table is returned rather
// than an error — LoadError distinguishes the two for strict callers.
func (c *TableCache) GetOrBuild(ctx context.Context, a, b string, taxon int) (*Table, error) {
	key := newPairKey(a, b, taxon)

	for {
		c.mu.Lock()
		if entry, ok := c.entries[key]; ok {
			entry.lastAccess = time.Now()
			c.mu.Unlock()
			return entry.table, nil
		}
		latch, inFlight := c.building[key]
		if !inFlight {
			latch = make(chan struct{})
			c.building[key] = latch
			c.mu.Unlock()
			break
		}
		c.mu.Unlock()

		select {
		case <-latch:
			// builder finished; loop re-checks the cache
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	table, err := c.build(ctx, a, b, taxon)

	c.mu.Lock()
	if table == nil {
		if err == nil && c.reverseOnly(a, b, taxon) {
			// The requested direction has no candidates but the opposite
			// one does. Installing a negative entry here would shadow the
			// buildable direction, because both share the unordered key.
			close(c.building[key])
			delete(c.building, key)
			c.mu.Unlock()
			return emptyTable(key.lo, key.hi, taxon), nil
		}
		c.lastErr[key] = err
		// negative entry: repeated requests for an untranslatable pair
		// must not retrigger every backend
		table = emptyTable(key.lo, key.hi, taxon)
	} else {
		delete(c.lastErr, key)
	}
	c.entries[key] = &cacheEntry{table: table, lastAccess: time.Now()}
	close(c.building[key])
	delete(c.building, key)
	c.mu.Unlock()

	return table, nil
}

// reverseOnly reports whether candidates exist only for the opposite
// direction of a pair.
func (c *TableCache) reverseOnly(a, b string, taxon int) bool {
	return len(c.registry.Lookup(a, b, taxon)) == 0 &&
		len(c.registry.Lookup(b, a, taxon)) > 0
}

// build tries snapshot, then each candidate definition in order.
// Returns nil with the last load error when nothing worked.
func (c *TableCache) build(ctx context.Context, a, b string, taxon int) (*Table, error) {
	if c.store != nil {
		if table, ok, err := c.store.Load(a, b, taxon); err == nil && ok {
			if c.debug {
				log.Printf("mapping: loaded %s<->%s (taxon %d) from snapshot", a, b, taxon)
			}
			return table, nil
		}
	}

	var lastErr error
	for _, def := range c.registry.Lookup(a, b, taxon) {
		pairs, err := c.loader.Load(ctx, def)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			log.Printf("mapping: %s backend failed for %s<->%s (taxon %d): %v; trying next candidate",
				def.Kind, a, b, taxon, err)
			continue
		}
		bidirectional := def.Symmetric()
		var table *Table
		if def.IDTypeA == canonicalLower(a) {
			table = BuildTable(pairs, a, b, taxon, bidirectional)
		} else {
			// definition registered in the opposite natural direction
			table = BuildTable(swapPairs(pairs), a, b, taxon, bidirectional)
		}
		if c.store != nil {
			if err := c.store.Save(table); err != nil && c.debug {
				log.Printf("mapping: saving snapshot for %s<->%s: %v", a, b, err)
			}
		}
		return table, nil
	}
	return nil, lastErr
}

// LoadError returns the error retained from the last failed build of a
// key, or nil if the key built cleanly or was never requested. An empty
// table with a nil LoadError means "legitimately no mapping".
func (c *TableCache) LoadError(a, b string, taxon int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr[newPairKey(a, b, taxon)]
}

// Sweep evicts tables whose last access is older than the configured
// lifetime. Returns the number of evicted tables.
func (c *TableCache) Sweep(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	evicted := 0
	for key, entry := range c.entries {
		if now.Sub(entry.lastAccess) > c.lifetime {
			delete(c.entries, key)
			delete(c.lastErr, key)
			evicted++
		}
	}
	return evicted
}

// StartSweeper runs the eviction sweep periodically until the context
// is cancelled.
func (c *TableCache) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				c.Sweep(now)
			}
		}
	}()
}

// Remove drops the table for a key, if present.
func (c *TableCache) Remove(a, b string, taxon int) {
	key := newPairKey(a, b, taxon)
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	delete(c.lastErr, key)
}

// Len returns the number of cached tables.
func (c *TableCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Keys returns the cached (idTypeA, idTypeB, taxon) combinations.
func (c *TableCache) Keys() []Definition {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Definition, 0, len(c.entries))
	for key := range c.entries {
		out = append(out, Definition{IDTypeA: key.lo, IDTypeB: key.hi, Taxon: key.taxon})
	}
	return out
}

// Clear drops every cached table.
func (c *TableCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[pairKey]*cacheEntry)
	c.lastErr = make(map[pairKey]error)
}

func swapPairs(pairs []Pair) []Pair {
	out := make([]Pair, len(pairs))
	for i, p := range pairs {
		out[i] = Pair{A: p.B, B: p.A}
	}
	return out
}

func canonicalLower(s string) string {
	key := newPairKey(s, s, 0)
	return key.lo
}
