// Package history holds the in-memory, newest-first view of all known
// journal entries and the session-scoped capture state.
package history

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/JK0987/mousehunt-improved/internal/db"
	"github.com/JK0987/mousehunt-improved/internal/journal"
)

// Cache is a lazily loaded, id-descending view of a journal namespace.
// Its sort order is the single source of truth for "newest first" used by
// both rendering and pagination math. Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	loaded  bool
	entries []journal.Entry // sorted by id descending
	known   map[int64]struct{}
}

// NewCache returns an empty, unloaded cache.
func NewCache() *Cache {
	return &Cache{known: make(map[int64]struct{})}
}

// Load populates the cache from the store on first call; later calls are
// no-ops. Entries captured before Load are kept and de-duplicated against
// the stored set.
func (c *Cache) Load(ctx context.Context, database *sql.DB, namespace string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return nil
	}

	stored, err := db.GetAll(ctx, database, namespace)
	if err != nil {
		return err
	}

	for _, e := range stored {
		if _, ok := c.known[e.ID]; ok {
			continue
		}
		c.known[e.ID] = struct{}{}
		c.entries = append(c.entries, e)
	}

	sort.Slice(c.entries, func(i, j int) bool {
		return c.entries[i].ID > c.entries[j].ID
	})

	c.loaded = true
	return nil
}

// Append inserts a newly captured entry in sorted position. Returns false
// without modifying the cache when the id is already known.
func (c *Cache) Append(e journal.Entry) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.known[e.ID]; ok {
		return false
	}

	// First position whose id is below the new entry's keeps the
	// descending order.
	i := sort.Search(len(c.entries), func(i int) bool {
		return c.entries[i].ID < e.ID
	})

	c.entries = append(c.entries, journal.Entry{})
	copy(c.entries[i+1:], c.entries[i:])
	c.entries[i] = e
	c.known[e.ID] = struct{}{}

	return true
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// TotalPages returns the number of pages needed to show every cached
// entry at the given page size.
func (c *Cache) TotalPages(pageSize int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if pageSize <= 0 {
		return 0
	}
	return (len(c.entries) + pageSize - 1) / pageSize
}

// Slice returns the entries for a 1-based page number, newest first.
// Pages beyond the cached range yield an empty slice.
func (c *Cache) Slice(page, pageSize int) []journal.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	if page < 1 || pageSize <= 0 {
		return nil
	}

	start := (page - 1) * pageSize
	if start >= len(c.entries) {
		return nil
	}

	end := min(start+pageSize, len(c.entries))

	out := make([]journal.Entry, end-start)
	copy(out, c.entries[start:end])
	return out
}
