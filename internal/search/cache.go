package search

import (
	"context"
	"sync"
	"time"

	"devtools-backend/internal/catalog"
	"devtools-backend/internal/shared/metrics"
)

// Config controls cache bounds. Zero values fall back to defaults.
type Config struct {
	Capacity int
	TTL      time.Duration
	MaxTerms int
}

const (
	defaultCapacity = 100
	defaultTTL      = 5 * time.Minute
	defaultMaxTerms = 500
)

// Result is one search response page.
type Result struct {
	Items      []catalog.Tool
	TotalCount int
	FromCache  bool
}

type entry struct {
	items      []catalog.Tool
	totalCount int
	insertedAt time.Time
}

// Cache fronts catalog search with a bounded, TTL-expiring result cache and
// query popularity analytics. Entries self-expire via TTL; at capacity the
// oldest-inserted entry is evicted first (FIFO, not true LRU — TTL bounds
// staleness independently of eviction order).
type Cache struct {
	store catalog.Store

	mu      sync.Mutex
	entries map[string]entry
	order   []string
	terms   map[string]int

	capacity int
	ttl      time.Duration
	maxTerms int
	now      func() time.Time
}

// NewCache constructs a Cache over the catalog store.
func NewCache(store catalog.Store, cfg Config) *Cache {
	if cfg.Capacity <= 0 {
		cfg.Capacity = defaultCapacity
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if cfg.MaxTerms <= 0 {
		cfg.MaxTerms = defaultMaxTerms
	}
	return &Cache{
		store:    store,
		entries:  make(map[string]entry),
		order:    make([]string, 0, cfg.Capacity),
		terms:    make(map[string]int),
		capacity: cfg.Capacity,
		ttl:      cfg.TTL,
		maxTerms: cfg.MaxTerms,
		now:      time.Now,
	}
}

// Search returns a live cached page when one exists, otherwise runs the
// filter/sort/paginate pipeline against the catalog and caches the page.
func (c *Cache) Search(ctx context.Context, criteria Criteria) (Result, error) {
	normalized := criteria.normalized()
	key := normalized.Key()

	c.mu.Lock()
	c.recordTermLocked(normalized.Query)
	if cached, ok := c.entries[key]; ok {
		if c.now().Sub(cached.insertedAt) <= c.ttl {
			c.mu.Unlock()
			metrics.IncCacheHit()
			return Result{Items: cached.items, TotalCount: cached.totalCount, FromCache: true}, nil
		}
		c.removeLocked(key)
	}
	c.mu.Unlock()
	metrics.IncCacheMiss()

	tools, err := c.store.ListTools(ctx)
	if err != nil {
		return Result{}, err
	}

	filtered := make([]catalog.Tool, 0, len(tools))
	for _, tool := range tools {
		if normalized.matches(tool) {
			filtered = append(filtered, tool)
		}
	}
	sortTools(filtered, normalized.SortBy)

	total := len(filtered)
	start := (normalized.Page - 1) * normalized.PerPage
	if start > total {
		start = total
	}
	end := start + normalized.PerPage
	if end > total {
		end = total
	}
	page := filtered[start:end]

	c.mu.Lock()
	// A concurrent miss may have inserted the same key already; overwrite,
	// the FIFO order keeps a single slot per key.
	if _, ok := c.entries[key]; !ok {
		for len(c.entries) >= c.capacity && len(c.order) > 0 {
			c.removeLocked(c.order[0])
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = entry{items: page, totalCount: total, insertedAt: c.now()}
	c.mu.Unlock()

	return Result{Items: page, TotalCount: total, FromCache: false}, nil
}

// Clear drops all cached entries. Popularity analytics are kept.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
	c.order = c.order[:0]
}

// Stats reports the live entry count and top popular terms.
type Stats struct {
	CacheSize    int
	PopularTerms []TermCount
}

// Stats snapshots cache size and the top five popular terms.
func (c *Cache) Stats() Stats {
	return Stats{
		CacheSize:    c.size(),
		PopularTerms: c.PopularTerms(5),
	}
}

func (c *Cache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) removeLocked(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
