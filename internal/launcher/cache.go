package launcher

import (
	"crypto/md5"
	"fmt"
	"log"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/chess10kp/cleanlauncher/internal/apps"
)

// SearchCache provides LRU caching for search results
type SearchCache struct {
	cache   *lru.Cache[string, []apps.AppRecord]
	maxSize int
	hits    int64
	misses  int64
	mu      sync.Mutex
}

// CacheStats holds cache statistics
type CacheStats struct {
	Size    int     `json:"size"`
	MaxSize int     `json:"max_size"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

// NewSearchCache creates a new search cache with the specified maximum size
func NewSearchCache(maxSize int) (*SearchCache, error) {
	if maxSize <= 0 {
		maxSize = 100
	}

	cache, err := lru.New[string, []apps.AppRecord](maxSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create LRU cache: %w", err)
	}

	return &SearchCache{
		cache:   cache,
		maxSize: maxSize,
	}, nil
}

// Get retrieves cached results for a query against the snapshot with hash
// appsHash. A snapshot change produces a new hash and so a miss.
func (c *SearchCache) Get(mode MatchMode, query, appsHash string) ([]apps.AppRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := makeKey(mode, query, appsHash)
	if results, found := c.cache.Get(key); found {
		c.hits++
		return results, true
	}

	c.misses++
	log.Printf("[SEARCH-CACHE] MISS: mode=%s query='%s'", mode, query)
	return nil, false
}

// Put stores search results in the cache
func (c *SearchCache) Put(mode MatchMode, query, appsHash string, results []apps.AppRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Add(makeKey(mode, query, appsHash), results)
}

// Invalidate removes all cached entries
func (c *SearchCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Purge()
	c.hits = 0
	c.misses = 0
}

// GetStats returns current cache statistics
func (c *SearchCache) GetStats() *CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.hits + c.misses
	hitRate := float64(0)
	if total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}

	return &CacheStats{
		Size:    c.cache.Len(),
		MaxSize: c.maxSize,
		Hits:    c.hits,
		Misses:  c.misses,
		HitRate: hitRate,
	}
}

func makeKey(mode MatchMode, query, appsHash string) string {
	return fmt.Sprintf("%s:%s:%s", mode, query, appsHash)
}

// ComputeAppsHash fingerprints a snapshot. Renames and state changes alter
// the hash as well as installs and removals.
func ComputeAppsHash(records []apps.AppRecord) string {
	if len(records) == 0 {
		return ""
	}

	h := md5.New()
	for _, r := range records {
		fmt.Fprintf(h, "%s\x00%s\x00%d\n", r.ID, r.DisplayName(), r.State)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
