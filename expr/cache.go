package expr

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/golang/groupcache/lru"
)

// PatternCache caches compiled regular expressions by their source.
type PatternCache struct {
	cache *lru.Cache
	mu    sync.RWMutex // lru.Cache is not safe for concurrent use
}

// NewPatternCache creates a PatternCache holding at most size patterns.
func NewPatternCache(size int) *PatternCache {
	return &PatternCache{
		cache: lru.New(size),
	}
}

// Get returns the compiled pattern for src, if cached.
func (c *PatternCache) Get(src string) (*regexp.Regexp, bool) {
	// lru.Cache.Get reorders the list, so a read still needs the write lock.
	c.mu.Lock()
	defer c.mu.Unlock()
	if val, ok := c.cache.Get(src); ok {
		return val.(*regexp.Regexp), true
	}
	return nil, false
}

// Put adds a compiled pattern to the cache.
func (c *PatternCache) Put(src string, re *regexp.Regexp) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Add(src, re)
}

// Compile returns the compiled form of src, compiling and caching it on a
// miss.
func (c *PatternCache) Compile(src string) (*regexp.Regexp, error) {
	if re, ok := c.Get(src); ok {
		return re, nil
	}

	re, err := regexp.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", src, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another goroutine may have compiled it meanwhile.
	if val, ok := c.cache.Get(src); ok {
		return val.(*regexp.Regexp), nil
	}
	c.cache.Add(src, re)
	return re, nil
}

// CallPattern matches a call to name, e.g. `name (` or `name(`.
func (c *PatternCache) CallPattern(name string) *regexp.Regexp {
	// QuoteMeta keeps the source valid for any identifier.
	re, err := c.Compile(`\b` + regexp.QuoteMeta(name) + `\s*\(`)
	if err != nil {
		return regexp.MustCompile(`[^\s\S]`)
	}
	return re
}

// Len returns the number of cached patterns.
func (c *PatternCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cache.Len()
}

// Clear clears the cache.
func (c *PatternCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Clear()
}
