package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/normjson/codec"
)

// documentInput represents the two ways a document can be provided to a tool.
// Exactly one of File or Content must be set.
type documentInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a JSON or YAML document on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content (JSON or YAML)"`
	Format  string `json:"format,omitempty"  jsonschema:"Input format: json, yaml, or auto (default auto)"`
}

// cacheEntry holds a cached parse result with LRU ordering and TTL expiry.
type cacheEntry struct {
	result    *codec.ParseResult
	insertAt  time.Time
	expiresAt time.Time
}

// docCacheStore provides a session-scoped cache for decoded documents.
// File inputs are keyed by (absolutePath, modTime). Content inputs are keyed
// by a SHA-256 hash. The passes mutate trees, so callers always receive a
// clone of the cached tree.
type docCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var docCache = &docCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached result or nil. Expired entries are lazily removed.
func (c *docCacheStore) get(key string) *codec.ParseResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		// Touch entry for LRU.
		e.insertAt = time.Now()
		return e.result
	}
	return nil
}

// putWithTTL stores a result with a specific TTL, evicting the oldest entry if at capacity.
func (c *docCacheStore) putWithTTL(key string, result *codec.ParseResult, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{result: result, insertAt: now, expiresAt: now.Add(ttl)}

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *docCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes
// expired entries until ctx is cancelled. Only the first call spawns a sweeper.
func (c *docCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *docCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *docCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey creates a cache key for the given input and resolved format.
func makeCacheKey(d documentInput, format codec.SourceFormat) string {
	switch {
	case d.File != "":
		absPath, err := filepath.Abs(d.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "" // Can't stat, don't cache.
		}
		return fmt.Sprintf("file:%s:%s:%d", format, absPath, info.ModTime().UnixNano())
	case d.Content != "":
		h := sha256.Sum256([]byte(d.Content))
		return fmt.Sprintf("content:%s:%s", format, hex.EncodeToString(h[:]))
	default:
		return ""
	}
}

// resolve decodes the document from whichever input was provided, using the
// cache when enabled. The returned tree is owned by the caller.
func (d documentInput) resolve() (*codec.ParseResult, error) {
	count := 0
	if d.File != "" {
		count++
	}
	if d.Content != "" {
		count++
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of file or content must be provided (got %d)", count)
	}

	if d.Content != "" && int64(len(d.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set NORMJSON_MAX_INLINE_SIZE to increase",
			len(d.Content), cfg.MaxInlineSize)
	}

	format, err := codec.ParseSourceFormat(d.Format)
	if err != nil {
		return nil, err
	}

	var key string
	var ttl time.Duration
	if cfg.CacheEnabled {
		key = makeCacheKey(d, format)
		ttl = cfg.CacheContentTTL
		if d.File != "" {
			ttl = cfg.CacheFileTTL
		}
	}

	if key != "" {
		if cached := docCache.get(key); cached != nil {
			return cloneResult(cached), nil
		}
	}

	opts := []codec.Option{
		codec.WithFormat(format),
		codec.WithMaxDepth(cfg.MaxDepth),
		codec.WithMaxInputSize(cfg.MaxInputSize),
	}
	if d.File != "" {
		opts = append(opts, codec.WithFilePath(d.File))
	} else {
		opts = append(opts, codec.WithReader(strings.NewReader(d.Content)), codec.WithSourceName("content"))
	}

	result, err := codec.ParseWithOptions(opts...)
	if err != nil {
		return nil, err
	}

	if key != "" {
		docCache.putWithTTL(key, cloneResult(result), ttl)
	}
	return result, nil
}

func cloneResult(r *codec.ParseResult) *codec.ParseResult {
	c := *r
	c.Value = r.Value.Clone()
	return &c
}
