// Package tables loads the versioned JSON strategy tables (preflop
// open/vs-raise/modes, flop rule trees) from a configurable root and
// memoizes them in a small read-mostly cache. A cache miss performs at
// most one disk load per (strategy, path) pair; concurrent callers
// collapse onto that one load via singleflight.
package tables

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/coder/quartz"
	"golang.org/x/sync/singleflight"
)

// maxEntries bounds how many distinct (strategy, path) documents the
// cache retains at once, per the "at most 8 strategies" invariant.
const maxEntries = 8

// BadVersion is the sentinel the loader returns when a document is
// missing, unreadable, or malformed. Call sites must treat it as a
// signal to fall back, not as "absent".
const BadVersion = 0

type cacheKey struct {
	strategy string
	path     string
}

type entry struct {
	data      []byte
	version   int
	modTime   int64
	checkedAt int64
}

// Cache is the process-wide config/table cache. The zero value is not
// usable; construct with NewCache.
type Cache struct {
	root  string
	clock quartz.Clock

	mu      sync.RWMutex
	entries map[cacheKey]*entry
	order   []cacheKey

	group singleflight.Group
}

// NewCache builds a Cache rooted at configRoot. clock only stamps each
// entry's checkedAt time; Reload decides by comparing file mtimes. Pass
// quartz.NewReal() in production.
func NewCache(configRoot string, clock quartz.Clock) *Cache {
	return &Cache{
		root:    configRoot,
		clock:   clock,
		entries: make(map[cacheKey]*entry),
	}
}

// Load returns the raw bytes and version for (strategy, path), using
// the cached copy if present. Reads never rescan the file once cached;
// call Reload to pick up a file change.
func (c *Cache) Load(strategy, relPath string) ([]byte, int, error) {
	key := cacheKey{strategy: strategy, path: relPath}

	c.mu.RLock()
	if e, ok := c.entries[key]; ok {
		c.mu.RUnlock()
		return e.data, e.version, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do(key.strategy+"\x00"+key.path, func() (any, error) {
		return c.loadFromDisk(key)
	})
	if err != nil {
		return nil, BadVersion, err
	}
	e := v.(*entry)
	return e.data, e.version, nil
}

// Reload forces a fresh disk read for (strategy, path) if the file's
// mtime has advanced since it was cached, publishing the new entry
// atomically. It is a no-op (returns nil) if the file is unchanged.
func (c *Cache) Reload(strategy, relPath string) error {
	key := cacheKey{strategy: strategy, path: relPath}
	full := filepath.Join(c.root, relPath)

	info, err := os.Stat(full)
	if err != nil {
		return err
	}
	mtime := info.ModTime().Unix()

	c.mu.RLock()
	existing, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && existing.modTime >= mtime {
		return nil
	}

	_, err = c.loadFromDisk(key)
	return err
}

func (c *Cache) loadFromDisk(key cacheKey) (*entry, error) {
	full := filepath.Join(c.root, key.path)

	data, err := os.ReadFile(full)
	if err != nil {
		e := &entry{version: BadVersion, checkedAt: c.clock.Now().Unix()}
		c.publish(key, e)
		return e, nil
	}

	info, statErr := os.Stat(full)
	mtime := int64(0)
	if statErr == nil {
		mtime = info.ModTime().Unix()
	}

	version := versionOf(data, mtime)
	e := &entry{data: data, version: version, modTime: mtime, checkedAt: c.clock.Now().Unix()}
	c.publish(key, e)
	return e, nil
}

func (c *Cache) publish(key cacheKey, e *entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, existed := c.entries[key]; !existed {
		c.order = append(c.order, key)
		for len(c.order) > maxEntries {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
	}
	c.entries[key] = e
}

// versionOf returns the document's declared "version" field if present
// and non-zero, otherwise a monotone value derived from mtime. Invalid
// JSON yields BadVersion.
func versionOf(data []byte, mtime int64) int {
	var probe struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return BadVersion
	}
	if probe.Version != 0 {
		return probe.Version
	}
	if mtime > 0 {
		return int(mtime)
	}
	return BadVersion
}
