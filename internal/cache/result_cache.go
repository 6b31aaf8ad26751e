// Package cache keeps recent service responses so repeated scans with
// identical parameters do not hit the remote pipeline again. Entries
// live in memory and are mirrored to JSON snapshots on disk, so a fresh
// process can reuse the previous session's results within the TTL.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ResultCache is a keyed memory+file cache for service responses.
// Values pass through encoding/json on both sides, so callers store and
// load the same wire types the client decodes.
type ResultCache struct {
	mu       sync.RWMutex
	memory   map[string]*entry
	basePath string
	ttl      time.Duration
	enabled  bool
}

type entry struct {
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewResultCache creates a cache rooted at basePath. A disabled cache is
// valid: every Get misses and every Set is a no-op, so call sites never
// branch on configuration.
func NewResultCache(basePath string, ttl time.Duration, enabled bool) *ResultCache {
	return &ResultCache{
		memory:   make(map[string]*entry),
		basePath: basePath,
		ttl:      ttl,
		enabled:  enabled,
	}
}

// Key builds a cache key from an operation name and its request
// parameters. Identical parameters always produce an identical key.
func Key(op string, params ...string) string {
	return op + ":" + strings.Join(params, "|")
}

// Get loads a cached value into out. It reports false on a miss, an
// expired entry, or a decode failure; the caller then fetches fresh.
func (c *ResultCache) Get(key string, out interface{}) bool {
	if !c.enabled {
		return false
	}

	c.mu.RLock()
	e, ok := c.memory[key]
	c.mu.RUnlock()

	if !ok {
		e = c.loadSnapshot(key)
		if e == nil {
			return false
		}
	}

	if time.Since(e.Timestamp) > c.ttl {
		c.mu.Lock()
		delete(c.memory, key)
		c.mu.Unlock()
		log.Debug().Str("key", key).Msg("cache entry expired")
		return false
	}

	if err := json.Unmarshal(e.Payload, out); err != nil {
		log.Warn().Str("key", key).Err(err).Msg("discarding undecodable cache entry")
		return false
	}

	log.Debug().Str("key", key).Msg("cache hit")
	return true
}

// Set stores a value under key and mirrors it to disk asynchronously.
// A value that cannot be encoded is dropped silently; caching is best
// effort and never fails the operation that produced the value.
func (c *ResultCache) Set(key string, value interface{}) {
	if !c.enabled {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		log.Warn().Str("key", key).Err(err).Msg("skipping cache write")
		return
	}

	e := &entry{Payload: payload, Timestamp: time.Now()}

	c.mu.Lock()
	c.memory[key] = e
	c.mu.Unlock()

	go c.writeSnapshot(key, e)
}

// Clear drops all in-memory entries and deletes snapshot files.
func (c *ResultCache) Clear() error {
	c.mu.Lock()
	c.memory = make(map[string]*entry)
	c.mu.Unlock()

	files, err := filepath.Glob(filepath.Join(c.basePath, "*.json"))
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := os.Remove(f); err != nil {
			return fmt.Errorf("remove snapshot %s: %w", filepath.Base(f), err)
		}
	}
	return nil
}

// Stats reports the in-memory entry count and snapshot directory, for
// the interactive config view.
func (c *ResultCache) Stats() (entries int, basePath string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.memory), c.basePath
}

// loadSnapshot reads a snapshot file into the memory map. Missing or
// corrupt files are treated as misses.
func (c *ResultCache) loadSnapshot(key string) *entry {
	data, err := os.ReadFile(c.snapshotPath(key))
	if err != nil {
		return nil
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		log.Warn().Str("key", key).Err(err).Msg("ignoring corrupt snapshot")
		return nil
	}

	c.mu.Lock()
	c.memory[key] = &e
	c.mu.Unlock()
	return &e
}

func (c *ResultCache) writeSnapshot(key string, e *entry) {
	if err := os.MkdirAll(c.basePath, 0o755); err != nil {
		log.Warn().Err(err).Msg("cannot create cache dir")
		return
	}

	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return
	}

	path := c.snapshotPath(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		log.Warn().Str("key", key).Err(err).Msg("snapshot write failed")
		return
	}
	if err := os.Rename(tmp, path); err != nil {
		log.Warn().Str("key", key).Err(err).Msg("snapshot rename failed")
	}
}

// snapshotPath flattens the key into a filesystem-safe name.
func (c *ResultCache) snapshotPath(key string) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case ':', '|', '/', '\\', ' ':
			return '_'
		}
		return r
	}, key)
	return filepath.Join(c.basePath, safe+".json")
}
