package genesis

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
)

// CacheEntry is the resolved answer for one program. A program's deployment
// time never changes once observed, so a cached entry with a block time is
// authoritative unless the caller forces a refresh.
type CacheEntry struct {
	BlockTime         int64  `json:"block_time"`
	EarliestSignature string `json:"earliest_signature"`
}

// Cache maps a base58 program id to its resolved deployment. Read reports
// ok=false for unknown programs.
type Cache interface {
	Read(programID string) (CacheEntry, bool, error)
	Write(programID string, entry CacheEntry) error
}

// FileCache keeps all entries in a single JSON object on disk. Every write
// rewrites the whole file via a temp file and rename. There is no file
// locking: concurrent processes sharing one cache file may race, which is
// accepted for a single-user tool.
type FileCache struct {
	path string
}

func NewFileCache(path string) (*FileCache, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("cache path required")
	}
	return &FileCache{path: path}, nil
}

func (c *FileCache) load() (map[string]CacheEntry, error) {
	raw, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]CacheEntry{}, nil
	}
	if err != nil {
		return nil, err
	}
	out := map[string]CacheEntry{}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode cache %s: %w", c.path, err)
	}
	return out, nil
}

func (c *FileCache) Read(programID string) (CacheEntry, bool, error) {
	entries, err := c.load()
	if err != nil {
		return CacheEntry{}, false, err
	}
	entry, ok := entries[programID]
	return entry, ok, nil
}

func (c *FileCache) Write(programID string, entry CacheEntry) error {
	entries, err := c.load()
	if err != nil {
		return err
	}
	entries[programID] = entry

	raw, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, append(raw, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, c.path)
}

// MemoryCache is a map-backed Cache for tests and cache-less runs.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]CacheEntry
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: map[string]CacheEntry{}}
}

func (c *MemoryCache) Read(programID string) (CacheEntry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[programID]
	return entry, ok, nil
}

func (c *MemoryCache) Write(programID string, entry CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[programID] = entry
	return nil
}
