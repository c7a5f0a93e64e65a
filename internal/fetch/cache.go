package fetch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Cache is a TTL file cache. Entries older than the TTL are treated as
// absent; writes are atomic (tmp file, fsync, rename) so a crashed process
// never leaves a truncated entry behind.
type Cache struct {
	root string
	ttl  time.Duration
}

// NewCache creates the cache root if needed and returns a Cache.
func NewCache(root string, ttl time.Duration) (*Cache, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("cache: resolve root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create root: %w", err)
	}
	return &Cache{root: abs, ttl: ttl}, nil
}

// safePath resolves a relative entry key against the cache root and rejects
// any result that escapes it.
func (c *Cache) safePath(rel string) (string, error) {
	cleaned := filepath.Clean(rel)
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("cache: absolute keys not allowed: %s", rel)
	}
	abs, err := filepath.Abs(filepath.Join(c.root, cleaned))
	if err != nil {
		return "", fmt.Errorf("cache: resolve key: %w", err)
	}
	if !strings.HasPrefix(abs, c.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("cache: key escapes cache root: %s", rel)
	}
	return abs, nil
}

// Read returns a fresh entry's content. ok is false when the entry is
// missing, stale, or unreadable.
func (c *Cache) Read(key string) ([]byte, bool) {
	abs, err := c.safePath(key)
	if err != nil {
		return nil, false
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, false
	}
	if time.Since(info.ModTime()) >= c.ttl {
		return nil, false
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Write stores an entry atomically.
func (c *Cache) Write(key string, content []byte) error {
	abs, err := c.safePath(key)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cache: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".raido-tmp-*")
	if err != nil {
		return fmt.Errorf("cache: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("cache: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("cache: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cache: close temp: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return fmt.Errorf("cache: rename: %w", err)
	}
	success = true
	return nil
}
