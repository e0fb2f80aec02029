package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/tikzdoc/pkg/errors"
)

// FileCache stores each entry as a JSON file below a directory.
type FileCache struct {
	dir string
}

// NewFileCache returns a cache rooted at dir, creating it if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create cache dir %s", dir)
	}
	return &FileCache{dir: dir}, nil
}

// DefaultDir returns the per-user cache directory for tikzdoc.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "locate user cache dir")
	}
	return filepath.Join(base, "tikzdoc"), nil
}

type cacheEntry struct {
	Data      []byte    `json:"data"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// Get implements [Cache]. Corrupt and expired entries are removed and
// reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeIO, err, "read cache entry")
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return entry.Data, true, nil
}

// Set implements [Cache].
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := cacheEntry{Data: data, CreatedAt: time.Now()}
	if ttl > 0 {
		entry.ExpiresAt = entry.CreatedAt.Add(ttl)
	}
	encoded, err := json.Marshal(entry)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFormatting, err, "encode cache entry")
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create cache dir")
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write cache entry")
	}
	return nil
}

// Delete implements [Cache].
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	return errors.Wrap(errors.ErrCodeIO, err, "delete cache entry")
}

// Close implements [Cache].
func (c *FileCache) Close() error {
	return nil
}

// Dir returns the cache root.
func (c *FileCache) Dir() string {
	return c.dir
}

// Clear removes every entry and returns how many were removed.
func (c *FileCache) Clear() (int, error) {
	entries, err := filepath.Glob(filepath.Join(c.dir, "*", "*.json"))
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeIO, err, "list cache entries")
	}
	for i, path := range entries {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return i, errors.Wrap(errors.ErrCodeIO, err, "remove %s", path)
		}
	}
	return len(entries), nil
}

// path maps a key to <dir>/<first two hash chars>/<rest>.json so that no
// single directory grows too large.
func (c *FileCache) path(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(c.dir, hash[:2], hash[2:]+".json")
}

var _ Cache = (*FileCache)(nil)
