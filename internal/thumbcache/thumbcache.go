// Package thumbcache keeps rendered thumbnails on disk so unchanged sources
// are not rendered twice.
package thumbcache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

const (
	cacheDirName = "pagethumbs/thumbnails"
	maxAge       = 30 * 24 * time.Hour // 30 days
)

// Cache stores PNG thumbnails keyed by source reference, size and source
// modification time. A nil *Cache is valid and caches nothing.
type Cache struct {
	dir string
}

// New creates a cache under baseDir, or the user cache directory when
// baseDir is empty. Stale entries are pruned in the background.
func New(baseDir string) (*Cache, error) {
	if baseDir == "" {
		userCache, err := os.UserCacheDir()
		if err != nil {
			return nil, err
		}
		baseDir = userCache
	}

	dir := filepath.Join(baseDir, cacheDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	c := &Cache{dir: dir}
	go c.Prune(time.Now())

	return c, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func cacheKey(ref string, size int, modTime int64) string {
	hash := sha256.Sum256(fmt.Appendf(nil, "%s:%d:%d", ref, size, modTime))
	return hex.EncodeToString(hash[:])
}

func (c *Cache) path(ref string, size int, modTime int64) string {
	return filepath.Join(c.dir, cacheKey(ref, size, modTime)+".png")
}

// Get returns the cached PNG data, or nil when absent.
func (c *Cache) Get(ref string, size int, modTime int64) []byte {
	if c == nil {
		return nil
	}

	path := c.path(ref, size, modTime)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	// Touch so frequently used entries survive pruning
	now := time.Now()
	_ = os.Chtimes(path, now, now) //nolint:errcheck // best-effort

	return data
}

// Put stores PNG data.
func (c *Cache) Put(ref string, size int, modTime int64, data []byte) error {
	if c == nil {
		return nil
	}
	return os.WriteFile(c.path(ref, size, modTime), data, 0o600)
}

// GetImage returns the cached thumbnail decoded, or nil when absent or
// unreadable.
func (c *Cache) GetImage(ref string, size int, modTime int64) image.Image {
	data := c.Get(ref, size, modTime)
	if len(data) == 0 {
		return nil
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	return img
}

// PutImage encodes img as PNG and stores it. It returns the encoded bytes.
func (c *Cache) PutImage(ref string, size int, modTime int64, img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), c.Put(ref, size, modTime, buf.Bytes())
}

// Prune removes entries not used since now minus 30 days.
func (c *Cache) Prune(now time.Time) {
	if c == nil {
		return
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return
	}

	cutoff := now.Add(-maxAge)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(c.dir, entry.Name())) //nolint:errcheck // best-effort cleanup
		}
	}
}
