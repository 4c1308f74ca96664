// Package dataset loads customer files once and reuses the cleaned result
// until the source changes.
package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/KaramelBytes/custlens-cli/internal/cleaner"
	"github.com/KaramelBytes/custlens-cli/internal/table"
)

// Key identifies one version of a source file.
type Key struct {
	Path    string
	ModTime time.Time
	Size    int64
}

func (k Key) matches(o Key) bool {
	return k.Path == o.Path && k.Size == o.Size && k.ModTime.Equal(o.ModTime)
}

type entry struct {
	key    Key
	result *cleaner.Result
}

// Options controls how sources are read and cleaned.
type Options struct {
	Read  table.ReadOptions
	Clean cleaner.Options
}

// DefaultOptions returns comma-separated input with the default cleaning rules.
func DefaultOptions() Options {
	return Options{Clean: cleaner.DefaultOptions()}
}

// Cache holds cleaned tables keyed by source identity. It is safe for
// concurrent use; the tables it hands out are immutable.
type Cache struct {
	mu      sync.Mutex
	opt     Options
	logger  *zap.Logger
	entries map[string]entry
}

// NewCache returns an empty cache. A nil logger disables logging.
func NewCache(opt Options, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{opt: opt, logger: logger.Named("dataset"), entries: make(map[string]entry)}
}

// Load returns the canonical table for path.
func (c *Cache) Load(path string) (*table.Table, error) {
	res, err := c.LoadResult(path)
	if err != nil {
		return nil, err
	}
	return res.Table, nil
}

// LoadResult returns the cleaning result for path, reading and cleaning the
// file only when it is new or has changed since the last load.
func (c *Cache) LoadResult(path string) (*cleaner.Result, error) {
	key, err := identify(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key.Path]; ok {
		if e.key.matches(key) {
			c.logger.Debug("cache hit", zap.String("path", key.Path))
			return e.result, nil
		}
		c.logger.Debug("source changed", zap.String("path", key.Path),
			zap.Time("cached_mtime", e.key.ModTime), zap.Time("mtime", key.ModTime))
	}

	raw, err := table.ReadFile(key.Path, c.opt.Read)
	if err != nil {
		return nil, err
	}
	res, err := cleaner.CleanWithOptions(raw, c.opt.Clean)
	if err != nil {
		return nil, fmt.Errorf("clean %s: %w", filepath.Base(key.Path), err)
	}
	c.logger.Debug("loaded source",
		zap.String("path", key.Path),
		zap.Int("rows_in", raw.Len()),
		zap.Int("rows_out", res.Table.Len()),
		zap.Int("duplicates", len(res.Duplicates)),
		zap.Int("incomplete", len(res.Incomplete)),
		zap.Strings("dropped_columns", res.DroppedColumns))
	c.entries[key.Path] = entry{key: key, result: res}
	return res, nil
}

// Invalidate forgets the cached table for path.
func (c *Cache) Invalidate(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, abs)
}

// Purge empties the cache.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len returns the number of cached sources.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func identify(path string) (Key, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Key{}, fmt.Errorf("resolve path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Key{}, &table.MissingSourceError{Path: path, Err: err}
		}
		return Key{}, fmt.Errorf("stat source: %w", err)
	}
	if info.IsDir() {
		return Key{}, fmt.Errorf("source %s is a directory", path)
	}
	return Key{Path: abs, ModTime: info.ModTime(), Size: info.Size()}, nil
}
