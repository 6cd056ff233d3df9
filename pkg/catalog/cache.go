package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/peterbourgon/diskv/v3"
)

// Cache wraps a Signals source with a diskv-backed local copy so repeated
// runs against the same week reuse the catalogue instead of re-fetching.
// Only the upstream signal records are cached; calendar state itself is
// never persisted.
type Cache struct {
	source Signals
	d      *diskv.Diskv
	key    string
}

// NewCache creates a cache under the configured base path. The key scopes
// the cached catalogue, typically to a brand profile id.
func NewCache(source Signals, cfg Config, key string) (*Cache, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	if key == "" {
		key = "default"
	}
	return &Cache{
		source: source,
		key:    fmt.Sprintf("seeds-%s", key),
		d: diskv.New(diskv.Options{
			BasePath:     cfg.BasePath(),
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
	}, nil
}

// Seeds returns the cached catalogue when present, falling back to the
// upstream source and writing the result through.
func (c *Cache) Seeds(ctx context.Context) ([]Seed, error) {
	if c.d.Has(c.key) {
		if data, err := c.d.Read(c.key); err == nil {
			var seeds []Seed
			if err := json.Unmarshal(data, &seeds); err == nil {
				return seeds, nil
			}
		}
	}
	return c.refresh(ctx)
}

// Refresh bypasses the cached copy and re-fetches from the source.
func (c *Cache) Refresh(ctx context.Context) ([]Seed, error) {
	return c.refresh(ctx)
}

func (c *Cache) refresh(ctx context.Context) ([]Seed, error) {
	if c.source == nil {
		return nil, fmt.Errorf("catalog: no signals source configured")
	}
	seeds, err := c.source.Seeds(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(seeds); err == nil {
		_ = c.d.Write(c.key, data)
	}
	return seeds, nil
}
