package font

import (
	"github.com/gogpu/glyph3d"
	"github.com/gogpu/glyph3d/cache"
)

// Store is the glyph store type accepted by WithStore.
type Store = cache.Store[cache.Key, *glyph3d.Glyph]

// NewStore returns an empty glyph store with the given per-shard capacity.
func NewStore(capacity int) *Store {
	return cache.New[cache.Key, *glyph3d.Glyph](capacity, cache.HashKey)
}

// Option configures a Font during parsing.
type Option func(*config)

type config struct {
	charset  string
	capacity int
	store    *Store
	fillRule glyph3d.FillRule
}

func defaultConfig() config {
	return config{
		charset:  "utf-8",
		fillRule: glyph3d.EvenOdd,
	}
}

// WithCharset selects how Font.Decode interprets input bytes.
// Supported names are listed by Charsets; the default is "utf-8".
func WithCharset(name string) Option {
	return func(c *config) {
		c.charset = name
	}
}

// WithCacheCapacity sets the per-shard capacity of the font's own glyph
// store. It has no effect together with WithStore.
func WithCacheCapacity(n int) Option {
	return func(c *config) {
		c.capacity = n
	}
}

// WithStore makes the font keep its glyphs in s, which may be shared with
// other fonts.
func WithStore(s *Store) Option {
	return func(c *config) {
		c.store = s
	}
}

// WithFillRule sets the inside rule of every glyph decoded from the font.
func WithFillRule(r glyph3d.FillRule) Option {
	return func(c *config) {
		c.fillRule = r
	}
}
