// Package cache provides caching utilities for pattern-based extraction.
package cache

import (
	"fmt"
	"regexp"

	lru "github.com/hashicorp/golang-lru/v2"
)

// PatternCache provides thread-safe LRU caching of compiled regular expressions.
type PatternCache struct {
	cache *lru.Cache[string, *regexp.Regexp]
}

// NewPatternCache creates a new LRU cache with the specified maximum number of patterns.
func NewPatternCache(maxItems int) (*PatternCache, error) {
	c, err := lru.New[string, *regexp.Regexp](maxItems)
	if err != nil {
		return nil, err
	}
	return &PatternCache{cache: c}, nil
}

// Compile returns the compiled form of expr, compiling and caching it on a miss.
// Invalid expressions are not cached.
func (c *PatternCache) Compile(expr string) (*regexp.Regexp, error) {
	if re, ok := c.cache.Get(expr); ok {
		return re, nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid regex: %w", err)
	}
	c.cache.Add(expr, re)
	return re, nil
}

// MustCompile is like Compile but panics on invalid expressions.
// Use it only for patterns built from quoted, known-good fragments.
func (c *PatternCache) MustCompile(expr string) *regexp.Regexp {
	re, err := c.Compile(expr)
	if err != nil {
		panic(err)
	}
	return re
}

// Len returns the current number of cached patterns.
func (c *PatternCache) Len() int {
	return c.cache.Len()
}
