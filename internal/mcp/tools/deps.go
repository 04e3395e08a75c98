package tools

import (
	"fmt"
	"strconv"

	"github.com/usestring/harscope/internal/cache"
	"github.com/usestring/harscope/internal/config"
	"github.com/usestring/harscope/pkg/extract"
	"github.com/usestring/harscope/pkg/har"
	"github.com/usestring/harscope/pkg/textquery"
)

// Deps contains all dependencies needed by tool handlers. The archive is
// read-only once loaded, so handlers share it without locking.
type Deps struct {
	Archive   *har.Archive
	Config    *config.Config
	Patterns  *cache.PatternCache
	Extractor extract.SelectExtractor
	Pairs     *extract.RegexExtractor
	TextQuery *textquery.Engine
}

// Entry returns the entry at index.
func (d *Deps) Entry(index int) (*har.Entry, error) {
	if index < 0 || index >= len(d.Archive.Entries) {
		return nil, ErrNotFound("entry", strconv.Itoa(index))
	}
	return &d.Archive.Entries[index], nil
}

// Resolve returns the archive indices selected by an explicit index list or
// by URL substring filters. Explicit indices win when both are given.
func (d *Deps) Resolve(indices []int, include, exclude []string) ([]int, error) {
	if len(indices) > 0 {
		for _, i := range indices {
			if _, err := d.Entry(i); err != nil {
				return nil, err
			}
		}
		return indices, nil
	}
	if len(include) == 0 {
		return nil, ErrInvalidInput("either indices or include is required")
	}

	bm := har.Select(d.Archive.Entries, include, exclude)
	out := make([]int, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out, nil
}

// EntryURI returns the resource URI of the entry at index.
func EntryURI(index int) string {
	return fmt.Sprintf("har://entry/%d", index)
}
