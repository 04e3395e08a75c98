// Package extract pulls form option lists and attribute/data pairs out of
// HTML response bodies.
//
// Callers depend only on SelectExtractor. The regex backend reproduces the
// portal scraping behavior exactly, including its tolerance of broken markup;
// the markup backend answers the same questions with a real HTML parser.
package extract

import (
	"fmt"

	"github.com/usestring/harscope/internal/cache"
)

// Backend names accepted by New.
const (
	BackendRegex  = "regex"
	BackendMarkup = "markup"
)

// Option is one <option> of a <select> element.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// String formats the option as ("value", "label").
func (o Option) String() string {
	return fmt.Sprintf("(%q, %q)", o.Value, o.Label)
}

// SelectExtractor finds <select> elements in an HTML document.
// Implementations never fail: input they cannot make sense of yields an
// empty, non-nil result.
type SelectExtractor interface {
	// SelectOptions returns the options of the <select> whose name or id
	// attribute equals selectID, in document order.
	SelectOptions(html, selectID string) []Option
	// SelectIDs returns the id attribute of every <select>, in document order.
	SelectIDs(html string) []string
}

// New returns the extractor for the named backend. An empty name selects the
// regex backend. patterns may be nil.
func New(backend string, patterns *cache.PatternCache) (SelectExtractor, error) {
	switch backend {
	case "", BackendRegex:
		return NewRegexExtractor(patterns), nil
	case BackendMarkup:
		return NewMarkupExtractor(), nil
	default:
		return nil, fmt.Errorf("unknown extractor backend: %q (valid: regex, markup)", backend)
	}
}

var defaultPatterns = mustPatternCache(256)

func mustPatternCache(size int) *cache.PatternCache {
	c, err := cache.NewPatternCache(size)
	if err != nil {
		panic(err)
	}
	return c
}
