package extract

import (
	"regexp"

	"github.com/usestring/harscope/internal/cache"
)

const (
	optionPattern   = `<option\s+value="([^"]*)"[^>]*>([^<]*)</option>`
	selectIDPattern = `<select\b[^>]*?\sid="([^"]+)"`
)

// RegexExtractor scrapes <select> blocks with regular expressions.
// Matching is case-sensitive and a block ends at the first </select> after it
// starts.
type RegexExtractor struct {
	patterns *cache.PatternCache
}

// NewRegexExtractor creates a regex extractor. A nil cache uses the package
// default.
func NewRegexExtractor(patterns *cache.PatternCache) *RegexExtractor {
	if patterns == nil {
		patterns = defaultPatterns
	}
	return &RegexExtractor{patterns: patterns}
}

// SelectOptions implements SelectExtractor.
func (x *RegexExtractor) SelectOptions(html, selectID string) []Option {
	options := []Option{}
	if html == "" || selectID == "" {
		return options
	}

	block := x.patterns.MustCompile(selectBlockPattern(selectID)).FindStringSubmatch(html)
	if block == nil {
		return options
	}

	for _, m := range x.patterns.MustCompile(optionPattern).FindAllStringSubmatch(block[1], -1) {
		options = append(options, Option{Value: m[1], Label: m[2]})
	}
	return options
}

// SelectIDs implements SelectExtractor.
func (x *RegexExtractor) SelectIDs(html string) []string {
	ids := []string{}
	for _, m := range x.patterns.MustCompile(selectIDPattern).FindAllStringSubmatch(html, -1) {
		ids = append(ids, m[1])
	}
	return ids
}

// selectBlockPattern matches the body of the <select> named or identified by
// id, across newlines, up to the nearest closing tag.
func selectBlockPattern(id string) string {
	return `(?s)<select\b[^>]*?\s(?:name|id)="` + regexp.QuoteMeta(id) + `"[^>]*>(.*?)</select>`
}
