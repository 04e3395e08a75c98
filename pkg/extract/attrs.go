package extract

import (
	"fmt"
	"regexp"

	"github.com/usestring/harscope/internal/cache"
)

// Pair is an element id together with its data-content text.
type Pair struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// AttributePattern configures AttributePairs. It matches markup of the form
//
//	<Attribute>='<id>' data-content='<content>'
//
// where id is drawn from IDCharset, a regex character class body such as
// "A-F0-9".
type AttributePattern struct {
	Attribute string `json:"attribute"`
	IDCharset string `json:"id_charset"`
}

// DefaultAttributePattern matches the credit-requirement category markers
// on the academic status page.
var DefaultAttributePattern = AttributePattern{
	Attribute: "xfyqjd_id",
	IDCharset: "A-F0-9",
}

// Expression returns the regular expression for the pattern. Empty fields
// take their values from DefaultAttributePattern.
func (p AttributePattern) Expression() string {
	attr := p.Attribute
	if attr == "" {
		attr = DefaultAttributePattern.Attribute
	}
	charset := p.IDCharset
	if charset == "" {
		charset = DefaultAttributePattern.IDCharset
	}
	return regexp.QuoteMeta(attr) + `='([` + charset + `]+)'\s+data-content='([^']+)'`
}

// AttributePairs returns the distinct (id, content) pairs matched by p in
// html. Repeated fragments collapse to one pair. Pairs are returned in order
// of first appearance, though callers should treat the result as a set.
// The only error is an IDCharset that does not form a valid expression
// with exactly the id and content groups.
func AttributePairs(html string, p AttributePattern) ([]Pair, error) {
	return attributePairs(defaultPatterns, html, p)
}

// AttributePairs is AttributePairs using the extractor's pattern cache.
func (x *RegexExtractor) AttributePairs(html string, p AttributePattern) ([]Pair, error) {
	return attributePairs(x.patterns, html, p)
}

func attributePairs(patterns *cache.PatternCache, html string, p AttributePattern) ([]Pair, error) {
	re, err := patterns.Compile(p.Expression())
	if err != nil {
		return nil, fmt.Errorf("attribute pattern %q: %w", p.Attribute, err)
	}
	// The charset is spliced into a class, so it can open or close groups.
	if re.NumSubexp() != 2 {
		return nil, fmt.Errorf("attribute pattern %q: id charset %q must not change the capture groups", p.Attribute, p.IDCharset)
	}

	pairs := []Pair{}
	seen := make(map[Pair]struct{})
	for _, m := range re.FindAllStringSubmatch(html, -1) {
		pair := Pair{ID: m[1], Content: m[2]}
		if _, dup := seen[pair]; dup {
			continue
		}
		seen[pair] = struct{}{}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}
