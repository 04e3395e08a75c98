package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MarkupExtractor reads <select> elements through an HTML parser. Unlike the
// regex backend it decodes character references in values and labels and
// copes with attribute quoting and ordering differences.
type MarkupExtractor struct{}

// NewMarkupExtractor creates a parser-backed extractor.
func NewMarkupExtractor() *MarkupExtractor {
	return &MarkupExtractor{}
}

// SelectOptions implements SelectExtractor.
func (x *MarkupExtractor) SelectOptions(html, selectID string) []Option {
	options := []Option{}
	doc, ok := parse(html)
	if !ok || selectID == "" {
		return options
	}

	sel := doc.Find("select").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return attrEquals(s, "name", selectID) || attrEquals(s, "id", selectID)
	}).First()

	sel.Find("option").Each(func(_ int, o *goquery.Selection) {
		value, ok := o.Attr("value")
		if !ok {
			return
		}
		options = append(options, Option{Value: value, Label: o.Text()})
	})
	return options
}

// SelectIDs implements SelectExtractor.
func (x *MarkupExtractor) SelectIDs(html string) []string {
	ids := []string{}
	doc, ok := parse(html)
	if !ok {
		return ids
	}
	doc.Find("select[id]").Each(func(_ int, s *goquery.Selection) {
		if id, _ := s.Attr("id"); id != "" {
			ids = append(ids, id)
		}
	})
	return ids
}

func parse(html string) (*goquery.Document, bool) {
	if html == "" {
		return nil, false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, false
	}
	return doc, true
}

func attrEquals(s *goquery.Selection, name, want string) bool {
	v, ok := s.Attr(name)
	return ok && v == want
}
