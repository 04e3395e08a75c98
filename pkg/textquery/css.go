package textquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// QueryCSS extracts the text of elements matching a CSS selector.
func QueryCSS(body, selector string, maxResults int) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	c := &textCollector{max: maxResults}
	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		c.add(strings.TrimSpace(s.Text()))
		return !c.full()
	})

	return newResult(ModeCSS, c.values), nil
}
