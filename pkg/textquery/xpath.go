package textquery

import (
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xmlquery"

	"github.com/usestring/harscope/pkg/contenttype"
)

// QueryXPath extracts text content from XML or HTML using XPath expressions.
// HTML content types are parsed leniently with htmlquery, everything else
// with xmlquery.
func QueryXPath(body, ct, expression string, maxResults int) (*Result, error) {
	if contenttype.IsHTML(ct) {
		return queryXPathHTML(body, expression, maxResults)
	}
	return queryXPathXML(body, expression, maxResults)
}

func queryXPathXML(body, expression string, maxResults int) (*Result, error) {
	doc, err := xmlquery.Parse(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	nodes, err := xmlquery.QueryAll(doc, expression)
	if err != nil {
		return nil, fmt.Errorf("invalid XPath expression: %w", err)
	}

	c := &textCollector{max: maxResults}
	for _, node := range nodes {
		c.add(strings.TrimSpace(node.InnerText()))
	}
	return newResult(ModeXPath, c.values), nil
}

func queryXPathHTML(body, expression string, maxResults int) (*Result, error) {
	doc, err := htmlquery.Parse(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	nodes, err := htmlquery.QueryAll(doc, expression)
	if err != nil {
		return nil, fmt.Errorf("invalid XPath expression: %w", err)
	}

	c := &textCollector{max: maxResults}
	for _, node := range nodes {
		c.add(strings.TrimSpace(htmlquery.InnerText(node)))
	}
	return newResult(ModeXPath, c.values), nil
}
