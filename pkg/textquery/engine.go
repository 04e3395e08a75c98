// Package textquery runs extraction expressions against recorded request and
// response bodies.
package textquery

import (
	"context"
	"fmt"
	"regexp"

	"github.com/usestring/harscope/internal/cache"
	"github.com/usestring/harscope/internal/query"
	"github.com/usestring/harscope/pkg/har"
)

// Body targets for QueryEntry.
const (
	TargetRequest  = "request"
	TargetResponse = "response"
)

// Engine dispatches text extraction queries to mode-specific handlers.
type Engine struct {
	jq       *query.Engine
	patterns *cache.PatternCache
}

// NewEngine creates a new text query engine. patterns may be nil, in which
// case regex queries compile without caching.
func NewEngine(patterns *cache.PatternCache) *Engine {
	return &Engine{
		jq:       query.NewEngine(),
		patterns: patterns,
	}
}

// Query extracts data from body. If q.Mode is empty it is detected from
// contentType and the body itself. label identifies the body in jq runtime errors.
func (e *Engine) Query(ctx context.Context, body, contentType, label string, q Query) (*Result, error) {
	mode := q.Mode
	if mode == "" {
		mode = DetectMode(contentType, body)
	}

	switch mode {
	case ModeCSS:
		return QueryCSS(body, q.Expression, q.MaxResults)
	case ModeXPath:
		return QueryXPath(body, contentType, q.Expression, q.MaxResults)
	case ModeRegex:
		re, err := e.compile(q.Expression)
		if err != nil {
			return nil, err
		}
		return queryRegex(re, body, q.MaxResults), nil
	case ModeForm:
		return QueryForm(body, q.Expression, q.MaxResults)
	case ModeJQ:
		res, err := e.jq.Query(ctx, []byte(body), label, q.Expression, q.Deduplicate, q.MaxResults)
		if err != nil {
			return nil, err
		}
		out := newResult(ModeJQ, res.Values)
		out.Errors = res.Errors
		return out, nil
	default:
		return nil, fmt.Errorf("unknown mode: %q (valid: css, xpath, regex, form, jq)", mode)
	}
}

// QueryEntry runs q against the request or response body of an entry.
// An entry without that body yields an empty result rather than an error.
func (e *Engine) QueryEntry(ctx context.Context, entry *har.Entry, target string, q Query) (*Result, error) {
	var body, ct string
	switch target {
	case "", TargetResponse:
		body, ct = entry.ResponseText(), entry.ResponseContentType()
	case TargetRequest:
		body, _ = entry.PostDataText()
		ct = entry.RequestContentType()
	default:
		return nil, fmt.Errorf("unknown target: %q (valid: request, response)", target)
	}

	if body == "" {
		mode := q.Mode
		if mode == "" {
			mode = DetectMode(ct, "")
		}
		return newResult(mode, nil), nil
	}
	return e.Query(ctx, body, ct, entry.Request.URL, q)
}

// ValidateExpression checks if an expression is valid for the given mode.
func (e *Engine) ValidateExpression(expression, mode string) error {
	switch mode {
	case ModeCSS, ModeXPath, ModeForm:
		if expression == "" {
			return fmt.Errorf("%s expression is required", mode)
		}
		return nil
	case ModeRegex:
		_, err := e.compile(expression)
		return err
	case ModeJQ:
		return e.jq.ValidateExpression(expression)
	default:
		return fmt.Errorf("unknown mode: %q", mode)
	}
}

func (e *Engine) compile(expression string) (*regexp.Regexp, error) {
	if e.patterns != nil {
		return e.patterns.Compile(expression)
	}
	re, err := regexp.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid regex: %w", err)
	}
	return re, nil
}
