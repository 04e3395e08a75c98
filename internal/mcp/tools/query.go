package tools

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/harscope/pkg/contenttype"
	"github.com/usestring/harscope/pkg/textquery"
	"github.com/usestring/harscope/pkg/types"
)

const (
	defaultQueryEntries = 20
	maxQueryEntries     = 100
)

// QueryBodyInput is the input for har_query_body.
type QueryBodyInput struct {
	Indices     []int    `json:"indices,omitempty" jsonschema:"Query these entry indices"`
	Include     []string `json:"include,omitempty" jsonschema:"Or query entries whose URL contains any of these substrings"`
	Exclude     []string `json:"exclude,omitempty" jsonschema:"URL substrings to skip when using include"`
	Expression  string   `json:"expression" jsonschema:"required,Extraction expression (JQ for JSON, CSS selector for HTML, XPath for XML, regex for plain text, field name for form post data)"`
	Mode        string   `json:"mode,omitempty" jsonschema:"Expression language: jq, css, xpath, regex, form (auto-detected from content-type if omitted)"`
	Target      string   `json:"target,omitempty" jsonschema:"Which body to query: request, response, or both (default: response)"`
	Deduplicate bool     `json:"deduplicate,omitempty" jsonschema:"Remove duplicate values (default: false)"`
	MaxEntries  int      `json:"max_entries,omitempty" jsonschema:"Max entries to process (default: 20, max: 100)"`
	MaxResults  int      `json:"max_results,omitempty" jsonschema:"Max results to return (default: HARSCOPE_MAX_QUERY_RESULTS)"`
}

// ToolQueryBody extracts data from request/response bodies using expressions.
// The expression language is auto-detected from content-type or can be set
// explicitly via the mode parameter.
func ToolQueryBody(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input QueryBodyInput) (*sdkmcp.CallToolResult, types.QueryResponse, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input QueryBodyInput) (*sdkmcp.CallToolResult, types.QueryResponse, error) {
		if input.Expression == "" {
			return nil, types.QueryResponse{}, ErrInvalidInput("expression is required")
		}
		if input.Mode != "" {
			if err := d.TextQuery.ValidateExpression(input.Expression, input.Mode); err != nil {
				return nil, types.QueryResponse{}, ErrInvalidInput(err.Error())
			}
		}

		target := input.Target
		if target == "" {
			target = textquery.TargetResponse
		}
		var targets []string
		switch target {
		case textquery.TargetRequest, textquery.TargetResponse:
			targets = []string{target}
		case "both":
			targets = []string{textquery.TargetRequest, textquery.TargetResponse}
		default:
			return nil, types.QueryResponse{}, ErrInvalidInput("target must be 'request', 'response', or 'both'")
		}

		indices, err := d.Resolve(input.Indices, input.Include, input.Exclude)
		if err != nil {
			return nil, types.QueryResponse{}, err
		}

		maxEntries := input.MaxEntries
		if maxEntries <= 0 {
			maxEntries = defaultQueryEntries
		}
		if maxEntries > maxQueryEntries {
			maxEntries = maxQueryEntries
		}
		maxResults := input.MaxResults
		if maxResults <= 0 {
			maxResults = d.Config.MaxQueryResults
		}

		output := types.QueryResponse{
			Summary: types.QuerySummary{Deduplicated: input.Deduplicate},
			Values:  make([]any, 0),
			Entries: make([]types.QueryEntryResult, 0),
			Errors:  make([]string, 0),
			Hints:   make([]string, 0),
		}
		if len(indices) > maxEntries {
			indices = indices[:maxEntries]
			output.Summary.Truncated = true
			output.Hints = append(output.Hints, fmt.Sprintf("Only the first %d entries were queried; raise max_entries to see more.", maxEntries))
		}

		seen := make(map[string]bool)
		q := textquery.Query{Expression: input.Expression, Mode: input.Mode, MaxResults: maxResults}
		binarySkipped := 0

	entries:
		for _, i := range indices {
			entry := &d.Archive.Entries[i]
			output.Summary.EntriesProcessed++
			matched := false

			for _, t := range targets {
				ct := entry.ResponseContentType()
				body := entry.ResponseText()
				if t == textquery.TargetRequest {
					ct = entry.RequestContentType()
					body, _ = entry.PostDataText()
				}
				if body != "" && contenttype.IsBinary(ct, body) {
					binarySkipped++
					output.Entries = append(output.Entries, types.QueryEntryResult{
						Index: i, URL: entry.Request.URL, Skipped: true, SkipReason: "binary " + t + " body",
					})
					output.Summary.EntriesSkipped++
					continue
				}

				res, err := d.TextQuery.QueryEntry(ctx, entry, t, q)
				if err != nil {
					if ctx.Err() != nil {
						return nil, types.QueryResponse{}, ctx.Err()
					}
					output.Errors = append(output.Errors, fmt.Sprintf("entry %d %s: %v", i, t, err))
					continue
				}
				output.Errors = append(output.Errors, res.Errors...)

				if res.Count > 0 {
					matched = true
				}
				output.Entries = append(output.Entries, types.QueryEntryResult{
					Index: i, URL: entry.Request.URL, Mode: res.Mode, ValueCount: res.Count,
				})

				for _, v := range res.Values {
					output.Summary.TotalValues++
					if input.Deduplicate {
						key := valueKey(v)
						if seen[key] {
							continue
						}
						seen[key] = true
					}
					output.Values = append(output.Values, v)
					if len(output.Values) >= maxResults {
						output.Summary.Truncated = true
						if matched {
							output.Summary.EntriesMatched++
						}
						break entries
					}
				}
			}
			if matched {
				output.Summary.EntriesMatched++
			}
		}

		if input.Deduplicate {
			output.Summary.UniqueValues = len(output.Values)
		}
		if binarySkipped > 0 {
			output.Hints = append(output.Hints, fmt.Sprintf("%d binary bodies were skipped.", binarySkipped))
		}
		if len(output.Values) == 0 && len(output.Errors) == 0 && output.Summary.EntriesProcessed > 0 {
			output.Hints = append(output.Hints, "No values extracted. Use har_get_entry to inspect the body, or set mode explicitly.")
		}
		return nil, output, nil
	}
}

func valueKey(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
