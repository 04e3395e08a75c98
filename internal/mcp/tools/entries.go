package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/harscope/internal/report"
	"github.com/usestring/harscope/pkg/har"
	"github.com/usestring/harscope/pkg/types"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// ListEntriesInput is the input for har_list_entries.
type ListEntriesInput struct {
	Include []string `json:"include,omitempty" jsonschema:"URL substrings; an entry matches when its URL contains any of them (default: all entries)"`
	Exclude []string `json:"exclude,omitempty" jsonschema:"URL substrings; an entry is skipped when its URL contains any of them"`
	Offset  int      `json:"offset,omitempty" jsonschema:"Number of matching entries to skip"`
	Limit   int      `json:"limit,omitempty" jsonschema:"Max entries to return (default: 50, max: 500)"`
}

// GetEntryInput is the input for har_get_entry.
type GetEntryInput struct {
	Index          int  `json:"index" jsonschema:"required,Entry index from har_list_entries"`
	MaxChars       int  `json:"max_chars,omitempty" jsonschema:"Max characters per body (default: HARSCOPE_RESPONSE_LIMIT)"`
	FullBody       bool `json:"full_body,omitempty" jsonschema:"Return bodies without truncation"`
	IncludeHeaders bool `json:"include_headers,omitempty" jsonschema:"Include request/response headers (default: false)"`
}

// ToolListEntries lists archive entries, optionally filtered by URL.
func ToolListEntries(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListEntriesInput) (*sdkmcp.CallToolResult, types.ListEntriesResponse, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListEntriesInput) (*sdkmcp.CallToolResult, types.ListEntriesResponse, error) {
		if input.Offset < 0 {
			return nil, types.ListEntriesResponse{}, ErrInvalidInput("offset must not be negative")
		}

		limit := input.Limit
		if limit <= 0 {
			limit = defaultListLimit
		}
		if limit > maxListLimit {
			limit = maxListLimit
		}

		include := input.Include
		if len(include) == 0 {
			// The empty substring matches every URL.
			include = []string{""}
		}
		indices, err := d.Resolve(nil, include, input.Exclude)
		if err != nil {
			return nil, types.ListEntriesResponse{}, err
		}

		output := types.ListEntriesResponse{
			Archive:    d.Archive.Path,
			TotalCount: len(d.Archive.Entries),
			Matched:    len(indices),
			Entries:    make([]types.EntrySummary, 0),
		}

		if input.Offset < len(indices) {
			page := indices[input.Offset:]
			if len(page) > limit {
				page = page[:limit]
				output.Truncated = true
			}
			for _, i := range page {
				output.Entries = append(output.Entries, BuildEntrySummary(i, &d.Archive.Entries[i]))
			}
		}

		switch {
		case output.Matched == 0:
			output.Hint = "No entries matched. Include filters are case-sensitive substrings of the full URL."
		case output.Truncated:
			output.Hint = fmt.Sprintf("Showing %d of %d matches. Use offset=%d for the next page.",
				len(output.Entries), output.Matched, input.Offset+len(output.Entries))
		}
		return nil, output, nil
	}
}

// ToolGetEntry returns one entry with its bodies.
func ToolGetEntry(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input GetEntryInput) (*sdkmcp.CallToolResult, types.EntryDetail, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input GetEntryInput) (*sdkmcp.CallToolResult, types.EntryDetail, error) {
		entry, err := d.Entry(input.Index)
		if err != nil {
			return nil, types.EntryDetail{}, err
		}

		maxChars := input.MaxChars
		if maxChars <= 0 {
			maxChars = d.Config.ResponseLimit
		}
		if input.FullBody {
			maxChars = 0
		}

		output := BuildEntryDetail(input.Index, entry, maxChars, input.IncludeHeaders)
		if output.PostDataTruncated || output.ResponseTruncated {
			output.Resource = &types.ResourceRef{
				URI:  EntryURI(input.Index),
				MIME: MimeJSON,
				Hint: "Read this resource for the complete bodies",
			}
		}
		return nil, output, nil
	}
}

// BuildEntryDetail creates an EntryDetail with bodies clipped to maxChars.
// maxChars <= 0 returns complete bodies.
func BuildEntryDetail(index int, entry *har.Entry, maxChars int, headers bool) types.EntryDetail {
	output := types.EntryDetail{
		Summary: BuildEntrySummary(index, entry),
	}
	if headers {
		output.RequestHeaders = toHeaders(entry.Request.Headers)
		output.ResponseHeaders = toHeaders(entry.Response.Headers)
	}
	if post, ok := entry.PostDataText(); ok {
		output.PostData, output.PostDataTruncated = report.Truncate(post, maxChars)
	}
	output.Response, output.ResponseTruncated = report.Truncate(entry.ResponseText(), maxChars)
	return output
}
