package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/harscope/pkg/extract"
	"github.com/usestring/harscope/pkg/types"
)

// SelectOptionsInput is the input for har_select_options.
type SelectOptionsInput struct {
	Indices   []int    `json:"indices,omitempty" jsonschema:"Entry indices from har_list_entries"`
	Include   []string `json:"include,omitempty" jsonschema:"Or select entries whose URL contains any of these substrings"`
	Exclude   []string `json:"exclude,omitempty" jsonschema:"URL substrings to skip when using include"`
	SelectIDs []string `json:"select_ids,omitempty" jsonschema:"name or id of each select element to list options for (default: only list select ids)"`
	Extractor string   `json:"extractor,omitempty" jsonschema:"regex (default, tolerant of broken markup) or markup (HTML parser)"`
}

// AttributePairsInput is the input for har_attribute_pairs.
type AttributePairsInput struct {
	Indices   []int    `json:"indices,omitempty" jsonschema:"Entry indices from har_list_entries"`
	Include   []string `json:"include,omitempty" jsonschema:"Or select entries whose URL contains any of these substrings"`
	Exclude   []string `json:"exclude,omitempty" jsonschema:"URL substrings to skip when using include"`
	Attribute string   `json:"attribute,omitempty" jsonschema:"Attribute carrying the id (default: xfyqjd_id)"`
	IDCharset string   `json:"id_charset,omitempty" jsonschema:"Regex character class body for ids (default: A-F0-9)"`
}

// ToolSelectOptions lists <select> elements and their options in response
// bodies.
func ToolSelectOptions(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input SelectOptionsInput) (*sdkmcp.CallToolResult, types.SelectOptionsResponse, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input SelectOptionsInput) (*sdkmcp.CallToolResult, types.SelectOptionsResponse, error) {
		indices, err := d.Resolve(input.Indices, input.Include, input.Exclude)
		if err != nil {
			return nil, types.SelectOptionsResponse{}, err
		}

		x := d.Extractor
		backend := input.Extractor
		if backend == "" {
			backend = d.Config.Extractor
		}
		if backend != d.Config.Extractor || x == nil {
			x, err = extract.New(backend, d.Patterns)
			if err != nil {
				return nil, types.SelectOptionsResponse{}, ErrInvalidInput(err.Error())
			}
		}

		output := types.SelectOptionsResponse{
			Extractor: backend,
			Entries:   make([]types.EntrySelects, 0, len(indices)),
		}
		withSelects := 0
		for _, i := range indices {
			if err := ctx.Err(); err != nil {
				return nil, types.SelectOptionsResponse{}, err
			}
			entry := &d.Archive.Entries[i]
			es := types.EntrySelects{
				Index:     i,
				URL:       entry.Request.URL,
				SelectIDs: []string{},
				Selects:   make([]types.SelectOptions, 0, len(input.SelectIDs)),
			}
			body := entry.ResponseText()
			if body != "" {
				es.SelectIDs = x.SelectIDs(body)
				for _, id := range input.SelectIDs {
					es.Selects = append(es.Selects, types.SelectOptions{
						SelectID: id,
						Options:  toOptions(x.SelectOptions(body, id)),
					})
				}
			}
			if len(es.SelectIDs) > 0 {
				withSelects++
			}
			output.Entries = append(output.Entries, es)
		}

		if len(indices) > 0 && withSelects == 0 {
			output.Hint = "No select elements found. Check that the entries are HTML pages with recorded response bodies."
		}
		return nil, output, nil
	}
}

// ToolAttributePairs extracts distinct id/data-content pairs from response
// bodies.
func ToolAttributePairs(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input AttributePairsInput) (*sdkmcp.CallToolResult, types.AttributePairsResponse, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input AttributePairsInput) (*sdkmcp.CallToolResult, types.AttributePairsResponse, error) {
		indices, err := d.Resolve(input.Indices, input.Include, input.Exclude)
		if err != nil {
			return nil, types.AttributePairsResponse{}, err
		}

		pattern := extract.AttributePattern{Attribute: input.Attribute, IDCharset: input.IDCharset}
		if _, err := d.Pairs.AttributePairs("", pattern); err != nil {
			return nil, types.AttributePairsResponse{}, ErrInvalidInput(err.Error())
		}
		output := types.AttributePairsResponse{
			Pattern: pattern.Expression(),
			Pairs:   make([]types.AttributePair, 0),
			Entries: make([]types.EntryPairs, 0, len(indices)),
		}

		seen := make(map[extract.Pair]bool)
		for _, i := range indices {
			if err := ctx.Err(); err != nil {
				return nil, types.AttributePairsResponse{}, err
			}
			entry := &d.Archive.Entries[i]
			body := entry.ResponseText()
			if body == "" {
				continue
			}
			pairs, err := d.Pairs.AttributePairs(body, pattern)
			if err != nil {
				return nil, types.AttributePairsResponse{}, ErrInvalidInput(err.Error())
			}

			ep := types.EntryPairs{Index: i, URL: entry.Request.URL, Pairs: make([]types.AttributePair, 0, len(pairs))}
			for _, p := range pairs {
				ap := types.AttributePair{ID: p.ID, Content: p.Content}
				ep.Pairs = append(ep.Pairs, ap)
				if !seen[p] {
					seen[p] = true
					output.Pairs = append(output.Pairs, ap)
				}
			}
			output.Entries = append(output.Entries, ep)
		}

		if len(output.Pairs) == 0 {
			output.Hint = fmt.Sprintf("No pairs matched %s in %d entries.", output.Pattern, len(indices))
		}
		return nil, output, nil
	}
}

func toOptions(in []extract.Option) []types.Option {
	out := make([]types.Option, len(in))
	for i, o := range in {
		out[i] = types.Option{Value: o.Value, Label: o.Label}
	}
	return out
}
