// Package tools contains MCP tool implementations for HAR archives.
package tools

import (
	"unicode/utf8"

	"github.com/usestring/harscope/pkg/har"
	"github.com/usestring/harscope/pkg/types"
)

// MIME type constant.
const MimeJSON = "application/json"

// BuildEntrySummary creates an EntrySummary for the entry at index.
func BuildEntrySummary(index int, entry *har.Entry) types.EntrySummary {
	post, _ := entry.PostDataText()
	return types.EntrySummary{
		Index:               index,
		Method:              entry.Request.Method,
		URL:                 entry.Request.URL,
		Status:              entry.Response.Status,
		StartedDateTime:     entry.StartedDateTime,
		RequestContentType:  entry.RequestContentType(),
		ResponseContentType: entry.ResponseContentType(),
		PostDataChars:       utf8.RuneCountInString(post),
		ResponseChars:       utf8.RuneCountInString(entry.ResponseText()),
	}
}

// toHeaders converts HAR headers for display.
func toHeaders(in []har.NameValue) []types.Header {
	if len(in) == 0 {
		return nil
	}
	out := make([]types.Header, len(in))
	for i, h := range in {
		out[i] = types.Header{Name: h.Name, Value: h.Value}
	}
	return out
}
