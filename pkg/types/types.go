// Package types provides the tool input and output shapes served by the
// harscope MCP server. They are designed for external consumption.
package types

// EntrySummary is a compact entry representation for list results.
type EntrySummary struct {
	Index               int    `json:"index"`
	Method              string `json:"method"`
	URL                 string `json:"url"`
	Status              int    `json:"status"`
	StartedDateTime     string `json:"started_date_time,omitempty"`
	RequestContentType  string `json:"request_content_type,omitempty"`
	ResponseContentType string `json:"response_content_type,omitempty"`
	PostDataChars       int    `json:"postdata_chars"`
	ResponseChars       int    `json:"response_chars"`
}

// Header is a single request or response header.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// EntryDetail is the body-level view of one entry.
type EntryDetail struct {
	Summary           EntrySummary `json:"summary"`
	RequestHeaders    []Header     `json:"request_headers,omitempty"`
	ResponseHeaders   []Header     `json:"response_headers,omitempty"`
	PostData          string       `json:"postdata,omitempty"`
	Response          string       `json:"response,omitempty"`
	PostDataTruncated bool         `json:"postdata_truncated,omitempty"`
	ResponseTruncated bool         `json:"response_truncated,omitempty"`
	Resource          *ResourceRef `json:"resource,omitempty"`
}

// ResourceRef points to an MCP resource.
type ResourceRef struct {
	URI  string `json:"uri"`
	MIME string `json:"mime"`
	Hint string `json:"hint,omitempty"`
}
