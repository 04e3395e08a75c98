package types

// ListEntriesResponse is the output of har_list_entries.
type ListEntriesResponse struct {
	Archive    string         `json:"archive"`
	TotalCount int            `json:"total_count"`
	Matched    int            `json:"matched"`
	Entries    []EntrySummary `json:"entries,omitzero"`
	Truncated  bool           `json:"truncated,omitempty"`
	Hint       string         `json:"hint,omitempty"`
}
