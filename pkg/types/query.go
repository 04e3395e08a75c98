package types

// QuerySummary contains summary statistics for a body query.
type QuerySummary struct {
	EntriesProcessed int  `json:"entries_processed"`
	EntriesMatched   int  `json:"entries_matched"`
	EntriesSkipped   int  `json:"entries_skipped"`
	TotalValues      int  `json:"total_values"`
	UniqueValues     int  `json:"unique_values,omitempty"`
	Deduplicated     bool `json:"deduplicated"`
	Truncated        bool `json:"truncated,omitempty"`
}

// QueryEntryResult contains per-entry query results.
type QueryEntryResult struct {
	Index      int    `json:"index"`
	URL        string `json:"url"`
	Mode       string `json:"mode,omitempty"`
	ValueCount int    `json:"value_count"`
	Skipped    bool   `json:"skipped,omitempty"`
	SkipReason string `json:"skip_reason,omitempty"`
}

// QueryResponse is the output of har_query_body.
type QueryResponse struct {
	Summary QuerySummary       `json:"summary"`
	Values  []any              `json:"values,omitzero"`
	Entries []QueryEntryResult `json:"entries,omitempty"`
	Errors  []string           `json:"errors,omitempty"`
	Hints   []string           `json:"hints,omitempty"`
}
