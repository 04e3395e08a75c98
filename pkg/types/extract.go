package types

// Option is one <option> of a select element.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SelectOptions lists the options of one select element.
type SelectOptions struct {
	SelectID string   `json:"select_id"`
	Options  []Option `json:"options"`
}

// EntrySelects is the select extraction result for one entry.
type EntrySelects struct {
	Index     int             `json:"index"`
	URL       string          `json:"url"`
	SelectIDs []string        `json:"select_ids"`
	Selects   []SelectOptions `json:"selects"`
}

// SelectOptionsResponse is the output of har_select_options.
type SelectOptionsResponse struct {
	Extractor string         `json:"extractor"`
	Entries   []EntrySelects `json:"entries,omitzero"`
	Hint      string         `json:"hint,omitempty"`
}

// AttributePair is an element id with its data-content text.
type AttributePair struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// EntryPairs is the attribute pair extraction result for one entry.
type EntryPairs struct {
	Index int             `json:"index"`
	URL   string          `json:"url"`
	Pairs []AttributePair `json:"pairs"`
}

// AttributePairsResponse is the output of har_attribute_pairs. Pairs holds
// the distinct pairs across all entries.
type AttributePairsResponse struct {
	Pattern string          `json:"pattern"`
	Pairs   []AttributePair `json:"pairs,omitzero"`
	Entries []EntryPairs    `json:"entries,omitzero"`
	Hint    string          `json:"hint,omitempty"`
}
