package tools

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/usestring/harscope/pkg/types"
)

func TestCheckOutputSchema_panics(t *testing.T) {
	type nilSlice struct {
		Items []string `json:"items"`
	}
	type rawMessage struct {
		Data json.RawMessage `json:"data,omitempty"`
	}
	type inner struct {
		Schema json.RawMessage `json:"schema,omitempty"`
	}
	type nestedRawMessage struct {
		Nested inner `json:"nested"`
	}

	assert.Panics(t, func() { CheckOutputSchema[nilSlice]("nil_slice") })
	assert.Panics(t, func() { CheckOutputSchema[rawMessage]("raw_message") })
	assert.Panics(t, func() { CheckOutputSchema[nestedRawMessage]("nested_raw_message") })
}

func TestCheckOutputSchema_ok(t *testing.T) {
	type omitzero struct {
		Items []string `json:"items,omitzero"`
	}
	type omitempty struct {
		Items []any `json:"items,omitempty"`
	}
	type pointerSlice struct {
		Items *[]string `json:"items"`
	}

	assert.NotPanics(t, func() { CheckOutputSchema[omitzero]("omitzero") })
	assert.NotPanics(t, func() { CheckOutputSchema[omitempty]("omitempty") })
	assert.NotPanics(t, func() { CheckOutputSchema[pointerSlice]("pointer_slice") })
	assert.NotPanics(t, func() { CheckOutputSchema[any]("any") })
}

func TestCheckOutputSchema_toolOutputs(t *testing.T) {
	assert.NotPanics(t, func() { CheckOutputSchema[types.ListEntriesResponse]("har_list_entries") })
	assert.NotPanics(t, func() { CheckOutputSchema[types.EntryDetail]("har_get_entry") })
	assert.NotPanics(t, func() { CheckOutputSchema[types.SelectOptionsResponse]("har_select_options") })
	assert.NotPanics(t, func() { CheckOutputSchema[types.AttributePairsResponse]("har_attribute_pairs") })
	assert.NotPanics(t, func() { CheckOutputSchema[types.QueryResponse]("har_query_body") })
}
