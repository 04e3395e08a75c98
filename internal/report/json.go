package report

import (
	"encoding/json"
	"io"
)

// Record kinds written by JSONSink.
const (
	KindSection = "section"
	KindSummary = "summary"
	KindSelects = "selects"
	KindPairs   = "pairs"
	KindQuery   = "query"
	KindNote    = "note"
)

// JSONSink writes one JSON object per record, each tagged with a "kind"
// field.
type JSONSink struct {
	enc *json.Encoder
}

// NewJSONSink creates a JSON lines sink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSONSink{enc: enc}
}

// WriteSection implements Sink.
func (s *JSONSink) WriteSection(sec Section) error {
	return s.enc.Encode(struct {
		Kind string `json:"kind"`
		Section
	}{KindSection, sec})
}

// WriteSummary implements Sink.
func (s *JSONSink) WriteSummary(sum Summary) error {
	return s.enc.Encode(struct {
		Kind string `json:"kind"`
		Summary
	}{KindSummary, sum})
}

// WriteSelects implements Sink.
func (s *JSONSink) WriteSelects(r SelectReport) error {
	return s.enc.Encode(struct {
		Kind string `json:"kind"`
		SelectReport
	}{KindSelects, r})
}

// WritePairs implements Sink.
func (s *JSONSink) WritePairs(r PairReport) error {
	return s.enc.Encode(struct {
		Kind string `json:"kind"`
		PairReport
	}{KindPairs, r})
}

// WriteQuery implements Sink.
func (s *JSONSink) WriteQuery(r QueryReport) error {
	return s.enc.Encode(struct {
		Kind string `json:"kind"`
		QueryReport
	}{KindQuery, r})
}

// WriteNote implements Sink.
func (s *JSONSink) WriteNote(msg string) error {
	return s.enc.Encode(struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	}{KindNote, msg})
}
