package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/usestring/harscope/pkg/extract"
)

const banner = "============================================================"

// TextSink writes the line-oriented, human-readable report.
type TextSink struct {
	w        io.Writer
	sections int
}

// NewTextSink creates a text sink writing to w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

// WriteSection implements Sink.
func (s *TextSink) WriteSection(sec Section) error {
	var b strings.Builder
	if s.sections > 0 {
		b.WriteString("\n")
	}
	s.sections++
	b.WriteString(banner + "\n" + sec.Title + "\n" + banner + "\n")
	return s.write(b.String())
}

// WriteSummary implements Sink.
func (s *TextSink) WriteSummary(sum Summary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "URL: %s\n", sum.URL)
	fmt.Fprintf(&b, "Method: %s\n", sum.Method)
	if sum.PostData != nil {
		fmt.Fprintf(&b, "PostData: %s\n", *sum.PostData)
	}
	if sum.Response != nil {
		fmt.Fprintf(&b, "Response: %s\n", *sum.Response)
	}
	b.WriteString("---\n")
	return s.write(b.String())
}

// WriteSelects implements Sink.
func (s *TextSink) WriteSelects(r SelectReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "URL: %s\n", r.URL)
	if len(r.IDs) > 0 {
		fmt.Fprintf(&b, "All select IDs: %s\n", FormatIDs(r.IDs))
	}
	for _, sel := range r.Selects {
		fmt.Fprintf(&b, "%s: %s\n", sel.ID, FormatOptions(sel.Options))
	}
	b.WriteString("---\n")
	return s.write(b.String())
}

// WritePairs implements Sink.
func (s *TextSink) WritePairs(r PairReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "URL: %s\n", r.URL)
	for _, p := range r.Pairs {
		fmt.Fprintf(&b, "  ID: %s\n  Content: %s\n---\n", p.ID, p.Content)
	}
	return s.write(b.String())
}

// WriteQuery implements Sink.
func (s *TextSink) WriteQuery(r QueryReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "URL: %s\n", r.URL)
	fmt.Fprintf(&b, "Matches (%s, %s): %d\n", r.Result.Mode, r.Target, r.Result.Count)
	for _, v := range r.Result.Values {
		fmt.Fprintf(&b, "  %s\n", formatValue(v))
	}
	for _, e := range r.Result.Errors {
		fmt.Fprintf(&b, "  error: %s\n", e)
	}
	b.WriteString("---\n")
	return s.write(b.String())
}

// WriteNote implements Sink.
func (s *TextSink) WriteNote(msg string) error {
	return s.write(msg + "\n")
}

func (s *TextSink) write(text string) error {
	_, err := io.WriteString(s.w, text)
	return err
}

// FormatOptions renders options as [("value", "label"), ...].
func FormatOptions(options []extract.Option) string {
	parts := make([]string, len(options))
	for i, o := range options {
		parts[i] = o.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// FormatIDs renders ids as ["a", "b"].
func FormatIDs(ids []string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Quote(id)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// formatValue prints strings bare and everything else as JSON.
func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
