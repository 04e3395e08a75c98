// Package report turns filtered HAR entries into report records and writes
// them to a Sink.
package report

import (
	"unicode/utf8"

	"github.com/usestring/harscope/internal/config"
	"github.com/usestring/harscope/internal/rules"
	"github.com/usestring/harscope/pkg/har"
)

// Limits bound the body text included in an entry summary. Lengths are
// counted in characters. A zero limit disables truncation and a zero
// threshold prints responses of any length.
type Limits struct {
	PostData          int
	ResponseThreshold int
	Response          int
	OmitResponse      bool
}

// DefaultLimits returns the limits used when nothing is configured.
func DefaultLimits() Limits {
	return Limits{
		PostData:          config.DefaultPostDataLimitValue,
		ResponseThreshold: config.DefaultResponseThresholdValue,
		Response:          config.DefaultResponseLimitValue,
	}
}

// LimitsFromConfig returns the limits configured in cfg.
func LimitsFromConfig(cfg *config.Config) Limits {
	return Limits{
		PostData:          cfg.PostDataLimit,
		ResponseThreshold: cfg.ResponseThreshold,
		Response:          cfg.ResponseLimit,
	}
}

// ForRule returns l with the overrides set on r applied.
func (l Limits) ForRule(r *rules.Rule) Limits {
	if r.PostDataLimit != nil {
		l.PostData = *r.PostDataLimit
	}
	if r.ResponseThreshold != nil {
		l.ResponseThreshold = *r.ResponseThreshold
	}
	if r.ResponseLimit != nil {
		l.Response = *r.ResponseLimit
	}
	if r.OmitResponse {
		l.OmitResponse = true
	}
	return l
}

// Summary is the printable digest of one entry. PostData and Response are
// nil when the entry has no such body or it was left out by the limits.
type Summary struct {
	URL      string  `json:"url"`
	Method   string  `json:"method"`
	PostData *string `json:"postdata,omitempty"`
	Response *string `json:"response,omitempty"`
}

// Summarize builds the summary of entry under l. The response body is
// included only when it is shorter than the threshold, and then truncated
// to the response limit.
func Summarize(entry *har.Entry, l Limits) Summary {
	s := Summary{
		URL:    entry.Request.URL,
		Method: entry.Request.Method,
	}

	if text, ok := entry.PostDataText(); ok {
		text, _ = Truncate(text, l.PostData)
		s.PostData = &text
	}

	if !l.OmitResponse {
		text := entry.ResponseText()
		if text != "" && (l.ResponseThreshold <= 0 || utf8.RuneCountInString(text) < l.ResponseThreshold) {
			text, _ = Truncate(text, l.Response)
			s.Response = &text
		}
	}
	return s
}

// Truncate returns the first limit characters of s and whether anything was
// cut. limit <= 0 keeps everything.
func Truncate(s string, limit int) (string, bool) {
	if limit <= 0 || len(s) <= limit {
		return s, false
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i], true
		}
		n++
	}
	return s, false
}
