package report

import (
	"github.com/usestring/harscope/pkg/extract"
	"github.com/usestring/harscope/pkg/textquery"
)

// Sink receives report records in order. Implementations decide the output
// format; the runner never writes output itself.
type Sink interface {
	WriteSection(s Section) error
	WriteSummary(s Summary) error
	WriteSelects(r SelectReport) error
	WritePairs(r PairReport) error
	WriteQuery(r QueryReport) error
	WriteNote(msg string) error
}

// Section opens the output of one rule.
type Section struct {
	Title   string `json:"title"`
	Matches int    `json:"matches"`
}

// SelectOptions is the option list of one <select> element.
type SelectOptions struct {
	ID      string           `json:"id"`
	Options []extract.Option `json:"options"`
}

// SelectReport lists the selects found in one entry's response. IDs and
// Selects are empty when the entry has no response body.
type SelectReport struct {
	URL     string          `json:"url"`
	IDs     []string        `json:"ids"`
	Selects []SelectOptions `json:"selects"`
}

// PairReport holds the distinct attribute/content pairs of one entry.
type PairReport struct {
	URL   string         `json:"url"`
	Pairs []extract.Pair `json:"pairs"`
}

// QueryReport holds the result of a body query against one entry.
type QueryReport struct {
	URL    string            `json:"url"`
	Target string            `json:"target"`
	Result *textquery.Result `json:"result"`
}
