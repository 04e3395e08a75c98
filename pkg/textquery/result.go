package textquery

// Mode constants for extraction languages.
const (
	ModeCSS   = "css"
	ModeXPath = "xpath"
	ModeRegex = "regex"
	ModeForm  = "form"
	ModeJQ    = "jq"
)

// Modes lists every supported mode.
var Modes = []string{ModeCSS, ModeXPath, ModeRegex, ModeForm, ModeJQ}

// Query describes one extraction against a body.
type Query struct {
	Expression  string
	Mode        string // detected from the content type or body when empty
	MaxResults  int    // 0 = unlimited
	Deduplicate bool   // jq mode only
}

// Result holds extraction results from a single body.
type Result struct {
	Values []any    `json:"values"`
	Count  int      `json:"count"`
	Mode   string   `json:"mode"`
	Errors []string `json:"errors,omitempty"`
}

func newResult(mode string, values []any) *Result {
	if values == nil {
		values = []any{}
	}
	return &Result{Values: values, Count: len(values), Mode: mode}
}

// textCollector gathers trimmed, non-empty node texts up to a limit.
type textCollector struct {
	max    int
	values []any
}

func (c *textCollector) full() bool {
	return c.max > 0 && len(c.values) >= c.max
}

func (c *textCollector) add(text string) {
	if text != "" && !c.full() {
		c.values = append(c.values, text)
	}
}
