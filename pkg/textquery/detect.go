package textquery

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/usestring/harscope/pkg/contenttype"
)

// DetectMode picks the query mode for a body. The content type decides when
// it names a structured format. Captures often record post data and plain
// text responses without a useful mime type, so those bodies are sniffed.
func DetectMode(ct, body string) string {
	category := contenttype.Classify(ct)
	switch category {
	case contenttype.JSON:
		return ModeJQ
	case contenttype.HTML:
		return ModeCSS
	case contenttype.XML:
		return ModeXPath
	case contenttype.Form:
		return ModeForm
	}
	if ct == "" || category == contenttype.Text {
		return sniffMode(body)
	}
	return ModeRegex
}

func sniffMode(body string) string {
	s := strings.TrimSpace(body)
	switch {
	case s == "":
		return ModeRegex
	case s[0] == '{' || s[0] == '[':
		if json.Valid([]byte(s)) {
			return ModeJQ
		}
	case strings.HasPrefix(s, "<?xml"):
		return ModeXPath
	case s[0] == '<':
		return ModeCSS
	case looksLikeForm(s):
		return ModeForm
	}
	return ModeRegex
}

// looksLikeForm accepts a=b pairs joined by & with no whitespace.
func looksLikeForm(s string) bool {
	if !strings.Contains(s, "=") || strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	values, err := url.ParseQuery(s)
	return err == nil && len(values) > 0
}
