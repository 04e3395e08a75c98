package textquery

import (
	"regexp"
)

// queryRegex extracts matches from text. A pattern without groups yields the
// full match, one group yields that group, and several groups yield a list
// of all groups per match.
func queryRegex(re *regexp.Regexp, body string, maxResults int) *Result {
	groups := re.NumSubexp()

	var values []any
	for _, m := range re.FindAllStringSubmatch(body, -1) {
		if maxResults > 0 && len(values) >= maxResults {
			break
		}
		switch groups {
		case 0:
			values = append(values, m[0])
		case 1:
			values = append(values, m[1])
		default:
			tuple := make([]any, groups)
			for i := range groups {
				tuple[i] = m[i+1]
			}
			values = append(values, tuple)
		}
	}

	return newResult(ModeRegex, values)
}
