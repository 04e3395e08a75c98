package textquery

import (
	"fmt"
	"net/url"
)

// QueryForm extracts values from form-urlencoded bodies such as recorded
// post data. Expression "*" or "." returns all fields as one map; a field
// name returns that field's values.
func QueryForm(body, expression string, maxResults int) (*Result, error) {
	fields, err := url.ParseQuery(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse form data: %w", err)
	}

	if expression == "*" || expression == "." {
		m := make(map[string]any, len(fields))
		for key, vals := range fields {
			if len(vals) == 1 {
				m[key] = vals[0]
				continue
			}
			list := make([]any, len(vals))
			for i, v := range vals {
				list[i] = v
			}
			m[key] = list
		}
		return newResult(ModeForm, []any{m}), nil
	}

	var values []any
	for _, v := range fields[expression] {
		if maxResults > 0 && len(values) >= maxResults {
			break
		}
		values = append(values, v)
	}
	return newResult(ModeForm, values), nil
}
