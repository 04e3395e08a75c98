package rules

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// Document formats accepted by Parse.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Load reads a rule set from a YAML or JSON file. The format follows the
// file extension; anything other than .json is read as YAML.
func Load(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule set: %w", err)
	}
	format := FormatYAML
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = FormatJSON
	}
	return Parse(data, path, format)
}

// Parse decodes and validates a rule set document. source names the
// document in error messages.
func Parse(data []byte, source, format string) (*RuleSet, error) {
	raw, err := toJSON(data, format)
	if err != nil {
		return nil, fmt.Errorf("parse rule set %s: %w", source, err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse rule set %s: %w", source, err)
	}
	if err := validate(source, doc); err != nil {
		return nil, err
	}

	var rs RuleSet
	if err := json.Unmarshal(raw, &rs); err != nil {
		return nil, fmt.Errorf("decode rule set %s: %w", source, err)
	}
	if err := rs.Check(nil); err != nil {
		return nil, fmt.Errorf("invalid rule set %s: %w", source, err)
	}
	return &rs, nil
}

func toJSON(data []byte, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return data, nil
	case FormatYAML, "":
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		return json.Marshal(normalizeYAML(v))
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// normalizeYAML converts map[any]any nodes, which encoding/json cannot
// marshal, into map[string]any.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeYAML(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return m
	case []any:
		for i, val := range t {
			t[i] = normalizeYAML(val)
		}
		return t
	default:
		return v
	}
}
