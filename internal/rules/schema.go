package rules

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	invopop "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const schemaURL = "harscope-rules.json"

// ValidationError lists the schema violations found in a rule document.
type ValidationError struct {
	Source string
	Issues []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid rule set %s: %s", e.Source, strings.Join(e.Issues, "; "))
}

// Schema returns the JSON Schema for rule set documents.
func Schema() *invopop.Schema {
	r := &invopop.Reflector{
		Anonymous:      true,
		ExpandedStruct: true,
	}
	return r.Reflect(&RuleSet{})
}

// SchemaJSON returns Schema as indented JSON.
func SchemaJSON() ([]byte, error) {
	return json.MarshalIndent(Schema(), "", "  ")
}

var (
	compiledOnce sync.Once
	compiled     *jsonschema.Schema
	compileErr   error
)

func validator() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		raw, err := json.Marshal(Schema())
		if err != nil {
			compileErr = fmt.Errorf("marshaling schema: %w", err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(raw)))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// validate checks a decoded JSON document against the rule set schema.
func validate(source string, doc any) error {
	sch, err := validator()
	if err != nil {
		return fmt.Errorf("compiling rule schema: %w", err)
	}

	err = sch.Validate(doc)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return &ValidationError{Source: source, Issues: []string{err.Error()}}
	}
	return &ValidationError{Source: source, Issues: collectIssues(verr)}
}

// printer renders validation messages in English.
var printer = message.NewPrinter(language.English)

func collectIssues(verr *jsonschema.ValidationError) []string {
	byPath := make(map[string][]string)
	collectErrors(verr, byPath)

	var issues []string
	for path, msgs := range byPath {
		seen := make(map[string]bool)
		for _, msg := range msgs {
			if seen[msg] {
				continue
			}
			seen[msg] = true
			if path != "" {
				issues = append(issues, path+": "+msg)
			} else {
				issues = append(issues, msg)
			}
		}
	}
	sort.Strings(issues)
	return issues
}

// collectErrors gathers leaf errors keyed by instance location.
func collectErrors(err *jsonschema.ValidationError, byPath map[string][]string) {
	path := ""
	if len(err.InstanceLocation) > 0 {
		path = "/" + strings.Join(err.InstanceLocation, "/")
	}

	if err.ErrorKind != nil && len(err.Causes) == 0 {
		msg := err.ErrorKind.LocalizedString(printer)
		if !strings.HasPrefix(msg, "$ref ") && !strings.HasPrefix(msg, "doesn't validate with") {
			byPath[path] = append(byPath[path], msg)
		}
	}

	for _, cause := range err.Causes {
		collectErrors(cause, byPath)
	}
}
