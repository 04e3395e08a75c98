// Package rules defines report rule sets: named lists of URL filters, each
// paired with the report to produce for the entries it selects.
package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/usestring/harscope/pkg/extract"
	"github.com/usestring/harscope/pkg/textquery"
)

// Kind selects what a rule reports for each matching entry.
type Kind string

const (
	KindSummary        Kind = "summary"
	KindSelects        Kind = "selects"
	KindAttributePairs Kind = "attribute_pairs"
	KindQuery          Kind = "query"
)

// RuleSet is a named, ordered list of rules.
type RuleSet struct {
	Name        string `json:"name" jsonschema:"minLength=1" jsonschema_description:"Rule set name shown in report headings"`
	Description string `json:"description,omitempty"`
	Rules       []Rule `json:"rules" jsonschema:"minItems=1"`
}

// Rule filters entries by URL substring and names the report to apply.
type Rule struct {
	Title   string   `json:"title,omitempty" jsonschema_description:"Section heading printed before the rule's output"`
	Include []string `json:"include" jsonschema:"minItems=1" jsonschema_description:"An entry matches when its URL contains any of these substrings"`
	Exclude []string `json:"exclude,omitempty" jsonschema_description:"An entry is skipped when its URL contains any of these substrings"`
	Kind    Kind     `json:"kind" jsonschema:"enum=summary,enum=selects,enum=attribute_pairs,enum=query"`

	// selects
	Selects []string `json:"selects,omitempty" jsonschema_description:"name or id of each select element to list"`

	// attribute_pairs
	Attribute string `json:"attribute,omitempty"`
	IDCharset string `json:"id_charset,omitempty" jsonschema_description:"Regex character class body for ids, e.g. A-F0-9"`

	// query
	Expression  string `json:"expression,omitempty"`
	Mode        string `json:"mode,omitempty" jsonschema:"enum=css,enum=xpath,enum=regex,enum=form,enum=jq"`
	Target      string `json:"target,omitempty" jsonschema:"enum=request,enum=response"`
	Deduplicate bool   `json:"deduplicate,omitempty"`

	// summary limit overrides
	PostDataLimit     *int `json:"postdata_limit,omitempty" jsonschema:"minimum=0"`
	ResponseThreshold *int `json:"response_threshold,omitempty" jsonschema:"minimum=0"`
	ResponseLimit     *int `json:"response_limit,omitempty" jsonschema:"minimum=0"`
	OmitResponse      bool `json:"omit_response,omitempty"`
}

// AttributePattern returns the extraction pattern configured on the rule.
func (r *Rule) AttributePattern() extract.AttributePattern {
	return extract.AttributePattern{Attribute: r.Attribute, IDCharset: r.IDCharset}
}

// Query returns the body query configured on the rule.
func (r *Rule) Query(maxResults int) textquery.Query {
	return textquery.Query{
		Expression:  r.Expression,
		Mode:        r.Mode,
		MaxResults:  maxResults,
		Deduplicate: r.Deduplicate,
	}
}

// Heading returns the rule title, or a description built from its filters.
func (r *Rule) Heading() string {
	if r.Title != "" {
		return r.Title
	}
	h := fmt.Sprintf("%s: %s", r.Kind, strings.Join(r.Include, " | "))
	if len(r.Exclude) > 0 {
		h += " (excluding " + strings.Join(r.Exclude, ", ") + ")"
	}
	return h
}

// Check reports constraints the schema cannot express: kind-specific
// required fields and expressions that must compile.
func (rs *RuleSet) Check(queries *textquery.Engine) error {
	var errs []error
	for i := range rs.Rules {
		if err := rs.Rules[i].check(queries); err != nil {
			errs = append(errs, fmt.Errorf("rules[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (r *Rule) check(queries *textquery.Engine) error {
	switch r.Kind {
	case KindSummary:
		return nil
	case KindSelects:
		if len(r.Selects) == 0 {
			return errors.New("selects rule needs at least one select id")
		}
	case KindAttributePairs:
		if _, err := extract.AttributePairs("", r.AttributePattern()); err != nil {
			return err
		}
	case KindQuery:
		if r.Expression == "" {
			return errors.New("query rule needs an expression")
		}
		switch r.Target {
		case "", textquery.TargetRequest, textquery.TargetResponse:
		default:
			return fmt.Errorf("unknown target %q (valid: request, response)", r.Target)
		}
		if r.Mode != "" && queries != nil {
			return queries.ValidateExpression(r.Expression, r.Mode)
		}
	default:
		return fmt.Errorf("unknown kind %q", r.Kind)
	}
	return nil
}
