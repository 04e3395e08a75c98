package cli

import (
	"github.com/spf13/cobra"

	"github.com/usestring/harscope/internal/rules"
)

// urlFilter holds the --include/--exclude flags shared by the single-rule
// commands. StringArray keeps commas inside URL fragments intact.
type urlFilter struct {
	include []string
	exclude []string
}

func (f *urlFilter) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.include, "include", "i", nil, "URL substring to match (repeatable)")
	cmd.Flags().StringArrayVarP(&f.exclude, "exclude", "x", nil, "URL substring to skip (repeatable)")
	_ = cmd.MarkFlagRequired("include")
}

// singleRule wraps one ad-hoc rule in a rule set.
func singleRule(name string, rule rules.Rule) *rules.RuleSet {
	return &rules.RuleSet{Name: name, Rules: []rules.Rule{rule}}
}

func newFilterCmd(g *globalOptions) *cobra.Command {
	var (
		f            urlFilter
		omitResponse bool
	)

	cmd := &cobra.Command{
		Use:   "filter <har>...",
		Short: "Print URL, method, post data and response of matching entries",
		Example: `  harscope filter capture.har -i jxzxjhgl -x js
  harscope filter capture.har -i jxzxjhglList --response-limit 500`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs := singleRule("filter", rules.Rule{
				Include:      f.include,
				Exclude:      f.exclude,
				Kind:         rules.KindSummary,
				OmitResponse: omitResponse,
			})
			return runRuleSet(cmd.Context(), g, cmd.OutOrStdout(), args, rs)
		},
	}

	f.register(cmd)
	cmd.Flags().BoolVar(&omitResponse, "omit-response", false, "Do not print response bodies")
	return cmd
}

func newSelectsCmd(g *globalOptions) *cobra.Command {
	var (
		f         urlFilter
		selectIDs []string
	)

	cmd := &cobra.Command{
		Use:   "selects <har>...",
		Short: "List <select> ids and the options of the named selects",
		Example: `  harscope selects capture.har -i jxzxjhkcxx_cxJxzxjhkcxxIndex -x doType -s jg_id -s njdm_id
  harscope selects capture.har -i Index.html -s njdm_id --extractor markup`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs := singleRule("selects", rules.Rule{
				Include: f.include,
				Exclude: f.exclude,
				Kind:    rules.KindSelects,
				Selects: selectIDs,
			})
			return runRuleSet(cmd.Context(), g, cmd.OutOrStdout(), args, rs)
		},
	}

	f.register(cmd)
	cmd.Flags().StringArrayVarP(&selectIDs, "select", "s", nil, "name or id of a select element (repeatable)")
	_ = cmd.MarkFlagRequired("select")
	return cmd
}

func newPairsCmd(g *globalOptions) *cobra.Command {
	var (
		f         urlFilter
		attribute string
		idCharset string
	)

	cmd := &cobra.Command{
		Use:   "pairs <har>...",
		Short: "Extract distinct id/data-content attribute pairs from HTML responses",
		Example: `  harscope pairs capture.har -i xsxyqk_cxXsxyqkIndex
  harscope pairs capture.har -i Index.html --attribute kch_id --id-charset 'A-Z0-9'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs := singleRule("pairs", rules.Rule{
				Include:   f.include,
				Exclude:   f.exclude,
				Kind:      rules.KindAttributePairs,
				Attribute: attribute,
				IDCharset: idCharset,
			})
			return runRuleSet(cmd.Context(), g, cmd.OutOrStdout(), args, rs)
		},
	}

	f.register(cmd)
	cmd.Flags().StringVar(&attribute, "attribute", "", "Attribute carrying the id (default: xfyqjd_id)")
	cmd.Flags().StringVar(&idCharset, "id-charset", "", "Regex character class body for ids (default: A-F0-9)")
	return cmd
}

func newQueryCmd(g *globalOptions) *cobra.Command {
	var (
		f           urlFilter
		expression  string
		mode        string
		target      string
		deduplicate bool
	)

	cmd := &cobra.Command{
		Use:   "query <har>...",
		Short: "Query request or response bodies with jq, css, xpath, regex or form expressions",
		Long: `Query request or response bodies of matching entries.

The expression language follows the body's content type unless --mode is set:
JSON uses jq, HTML uses css, XML uses xpath, url-encoded forms use form and
anything else uses regex.`,
		Example: `  harscope query capture.har -i jxzxjhglList -e '.items[].zymc' --dedupe
  harscope query capture.har -i jxzxjhglList -e njdm_id --target request`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs := singleRule("query", rules.Rule{
				Include:     f.include,
				Exclude:     f.exclude,
				Kind:        rules.KindQuery,
				Expression:  expression,
				Mode:        mode,
				Target:      target,
				Deduplicate: deduplicate,
			})
			return runRuleSet(cmd.Context(), g, cmd.OutOrStdout(), args, rs)
		},
	}

	f.register(cmd)
	cmd.Flags().StringVarP(&expression, "expr", "e", "", "Extraction expression")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "Expression language: jq, css, xpath, regex, form")
	cmd.Flags().StringVar(&target, "target", "", "Body to query: request or response (default: response)")
	cmd.Flags().BoolVar(&deduplicate, "dedupe", false, "Drop repeated values")
	_ = cmd.MarkFlagRequired("expr")
	return cmd
}
