package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/usestring/harscope/internal/rules"
)

func newReportCmd(g *globalOptions) *cobra.Command {
	var (
		preset    string
		rulesFile string
	)

	cmd := &cobra.Command{
		Use:   "report <har>...",
		Short: "Run a rule set (builtin preset or rule file) against HAR files",
		Long: `Run every rule of a rule set against each archive, in argument order.

Builtin presets: ` + strings.Join(rules.BuiltinNames(), ", ") + `.
Use 'harscope schema' for the rule file format.`,
		Example: `  harscope report capture.har
  harscope report --preset academic-status capture.har
  harscope report --rules rules.yaml day1.har day2.har --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				rs  *rules.RuleSet
				err error
			)
			if rulesFile != "" {
				rs, err = rules.Load(rulesFile)
			} else {
				rs, err = rules.Builtin(preset)
			}
			if err != nil {
				return err
			}
			return runRuleSet(cmd.Context(), g, cmd.OutOrStdout(), args, rs)
		},
	}

	cmd.Flags().StringVarP(&preset, "preset", "p", "course-plan", "Builtin rule set to run")
	cmd.Flags().StringVarP(&rulesFile, "rules", "r", "", "Rule set file (.json, .yaml or .yml)")
	cmd.MarkFlagsMutuallyExclusive("preset", "rules")
	return cmd
}

// runRuleSet loads every archive before writing anything, then runs rs
// against each one in argument order.
func runRuleSet(ctx context.Context, g *globalOptions, w io.Writer, paths []string, rs *rules.RuleSet) error {
	runner, err := g.newRunner()
	if err != nil {
		return err
	}
	if err := rs.Check(runner.Queries()); err != nil {
		return err
	}

	archives, err := loadArchives(ctx, paths, g.cfg.LoadWorkers)
	if err != nil {
		return err
	}

	sink := g.newSink(w)
	for _, a := range archives {
		if len(archives) > 1 {
			if err := sink.WriteNote("Archive: " + a.Path); err != nil {
				return err
			}
		}
		if err := runner.Run(ctx, a, rs, sink); err != nil {
			return fmt.Errorf("%s: %w", a.Path, err)
		}
	}
	return nil
}
