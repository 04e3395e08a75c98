package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/usestring/harscope/internal/cache"
	"github.com/usestring/harscope/internal/rules"
	"github.com/usestring/harscope/pkg/extract"
	"github.com/usestring/harscope/pkg/har"
	"github.com/usestring/harscope/pkg/textquery"
)

// Options configures a Runner.
type Options struct {
	// Extractor answers select queries. Defaults to the regex backend.
	Extractor extract.SelectExtractor
	// Patterns caches compiled expressions. May be nil.
	Patterns *cache.PatternCache
	// Limits apply to summary rules before per-rule overrides.
	Limits          Limits
	MaxQueryResults int
	Logger          *slog.Logger
}

// Runner executes rule sets against archives.
type Runner struct {
	extractor  extract.SelectExtractor
	pairs      *extract.RegexExtractor
	queries    *textquery.Engine
	limits     Limits
	maxResults int
	logger     *slog.Logger
}

// NewRunner creates a runner from opts.
func NewRunner(opts Options) *Runner {
	r := &Runner{
		extractor:  opts.Extractor,
		pairs:      extract.NewRegexExtractor(opts.Patterns),
		queries:    textquery.NewEngine(opts.Patterns),
		limits:     opts.Limits,
		maxResults: opts.MaxQueryResults,
		logger:     opts.Logger,
	}
	if r.extractor == nil {
		r.extractor = r.pairs
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Queries returns the body query engine used for query rules.
func (r *Runner) Queries() *textquery.Engine {
	return r.queries
}

// Run applies every rule of rs to a, in rule order, writing to sink.
// Entries are visited in archive order.
func (r *Runner) Run(ctx context.Context, a *har.Archive, rs *rules.RuleSet, sink Sink) error {
	for i := range rs.Rules {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.RunRule(ctx, a, &rs.Rules[i], sink); err != nil {
			return fmt.Errorf("rule %d (%s): %w", i+1, rs.Rules[i].Heading(), err)
		}
	}
	return nil
}

// RunRule applies a single rule.
func (r *Runner) RunRule(ctx context.Context, a *har.Archive, rule *rules.Rule, sink Sink) error {
	entries := a.Filter(rule.Include, rule.Exclude)
	r.logger.Debug("rule matched entries",
		"archive", a.Path,
		"kind", rule.Kind,
		"include", rule.Include,
		"exclude", rule.Exclude,
		"matches", len(entries),
	)

	if err := sink.WriteSection(Section{Title: rule.Heading(), Matches: len(entries)}); err != nil {
		return err
	}

	for i := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.runEntry(ctx, rule, &entries[i], sink); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runEntry(ctx context.Context, rule *rules.Rule, entry *har.Entry, sink Sink) error {
	switch rule.Kind {
	case rules.KindSummary:
		return sink.WriteSummary(Summarize(entry, r.limits.ForRule(rule)))

	case rules.KindSelects:
		return sink.WriteSelects(r.Selects(entry, rule.Selects))

	case rules.KindAttributePairs:
		body := entry.ResponseText()
		if body == "" {
			return nil
		}
		pairs, err := r.pairs.AttributePairs(body, rule.AttributePattern())
		if err != nil {
			return err
		}
		return sink.WritePairs(PairReport{URL: entry.Request.URL, Pairs: pairs})

	case rules.KindQuery:
		res, err := r.queries.QueryEntry(ctx, entry, rule.Target, rule.Query(r.maxResults))
		if err != nil {
			return err
		}
		if res.Count == 0 && len(res.Errors) == 0 {
			return nil
		}
		target := rule.Target
		if target == "" {
			target = textquery.TargetResponse
		}
		return sink.WriteQuery(QueryReport{URL: entry.Request.URL, Target: target, Result: res})

	default:
		return fmt.Errorf("unknown rule kind %q", rule.Kind)
	}
}

// Selects lists the select ids of entry's response body and the options of
// each requested select. An entry without a response body yields empty
// lists.
func (r *Runner) Selects(entry *har.Entry, selectIDs []string) SelectReport {
	rep := SelectReport{
		URL:     entry.Request.URL,
		IDs:     []string{},
		Selects: []SelectOptions{},
	}
	body := entry.ResponseText()
	if body == "" {
		return rep
	}
	rep.IDs = r.extractor.SelectIDs(body)
	for _, id := range selectIDs {
		rep.Selects = append(rep.Selects, SelectOptions{
			ID:      id,
			Options: r.extractor.SelectOptions(body, id),
		})
	}
	return rep
}
