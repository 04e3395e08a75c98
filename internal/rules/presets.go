package rules

import (
	"fmt"
	"sort"
)

func intPtr(v int) *int { return &v }

// builtins are rule sets for the academic portal captures the tool was
// first written against.
var builtins = map[string]RuleSet{
	"course-plan": {
		Name:        "course-plan",
		Description: "Teaching plan list API, college/major/grade selects and related jxzxjhgl requests",
		Rules: []Rule{
			{
				Title:   "1. course plan list API",
				Include: []string{"jxzxjhxx", "jxzxjhglList"},
				Kind:    KindSummary,
			},
			{
				Title:   "2. college/major/grade options",
				Include: []string{"jxzxjhkcxx_cxJxzxjhkcxxIndex"},
				Exclude: []string{"doType"},
				Kind:    KindSelects,
				Selects: []string{"jg_id", "njdm_id"},
			},
			{
				Title:         "3. jxzxjhgl requests",
				Include:       []string{"jxzxjhgl"},
				Exclude:       []string{"js"},
				Kind:          KindSummary,
				PostDataLimit: intPtr(300),
				OmitResponse:  true,
			},
		},
	},
	"academic-status": {
		Name:        "academic-status",
		Description: "Course categories from the academic status page",
		Rules: []Rule{
			{
				Title:   "course categories",
				Include: []string{"xsxyqk_cxXsxyqkIndex"},
				Kind:    KindAttributePairs,
			},
		},
	},
}

// Builtin returns a copy of the named builtin rule set.
func Builtin(name string) (*RuleSet, error) {
	rs, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (available: %v)", name, BuiltinNames())
	}
	rs.Rules = append([]Rule(nil), rs.Rules...)
	return &rs, nil
}

// BuiltinNames lists the builtin rule set names in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
