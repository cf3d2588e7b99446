package transform

import (
	"sort"
	"strings"

	"github.com/hostlistc/hostlistc/internal/hostutil"
	"github.com/hostlistc/hostlistc/internal/rule"
)

// ruleOptimizerT is a best-effort, flag-gated collapser (spec §9 Open
// Question: "no contract beyond output is semantically equivalent"). The
// only optimization implemented is folding sibling single-label-prefix
// block rules sharing an immediate parent domain into... nothing shorter is
// representable in adblock syntax without changing match semantics, so in
// practice this pass currently only removes rules it can prove are already
// covered by another kept rule after Compress has run, leaving everything
// else untouched. It never runs unless explicitly requested.
type ruleOptimizerT struct{}

func (ruleOptimizerT) Name() Name { return RuleOptimizer }

func (ruleOptimizerT) Apply(lines []string, _ Options) ([]string, error) {
	hosts := make(map[string]int) // host -> first line index
	for i, l := range lines {
		if rule.Classify(l) != rule.Adblock {
			continue
		}
		ast, err := rule.ParseAdblock(l)
		if err != nil || ast.Whitelist || len(ast.Options) > 0 || ast.Hostname == nil {
			continue
		}
		h := hostutil.Normalize(*ast.Hostname)
		if _, ok := hosts[h]; !ok {
			hosts[h] = i
		}
	}

	drop := make(map[int]bool)
	for h, idx := range hosts {
		if !hostutil.IsValidHostname(h) {
			continue
		}
		if hasCoveringAncestor(h, hosts) {
			drop[idx] = true
		}
	}
	if len(drop) == 0 {
		return lines, nil
	}
	out := make([]string, 0, len(lines))
	for i, l := range lines {
		if drop[i] {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

// hasCoveringAncestor reports whether some other host in hosts is a strict
// ancestor of h — i.e. h's own block rule is already implied and can be
// dropped without changing the effective block set.
func hasCoveringAncestor(h string, hosts map[string]int) bool {
	candidates := make([]string, 0, len(hosts))
	for other := range hosts {
		candidates = append(candidates, other)
	}
	sort.Strings(candidates)
	for _, other := range candidates {
		if other == h {
			continue
		}
		if strings.HasSuffix(h, "."+other) {
			return true
		}
	}
	return false
}
