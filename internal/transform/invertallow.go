package transform

import "github.com/hostlistc/hostlistc/internal/rule"

// invertAllowT implements spec §4.F InvertAllow: for every plain blocking
// hostname rule ("||host^" with no modifiers), also emit the matching
// exception "@@||host^$important" (spec §9 Open Question resolution).
type invertAllowT struct{}

func (invertAllowT) Name() Name { return InvertAllow }

func (invertAllowT) Apply(lines []string, _ Options) ([]string, error) {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l)
		if rule.Classify(l) != rule.Adblock {
			continue
		}
		ast, err := rule.ParseAdblock(l)
		if err != nil || ast.Whitelist || len(ast.Options) > 0 || ast.Hostname == nil {
			continue
		}
		out = append(out, rule.ExceptionRule(*ast.Hostname))
	}
	return out, nil
}
