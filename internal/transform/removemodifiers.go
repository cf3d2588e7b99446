package transform

import "github.com/hostlistc/hostlistc/internal/rule"

// removeModifiersT implements spec §4.F RemoveModifiers: strips a
// configured option name from each adblock rule (default "third-party").
type removeModifiersT struct{}

func (removeModifiersT) Name() Name { return RemoveModifiers }

func (removeModifiersT) Apply(lines []string, opts Options) ([]string, error) {
	target := opts.ModifierToRemove
	if target == "" {
		target = "third-party"
	}

	out := make([]string, len(lines))
	for i, l := range lines {
		if rule.Classify(l) != rule.Adblock {
			out[i] = l
			continue
		}
		ast, err := rule.ParseAdblock(l)
		if err != nil || len(ast.Options) == 0 {
			out[i] = l
			continue
		}
		filtered := ast.Options[:0:0]
		changed := false
		for _, o := range ast.Options {
			if o.Name == target {
				changed = true
				continue
			}
			filtered = append(filtered, o)
		}
		if !changed {
			out[i] = l
			continue
		}
		ast.Options = filtered
		out[i] = rule.SerializeAdblock(ast)
	}
	return out, nil
}
