package transform

import (
	"github.com/hostlistc/hostlistc/internal/hostutil"
	"github.com/hostlistc/hostlistc/internal/rule"
)

// compressT implements spec §4.F Compress: hostnames (from hosts rules and
// plain domains) become "||H^" rules, exact duplicates collapse, and any
// "||H^" whose ancestor also has a "||H'^" rule is subsumed and dropped.
// Rules with options, or that aren't domain-shaped, pass through untouched.
type compressT struct{}

func (compressT) Name() Name { return Compress }

func (compressT) Apply(lines []string, _ Options) ([]string, error) {
	perLine := make([][]string, len(lines))
	allHosts := make(map[string]bool)

	for i, l := range lines {
		switch rule.Classify(l) {
		case rule.Hosts:
			ast, err := rule.ParseHosts(l)
			if err != nil {
				continue
			}
			for _, h := range ast.Hostnames {
				h = hostutil.Normalize(h)
				perLine[i] = append(perLine[i], h)
				allHosts[h] = true
			}
		case rule.PlainDomain:
			h := hostutil.Normalize(l)
			perLine[i] = []string{h}
			allHosts[h] = true
		case rule.Adblock:
			ast, err := rule.ParseAdblock(l)
			if err != nil || ast.Whitelist || len(ast.Options) > 0 || ast.Hostname == nil {
				continue
			}
			h := hostutil.Normalize(*ast.Hostname)
			perLine[i] = []string{h}
			allHosts[h] = true
		}
	}

	trie := rule.NewDomainTrie()
	for h := range allHosts {
		trie.Insert(h)
	}

	emitted := make(map[string]bool, len(allHosts))
	out := make([]string, 0, len(lines))
	for i, l := range lines {
		hosts := perLine[i]
		if hosts == nil {
			out = append(out, l)
			continue
		}
		for _, h := range hosts {
			if emitted[h] || trie.HasAncestor(h) {
				continue
			}
			emitted[h] = true
			out = append(out, rule.BlockRule(h))
		}
	}
	return out, nil
}
