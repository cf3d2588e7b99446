package transform

import (
	"github.com/hostlistc/hostlistc/internal/hostutil"
	"github.com/hostlistc/hostlistc/internal/rule"
)

// Conflict records a blocking rule and an exception rule sharing a hostname
// (or a parent/child hostname pair), per spec §4.F ConflictDetection.
type Conflict struct {
	Domain         string
	BlockRule      string
	AllowRule      string
	Recommendation string // "keep-block", "keep-allow", or "manual-review"
}

type conflictEntry struct {
	idx  int
	line string
	ast  *rule.AdblockAST
}

// conflictDetectionT implements spec §4.F ConflictDetection: groups rules
// by extracted hostname and flags hostnames with both a blocking and an
// exception rule, including the extended case where a subdomain exception's
// parent hostname has a blocking rule. When opts.ConflictStrategy names an
// auto-resolve mode, the losing rule is dropped from the output.
type conflictDetectionT struct{}

func (conflictDetectionT) Name() Name { return ConflictDetection }

func (conflictDetectionT) Apply(lines []string, opts Options) ([]string, error) {
	blocksByHost := make(map[string]conflictEntry)
	allowsByHost := make(map[string]conflictEntry)

	for i, l := range lines {
		if rule.Classify(l) != rule.Adblock {
			continue
		}
		ast, err := rule.ParseAdblock(l)
		if err != nil || ast.Hostname == nil {
			continue
		}
		h := hostutil.Normalize(*ast.Hostname)
		e := conflictEntry{idx: i, line: l, ast: ast}
		if ast.Whitelist {
			allowsByHost[h] = e
		} else {
			blocksByHost[h] = e
		}
	}

	var conflicts []Conflict
	toDrop := make(map[int]bool)
	handled := make(map[string]bool)

	resolve := func(domain string, b, a conflictEntry) {
		conflicts = append(conflicts, Conflict{
			Domain:         domain,
			BlockRule:      b.line,
			AllowRule:      a.line,
			Recommendation: recommend(b.ast.Options, a.ast.Options),
		})
		switch opts.ConflictStrategy {
		case "keep-block":
			toDrop[a.idx] = true
		case "keep-allow":
			toDrop[b.idx] = true
		case "keep-first":
			if a.idx < b.idx {
				toDrop[b.idx] = true
			} else {
				toDrop[a.idx] = true
			}
		}
	}

	for h, b := range blocksByHost {
		if a, ok := allowsByHost[h]; ok {
			resolve(h, b, a)
			handled[h] = true
		}
	}
	for h, a := range allowsByHost {
		if handled[h] {
			continue
		}
		for bh, b := range blocksByHost {
			if hostutil.IsAncestor(bh, h) {
				resolve(h, b, a)
				break
			}
		}
	}

	if opts.Conflicts != nil {
		*opts.Conflicts = conflicts
	}

	if len(toDrop) == 0 {
		return lines, nil
	}
	out := make([]string, 0, len(lines))
	for i, l := range lines {
		if toDrop[i] {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func recommend(blockOpts, allowOpts []rule.Option) string {
	b, a := optionTextLen(blockOpts), optionTextLen(allowOpts)
	switch {
	case a > b:
		return "keep-allow"
	case b > a:
		return "keep-block"
	default:
		return "manual-review"
	}
}

func optionTextLen(opts []rule.Option) int {
	n := 0
	for _, o := range opts {
		n += len(o.Name) + 1
		if o.Value != nil {
			n += 1 + len(*o.Value)
		}
	}
	return n
}
