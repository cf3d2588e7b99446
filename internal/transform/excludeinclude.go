package transform

import (
	"github.com/hostlistc/hostlistc/internal/wildcard"
)

// excludeT implements spec §4.F Exclude: drop any rule matched by any
// configured wildcard pattern. It is never invoked through the generic
// Apply path (patterns are per-run, not carried in Options) — the pipeline
// calls applyPatterns directly after partitioning plain vs. glob/regex
// patterns for the fast path.
type excludeT struct{}

func (excludeT) Name() Name { return Exclude }

// Apply exists to satisfy Transformation; Exclude always runs through
// applyPatterns with an explicit pattern list.
func (excludeT) Apply(lines []string, _ Options) ([]string, error) { return lines, nil }

func (excludeT) applyPatterns(lines []string, patterns []*wildcard.Pattern) ([]string, error) {
	if len(patterns) == 0 {
		return lines, nil
	}
	plain, other := wildcard.Partition(patterns)
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if wildcard.AnyMatch(plain, other, l) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

// includeT implements spec §4.F Include: keep only rules matched by any
// configured wildcard, unless no inclusions are configured (then keep all).
type includeT struct{}

func (includeT) Name() Name { return Include }

func (includeT) Apply(lines []string, _ Options) ([]string, error) { return lines, nil }

func (includeT) applyPatterns(lines []string, patterns []*wildcard.Pattern) ([]string, error) {
	if len(patterns) == 0 {
		return lines, nil
	}
	plain, other := wildcard.Partition(patterns)
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if wildcard.AnyMatch(plain, other, l) {
			out = append(out, l)
		}
	}
	return out, nil
}
