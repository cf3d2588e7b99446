// Package diff computes and renders the added/removed/unchanged delta
// between two compiled lists (spec §4.K).
package diff

import (
	"sort"
	"strings"

	"github.com/hostlistc/hostlistc/internal/rule"
)

// Options controls normalization and output bounds (spec §4.K defaults).
type Options struct {
	IgnoreComments    bool
	IgnoreEmptyLines  bool
	AnalyzeDomains    bool
	MaxRulesToInclude int
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		IgnoreComments:    true,
		IgnoreEmptyLines:  true,
		AnalyzeDomains:    true,
		MaxRulesToInclude: 1000,
	}
}

// DomainCount is one row of the domain-analysis aggregation.
type DomainCount struct {
	Hostname string
	Added    int
	Removed  int
	Total    int
}

// Result is the full computed diff.
type Result struct {
	Added       []string
	Removed     []string
	Unchanged   int
	NetChange   int
	Percentage  float64
	DomainStats []DomainCount
	Truncated   bool
}

// Compute diffs original against updated per opts (spec §4.K).
func Compute(original, updated []string, opts Options) Result {
	normOriginal := normalize(original, opts)
	normUpdated := normalize(updated, opts)

	originalSet := toSet(normOriginal)
	updatedSet := toSet(normUpdated)

	var added, removed []string
	for _, l := range normUpdated {
		if !originalSet[l] {
			added = append(added, l)
		}
	}
	for _, l := range normOriginal {
		if !updatedSet[l] {
			removed = append(removed, l)
		}
	}

	res := Result{
		Added:     added,
		Removed:   removed,
		Unchanged: len(normOriginal) - len(removed),
		NetChange: len(added) - len(removed),
	}
	if len(normOriginal) > 0 {
		res.Percentage = float64(res.NetChange) / float64(len(normOriginal)) * 100
	}

	if opts.AnalyzeDomains {
		res.DomainStats = aggregateDomains(added, removed)
	}

	max := opts.MaxRulesToInclude
	if max > 0 {
		if len(res.Added) > max {
			res.Added = res.Added[:max]
			res.Truncated = true
		}
		if len(res.Removed) > max {
			res.Removed = res.Removed[:max]
			res.Truncated = true
		}
	}
	return res
}

func normalize(lines []string, opts Options) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if opts.IgnoreEmptyLines && strings.TrimSpace(l) == "" {
			continue
		}
		if opts.IgnoreComments && rule.Classify(l) == rule.Comment {
			continue
		}
		out = append(out, l)
	}
	return out
}

// hostnameOf best-effort extracts the hostname a line targets, across
// whichever rule kind it classifies as, for domain aggregation.
func hostnameOf(line string) string {
	switch rule.Classify(line) {
	case rule.Adblock:
		ast, err := rule.ParseAdblock(line)
		if err != nil || ast.Hostname == nil {
			return ""
		}
		return *ast.Hostname
	case rule.Hosts:
		ast, err := rule.ParseHosts(line)
		if err != nil || len(ast.Hostnames) == 0 {
			return ""
		}
		return strings.ToLower(ast.Hostnames[0])
	case rule.PlainDomain:
		return strings.ToLower(strings.TrimSpace(line))
	default:
		return ""
	}
}

func toSet(lines []string) map[string]bool {
	m := make(map[string]bool, len(lines))
	for _, l := range lines {
		m[l] = true
	}
	return m
}

// aggregateDomains aggregates added/removed counts per hostname, sorted
// by total descending, top 100 (spec §4.K).
func aggregateDomains(added, removed []string) []DomainCount {
	counts := make(map[string]*DomainCount)
	get := func(host string) *DomainCount {
		c, ok := counts[host]
		if !ok {
			c = &DomainCount{Hostname: host}
			counts[host] = c
		}
		return c
	}
	for _, l := range added {
		if h := hostnameOf(l); h != "" {
			get(h).Added++
		}
	}
	for _, l := range removed {
		if h := hostnameOf(l); h != "" {
			get(h).Removed++
		}
	}
	out := make([]DomainCount, 0, len(counts))
	for _, c := range counts {
		c.Total = c.Added + c.Removed
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Hostname < out[j].Hostname
	})
	if len(out) > 100 {
		out = out[:100]
	}
	return out
}
