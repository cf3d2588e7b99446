// Package wildcard implements the pattern matcher used by Exclude/Include
// and by the configuration's inclusion/exclusion pattern lists (spec §4.B).
package wildcard

import (
	"regexp"
	"strings"

	"github.com/hostlistc/hostlistc/internal/errs"
)

// Kind distinguishes the three pattern flavors a Pattern compiles to.
type Kind int

const (
	Plain Kind = iota
	Glob
	Regex
)

// Pattern is an immutable, precompiled wildcard. Construction picks the
// cheapest representation once; Test never re-parses the source string.
type Pattern struct {
	kind   Kind
	raw    string
	plain  string
	regex  *regexp.Regexp
}

// Compile builds a Pattern from raw text. An empty pattern is rejected —
// spec §4.B requires construction to be infallible only for nonempty input.
func Compile(raw string) (*Pattern, error) {
	if raw == "" {
		return nil, errs.New(errs.InvalidRule, "empty wildcard pattern", nil)
	}

	if isRegexLiteral(raw) {
		body := raw[1 : len(raw)-1]
		re, err := regexp.Compile("(?mi)" + body)
		if err != nil {
			return nil, errs.New(errs.InvalidRule, "invalid regex pattern "+raw, err)
		}
		return &Pattern{kind: Regex, raw: raw, regex: re}, nil
	}

	if strings.Contains(raw, "*") {
		escaped := regexp.QuoteMeta(raw)
		escaped = strings.ReplaceAll(escaped, `\*`, `[\s\S]*`)
		re, err := regexp.Compile("(?i)^" + escaped + "$")
		if err != nil {
			return nil, errs.New(errs.InvalidRule, "invalid glob pattern "+raw, err)
		}
		return &Pattern{kind: Glob, raw: raw, regex: re}, nil
	}

	return &Pattern{kind: Plain, raw: raw, plain: raw}, nil
}

// isRegexLiteral reports whether raw is a /regex/ literal: starts and ends
// with '/' and has at least one body character (length > 2).
func isRegexLiteral(raw string) bool {
	return len(raw) > 2 && strings.HasPrefix(raw, "/") && strings.HasSuffix(raw, "/")
}

// Kind reports the pattern's compiled representation.
func (p *Pattern) Kind() Kind { return p.kind }

// Raw returns the original pattern text.
func (p *Pattern) Raw() string { return p.raw }

// Test reports whether s matches the pattern, using the cheapest check for
// the compiled kind.
func (p *Pattern) Test(s string) bool {
	switch p.kind {
	case Plain:
		return strings.Contains(s, p.plain)
	default:
		return p.regex.MatchString(s)
	}
}

// CompileAll compiles every raw pattern, discarding ones that fail (the
// caller is expected to have validated them earlier; this is a defensive
// fallback used by Exclude/Include when patterns come from free-form config
// text).
func CompileAll(raws []string) []*Pattern {
	out := make([]*Pattern, 0, len(raws))
	for _, r := range raws {
		if p, err := Compile(r); err == nil {
			out = append(out, p)
		}
	}
	return out
}

// Partition splits compiled patterns into plain (substring fast path) and
// the rest (glob/regex), matching spec §4.F's Exclude/Include contract.
func Partition(patterns []*Pattern) (plain, other []*Pattern) {
	for _, p := range patterns {
		if p.kind == Plain {
			plain = append(plain, p)
		} else {
			other = append(other, p)
		}
	}
	return plain, other
}

// AnyMatch reports whether s matches any of the given patterns, checking
// the plain set first.
func AnyMatch(plain, other []*Pattern, s string) bool {
	for _, p := range plain {
		if p.Test(s) {
			return true
		}
	}
	for _, p := range other {
		if p.Test(s) {
			return true
		}
	}
	return false
}
