package compiler

import (
	"context"
	"strings"

	"github.com/hostlistc/hostlistc/internal/fetch"
	"github.com/hostlistc/hostlistc/internal/rule"
	"github.com/hostlistc/hostlistc/internal/wildcard"
)

// resolvePatterns compiles the inline pattern strings plus every pattern
// line fetched from patternSources (each resolved the same way a rule
// source is: include-expanded, relative to platform), into wildcard
// Patterns for Exclude/Include (spec §3 "exclusions?, exclusions_sources?,
// inclusions?, inclusions_sources?").
func resolvePatterns(ctx context.Context, f fetch.Fetcher, inline []string, patternSources []string, platform string) ([]*wildcard.Pattern, error) {
	all := make([]string, 0, len(inline))
	all = append(all, inline...)

	for _, src := range patternSources {
		lines, err := fetch.Resolve(ctx, f, src, platform)
		if err != nil {
			return nil, err
		}
		for _, l := range lines {
			t := strings.TrimSpace(l)
			if t == "" || rule.Classify(t) == rule.Comment {
				continue
			}
			all = append(all, t)
		}
	}

	return wildcard.CompileAll(all), nil
}
