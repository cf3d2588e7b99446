package transform

import (
	"github.com/hostlistc/hostlistc/internal/errs"
	"github.com/hostlistc/hostlistc/internal/logging"
	"github.com/hostlistc/hostlistc/internal/wildcard"
)

// Pipeline applies a user-provided list of transformation names, but always
// executes them in the canonical order (spec §4.E, invariant P6): the
// caller's ordering is irrelevant, only membership matters.
type Pipeline struct {
	registry *Registry
	logger   logging.Logger
}

// NewPipeline builds a Pipeline backed by registry.
func NewPipeline(registry *Registry, logger logging.Logger) *Pipeline {
	return &Pipeline{registry: registry, logger: logging.OrNop(logger)}
}

// ExcludeIncludeSpec carries the wildcard patterns used by the Exclude/
// Include passes that always run after the named transformations.
type ExcludeIncludeSpec struct {
	Exclusions []*wildcard.Pattern
	Inclusions []*wildcard.Pattern
}

// Run applies the requested transformation names in canonical order, then
// Exclude then Include (spec §4.E: "applied after the named transformations
// list, in that order"). Unknown names are skipped with a warning.
func (p *Pipeline) Run(lines []string, requested []Name, opts Options, ei ExcludeIncludeSpec) ([]string, error) {
	opts.Logger = logging.OrNop(opts.Logger)

	requestedSet := make(map[Name]bool, len(requested))
	for _, n := range requested {
		if _, ok := p.registry.Lookup(n); !ok {
			opts.Logger.Warn("unknown transformation skipped", map[string]any{"name": string(n)})
			continue
		}
		requestedSet[n] = true
	}

	cur := lines
	for _, name := range CanonicalOrder() {
		if !requestedSet[name] {
			continue
		}
		t, _ := p.registry.Lookup(name)
		next, err := t.Apply(cur, opts)
		if err != nil {
			return nil, errs.New(errs.TransformationFailed, "transformation "+string(name)+" failed", err).
				WithContext("ruleCount", len(cur))
		}
		cur = next
	}

	excludeT, _ := p.registry.Lookup(Exclude)
	cur, err := applyWithPatterns(excludeT, cur, opts, ei.Exclusions)
	if err != nil {
		return nil, err
	}

	includeT, _ := p.registry.Lookup(Include)
	cur, err = applyWithPatterns(includeT, cur, opts, ei.Inclusions)
	if err != nil {
		return nil, err
	}

	return cur, nil
}

func applyWithPatterns(t Transformation, lines []string, opts Options, patterns []*wildcard.Pattern) ([]string, error) {
	switch tt := t.(type) {
	case excludeT:
		return tt.applyPatterns(lines, patterns)
	case includeT:
		return tt.applyPatterns(lines, patterns)
	}
	return lines, nil
}
