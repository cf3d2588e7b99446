// Package transform implements the named transformations (§4.F), the
// registry that holds them, and the pipeline that applies them in the
// canonical order (§4.E) regardless of the order a caller requests.
package transform

import "github.com/hostlistc/hostlistc/internal/logging"

// Name identifies a transformation by its configured name.
type Name string

const (
	RemoveComments    Name = "RemoveComments"
	TrimLines         Name = "TrimLines"
	RemoveEmptyLines  Name = "RemoveEmptyLines"
	InsertFinalNewLine Name = "InsertFinalNewLine"
	ConvertToAscii    Name = "ConvertToAscii"
	InvertAllow       Name = "InvertAllow"
	RemoveModifiers   Name = "RemoveModifiers"
	Validate          Name = "Validate"
	ValidateAllowIp   Name = "ValidateAllowIp"
	Deduplicate       Name = "Deduplicate"
	Compress          Name = "Compress"
	ConflictDetection Name = "ConflictDetection"
	RuleOptimizer     Name = "RuleOptimizer"
	Exclude           Name = "Exclude"
	Include           Name = "Include"
)

// canonicalOrder is the fixed execution order from spec §4.E. Exclude and
// Include are applied separately, after the named-transformation list, so
// they are intentionally absent here.
var canonicalOrder = []Name{
	RemoveComments,
	TrimLines,
	RemoveEmptyLines,
	InsertFinalNewLine,
	ConvertToAscii,
	InvertAllow,
	RemoveModifiers,
	Validate,
	ValidateAllowIp,
	Deduplicate,
	Compress,
	ConflictDetection,
	RuleOptimizer,
}

// Transformation is a pure function over a line list. Options carries any
// per-transformation configuration (e.g. RemoveModifiers' target name).
type Transformation interface {
	Name() Name
	Apply(lines []string, opts Options) ([]string, error)
}

// Options bundles the small amount of per-run configuration individual
// transformations need. Zero value is valid and picks documented defaults.
type Options struct {
	// RemoveModifiers: option name to strip. Default "third-party".
	ModifierToRemove string
	// ConflictDetection: optional auto-resolve strategy.
	ConflictStrategy string
	// ConflictDetection: when non-nil, populated with every detected
	// conflict for the caller to inspect or report.
	Conflicts *[]Conflict
	// Logger is injected, defaulting to a no-op (spec §9 design note).
	Logger logging.Logger
}

// Registry maps a transformation name to its implementation. It is built
// once at startup and is read-only afterward (spec §3 Lifecycle).
type Registry struct {
	byName map[Name]Transformation
}

// NewRegistry builds a Registry pre-populated with every built-in
// transformation.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[Name]Transformation)}
	for _, t := range []Transformation{
		removeCommentsT{},
		trimLinesT{},
		removeEmptyLinesT{},
		insertFinalNewLineT{},
		convertToAsciiT{},
		invertAllowT{},
		removeModifiersT{},
		validateT{allowIP: false},
		validateAllowIPT{},
		deduplicateT{},
		compressT{},
		conflictDetectionT{},
		ruleOptimizerT{},
		excludeT{},
		includeT{},
	} {
		r.byName[t.Name()] = t
	}
	return r
}

// Lookup returns the transformation registered under name, and whether it
// was found.
func (r *Registry) Lookup(name Name) (Transformation, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// CanonicalOrder returns the fixed execution order (a copy; callers must
// not mutate the package-level slice).
func CanonicalOrder() []Name {
	out := make([]Name, len(canonicalOrder))
	copy(out, canonicalOrder)
	return out
}
