package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/blang/semver"
	"github.com/go-playground/validator/v10"
	"github.com/hostlistc/hostlistc/internal/errs"
	"github.com/hostlistc/hostlistc/internal/transform"
)

// ValidationError carries the fatal structural problems found in a Config
// (spec §4.N): { path, details[] }.
type ValidationError struct {
	Path    string
	Details []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration at %s: %s", e.Path, strings.Join(e.Details, "; "))
}

var structValidator = validator.New()

// Validate checks cfg against the schema (struct tags, via
// go-playground/validator) and the domain-specific rules §4.N calls out.
// It returns non-fatal warnings (unknown transformation names, loose
// version strings) separately from the fatal error — rejecting missing
// name, non-array/empty sources, duplicate source names, and malformed
// URLs/paths only.
func Validate(cfg *Config) (warnings []string, err error) {
	var fatal []string

	if verr := structValidator.Struct(cfg); verr != nil {
		if fes, ok := verr.(validator.ValidationErrors); ok {
			for _, fe := range fes {
				fatal = append(fatal, fmt.Sprintf("%s: failed %s", fe.Namespace(), fe.Tag()))
			}
		} else {
			fatal = append(fatal, verr.Error())
		}
	}

	seenNames := make(map[string]bool)
	for i, src := range cfg.Sources {
		if src.Name != "" {
			if seenNames[src.Name] {
				fatal = append(fatal, fmt.Sprintf("sources[%d]: duplicate source name %q", i, src.Name))
			}
			seenNames[src.Name] = true
		}
		if !isValidSourceLocator(src.Source) {
			fatal = append(fatal, fmt.Sprintf("sources[%d]: malformed source %q", i, src.Source))
		}
	}

	warnings = append(warnings, unknownTransformationWarnings(cfg.Transformations, "transformations")...)
	for i, src := range cfg.Sources {
		warnings = append(warnings, unknownTransformationWarnings(src.Transformations, fmt.Sprintf("sources[%d].transformations", i))...)
	}

	if cfg.Version != "" {
		if _, verr := semver.Make(cfg.Version); verr != nil {
			warnings = append(warnings, fmt.Sprintf("version %q is not strict semver", cfg.Version))
		}
	}

	if len(fatal) > 0 {
		return warnings, &ValidationError{Path: "config", Details: fatal}
	}
	return warnings, nil
}

// unknownTransformationWarnings reports transformation names in the config
// that the registry doesn't recognize (spec §4.N: "warning, not error").
func unknownTransformationWarnings(names []string, path string) []string {
	reg := transform.NewRegistry()
	var out []string
	for _, n := range names {
		if _, ok := reg.Lookup(transform.Name(n)); !ok {
			out = append(out, fmt.Sprintf("%s references unknown transformation %q", path, n))
		}
	}
	return out
}

func isValidSourceLocator(s string) bool {
	if s == "" {
		return false
	}
	if strings.Contains(s, "://") {
		u, err := url.Parse(s)
		return err == nil && u.Scheme != "" && u.Host != ""
	}
	return strings.TrimSpace(s) != ""
}

// AsTaxonomyError converts a ValidationError into the shared errs.Error
// taxonomy (ConfigurationInvalid), used by callers that want a single
// error-kind switch across the whole pipeline.
func AsTaxonomyError(err error) error {
	ve, ok := err.(*ValidationError)
	if !ok {
		return err
	}
	return errs.New(errs.ConfigurationInvalid, ve.Error(), err).WithContext("path", ve.Path)
}
