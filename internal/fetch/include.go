package fetch

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hostlistc/hostlistc/internal/errs"
)

const maxIncludeDepth = 16

var includeDirectiveRe = regexp.MustCompile(`^!#include\s+(\S+)\s*$`)

// Resolve fetches locator and expands every `!#include` and `!#if`/
// `!#else`/`!#endif` directive it contains (spec §4.D), returning the
// flattened line sequence. platform is matched against conditional
// identifiers, case-insensitively.
func Resolve(ctx context.Context, f Fetcher, locator, platform string) ([]string, error) {
	exp := &expander{fetcher: f, platform: platform}
	return exp.process(ctx, locator, 0, map[string]bool{})
}

type expander struct {
	fetcher  Fetcher
	platform string
}

func (e *expander) process(ctx context.Context, locator string, depth int, ancestry map[string]bool) ([]string, error) {
	if depth > maxIncludeDepth {
		return nil, errs.New(errs.IncludeDepthExceeded, fmt.Sprintf("include depth exceeds %d at %s", maxIncludeDepth, locator), nil).
			WithContext("source", locator)
	}
	canon := canonicalLocator(locator)
	if ancestry[canon] {
		return nil, errs.New(errs.IncludeCycle, "cyclic include at "+locator, nil).WithContext("source", locator)
	}
	ancestry[canon] = true
	defer delete(ancestry, canon)

	content, err := e.fetcher.Fetch(ctx, locator)
	if err != nil {
		return nil, err
	}
	return e.expandLines(ctx, locator, splitLines(content), depth, ancestry)
}

// condFrame tracks one level of !#if nesting: whether the enclosing frames
// were active when it opened, whether its current branch is active, and
// whether its !#else has been seen (a second !#else in the same frame is
// ignored).
type condFrame struct {
	parentActive bool
	branchActive bool
	sawElse      bool
}

func (e *expander) expandLines(ctx context.Context, locator string, lines []string, depth int, ancestry map[string]bool) ([]string, error) {
	var out []string
	var stack []condFrame

	active := func() bool {
		for _, f := range stack {
			if !f.parentActive || !f.branchActive {
				return false
			}
		}
		return true
	}

	for _, line := range lines {
		trimmed := strings.TrimRight(line, "\r")
		switch {
		case strings.HasPrefix(strings.TrimSpace(trimmed), "!#if"):
			exprText := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(trimmed), "!#if"))
			cond, cerr := evalCondition(exprText, e.platform)
			parentActive := active()
			if cerr != nil {
				cond = false
			}
			stack = append(stack, condFrame{parentActive: parentActive, branchActive: cond})
			continue
		case strings.TrimSpace(trimmed) == "!#else":
			if len(stack) == 0 {
				continue
			}
			top := &stack[len(stack)-1]
			if !top.sawElse {
				top.branchActive = !top.branchActive
				top.sawElse = true
			}
			continue
		case strings.TrimSpace(trimmed) == "!#endif":
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			continue
		}

		if !active() {
			continue
		}

		if m := includeDirectiveRe.FindStringSubmatch(strings.TrimSpace(trimmed)); m != nil {
			ref := m[1]
			nextLocator, err := resolveReference(locator, ref)
			if err != nil {
				return nil, err
			}
			included, err := e.process(ctx, nextLocator, depth+1, ancestry)
			if err != nil {
				return nil, err
			}
			out = append(out, included...)
			continue
		}

		out = append(out, trimmed)
	}
	return out, nil
}

// resolveReference resolves an `!#include` reference against the
// enclosing source's locator and enforces the same-origin / no-local-
// from-remote rules (spec §4.D).
func resolveReference(base, ref string) (string, error) {
	baseRemote := IsRemote(base)
	refRemote := IsRemote(ref)

	if baseRemote {
		if !refRemote {
			return "", errs.New(errs.CrossOriginInclude, "remote source may not include a local path: "+ref, nil).
				WithContext("source", base).WithContext("include", ref)
		}
		baseHost, err := hostOf(base)
		if err != nil {
			return "", errs.New(errs.SourceFetchFailed, "malformed source URL "+base, err)
		}
		refHost, err := hostOf(ref)
		if err != nil {
			return "", errs.New(errs.SourceFetchFailed, "malformed include URL "+ref, err)
		}
		if !strings.EqualFold(baseHost, refHost) {
			return "", errs.New(errs.CrossOriginInclude, "include crosses origin: "+ref, nil).
				WithContext("source", base).WithContext("include", ref)
		}
		return ref, nil
	}

	if refRemote {
		return "", errs.New(errs.CrossOriginInclude, "local source may not include remote URL: "+ref, nil).
			WithContext("source", base).WithContext("include", ref)
	}
	if filepath.IsAbs(ref) {
		return ref, nil
	}
	return filepath.Join(filepath.Dir(base), ref), nil
}

func hostOf(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return u.Host, nil
}

// canonicalLocator normalizes a locator for cycle detection (lowercases
// the host of remote URLs, cleans local paths).
func canonicalLocator(locator string) string {
	if IsRemote(locator) {
		if u, err := url.Parse(locator); err == nil {
			u.Host = strings.ToLower(u.Host)
			return u.String()
		}
		return strings.ToLower(locator)
	}
	return path.Clean(filepath.ToSlash(locator))
}

func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
