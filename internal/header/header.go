// Package header builds and strips the canonical metadata block emitted
// atop every compiled list (spec §4.I).
package header

import (
	"regexp"
	"strings"
	"time"
)

// Info carries the fields the header block renders.
type Info struct {
	Name        string
	Description string
	Homepage    string
	License     string
	Version     string
	PackageName string
	PackageVersion string
	CompiledAt  time.Time
}

var upstreamPrefixes = []string{
	"! Title:",
	"! Description:",
	"! Homepage:",
	"! License:",
	"! Version:",
	"! Last modified:",
	"! Expires:",
	"! TimeUpdated:",
	"! Checksum:",
	"! Compiled by ",
	"! Diff-Path:",
	"! Diff-Expires:",
}

// StripUpstreamMetadata removes any line whose trimmed prefix matches one
// of the canonical metadata markers, then collapses runs of bare `!`
// comment markers to at most one (spec §4.I).
func StripUpstreamMetadata(lines []string) []string {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if hasUpstreamPrefix(line) {
			continue
		}
		kept = append(kept, line)
	}
	return collapseBangRuns(kept)
}

func hasUpstreamPrefix(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, prefix := range upstreamPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

var bareBangRe = regexp.MustCompile(`^!+\s*$`)

func collapseBangRuns(lines []string) []string {
	out := make([]string, 0, len(lines))
	inRun := false
	for _, line := range lines {
		if bareBangRe.MatchString(line) {
			if inRun {
				continue
			}
			inRun = true
			out = append(out, "!")
			continue
		}
		inRun = false
		out = append(out, line)
	}
	return out
}

// Render builds the canonical header block (spec §4.I). The caller is
// responsible for stripping upstream metadata from the body first and
// prepending the result of Render to it.
func Render(info Info) []string {
	lines := []string{"!", "! Title: " + info.Name}
	if info.Description != "" {
		lines = append(lines, "! Description: "+info.Description)
	}
	if info.Homepage != "" {
		lines = append(lines, "! Homepage: "+info.Homepage)
	}
	if info.License != "" {
		lines = append(lines, "! License: "+info.License)
	}
	if info.Version != "" {
		lines = append(lines, "! Version: "+info.Version)
	}
	lines = append(lines,
		"! Last modified: "+info.CompiledAt.UTC().Format(time.RFC3339),
		"!",
		"! Compiled by "+info.PackageName+" v"+info.PackageVersion,
		"!",
	)
	return lines
}
