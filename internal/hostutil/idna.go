package hostutil

import (
	"regexp"
	"strings"
)

// domainSubstringRe matches the "(\*\.|)([^ ^$|=]+(?:\.[^ ^$|=]+)+)" shape
// spec §4.A describes for convertNonAsciiToPunycode: an optional "*."
// wildcard prefix followed by a multi-label domain-looking substring.
var domainSubstringRe = regexp.MustCompile(`(\*\.)?([^ \^$|=]+(?:\.[^ \^$|=]+)+)`)

// ConvertLineToPunycode finds non-ASCII domain-shaped substrings in line and
// rewrites them to Punycode, preserving any "*." wildcard prefix. ASCII-only
// lines are returned unchanged (spec §4.A).
func ConvertLineToPunycode(line string) string {
	if isASCII(line) {
		return line
	}
	return domainSubstringRe.ReplaceAllStringFunc(line, func(match string) string {
		sub := domainSubstringRe.FindStringSubmatch(match)
		if sub == nil {
			return match
		}
		prefix, domain := sub[1], sub[2]
		if isASCII(domain) {
			return match
		}
		converted, err := ToPunycode(domain)
		if err != nil {
			return match
		}
		return prefix + converted
	})
}

// Normalize lowercases host and strips one trailing dot; Compress and the
// host-indexing code use it to compare hostnames case-insensitively.
func Normalize(host string) string {
	return strings.ToLower(strings.TrimSuffix(host, "."))
}
