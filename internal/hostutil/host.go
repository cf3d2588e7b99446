// Package hostutil implements hostname validation, public-suffix / domain
// extraction, and IDN-to-Punycode conversion (spec §4.C).
package hostutil

import (
	"net"
	"strings"

	"golang.org/x/net/idna"
)

// IsIPv4 reports whether s parses as a dotted-decimal IPv4 address.
func IsIPv4(s string) bool {
	ip := net.ParseIP(s)
	return ip != nil && ip.To4() != nil && strings.Contains(s, ".")
}

// IsIPv6 reports whether s parses as an IPv6 address, tolerating a
// "%zone" suffix per spec §3 ("IPv4|IPv6[%zone]").
func IsIPv6(s string) bool {
	host := s
	if i := strings.IndexByte(s, '%'); i >= 0 {
		host = s[:i]
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.To4() == nil && strings.Contains(host, ":")
}

// IsIP reports whether s is a valid IPv4 or IPv6 literal.
func IsIP(s string) bool {
	return IsIPv4(s) || IsIPv6(s)
}

// labelRe-equivalent validation is done by hand (no regexp) to keep the hot
// path allocation-free; the grammar is spec §3's DNS label grammar:
// [A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])? with a 1..63 length.

// IsValidLabel reports whether label satisfies the DNS label grammar.
func IsValidLabel(label string) bool {
	n := len(label)
	if n == 0 || n > 63 {
		return false
	}
	if !isAlnum(label[0]) || !isAlnum(label[n-1]) {
		return false
	}
	for i := 1; i < n-1; i++ {
		c := label[i]
		if !isAlnum(c) && c != '-' {
			return false
		}
	}
	return true
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// IsValidHostname validates a full hostname per spec §3: 255-byte cap,
// each label 1..63 bytes, an optional trailing dot.
func IsValidHostname(host string) bool {
	if host == "" {
		return false
	}
	h := strings.TrimSuffix(host, ".")
	if len(h) == 0 || len(h) > 255 {
		return false
	}
	labels := strings.Split(h, ".")
	if len(labels) < 1 {
		return false
	}
	for _, l := range labels {
		if !IsValidLabel(l) {
			return false
		}
	}
	return true
}

// GetPublicSuffix returns the rightmost labels of host considered publicly
// registrable, checking multi-part suffixes (e.g. "co.uk") before
// single-label TLDs, per spec §4.C.
func GetPublicSuffix(host string) string {
	h := strings.ToLower(strings.TrimSuffix(host, "."))
	labels := strings.Split(h, ".")
	n := len(labels)

	if n >= 2 {
		last2 := labels[n-2] + "." + labels[n-1]
		if multiPartSuffixes[last2] {
			return last2
		}
	}
	if n >= 3 {
		last3 := labels[n-3] + "." + labels[n-2] + "." + labels[n-1]
		if multiPartSuffixes[last3] {
			return last3
		}
	}
	// Single TLD, known or not (unknown TLDs are accepted per §4.C).
	return labels[n-1]
}

// GetDomain returns the registrable domain: the public suffix plus exactly
// one label to its left. Returns "" when host has no label in front of its
// suffix (i.e. host equals its own public suffix).
func GetDomain(host string) string {
	h := strings.ToLower(strings.TrimSuffix(host, "."))
	suffix := GetPublicSuffix(h)
	if h == suffix {
		return ""
	}
	rest := strings.TrimSuffix(h, "."+suffix)
	labels := strings.Split(rest, ".")
	if len(labels) == 0 {
		return ""
	}
	return labels[len(labels)-1] + "." + suffix
}

// Parsed holds the components produced by Parse.
type Parsed struct {
	Subdomain string
	Domain    string
	Suffix    string
}

// Parse splits host into subdomain / registrable domain / public suffix.
func Parse(host string) Parsed {
	h := strings.ToLower(strings.TrimSuffix(host, "."))
	suffix := GetPublicSuffix(h)
	domain := GetDomain(h)
	if domain == "" {
		return Parsed{Suffix: suffix}
	}
	sub := strings.TrimSuffix(h, "."+domain)
	if sub == h {
		sub = ""
	}
	return Parsed{Subdomain: sub, Domain: domain, Suffix: suffix}
}

// IsAncestor reports whether parent is a strict ancestor hostname of child:
// fewer labels, and child ends in "."+parent.
func IsAncestor(parent, child string) bool {
	if parent == child {
		return false
	}
	return strings.HasSuffix(child, "."+parent)
}

// ToPunycode converts a single hostname's non-ASCII labels to Punycode via
// IDNA, preserving structure. Pure-ASCII input is returned unchanged.
func ToPunycode(host string) (string, error) {
	if isASCII(host) {
		return host, nil
	}
	return idna.ToASCII(host)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
