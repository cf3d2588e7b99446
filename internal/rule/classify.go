package rule

import (
	"strings"

	"github.com/hostlistc/hostlistc/internal/hostutil"
)

// Classify implements spec §4.A's classify(line) → kind. Order matters:
// "####" must be checked before the generic "#" comment form, and cosmetic
// markers are checked before the hosts/plain-domain/adblock fallthrough.
func Classify(line string) Kind {
	t := strings.TrimSpace(line)

	if t == "" {
		return Empty
	}
	if strings.HasPrefix(t, "####") {
		return Comment
	}
	if t == "#" {
		return Comment
	}
	if strings.HasPrefix(t, "# ") {
		return Comment
	}
	if strings.HasPrefix(t, "!") {
		return Comment
	}
	if isCosmetic(t) {
		return Cosmetic
	}
	if isHostsShaped(t) {
		return Hosts
	}
	if isPlainDomain(t) {
		return PlainDomain
	}
	return Adblock
}

func isCosmetic(t string) bool {
	for _, marker := range []string{"##", "#?#", "#@#", "#$#"} {
		if strings.Contains(t, marker) {
			return true
		}
	}
	return false
}

func isHostsShaped(t string) bool {
	fields := strings.Fields(stripHostsComment(t))
	if len(fields) < 2 {
		return false
	}
	ipPart := fields[0]
	if i := strings.IndexByte(ipPart, '%'); i >= 0 {
		ipPart = ipPart[:i]
	}
	return hostutil.IsIP(ipPart)
}

// stripHostsComment removes a trailing "# comment" per spec §3's
// "[# comment]" — a '#' preceded by whitespace.
func stripHostsComment(t string) string {
	idx := strings.Index(t, " #")
	if idx < 0 {
		return t
	}
	return strings.TrimSpace(t[:idx])
}

func isPlainDomain(t string) bool {
	if strings.ContainsAny(t, " \t") {
		return false
	}
	if strings.ContainsAny(t, "*|^$/@") {
		return false
	}
	return hostutil.IsValidHostname(t)
}
