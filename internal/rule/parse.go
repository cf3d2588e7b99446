package rule

import (
	"regexp"
	"strings"

	"github.com/hostlistc/hostlistc/internal/errs"
	"github.com/hostlistc/hostlistc/internal/hostutil"
)

var hostnamePatternRe = regexp.MustCompile(`(?i)^\|\|([a-z0-9.-]+)\^?$`)

// ParseAdblock implements spec §4.A's parseAdblock(line) → AdblockAST | Err.
func ParseAdblock(line string) (*AdblockAST, error) {
	text := strings.TrimSpace(line)

	whitelist := false
	if strings.HasPrefix(text, "@@") {
		whitelist = true
		text = text[2:]
	}
	if text == "" {
		return nil, errs.New(errs.InvalidRule, "adblock rule has no pattern after @@", nil)
	}

	pattern := text
	var options []Option

	if !isSkippedDollarScan(text) {
		if idx := lastUnescapedDollar(text); idx >= 0 {
			pattern = text[:idx]
			var err error
			options, err = parseOptions(text[idx+1:])
			if err != nil {
				return nil, err
			}
		}
	}

	ast := &AdblockAST{
		Pattern:   pattern,
		Whitelist: whitelist,
		Options:   options,
		Hostname:  ExtractHostname(pattern),
	}
	return ast, nil
}

// isSkippedDollarScan reports whether text is a /regex/ literal without a
// "replace=" substring, in which case the $-options scan is skipped
// entirely (spec §4.A).
func isSkippedDollarScan(text string) bool {
	return len(text) > 2 && strings.HasPrefix(text, "/") && strings.HasSuffix(text, "/") &&
		!strings.Contains(text, "replace=")
}

// lastUnescapedDollar scans from the right, skipping "\$", and returns the
// index of the rightmost unescaped '$', or -1 if there is none.
func lastUnescapedDollar(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] != '$' {
			continue
		}
		if i > 0 && s[i-1] == '\\' {
			continue
		}
		return i
	}
	return -1
}

// parseOptions splits a $options string on unescaped commas ("\," is an
// escaped comma, spec §3) and each part into name/value.
func parseOptions(raw string) ([]Option, error) {
	parts := splitUnescapedCommas(raw)
	opts := make([]Option, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		if idx := strings.IndexByte(p, '='); idx >= 0 {
			name := p[:idx]
			val := strings.ReplaceAll(p[idx+1:], `\,`, ",")
			opts = append(opts, Option{Name: name, Value: &val})
		} else {
			opts = append(opts, Option{Name: strings.ReplaceAll(p, `\,`, ",")})
		}
	}
	return opts, nil
}

func splitUnescapedCommas(s string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ',' && (i == 0 || s[i-1] != '\\') {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// ExtractHostname implements spec §4.A's extractHostname(pattern) → host |
// null, matching "^\|\|([a-z0-9.-]+)\^?$" on the pattern only.
func ExtractHostname(pattern string) *string {
	m := hostnamePatternRe.FindStringSubmatch(pattern)
	if m == nil {
		return nil
	}
	host := strings.ToLower(m[1])
	return &host
}

// ParseHosts implements spec §4.A's parseHosts(line) → HostsAST | Err.
func ParseHosts(line string) (*HostsAST, error) {
	text := strings.TrimSpace(line)

	comment := ""
	if idx := strings.Index(text, " #"); idx >= 0 {
		comment = strings.TrimSpace(text[idx+2:])
		text = strings.TrimSpace(text[:idx])
	}

	fields := strings.Fields(text)
	if len(fields) < 2 {
		return nil, errs.New(errs.InvalidRule, "hosts rule has zero hostnames", nil)
	}

	ipField := fields[0]
	ip, zone := ipField, ""
	if i := strings.IndexByte(ipField, '%'); i >= 0 {
		ip, zone = ipField[:i], ipField[i+1:]
	}
	if !hostutil.IsIP(ip) {
		return nil, errs.New(errs.InvalidRule, "hosts rule has invalid IP "+ip, nil)
	}

	names := fields[1:]
	if len(names) == 0 {
		return nil, errs.New(errs.InvalidRule, "hosts rule has zero hostnames", nil)
	}

	return &HostsAST{IP: ip, Zone: zone, Hostnames: names, Comment: comment}, nil
}

// ConvertNonAsciiToPunycode implements spec §4.A's
// convertNonAsciiToPunycode(line) → line.
func ConvertNonAsciiToPunycode(line string) string {
	return hostutil.ConvertLineToPunycode(line)
}
