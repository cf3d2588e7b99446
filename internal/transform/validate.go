package transform

import (
	"strings"

	"github.com/hostlistc/hostlistc/internal/hostutil"
	"github.com/hostlistc/hostlistc/internal/rule"
	"github.com/miekg/dns"
)

// supportedModifiers is the allowlist Validate enforces on adblock options
// (spec §4.F).
var supportedModifiers = map[string]bool{
	"important": true, "~important": true, "badfilter": true, "ctag": true,
	"denyallow": true, "client": true, "dnstype": true, "dnsrewrite": true,
}

// minPatternLength is the shortest adblock pattern Validate accepts,
// measured after an optional leading "://" is stripped (spec §9's
// "minimum pattern length of 5"). The allowed character class
// [A-Za-z0-9.\-*|^] is enforced by isAllowedPatternChar.
const minPatternLength = 5

type validateT struct{ allowIP bool }
type validateAllowIPT struct{ validateT }

func (validateT) Name() Name        { return Validate }
func (validateAllowIPT) Name() Name { return ValidateAllowIp }

func (v validateT) Apply(lines []string, _ Options) ([]string, error) {
	return runValidate(lines, v.allowIP)
}

func (v validateAllowIPT) Apply(lines []string, _ Options) ([]string, error) {
	return runValidate(lines, true)
}

func runValidate(lines []string, allowIP bool) ([]string, error) {
	var out []string
	for _, l := range lines {
		kind := rule.Classify(l)
		switch kind {
		case rule.Comment, rule.Empty:
			out = append(out, l)
			continue
		case rule.Cosmetic:
			out = append(out, l)
			continue
		case rule.Hosts:
			ast, err := rule.ParseHosts(l)
			if err != nil || !hostsValid(ast, allowIP) {
				out = dropTrailingCommentsAndEmpties(out)
				continue
			}
			out = append(out, l)
		case rule.PlainDomain:
			if !hostnameValid(l, allowIP) {
				out = dropTrailingCommentsAndEmpties(out)
				continue
			}
			out = append(out, l)
		default: // Adblock
			ast, err := rule.ParseAdblock(l)
			if err != nil || !adblockValid(ast, allowIP) {
				out = dropTrailingCommentsAndEmpties(out)
				continue
			}
			out = append(out, l)
		}
	}
	return out, nil
}

func dropTrailingCommentsAndEmpties(out []string) []string {
	for len(out) > 0 {
		k := rule.Classify(out[len(out)-1])
		if k != rule.Comment && k != rule.Empty {
			break
		}
		out = out[:len(out)-1]
	}
	return out
}

func hostsValid(ast *rule.HostsAST, allowIP bool) bool {
	for _, h := range ast.Hostnames {
		if !hostnameValid(h, allowIP) {
			return false
		}
	}
	return true
}

func hostnameValid(host string, allowIP bool) bool {
	if allowIP && hostutil.IsIP(host) {
		return true
	}
	if !hostutil.IsValidHostname(host) {
		return false
	}
	return host != hostutil.GetPublicSuffix(host)
}

func adblockValid(ast *rule.AdblockAST, allowIP bool) bool {
	for _, o := range ast.Options {
		if !supportedModifiers[o.Name] {
			return false
		}
		if o.Name == "dnstype" && o.Value != nil && !dnsTypeValueValid(*o.Value) {
			return false
		}
	}

	pattern := ast.Pattern
	pattern = strings.TrimPrefix(pattern, "://")

	if len(pattern) < minPatternLength {
		return false
	}
	for i := 0; i < len(pattern); i++ {
		if !isAllowedPatternChar(pattern[i]) {
			return false
		}
	}
	if idx := strings.IndexByte(pattern, '^'); idx >= 0 && idx < len(pattern)-1 {
		if strings.ContainsRune(pattern[idx+1:], '*') {
			return false
		}
	}

	if ast.Hostname != nil {
		return hostnameValid(*ast.Hostname, allowIP)
	}
	return true
}

// dnsTypeValueValid checks a $dnstype value ("AAAA" or "A|AAAA", optionally
// negated with a leading "!") against real DNS RR type names, grounded on
// the teacher's own dnstype-shaped queries (feng2208-adblocker server/dns.go).
func dnsTypeValueValid(value string) bool {
	value = strings.TrimPrefix(value, "!")
	if value == "" {
		return false
	}
	for _, part := range strings.Split(value, "|") {
		if _, ok := dns.StringToType[strings.ToUpper(part)]; !ok {
			return false
		}
	}
	return true
}

func isAllowedPatternChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '.' || c == '-' || c == '*' || c == '|' || c == '^':
		return true
	default:
		return false
	}
}
