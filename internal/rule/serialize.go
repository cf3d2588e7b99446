package rule

import "strings"

// SerializeAdblock implements spec §4.A's serializeAdblock(ast) → string
// and satisfies invariant P2: serialize(parse(r)) == r for canonical rules.
func SerializeAdblock(ast *AdblockAST) string {
	var sb strings.Builder
	if ast.Whitelist {
		sb.WriteString("@@")
	}
	sb.WriteString(ast.Pattern)
	if len(ast.Options) > 0 {
		sb.WriteByte('$')
		sb.WriteString(serializeOptions(ast.Options))
	}
	return sb.String()
}

func serializeOptions(opts []Option) string {
	parts := make([]string, len(opts))
	for i, o := range opts {
		name := strings.ReplaceAll(o.Name, ",", `\,`)
		if o.Value != nil {
			parts[i] = name + "=" + strings.ReplaceAll(*o.Value, ",", `\,`)
		} else {
			parts[i] = name
		}
	}
	return strings.Join(parts, ",")
}

// SerializeHosts renders a HostsAST back to "IP name1 name2 [# comment]".
func SerializeHosts(ast *HostsAST) string {
	var sb strings.Builder
	sb.WriteString(ast.IP)
	if ast.Zone != "" {
		sb.WriteByte('%')
		sb.WriteString(ast.Zone)
	}
	for _, n := range ast.Hostnames {
		sb.WriteByte(' ')
		sb.WriteString(n)
	}
	if ast.Comment != "" {
		sb.WriteString(" #")
		sb.WriteString(ast.Comment)
	}
	return sb.String()
}

// BlockRule renders the canonical "||host^" form.
func BlockRule(host string) string {
	return "||" + host + "^"
}

// ExceptionRule renders the canonical "@@||host^$important" form used by
// InvertAllow (spec §4.F, §9 Open Questions).
func ExceptionRule(host string) string {
	return "@@||" + host + "^$important"
}
