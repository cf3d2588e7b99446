// Package rule implements the rule model, classifier, and adblock/hosts
// parsers described in spec §3 and §4.A.
package rule

// Kind classifies a single input line into exactly one category (spec §3,
// invariant P1: classification is total).
type Kind int

const (
	Comment Kind = iota
	Empty
	Hosts
	Adblock
	Cosmetic
	PlainDomain
)

func (k Kind) String() string {
	switch k {
	case Comment:
		return "Comment"
	case Empty:
		return "Empty"
	case Hosts:
		return "Hosts"
	case Adblock:
		return "Adblock"
	case Cosmetic:
		return "Cosmetic"
	case PlainDomain:
		return "PlainDomain"
	default:
		return "Unknown"
	}
}

// Option is a single adblock rule modifier: either a bare flag ("important")
// or a name=value pair ("dnstype=AAAA").
type Option struct {
	Name  string
	Value *string
}

// AdblockAST is the parsed shape of an adblock network rule (spec §3).
// Hostname is set only when Pattern matches "||host^?" exactly.
type AdblockAST struct {
	Pattern   string
	Whitelist bool
	Options   []Option
	Hostname  *string
}

// HostsAST is the parsed shape of a hosts-file rule.
type HostsAST struct {
	IP        string
	Zone      string
	Hostnames []string
	Comment   string
}

// Rule wraps a classified line together with its source tag, used by the
// source compiler (§4.G) for diagnostics and by transformations that need
// to inspect a rule's structure without re-parsing it.
type Rule struct {
	Text       string
	Kind       Kind
	SourceName string
}

// New builds a Rule by classifying text.
func New(text, sourceName string) Rule {
	return Rule{Text: text, Kind: Classify(text), SourceName: sourceName}
}
