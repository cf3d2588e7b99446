package hostutil

// Embedded, curated public-suffix snapshot. Spec §4.C: "approximate but
// stable behavior, not the full PSL" — this is deliberately small. A larger
// multi-label table can be swapped in via SetMultiPartSuffixes without
// touching the lookup logic (the seam §9 calls for).

// multiPartSuffixes holds two- and three-label public suffixes that must be
// checked before falling back to single-label TLDs (e.g. "co.uk" must win
// over a hypothetical single-label "uk" match for "example.co.uk").
var multiPartSuffixes = map[string]bool{
	"co.uk": true, "org.uk": true, "me.uk": true, "ltd.uk": true, "plc.uk": true,
	"net.uk": true, "sch.uk": true, "ac.uk": true, "gov.uk": true,
	"com.au": true, "net.au": true, "org.au": true, "edu.au": true, "gov.au": true,
	"co.nz": true, "net.nz": true, "org.nz": true, "govt.nz": true,
	"co.jp": true, "ne.jp": true, "or.jp": true, "ac.jp": true, "go.jp": true,
	"co.kr": true, "or.kr": true, "ne.kr": true,
	"com.br": true, "net.br": true, "org.br": true,
	"com.cn": true, "net.cn": true, "org.cn": true, "gov.cn": true,
	"com.mx": true, "com.ar": true, "com.tr": true, "com.sg": true,
	"co.za": true, "org.za": true, "net.za": true,
	"co.in": true, "net.in": true, "org.in": true, "firm.in": true, "gen.in": true,
	"github.io": true, "blogspot.com": true, "herokuapp.com": true,
}

// singleTLDs holds the common single-label TLDs. GetPublicSuffix does not
// consult it: when no multi-part suffix matches, the last label is the
// suffix whether or not it is listed here.
var singleTLDs = map[string]bool{
	"com": true, "org": true, "net": true, "info": true, "biz": true,
	"io": true, "dev": true, "app": true, "xyz": true, "co": true,
	"us": true, "uk": true, "de": true, "fr": true, "nl": true, "ru": true,
	"jp": true, "cn": true, "br": true, "in": true, "au": true, "ca": true,
	"eu": true, "me": true, "tv": true, "cc": true, "name": true, "pro": true,
	"edu": true, "gov": true, "mil": true, "int": true, "online": true,
	"shop": true, "tech": true, "site": true, "store": true, "blog": true,
}

// SetMultiPartSuffixes replaces the embedded multi-label suffix table,
// letting callers load a fuller PSL snapshot at startup (§9 design note).
func SetMultiPartSuffixes(m map[string]bool) { multiPartSuffixes = m }

// SetSingleTLDs replaces the embedded single-label TLD table. The table is
// not read by GetPublicSuffix, so this does not change suffix lookups.
func SetSingleTLDs(m map[string]bool) { singleTLDs = m }
