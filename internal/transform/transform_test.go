package transform

import (
	"testing"

	"github.com/hostlistc/hostlistc/internal/wildcard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apply(t *testing.T, name Name, lines []string, opts Options) []string {
	t.Helper()
	reg := NewRegistry()
	tr, ok := reg.Lookup(name)
	require.True(t, ok)
	out, err := tr.Apply(lines, opts)
	require.NoError(t, err)
	return out
}

func TestRemoveComments(t *testing.T) {
	out := apply(t, RemoveComments, []string{"! c", "||a.com^", "# c2"}, Options{})
	assert.Equal(t, []string{"||a.com^"}, out)
}

func TestDeduplicateStableFirstWins(t *testing.T) {
	out := apply(t, Deduplicate, []string{"a", "b", "a", "c", "b"}, Options{})
	assert.Equal(t, []string{"a", "b", "c"}, out)
}

func TestDeduplicateIdempotent(t *testing.T) {
	in := []string{"a", "b", "a"}
	once := apply(t, Deduplicate, in, Options{})
	twice := apply(t, Deduplicate, once, Options{})
	assert.Equal(t, once, twice)
}

func TestCompressHostsSubsumption(t *testing.T) {
	in := []string{
		"0.0.0.0 ads.example.com",
		"0.0.0.0 evil.ads.example.com",
		"0.0.0.0 example.com",
	}
	out := apply(t, Compress, in, Options{})
	assert.Equal(t, []string{"||example.com^"}, out)
}

func TestCompressIdempotent(t *testing.T) {
	in := []string{"0.0.0.0 ads.example.com", "0.0.0.0 example.com"}
	once := apply(t, Compress, in, Options{})
	twice := apply(t, Compress, once, Options{})
	assert.Equal(t, once, twice)
	assert.LessOrEqual(t, len(once), len(in))
}

func TestInvertAllow(t *testing.T) {
	out := apply(t, InvertAllow, []string{"||example.com^"}, Options{})
	assert.Equal(t, []string{"||example.com^", "@@||example.com^$important"}, out)
}

func TestInvertAllowSkipsRulesWithOptions(t *testing.T) {
	out := apply(t, InvertAllow, []string{"||example.com^$third-party"}, Options{})
	assert.Equal(t, []string{"||example.com^$third-party"}, out)
}

func TestRemoveModifiersDefault(t *testing.T) {
	out := apply(t, RemoveModifiers, []string{"||example.com^$third-party,script"}, Options{})
	assert.Equal(t, []string{"||example.com^$script"}, out)
}

func TestValidateDropsShortPattern(t *testing.T) {
	out := apply(t, Validate, []string{"|a.b", "||example.com^"}, Options{})
	assert.Equal(t, []string{"||example.com^"}, out)
}

func TestValidateDropsPrecedingComments(t *testing.T) {
	in := []string{"! about bad.rule", "non/valid_rule", "||good.com^"}
	out := apply(t, Validate, in, Options{})
	assert.Equal(t, []string{"||good.com^"}, out)
}

func TestValidateAllowIpPermitsIPLiteral(t *testing.T) {
	out := apply(t, ValidateAllowIp, []string{"||1.2.3.4^"}, Options{})
	assert.Equal(t, []string{"||1.2.3.4^"}, out)
}

func TestValidateAcceptsKnownDnsType(t *testing.T) {
	out := apply(t, Validate, []string{"||example.com^$dnstype=AAAA"}, Options{})
	assert.Equal(t, []string{"||example.com^$dnstype=AAAA"}, out)
}

func TestValidateAcceptsNegatedMultiDnsType(t *testing.T) {
	out := apply(t, Validate, []string{"||example.com^$dnstype=!A|AAAA"}, Options{})
	assert.Equal(t, []string{"||example.com^$dnstype=!A|AAAA"}, out)
}

func TestValidateDropsUnknownDnsType(t *testing.T) {
	out := apply(t, Validate, []string{"||example.com^$dnstype=NOTAREALTYPE"}, Options{})
	assert.Empty(t, out)
}

func TestExcludeWildcards(t *testing.T) {
	reg := NewRegistry()
	ex, _ := reg.Lookup(Exclude)
	patterns := wildcard.CompileAll([]string{"*example*"})
	out, err := ex.(excludeT).applyPatterns(
		[]string{"||ads.example.com^", "||tracker.example.org^", "||safe.org^"}, patterns)
	require.NoError(t, err)
	assert.Equal(t, []string{"||safe.org^"}, out)
}

func TestIncludeKeepsAllWhenNoPatterns(t *testing.T) {
	reg := NewRegistry()
	inc, _ := reg.Lookup(Include)
	out, err := inc.(includeT).applyPatterns([]string{"a", "b"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, out)
}

func TestConflictDetection(t *testing.T) {
	var conflicts []Conflict
	out := apply(t, ConflictDetection, []string{"||example.com^", "@@||example.com^$script"}, Options{Conflicts: &conflicts})
	require.Len(t, conflicts, 1)
	assert.Equal(t, "example.com", conflicts[0].Domain)
	assert.Equal(t, "keep-allow", conflicts[0].Recommendation)
	assert.Len(t, out, 2) // no auto-resolve strategy configured
}

func TestConflictDetectionAutoResolveKeepBlock(t *testing.T) {
	out := apply(t, ConflictDetection, []string{"||example.com^", "@@||example.com^$script"}, Options{ConflictStrategy: "keep-block"})
	assert.Equal(t, []string{"||example.com^"}, out)
}

func TestPipelineOrderStability(t *testing.T) {
	p := NewPipeline(NewRegistry(), nil)
	in := []string{"! c", "0.0.0.0 ads.example.com", "0.0.0.0 example.com", "  "}
	a, err := p.Run(in, []Name{Compress, RemoveComments, RemoveEmptyLines}, Options{}, ExcludeIncludeSpec{})
	require.NoError(t, err)
	b, err := p.Run(in, []Name{RemoveEmptyLines, Compress, RemoveComments}, Options{}, ExcludeIncludeSpec{})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
