package header

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStripUpstreamMetadataRemovesKnownPrefixes(t *testing.T) {
	in := []string{
		"! Title: Old List",
		"! Version: 0.0.1",
		"||keep.example^",
		"! Checksum: abc",
		"! Compiled by someone v1",
	}
	out := StripUpstreamMetadata(in)
	assert.Equal(t, []string{"||keep.example^"}, out)
}

func TestStripUpstreamMetadataCollapsesBangRuns(t *testing.T) {
	in := []string{"!", "!", "!", "||a.example^", "!", "!"}
	out := StripUpstreamMetadata(in)
	assert.Equal(t, []string{"!", "||a.example^", "!"}, out)
}

func TestRenderProducesCanonicalOrder(t *testing.T) {
	info := Info{
		Name:           "My List",
		Description:    "desc",
		Homepage:       "https://example.org",
		License:        "MIT",
		Version:        "1.0.0.9",
		PackageName:    "hostlistc",
		PackageVersion: "1.2.3",
		CompiledAt:     time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC),
	}
	out := Render(info)
	assert.Equal(t, []string{
		"!",
		"! Title: My List",
		"! Description: desc",
		"! Homepage: https://example.org",
		"! License: MIT",
		"! Version: 1.0.0.9",
		"! Last modified: 2026-07-30T12:00:00Z",
		"!",
		"! Compiled by hostlistc v1.2.3",
		"!",
	}, out)
}

func TestRenderOmitsEmptyOptionalFields(t *testing.T) {
	out := Render(Info{Name: "Minimal", PackageName: "hostlistc", PackageVersion: "1.0.0", CompiledAt: time.Unix(0, 0)})
	for _, l := range out {
		assert.NotContains(t, l, "! Description:")
		assert.NotContains(t, l, "! Homepage:")
	}
}
