package compiler

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/hostlistc/hostlistc/internal/checksum"
	"github.com/hostlistc/hostlistc/internal/config"
	"github.com/hostlistc/hostlistc/internal/errs"
	"github.com/hostlistc/hostlistc/internal/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCompiler(mem *fetch.MemoryFetcher) *Compiler {
	c := New(mem, PackageInfo{Name: "hostlistc", Version: "0.0.0-test"}, nil, nil)
	c.Now = func() time.Time { return time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC) }
	return c
}

func TestCompileTwoRemoteSourcesMerged(t *testing.T) {
	mem := fetch.NewMemoryFetcher(map[string]string{
		"https://example.org/source1.txt": "||example.org",
		"https://example.org/source2.txt": "||example.com",
	})
	cfg := &config.Config{
		Name:    "test list",
		Version: "1.0.0.9",
		Sources: []config.Source{
			{Source: "https://example.org/source1.txt"},
			{Source: "https://example.org/source2.txt"},
		},
	}

	res, err := testCompiler(mem).Compile(context.Background(), cfg)
	require.NoError(t, err)

	joined := strings.Join(res.Lines, "\n")
	assert.Contains(t, joined, "||example.org")
	assert.Contains(t, joined, "||example.com")
	assert.Contains(t, joined, "! Version: 1.0.0.9")

	var foundChecksum, foundLastModified bool
	for _, l := range res.Lines {
		if strings.HasPrefix(l, "! Checksum:") {
			foundChecksum = true
		}
		if strings.HasPrefix(l, "! Last modified:") {
			foundLastModified = true
		}
	}
	assert.True(t, foundChecksum)
	assert.True(t, foundLastModified)
	assert.True(t, checksum.Verify(res.Lines))
}

func TestCompileNestedIncludes(t *testing.T) {
	mem := fetch.NewMemoryFetcher(map[string]string{
		"https://example.org/source1.txt": "!#include https://example.org/source2.txt",
		"https://example.org/source2.txt": "!#include https://example.org/source3.txt",
		"https://example.org/source3.txt": "last.include.com\nnon/valid_rule",
	})
	cfg := &config.Config{
		Name: "test list",
		Sources: []config.Source{
			{Source: "https://example.org/source1.txt", Transformations: []string{"RemoveComments", "Compress", "InsertFinalNewLine", "Validate"}},
		},
	}

	res, err := testCompiler(mem).Compile(context.Background(), cfg)
	require.NoError(t, err)

	joined := strings.Join(res.Lines, "\n")
	assert.Contains(t, joined, "||last.include.com^")
	assert.NotContains(t, joined, "non/valid_rule")
}

func TestCompileCrossOriginIncludeFails(t *testing.T) {
	mem := fetch.NewMemoryFetcher(map[string]string{
		"https://example.org/source1.txt": "!#include https://example1.org/source.txt",
	})
	cfg := &config.Config{
		Name:    "test list",
		Sources: []config.Source{{Source: "https://example.org/source1.txt"}},
	}

	_, err := testCompiler(mem).Compile(context.Background(), cfg)
	require.Error(t, err)
	var te *errs.Error
	require.ErrorAs(t, err, &te)
	assert.Equal(t, errs.CrossOriginInclude, te.Kind())
}

func TestCompileExcludeWildcards(t *testing.T) {
	mem := fetch.NewMemoryFetcher(map[string]string{
		"source.txt": "||ads.example.com^\n||tracker.example.org^\n||safe.org^",
	})
	cfg := &config.Config{
		Name:       "test list",
		Sources:    []config.Source{{Source: "source.txt"}},
		Exclusions: []string{"*example*"},
	}

	res, err := testCompiler(mem).Compile(context.Background(), cfg)
	require.NoError(t, err)

	var ruleLines []string
	for _, l := range res.Lines {
		if strings.HasPrefix(l, "||") {
			ruleLines = append(ruleLines, l)
		}
	}
	assert.Equal(t, []string{"||safe.org^"}, ruleLines)
}

func TestCompileIgnoreFailedSourcesSkipsWithWarning(t *testing.T) {
	mem := fetch.NewMemoryFetcher(map[string]string{
		"https://example.org/good.txt": "||good.example^",
	})
	cfg := &config.Config{
		Name:                "test list",
		IgnoreFailedSources: true,
		Sources: []config.Source{
			{Name: "good", Source: "https://example.org/good.txt"},
			{Name: "bad", Source: "https://example.org/missing.txt"},
		},
	}

	res, err := testCompiler(mem).Compile(context.Background(), cfg)
	require.NoError(t, err)
	assert.Contains(t, res.SkippedSources, "bad")
	assert.Len(t, res.Warnings, 1)

	joined := strings.Join(res.Lines, "\n")
	assert.Contains(t, joined, "||good.example^")
}

func TestCompileAbortsOnFailedSourceByDefault(t *testing.T) {
	mem := fetch.NewMemoryFetcher(map[string]string{
		"https://example.org/good.txt": "||good.example^",
	})
	cfg := &config.Config{
		Name: "test list",
		Sources: []config.Source{
			{Name: "good", Source: "https://example.org/good.txt"},
			{Name: "bad", Source: "https://example.org/missing.txt"},
		},
	}

	_, err := testCompiler(mem).Compile(context.Background(), cfg)
	require.Error(t, err)
}

func TestCompileReusesCacheWhenSourceUnchanged(t *testing.T) {
	mem := fetch.NewMemoryFetcher(map[string]string{
		"a.txt": "||a.example^",
	})
	cfg := &config.Config{
		Name:    "test list",
		Sources: []config.Source{{Source: "a.txt"}},
	}

	c := testCompiler(mem)
	first, err := c.Compile(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, 1, c.Cache.Len())

	second, err := c.Compile(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, first.Lines, second.Lines)
	assert.Equal(t, 1, c.Cache.Len())
}

func TestCompilePreservesConfiguredSourceOrder(t *testing.T) {
	mem := fetch.NewMemoryFetcher(map[string]string{
		"a.txt": "||a.example^",
		"b.txt": "||b.example^",
		"c.txt": "||c.example^",
	})
	cfg := &config.Config{
		Name: "test list",
		Sources: []config.Source{
			{Source: "a.txt"}, {Source: "b.txt"}, {Source: "c.txt"},
		},
	}

	res, err := testCompiler(mem).Compile(context.Background(), cfg)
	require.NoError(t, err)

	var order []string
	for _, l := range res.Lines {
		if strings.HasPrefix(l, "||") {
			order = append(order, l)
		}
	}
	assert.Equal(t, []string{"||a.example^", "||b.example^", "||c.example^"}, order)
}
