package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeAddedAndRemoved(t *testing.T) {
	original := []string{"||a.example^", "||b.example^"}
	updated := []string{"||a.example^", "||c.example^"}

	res := Compute(original, updated, DefaultOptions())
	assert.Equal(t, []string{"||c.example^"}, res.Added)
	assert.Equal(t, []string{"||b.example^"}, res.Removed)
	assert.Equal(t, 1, res.Unchanged)
	assert.Equal(t, 0, res.NetChange)
}

func TestComputeIgnoresCommentsAndEmptyLinesByDefault(t *testing.T) {
	original := []string{"! a comment", "", "||a.example^"}
	updated := []string{"! a different comment", "||a.example^", "||b.example^"}

	res := Compute(original, updated, DefaultOptions())
	assert.Equal(t, []string{"||b.example^"}, res.Added)
	assert.Empty(t, res.Removed)
}

func TestComputeDomainAnalysisAggregatesByHostname(t *testing.T) {
	original := []string{"||a.example^"}
	updated := []string{"||a.example^", "||b.example^", "||c.example^"}

	res := Compute(original, updated, DefaultOptions())
	require.Len(t, res.DomainStats, 2)
	assert.Equal(t, 1, res.DomainStats[0].Added)
}

func TestComputeTruncatesAtMaxRulesToInclude(t *testing.T) {
	var updated []string
	for i := 0; i < 10; i++ {
		updated = append(updated, "rule"+string(rune('a'+i)))
	}
	opts := DefaultOptions()
	opts.MaxRulesToInclude = 3
	opts.IgnoreComments = false
	opts.AnalyzeDomains = false

	res := Compute(nil, updated, opts)
	assert.Len(t, res.Added, 3)
	assert.True(t, res.Truncated)
}

func TestRenderJSONRoundTripsFieldNames(t *testing.T) {
	res := Compute([]string{"||a.example^"}, []string{"||a.example^", "||b.example^"}, DefaultOptions())
	out, err := RenderJSON(res)
	require.NoError(t, err)
	assert.Contains(t, out, `"added"`)
	assert.Contains(t, out, `"||b.example^"`)
}

func TestRenderMarkdownContainsSummaryTable(t *testing.T) {
	res := Compute([]string{"||a.example^"}, []string{"||a.example^", "||b.example^"}, DefaultOptions())
	out := RenderMarkdown(res)
	assert.Contains(t, out, "## Diff summary")
	assert.Contains(t, out, "||b.example^")
}
