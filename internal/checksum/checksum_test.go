package checksum

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeIsDeterministic(t *testing.T) {
	lines := []string{"! Title: x", "||a.example^"}
	assert.Equal(t, Compute(lines), Compute(lines))
}

func TestComputeLengthIsTruncatedTo27(t *testing.T) {
	assert.Len(t, Compute([]string{"a", "b", "c"}), truncatedLen)
}

func TestComputeIgnoresExistingChecksumLine(t *testing.T) {
	base := []string{"! Title: x", "||a.example^"}
	withChecksum := append(append([]string{}, base...), "! Checksum: whatever-stale-value")
	assert.Equal(t, Compute(base), Compute(withChecksum))
}

func TestInsertPlacesChecksumBeforeCompiledBy(t *testing.T) {
	lines := []string{"! Title: x", "! Compiled by hostlistc v1.0.0", "||a.example^"}
	out := Insert(lines)
	require.Len(t, out, 4)
	assert.True(t, strings.HasPrefix(out[1], "! Checksum:"))
	assert.Equal(t, "! Compiled by hostlistc v1.0.0", out[2])
}

func TestInsertPlacesChecksumBeforeFirstNonCommentWhenNoCompiledBy(t *testing.T) {
	lines := []string{"! Title: x", "||a.example^", "||b.example^"}
	out := Insert(lines)
	require.Len(t, out, 4)
	assert.True(t, strings.HasPrefix(out[1], "! Checksum:"))
	assert.Equal(t, "||a.example^", out[2])
}

func TestInsertIsSelfConsistent(t *testing.T) {
	lines := []string{"! Title: x", "! Compiled by hostlistc v1.0.0", "||a.example^", "||b.example^"}
	out := Insert(lines)
	assert.True(t, Verify(out))
}

func TestVerifyFalseWhenNoChecksumLine(t *testing.T) {
	assert.False(t, Verify([]string{"||a.example^"}))
}

func TestVerifyFalseWhenTampered(t *testing.T) {
	lines := []string{"! Title: x", "! Compiled by hostlistc v1.0.0", "||a.example^"}
	out := Insert(lines)
	out = append([]string{}, out...)
	out = append(out, "||extra-after-checksum-computed.example^")
	assert.False(t, Verify(out))
}
