package wildcard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileEmpty(t *testing.T) {
	_, err := Compile("")
	require.Error(t, err)
}

func TestPlainMatch(t *testing.T) {
	p, err := Compile("example")
	require.NoError(t, err)
	assert.Equal(t, Plain, p.Kind())
	assert.True(t, p.Test("||ads.example.com^"))
	assert.False(t, p.Test("||safe.org^"))
}

func TestGlobMatch(t *testing.T) {
	p, err := Compile("*example*")
	require.NoError(t, err)
	assert.Equal(t, Glob, p.Kind())
	assert.True(t, p.Test("||ads.example.com^"))
	assert.False(t, p.Test("||safe.org^"))
}

func TestRegexMatch(t *testing.T) {
	p, err := Compile("/^ads\\./")
	require.NoError(t, err)
	assert.Equal(t, Regex, p.Kind())
	assert.True(t, p.Test("ads.example.com"))
	assert.False(t, p.Test("example.com"))
}

func TestPartitionAndAnyMatch(t *testing.T) {
	patterns := CompileAll([]string{"example", "*tracker*"})
	plain, other := Partition(patterns)
	require.Len(t, plain, 1)
	require.Len(t, other, 1)
	assert.True(t, AnyMatch(plain, other, "||tracker.example.org^"))
	assert.False(t, AnyMatch(plain, other, "||safe.org^"))
}
