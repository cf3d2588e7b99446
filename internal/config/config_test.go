package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRejectsMissingName(t *testing.T) {
	cfg := &Config{Sources: []Source{{Source: "https://example.org/a.txt"}}}
	_, err := Validate(cfg)
	require.Error(t, err)
}

func TestValidateRejectsEmptySources(t *testing.T) {
	cfg := &Config{Name: "test"}
	_, err := Validate(cfg)
	require.Error(t, err)
}

func TestValidateRejectsDuplicateSourceNames(t *testing.T) {
	cfg := &Config{
		Name: "test",
		Sources: []Source{
			{Name: "a", Source: "https://example.org/1.txt"},
			{Name: "a", Source: "https://example.org/2.txt"},
		},
	}
	_, err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate source name")
}

func TestValidateWarnsOnUnknownTransformation(t *testing.T) {
	cfg := &Config{
		Name:            "test",
		Sources:         []Source{{Source: "https://example.org/1.txt"}},
		Transformations: []string{"NotARealTransform"},
	}
	warnings, err := Validate(cfg)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "NotARealTransform")
}

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	cfg := &Config{
		Name:    "test",
		Version: "1.0.0",
		Sources: []Source{{Name: "s1", Source: "https://example.org/1.txt"}},
	}
	warnings, err := Validate(cfg)
	require.NoError(t, err)
	assert.Empty(t, warnings)
}
