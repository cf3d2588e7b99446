// Package checksum computes and embeds the compiled list's content
// checksum (spec §4.J).
package checksum

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

const truncatedLen = 27

const prefix = "! Checksum:"
const compiledByPrefix = "! Compiled by "

// Compute returns the truncated Base64 SHA-256 digest over lines,
// excluding any existing "! Checksum:" line, joined with "\n" (spec §4.J).
func Compute(lines []string) string {
	filtered := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.HasPrefix(l, prefix) {
			continue
		}
		filtered = append(filtered, l)
	}
	sum := sha256.Sum256([]byte(strings.Join(filtered, "\n")))
	encoded := base64.StdEncoding.EncodeToString(sum[:])
	if len(encoded) > truncatedLen {
		encoded = encoded[:truncatedLen]
	}
	return encoded
}

// Insert computes the checksum over lines and splices a "! Checksum: …"
// line immediately before the "! Compiled by" line, or before the first
// non-comment line when no such line exists (spec §4.J).
func Insert(lines []string) []string {
	value := Compute(lines)
	checksumLine := prefix + " " + value

	insertAt := len(lines)
	for i, l := range lines {
		if strings.HasPrefix(l, compiledByPrefix) {
			insertAt = i
			break
		}
	}
	if insertAt == len(lines) {
		insertAt = firstNonComment(lines)
	}

	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:insertAt]...)
	out = append(out, checksumLine)
	out = append(out, lines[insertAt:]...)
	return out
}

func firstNonComment(lines []string) int {
	for i, l := range lines {
		t := strings.TrimSpace(l)
		if t != "" && !strings.HasPrefix(t, "!") {
			return i
		}
	}
	return len(lines)
}

// Verify reports whether lines carries a "! Checksum:" line whose value
// matches Compute(lines) (spec P3 self-consistency).
func Verify(lines []string) bool {
	for _, l := range lines {
		if strings.HasPrefix(l, prefix) {
			embedded := strings.TrimSpace(strings.TrimPrefix(l, prefix))
			return embedded == Compute(lines)
		}
	}
	return false
}
