package diff

import (
	"encoding/json"
	"fmt"
	"strings"
)

// jsonResult mirrors Result with explicit field names for stable JSON
// output (spec §4.K: "Output formats: JSON and Markdown").
type jsonResult struct {
	Added       []string      `json:"added"`
	Removed     []string      `json:"removed"`
	Unchanged   int           `json:"unchanged"`
	NetChange   int           `json:"netChange"`
	Percentage  float64       `json:"percentage"`
	DomainStats []DomainCount `json:"domainStats,omitempty"`
	Truncated   bool          `json:"truncated"`
}

// RenderJSON marshals res as indented JSON.
func RenderJSON(res Result) (string, error) {
	jr := jsonResult{
		Added: res.Added, Removed: res.Removed, Unchanged: res.Unchanged,
		NetChange: res.NetChange, Percentage: res.Percentage,
		DomainStats: res.DomainStats, Truncated: res.Truncated,
	}
	data, err := json.MarshalIndent(jr, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// RenderMarkdown renders a human-readable report: a summary table, a
// top-20 domain table, and up to 50 sample added/removed rows (spec
// §4.K).
func RenderMarkdown(res Result) string {
	var b strings.Builder

	b.WriteString("## Diff summary\n\n")
	b.WriteString("| Added | Removed | Unchanged | Net change | Percentage |\n")
	b.WriteString("|---|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %.2f%% |\n\n", len(res.Added), len(res.Removed), res.Unchanged, res.NetChange, res.Percentage)

	if len(res.DomainStats) > 0 {
		b.WriteString("## Top domains\n\n")
		b.WriteString("| Domain | Added | Removed | Total |\n")
		b.WriteString("|---|---|---|---|\n")
		top := res.DomainStats
		if len(top) > 20 {
			top = top[:20]
		}
		for _, d := range top {
			fmt.Fprintf(&b, "| %s | %d | %d | %d |\n", d.Hostname, d.Added, d.Removed, d.Total)
		}
		b.WriteString("\n")
	}

	renderSample := func(title string, rows []string) {
		if len(rows) == 0 {
			return
		}
		fmt.Fprintf(&b, "## %s (%d)\n\n", title, len(rows))
		sample := rows
		if len(sample) > 50 {
			sample = sample[:50]
		}
		for _, r := range sample {
			fmt.Fprintf(&b, "- `%s`\n", r)
		}
		b.WriteString("\n")
	}
	renderSample("Added", res.Added)
	renderSample("Removed", res.Removed)

	return b.String()
}
