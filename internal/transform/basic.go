package transform

import (
	"strings"

	"github.com/hostlistc/hostlistc/internal/hostutil"
	"github.com/hostlistc/hostlistc/internal/rule"
)

type removeCommentsT struct{}

func (removeCommentsT) Name() Name { return RemoveComments }
func (removeCommentsT) Apply(lines []string, _ Options) ([]string, error) {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if rule.Classify(l) == rule.Comment {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

type trimLinesT struct{}

func (trimLinesT) Name() Name { return TrimLines }
func (trimLinesT) Apply(lines []string, _ Options) ([]string, error) {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimSpace(l)
	}
	return out, nil
}

type removeEmptyLinesT struct{}

func (removeEmptyLinesT) Name() Name { return RemoveEmptyLines }
func (removeEmptyLinesT) Apply(lines []string, _ Options) ([]string, error) {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

type insertFinalNewLineT struct{}

func (insertFinalNewLineT) Name() Name { return InsertFinalNewLine }
func (insertFinalNewLineT) Apply(lines []string, _ Options) ([]string, error) {
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) != "" {
		out := make([]string, len(lines)+1)
		copy(out, lines)
		out[len(lines)] = ""
		return out, nil
	}
	return lines, nil
}

type convertToAsciiT struct{}

func (convertToAsciiT) Name() Name { return ConvertToAscii }
func (convertToAsciiT) Apply(lines []string, _ Options) ([]string, error) {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = hostutil.ConvertLineToPunycode(l)
	}
	return out, nil
}
