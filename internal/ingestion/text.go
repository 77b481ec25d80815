// Package ingestion normalizes the job description text submitted with a rewrite request.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	inlineWhitespace = regexp.MustCompile(`[\s\x{00a0}]+`)
	blankLineRuns    = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes line endings and spacing while preserving headings, bullets and
// paragraph breaks.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := strings.Join(lines, "\n")
	result = removeExcessiveBlankLines(result)
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving structure
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t\u00a0")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	indent := len(line) - len(trimmed)
	if isBulletLine(trimmed) {
		return strings.Repeat(" ", indent) + trimmed
	}

	content := inlineWhitespace.ReplaceAllString(strings.TrimSpace(line), " ")
	return strings.Repeat(" ", indent) + content
}

func isBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "• ") || strings.HasPrefix(trimmed, "· ")
}

// removeExcessiveBlankLines reduces consecutive blank lines to one
func removeExcessiveBlankLines(content string) string {
	return blankLineRuns.ReplaceAllString(content, "\n\n")
}
