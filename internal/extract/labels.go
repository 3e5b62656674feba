package extract

import (
	"strings"

	"github.com/florathai/harvester/internal/harvest"
)

// Labeled metadata blocks found on article pages. The pages carry these as
// loosely formatted text, sometimes "label: value" on one line, sometimes the
// label and value on consecutive lines.
const (
	LabelMainName       = "ชื่อหลักหรือชื่อทางการ"
	LabelScientificName = "ชื่อวิทยาศาสตร์"
	LabelAuthor         = "ผู้เขียนคำอธิบาย"
)

// metadataLabels are the prefixes that mark a paragraph as metadata rather
// than narrative content.
var metadataLabels = []string{LabelMainName, LabelScientificName, LabelAuthor}

// ExtractLabel locates a labeled value in the page's plain text. The value is
// the remainder of the first line starting with label, or the following line
// when the remainder is empty. Values made up only of dashes, and labels that
// never appear, yield harvest.NoValue. The routine is side-effect-free and is
// shared by every labeled field on a page.
func ExtractLabel(text, label string) string {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	for i, line := range lines {
		if !strings.HasPrefix(line, label) {
			continue
		}
		value := strings.TrimSpace(strings.TrimPrefix(line, label))
		value = strings.TrimSpace(strings.TrimLeft(value, ":"))
		if value == "" && i+1 < len(lines) {
			value = lines[i+1]
		}
		if value == "" || dashOnly(value) {
			return harvest.NoValue
		}
		return value
	}
	return harvest.NoValue
}

func dashOnly(s string) bool {
	return strings.Trim(s, "-‐–—") == ""
}
