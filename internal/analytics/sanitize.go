package analytics

import "strings"

const (
	reasoningStart = "<think>"
	reasoningEnd   = "</think>"
)

// StripReasoning removes the model's embedded deliberation span. When both
// markers are present the span, markers included, is excised; otherwise the
// text passes through untouched. The result is trimmed of surrounding
// whitespace either way.
func StripReasoning(s string) string {
	start := strings.Index(s, reasoningStart)
	end := strings.Index(s, reasoningEnd)
	if start != -1 && end != -1 {
		s = s[:start] + s[end+len(reasoningEnd):]
	}
	return strings.TrimSpace(s)
}
