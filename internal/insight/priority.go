package insight

import "strings"

// ClassifyPriority maps an arbitrary priority value onto the closed set.
// It is total: any input, including the empty string, yields exactly one
// priority. Matching is case-insensitive, first match wins.
func ClassifyPriority(raw string) Priority {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(v, "urgent") || v == "critical":
		return PriorityUrgent
	case strings.Contains(v, "high") || v == "important":
		return PriorityHigh
	case strings.Contains(v, "medium"):
		return PriorityMedium
	case strings.Contains(v, "low"):
		return PriorityLow
	default:
		return PriorityInfo
	}
}
