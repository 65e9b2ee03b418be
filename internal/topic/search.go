package topic

import "strings"

// Search filters topics by a free-text query against name, category and
// description, case-insensitively. A blank query keeps everything.
func Search(topics []Topic, query string) []Topic {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return topics
	}
	out := make([]Topic, 0, len(topics))
	for _, t := range topics {
		if strings.Contains(strings.ToLower(t.Name), q) ||
			strings.Contains(strings.ToLower(t.Category), q) ||
			strings.Contains(strings.ToLower(t.Description), q) {
			out = append(out, t)
		}
	}
	return out
}
