package topic

import "strings"

// DefaultCategory is applied when no heuristic matches.
const DefaultCategory = "Uncategorized"

type categoryRule struct {
	pattern  string
	category string
}

// Ordered: first match wins, so the rules are slices rather than maps.
var keywordRules = []categoryRule{
	{"AI", "Technology"},
	{"regulation", "Government"},
	{"policy", "Government"},
	{"ethics", "Ethics"},
	{"privacy", "Privacy"},
	{"data", "Data"},
	{"safety", "Safety"},
	{"research", "Research"},
	{"funding", "Finance"},
	{"infrastructure", "Infrastructure"},
}

var nameRules = []categoryRule{
	{"AI", "Technology"},
	{"Regulation", "Government"},
	{"Ethics", "Ethics"},
	{"Privacy", "Privacy"},
	{"Data", "Data"},
	{"Safety", "Safety"},
	{"Research", "Research"},
	{"Funding", "Finance"},
	{"Infrastructure", "Infrastructure"},
}

// DeriveCategory picks a grouping label for a topic row. An explicit category
// on the row is trusted; otherwise the keywords and then the name are probed
// with a fixed rule order. This is best-effort display grouping, not a source
// of truth, and always falls back to DefaultCategory.
func DeriveCategory(r Row) string {
	if r.Category != "" {
		return r.Category
	}
	for _, kw := range r.Keywords {
		lower := strings.ToLower(kw)
		for _, rule := range keywordRules {
			if strings.Contains(lower, strings.ToLower(rule.pattern)) {
				return rule.category
			}
		}
	}
	for _, rule := range nameRules {
		if strings.Contains(r.Name, rule.pattern) {
			return rule.category
		}
	}
	return DefaultCategory
}

// Category groups topics sharing one derived category label.
type Category struct {
	Name   string  `json:"name"`
	Topics []Topic `json:"topics"`
}

// Categorize groups topics by category. Category order follows first
// appearance in the input; topics keep their relative order within a group.
func Categorize(topics []Topic) []Category {
	order := make([]string, 0, 8)
	byName := make(map[string][]Topic, 8)
	for _, t := range topics {
		name := t.Category
		if name == "" {
			name = DefaultCategory
		}
		if _, seen := byName[name]; !seen {
			order = append(order, name)
		}
		byName[name] = append(byName[name], t)
	}
	out := make([]Category, 0, len(order))
	for _, name := range order {
		out = append(out, Category{Name: name, Topics: byName[name]})
	}
	return out
}
