package insight

import (
	"sort"

	"politix/internal/topic"
)

// Filter applies the topic and priority predicates and orders the survivors
// by severity. An empty selectedTopicIDs means no topic restriction; an empty
// priorityFilter yields an empty result. The sort is stable: equal ranks keep
// their prior relative order. The input slice is never mutated.
func Filter(insights []Insight, selectedTopicIDs []string, priorityFilter []Priority, topics []topic.Topic) []Insight {
	out := make([]Insight, 0, len(insights))

	selected := make(map[string]struct{}, len(selectedTopicIDs))
	for _, id := range selectedTopicIDs {
		selected[id] = struct{}{}
	}
	allowed := make(map[Priority]struct{}, len(priorityFilter))
	for _, p := range priorityFilter {
		allowed[p] = struct{}{}
	}

	var idx *TopicIndex
	if len(selected) > 0 {
		idx = NewTopicIndex(topics)
	}

	for _, in := range insights {
		if len(selected) > 0 {
			id, ok := idx.Resolve(in)
			if !ok {
				continue
			}
			if _, ok := selected[id]; !ok {
				continue
			}
		}
		if _, ok := allowed[in.Priority]; !ok {
			continue
		}
		out = append(out, in)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return Rank(out[i].Priority) < Rank(out[j].Priority)
	})
	return out
}
