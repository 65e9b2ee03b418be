package insight

import "politix/internal/topic"

// TopicIndex resolves insights to known topics. Names are assumed unique for
// this purpose; when they are not, the last row wins.
type TopicIndex struct {
	nameToID map[string]string
}

// NewTopicIndex builds a name lookup over the given topics.
func NewTopicIndex(topics []topic.Topic) *TopicIndex {
	idx := &TopicIndex{nameToID: make(map[string]string, len(topics))}
	for _, t := range topics {
		idx.nameToID[t.Name] = t.ID
	}
	return idx
}

// Resolve returns the id of the topic the insight belongs to. An explicit
// topicId on the insight is authoritative; otherwise the topic name is looked
// up. The second return is false when the insight matches no known topic.
func (idx *TopicIndex) Resolve(in Insight) (string, bool) {
	if in.TopicID != "" {
		return in.TopicID, true
	}
	if id, ok := idx.nameToID[in.Topic]; ok && id != "" {
		return id, true
	}
	return "", false
}
