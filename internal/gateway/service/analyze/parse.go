package analyze

import (
	"encoding/json"
	"fmt"
	"strings"

	"politix/internal/util/jsonutil"
)

// ExtractedTopic is one topic suggestion from the model.
type ExtractedTopic struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ParseTopics decodes the model's topic list. The body should be a bare JSON
// array, but models sometimes wrap it in prose or a code fence, so a failed
// direct decode falls back to the outermost bracketed span.
func ParseTopics(content string) ([]ExtractedTopic, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("empty model response")
	}

	var topics []ExtractedTopic
	if err := jsonutil.UnmarshalFlex([]byte(content), &topics); err == nil {
		return validTopics(topics)
	}

	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in model response")
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &topics); err != nil {
		return nil, fmt.Errorf("parse topics: %w", err)
	}
	return validTopics(topics)
}

func validTopics(topics []ExtractedTopic) ([]ExtractedTopic, error) {
	out := make([]ExtractedTopic, 0, len(topics))
	for _, t := range topics {
		t.Name = strings.TrimSpace(t.Name)
		t.Description = strings.TrimSpace(t.Description)
		if t.Name == "" {
			continue
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("model response contained no usable topics")
	}
	return out, nil
}
