package insight

import (
	"encoding/json"
	"time"
)

// Priority is the closed severity set for regulatory insights.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
	PriorityInfo   Priority = "info"
)

// AllPriorities lists every priority in descending severity.
var AllPriorities = []Priority{
	PriorityUrgent,
	PriorityHigh,
	PriorityMedium,
	PriorityLow,
	PriorityInfo,
}

// severityRank orders priorities for sorting. Lower sorts first.
var severityRank = map[Priority]int{
	PriorityUrgent: 1,
	PriorityHigh:   2,
	PriorityMedium: 3,
	PriorityLow:    4,
	PriorityInfo:   5,
}

// Rank returns the severity rank of p. Unknown values rank with info.
func Rank(p Priority) int {
	if r, ok := severityRank[p]; ok {
		return r
	}
	return severityRank[PriorityInfo]
}

// Insight is the normalized, read-only projection of one topic_analyses row.
// Every display field is populated; no partial insights leave the normalizer.
type Insight struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Source      string   `json:"source"`
	Priority    Priority `json:"priority"`
	Date        string   `json:"date"`
	Topic       string   `json:"topic"`
	TopicID     string   `json:"topicId"`
}

// RawRecord mirrors one topic_analyses row as delivered by the store.
// analysis_data, relevant_extracts and topics arrive as raw JSON because
// upstream writers do not agree on their shape.
type RawRecord struct {
	ID               string          `json:"id"`
	ContentType      string          `json:"content_type"`
	Summary          string          `json:"summary"`
	AnalysisData     json.RawMessage `json:"analysis_data"`
	RelevantExtracts json.RawMessage `json:"relevant_extracts"`
	Topics           json.RawMessage `json:"topics"`
	TopicID          string          `json:"topic_id"`
	AnalysisDate     time.Time       `json:"analysis_date"`
	Keywords         []string        `json:"keywords"`
	Sentiment        string          `json:"sentiment"`
}
