package insights

import (
	"context"
	"fmt"
	"strings"
	"time"

	"politix/internal/cache/memory"
	"politix/internal/gateway/repository/analysis"
	topicrepo "politix/internal/gateway/repository/topic"
	"politix/internal/insight"
	"politix/internal/topic"
)

// Service runs the normalization/filter pipeline over stored analysis rows.
// Assembled lists are cached briefly so dashboard polls within the TTL do not
// re-query the table store; each query key replaces only its own entry.
type Service struct {
	analyses analysis.Store
	topics   topicrepo.Store
	cache    *memory.LRUTTL[string, []insight.Insight]
}

func New(analyses analysis.Store, topics topicrepo.Store) *Service {
	return &Service{
		analyses: analyses,
		topics:   topics,
		cache:    memory.NewLRUTTL[string, []insight.Insight](64, 30*time.Second),
	}
}

// Query selects and orders insights. Empty TopicIDs means no topic
// restriction; Priorities is the exact allow-set (empty keeps nothing).
type Query struct {
	TopicIDs    []string
	Priorities  []insight.Priority
	ContentType string
}

func (q Query) cacheKey() string {
	parts := []string{
		q.ContentType,
		strings.Join(q.TopicIDs, ","),
	}
	for _, p := range q.Priorities {
		parts = append(parts, string(p))
	}
	return strings.Join(parts, "|")
}

// List fetches raw rows, normalizes every one of them, and filters/sorts per
// the query. Topic matching needs the known topic list, so both stores are
// consulted; the topic fetch is not restricted to the selection because name
// fallback may resolve against any topic.
func (s *Service) List(ctx context.Context, q Query) ([]insight.Insight, error) {
	key := q.cacheKey()
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	recs, err := s.analyses.List(ctx, analysis.Query{ContentType: q.ContentType})
	if err != nil {
		return nil, fmt.Errorf("fetch insights: %w", err)
	}
	rows, err := s.topics.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch topics: %w", err)
	}

	out := insight.Filter(
		insight.NormalizeAll(recs),
		q.TopicIDs,
		q.Priorities,
		topic.FromRows(rows),
	)
	s.cache.Set(key, out)
	return out, nil
}

// Stats summarizes the insight set for the dashboard stat cards.
type Stats struct {
	Total      int                      `json:"total"`
	ByPriority map[insight.Priority]int `json:"byPriority"`
	Followed   int                      `json:"followedTopics"`
}

// Stats counts insights per priority over the (optionally topic-restricted)
// regulatory set. followed is the caller's followed-topic count, echoed back.
func (s *Service) Stats(ctx context.Context, topicIDs []string, followed int) (Stats, error) {
	all, err := s.List(ctx, Query{
		TopicIDs:    topicIDs,
		Priorities:  insight.AllPriorities,
		ContentType: analysis.ContentTypeRegulatoryInsight,
	})
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{
		Total:      len(all),
		ByPriority: make(map[insight.Priority]int, len(insight.AllPriorities)),
		Followed:   followed,
	}
	for _, p := range insight.AllPriorities {
		stats.ByPriority[p] = 0
	}
	for _, in := range all {
		stats.ByPriority[in.Priority]++
	}
	return stats, nil
}

// Invalidate drops every cached list. Called after writes that change what a
// fetch would return.
func (s *Service) Invalidate() { s.cache.Clear() }
