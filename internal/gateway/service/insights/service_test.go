package insights

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"politix/internal/gateway/repository/analysis"
	topicrepo "politix/internal/gateway/repository/topic"
	"politix/internal/insight"
	"politix/internal/topic"
)

func seedStores(t *testing.T) (*Service, topicrepo.Store, analysis.Store) {
	t.Helper()
	topics := topicrepo.NewMemoryStore()
	analyses := analysis.NewMemoryStore()
	svc := New(analyses, topics)

	ctx := context.Background()
	reg, err := topics.Insert(ctx, topic.Row{Name: "AI Regulation"})
	if err != nil {
		t.Fatalf("seed topic: %v", err)
	}
	_, err = topics.Insert(ctx, topic.Row{Name: "Data Privacy"})
	if err != nil {
		t.Fatalf("seed topic: %v", err)
	}

	recs := []insight.RawRecord{
		{
			ID:           "r-1",
			ContentType:  analysis.ContentTypeRegulatoryInsight,
			AnalysisData: json.RawMessage(`{"title":"AI Act Update","priority":"urgent","topic":"AI Regulation"}`),
			AnalysisDate: time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:           "r-2",
			ContentType:  analysis.ContentTypeRegulatoryInsight,
			AnalysisData: json.RawMessage(`{"title":"Privacy Draft","priority":"low","topic":"Data Privacy"}`),
			AnalysisDate: time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:           "r-3",
			ContentType:  "news_summary",
			AnalysisData: json.RawMessage(`{"title":"Not Regulatory","priority":"high"}`),
			AnalysisDate: time.Date(2024, 4, 3, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:           "r-4",
			ContentType:  analysis.ContentTypeRegulatoryInsight,
			AnalysisData: json.RawMessage(`{"title":"Explicit Topic","priority":"high"}`),
			TopicID:      reg.ID,
			AnalysisDate: time.Date(2024, 4, 4, 10, 0, 0, 0, time.UTC),
		},
	}
	for _, rec := range recs {
		if _, err := analyses.Insert(ctx, rec); err != nil {
			t.Fatalf("seed analysis: %v", err)
		}
	}
	return svc, topics, analyses
}

func regulatoryQuery() Query {
	return Query{
		Priorities:  insight.AllPriorities,
		ContentType: analysis.ContentTypeRegulatoryInsight,
	}
}

func TestListNormalizesAndSorts(t *testing.T) {
	svc, _, _ := seedStores(t)
	got, err := svc.List(context.Background(), regulatoryQuery())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("List() len = %d, want 3 (news row excluded)", len(got))
	}
	if got[0].Title != "AI Act Update" || got[0].Priority != insight.PriorityUrgent {
		t.Fatalf("List()[0] = %+v, want the urgent insight first", got[0])
	}
	if got[2].Priority != insight.PriorityLow {
		t.Fatalf("List()[2].Priority = %q, want low last", got[2].Priority)
	}
}

func TestListTopicSelection(t *testing.T) {
	svc, topics, _ := seedStores(t)
	rows, err := topics.List(context.Background())
	if err != nil {
		t.Fatalf("topics: %v", err)
	}
	var regID string
	for _, r := range rows {
		if r.Name == "AI Regulation" {
			regID = r.ID
		}
	}

	q := regulatoryQuery()
	q.TopicIDs = []string{regID}
	got, err := svc.List(context.Background(), q)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	// One matched by name, one by explicit topic id.
	if len(got) != 2 {
		t.Fatalf("List() len = %d, want 2", len(got))
	}
	for _, in := range got {
		if in.Title == "Privacy Draft" {
			t.Fatalf("List() kept an unselected topic's insight")
		}
	}
}

func TestListEmptyPriorityFilter(t *testing.T) {
	svc, _, _ := seedStores(t)
	q := regulatoryQuery()
	q.Priorities = nil
	got, err := svc.List(context.Background(), q)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("List() len = %d, want 0 for empty priority filter", len(got))
	}
}

func TestListCachesUntilInvalidated(t *testing.T) {
	svc, _, analyses := seedStores(t)
	ctx := context.Background()

	first, err := svc.List(ctx, regulatoryQuery())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	_, err = analyses.Insert(ctx, insight.RawRecord{
		ID:           "r-5",
		ContentType:  analysis.ContentTypeRegulatoryInsight,
		AnalysisData: json.RawMessage(`{"title":"Fresh","priority":"urgent"}`),
	})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	cached, err := svc.List(ctx, regulatoryQuery())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(cached) != len(first) {
		t.Fatalf("List() re-queried inside TTL: len %d vs %d", len(cached), len(first))
	}

	svc.Invalidate()
	fresh, err := svc.List(ctx, regulatoryQuery())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(fresh) != len(first)+1 {
		t.Fatalf("List() after Invalidate() len = %d, want %d", len(fresh), len(first)+1)
	}
}

func TestStats(t *testing.T) {
	svc, _, _ := seedStores(t)
	stats, err := svc.Stats(context.Background(), nil, 4)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Total != 3 {
		t.Fatalf("Stats() Total = %d, want 3", stats.Total)
	}
	if stats.ByPriority[insight.PriorityUrgent] != 1 ||
		stats.ByPriority[insight.PriorityHigh] != 1 ||
		stats.ByPriority[insight.PriorityLow] != 1 {
		t.Fatalf("Stats() ByPriority = %+v", stats.ByPriority)
	}
	if stats.Followed != 4 {
		t.Fatalf("Stats() Followed = %d", stats.Followed)
	}
}
