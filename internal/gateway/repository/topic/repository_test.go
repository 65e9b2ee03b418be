package topic

import (
	"context"
	"errors"
	"testing"

	"politix/internal/topic"
)

func TestMatchRowsBySourceExact(t *testing.T) {
	rows := []topic.Row{
		{ID: "1", TopicsSource: "https://acme.example"},
		{ID: "2", TopicsSource: "https://acme.example/"},
		{ID: "3", TopicsSource: "https://acme.example/about"},
		{ID: "4", TopicsSource: ""},
	}
	got := matchRowsBySource(rows, "HTTPS://ACME.EXAMPLE/")
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Fatalf("matchRowsBySource() exact = %+v, want rows 1 and 2", got)
	}
}

func TestMatchRowsBySourceDomainFallback(t *testing.T) {
	rows := []topic.Row{
		{ID: "1", TopicsSource: "https://acme.example/about"},
		{ID: "2", TopicsSource: "https://other.example"},
		{ID: "3", TopicsSource: ""},
	}
	got := matchRowsBySource(rows, "https://acme.example/careers")
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("matchRowsBySource() fallback = %+v, want row 1", got)
	}
}

func TestMatchRowsBySourceEmpty(t *testing.T) {
	rows := []topic.Row{{ID: "1", TopicsSource: "https://acme.example"}}
	if got := matchRowsBySource(rows, "  "); len(got) != 0 {
		t.Fatalf("matchRowsBySource(blank) = %+v, want empty", got)
	}
}

func TestMemoryStoreInsertAndList(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first, err := s.Insert(ctx, topic.Row{Name: "A"})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if first.ID == "" || first.Keywords == nil || first.CreatedAt.IsZero() {
		t.Fatalf("Insert() row not filled: %+v", first)
	}
	second, _ := s.Insert(ctx, topic.Row{Name: "B"})

	rows, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(rows) != 2 || rows[0].ID != first.ID || rows[1].ID != second.ID {
		t.Fatalf("List() = %+v, want insertion order", rows)
	}
}

func TestMemoryStoreInsertRequiresName(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Insert(context.Background(), topic.Row{}); err == nil {
		t.Fatalf("Insert() accepted a nameless row")
	}
}

func TestMemoryStoreListByIDs(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	a, _ := s.Insert(ctx, topic.Row{Name: "A"})
	_, _ = s.Insert(ctx, topic.Row{Name: "B"})

	rows, err := s.ListByIDs(ctx, []string{a.ID, "missing"})
	if err != nil {
		t.Fatalf("ListByIDs() error = %v", err)
	}
	if len(rows) != 1 || rows[0].ID != a.ID {
		t.Fatalf("ListByIDs() = %+v", rows)
	}
}

func TestMemoryStoreUpdate(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	a, _ := s.Insert(ctx, topic.Row{Name: "A", Description: "old"})

	updated, err := s.Update(ctx, a.ID, "A2", "new")
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "A2" || updated.Description != "new" {
		t.Fatalf("Update() = %+v", updated)
	}

	if _, err := s.Update(ctx, "missing", "X", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update(missing) error = %v, want ErrNotFound", err)
	}
}
