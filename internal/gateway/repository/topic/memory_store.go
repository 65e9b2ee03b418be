package topic

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"politix/internal/topic"
)

// MemoryStore keeps topic rows in process. Used when no DATABASE_URL is
// configured and throughout the tests.
type MemoryStore struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]topic.Row
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]topic.Row)}
}

func (s *MemoryStore) List(_ context.Context) ([]topic.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]topic.Row, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out, nil
}

func (s *MemoryStore) ListByIDs(ctx context.Context, ids []string) ([]topic.Row, error) {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	all, _ := s.List(ctx)
	out := make([]topic.Row, 0, len(ids))
	for _, r := range all {
		if _, ok := want[r.ID]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemoryStore) ListBySource(ctx context.Context, source string) ([]topic.Row, error) {
	all, _ := s.List(ctx)
	return matchRowsBySource(all, source), nil
}

func (s *MemoryStore) Insert(_ context.Context, row topic.Row) (topic.Row, error) {
	if strings.TrimSpace(row.Name) == "" {
		return topic.Row{}, fmt.Errorf("topic name is required")
	}
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if row.Keywords == nil {
		row.Keywords = []string{}
	}
	now := time.Now().UTC()
	row.CreatedAt = now
	row.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[row.ID]; !exists {
		s.order = append(s.order, row.ID)
	}
	s.byID[row.ID] = row
	return row, nil
}

func (s *MemoryStore) Update(_ context.Context, id, name, description string) (topic.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.byID[strings.TrimSpace(id)]
	if !ok {
		return topic.Row{}, ErrNotFound
	}
	row.Name = name
	row.Description = description
	row.UpdatedAt = time.Now().UTC()
	s.byID[row.ID] = row
	return row, nil
}
