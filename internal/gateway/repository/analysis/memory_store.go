package analysis

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"politix/internal/insight"
)

// MemoryStore holds topic_analyses rows in process.
type MemoryStore struct {
	mu   sync.RWMutex
	recs []insight.RawRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) List(_ context.Context, q Query) ([]insight.RawRecord, error) {
	want := make(map[string]struct{}, len(q.TopicIDs))
	for _, id := range q.TopicIDs {
		want[id] = struct{}{}
	}
	ct := strings.TrimSpace(q.ContentType)

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]insight.RawRecord, 0, len(s.recs))
	for _, rec := range s.recs {
		if ct != "" && rec.ContentType != ct {
			continue
		}
		if len(want) > 0 {
			if _, ok := want[rec.TopicID]; !ok {
				continue
			}
		}
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AnalysisDate.After(out[j].AnalysisDate)
	})
	return out, nil
}

func (s *MemoryStore) Insert(_ context.Context, rec insight.RawRecord) (insight.RawRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.AnalysisDate.IsZero() {
		rec.AnalysisDate = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs = append(s.recs, rec)
	return rec, nil
}
