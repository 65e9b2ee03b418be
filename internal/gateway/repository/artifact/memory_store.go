package artifact

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore keeps artifacts in process.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Put(_ context.Context, analysisID, path string, content []byte) error {
	analysisID, path, err := validateKey(analysisID, path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[analysisID+"/"+path] = append([]byte(nil), content...)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, analysisID, path string) ([]byte, error) {
	analysisID, path, err := validateKey(analysisID, path)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.data[analysisID+"/"+path]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), raw...), nil
}

// AnalysisIDs returns the distinct analysis ids with stored artifacts.
func (s *MemoryStore) AnalysisIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	out := make([]string, 0, 4)
	for key := range s.data {
		id, _, _ := strings.Cut(key, "/")
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s *MemoryStore) List(_ context.Context, analysisID string) ([]string, error) {
	analysisID = strings.TrimSpace(analysisID)
	if analysisID == "" {
		return nil, ErrNotFound
	}
	prefix := analysisID + "/"
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, 8)
	for key := range s.data {
		if strings.HasPrefix(key, prefix) {
			out = append(out, strings.TrimPrefix(key, prefix))
		}
	}
	sort.Strings(out)
	return out, nil
}
