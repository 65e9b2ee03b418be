package clientstate

import (
	"encoding/json"
	"os"
	"path/filepath"
)

func (s *Store) ensureLoadedFile() {
	s.loadOnce.Do(func() {
		b, err := os.ReadFile(s.path)
		if err != nil {
			return
		}
		var values map[string]string
		if err := json.Unmarshal(b, &values); err != nil {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for k, v := range values {
			if IsKnownKey(k) {
				s.values[k] = v
			}
		}
	})
}

func (s *Store) saveFile() {
	s.mu.RLock()
	values := make(map[string]string, len(s.values))
	for k, v := range s.values {
		values[k] = v
	}
	s.mu.RUnlock()

	b, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return
	}
	_ = os.MkdirAll(filepath.Dir(s.path), 0o755)
	_ = os.WriteFile(s.path, b, 0o644)
}

func (s *Store) getFile(key string) (string, bool) {
	s.ensureLoadedFile()
	s.mu.RLock()
	v, ok := s.values[key]
	s.mu.RUnlock()
	return v, ok
}

func (s *Store) setFile(key, value string) {
	s.ensureLoadedFile()
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	s.saveFile()
}

func (s *Store) deleteFile(key string) {
	s.ensureLoadedFile()
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	s.saveFile()
}
