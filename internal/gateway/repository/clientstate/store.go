package clientstate

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
)

// The dashboard keeps a tiny amount of per-install state. The gateway owns it
// so the schema is explicit and the one-shot semantics are enforced in one
// place.
const (
	// KeyWebsiteSubmitted is "true" once onboarding has analyzed a website.
	KeyWebsiteSubmitted = "websiteSubmitted"
	// KeyAnalyzedWebsite holds the URL the topics were generated from.
	KeyAnalyzedWebsite = "analyzedWebsite"
	// KeySelectedTopics holds a JSON array of followed topic ids.
	KeySelectedTopics = "selectedTopics"
	// KeyPreselectedTopics holds a JSON array of topic ids staged by the
	// analyze flow. It is one-shot: consumed and deleted on first read.
	KeyPreselectedTopics = "preselectedTopics"
)

// MaxSelectedTopics caps how many topics can be followed at once.
const MaxSelectedTopics = 10

var (
	ErrUnknownKey      = errors.New("clientstate: unknown key")
	ErrTooManyTopics   = fmt.Errorf("clientstate: at most %d topics can be selected", MaxSelectedTopics)
	ErrInvalidTopicIDs = errors.New("clientstate: value must be a JSON array of topic ids")
)

var knownKeys = map[string]struct{}{
	KeyWebsiteSubmitted:  {},
	KeyAnalyzedWebsite:   {},
	KeySelectedTopics:    {},
	KeyPreselectedTopics: {},
}

// IsKnownKey reports whether key belongs to the documented schema.
func IsKnownKey(key string) bool {
	_, ok := knownKeys[strings.TrimSpace(key)]
	return ok
}

// Store holds the client state. It is file-backed by default and
// Postgres-backed when the gateway runs against a database.
type Store struct {
	path string
	db   *sql.DB

	loadOnce sync.Once
	mu       sync.RWMutex
	values   map[string]string

	schemaOnce sync.Once
	schemaErr  error
}

// New creates a file-backed store at path.
func New(path string) *Store {
	return &Store{
		path:   path,
		values: make(map[string]string),
	}
}

// NewPostgres creates a database-backed store sharing the gateway's pool.
func NewPostgres(db *sql.DB) *Store {
	return &Store{
		db:     db,
		values: make(map[string]string),
	}
}

// NewFromEnv picks the backend: Postgres when db is non-nil, else a JSON file.
func NewFromEnv(db *sql.DB, path string) *Store {
	if db != nil {
		return NewPostgres(db)
	}
	if strings.TrimSpace(path) == "" {
		path = defaultStatePath()
	}
	return New(path)
}

func defaultStatePath() string {
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return dir + "/politix/client_state.json"
	}
	return "tmp/client_state.json"
}

// Get returns the value for key. Reading preselectedTopics consumes it.
func (s *Store) Get(key string) (string, bool) {
	key = strings.TrimSpace(key)
	if !IsKnownKey(key) {
		return "", false
	}
	var (
		value string
		ok    bool
	)
	if s.db != nil {
		value, ok = s.getDB(key)
	} else {
		value, ok = s.getFile(key)
	}
	if ok && key == KeyPreselectedTopics {
		_ = s.Delete(key)
	}
	return value, ok
}

// Set stores value under key after validating it against the schema.
func (s *Store) Set(key, value string) error {
	key = strings.TrimSpace(key)
	if !IsKnownKey(key) {
		return ErrUnknownKey
	}
	if key == KeySelectedTopics || key == KeyPreselectedTopics {
		ids, err := decodeTopicIDs(value)
		if err != nil {
			return err
		}
		if key == KeySelectedTopics && len(ids) > MaxSelectedTopics {
			return ErrTooManyTopics
		}
	}
	if s.db != nil {
		return s.setDB(key, value)
	}
	s.setFile(key, value)
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	key = strings.TrimSpace(key)
	if !IsKnownKey(key) {
		return ErrUnknownKey
	}
	if s.db != nil {
		return s.deleteDB(key)
	}
	s.deleteFile(key)
	return nil
}

// SelectedTopicIDs decodes the followed topic id list; absent or malformed
// state reads as no selection.
func (s *Store) SelectedTopicIDs() []string {
	raw, ok := s.Get(KeySelectedTopics)
	if !ok {
		return []string{}
	}
	ids, err := decodeTopicIDs(raw)
	if err != nil {
		return []string{}
	}
	return ids
}

// AnalyzedWebsite returns the URL the current topic set was generated from.
func (s *Store) AnalyzedWebsite() string {
	v, _ := s.Get(KeyAnalyzedWebsite)
	return v
}

func decodeTopicIDs(value string) ([]string, error) {
	var ids []string
	if err := json.Unmarshal([]byte(value), &ids); err != nil {
		return nil, ErrInvalidTopicIDs
	}
	return ids, nil
}
