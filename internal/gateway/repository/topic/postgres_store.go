package topic

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"politix/internal/topic"
)

const listCacheKey = "topics:all"

// PostgresStore persists topics in the hosted table. Reads of the full list
// are fronted by a small LRU cache; any write purges it.
type PostgresStore struct {
	db         *sql.DB
	schemaOnce sync.Once
	schemaErr  error
	rowCache   *lru.Cache[string, []topic.Row]
}

func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	cache, err := lru.New[string, []topic.Row](16)
	if err != nil {
		return nil, err
	}
	return &PostgresStore{db: db, rowCache: cache}, nil
}

func (s *PostgresStore) ensureSchema() error {
	if s == nil || s.db == nil {
		return fmt.Errorf("db is nil")
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.Exec(`
CREATE TABLE IF NOT EXISTS topics (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  is_public BOOLEAN NOT NULL DEFAULT FALSE,
  keywords JSONB NOT NULL DEFAULT '[]',
  user_id TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  topics_source TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_topics_topics_source ON topics (topics_source);
`)
	})
	return s.schemaErr
}

const topicColumns = `id, name, description, is_public, keywords, user_id, category, topics_source, created_at, updated_at`

func scanTopicRow(row interface{ Scan(dest ...any) error }) (topic.Row, error) {
	var (
		r        topic.Row
		keywords []byte
	)
	err := row.Scan(
		&r.ID, &r.Name, &r.Description, &r.IsPublic, &keywords,
		&r.UserID, &r.Category, &r.TopicsSource, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return topic.Row{}, err
	}
	if len(keywords) > 0 {
		_ = json.Unmarshal(keywords, &r.Keywords)
	}
	if r.Keywords == nil {
		r.Keywords = []string{}
	}
	return r, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]topic.Row, error) {
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	if cached, ok := s.rowCache.Get(listCacheKey); ok {
		return cached, nil
	}
	rows, err := s.db.QueryContext(ctx, `SELECT `+topicColumns+` FROM topics ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]topic.Row, 0, 32)
	for rows.Next() {
		r, err := scanTopicRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	s.rowCache.Add(listCacheKey, out)
	return out, nil
}

func (s *PostgresStore) ListByIDs(ctx context.Context, ids []string) ([]topic.Row, error) {
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []topic.Row{}, nil
	}
	placeholders := make([]string, 0, len(ids))
	args := make([]any, 0, len(ids))
	for i, id := range ids {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, id)
	}
	q := `SELECT ` + topicColumns + ` FROM topics WHERE id IN (` + strings.Join(placeholders, ",") + `) ORDER BY created_at`
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]topic.Row, 0, len(ids))
	for rows.Next() {
		r, err := scanTopicRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) ListBySource(ctx context.Context, source string) ([]topic.Row, error) {
	// Sources were stored with inconsistent casing/slashes by older clients,
	// so matching happens in Go over the (cached) full list.
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return matchRowsBySource(all, source), nil
}

func (s *PostgresStore) Insert(ctx context.Context, row topic.Row) (topic.Row, error) {
	if err := s.ensureSchema(); err != nil {
		return topic.Row{}, err
	}
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
	keywords, _ := json.Marshal(row.Keywords)

	_, err := s.db.ExecContext(ctx, `
INSERT INTO topics (id, name, description, is_public, keywords, user_id, category, topics_source, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		row.ID, row.Name, row.Description, row.IsPublic, keywords,
		row.UserID, row.Category, row.TopicsSource, row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		return topic.Row{}, err
	}
	s.rowCache.Purge()
	return row, nil
}

func (s *PostgresStore) Update(ctx context.Context, id, name, description string) (topic.Row, error) {
	if err := s.ensureSchema(); err != nil {
		return topic.Row{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return topic.Row{}, ErrNotFound
	}
	row := s.db.QueryRowContext(ctx, `
UPDATE topics SET name=$2, description=$3, updated_at=NOW()
WHERE id=$1
RETURNING `+topicColumns,
		id, name, description,
	)
	updated, err := scanTopicRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return topic.Row{}, ErrNotFound
		}
		return topic.Row{}, err
	}
	s.rowCache.Purge()
	return updated, nil
}
