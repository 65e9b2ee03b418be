package artifact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

var ErrNotFound = errors.New("artifact not found")

// Store archives the raw material of one website analysis: the prompt sent to
// the model, the raw response, and the parsed topic list. Artifacts are keyed
// by analysis id plus a relative path.
type Store interface {
	Put(ctx context.Context, analysisID, path string, content []byte) error
	Get(ctx context.Context, analysisID, path string) ([]byte, error)
	List(ctx context.Context, analysisID string) ([]string, error)
}

// PostgresStore keeps artifacts inline in the database. Suitable for the
// small transcripts the analyze flow produces; larger deployments configure
// the S3 store instead.
type PostgresStore struct {
	db         *sql.DB
	schemaOnce sync.Once
	schemaErr  error
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ensureSchema() error {
	if s == nil || s.db == nil {
		return fmt.Errorf("db is nil")
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.Exec(`
CREATE TABLE IF NOT EXISTS analysis_artifacts (
  id SERIAL PRIMARY KEY,
  analysis_id TEXT NOT NULL,
  path TEXT NOT NULL,
  content BYTEA NOT NULL,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  UNIQUE (analysis_id, path)
);
CREATE INDEX IF NOT EXISTS idx_analysis_artifacts_analysis_id ON analysis_artifacts (analysis_id);
`)
	})
	return s.schemaErr
}

func validateKey(analysisID, path string) (string, string, error) {
	analysisID = strings.TrimSpace(analysisID)
	path = strings.TrimLeft(strings.TrimSpace(path), "/")
	if analysisID == "" {
		return "", "", fmt.Errorf("analysis_id is required")
	}
	if path == "" {
		return "", "", fmt.Errorf("path is required")
	}
	return analysisID, path, nil
}

func (s *PostgresStore) Put(ctx context.Context, analysisID, path string, content []byte) error {
	if err := s.ensureSchema(); err != nil {
		return err
	}
	analysisID, path, err := validateKey(analysisID, path)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO analysis_artifacts (analysis_id, path, content, created_at)
VALUES ($1,$2,$3,$4)
ON CONFLICT (analysis_id, path)
DO UPDATE SET content=EXCLUDED.content, created_at=EXCLUDED.created_at`,
		analysisID, path, content, time.Now().UTC(),
	)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, analysisID, path string) ([]byte, error) {
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	analysisID, path, err := validateKey(analysisID, path)
	if err != nil {
		return nil, err
	}
	var content []byte
	err = s.db.QueryRowContext(ctx,
		`SELECT content FROM analysis_artifacts WHERE analysis_id=$1 AND path=$2`,
		analysisID, path,
	).Scan(&content)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return content, nil
}

func (s *PostgresStore) List(ctx context.Context, analysisID string) ([]string, error) {
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	analysisID = strings.TrimSpace(analysisID)
	if analysisID == "" {
		return nil, fmt.Errorf("analysis_id is required")
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT path FROM analysis_artifacts WHERE analysis_id=$1 ORDER BY path`,
		analysisID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]string, 0, 8)
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
