package analysis

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"politix/internal/insight"
)

// PostgresStore reads and writes topic_analyses rows over the hosted table.
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
CREATE TABLE IF NOT EXISTS topic_analyses (
  id TEXT PRIMARY KEY,
  content_type TEXT NOT NULL DEFAULT '',
  analysis_data JSONB,
  relevant_extracts JSONB,
  topics JSONB,
  topic_id TEXT NOT NULL DEFAULT '',
  summary TEXT NOT NULL DEFAULT '',
  analysis_date TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  keywords JSONB NOT NULL DEFAULT '[]',
  sentiment TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_topic_analyses_content_type ON topic_analyses (content_type);
CREATE INDEX IF NOT EXISTS idx_topic_analyses_topic_id ON topic_analyses (topic_id);
`)
	})
	return s.schemaErr
}

const analysisColumns = `id, content_type, analysis_data, relevant_extracts, topics, topic_id, summary, analysis_date, keywords, sentiment`

func (s *PostgresStore) List(ctx context.Context, q Query) ([]insight.RawRecord, error) {
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}

	query := `SELECT ` + analysisColumns + ` FROM topic_analyses`
	conds := make([]string, 0, 2)
	args := make([]any, 0, 8)
	if ct := strings.TrimSpace(q.ContentType); ct != "" {
		args = append(args, ct)
		conds = append(conds, fmt.Sprintf("content_type = $%d", len(args)))
	}
	if len(q.TopicIDs) > 0 {
		placeholders := make([]string, 0, len(q.TopicIDs))
		for _, id := range q.TopicIDs {
			args = append(args, id)
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		conds = append(conds, "topic_id IN ("+strings.Join(placeholders, ",")+")")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY analysis_date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]insight.RawRecord, 0, 64)
	for rows.Next() {
		var (
			rec              insight.RawRecord
			analysisData     []byte
			relevantExtracts []byte
			topics           []byte
			keywords         []byte
		)
		err := rows.Scan(
			&rec.ID, &rec.ContentType, &analysisData, &relevantExtracts, &topics,
			&rec.TopicID, &rec.Summary, &rec.AnalysisDate, &keywords, &rec.Sentiment,
		)
		if err != nil {
			return nil, err
		}
		rec.AnalysisData = json.RawMessage(analysisData)
		rec.RelevantExtracts = json.RawMessage(relevantExtracts)
		rec.Topics = json.RawMessage(topics)
		if len(keywords) > 0 {
			_ = json.Unmarshal(keywords, &rec.Keywords)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Insert(ctx context.Context, rec insight.RawRecord) (insight.RawRecord, error) {
	if err := s.ensureSchema(); err != nil {
		return insight.RawRecord{}, err
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.AnalysisDate.IsZero() {
		rec.AnalysisDate = time.Now().UTC()
	}
	keywords, _ := json.Marshal(rec.Keywords)
	_, err := s.db.ExecContext(ctx, `
INSERT INTO topic_analyses (id, content_type, analysis_data, relevant_extracts, topics, topic_id, summary, analysis_date, keywords, sentiment)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		rec.ID, rec.ContentType, nullableJSON(rec.AnalysisData), nullableJSON(rec.RelevantExtracts), nullableJSON(rec.Topics),
		rec.TopicID, rec.Summary, rec.AnalysisDate, keywords, rec.Sentiment,
	)
	if err != nil {
		return insight.RawRecord{}, err
	}
	return rec, nil
}

func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}
