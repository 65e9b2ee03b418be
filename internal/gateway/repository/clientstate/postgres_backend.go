package clientstate

import "database/sql"

func (s *Store) ensureSchema() error {
	if s == nil || s.db == nil {
		return nil
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.Exec(`
CREATE TABLE IF NOT EXISTS client_state (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL DEFAULT '',
  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);
`)
	})
	return s.schemaErr
}

func (s *Store) getDB(key string) (string, bool) {
	if err := s.ensureSchema(); err != nil {
		return "", false
	}
	var value string
	err := s.db.QueryRow(`SELECT value FROM client_state WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false
	}
	if err != nil {
		return "", false
	}
	return value, true
}

func (s *Store) setDB(key, value string) error {
	if err := s.ensureSchema(); err != nil {
		return err
	}
	_, err := s.db.Exec(`
INSERT INTO client_state (key, value, updated_at)
VALUES ($1,$2,NOW())
ON CONFLICT (key)
DO UPDATE SET value=EXCLUDED.value, updated_at=NOW()`,
		key, value)
	return err
}

func (s *Store) deleteDB(key string) error {
	if err := s.ensureSchema(); err != nil {
		return err
	}
	_, err := s.db.Exec(`DELETE FROM client_state WHERE key = $1`, key)
	return err
}
