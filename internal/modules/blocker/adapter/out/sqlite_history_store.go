package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"focus/internal/modules/blocker/domain"

	_ "modernc.org/sqlite"
)

type SQLiteHistoryStore struct {
	db *sql.DB
}

func NewSQLiteHistoryStore(dbPath string) (*SQLiteHistoryStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteHistoryStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteHistoryStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  schema_version INTEGER NOT NULL,
  goal TEXT NOT NULL,
  duration_seconds INTEGER NOT NULL,
  blocked_sites TEXT NOT NULL,
  blocked_apps TEXT NOT NULL,
  created_unix_nano INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_created ON sessions (created_unix_nano);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

type appColumn struct {
	Label      string `json:"label"`
	Executable string `json:"executable"`
	Icon       string `json:"icon,omitempty"`
}

func (s *SQLiteHistoryStore) Append(ctx context.Context, record domain.Record) error {
	sites, err := json.Marshal(nonNil(record.BlockedSites))
	if err != nil {
		return fmt.Errorf("encode blocked sites: %w", err)
	}
	apps := make([]appColumn, 0, len(record.BlockedApps))
	for _, app := range record.BlockedApps {
		apps = append(apps, appColumn{Label: app.Label, Executable: app.Executable, Icon: app.Icon})
	}
	appsJSON, err := json.Marshal(apps)
	if err != nil {
		return fmt.Errorf("encode blocked apps: %w", err)
	}
	const stmt = `
INSERT INTO sessions (id, schema_version, goal, duration_seconds, blocked_sites, blocked_apps, created_unix_nano)
VALUES (?, ?, ?, ?, ?, ?, ?);
`
	_, err = s.db.ExecContext(ctx, stmt,
		record.ID,
		domain.SchemaVersion,
		record.Goal,
		record.Duration,
		string(sites),
		string(appsJSON),
		record.Timestamp.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryStore) List(ctx context.Context) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, goal, duration_seconds, blocked_sites, blocked_apps, created_unix_nano
FROM sessions
ORDER BY created_unix_nano DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	out := []domain.Record{}
	for rows.Next() {
		var (
			record   domain.Record
			sites    string
			apps     string
			unixNano int64
		)
		if err := rows.Scan(&record.ID, &record.Goal, &record.Duration, &sites, &apps, &unixNano); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if err := json.Unmarshal([]byte(sites), &record.BlockedSites); err != nil {
			return nil, fmt.Errorf("decode blocked sites of %s: %w", record.ID, err)
		}
		columns := []appColumn{}
		if err := json.Unmarshal([]byte(apps), &columns); err != nil {
			return nil, fmt.Errorf("decode blocked apps of %s: %w", record.ID, err)
		}
		for _, c := range columns {
			record.BlockedApps = append(record.BlockedApps, domain.AppTarget{Label: c.Label, Executable: c.Executable, Icon: c.Icon})
		}
		record.Timestamp = time.Unix(0, unixNano).UTC()
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

func (s *SQLiteHistoryStore) Close() error {
	return s.db.Close()
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
