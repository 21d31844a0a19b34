// File: internal/history/store.go
// Brief: SQLite store for dispatched batches and inventory snapshots.

package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	_ "modernc.org/sqlite"
)

// ErrNoSnapshot is returned when no inventory snapshot has been recorded
// yet, e.g. on the first `list --changes` ever run against a store.
var ErrNoSnapshot = errors.New("no inventory snapshot recorded")

// DefaultPath is where the store lives unless the operator points
// elsewhere.
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", "cdki", "history.db"), nil
}

type Store struct {
	db       *sql.DB
	path     string
	readOnly bool
}

func Open(path string) (*Store, error) {
	return open(path, false)
}

func OpenReadOnly(path string) (*Store, error) {
	return open(path, true)
}

func open(path string, readOnly bool) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}
	if readOnly {
		if _, err := os.Stat(path); err != nil {
			return nil, err
		}
	} else {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	dsn := path
	if readOnly {
		// modernc's driver knows _pragma, not mattn's _busy_timeout.
		dsn = "file:" + path + "?mode=ro&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s := &Store{db: db, path: path, readOnly: readOnly}
	if !readOnly {
		if err := s.initSchema(ctx); err != nil {
			_ = s.Close()
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Path() string { return s.path }

func (s *Store) initSchema(ctx context.Context) error {
	stmts := []string{
		`PRAGMA journal_mode=WAL;`,
		`PRAGMA synchronous=NORMAL;`,
		`PRAGMA busy_timeout=5000;`,
		`
CREATE TABLE IF NOT EXISTS cdki_batches (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  verb TEXT NOT NULL,
  stacks_json TEXT NOT NULL,
  stack_count INTEGER NOT NULL,
  started_at_ns INTEGER NOT NULL,
  finished_at_ns INTEGER,
  success INTEGER,
  error TEXT NOT NULL DEFAULT ''
);`,
		`CREATE INDEX IF NOT EXISTS idx_cdki_batches_started ON cdki_batches(started_at_ns);`,
		`
CREATE TABLE IF NOT EXISTS cdki_snapshots (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  taken_at_ns INTEGER NOT NULL,
  inventory_json TEXT NOT NULL
);`,
		`CREATE INDEX IF NOT EXISTS idx_cdki_snapshots_taken ON cdki_snapshots(taken_at_ns);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// Batch is one dispatched deploy/destroy operation. The outcome is
// aggregate only: the toolkit reports nothing per stack.
type Batch struct {
	ID         int64
	Verb       string
	Stacks     []string
	StartedAt  time.Time
	FinishedAt time.Time
	Finished   bool
	Success    bool
	Error      string
}

// BeginBatch records a batch before it is dispatched so an interrupted
// process still leaves a trace of what was attempted.
func (s *Store) BeginBatch(ctx context.Context, verb string, stacks []string) (int64, error) {
	stacksJSON, err := json.Marshal(stacks)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, `
INSERT INTO cdki_batches (verb, stacks_json, stack_count, started_at_ns)
VALUES (?, ?, ?, ?)
`, verb, string(stacksJSON), len(stacks), time.Now().UTC().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("insert batch: %w", err)
	}
	return res.LastInsertId()
}

func (s *Store) FinishBatch(ctx context.Context, id int64, success bool, errText string) error {
	_, err := s.db.ExecContext(ctx, `
UPDATE cdki_batches SET finished_at_ns = ?, success = ?, error = ? WHERE id = ?
`, time.Now().UTC().UnixNano(), boolToInt(success), strings.TrimSpace(errText), id)
	if err != nil {
		return fmt.Errorf("finish batch: %w", err)
	}
	return nil
}

func (s *Store) RecentBatches(ctx context.Context, limit int) ([]Batch, error) {
	if limit < 1 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, verb, stacks_json, started_at_ns, finished_at_ns, success, error
FROM cdki_batches ORDER BY started_at_ns DESC, id DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query batches: %w", err)
	}
	defer rows.Close()

	var out []Batch
	for rows.Next() {
		var (
			b          Batch
			stacksJSON string
			startedNS  int64
			finishedNS sql.NullInt64
			success    sql.NullInt64
		)
		if err := rows.Scan(&b.ID, &b.Verb, &stacksJSON, &startedNS, &finishedNS, &success, &b.Error); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(stacksJSON), &b.Stacks); err != nil {
			return nil, fmt.Errorf("decode batch %d stacks: %w", b.ID, err)
		}
		b.StartedAt = time.Unix(0, startedNS).UTC()
		if finishedNS.Valid {
			b.Finished = true
			b.FinishedAt = time.Unix(0, finishedNS.Int64).UTC()
			b.Success = success.Valid && success.Int64 != 0
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// SnapshotEntry is one stack's name and status at snapshot time, the unit
// the change diff works over.
type SnapshotEntry struct {
	FullName string `json:"fullName"`
	Status   string `json:"status"`
}

func (s *Store) SaveSnapshot(ctx context.Context, entries []SnapshotEntry) (int64, error) {
	payload, err := json.Marshal(entries)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, `
INSERT INTO cdki_snapshots (taken_at_ns, inventory_json) VALUES (?, ?)
`, time.Now().UTC().UnixNano(), string(payload))
	if err != nil {
		return 0, fmt.Errorf("insert snapshot: %w", err)
	}
	return res.LastInsertId()
}

// LatestSnapshot returns the most recent snapshot and when it was taken.
func (s *Store) LatestSnapshot(ctx context.Context) ([]SnapshotEntry, time.Time, error) {
	var (
		takenNS int64
		payload string
	)
	err := s.db.QueryRowContext(ctx, `
SELECT taken_at_ns, inventory_json FROM cdki_snapshots ORDER BY taken_at_ns DESC, id DESC LIMIT 1
`).Scan(&takenNS, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, ErrNoSnapshot
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("query snapshot: %w", err)
	}
	var entries []SnapshotEntry
	if err := json.Unmarshal([]byte(payload), &entries); err != nil {
		return nil, time.Time{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return entries, time.Unix(0, takenNS).UTC(), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
