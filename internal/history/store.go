// Package history persists grading runs.
//
// The engine itself is stateless between invocations; run history is the
// one thing that outlives a request. Backed by SQLite so the server works
// without any external service.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/SmackdabDevOps/smackdab-api-grader/internal/grading"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// timeNow is a package-level var to allow deterministic tests.
var timeNow = time.Now

// RunRecord is one persisted grading run.
type RunRecord struct {
	ID            string  `json:"id"`
	DocumentPath  string  `json:"document_path"`
	DocumentHash  string  `json:"document_hash"`
	Profile       string  `json:"profile"`
	Confidence    float64 `json:"confidence"`
	Total         int     `json:"total"`
	Letter        string  `json:"letter"`
	CompliancePct float64 `json:"compliance_pct"`
	AutoFail      bool    `json:"auto_fail"`
	ReportJSON    string  `json:"report_json"`
	CreatedAt     string  `json:"created_at"`
}

// Config holds store configuration.
type Config struct {
	DataDir string
}

// DefaultConfig places the database under the user's home directory.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{DataDir: filepath.Join(home, ".smackdab-grader")}
}

// Store is the grading-run history backed by SQLite.
type Store struct {
	db  *sql.DB
	cfg Config
}

// New creates the data directory if needed, opens SQLite with WAL mode,
// and runs migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("history: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "history.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("history: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("history: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id             TEXT PRIMARY KEY,
			document_path  TEXT NOT NULL,
			document_hash  TEXT NOT NULL,
			profile        TEXT NOT NULL,
			confidence     REAL NOT NULL,
			total          INTEGER NOT NULL,
			letter         TEXT NOT NULL,
			compliance_pct REAL NOT NULL,
			auto_fail      INTEGER NOT NULL DEFAULT 0,
			report_json    TEXT NOT NULL,
			created_at     TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_runs_document_path ON runs(document_path);
		CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveRun records one grading run and returns its generated ID.
func (s *Store) SaveRun(documentPath, documentHash string, run grading.RunResult) (string, error) {
	reportJSON, err := json.Marshal(run.Report)
	if err != nil {
		return "", fmt.Errorf("history: marshal report: %w", err)
	}

	id := uuid.NewString()
	createdAt := timeNow().UTC().Format(time.RFC3339)

	_, err = s.db.Exec(`
		INSERT INTO runs (id, document_path, document_hash, profile, confidence,
			total, letter, compliance_pct, auto_fail, report_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, documentPath, documentHash, run.Profile, run.Detection.Confidence,
		run.Report.Total, run.Report.Letter, run.Report.CompliancePct,
		boolToInt(run.Report.AutoFailTriggered), string(reportJSON), createdAt,
	)
	if err != nil {
		return "", fmt.Errorf("history: insert run: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first, optionally
// filtered by document path.
func (s *Store) ListRuns(limit int, pathFilter string) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, document_path, document_hash, profile, confidence,
			total, letter, compliance_pct, auto_fail, report_json, created_at
		FROM runs`
	args := []any{}
	if pathFilter != "" {
		query += " WHERE document_path = ?"
		args = append(args, pathFilter)
	}
	query += " ORDER BY created_at DESC, id LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("history: list runs: %w", err)
	}
	defer rows.Close()

	var result []RunRecord
	for rows.Next() {
		var r RunRecord
		var autoFail int
		if err := rows.Scan(&r.ID, &r.DocumentPath, &r.DocumentHash, &r.Profile,
			&r.Confidence, &r.Total, &r.Letter, &r.CompliancePct, &autoFail,
			&r.ReportJSON, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		r.AutoFail = autoFail != 0
		result = append(result, r)
	}
	return result, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
