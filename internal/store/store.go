// Package store persists saved application analyses in a local SQLite
// database: the raw answers a student drafted plus the analysis computed for
// them, keyed by profile and university.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/uniassist/uniassist/internal/match"
)

// AnalysisRecord is one saved analysis.
type AnalysisRecord struct {
	ID             int64
	ProfileID      string
	UniversityName string
	Answers        match.ApplicationAnswers
	Result         *match.Result
	SavedAt        time.Time
}

// Store manages the saved-analyses SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			profile_id TEXT NOT NULL,
			university_name TEXT NOT NULL,
			answers TEXT NOT NULL,
			result TEXT NOT NULL,
			saved_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_profile ON analyses(profile_id)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_university ON analyses(university_name)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveAnalysis inserts a record and returns its id. SavedAt defaults to the
// current time when unset.
func (s *Store) SaveAnalysis(ctx context.Context, rec *AnalysisRecord) (int64, error) {
	if rec == nil {
		return 0, fmt.Errorf("record is required")
	}
	if rec.ProfileID == "" {
		return 0, fmt.Errorf("profile id is required")
	}
	if rec.UniversityName == "" {
		return 0, fmt.Errorf("university name is required")
	}
	if rec.Result == nil {
		return 0, fmt.Errorf("analysis result is required")
	}

	answers, err := json.Marshal(rec.Answers)
	if err != nil {
		return 0, fmt.Errorf("encoding answers: %w", err)
	}
	result, err := json.Marshal(rec.Result)
	if err != nil {
		return 0, fmt.Errorf("encoding result: %w", err)
	}

	savedAt := rec.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO analyses (profile_id, university_name, answers, result, saved_at)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.ProfileID, rec.UniversityName, string(answers), string(result),
		savedAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting analysis: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading insert id: %w", err)
	}
	rec.ID = id
	rec.SavedAt = savedAt
	return id, nil
}

// ListAnalyses returns the records saved for a profile, newest first.
func (s *Store) ListAnalyses(ctx context.Context, profileID string) ([]*AnalysisRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, profile_id, university_name, answers, result, saved_at
		 FROM analyses WHERE profile_id = ? ORDER BY saved_at DESC, id DESC`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying analyses: %w", err)
	}
	defer rows.Close()

	var records []*AnalysisRecord
	for rows.Next() {
		rec, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating analyses: %w", err)
	}
	return records, nil
}

// GetAnalysis returns one record by id, or sql.ErrNoRows.
func (s *Store) GetAnalysis(ctx context.Context, id int64) (*AnalysisRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, profile_id, university_name, answers, result, saved_at
		 FROM analyses WHERE id = ?`, id)
	return scanAnalysis(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (*AnalysisRecord, error) {
	var (
		rec     AnalysisRecord
		answers string
		result  string
		savedAt string
	)
	if err := row.Scan(&rec.ID, &rec.ProfileID, &rec.UniversityName, &answers, &result, &savedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(answers), &rec.Answers); err != nil {
		return nil, fmt.Errorf("decoding answers: %w", err)
	}
	if err := json.Unmarshal([]byte(result), &rec.Result); err != nil {
		return nil, fmt.Errorf("decoding result: %w", err)
	}
	parsed, err := time.Parse(time.RFC3339, savedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing saved_at: %w", err)
	}
	rec.SavedAt = parsed
	return &rec, nil
}
