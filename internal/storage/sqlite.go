package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jessiysantos/fase5/internal/corpus"
	"github.com/jessiysantos/fase5/internal/models"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and
// initializes the schema. Parent directories are created if they do not exist.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS candidates (
		id TEXT PRIMARY KEY,
		name TEXT,
		title TEXT,
		domain TEXT,
		seniority TEXT,
		location TEXT,
		profile TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS jobs (
		id TEXT PRIMARY KEY,
		title TEXT,
		client TEXT,
		seniority TEXT,
		record TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS queries (
		id TEXT PRIMARY KEY,
		query TEXT NOT NULL,
		strategy TEXT NOT NULL,
		results INTEGER NOT NULL,
		query_time_ms INTEGER NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_queries_created_at ON queries(created_at);
	`
	_, err := db.Exec(schema)
	return err
}

// SyncSnapshot replaces the candidates and jobs tables with the snapshot
// contents in one transaction. The full record is kept as JSON alongside the
// queryable display columns.
func (s *SQLiteStorage) SyncSnapshot(ctx context.Context, snap *corpus.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM candidates`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM jobs`); err != nil {
		return err
	}

	now := time.Now()

	candStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO candidates (id, name, title, domain, seniority, location, profile, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer candStmt.Close()

	for _, p := range snap.Profiles {
		profileJSON, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to marshal candidate %s: %w", p.ID, err)
		}
		if _, err := candStmt.ExecContext(ctx,
			p.ID, p.Name, p.Title, p.Domain, p.Seniority, p.Location, string(profileJSON), now,
		); err != nil {
			return err
		}
	}

	jobStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO jobs (id, title, client, seniority, record, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer jobStmt.Close()

	for _, j := range snap.Jobs {
		recordJSON, err := json.Marshal(j)
		if err != nil {
			return fmt.Errorf("failed to marshal job %s: %w", j.ID, err)
		}
		if _, err := jobStmt.ExecContext(ctx,
			j.ID, j.Basics.Title, j.Basics.Client, j.Profile.Seniority, string(recordJSON), now,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetCandidate returns a candidate by ID.
func (s *SQLiteStorage) GetCandidate(ctx context.Context, id string) (*models.CandidateProfile, error) {
	var profileJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT profile FROM candidates WHERE id = ?`, id,
	).Scan(&profileJSON)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("candidate not found: %s", id)
	}
	if err != nil {
		return nil, err
	}

	var p models.CandidateProfile
	if err := json.Unmarshal([]byte(profileJSON), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal candidate %s: %w", id, err)
	}
	return &p, nil
}

// ListCandidates returns candidates ordered by ID with offset and limit.
func (s *SQLiteStorage) ListCandidates(ctx context.Context, offset, limit int) ([]*models.CandidateProfile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT profile FROM candidates ORDER BY id LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*models.CandidateProfile
	for rows.Next() {
		var profileJSON string
		if err := rows.Scan(&profileJSON); err != nil {
			return nil, err
		}
		var p models.CandidateProfile
		if err := json.Unmarshal([]byte(profileJSON), &p); err != nil {
			return nil, err
		}
		profiles = append(profiles, &p)
	}
	return profiles, rows.Err()
}

// CountCandidates returns the number of stored candidates.
func (s *SQLiteStorage) CountCandidates(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM candidates`).Scan(&count)
	return count, err
}

// CountJobs returns the number of stored jobs.
func (s *SQLiteStorage) CountJobs(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&count)
	return count, err
}

// RecordQuery appends one match response to the query log.
func (s *SQLiteStorage) RecordQuery(ctx context.Context, resp *models.MatchResponse) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO queries (id, query, strategy, results, query_time_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		resp.QueryID, resp.Query, resp.Strategy, resp.Total, resp.QueryTime, time.Now(),
	)
	return err
}

// RecentQueries returns the newest logged queries, most recent first.
func (s *SQLiteStorage) RecentQueries(ctx context.Context, limit int) ([]*QueryRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, strategy, results, query_time_ms, created_at
		 FROM queries ORDER BY created_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*QueryRecord
	for rows.Next() {
		var r QueryRecord
		if err := rows.Scan(&r.ID, &r.Query, &r.Strategy, &r.Results, &r.QueryTimeMS, &r.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, &r)
	}
	return records, rows.Err()
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
