// Package storage persists corpus display records and a query audit log.
// Scoring never reads from here; it always works on the in-memory snapshot.
package storage

import (
	"context"

	"github.com/jessiysantos/fase5/internal/corpus"
	"github.com/jessiysantos/fase5/internal/models"
)

// QueryRecord is one logged match request, kept for the status endpoint and
// offline inspection of what recruiters searched for.
type QueryRecord struct {
	ID          string `json:"id"`
	Query       string `json:"query"`
	Strategy    string `json:"strategy"`
	Results     int    `json:"results"`
	QueryTimeMS int64  `json:"query_time_ms"`
	CreatedAt   string `json:"created_at"`
}

// Storage persists candidate and job display records plus the query log.
type Storage interface {
	// SyncSnapshot replaces the stored candidate and job records with the
	// snapshot's contents in one transaction.
	SyncSnapshot(ctx context.Context, snap *corpus.Snapshot) error

	GetCandidate(ctx context.Context, id string) (*models.CandidateProfile, error)
	ListCandidates(ctx context.Context, offset, limit int) ([]*models.CandidateProfile, error)
	CountCandidates(ctx context.Context) (int64, error)
	CountJobs(ctx context.Context) (int64, error)

	RecordQuery(ctx context.Context, resp *models.MatchResponse) error
	RecentQueries(ctx context.Context, limit int) ([]*QueryRecord, error)

	Close() error
}
