package models

import "fmt"

// MatchRequest asks for candidates matching either a free-text description or
// a structured job from the jobs corpus (by ID). Threshold is a pointer so
// that an explicit 0.0 can be distinguished from "use the configured default".
type MatchRequest struct {
	Query     string   `json:"query,omitempty"`
	JobID     string   `json:"job_id,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
	Limit     int      `json:"limit,omitempty"`
	Keywords  int      `json:"keywords,omitempty"`
}

// Validate ensures the request names exactly one query source and that any
// explicit threshold is within [0,1].
func (r *MatchRequest) Validate() error {
	if r.Query == "" && r.JobID == "" {
		return fmt.Errorf("either query or job_id is required")
	}
	if r.Query != "" && r.JobID != "" {
		return fmt.Errorf("query and job_id are mutually exclusive")
	}
	if r.Threshold != nil && (*r.Threshold < 0 || *r.Threshold > 1) {
		return fmt.Errorf("threshold must be in [0,1]")
	}
	if r.Limit < 0 {
		return fmt.Errorf("limit must be positive")
	}
	return nil
}

// ScoredMatch is one retained candidate with its similarity score and the
// explanatory keywords taken from the candidate's own document. Immutable once
// produced by the ranker.
type ScoredMatch struct {
	Candidate  *CandidateProfile `json:"candidate"`
	Score      float64           `json:"score"`
	Similarity string            `json:"similarity"` // Score formatted to 2 decimals
	Keywords   string            `json:"keywords,omitempty"`
	Rank       int               `json:"rank"`
}

// MatchResponse is the ranked, thresholded shortlist for one match request.
// An empty Results slice with a Message means no candidate cleared the
// threshold; it is not an error.
type MatchResponse struct {
	QueryID       string         `json:"query_id"`
	Query         string         `json:"query"`
	Strategy      string         `json:"strategy"`
	CorpusVersion string         `json:"corpus_version"`
	Results       []*ScoredMatch `json:"results"`
	Total         int            `json:"total"`
	QueryTime     int64          `json:"query_time_ms"`
	Message       string         `json:"message,omitempty"`
}
