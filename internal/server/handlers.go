package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jessiysantos/fase5/internal/match"
	"github.com/jessiysantos/fase5/internal/models"
)

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req models.MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Debug("match request",
		zap.String("query", req.Query),
		zap.String("job_id", req.JobID))

	response, err := s.engine.Match(r.Context(), &req)
	switch {
	case errors.Is(err, match.ErrUnknownJob):
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, match.ErrScoringTimeout):
		s.respondError(w, http.StatusServiceUnavailable, "scoring timed out, retry later")
		return
	case err != nil:
		s.logger.Error("match failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if s.storage != nil {
		if err := s.storage.RecordQuery(r.Context(), response); err != nil {
			s.logger.Warn("query log write failed", zap.Error(err))
		}
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := s.cache.Snapshot(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	p := snap.Profile(id)
	if p == nil {
		s.respondError(w, http.StatusNotFound, "candidate not found")
		return
	}
	s.respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	snap, err := s.cache.Snapshot(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	type candidateSummary struct {
		ID        string `json:"id"`
		Name      string `json:"name,omitempty"`
		Title     string `json:"title,omitempty"`
		Domain    string `json:"domain,omitempty"`
		Seniority string `json:"seniority,omitempty"`
	}
	summaries := make([]candidateSummary, len(snap.Profiles))
	for i, p := range snap.Profiles {
		summaries[i] = candidateSummary{
			ID:        p.ID,
			Name:      p.Name,
			Title:     p.Title,
			Domain:    p.Domain,
			Seniority: p.Seniority,
		}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"corpus_version": snap.Version,
		"total":          len(summaries),
		"candidates":     summaries,
	})
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	snap, err := s.cache.Snapshot(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	type jobSummary struct {
		ID        string `json:"id"`
		Title     string `json:"title,omitempty"`
		Client    string `json:"client,omitempty"`
		Seniority string `json:"seniority,omitempty"`
	}
	summaries := make([]jobSummary, len(snap.Jobs))
	for i, j := range snap.Jobs {
		summaries[i] = jobSummary{
			ID:        j.ID,
			Title:     j.Basics.Title,
			Client:    j.Basics.Client,
			Seniority: j.Profile.Seniority,
		}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"corpus_version": snap.Version,
		"total":          len(summaries),
		"jobs":           summaries,
	})
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := s.cache.Snapshot(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	j := snap.Job(id)
	if j == nil {
		s.respondError(w, http.StatusNotFound, "job not found")
		return
	}
	s.respondJSON(w, http.StatusOK, j)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	snap, err := s.cache.Refresh(r.Context())
	if err != nil {
		s.logger.Error("corpus reload failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.syncStorage(r.Context(), snap)
	s.logger.Info("corpus reloaded",
		zap.String("corpus_version", snap.Version),
		zap.Int("candidates", len(snap.Profiles)))
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "reloaded",
		"corpus_version": snap.Version,
		"candidates":     len(snap.Profiles),
		"jobs":           len(snap.Jobs),
		"excluded":       snap.Excluded,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"strategy": s.config.Matching.Strategy,
		"config": map[string]interface{}{
			"threshold": s.config.Matching.ThresholdOrDefault(),
			"top_k":     s.config.Matching.TopK,
			"keywords":  s.config.Matching.Keywords,
			"language":  s.config.Matching.Language,
		},
	}

	if snap := s.cache.Current(); snap != nil {
		resp["corpus_version"] = snap.Version
		resp["candidates"] = len(snap.Profiles)
		resp["jobs"] = len(snap.Jobs)
		resp["excluded"] = snap.Excluded
		resp["loaded_at"] = snap.LoadedAt
	}

	if s.storage != nil {
		ctx := r.Context()
		if n, err := s.storage.CountCandidates(ctx); err == nil {
			resp["stored_candidates"] = n
		}
		if n, err := s.storage.CountJobs(ctx); err == nil {
			resp["stored_jobs"] = n
		}
		if queries, err := s.storage.RecentQueries(ctx, 10); err == nil {
			resp["recent_queries"] = queries
		}
	}

	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
