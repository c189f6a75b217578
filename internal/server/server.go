// Package server provides the HTTP API for the matching engine.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/jessiysantos/fase5/internal/config"
	"github.com/jessiysantos/fase5/internal/corpus"
	"github.com/jessiysantos/fase5/internal/match"
	"github.com/jessiysantos/fase5/internal/storage"
)

// Server is the HTTP server for the matching API.
type Server struct {
	engine  *match.Engine
	cache   *corpus.Cache
	storage storage.Storage
	config  *config.Config
	logger  *zap.Logger
	server  *http.Server
}

// NewServer creates a server with the given dependencies. Storage may be nil;
// endpoints backed by it degrade to the in-memory snapshot.
func NewServer(
	engine *match.Engine,
	cache *corpus.Cache,
	store storage.Storage,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		engine:  engine,
		cache:   cache,
		storage: store,
		config:  cfg,
		logger:  logger,
	}
}

// Router builds the chi router with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/match", s.handleMatch)
	r.Get("/api/v1/candidates", s.handleListCandidates)
	r.Get("/api/v1/candidates/{id}", s.handleGetCandidate)
	r.Get("/api/v1/jobs", s.handleListJobs)
	r.Get("/api/v1/jobs/{id}", s.handleGetJob)
	r.Post("/api/v1/corpus/reload", s.handleReload)
	r.Get("/health", s.handleHealth)
	r.Get("/status", s.handleStatus)

	return r
}

// Start loads the corpus, syncs storage, and serves HTTP until it stops.
func (s *Server) Start() error {
	snap, err := s.cache.Snapshot(context.Background())
	if err != nil {
		return fmt.Errorf("initial corpus load: %w", err)
	}
	s.syncStorage(context.Background(), snap)

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server",
		zap.String("addr", addr),
		zap.String("corpus_version", snap.Version),
		zap.Int("candidates", len(snap.Profiles)),
		zap.Int("jobs", len(snap.Jobs)))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// syncStorage mirrors the snapshot into storage. Failures are logged, not
// fatal: matching works entirely off the snapshot.
func (s *Server) syncStorage(ctx context.Context, snap *corpus.Snapshot) {
	if s.storage == nil || snap == nil {
		return
	}
	if err := s.storage.SyncSnapshot(ctx, snap); err != nil {
		s.logger.Warn("storage sync failed", zap.Error(err))
	}
}
