// Package match runs the end-to-end matching pipeline: resolve the query,
// build documents, score, rank against the threshold, and explain each
// retained candidate with keywords.
package match

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jessiysantos/fase5/internal/config"
	"github.com/jessiysantos/fase5/internal/corpus"
	"github.com/jessiysantos/fase5/internal/document"
	"github.com/jessiysantos/fase5/internal/models"
	"github.com/jessiysantos/fase5/internal/scoring"
	"github.com/jessiysantos/fase5/internal/vectorize"
)

// Engine answers match requests against the current corpus snapshot.
type Engine struct {
	cache     *corpus.Cache
	scorer    scoring.Scorer
	cfg       *config.MatchingConfig
	stopwords analysis.TokenMap
	logger    *zap.Logger
}

// NewEngine wires a scorer and a corpus cache into an engine. The stopword
// language comes from the matching config and also drives the keyword
// explainer.
func NewEngine(cache *corpus.Cache, scorer scoring.Scorer, cfg *config.MatchingConfig, logger *zap.Logger) (*Engine, error) {
	stop, err := vectorize.Stopwords(cfg.Language)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		cache:     cache,
		scorer:    scorer,
		cfg:       cfg,
		stopwords: stop,
		logger:    logger,
	}, nil
}

// Match scores every candidate in the corpus against the request's query and
// returns the thresholded, ranked shortlist. An empty shortlist is a valid
// answer carried in the response Message; ErrScoringTimeout and ErrUnknownJob
// are returned as errors.
func (e *Engine) Match(ctx context.Context, req *models.MatchRequest) (*models.MatchResponse, error) {
	start := time.Now()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	snap, err := e.cache.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	queryText, queryLabel, err := e.resolveQuery(snap, req)
	if err != nil {
		return nil, err
	}

	docs := make([]string, len(snap.Profiles))
	for i, p := range snap.Profiles {
		docs[i] = document.ForCandidate(p)
	}

	resp := &models.MatchResponse{
		QueryID:       uuid.New().String(),
		Query:         queryLabel,
		Strategy:      e.scorer.Name(),
		CorpusVersion: snap.Version,
		Results:       []*models.ScoredMatch{},
	}

	scores, err := e.score(ctx, queryText, docs)
	switch {
	case errors.Is(err, vectorize.ErrEmptyVocabulary):
		// Nothing to match against; a definitive empty answer, not a failure.
		resp.Message = "no candidates above threshold"
		resp.QueryTime = time.Since(start).Milliseconds()
		return resp, nil
	case err != nil:
		return nil, err
	}

	threshold := e.cfg.ThresholdOrDefault()
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	limit := e.cfg.TopK
	if req.Limit > 0 {
		limit = req.Limit
	}
	keywords := e.cfg.Keywords
	if req.Keywords > 0 {
		keywords = req.Keywords
	}

	results := rank(snap.Profiles, scores, threshold, limit)

	if len(results) > 0 {
		exp := newExplainer(docs, e.stopwords, keywords)
		docIndex := make(map[string]int, len(snap.Profiles))
		for i, p := range snap.Profiles {
			docIndex[p.ID] = i
		}
		for _, r := range results {
			r.Keywords = exp.keywordsFor(docIndex[r.Candidate.ID])
		}
	} else {
		resp.Message = "no candidates above threshold"
	}

	resp.Results = results
	resp.Total = len(results)
	resp.QueryTime = time.Since(start).Milliseconds()

	e.logger.Info("match completed",
		zap.String("query_id", resp.QueryID),
		zap.String("strategy", resp.Strategy),
		zap.Float64("threshold", threshold),
		zap.Int("candidates", len(docs)),
		zap.Int("results", resp.Total),
		zap.Int64("query_time_ms", resp.QueryTime))

	return resp, nil
}

// resolveQuery returns the text to score against and the label echoed in the
// response. Free text is used as is; a job_id resolves to the job's document.
func (e *Engine) resolveQuery(snap *corpus.Snapshot, req *models.MatchRequest) (text, label string, err error) {
	if req.Query != "" {
		return req.Query, req.Query, nil
	}
	job := snap.Job(req.JobID)
	if job == nil {
		return "", "", fmt.Errorf("%w: %s", ErrUnknownJob, req.JobID)
	}
	label = job.Basics.Title
	if label == "" {
		label = req.JobID
	}
	return document.ForJob(job), label, nil
}

// score runs the scorer under the configured deadline. A deadline hit maps to
// ErrScoringTimeout so callers can distinguish it from an empty answer.
func (e *Engine) score(ctx context.Context, query string, docs []string) ([]float64, error) {
	timeout := time.Duration(e.cfg.ScoringTimeout)
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type outcome struct {
		scores []float64
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		scores, err := e.scorer.Score(ctx, query, docs)
		done <- outcome{scores, err}
	}()

	select {
	case out := <-done:
		if errors.Is(out.err, context.DeadlineExceeded) {
			return nil, ErrScoringTimeout
		}
		return out.scores, out.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrScoringTimeout
		}
		return nil, ctx.Err()
	}
}
