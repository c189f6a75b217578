package match

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jessiysantos/fase5/internal/config"
	"github.com/jessiysantos/fase5/internal/corpus"
	"github.com/jessiysantos/fase5/internal/models"
	"github.com/jessiysantos/fase5/internal/scoring"
)

const applicantsJSON = `{
	"100": {
		"infos_basicas": {"nome": "Ana Souza", "email": "ana@example.com"},
		"informacoes_profissionais": {
			"titulo_profissional": "Desenvolvedora Java",
			"area_atuacao": "TI - Desenvolvimento",
			"conhecimentos_tecnicos": "Java, Spring Boot, Microservices"
		}
	},
	"101": {
		"infos_basicas": {"nome": "Bruno Alves"},
		"informacoes_profissionais": {
			"titulo_profissional": "Desenvolvedora Java",
			"area_atuacao": "TI - Desenvolvimento",
			"conhecimentos_tecnicos": "Java, Spring Boot, Microservices"
		}
	},
	"102": {
		"infos_basicas": {"nome": "Clara Dias"},
		"informacoes_profissionais": {
			"titulo_profissional": "Analista Financeiro",
			"area_atuacao": "Financeira",
			"conhecimentos_tecnicos": "Contabilidade, Excel"
		}
	},
	"103": {
		"infos_basicas": {"nome": "Diego Prado"},
		"informacoes_profissionais": {
			"titulo_profissional": "Desenvolvedor Java Pleno",
			"conhecimentos_tecnicos": "Java"
		}
	}
}`

const jobsJSON = `{
	"5185": {
		"informacoes_basicas": {"titulo_vaga": "Desenvolvedor Java Senior", "cliente": "Acme"},
		"perfil_vaga": {
			"areas_atuacao": "TI - Desenvolvimento",
			"principais_atividades": "Desenvolvimento Java Spring Boot",
			"competencia_tecnicas_e_comportamentais": "Java, Spring Boot, Microservices"
		}
	}
}`

func newTestEngine(t *testing.T, cfg *config.MatchingConfig) *Engine {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "applicants.json"), []byte(applicantsJSON), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "vagas.json"), []byte(jobsJSON), 0600); err != nil {
		t.Fatal(err)
	}
	loader := corpus.NewLoader(&config.CorpusConfig{
		Applicants: filepath.Join(dir, "applicants.json"),
		Jobs:       filepath.Join(dir, "vagas.json"),
	}, nil)

	if cfg == nil {
		cfg = &config.MatchingConfig{}
	}
	if cfg.Strategy == "" {
		cfg.Strategy = config.StrategyLexical
	}
	if cfg.TopK == 0 {
		cfg.TopK = 10
	}
	if cfg.Keywords == 0 {
		cfg.Keywords = 5
	}
	if cfg.Language == "" {
		cfg.Language = "pt"
	}

	scorer, err := scoring.NewLexicalScorer(cfg.Language)
	if err != nil {
		t.Fatal(err)
	}
	engine, err := NewEngine(corpus.NewCache(loader), scorer, cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	return engine
}

func TestMatchFreeTextQuery(t *testing.T) {
	engine := newTestEngine(t, nil)
	resp, err := engine.Match(context.Background(), &models.MatchRequest{
		Query: "desenvolvedor java spring boot microservices",
	})
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if resp.Total == 0 {
		t.Fatal("expected matches for a java query")
	}
	if resp.Strategy != "lexical" {
		t.Errorf("Strategy = %q, want lexical", resp.Strategy)
	}
	if resp.QueryID == "" || resp.CorpusVersion == "" {
		t.Error("response must carry query id and corpus version")
	}
	for i, r := range resp.Results {
		if r.Rank != i+1 {
			t.Errorf("Results[%d].Rank = %d, want %d", i, r.Rank, i+1)
		}
		if i > 0 && r.Score > resp.Results[i-1].Score {
			t.Errorf("results not sorted descending at %d", i)
		}
		if r.Keywords == "" {
			t.Errorf("Results[%d] missing keywords", i)
		}
		if len(r.Similarity) != 4 {
			t.Errorf("Results[%d].Similarity = %q, want 2-decimal form", i, r.Similarity)
		}
	}
	// The financial analyst shares no terms with the query.
	for _, r := range resp.Results {
		if r.Candidate.ID == "102" {
			t.Error("unrelated candidate retained with default threshold")
		}
	}
}

func TestMatchStableTies(t *testing.T) {
	engine := newTestEngine(t, nil)
	resp, err := engine.Match(context.Background(), &models.MatchRequest{
		Query: "java spring boot microservices desenvolvimento",
	})
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	// 100 and 101 have identical documents, hence identical scores; the
	// stable sort must keep their corpus (sorted id) order.
	posA, posB := -1, -1
	for i, r := range resp.Results {
		switch r.Candidate.ID {
		case "100":
			posA = i
		case "101":
			posB = i
		}
	}
	if posA == -1 || posB == -1 {
		t.Fatalf("tied candidates missing from results: %v", resp.Results)
	}
	if resp.Results[posA].Score != resp.Results[posB].Score {
		t.Fatalf("identical documents scored differently: %v vs %v",
			resp.Results[posA].Score, resp.Results[posB].Score)
	}
	if posA > posB {
		t.Errorf("tie broken against corpus order: 100 at %d, 101 at %d", posA, posB)
	}
}

func TestMatchIdempotent(t *testing.T) {
	engine := newTestEngine(t, nil)
	req := &models.MatchRequest{Query: "desenvolvedor java"}
	first, err := engine.Match(context.Background(), req)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	second, err := engine.Match(context.Background(), req)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if first.Total != second.Total {
		t.Fatalf("totals differ: %d vs %d", first.Total, second.Total)
	}
	for i := range first.Results {
		a, b := first.Results[i], second.Results[i]
		if a.Candidate.ID != b.Candidate.ID || a.Score != b.Score || a.Keywords != b.Keywords {
			t.Errorf("result %d differs between identical requests", i)
		}
	}
	if first.CorpusVersion != second.CorpusVersion {
		t.Error("corpus version changed with no corpus change")
	}
}

func TestMatchThresholdFiltering(t *testing.T) {
	engine := newTestEngine(t, nil)

	high := 0.99
	resp, err := engine.Match(context.Background(), &models.MatchRequest{
		Query:     "desenvolvedor java",
		Threshold: &high,
	})
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if resp.Total != 0 {
		t.Errorf("Total = %d, want 0 above threshold 0.99", resp.Total)
	}
	if resp.Message == "" {
		t.Error("empty shortlist must carry a message")
	}
	if resp.Results == nil {
		t.Error("Results must be an empty slice, not nil")
	}

	// Explicit zero keeps every candidate with a strictly positive score but
	// still drops exact zeros.
	zero := 0.0
	resp, err = engine.Match(context.Background(), &models.MatchRequest{
		Query:     "java",
		Threshold: &zero,
	})
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	for _, r := range resp.Results {
		if r.Score <= 0 {
			t.Errorf("candidate %s retained with score %v at threshold 0", r.Candidate.ID, r.Score)
		}
		if r.Candidate.ID == "102" {
			t.Error("zero-score candidate retained at threshold 0")
		}
	}
}

func TestMatchLimit(t *testing.T) {
	engine := newTestEngine(t, nil)
	zero := 0.0
	resp, err := engine.Match(context.Background(), &models.MatchRequest{
		Query:     "java desenvolvimento",
		Threshold: &zero,
		Limit:     1,
	})
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("Total = %d, want 1", resp.Total)
	}
	if resp.Results[0].Rank != 1 {
		t.Errorf("Rank = %d, want 1", resp.Results[0].Rank)
	}
}

func TestMatchByJobID(t *testing.T) {
	engine := newTestEngine(t, nil)
	resp, err := engine.Match(context.Background(), &models.MatchRequest{JobID: "5185"})
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if resp.Query != "Desenvolvedor Java Senior" {
		t.Errorf("Query = %q, want job title", resp.Query)
	}
	if resp.Total == 0 {
		t.Fatal("expected matches for the java job")
	}
	if id := resp.Results[0].Candidate.ID; id != "100" {
		t.Errorf("top candidate = %s, want 100", id)
	}
}

func TestMatchUnknownJob(t *testing.T) {
	engine := newTestEngine(t, nil)
	_, err := engine.Match(context.Background(), &models.MatchRequest{JobID: "nope"})
	if !errors.Is(err, ErrUnknownJob) {
		t.Errorf("Match() error = %v, want ErrUnknownJob", err)
	}
}

func TestMatchInvalidRequest(t *testing.T) {
	engine := newTestEngine(t, nil)
	if _, err := engine.Match(context.Background(), &models.MatchRequest{}); err == nil {
		t.Error("expected validation error for empty request")
	}
	if _, err := engine.Match(context.Background(), &models.MatchRequest{Query: "x", JobID: "y"}); err == nil {
		t.Error("expected validation error for both query sources")
	}
}

func TestMatchStopwordOnlyQuery(t *testing.T) {
	engine := newTestEngine(t, nil)
	resp, err := engine.Match(context.Background(), &models.MatchRequest{Query: "de para com"})
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	// The query contributes nothing, so no candidate can clear the threshold.
	if resp.Total != 0 {
		t.Errorf("Total = %d, want 0 for a stopword-only query", resp.Total)
	}
	if resp.Message == "" {
		t.Error("expected a no-matches message")
	}
}

type slowScorer struct{}

func (slowScorer) Name() string { return "slow" }

func (slowScorer) Score(ctx context.Context, _ string, docs []string) ([]float64, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(time.Second):
		return make([]float64, len(docs)), nil
	}
}

func TestMatchScoringTimeout(t *testing.T) {
	engine := newTestEngine(t, &config.MatchingConfig{
		ScoringTimeout: config.Duration(10 * time.Millisecond),
	})
	engine.scorer = slowScorer{}

	_, err := engine.Match(context.Background(), &models.MatchRequest{Query: "java"})
	if !errors.Is(err, ErrScoringTimeout) {
		t.Errorf("Match() error = %v, want ErrScoringTimeout", err)
	}
}

func TestRankDropsAtThreshold(t *testing.T) {
	profiles := []*models.CandidateProfile{
		{ID: "a"}, {ID: "b"}, {ID: "c"},
	}
	results := rank(profiles, []float64{0.5, 0.8, 0.5}, 0.5, 0)
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1 (scores equal to threshold drop)", len(results))
	}
	if results[0].Candidate.ID != "b" || results[0].Rank != 1 {
		t.Errorf("unexpected survivor: %+v", results[0])
	}
	if results[0].Similarity != "0.80" {
		t.Errorf("Similarity = %q, want 0.80", results[0].Similarity)
	}
}
