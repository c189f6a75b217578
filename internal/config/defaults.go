package config

import "time"

// Scoring strategy names.
const (
	StrategyLexical   = "lexical"
	StrategyEmbedding = "embedding"
)

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Corpus.Applicants == "" {
		cfg.Corpus.Applicants = "./applicants.json"
	}
	if cfg.Corpus.Jobs == "" {
		cfg.Corpus.Jobs = "./vagas.json"
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "./data/candidates.db"
	}
	if cfg.Matching.Strategy == "" {
		cfg.Matching.Strategy = StrategyLexical
	}
	if cfg.Matching.TopK == 0 {
		cfg.Matching.TopK = 10
	}
	if cfg.Matching.Keywords == 0 {
		cfg.Matching.Keywords = 5
	}
	if cfg.Matching.Language == "" {
		cfg.Matching.Language = "pt"
	}
	if cfg.Matching.ScoringTimeout == 0 {
		cfg.Matching.ScoringTimeout = Duration(30 * time.Second)
	}
	if cfg.Embedding.ModelPath == "" {
		cfg.Embedding.ModelPath = "./data/models/all-MiniLM-L6-v2.onnx"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 384
	}
	if cfg.Embedding.MaxTokens == 0 {
		cfg.Embedding.MaxTokens = 256
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 10000
	}
}
