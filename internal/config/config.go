// Package config provides configuration loading and structs for the matching service.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Corpus    CorpusConfig    `yaml:"corpus"`
	Storage   StorageConfig   `yaml:"storage"`
	Matching  MatchingConfig  `yaml:"matching"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Watch     WatchConfig     `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// CorpusConfig points at the candidate and job sources. Applicants and Jobs
// may be local paths (.json, or .xlsx for applicants) or HTTP(S) URLs.
// ResumeDir, when set, is scanned for per-candidate CV attachments
// (<candidate id>.pdf/.docx/.odt/.rtf/.txt) appended to the résumé body.
type CorpusConfig struct {
	Applicants string `yaml:"applicants"`
	Jobs       string `yaml:"jobs"`
	ResumeDir  string `yaml:"resume_dir"`
}

// StorageConfig holds the path to the SQLite database used for display-field
// lookups and corpus stats.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// MatchingConfig holds scoring and ranking settings. Threshold is a pointer so
// an explicit 0.0 survives defaulting.
type MatchingConfig struct {
	Strategy       string   `yaml:"strategy"` // "lexical" or "embedding"
	Threshold      *float64 `yaml:"threshold"`
	TopK           int      `yaml:"top_k"`
	Keywords       int      `yaml:"keywords"`
	Language       string   `yaml:"language"` // stopword list: "pt", "en", or "none"
	ScoringTimeout Duration `yaml:"scoring_timeout"`
}

// ThresholdOrDefault returns the configured threshold, or the strategy default
// when unset (0.50 lexical, 0.70 embedding).
func (m *MatchingConfig) ThresholdOrDefault() float64 {
	if m.Threshold != nil {
		return *m.Threshold
	}
	if m.Strategy == StrategyEmbedding {
		return 0.70
	}
	return 0.50
}

// EmbeddingConfig holds ONNX encoder settings for the embedding strategy.
type EmbeddingConfig struct {
	ModelPath  string `yaml:"model_path"`
	Dimensions int    `yaml:"dimensions"`
	MaxTokens  int    `yaml:"max_tokens"`
	CacheSize  int    `yaml:"cache_size"`
}

// WatchConfig controls corpus file watching for cache invalidation.
type WatchConfig struct {
	Enabled *bool `yaml:"enabled"`
}

// EnabledOrDefault returns whether corpus watching is on; defaults to true.
func (w *WatchConfig) EnabledOrDefault() bool {
	if w.Enabled != nil {
		return *w.Enabled
	}
	return true
}

// Duration wraps time.Duration for yaml decoding of values like "30s".
type Duration time.Duration

// UnmarshalYAML decodes a duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML encodes the duration as a string.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	cfg.Embedding.ModelPath = expandPath(cfg.Embedding.ModelPath, configDir)
	cfg.Corpus.Applicants = expandSource(cfg.Corpus.Applicants, configDir)
	cfg.Corpus.Jobs = expandSource(cfg.Corpus.Jobs, configDir)
	if cfg.Corpus.ResumeDir != "" {
		cfg.Corpus.ResumeDir = expandPath(cfg.Corpus.ResumeDir, configDir)
	}

	return &cfg, nil
}

// Validate checks cross-field constraints after defaulting.
func Validate(cfg *Config) error {
	if cfg.Matching.Strategy != StrategyLexical && cfg.Matching.Strategy != StrategyEmbedding {
		return fmt.Errorf("matching.strategy must be %q or %q, got %q",
			StrategyLexical, StrategyEmbedding, cfg.Matching.Strategy)
	}
	if t := cfg.Matching.Threshold; t != nil && (*t < 0 || *t > 1) {
		return fmt.Errorf("matching.threshold must be in [0,1], got %v", *t)
	}
	if cfg.Matching.TopK < 0 {
		return fmt.Errorf("matching.top_k must be positive, got %d", cfg.Matching.TopK)
	}
	return nil
}

// expandSource expands path-like sources but leaves URLs untouched.
func expandSource(source, configDir string) string {
	if source == "" {
		return source
	}
	if u, err := url.Parse(source); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return source
	}
	return expandPath(source, configDir)
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
