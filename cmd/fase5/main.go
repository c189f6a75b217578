// Package main is the fase5 CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jessiysantos/fase5/internal/cli"
	"github.com/jessiysantos/fase5/internal/config"
	"github.com/jessiysantos/fase5/internal/corpus"
	"github.com/jessiysantos/fase5/internal/embedding"
	"github.com/jessiysantos/fase5/internal/match"
	"github.com/jessiysantos/fase5/internal/models"
	"github.com/jessiysantos/fase5/internal/scoring"
	"github.com/jessiysantos/fase5/internal/server"
	"github.com/jessiysantos/fase5/internal/storage"
	"github.com/jessiysantos/fase5/internal/watcher"
	"github.com/jessiysantos/fase5/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/fase5/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used, so "fase5 server" from the project dir picks up the project's
// config. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "match":
		runMatch()
	case "jobs":
		runJobs()
	case "reload":
		runReload()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("fase5 version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.String("strategy", cfg.Matching.Strategy),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Watch.EnabledOrDefault() {
		paths := components.Loader.WatchPaths()
		if len(paths) > 0 {
			watchOpts := []watcher.Option{}
			if debugMode {
				watchOpts = append(watchOpts, watcher.WithLogger(logger))
			}
			watch := watcher.New(paths, func(path string) {
				logger.Info("corpus file changed, invalidating cache", zap.String("path", path))
				components.Cache.Invalidate()
			}, watchOpts...)
			if err := watch.Start(watchCtx); err != nil {
				logger.Fatal("Failed to start watcher", zap.Error(err))
			}
			defer watch.Stop()
		}
	}

	srv := server.NewServer(
		components.Engine,
		components.Cache,
		components.Storage,
		cfg,
		logger,
	)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// buildMatchQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func buildMatchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// matchArgsReorder moves any flags (and their values) that appear after the
// query to the front of the slice so flag.Parse() sees them. Go's flag package
// stops at the first non-flag argument.
func matchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func printMatchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: fase5 match [flags] <job description>\n\n")
	fmt.Fprintf(fs.Output(), "The job description is all remaining arguments joined by spaces, or use --job to match against a stored job.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Examples:
  fase5 match desenvolvedor java senior
  fase5 match "desenvolvedor java senior"           # same as above
  fase5 match --job 5185                            # match against stored job
  fase5 match --threshold 0.3 --limit 20 python
  fase5 match --output json analista de dados       # structured JSON
`)
}

func runMatch() {
	matchArgs := matchArgsReorder(os.Args[2:])

	fs := flag.NewFlagSet("match", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = run matching in-process)")
	jobID := fs.String("job", "", "match against a stored job by id instead of free text")
	threshold := fs.Float64("threshold", -1, "similarity cutoff in [0,1] (default from config)")
	limit := fs.Int("limit", 0, "maximum results (default from config)")
	keywords := fs.Int("keywords", 0, "keywords per result (default from config)")
	outputFormat := fs.String("output", "text", "output format: text, compact, or json")
	fs.Usage = func() { printMatchUsage(fs) }
	_ = fs.Parse(matchArgs)

	queryStr := buildMatchQuery(fs.Args())
	if queryStr == "" && *jobID == "" {
		printMatchUsage(fs)
		os.Exit(1)
	}

	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	req := &models.MatchRequest{
		Query:    queryStr,
		JobID:    *jobID,
		Limit:    *limit,
		Keywords: *keywords,
	}
	if *threshold >= 0 {
		req.Threshold = threshold
	}

	var response *models.MatchResponse
	if *serverURL != "" {
		response, err = matchViaHTTP(*serverURL, req)
	} else {
		response, err = matchInProcess(*configPath, req)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Match failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteMatchResults(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func matchViaHTTP(serverURL string, req *models.MatchRequest) (*models.MatchResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/match", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.MatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func matchInProcess(configPath string, req *models.MatchRequest) (*models.MatchResponse, error) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		return nil, err
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		return nil, err
	}
	defer components.Close()

	return components.Engine.Match(context.Background(), req)
}

func runJobs() {
	fs := flag.NewFlagSet("jobs", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	_ = fs.Parse(os.Args[2:])

	resp, err := http.Get(*serverURL + "/api/v1/jobs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "List failed (%d): %s\n", resp.StatusCode, string(b))
		os.Exit(1)
	}
	var out struct {
		Total int `json:"total"`
		Jobs  []struct {
			ID     string `json:"id"`
			Title  string `json:"title"`
			Client string `json:"client"`
		} `json:"jobs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		fmt.Fprintf(os.Stderr, "Parse failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%d job(s)\n", out.Total)
	for _, j := range out.Jobs {
		fmt.Printf("%s\t%s\t%s\n", j.ID, j.Title, j.Client)
	}
}

func runReload() {
	fs := flag.NewFlagSet("reload", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	_ = fs.Parse(os.Args[2:])

	resp, err := http.Post(*serverURL+"/api/v1/corpus/reload", "application/json", nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "Reload failed (%d): %s\n", resp.StatusCode, string(b))
		os.Exit(1)
	}
	fmt.Println(strings.TrimSpace(string(b)))
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	resp, err := http.Get(*serverURL + "/status")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "Status failed (%d): %s\n", resp.StatusCode, string(b))
		os.Exit(1)
	}
	var status map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		fmt.Fprintf(os.Stderr, "Parse failed: %v\n", err)
		os.Exit(1)
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		for _, key := range []string{"strategy", "corpus_version", "candidates", "jobs", "excluded", "stored_candidates", "stored_jobs"} {
			if v, ok := status[key]; ok {
				fmt.Printf("%-18s %v\n", key+":", v)
			}
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

// Components holds initialized services.
type Components struct {
	Storage storage.Storage
	Loader  *corpus.Loader
	Cache   *corpus.Cache
	Scorer  scoring.Scorer
	Engine  *match.Engine
}

func (c *Components) Close() {
	if c.Storage != nil {
		_ = c.Storage.Close()
	}
	if closer, ok := c.Scorer.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	loader := corpus.NewLoader(&cfg.Corpus, logger)
	cache := corpus.NewCache(loader, corpus.WithLogger(logger))

	var scorer scoring.Scorer
	switch cfg.Matching.Strategy {
	case config.StrategyEmbedding:
		encoder, err := embedding.NewONNXEncoder(
			cfg.Embedding.ModelPath,
			cfg.Embedding.Dimensions,
			cfg.Embedding.MaxTokens,
			cfg.Embedding.CacheSize,
		)
		if err != nil {
			logger.Warn("ONNX encoder unavailable, using hash encoder", zap.Error(err))
			scorer = scoring.NewEmbeddingScorer(embedding.NewHashEncoder(cfg.Embedding.Dimensions))
		} else {
			scorer = scoring.NewEmbeddingScorer(encoder)
		}
	default:
		scorer, err = scoring.NewLexicalScorer(cfg.Matching.Language)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to initialize scorer: %w", err)
		}
	}

	engine, err := match.NewEngine(cache, scorer, &cfg.Matching, logger)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize engine: %w", err)
	}

	return &Components{
		Storage: store,
		Loader:  loader,
		Cache:   cache,
		Scorer:  scorer,
		Engine:  engine,
	}, nil
}

func printUsage() {
	fmt.Println(`fase5 - Candidate matching engine for job descriptions

Usage:
  fase5 server [flags]            Start the HTTP server
  fase5 match [flags] <query>     Rank candidates against a job description
  fase5 jobs [flags]              List stored jobs
  fase5 reload [flags]            Reload the corpus from source files
  fase5 status [flags]            Show engine and corpus status
  fase5 version                   Show version
  fase5 help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/fase5/config.yaml)
  --debug            Enable debug logging

Match Flags:
  --config string      Config file path (for in-process mode)
  --server string      Server URL (default: http://localhost:8080). Use empty (--server "") to run in-process.
  --job string         Match against a stored job by id instead of free text
  --threshold float    Similarity cutoff in [0,1] (default from config)
  --limit int          Maximum results (default from config)
  --keywords int       Keywords per result (default from config)
  --output string      Output format: text, compact, or json (default: text)

Examples:
  fase5 server
  fase5 match "desenvolvedor java senior"
  fase5 match --job 5185
  fase5 match --threshold 0.3 --output json python
  fase5 jobs
  fase5 reload
  fase5 status --output json`)
}
