// Package main is the aromasearch CLI entry point.
package main

import (
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

	"github.com/vapex/aromasearch/internal/catalog"
	"github.com/vapex/aromasearch/internal/cli"
	"github.com/vapex/aromasearch/internal/config"
	"github.com/vapex/aromasearch/internal/engine"
	"github.com/vapex/aromasearch/internal/models"
	"github.com/vapex/aromasearch/internal/server"
	"github.com/vapex/aromasearch/internal/watcher"
	"github.com/vapex/aromasearch/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/aromasearch/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. Returns the config and the path that was actually loaded.
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
	case "search":
		runSearch()
	case "suggest":
		runSuggest()
	case "load":
		runLoad()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("aromasearch version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`aromasearch - e-liquid catalog search

Usage:
  aromasearch server  [-config path] [-debug]      run the HTTP API server
  aromasearch search  [flags] <query>              search the catalog
  aromasearch suggest [flags] <partial>            autocomplete candidates
  aromasearch load    [-config path] -file <json>  import a catalog JSON file
  aromasearch status  [-config path]               query a running server
  aromasearch version                              print version
`)
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
	defer func() { _ = logger.Sync() }()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	store, err := catalog.NewStore(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Fatal("Failed to open catalog store", zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	index := engine.NewIndex(&cfg.Search, logger)

	// The index must be ready before search is exposed; load everything the
	// store has up front.
	catalogData, err := store.LoadCatalog(context.Background())
	if err != nil {
		logger.Fatal("Failed to load catalog from store", zap.Error(err))
	}
	if err := index.Load(catalogData); err != nil {
		logger.Fatal("Failed to build search index", zap.Error(err))
	}

	var watchSvc *watcher.Watcher
	if cfg.Watch.Enabled && cfg.Storage.CatalogPath != "" {
		reload := func() {
			if err := reimportCatalog(cfg.Storage.CatalogPath, store, index); err != nil {
				logger.Warn("catalog reload failed", zap.Error(err))
			}
		}
		watchOpts := []watcher.Option{
			watcher.WithDebounce(time.Duration(cfg.Watch.DebounceMS) * time.Millisecond),
		}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		watchSvc = watcher.New(cfg.Storage.CatalogPath, reload, watchOpts...)
		watchCtx, watchCancel := context.WithCancel(context.Background())
		defer watchCancel()
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start catalog watcher", zap.Error(err))
		}
	}

	srv := server.NewServer(index, store, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if watchSvc != nil {
		watchSvc.Stop()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// reimportCatalog re-reads the catalog file into the store and swaps the
// index to the new item set.
func reimportCatalog(path string, store *catalog.Store, index *engine.Index) error {
	catalogData, err := catalog.LoadFile(path)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := store.ImportCatalog(ctx, catalogData); err != nil {
		return err
	}
	return index.Load(catalogData)
}

// buildQuery joins all positional args with spaces so multi-word queries work
// the same with or without shell quoting.
func buildQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// localIndex opens the store from config and builds a ready index for
// one-shot CLI queries.
func localIndex(configPath string) (*engine.Index, *catalog.Store, error) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	store, err := catalog.NewStore(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	catalogData, err := store.LoadCatalog(context.Background())
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	index := engine.NewIndex(&cfg.Search, zap.NewNop())
	if err := index.Load(catalogData); err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return index, store, nil
}

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	searchContext := fs.String("context", "", "restrict to one item type (aromas or recipes)")
	limit := fs.Int("limit", 0, "maximum results (0 = configured default)")
	jsonOut := fs.Bool("json", false, "output JSON")
	_ = fs.Parse(os.Args[2:])

	query := buildQuery(fs.Args())
	if query == "" {
		fmt.Println("Usage: aromasearch search [flags] <query>")
		os.Exit(1)
	}

	index, store, err := localIndex(*configPath)
	if err != nil {
		fmt.Printf("Failed to open catalog: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	start := time.Now()
	results, err := index.Search(query, &engine.SearchOptions{
		Context:    *searchContext,
		MaxResults: *limit,
	})
	if err != nil {
		fmt.Printf("Search failed: %v\n", err)
		os.Exit(1)
	}

	response := &models.SearchResponse{
		Results:    results,
		Total:      len(results),
		Query:      query,
		QueryTime:  time.Since(start).Milliseconds(),
		Generation: index.Generation(),
	}
	format := cli.OutputText
	if *jsonOut {
		format = cli.OutputJSON
	}
	if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
		fmt.Printf("Failed to write results: %v\n", err)
		os.Exit(1)
	}
}

func runSuggest() {
	fs := flag.NewFlagSet("suggest", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	limit := fs.Int("limit", 0, "maximum suggestions (0 = configured default)")
	jsonOut := fs.Bool("json", false, "output JSON")
	_ = fs.Parse(os.Args[2:])

	partial := buildQuery(fs.Args())
	if partial == "" {
		fmt.Println("Usage: aromasearch suggest [flags] <partial>")
		os.Exit(1)
	}

	index, store, err := localIndex(*configPath)
	if err != nil {
		fmt.Printf("Failed to open catalog: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	response := &models.SuggestResponse{
		Suggestions: index.Suggest(partial, *limit),
		Partial:     partial,
	}
	format := cli.OutputText
	if *jsonOut {
		format = cli.OutputJSON
	}
	if err := cli.WriteSuggestions(os.Stdout, response, format); err != nil {
		fmt.Printf("Failed to write suggestions: %v\n", err)
		os.Exit(1)
	}
}

func runLoad() {
	fs := flag.NewFlagSet("load", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	file := fs.String("file", "", "catalog JSON file to import")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	path := *file
	if path == "" {
		path = cfg.Storage.CatalogPath
	}
	if path == "" {
		fmt.Println("Usage: aromasearch load [-config path] -file <catalog.json>")
		os.Exit(1)
	}

	catalogData, err := catalog.LoadFile(path)
	if err != nil {
		fmt.Printf("Failed to read catalog file: %v\n", err)
		os.Exit(1)
	}

	store, err := catalog.NewStore(cfg.Storage.DatabasePath)
	if err != nil {
		fmt.Printf("Failed to open catalog store: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := store.ImportCatalog(ctx, catalogData); err != nil {
		fmt.Printf("Import failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d aromas and %d recipes from %s\n",
		len(catalogData.Aromas), len(catalogData.Recipes), path)
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	url := fmt.Sprintf("http://%s:%d/api/v1/status", cfg.Server.Host, cfg.Server.Port)
	resp, err := http.Get(url)
	if err != nil {
		fmt.Printf("Failed to reach server at %s: %v\n", url, err)
		os.Exit(1)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Printf("Failed to read response: %v\n", err)
		os.Exit(1)
	}

	var pretty map[string]interface{}
	if err := json.Unmarshal(body, &pretty); err != nil {
		fmt.Println(string(body))
		return
	}
	out, _ := json.MarshalIndent(pretty, "", "  ")
	fmt.Println(string(out))
}
