package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizo/internal/app"
	"github.com/abhisek/quizo/internal/config"
	"github.com/abhisek/quizo/internal/llm"
	"github.com/abhisek/quizo/internal/store"
	"github.com/abhisek/quizo/internal/trivia"
)

// env is everything a command needs once config and storage are open.
type env struct {
	cfg     config.Config
	logger  *slog.Logger
	store   *store.Store
	repo    *store.SessionRepo
	closers []io.Closer
}

func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i].Close()
	}
}

// openEnv loads config, sets up the file logger and opens the stores.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	e := &env{cfg: cfg}
	logger, logFile, err := newFileLogger(cfg.ResolveLogPath(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	e.closers = append(e.closers, logFile)
	e.logger = logger
	slog.SetDefault(logger)

	st, err := store.Open(dbPath)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.store = st
	e.closers = append(e.closers, st)

	kv, err := openKV(cmd.Context(), cfg, st)
	if err != nil {
		e.Close()
		return nil, err
	}
	if c, ok := kv.(io.Closer); ok {
		e.closers = append(e.closers, c)
	}
	e.repo = store.NewSessionRepo(kv)

	logger.Info("quizo starting",
		"version", version,
		"db", dbPath,
		"store", cfg.Store,
		"source", cfg.Source,
	)
	return e, nil
}

func openKV(ctx context.Context, cfg config.Config, st *store.Store) (store.KV, error) {
	if cfg.Store != config.StoreRedis {
		return st.KV(), nil
	}
	kv, err := store.OpenRedis(ctx, cfg.RedisURL, store.DefaultRedisPrefix)
	if err != nil {
		return nil, fmt.Errorf("open redis: %w", err)
	}
	return kv, nil
}

// newFileLogger writes JSON logs to path. The terminal belongs to the TUI.
func newFileLogger(path string) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	level := slog.LevelInfo
	if os.Getenv("QUIZO_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})), f, nil
}

// newSource builds the configured question source.
func newSource(ctx context.Context, cfg config.Config, logger *slog.Logger) (trivia.Source, error) {
	switch cfg.Source {
	case config.SourceLLM:
		provider, err := llm.NewProvider(ctx, cfg.LLM, logger)
		if err != nil {
			return nil, fmt.Errorf("LLM provider: %w", err)
		}
		return trivia.NewLLMSource(provider), nil
	default:
		return trivia.NewOpenTDB(cfg.OpenTDBURL, http.DefaultClient, cfg.FetchTimeout), nil
	}
}

// runApp opens the stores, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	source, err := newSource(ctx, e.cfg, e.logger)
	if err != nil {
		return err
	}

	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return app.Run(ctx, app.Options{
		Repo:      e.repo,
		Source:    source,
		Results:   e.store.ResultRepo(),
		Config:    e.cfg,
		Logger:    e.logger,
		ReportDir: wd,
	})
}
