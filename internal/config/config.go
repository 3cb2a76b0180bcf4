// Package config loads quizo settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/quizo/internal/llm"
	"github.com/abhisek/quizo/internal/trivia"
)

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// Question sources.
const (
	SourceOpenTDB = "opentdb"
	SourceLLM     = "llm"
)

// Config holds runtime settings.
type Config struct {
	// DBPath is the SQLite file. Empty means store.DefaultDBPath.
	DBPath string
	// Store selects where session state lives: "sqlite" or "redis".
	Store    string
	RedisURL string

	// Source selects the question source: "opentdb" or "llm".
	Source     string
	OpenTDBURL string

	Questions    int
	TimeLimit    time.Duration
	FetchTimeout time.Duration

	// LogPath is the log file. Empty means quizo.log next to the database.
	LogPath string

	LLM llm.Config
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Store:        StoreSQLite,
		RedisURL:     "redis://localhost:6379/0",
		Source:       SourceOpenTDB,
		OpenTDBURL:   trivia.DefaultOpenTDBURL,
		Questions:    15,
		TimeLimit:    30 * time.Minute,
		FetchTimeout: 20 * time.Second,
		LLM:          llm.DefaultConfig(),
	}
}

// Load reads envFile (if it exists) into the process environment without
// overriding variables already set, then builds a Config from QUIZO_*
// variables. An empty envFile means ".env".
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment.
func FromEnv() (Config, error) {
	cfg := Default()
	cfg.DBPath = getEnv("QUIZO_DB", cfg.DBPath)
	cfg.Store = getEnv("QUIZO_STORE", cfg.Store)
	cfg.RedisURL = getEnv("QUIZO_REDIS_URL", cfg.RedisURL)
	cfg.Source = getEnv("QUIZO_SOURCE", cfg.Source)
	cfg.OpenTDBURL = getEnv("QUIZO_OPENTDB_URL", cfg.OpenTDBURL)
	cfg.LogPath = getEnv("QUIZO_LOG", cfg.LogPath)

	if v := os.Getenv("QUIZO_QUESTIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("QUIZO_QUESTIONS: %w", err)
		}
		cfg.Questions = n
	}
	if v := os.Getenv("QUIZO_TIME_LIMIT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("QUIZO_TIME_LIMIT: %w", err)
		}
		cfg.TimeLimit = d
	}
	if v := os.Getenv("QUIZO_FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("QUIZO_FETCH_TIMEOUT: %w", err)
		}
		cfg.FetchTimeout = d
	}

	cfg.LLM = llm.ConfigFromEnv()
	cfg.LLM.Timeout = cfg.FetchTimeout

	return cfg, cfg.Validate()
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	switch c.Store {
	case StoreSQLite, StoreRedis:
	default:
		return fmt.Errorf("unknown store %q (want %s or %s)", c.Store, StoreSQLite, StoreRedis)
	}
	switch c.Source {
	case SourceOpenTDB, SourceLLM:
	default:
		return fmt.Errorf("unknown source %q (want %s or %s)", c.Source, SourceOpenTDB, SourceLLM)
	}
	if c.Questions < 1 {
		return fmt.Errorf("question count must be at least 1, got %d", c.Questions)
	}
	if c.TimeLimit < time.Second {
		return fmt.Errorf("time limit must be at least 1s, got %s", c.TimeLimit)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %s", c.FetchTimeout)
	}
	return nil
}

// AllottedSeconds is the time limit in whole seconds.
func (c Config) AllottedSeconds() int {
	return int(c.TimeLimit / time.Second)
}

// ResolveLogPath returns LogPath, or quizo.log in the directory of dbPath.
func (c Config) ResolveLogPath(dbPath string) string {
	if c.LogPath != "" {
		return c.LogPath
	}
	return filepath.Join(filepath.Dir(dbPath), "quizo.log")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
