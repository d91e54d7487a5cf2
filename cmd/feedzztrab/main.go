package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/feedzz/feedzztrab-cli/internal/client"
	"github.com/feedzz/feedzztrab-cli/internal/config"
	"github.com/feedzz/feedzztrab-cli/internal/journal"
	"github.com/feedzz/feedzztrab-cli/internal/services"
	"github.com/feedzz/feedzztrab-cli/internal/session"
)

func main() {
	// .env is optional for a CLI; variables from the real environment win.
	_ = godotenv.Load()

	configFlag := flag.String("config", "", "config file path")
	flag.Parse()

	cfg, paths, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)

	store := session.NewStore(paths.token)
	if err := store.Load(time.Now()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	api := client.New(cfg.APIBaseURL, cfg.RequestTimeout.Duration, store.Token, logger)

	jnl, err := journal.Open(paths.journal)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer jnl.Close()

	app := &app{
		out:         os.Stdout,
		store:       store,
		auth:        services.NewAuthService(api),
		tasks:       services.NewTaskService(api),
		users:       services.NewUserService(api),
		assignments: services.NewAssignmentService(api),
		journal:     jnl,
		logger:      logger,
		now:         time.Now,
	}

	if err := app.run(flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type appPaths struct {
	token   string
	journal string
}

func loadConfig(configPath string) (config.Config, appPaths, error) {
	dir, err := config.DefaultDir()
	if err != nil {
		return config.Config{}, appPaths{}, fmt.Errorf("resolve config dir: %w", err)
	}
	if configPath == "" {
		configPath = filepath.Join(dir, "config.toml")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, appPaths{}, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return config.Config{}, appPaths{}, err
	}

	paths := appPaths{token: cfg.TokenPath, journal: cfg.JournalPath}
	if paths.token == "" {
		paths.token = filepath.Join(dir, "token")
	}
	if paths.journal == "" {
		paths.journal = filepath.Join(dir, "journal.db")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return config.Config{}, appPaths{}, fmt.Errorf("create config dir: %w", err)
	}
	return cfg, paths, nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
