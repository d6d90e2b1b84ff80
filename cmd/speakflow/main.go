// speakflow is a language-learning companion: chat tutoring, role-play,
// pattern drills, a daily verse, and local multi-profile progression.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"speakflow/internal/config"
	"speakflow/internal/profile"
	"speakflow/internal/provider"
	"speakflow/internal/store"
	"speakflow/internal/tutor"
)

var (
	// Global flags
	verbose    bool
	configPath string
	dbPath     string

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "speakflow",
	Short: "SpeakFlow - English speaking tutor with Korean support",
	Long: `SpeakFlow is a local-first language-learning companion.

It tracks XP, levels, streaks, and daily speaking goals per learner
profile, and talks to rotating language-model providers for tutoring
replies and daily verses.

Run without arguments to start the interactive chat.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// API keys may live in a local .env during development.
		_ = godotenv.Load()

		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd, args)
	},
}

// app bundles the wired services for one command invocation.
type app struct {
	cfg      *config.Config
	backend  store.Backend
	profiles *profile.Service
	pipeline *tutor.Pipeline
	cache    *tutor.VerseCache
}

// newApp loads config and wires storage, the profile service, and the
// response pipeline.
func newApp() (*app, error) {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Storage.Path = dbPath
	}

	backend, err := store.NewSQLiteBackend(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	registry, err := provider.NewRegistry(cfg.Providers, cfg.ProviderTimeout())
	if err != nil {
		backend.Close()
		return nil, err
	}

	cache := tutor.NewVerseCache(backend)
	return &app{
		cfg:      cfg,
		backend:  backend,
		profiles: profile.NewService(backend, logger),
		pipeline: tutor.NewPipeline(registry, cache, logger),
		cache:    cache,
	}, nil
}

func (a *app) close() {
	if err := a.backend.Close(); err != nil {
		logger.Warn("failed to close state database", zap.Error(err))
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.speakflow/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "state database path override")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(verseCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(patternsCmd)
	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(bookmarksCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
