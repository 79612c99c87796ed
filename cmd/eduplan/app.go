package main

import (
	"context"
	"fmt"

	"github.com/jonathan/eduplan/internal/advisor"
	"github.com/jonathan/eduplan/internal/catalog"
	"github.com/jonathan/eduplan/internal/config"
	"github.com/jonathan/eduplan/internal/llm"
	"github.com/jonathan/eduplan/internal/logging"
	"github.com/jonathan/eduplan/internal/narration"
	"github.com/jonathan/eduplan/internal/planner"
	"github.com/jonathan/eduplan/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is the wired object graph shared by every command
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	store    *storage.Store
	client   llm.Client
	narrator *narration.Narrator
	planner  *planner.Controller
}

// loadConfig layers flags over the config file over the environment over built-in defaults
func loadConfig(cmd *cobra.Command, overrides config.Config) (config.Config, error) {
	cfg := overrides
	cfg.StorePath = storePath
	cfg.DatabaseURL = databaseURL
	cfg.LogFile = logFile
	cfg.Model = modelName
	cfg.Verbose = verbose

	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	cfg = cfg.MergeWithDefaults(config.FromEnv())
	cfg = cfg.MergeWithDefaults(config.Defaults())

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	if cfg.Verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Using store %s (database: %t, advisor: %t)\n",
			cfg.StorePath, cfg.DatabaseURL != "", cfg.APIKey != "")
	}
	return cfg, nil
}

// newApp opens the store, the oracle client and the controller. The controller starts on the
// methodology chosen with --methodology.
func newApp(ctx context.Context, cfg config.Config, synth narration.Synthesizer) (*app, error) {
	m, err := catalog.ParseMethodology(methodology)
	if err != nil {
		return nil, err
	}

	logger := logging.New(logging.Options{FilePath: cfg.LogFile, Verbose: cfg.Verbose})

	store, err := storage.Open(ctx, cfg.DatabaseURL, cfg.StorePath, logging.Module(logger, "storage"))
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	llmConfig := llm.DefaultConfig()
	if cfg.Model != "" {
		llmConfig = llmConfig.WithAllModels(cfg.Model)
	}
	client, err := llm.NewClient(ctx, llmConfig, cfg.APIKey)
	if err != nil {
		_ = store.Close()
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	if cfg.APIKey == "" {
		logger.Info("no API key configured; drafting falls back to defaults")
	}

	if synth == nil {
		synth = narration.NopSynthesizer{}
	}
	narrator := narration.NewNarrator(synth, logging.Module(logger, "narration"))

	adv := advisor.New(client, logging.Module(logger, "advisor"))
	a := &app{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		client:   client,
		narrator: narrator,
		planner:  planner.New(ctx, store, adv, narrator, logging.Module(logger, "planner")),
	}
	if err := a.planner.SetMethodology(m); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// Close releases everything newApp opened
func (a *app) Close() {
	a.narrator.Close()
	a.planner.Close()
	if err := a.client.Close(); err != nil {
		a.logger.Warn("failed to close LLM client", zap.Error(err))
	}
	if err := a.store.Close(); err != nil {
		a.logger.Warn("failed to close store", zap.Error(err))
	}
	_ = a.logger.Sync()
}

// openApp loads the configuration and wires the app for a one-shot command
func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd, config.Config{})
	if err != nil {
		return nil, err
	}
	return newApp(cmd.Context(), cfg, nil)
}
