package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/LanS10t/geminiMiner/internal/appraisal"
	"github.com/LanS10t/geminiMiner/internal/claude"
	"github.com/LanS10t/geminiMiner/internal/config"
	"github.com/LanS10t/geminiMiner/internal/gemini"
	"github.com/LanS10t/geminiMiner/internal/logging"
	"github.com/LanS10t/geminiMiner/internal/progress"
	"github.com/LanS10t/geminiMiner/internal/ui"
)

// loadConfig loads and validates configuration.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config) (logging.Logger, error) {
	lc := cfg.Log
	if cfg.Verbose {
		lc.Level = "debug"
	}
	log, err := logging.NewLogger(lc)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}

// buildGenerator returns the configured backend and whether it can be
// attempted. A missing credential is not an error: the dispatcher simply
// stays offline.
func buildGenerator(ctx context.Context, cfg config.Config, log logging.Logger) (appraisal.Generator, bool, error) {
	if !cfg.HasCredential() {
		return nil, false, nil
	}
	switch cfg.Backend {
	case config.BackendGemini:
		g, err := gemini.New(ctx, gemini.Config{APIKey: cfg.APIKey, Model: cfg.Model})
		if err != nil {
			return nil, false, err
		}
		return g, true, nil
	case config.BackendClaude:
		g := &claude.Generator{
			Path:         cfg.ClaudePath,
			Model:        claudeModel(cfg.Model),
			MaxBudgetUSD: cfg.MaxBudgetUSD,
			Logger:       log.Named("claude"),
		}
		return g, g.Available(), nil
	default:
		return nil, false, nil
	}
}

// claudeModel drops the gemini default so the CLI picks its own model.
func claudeModel(model string) string {
	if model == gemini.DefaultModel {
		return ""
	}
	return model
}

func buildDispatcher(ctx context.Context, cfg config.Config, log logging.Logger, rec appraisal.Recorder) (*appraisal.Dispatcher, error) {
	gen, available, err := buildGenerator(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	persona, err := config.LoadPersona(cfg.PersonaFile)
	if err != nil {
		return nil, err
	}
	return &appraisal.Dispatcher{
		Generator: gen,
		Available: available,
		MockDelay: cfg.MockDelay,
		Options: appraisal.GenerateOptions{
			MaxOutputTokens: cfg.MaxOutputTokens,
			Temperature:     cfg.Temperature,
		},
		Persona:  persona,
		Logger:   log.Named("appraisal"),
		Recorder: rec,
	}, nil
}

func openProgress(ctx context.Context, cfg config.Config) (*progress.Store, error) {
	store, err := progress.Open(ctx, cfg.ProgressDB)
	if err != nil {
		return nil, fmt.Errorf("failed to open progress store: %w", err)
	}
	return store, nil
}

func setupSignalContext(printer *ui.Printer) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			printer.Info("\nshutting down...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}
