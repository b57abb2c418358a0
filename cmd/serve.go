package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/LanS10t/geminiMiner/internal/logging"
	"github.com/LanS10t/geminiMiner/internal/metrics"
	"github.com/LanS10t/geminiMiner/internal/server"
	"github.com/LanS10t/geminiMiner/internal/ui"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve appraisals and the elevator panel over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8088)")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	ctx, cancel := setupSignalContext(ui.New())
	defer cancel()

	m := metrics.New(metrics.Options{GoMetrics: true, ProcessMetrics: true})
	d, err := buildDispatcher(ctx, cfg, log, m)
	if err != nil {
		return err
	}

	store, err := openProgress(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	log.Info("starting",
		logging.String("backend", cfg.Backend),
		logging.Bool("delegated_available", d.Available),
		logging.String("progress_db", cfg.ProgressDB),
	)

	router := server.NewRouter(server.RouterConfig{
		Appraiser:    d,
		UseDelegated: cfg.UseDelegated,
		Depths:       cfg.Elevator.Depths,
		Unlocks:      store,
		Metrics:      m,
		Logger:       log,
	})
	return server.New(cfg.Server.Addr, router, log.Named("http")).Run(ctx)
}
