package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LanS10t/geminiMiner/internal/claude"
	"github.com/LanS10t/geminiMiner/internal/config"
	"github.com/LanS10t/geminiMiner/internal/logging"
	"github.com/LanS10t/geminiMiner/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check configuration and whether the delegated appraiser is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		available := cfg.HasCredential()
		switch cfg.Backend {
		case config.BackendClaude:
			g := &claude.Generator{Path: cfg.ClaudePath, Logger: logging.NewNopLogger()}
			if err := g.Validate(); err != nil {
				fmt.Fprintf(os.Stderr, "✗ claude: %v\n", err)
				available = false
			} else {
				fmt.Fprintln(os.Stderr, "✓ claude CLI found")
			}
		case config.BackendGemini:
			if available {
				fmt.Fprintln(os.Stderr, "✓ gemini API key configured")
			} else {
				fmt.Fprintln(os.Stderr, "✗ gemini: no API key (set MINER_API_KEY or GEMINI_API_KEY)")
			}
		}

		ui.New().ShowStatus(cfg.Backend, cfg.Model, available)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
