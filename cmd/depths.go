package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/LanS10t/geminiMiner/internal/ui"
)

var depthsCmd = &cobra.Command{
	Use:   "depths",
	Short: "Manage unlocked elevator depths",
}

var depthsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List unlocked depths",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openProgress(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		unlocks, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		ui.New().Unlocks(unlocks)
		return nil
	},
}

var depthsUnlockCmd = &cobra.Command{
	Use:   "unlock <depth>...",
	Short: "Mark depths as reached",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		depths := make([]int, 0, len(args))
		for _, a := range args {
			d, err := strconv.Atoi(a)
			if err != nil {
				return fmt.Errorf("invalid depth %q: %w", a, err)
			}
			depths = append(depths, d)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openProgress(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		printer := ui.New()
		for _, d := range depths {
			if err := store.Unlock(cmd.Context(), d); err != nil {
				return err
			}
			printer.Unlocked(d)
		}
		return nil
	},
}

var depthsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget every unlocked depth",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openProgress(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		return store.Reset(cmd.Context())
	},
}

func init() {
	depthsCmd.AddCommand(depthsListCmd, depthsUnlockCmd, depthsResetCmd)
	rootCmd.AddCommand(depthsCmd)
}
