package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LanS10t/geminiMiner/internal/elevator"
	"github.com/LanS10t/geminiMiner/internal/tui"
	"github.com/LanS10t/geminiMiner/internal/ui"
)

var elevatorCmd = &cobra.Command{
	Use:   "elevator",
	Short: "Open the elevator panel and travel to an unlocked depth",
	RunE:  runElevator,
}

func init() {
	elevatorCmd.Flags().Int("to", 0, "travel to this depth without opening the panel")
	elevatorCmd.Flags().Bool("list", false, "print the floors and exit")
	rootCmd.AddCommand(elevatorCmd)
}

func runElevator(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	printer := ui.New()
	ctx, cancel := setupSignalContext(printer)
	defer cancel()

	store, err := openProgress(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	var arrived int
	panel, err := elevator.Load(ctx, cfg.Elevator.Depths, store, func(d int) { arrived = d })
	if err != nil {
		return err
	}

	if list, _ := cmd.Flags().GetBool("list"); list {
		printer.Floors(panel.Floors())
		return nil
	}

	if to, _ := cmd.Flags().GetInt("to"); to != 0 {
		if err := panel.Travel(to); err != nil {
			return err
		}
	} else {
		if _, err := tui.RunElevator(ctx, panel); err != nil {
			return err
		}
	}

	if arrived == 0 {
		printer.Info("elevator closed")
		return nil
	}
	printer.Traveled(arrived)
	fmt.Fprintln(cmd.OutOrStdout(), arrived)
	return nil
}
