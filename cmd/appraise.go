package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/LanS10t/geminiMiner/internal/appraisal"
	"github.com/LanS10t/geminiMiner/internal/mineral"
	"github.com/LanS10t/geminiMiner/internal/tui"
	"github.com/LanS10t/geminiMiner/internal/ui"
	"github.com/LanS10t/geminiMiner/internal/watch"
)

var appraiseCmd = &cobra.Command{
	Use:   "appraise <inventory.toml>",
	Short: "Have the appraiser judge an inventory file",
	Long: `Reads a TOML inventory ([[item]] tables with type, name, quality, value)
and prints the appraiser's verdict.

With --watch, re-appraises every time the file is rewritten.
With --offline, never calls the language model.`,
	Args: cobra.ExactArgs(1),
	RunE: runAppraise,
}

func init() {
	appraiseCmd.Flags().Bool("offline", false, "use the rule-of-thumb verdict only")
	appraiseCmd.Flags().Bool("watch", false, "re-appraise whenever the file changes")
	appraiseCmd.Flags().Bool("json", false, "print the verdict as JSON on stdout")
	appraiseCmd.Flags().Bool("tui", false, "show the interactive appraisal screen")
	rootCmd.AddCommand(appraiseCmd)
}

// appraisalJSON is the --json output shape.
type appraisalJSON struct {
	ID      string  `json:"id"`
	Verdict string  `json:"verdict"`
	Path    string  `json:"path"`
	Failure string  `json:"failure,omitempty"`
	Text    string  `json:"text"`
	Seconds float64 `json:"seconds"`
}

func runAppraise(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	printer := ui.New()
	ctx, cancel := setupSignalContext(printer)
	defer cancel()

	d, err := buildDispatcher(ctx, cfg, log, nil)
	if err != nil {
		return err
	}

	offline, _ := cmd.Flags().GetBool("offline")
	useDelegated := cfg.UseDelegated && !offline
	if cfg.Verbose {
		printer.ShowStatus(cfg.Backend, cfg.Model, d.Available)
	}

	inv, err := mineral.LoadInventory(args[0])
	if err != nil {
		return err
	}

	if useTUI, _ := cmd.Flags().GetBool("tui"); useTUI {
		_, err := tui.RunAppraisal(ctx, d.AppraiseDetailed, inv, useDelegated)
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()
	if err := appraiseOnce(ctx, d, inv, useDelegated, printer, out, asJSON); err != nil {
		return err
	}

	if follow, _ := cmd.Flags().GetBool("watch"); follow {
		return watchAndAppraise(ctx, args[0], d, useDelegated, printer, out, asJSON)
	}
	return nil
}

func appraiseOnce(ctx context.Context, d *appraisal.Dispatcher, inv mineral.Inventory, useDelegated bool, printer *ui.Printer, out io.Writer, asJSON bool) error {
	if !asJSON {
		printer.Appraising(len(inv), useDelegated && d.Available)
	}
	start := time.Now()
	a := d.AppraiseDetailed(ctx, inv, useDelegated)
	elapsed := time.Since(start)

	if asJSON {
		return json.NewEncoder(out).Encode(appraisalJSON{
			ID:      a.ID,
			Verdict: a.Verdict.String(),
			Path:    string(a.Path),
			Failure: string(a.Failure),
			Text:    a.Text,
			Seconds: elapsed.Seconds(),
		})
	}
	printer.Verdict(a, elapsed)
	_, err := fmt.Fprintln(out, a.Text)
	return err
}

func watchAndAppraise(ctx context.Context, path string, d *appraisal.Dispatcher, useDelegated bool, printer *ui.Printer, out io.Writer, asJSON bool) error {
	w, err := watch.New(path)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	printer.Info(fmt.Sprintf("watching %s (ctrl+c to stop)", w.Path))
	for {
		select {
		case <-ctx.Done():
			return nil
		case u, ok := <-w.Updates:
			if !ok {
				return nil
			}
			if u.Err != nil {
				printer.Error(u.Err.Error())
				continue
			}
			if err := appraiseOnce(ctx, d, u.Inventory, useDelegated, printer, out, asJSON); err != nil {
				return err
			}
		}
	}
}
