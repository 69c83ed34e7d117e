package main

import (
	"fmt"
	"os"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/internal/cli"
	"github.com/aretw0/waypoint/internal/lookup"
	"github.com/aretw0/waypoint/internal/presentation/tui"
	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/observability"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <tour-id>",
	Short: "Simulate a tour against a page layout",
	Long: `Runs a tour in virtual time against a static layout file (viewport plus element boxes).
Each callout is drawn in the terminal; type n (next), p (previous) or c (close).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		layoutPath, _ := cmd.Flags().GetString("layout")
		auto, _ := cmd.Flags().GetBool("auto")
		force, _ := cmd.Flags().GetBool("force")
		quiet, _ := cmd.Flags().GetBool("quiet")

		loader, err := e.tours()
		if err != nil {
			return err
		}
		tour, err := lookup.Tour(loader, args[0])
		if err != nil {
			return err
		}
		doc, err := memory.LoadLayout(layoutPath)
		if err != nil {
			return err
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		store, closeStore, err := cli.OpenStore(sigCtx, e.cfg.Store)
		if err != nil {
			return err
		}
		defer closeStore()

		out := cmd.OutOrStdout()
		if !quiet {
			tui.PrintBanner(out, waypoint.Version)
		}

		res, err := cli.Simulate(sigCtx, cli.SimulateOptions{
			Tour:     tour,
			Document: doc,
			Store:    store,
			Logger:   e.logger,
			Hooks:    observability.LoggingHooks(e.logger),
			Guide:    cli.GuideOptions(e.cfg.Callout),
			Force:    force,
			Auto:     auto,
			In:       os.Stdin,
			Out:      out,
			Width:    tui.TerminalWidth(),
		})
		if err != nil {
			if sigCtx.Signal() != nil {
				fmt.Fprintf(out, "\n>>> Interrupted at step %d.\n", res.LastIndex+1)
				return nil
			}
			return err
		}
		if res.Started && !quiet {
			fmt.Fprintf(out, ">>> Shown %d callouts, skipped %d steps.\n", len(res.Shown), len(res.Skipped))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("layout", "l", "layout.yaml", "YAML layout describing the page")
	runCmd.Flags().Bool("auto", false, "Press Next on every step without reading input")
	runCmd.Flags().Bool("force", false, "Run the tour even if it was completed")
	runCmd.Flags().BoolP("quiet", "q", false, "Skip the banner and summary")
}
