package main

import (
	"fmt"

	"github.com/aretw0/waypoint/internal/cli"
	"github.com/aretw0/waypoint/internal/lookup"
	"github.com/aretw0/waypoint/internal/presentation/graph"
	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph <tour-id>",
	Short: "Export a tour as a Mermaid flowchart",
	Long: `Prints a Mermaid diagram (graph TD) of the tour's steps.
With --layout, steps whose target is not visible in that layout are greyed out.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		loader, err := e.tours()
		if err != nil {
			return err
		}
		tour, err := lookup.Tour(loader, args[0])
		if err != nil {
			return err
		}

		var overlay *graph.Overlay
		if path, _ := cmd.Flags().GetString("layout"); path != "" {
			doc, err := memory.LoadLayout(path)
			if err != nil {
				return err
			}
			res, err := cli.Simulate(cmd.Context(), cli.SimulateOptions{
				Tour:     tour,
				Document: doc,
				Logger:   e.logger,
				Force:    true,
				Auto:     true,
			})
			if err != nil {
				return err
			}
			overlay = &graph.Overlay{Skipped: res.Skipped, Current: domain.IndexBeforeStart}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(tour, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("layout", "l", "", "YAML layout used to mark skipped steps")
}
