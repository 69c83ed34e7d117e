package main

import (
	"fmt"

	"github.com/aretw0/waypoint/internal/cli"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset <tour-id>...",
	Short: "Clear completion flags so tours start again",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		store, closeStore, err := cli.OpenStore(cmd.Context(), e.cfg.Store)
		if err != nil {
			return err
		}
		defer closeStore()

		for _, id := range args {
			if err := store.Set(cmd.Context(), domain.CompletionKey(id), ""); err != nil {
				return fmt.Errorf("reset %s: %w", id, err)
			}
			e.logger.Info("Completion reset", "tour", id)
			fmt.Fprintf(cmd.OutOrStdout(), "Reset '%s'.\n", id)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
