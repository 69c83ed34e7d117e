package main

import (
	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check every tour for problems",
	Long:  `Loads every tour document and reports missing steps, empty text and malformed selectors.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		watch, _ := cmd.Flags().GetBool("watch")

		loader, err := waypoint.OpenTours(e.cfg.Dir)
		if err != nil {
			return err
		}

		if watch {
			sigCtx := cli.NewSignalContext(cmd.Context())
			defer sigCtx.Cancel()
			return cli.WatchValidate(sigCtx, loader, cmd.OutOrStdout(), e.logger)
		}
		return cli.Validate(loader, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolP("watch", "w", false, "Re-validate whenever a tour document changes")
}
