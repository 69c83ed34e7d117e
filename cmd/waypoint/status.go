package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/waypoint/internal/cli"
	"github.com/aretw0/waypoint/internal/presentation/tui"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status [tour-id...]",
	Short: "Show which tours were completed",
	Long: `Lists the completion flag of the given tours, or of every tour in --dir.
Flags recorded in the store for tours that no longer exist are listed too.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		store, closeStore, err := cli.OpenStore(ctx, e.cfg.Store)
		if err != nil {
			return err
		}
		defer closeStore()

		ids := args
		if len(ids) == 0 {
			loader, err := e.tours()
			if err != nil {
				return err
			}
			if ids, err = loader.ListTours(); err != nil {
				return err
			}
		}

		known := make(map[string]bool, len(ids))
		out := cmd.OutOrStdout()
		for _, id := range ids {
			known[id] = true
			v, ok, err := store.Get(ctx, domain.CompletionKey(id))
			if err != nil {
				return err
			}
			done := ok && v == domain.CompletionValue
			label := "pending"
			if done {
				label = "completed"
			}
			fmt.Fprintf(out, "%-24s %s\n", id, tui.Status(done, label))
		}

		if len(args) > 0 {
			return nil
		}
		keys, err := store.Keys(ctx)
		if err != nil {
			return err
		}
		for _, k := range keys {
			id, ok := strings.CutPrefix(k, domain.CompletionKeyPrefix)
			if !ok || known[id] {
				continue
			}
			fmt.Fprintf(out, "%-24s %s\n", id, tui.Status(false, "orphaned flag"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
