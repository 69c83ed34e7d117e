package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/placement"
	"github.com/spf13/cobra"
)

var placeCmd = &cobra.Command{
	Use:   "place",
	Short: "Compute a single callout placement",
	Long: `Prints the placement (side, top, left, arrow offset) of a callout as JSON.
Boxes are comma-separated: --target top,left,width,height --callout width,height --viewport width,height.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		target, _ := cmd.Flags().GetString("target")
		callout, _ := cmd.Flags().GetString("callout")
		viewport, _ := cmd.Flags().GetString("viewport")

		t, err := parseNumbers(target, 4)
		if err != nil {
			return fmt.Errorf("--target: %w", err)
		}
		c, err := parseNumbers(callout, 2)
		if err != nil {
			return fmt.Errorf("--callout: %w", err)
		}
		v, err := parseNumbers(viewport, 2)
		if err != nil {
			return fmt.Errorf("--viewport: %w", err)
		}

		in := placement.DefaultInput(
			domain.Rect{Top: t[0], Left: t[1], Width: t[2], Height: t[3]},
			domain.Size{Width: c[0], Height: c[1]},
			domain.Viewport{Width: v[0], Height: v[1]},
		)
		in.Offset, _ = cmd.Flags().GetFloat64("offset")
		in.Margin, _ = cmd.Flags().GetFloat64("margin")

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(placement.Compute(in))
	},
}

func parseNumbers(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma-separated numbers, got %q", n, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func init() {
	rootCmd.AddCommand(placeCmd)
	placeCmd.Flags().String("target", "", "Target box: top,left,width,height")
	placeCmd.Flags().String("callout", "", "Callout size: width,height")
	placeCmd.Flags().String("viewport", "1024,768", "Viewport size: width,height")
	placeCmd.Flags().Float64("offset", domain.DefaultOffset, "Gap between target and callout")
	placeCmd.Flags().Float64("margin", domain.DefaultMargin, "Minimum distance to the viewport edges")
	_ = placeCmd.MarkFlagRequired("target")
	_ = placeCmd.MarkFlagRequired("callout")
}
