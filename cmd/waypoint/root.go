package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/internal/cli"
	"github.com/aretw0/waypoint/internal/config"
	"github.com/aretw0/waypoint/pkg/ports"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "waypoint",
	Short:         "Waypoint runs step-by-step UI tours",
	Long:          `Waypoint walks users through a page one callout at a time. Tours are Markdown or YAML documents; this CLI validates, simulates and serves them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("dir", "", "Directory containing the tour documents (overrides config)")
	rootCmd.PersistentFlags().String("config", "", "Path to waypoint.yaml (default: ./waypoint.yaml if present)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
}

// env is what every command needs: the merged configuration and a logger.
type env struct {
	cfg    config.Config
	logger *slog.Logger
}

func loadEnv(cmd *cobra.Command) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		cfg.Dir = dir
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}

	logger, err := cli.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger}, nil
}

func (e *env) tours() (ports.TourLoader, error) {
	loader, err := waypoint.OpenTours(e.cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("open tours in %s: %w", e.cfg.Dir, err)
	}
	return loader, nil
}
