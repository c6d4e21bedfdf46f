package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dicksarp09/AI-powered-mobile-app/internal/app"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/common"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "voicetask",
		Short:         "Turn voice memos into task lists on-device",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cfg := common.LogConfig{Level: "warn", Format: "text"}
			if verbose {
				cfg.Level = "debug"
			}
			slog.SetDefault(common.NewLogger(cfg, cmd.ErrOrStderr()))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		processCmd(),
		normalizeCmd(),
		validateCmd(),
		exportCmd(),
		jobsCmd(),
		tasksCmd(),
	)
	return root
}

// buildApp loads the environment configuration and wires the pipeline.
func buildApp(cmd *cobra.Command) (*app.App, *common.Config, error) {
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	a, err := app.Build(cmd.Context(), cfg, slog.Default(), nil)
	if err != nil {
		return nil, nil, err
	}
	return a, cfg, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
