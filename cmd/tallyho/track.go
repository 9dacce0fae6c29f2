package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tallyho/tallyho/internal/config"
	"github.com/tallyho/tallyho/internal/tui"
)

func trackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "track [files...]",
		Short: "Open the interactive ledger session",
		Long: `Open the interactive ledger session, optionally pre-loading
transactions from OFX/QFX files.

Examples:
  # Start with an empty ledger
  tallyho track

  # Pre-load bank exports
  tallyho track ~/Downloads/chase_*.qfx`,
		Args: cobra.ArbitraryArgs,
		RunE: runTrack,
	}
}

func runTrack(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	led, set, err := newSession(cfg)
	if err != nil {
		return err
	}

	if len(args) > 0 {
		files, err := collectFiles(args)
		if err != nil {
			return err
		}

		added, err := importFiles(ctx, led, cfg.ImportCategory, files)
		if err != nil {
			return err
		}
		slog.Info("Imported transactions", "count", added, "files", len(files))
	}

	return tui.Run(ctx, led, set)
}
