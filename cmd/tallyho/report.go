package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tallyho/tallyho/internal/cli"
	"github.com/tallyho/tallyho/internal/config"
	"github.com/tallyho/tallyho/internal/model"
	"github.com/tallyho/tallyho/internal/sheets"
)

// newReportWriter builds the sheets writer; tests swap it for a mock.
var newReportWriter = func(ctx context.Context, cfg sheets.Config) (sheets.ReportWriter, error) {
	return sheets.NewWriter(ctx, cfg, slog.Default())
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [files...]",
		Short: "Export a spending report to Google Sheets",
		Long: `Import OFX/QFX files and write a category breakdown report to a
Google Sheets spreadsheet.

Authentication uses either a service account or OAuth credentials; see
the sheets section of the config file.

Examples:
  # Report on last month's export
  tallyho report ~/Downloads/chase_jan_2024.qfx

  # Combine several accounts into one report, sorted by amount
  tallyho report ~/Downloads/*.qfx --sort amount`,
		Args: cobra.MinimumNArgs(1),
		RunE: runReport,
	}

	cmd.Flags().String("sort", "date", "Sort transactions in the report (date, amount)")
	cmd.Flags().String("category", "", "Category for imported transactions (default: from config)")

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Set up interrupt handling
	interruptHandler := cli.NewInterruptHandler(nil)
	ctx = interruptHandler.HandleInterrupts(ctx, true)

	sortFlag, _ := cmd.Flags().GetString("sort")
	categoryFlag, _ := cmd.Flags().GetString("category")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if categoryFlag != "" {
		cfg.ImportCategory = categoryFlag
	}

	sheetsCfg, err := config.LoadSheetsConfig()
	if err != nil {
		return err
	}

	led, set, err := newSession(cfg)
	if err != nil {
		return err
	}

	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	added, err := importFiles(ctx, led, cfg.ImportCategory, files)
	if err != nil {
		return err
	}
	if added == 0 {
		return fmt.Errorf("no transactions found in %d file(s)", len(files))
	}

	key, err := model.ParseSortKey(sortFlag)
	if err != nil {
		return err
	}
	if err := led.SortTransactions(key); err != nil {
		return err
	}

	writer, err := newReportWriter(ctx, *sheetsCfg)
	if err != nil {
		return fmt.Errorf("failed to create sheets writer: %w", err)
	}

	slog.Info("Writing report to Google Sheets",
		"spreadsheet", sheetsCfg.SpreadsheetName,
		"transactions", added)

	if err := writer.Write(ctx, led.Transactions(), led.Categories(), set.CurrencySymbol()); err != nil {
		if interruptHandler.WasInterrupted() {
			return fmt.Errorf("report canceled: %w", err)
		}
		return fmt.Errorf("failed to write report: %w", err)
	}

	slog.Info(cli.FormatSuccess(fmt.Sprintf("Report written to %q", sheetsCfg.SpreadsheetName)))
	return nil
}
