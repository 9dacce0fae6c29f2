package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tallyho/tallyho/internal/cli"
	"github.com/tallyho/tallyho/internal/config"
	"github.com/tallyho/tallyho/internal/export"
	"github.com/tallyho/tallyho/internal/model"
	"github.com/tallyho/tallyho/internal/sheets"
)

func convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [files...]",
		Short: "Convert OFX/QFX files to CSV",
		Long: `Convert bank OFX or QFX exports into a CSV snapshot.

Examples:
  # Convert to stdout
  tallyho convert ~/Downloads/chase_jan_2024.qfx

  # Convert several files into one CSV, sorted by date
  tallyho convert ~/Downloads/*.qfx --sort date -o transactions.csv

  # Only the Food transactions, semicolon-separated
  tallyho convert export.ofx --filter Food --delimiter ";" -o food.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: runConvert,
	}

	cmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	cmd.Flags().String("category", "", "Category for imported transactions (default: from config)")
	cmd.Flags().String("sort", "", "Sort transactions before writing (date, amount)")
	cmd.Flags().String("filter", "", "Only write transactions in this category")
	cmd.Flags().String("delimiter", ",", "Field delimiter for the CSV output")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	output, _ := cmd.Flags().GetString("output")
	categoryFlag, _ := cmd.Flags().GetString("category")
	sortFlag, _ := cmd.Flags().GetString("sort")
	filterFlag, _ := cmd.Flags().GetString("filter")
	delimiter, _ := cmd.Flags().GetString("delimiter")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if categoryFlag != "" {
		cfg.ImportCategory = categoryFlag
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

	if sortFlag != "" {
		key, err := model.ParseSortKey(sortFlag)
		if err != nil {
			return err
		}
		if err := led.SortTransactions(key); err != nil {
			return err
		}
	}

	if filterFlag != "" {
		category, err := model.NewCategory(filterFlag)
		if err != nil {
			return err
		}
		if err := led.SetCategoryFilter(category); err != nil {
			return err
		}
	}

	runes := []rune(delimiter)
	if len(runes) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", delimiter)
	}
	export.SetDelimiter(runes[0])

	transactions := led.Transactions()

	if output == "" {
		// CSV goes to stdout, so keep stdout clean of anything else.
		if err := export.WriteCSV(os.Stdout, transactions); err != nil {
			return err
		}
	} else {
		if err := export.WriteCSVFile(output, transactions); err != nil {
			return err
		}
		slog.Info(cli.FormatSuccess(fmt.Sprintf("Wrote %d transaction(s) to %s", len(transactions), output)))

		totals := sheets.Summarize(transactions, led.Categories())
		writeSummary(os.Stdout, totals, collectAccounts(ctx, files), set.CurrencySymbol())
	}

	if filterFlag != "" && added > len(transactions) {
		slog.Info("Filter narrowed the output",
			"imported", added,
			"written", len(transactions),
			"category", filterFlag)
	}

	return nil
}

// writeSummary prints a per-category breakdown of the written transactions.
// Categories nothing was written for are left out.
func writeSummary(out io.Writer, totals []sheets.CategoryTotal, accounts []string, symbol string) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\t%s\n",
		cli.TableHeaderStyle.Render("Category"),
		cli.TableHeaderStyle.Render("Count"),
		cli.TableHeaderStyle.Render("Total"))
	fmt.Fprintf(w, "%s\t%s\t%s\n",
		strings.Repeat("-", 20),
		strings.Repeat("-", 5),
		strings.Repeat("-", 12))

	var count int
	var total float64
	for _, ct := range totals {
		if ct.Count == 0 {
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", ct.Category.Name(), ct.Count, cli.FormatAmount(ct.Total, symbol))
		count += ct.Count
		total += ct.Total
	}
	fmt.Fprintf(w, "%s\t%d\t%s\n", cli.BoldStyle.Render("Total"), count, cli.FormatAmount(total, symbol))
	_ = w.Flush()

	if len(accounts) > 0 {
		fmt.Fprintln(out, cli.SubtleStyle.Render("Accounts: "+strings.Join(accounts, ", ")))
	}
}
