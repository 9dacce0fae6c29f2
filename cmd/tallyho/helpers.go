package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/schollz/progressbar/v3"

	"github.com/tallyho/tallyho/internal/config"
	"github.com/tallyho/tallyho/internal/ledger"
	"github.com/tallyho/tallyho/internal/model"
	"github.com/tallyho/tallyho/internal/ofx"
	"github.com/tallyho/tallyho/internal/settings"
)

// newSession builds a ledger and its settings from the loaded config. The
// configured categories and the import category are seeded after the
// default one, so imports never land on an unknown category.
func newSession(cfg *config.Config) (*ledger.Ledger, *settings.Settings, error) {
	set := settings.New()
	if err := set.SetCurrencySymbol(cfg.CurrencySymbol); err != nil {
		return nil, nil, err
	}
	if err := set.SetTheme(cfg.Theme); err != nil {
		return nil, nil, err
	}

	led, err := ledger.New(set)
	if err != nil {
		return nil, nil, err
	}

	seeds := make([]string, 0, len(cfg.Categories)+1)
	seeds = append(seeds, cfg.Categories...)
	seeds = append(seeds, cfg.ImportCategory)
	for _, name := range seeds {
		category, err := model.NewCategory(name)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid category %q: %w", name, err)
		}
		if err := led.AddCategory(category); err != nil {
			return nil, nil, err
		}
	}

	return led, set, nil
}

// collectFiles expands glob patterns and direct paths into the list of
// files to import.
func collectFiles(args []string) ([]string, error) {
	var allFiles []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			// If no glob matches, check if it's a direct file
			if _, err := os.Stat(pattern); err == nil {
				allFiles = append(allFiles, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			allFiles = append(allFiles, matches...)
		}
	}

	if len(allFiles) == 0 {
		return nil, fmt.Errorf("no files found to import")
	}

	return allFiles, nil
}

// importFiles parses each OFX file and adds its transactions to the
// ledger under the given category. A file that fails to parse is skipped
// with a warning; the count of transactions added is returned.
func importFiles(ctx context.Context, led *ledger.Ledger, categoryName string, files []string) (int, error) {
	category, err := model.NewCategory(categoryName)
	if err != nil {
		return 0, fmt.Errorf("invalid import category: %w", err)
	}

	importer, err := ofx.NewImporter(category)
	if err != nil {
		return 0, err
	}

	bar := newImportBar(len(files))

	added := 0
	for _, filePath := range files {
		transactions, err := importFile(ctx, importer, filePath)
		if err != nil {
			slog.Warn("Skipping file",
				"file", filepath.Base(filePath),
				"error", err)
			_ = bar.Add(1)
			continue
		}

		for _, tx := range transactions {
			if err := led.AddTransaction(tx); err != nil {
				return added, fmt.Errorf("adding transaction from %s: %w", filepath.Base(filePath), err)
			}
			added++
		}

		slog.Info("Processed file",
			"file", filepath.Base(filePath),
			"transactions", len(transactions))
		_ = bar.Add(1)
	}

	return added, nil
}

func importFile(ctx context.Context, importer *ofx.Importer, path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return importer.ParseFile(ctx, f)
}

// collectAccounts gathers the unique account IDs across the given OFX
// files. Files that cannot be read or parsed are skipped; importFiles has
// already warned about those.
func collectAccounts(ctx context.Context, files []string) []string {
	seen := make(map[string]bool)
	for _, filePath := range files {
		f, err := os.Open(filePath)
		if err != nil {
			continue
		}
		accounts, err := ofx.Accounts(ctx, f)
		f.Close()
		if err != nil {
			continue
		}
		for _, acct := range accounts {
			seen[acct] = true
		}
	}

	accounts := make([]string, 0, len(seen))
	for acct := range seen {
		accounts = append(accounts, acct)
	}
	sort.Strings(accounts)

	return accounts
}

// newImportBar renders import progress on stderr so stdout stays clean
// for piped output.
func newImportBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Importing transactions...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(os.Stderr); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}
