// Package export renders ledger snapshots to CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/tallyho/tallyho/internal/model"
)

// Delimiter separates CSV fields. Spreadsheet imports in some locales want
// a semicolon instead of the default comma.
var Delimiter rune = ','

// SetDelimiter changes the delimiter for subsequent CSV output.
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// row is the CSV projection of a ledger transaction.
type row struct {
	Date        string `csv:"Date"`
	Amount      string `csv:"Amount"`
	Category    string `csv:"Category"`
	Description string `csv:"Description"`
}

func newRow(tx model.Transaction) row {
	return row{
		Date:        tx.Date.String(),
		Amount:      strconv.FormatFloat(tx.Amount, 'f', 2, 64),
		Category:    tx.Category.Name(),
		Description: tx.Description,
	}
}

// WriteCSV writes transactions to w, header row included. An empty snapshot
// still produces the header.
func WriteCSV(w io.Writer, transactions []model.Transaction) error {
	rows := make([]row, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, newRow(tx))
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = Delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	return nil
}

// WriteCSVFile writes transactions to path, creating parent directories as
// needed.
func WriteCSVFile(path string, transactions []model.Transaction) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}

	if err := WriteCSV(file, transactions); err != nil {
		_ = file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close CSV file: %w", err)
	}

	slog.Info("Wrote CSV export",
		"file", path,
		"transactions", len(transactions))

	return nil
}
