// Package testutil provides shared fixtures for ledger-based tests. The
// constructors fail the test instead of returning errors so fixture setup
// stays out of the way of the assertions.
package testutil

import (
	"testing"

	"github.com/tallyho/tallyho/internal/ledger"
	"github.com/tallyho/tallyho/internal/model"
	"github.com/tallyho/tallyho/internal/settings"
)

// Category builds a named category or fails the test.
func Category(t *testing.T, name string) model.Category {
	t.Helper()
	c, err := model.NewCategory(name)
	if err != nil {
		t.Fatalf("failed to build category %q: %v", name, err)
	}
	return c
}

// Transaction builds a valid transaction or fails the test.
func Transaction(t *testing.T, amount float64, date model.Date, category model.Category, description string) model.Transaction {
	t.Helper()
	tx, err := model.NewTransaction(amount, date, category, description)
	if err != nil {
		t.Fatalf("failed to build transaction %q: %v", description, err)
	}
	return tx
}

// NewLedger returns an empty ledger with fresh settings.
func NewLedger(t *testing.T) (*ledger.Ledger, *settings.Settings) {
	t.Helper()
	set := settings.New()
	led, err := ledger.New(set)
	if err != nil {
		t.Fatalf("failed to build ledger: %v", err)
	}
	return led, set
}

// SeedCategories adds the named categories to the ledger, failing the
// test on the first rejection.
func SeedCategories(t *testing.T, led *ledger.Ledger, names ...string) []model.Category {
	t.Helper()
	categories := make([]model.Category, 0, len(names))
	for _, name := range names {
		c := Category(t, name)
		if err := led.AddCategory(c); err != nil {
			t.Fatalf("failed to seed category %q: %v", name, err)
		}
		categories = append(categories, c)
	}
	return categories
}
