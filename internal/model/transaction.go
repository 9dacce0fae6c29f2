package model

import (
	"fmt"
	"math"

	"github.com/tallyho/tallyho/internal/common"
)

// Transaction represents a single financial event. Amount is signed:
// negative for money out, positive for money in. Description may be empty.
//
// Transactions are plain values. To change one field, build a modified copy
// and hand it back to the ledger, which replaces the stored value.
type Transaction struct {
	Date        Date
	Category    Category
	Description string
	Amount      float64
}

// NewTransaction creates a validated transaction.
func NewTransaction(amount float64, date Date, category Category, description string) (Transaction, error) {
	t := Transaction{
		Date:        date,
		Category:    category,
		Description: description,
		Amount:      amount,
	}
	if err := t.Validate(); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

// Validate ensures the transaction has valid data.
func (t Transaction) Validate() error {
	if math.IsNaN(t.Amount) {
		return fmt.Errorf("%w: amount is NaN", common.ErrInvalidArgument)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("%w: date is not set", common.ErrInvalidArgument)
	}
	if t.Category.IsZero() {
		return fmt.Errorf("%w: category is not set", common.ErrInvalidArgument)
	}
	return nil
}

// Equal reports structural equality: all four fields must match, with
// amounts compared exactly rather than by tolerance.
func (t Transaction) Equal(other Transaction) bool {
	return t.Amount == other.Amount &&
		t.Date.Equal(other.Date) &&
		t.Category == other.Category &&
		t.Description == other.Description
}
