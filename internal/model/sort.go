package model

import (
	"fmt"

	"github.com/tallyho/tallyho/internal/common"
)

// SortKey selects the transaction field a sort orders by.
type SortKey string

const (
	// SortByDate orders transactions by calendar date, oldest first.
	SortByDate SortKey = "date"
	// SortByAmount orders transactions by signed amount, lowest first.
	SortByAmount SortKey = "amount"
)

// ParseSortKey converts user input into a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case SortByDate:
		return SortByDate, nil
	case SortByAmount:
		return SortByAmount, nil
	default:
		return "", fmt.Errorf("%w: unknown sort key %q (want %q or %q)",
			common.ErrInvalidArgument, s, SortByDate, SortByAmount)
	}
}

// Valid reports whether the key is one of the known sort keys.
func (k SortKey) Valid() bool {
	return k == SortByDate || k == SortByAmount
}
