// Package model defines the value types the ledger stores: categories,
// calendar dates, and transactions.
package model

import (
	"fmt"
	"strings"

	"github.com/tallyho/tallyho/internal/common"
)

// Category is a named bucket a transaction belongs to. It is an immutable
// value: two categories are equal exactly when their names are equal
// (case-sensitive). The zero Category means "no category" and is rejected
// wherever a real category is required.
type Category struct {
	name string
}

// NewCategory creates a category from a name. The name must contain at
// least one non-whitespace character; it is stored as given, not trimmed.
func NewCategory(name string) (Category, error) {
	if strings.TrimSpace(name) == "" {
		return Category{}, fmt.Errorf("%w: category name is empty", common.ErrInvalidArgument)
	}
	return Category{name: name}, nil
}

// Name returns the category name. Empty only for the zero Category.
func (c Category) Name() string {
	return c.name
}

// IsZero reports whether this is the zero "no category" value.
func (c Category) IsZero() bool {
	return c.name == ""
}

func (c Category) String() string {
	return c.name
}
