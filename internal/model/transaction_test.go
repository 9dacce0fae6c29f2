package model

import (
	"errors"
	"math"
	"testing"

	"github.com/tallyho/tallyho/internal/common"
)

func TestNewTransaction(t *testing.T) {
	food, _ := NewCategory("Food")
	day := NewDate(2024, 1, 5)

	tests := []struct {
		name        string
		description string
		category    Category
		date        Date
		amount      float64
		wantErr     bool
	}{
		{
			name:        "valid expense",
			amount:      -12.50,
			date:        day,
			category:    food,
			description: "lunch",
		},
		{
			name:     "valid with empty description",
			amount:   100,
			date:     day,
			category: food,
		},
		{
			name:        "NaN amount",
			amount:      math.NaN(),
			date:        day,
			category:    food,
			description: "broken",
			wantErr:     true,
		},
		{
			name:        "zero date",
			amount:      5,
			category:    food,
			description: "no date",
			wantErr:     true,
		},
		{
			name:        "zero category",
			amount:      5,
			date:        day,
			description: "uncategorized",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := NewTransaction(tt.amount, tt.date, tt.category, tt.description)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewTransaction() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				if !errors.Is(err, common.ErrInvalidArgument) {
					t.Errorf("NewTransaction() error = %v, want ErrInvalidArgument", err)
				}
				return
			}
			if tx.Amount != tt.amount || !tx.Date.Equal(tt.date) || tx.Category != tt.category || tx.Description != tt.description {
				t.Errorf("NewTransaction() = %+v, fields do not round-trip", tx)
			}
		})
	}
}

func TestTransaction_Equal(t *testing.T) {
	food, _ := NewCategory("Food")
	rent, _ := NewCategory("Rent")
	day := NewDate(2024, 1, 5)

	base, _ := NewTransaction(-12.50, day, food, "lunch")

	tests := []struct {
		name  string
		other Transaction
		want  bool
	}{
		{
			name:  "identical values",
			other: Transaction{Amount: -12.50, Date: day, Category: food, Description: "lunch"},
			want:  true,
		},
		{
			name:  "different amount",
			other: Transaction{Amount: -12.51, Date: day, Category: food, Description: "lunch"},
			want:  false,
		},
		{
			name:  "different date",
			other: Transaction{Amount: -12.50, Date: NewDate(2024, 1, 6), Category: food, Description: "lunch"},
			want:  false,
		},
		{
			name:  "different category",
			other: Transaction{Amount: -12.50, Date: day, Category: rent, Description: "lunch"},
			want:  false,
		},
		{
			name:  "different description",
			other: Transaction{Amount: -12.50, Date: day, Category: food, Description: "dinner"},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Equal(tt.other); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransaction_EqualIsExact(t *testing.T) {
	food, _ := NewCategory("Food")
	day := NewDate(2024, 1, 5)

	a, _ := NewTransaction(0.1+0.2, day, food, "")
	b, _ := NewTransaction(0.3, day, food, "")

	// 0.1+0.2 != 0.3 in float64; equality must not paper over that.
	if a.Equal(b) {
		t.Errorf("Equal() should compare amounts exactly, not by tolerance")
	}
}
