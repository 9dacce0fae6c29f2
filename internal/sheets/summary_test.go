package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyho/tallyho/internal/model"
	"github.com/tallyho/tallyho/internal/testutil"
)

func TestSummarize(t *testing.T) {
	food := testutil.Category(t, "Food")
	travel := testutil.Category(t, "Travel")
	bills := testutil.Category(t, "Bills")

	day := model.NewDate(2024, 1, 5)
	txns := []model.Transaction{
		{Amount: -12.50, Date: day, Category: food, Description: "lunch"},
		{Amount: -30, Date: day, Category: food, Description: "dinner"},
		{Amount: -220, Date: day, Category: travel, Description: "flight"},
	}

	totals := Summarize(txns, []model.Category{food, travel, bills})

	require.Len(t, totals, 3)

	assert.Equal(t, food, totals[0].Category)
	assert.Equal(t, 2, totals[0].Count)
	assert.InDelta(t, -42.50, totals[0].Total, 1e-9)

	assert.Equal(t, travel, totals[1].Category)
	assert.Equal(t, 1, totals[1].Count)
	assert.InDelta(t, -220, totals[1].Total, 1e-9)

	// Categories without transactions still get a row.
	assert.Equal(t, bills, totals[2].Category)
	assert.Equal(t, 0, totals[2].Count)
	assert.Zero(t, totals[2].Total)
}

func TestSummarize_Empty(t *testing.T) {
	totals := Summarize(nil, nil)
	assert.Empty(t, totals)
}
