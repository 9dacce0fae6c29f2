package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		symbol string
		want   string
	}{
		{name: "spending", amount: -12.5, symbol: "$", want: "-$12.50"},
		{name: "income", amount: 3000, symbol: "£", want: "£3000.00"},
		{name: "zero", amount: 0, symbol: "$", want: "$0.00"},
		{name: "rounding", amount: -0.005, symbol: "$", want: "-$0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Styles degrade to plain text without a colour terminal, so
			// the rendered string still contains the bare amount.
			assert.Contains(t, FormatAmount(tt.amount, tt.symbol), tt.want)
		})
	}
}

func TestFormatMessages(t *testing.T) {
	assert.Contains(t, FormatSuccess("saved"), SuccessIcon)
	assert.Contains(t, FormatSuccess("saved"), "saved")
	assert.Contains(t, FormatError("failed"), ErrorIcon)
	assert.Contains(t, FormatWarning("careful"), WarningIcon)
	assert.Contains(t, FormatInfo("note"), InfoIcon)
	assert.Contains(t, FormatTitle("Report"), LedgerIcon)
}
