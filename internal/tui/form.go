package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tallyho/tallyho/internal/cli"
	"github.com/tallyho/tallyho/internal/model"
)

// Field order in the transaction form.
const (
	fieldDate = iota
	fieldAmount
	fieldCategory
	fieldDescription
	fieldCount
)

// transactionForm edits one transaction. editIndex is the position in the
// full sequence for edits, or -1 when adding.
type transactionForm struct {
	err       error
	inputs    [fieldCount]textinput.Model
	editIndex int
	focus     int
}

// newTransactionForm builds a form prefilled from tx when editing, or from
// categoryName when adding.
func newTransactionForm(editIndex int, tx *model.Transaction, categoryName string) transactionForm {
	f := transactionForm{editIndex: editIndex}

	placeholders := [fieldCount]string{"2006-01-02", "-12.50", "category", "description"}
	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 64
		f.inputs[i] = in
	}
	f.inputs[fieldDescription].CharLimit = 128

	if tx != nil {
		f.inputs[fieldDate].SetValue(tx.Date.String())
		f.inputs[fieldAmount].SetValue(strconv.FormatFloat(tx.Amount, 'f', -1, 64))
		f.inputs[fieldCategory].SetValue(tx.Category.Name())
		f.inputs[fieldDescription].SetValue(tx.Description)
	} else if categoryName != "" {
		f.inputs[fieldCategory].SetValue(categoryName)
	}

	f.inputs[fieldDate].Focus()
	return f
}

// Update moves focus between fields and forwards everything else to the
// focused input.
func (f *transactionForm) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		return f.setFocus((f.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return f.setFocus((f.focus + fieldCount - 1) % fieldCount)
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *transactionForm) setFocus(focus int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = focus
	f.inputs[f.focus].Focus()
	return textinput.Blink
}

// transaction builds the ledger transaction the form describes.
func (f transactionForm) transaction() (model.Transaction, error) {
	date, err := model.ParseDate(strings.TrimSpace(f.inputs[fieldDate].Value()))
	if err != nil {
		return model.Transaction{}, err
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(f.inputs[fieldAmount].Value()), 64)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("amount must be a number: %w", err)
	}

	category, err := model.NewCategory(f.inputs[fieldCategory].Value())
	if err != nil {
		return model.Transaction{}, err
	}

	return model.NewTransaction(amount, date, category, strings.TrimSpace(f.inputs[fieldDescription].Value()))
}

// View renders the form.
func (f transactionForm) View(title, muted lipgloss.Style) string {
	heading := "Add transaction"
	if f.editIndex >= 0 {
		heading = "Edit transaction"
	}

	labels := [fieldCount]string{"Date", "Amount", "Category", "Description"}
	lines := []string{title.Render(heading), ""}
	for i := range f.inputs {
		lines = append(lines, labels[i], f.inputs[i].View())
	}

	if f.err != nil {
		lines = append(lines, "", cli.FormatError(f.err.Error()))
	}
	lines = append(lines, "", muted.Render("tab next field · enter save · esc cancel"))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
