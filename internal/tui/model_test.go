package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyho/tallyho/internal/ledger"
	"github.com/tallyho/tallyho/internal/model"
	"github.com/tallyho/tallyho/internal/settings"
	"github.com/tallyho/tallyho/internal/testutil"
)

// newSessionFixture builds a session over a ledger with two categories and
// three transactions: rent (General), lunch (Food), salary (General).
func newSessionFixture(t *testing.T) (Model, *ledger.Ledger, *settings.Settings) {
	t.Helper()

	led, set := testutil.NewLedger(t)

	general := testutil.Category(t, ledger.DefaultCategoryName)
	food := testutil.SeedCategories(t, led, "Food")[0]

	require.NoError(t, led.AddTransaction(testutil.Transaction(t, -900, model.NewDate(2024, 1, 1), general, "rent")))
	require.NoError(t, led.AddTransaction(testutil.Transaction(t, -12.5, model.NewDate(2024, 1, 5), food, "lunch")))
	require.NoError(t, led.AddTransaction(testutil.Transaction(t, 2500, model.NewDate(2024, 1, 25), general, "salary")))

	return newModel(led, set), led, set
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func update(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok, "Update must return a tui.Model")
	}
	return m
}

func TestRefreshTranslatesFilteredRows(t *testing.T) {
	m, led, _ := newSessionFixture(t)
	general := testutil.Category(t, ledger.DefaultCategoryName)

	require.NoError(t, led.SetCategoryFilter(general))
	m.refresh()

	require.Len(t, m.visible, 2)
	assert.Equal(t, "rent", m.visible[0].Description)
	assert.Equal(t, "salary", m.visible[1].Description)
	assert.Equal(t, []int{0, 2}, m.indices, "row positions must map to full-sequence indices")
	assert.Equal(t, 3, m.total)
}

func TestDeleteResolvesRowToSequenceIndex(t *testing.T) {
	m, led, _ := newSessionFixture(t)
	general := testutil.Category(t, ledger.DefaultCategoryName)

	require.NoError(t, led.SetCategoryFilter(general))
	m.refresh()
	m.table.SetCursor(1) // salary, sequence index 2

	m = update(t, m, "d")

	all := led.AllTransactions()
	require.Len(t, all, 2)
	assert.Equal(t, "rent", all[0].Description)
	assert.Equal(t, "lunch", all[1].Description,
		"the filtered-out transaction at the raw row index must survive")
	assert.Equal(t, "transaction removed", m.status)
}

func TestEditPrefillsSelectedTransaction(t *testing.T) {
	m, led, _ := newSessionFixture(t)
	general := testutil.Category(t, ledger.DefaultCategoryName)

	require.NoError(t, led.SetCategoryFilter(general))
	m.refresh()
	m.table.SetCursor(1)

	m = update(t, m, "e")

	assert.Equal(t, StateTransactionForm, m.state)
	assert.Equal(t, 2, m.form.editIndex)
	assert.Equal(t, "salary", m.form.inputs[fieldDescription].Value())
	assert.Equal(t, "2024-01-25", m.form.inputs[fieldDate].Value())
}

func TestFormSubmitAddsTransaction(t *testing.T) {
	m, led, _ := newSessionFixture(t)

	m = update(t, m, "a")
	require.Equal(t, StateTransactionForm, m.state)
	assert.Equal(t, -1, m.form.editIndex)

	m.form.inputs[fieldDate].SetValue("2024-03-01")
	m.form.inputs[fieldAmount].SetValue("-42.00")
	m.form.inputs[fieldCategory].SetValue("Food")
	m.form.inputs[fieldDescription].SetValue("dinner")

	m = update(t, m, "enter")

	assert.Equal(t, StateList, m.state)
	assert.Equal(t, "transaction added", m.status)

	all := led.AllTransactions()
	require.Len(t, all, 4)
	assert.Equal(t, "dinner", all[3].Description)
	assert.Equal(t, -42.0, all[3].Amount)
}

func TestFormRejectsUnknownCategory(t *testing.T) {
	m, led, _ := newSessionFixture(t)

	m = update(t, m, "a")
	m.form.inputs[fieldDate].SetValue("2024-03-01")
	m.form.inputs[fieldAmount].SetValue("-42.00")
	m.form.inputs[fieldCategory].SetValue("Nope")

	m = update(t, m, "enter")

	assert.Equal(t, StateTransactionForm, m.state, "a rejected submit keeps the form open")
	assert.Error(t, m.form.err)
	assert.Len(t, led.AllTransactions(), 3, "nothing may be added")
}

func TestFilterPickerAppliesFilter(t *testing.T) {
	m, led, _ := newSessionFixture(t)

	m = update(t, m, "f")
	require.Equal(t, StateFilterPick, m.state)
	require.Len(t, m.choices, 3) // (all) + General + Food
	assert.True(t, m.choices[0].IsZero())

	m = update(t, m, "j", "enter")

	assert.Equal(t, StateList, m.state)
	filter, ok := led.CategoryFilter()
	require.True(t, ok)
	assert.Equal(t, ledger.DefaultCategoryName, filter.Name())
}

func TestFilterPickerClearsFilter(t *testing.T) {
	m, led, _ := newSessionFixture(t)
	require.NoError(t, led.SetCategoryFilter(testutil.Category(t, "Food")))

	m = update(t, m, "f")
	// The picker starts on the active filter; move up to "(all)".
	require.Equal(t, 2, m.choice)
	m = update(t, m, "k", "k", "enter")

	_, ok := led.CategoryFilter()
	assert.False(t, ok)
	assert.Equal(t, "filter cleared", m.status)
}

func TestThemeToggle(t *testing.T) {
	m, _, set := newSessionFixture(t)

	m = update(t, m, "T")
	assert.Equal(t, settings.ThemeDark, set.Theme())
	assert.Contains(t, m.status, "Dark")

	m = update(t, m, "T")
	assert.Equal(t, settings.ThemeLight, set.Theme())
}

func TestCurrencyInput(t *testing.T) {
	m, _, set := newSessionFixture(t)

	m = update(t, m, "$")
	require.Equal(t, StateCurrencyInput, m.state)
	assert.Equal(t, "$", m.input.Value())

	m.input.SetValue("£")
	m = update(t, m, "enter")

	assert.Equal(t, StateList, m.state)
	assert.Equal(t, "£", set.CurrencySymbol())
}

func TestCategoryAddAndRename(t *testing.T) {
	m, led, _ := newSessionFixture(t)

	m = update(t, m, "c")
	require.Equal(t, StateCategories, m.state)

	m = update(t, m, "a")
	require.Equal(t, StateCategoryInput, m.state)
	m.input.SetValue("Travel")
	m = update(t, m, "enter")

	require.Equal(t, StateCategories, m.state)
	names := make([]string, 0)
	for _, c := range led.Categories() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"General", "Food", "Travel"}, names)

	// Rename the highlighted category (General).
	m = update(t, m, "r")
	require.Equal(t, StateCategoryInput, m.state)
	m.input.SetValue("Misc")
	m = update(t, m, "enter")

	names = names[:0]
	for _, c := range led.Categories() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"Misc", "Food", "Travel"}, names)
}

func TestRemoveCategoryRefusals(t *testing.T) {
	m, led, _ := newSessionFixture(t)

	// Food (cursor 1) is referenced by the lunch transaction.
	m = update(t, m, "c", "j", "d")
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "still used")
	assert.Len(t, led.Categories(), 2)
}

func TestListViewShowsFilterSummary(t *testing.T) {
	m, led, _ := newSessionFixture(t)
	require.NoError(t, led.SetCategoryFilter(testutil.Category(t, "Food")))
	m.refresh()

	view := m.listView()
	assert.Contains(t, view, "1 of 3 transactions")
	assert.Contains(t, view, "Food")
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "-$12.50", formatAmount(-12.5, "$"))
	assert.Equal(t, "£2500.00", formatAmount(2500, "£"))
	assert.Equal(t, "$0.00", formatAmount(0, "$"))
}
