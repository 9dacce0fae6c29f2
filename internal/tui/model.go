// Package tui is the interactive terminal session over a ledger. The
// session registers itself as a ledger observer and repaints whenever a
// mutation broadcast arrives, so the table always shows settled state.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tallyho/tallyho/internal/cli"
	"github.com/tallyho/tallyho/internal/ledger"
	"github.com/tallyho/tallyho/internal/model"
	"github.com/tallyho/tallyho/internal/settings"
)

// State represents the current state of the session.
type State int

// Session states.
const (
	StateList State = iota
	StateTransactionForm
	StateCategories
	StateCategoryInput
	StateFilterPick
	StateCurrencyInput
)

// inputMode says what the shared single-line input is collecting.
type inputMode int

const (
	inputAddCategory inputMode = iota
	inputRenameCategory
	inputCurrency
)

// Model holds the session state.
type Model struct {
	ledger     *ledger.Ledger
	settings   *settings.Settings
	relay      *changeRelay
	keymap     KeyMap
	help       help.Model
	table      table.Model
	form       transactionForm
	input      textinput.Model
	renameFrom model.Category
	status     string
	visible    []model.Transaction
	indices    []int
	choices    []model.Category
	inputMode  inputMode
	choice     int
	catCursor  int
	total      int
	width      int
	height     int
	state      State
	statusErr  bool
	quitting   bool
}

// newModel creates a session over the given ledger.
func newModel(led *ledger.Ledger, set *settings.Settings) Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Amount", Width: 12},
			{Title: "Category", Width: 16},
			{Title: "Description", Width: 38},
		}),
		table.WithFocused(true),
		table.WithHeight(16),
	)

	input := textinput.New()
	input.CharLimit = 64

	m := Model{
		ledger:   led,
		settings: set,
		relay:    newChangeRelay(),
		keymap:   DefaultKeyMap(),
		help:     help.New(),
		table:    t,
		input:    input,
		state:    StateList,
		width:    80,
		height:   24,
	}
	m.applyTheme()
	m.refresh()
	return m
}

// Init starts listening for ledger broadcasts.
func (m Model) Init() tea.Cmd {
	return m.relay.wait()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(4, msg.Height-7))
		m.updateColumnWidths()
		return m, nil

	case ledgerChangedMsg:
		m.applyTheme()
		m.refresh()
		return m, m.relay.wait()

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}

		switch m.state {
		case StateTransactionForm:
			return m.updateTransactionForm(msg)
		case StateCategories:
			return m.updateCategories(msg)
		case StateCategoryInput, StateCurrencyInput:
			return m.updateInput(msg)
		case StateFilterPick:
			return m.updateFilterPick(msg)
		default:
			return m.updateList(msg)
		}
	}

	return m, nil
}

// updateList handles keys on the main transaction table.
func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keymap.Add):
		m.form = newTransactionForm(-1, nil, m.prefillCategoryName())
		m.state = StateTransactionForm
		return m, textinput.Blink

	case key.Matches(msg, m.keymap.Edit):
		if idx, ok := m.selectedIndex(); ok {
			tx := m.visible[m.table.Cursor()]
			m.form = newTransactionForm(idx, &tx, "")
			m.state = StateTransactionForm
			return m, textinput.Blink
		}
		return m, nil

	case key.Matches(msg, m.keymap.Delete):
		if idx, ok := m.selectedIndex(); ok {
			if err := m.ledger.RemoveTransaction(idx); err != nil {
				m.setError(err.Error())
			} else {
				m.setStatus("transaction removed")
			}
		}
		return m, nil

	case key.Matches(msg, m.keymap.Categories):
		m.catCursor = 0
		m.state = StateCategories
		return m, nil

	case key.Matches(msg, m.keymap.Filter):
		m.choices = append([]model.Category{{}}, m.ledger.Categories()...)
		m.choice = 0
		if filter, ok := m.ledger.CategoryFilter(); ok {
			for i, c := range m.choices {
				if c == filter {
					m.choice = i
					break
				}
			}
		}
		m.state = StateFilterPick
		return m, nil

	case key.Matches(msg, m.keymap.SortDate):
		if err := m.ledger.SortTransactions(model.SortByDate); err != nil {
			m.setError(err.Error())
		} else {
			m.setStatus("sorted by date")
		}
		return m, nil

	case key.Matches(msg, m.keymap.SortAmount):
		if err := m.ledger.SortTransactions(model.SortByAmount); err != nil {
			m.setError(err.Error())
		} else {
			m.setStatus("sorted by amount")
		}
		return m, nil

	case key.Matches(msg, m.keymap.Currency):
		m.inputMode = inputCurrency
		m.input.Placeholder = "$"
		m.input.SetValue(m.settings.CurrencySymbol())
		m.input.Focus()
		m.state = StateCurrencyInput
		return m, textinput.Blink

	case key.Matches(msg, m.keymap.Theme):
		next := settings.ThemeDark
		if m.settings.Theme() == settings.ThemeDark {
			next = settings.ThemeLight
		}
		if err := m.ledger.SetTheme(next); err != nil {
			m.setError(err.Error())
		} else {
			m.setStatus(fmt.Sprintf("theme set to %s", next))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// updateTransactionForm handles the add/edit form.
func (m Model) updateTransactionForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = StateList
		return m, nil

	case "enter":
		tx, err := m.form.transaction()
		if err != nil {
			m.form.err = err
			return m, nil
		}

		if m.form.editIndex >= 0 {
			err = m.ledger.UpdateTransaction(m.form.editIndex, tx)
		} else {
			err = m.ledger.AddTransaction(tx)
		}
		if err != nil {
			m.form.err = err
			return m, nil
		}

		if m.form.editIndex >= 0 {
			m.setStatus("transaction updated")
		} else {
			m.setStatus("transaction added")
		}
		m.state = StateList
		return m, nil
	}

	cmd := m.form.Update(msg)
	return m, cmd
}

// updateCategories handles keys on the category list.
func (m Model) updateCategories(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	categories := m.ledger.Categories()

	switch msg.String() {
	case "esc", "c", "q":
		m.state = StateList

	case "j", "down":
		if m.catCursor < len(categories)-1 {
			m.catCursor++
		}

	case "k", "up":
		if m.catCursor > 0 {
			m.catCursor--
		}

	case "a":
		m.inputMode = inputAddCategory
		m.input.Placeholder = "category name"
		m.input.SetValue("")
		m.input.Focus()
		m.state = StateCategoryInput
		return m, textinput.Blink

	case "r":
		if m.catCursor < len(categories) {
			m.renameFrom = categories[m.catCursor]
			m.inputMode = inputRenameCategory
			m.input.Placeholder = "new name"
			m.input.SetValue(m.renameFrom.Name())
			m.input.Focus()
			m.state = StateCategoryInput
			return m, textinput.Blink
		}

	case "d", "x":
		if m.catCursor < len(categories) {
			c := categories[m.catCursor]
			if m.ledger.RemoveCategory(c) {
				m.setStatus(fmt.Sprintf("removed %q", c.Name()))
				if m.catCursor > 0 {
					m.catCursor--
				}
			} else {
				m.setError(m.removeCategoryRefusal(c))
			}
		}
	}

	return m, nil
}

// removeCategoryRefusal explains why the ledger refused a removal.
func (m *Model) removeCategoryRefusal(c model.Category) string {
	if txns, err := m.ledger.TransactionsByCategory(c); err == nil && len(txns) > 0 {
		return fmt.Sprintf("%q is still used by %d transaction(s)", c.Name(), len(txns))
	}
	if len(m.ledger.Categories()) == 1 {
		return "cannot remove the only category"
	}
	return fmt.Sprintf("cannot remove %q", c.Name())
}

// updateInput handles the shared single-line input.
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.Blur()
		m.state = m.inputReturnState()
		return m, nil

	case "enter":
		value := strings.TrimSpace(m.input.Value())
		m.submitInput(value)
		m.input.Blur()
		m.state = m.inputReturnState()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitInput applies the input value according to the current mode.
func (m *Model) submitInput(value string) {
	switch m.inputMode {
	case inputCurrency:
		if err := m.ledger.SetCurrencySymbol(value); err != nil {
			m.setError(err.Error())
		} else {
			m.setStatus(fmt.Sprintf("currency symbol set to %s", value))
		}

	case inputAddCategory:
		c, err := model.NewCategory(value)
		if err != nil {
			m.setError(err.Error())
			return
		}
		if err := m.ledger.AddCategory(c); err != nil {
			m.setError(err.Error())
		} else {
			m.setStatus(fmt.Sprintf("category %q saved", c.Name()))
		}

	case inputRenameCategory:
		to, err := model.NewCategory(value)
		if err != nil {
			m.setError(err.Error())
			return
		}
		if m.ledger.RenameCategory(m.renameFrom, to) {
			m.setStatus(fmt.Sprintf("renamed %q to %q", m.renameFrom.Name(), to.Name()))
		} else {
			m.setError(fmt.Sprintf("cannot rename %q to %q", m.renameFrom.Name(), to.Name()))
		}
	}
}

// inputReturnState is where the input hands control back to.
func (m *Model) inputReturnState() State {
	if m.inputMode == inputCurrency {
		return StateList
	}
	return StateCategories
}

// updateFilterPick handles the category filter picker.
func (m Model) updateFilterPick(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = StateList

	case "j", "down":
		if m.choice < len(m.choices)-1 {
			m.choice++
		}

	case "k", "up":
		if m.choice > 0 {
			m.choice--
		}

	case "enter":
		choice := m.choices[m.choice]
		if err := m.ledger.SetCategoryFilter(choice); err != nil {
			m.setError(err.Error())
		} else if choice.IsZero() {
			m.setStatus("filter cleared")
		} else {
			m.setStatus(fmt.Sprintf("showing only %q", choice.Name()))
		}
		m.state = StateList
	}

	return m, nil
}

// View renders the session.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case StateTransactionForm:
		return m.form.View(m.titleStyle(), m.mutedStyle())
	case StateCategories:
		return m.categoriesView(false)
	case StateCategoryInput:
		return m.categoriesView(true)
	case StateFilterPick:
		return m.filterView()
	case StateCurrencyInput:
		return m.currencyView()
	default:
		return m.listView()
	}
}

// listView renders the transaction table with header, status and help.
func (m Model) listView() string {
	subtitle := fmt.Sprintf("%d transactions", m.total)
	if filter, ok := m.ledger.CategoryFilter(); ok {
		subtitle = fmt.Sprintf("%d of %d transactions · filter: %s",
			len(m.visible), m.total, filter.Name())
	}

	sections := []string{
		m.titleStyle().Render(cli.LedgerIcon + " Ledger"),
		m.mutedStyle().Render(subtitle),
		m.table.View(),
	}
	if s := m.statusView(); s != "" {
		sections = append(sections, s)
	}
	sections = append(sections, m.help.View(m.keymap))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// categoriesView renders the category list, with the input line when a
// category is being added or renamed.
func (m Model) categoriesView(withInput bool) string {
	categories := m.ledger.Categories()
	filter, hasFilter := m.ledger.CategoryFilter()

	lines := []string{m.titleStyle().Render("Categories"), ""}
	for i, c := range categories {
		cursor := "  "
		if i == m.catCursor {
			cursor = "▸ "
		}
		marker := ""
		if hasFilter && c == filter {
			marker = " ●"
		}
		count := 0
		if txns, err := m.ledger.TransactionsByCategory(c); err == nil {
			count = len(txns)
		}
		lines = append(lines, fmt.Sprintf("%s%s (%d)%s", cursor, c.Name(), count, marker))
	}

	if withInput {
		label := "New category:"
		if m.inputMode == inputRenameCategory {
			label = fmt.Sprintf("Rename %q to:", m.renameFrom.Name())
		}
		lines = append(lines, "", label, m.input.View())
	} else {
		if s := m.statusView(); s != "" {
			lines = append(lines, "", s)
		}
		lines = append(lines, "", m.mutedStyle().Render("a add · r rename · d remove · esc back"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// filterView renders the category filter picker.
func (m Model) filterView() string {
	lines := []string{m.titleStyle().Render("Filter by category"), ""}
	for i, c := range m.choices {
		cursor := "  "
		if i == m.choice {
			cursor = "▸ "
		}
		name := "(all transactions)"
		if !c.IsZero() {
			name = c.Name()
		}
		lines = append(lines, cursor+name)
	}
	lines = append(lines, "", m.mutedStyle().Render("enter apply · esc cancel"))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// currencyView renders the currency symbol input.
func (m Model) currencyView() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.titleStyle().Render("Currency symbol"),
		"",
		m.input.View(),
		"",
		m.mutedStyle().Render("enter save · esc cancel"),
	)
}

// refresh rebuilds the visible rows and their sequence-index mapping from
// the ledger.
func (m *Model) refresh() {
	all := m.ledger.AllTransactions()
	filter, filtered := m.ledger.CategoryFilter()

	visible := make([]model.Transaction, 0, len(all))
	indices := make([]int, 0, len(all))
	for i, tx := range all {
		if filtered && tx.Category != filter {
			continue
		}
		visible = append(visible, tx)
		indices = append(indices, i)
	}
	m.visible = visible
	m.indices = indices
	m.total = len(all)

	symbol := m.settings.CurrencySymbol()
	rows := make([]table.Row, 0, len(visible))
	for _, tx := range visible {
		rows = append(rows, table.Row{
			tx.Date.String(),
			formatAmount(tx.Amount, symbol),
			tx.Category.Name(),
			tx.Description,
		})
	}
	m.table.SetRows(rows)

	if c := m.table.Cursor(); c >= len(visible) && len(visible) > 0 {
		m.table.SetCursor(len(visible) - 1)
	}
}

// selectedIndex resolves the highlighted row to its position in the full
// sequence, which is what the ledger's index operations take.
func (m *Model) selectedIndex() (int, bool) {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.indices) {
		return 0, false
	}
	return m.indices[c], true
}

// prefillCategoryName seeds the add form with the active filter category.
func (m *Model) prefillCategoryName() string {
	if filter, ok := m.ledger.CategoryFilter(); ok {
		return filter.Name()
	}
	return ""
}

// applyTheme restyles the table from the current settings colours.
func (m *Model) applyTheme() {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.settings.ForegroundColor()).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Bold(true).
		Foreground(m.settings.BackgroundColor()).
		Background(m.settings.ForegroundColor())
	m.table.SetStyles(s)
}

// updateColumnWidths adjusts column widths to the terminal width.
func (m *Model) updateColumnWidths() {
	available := m.width - 6
	if available < 60 {
		available = 60
	}

	m.table.SetColumns([]table.Column{
		{Title: "Date", Width: max(10, int(float64(available)*0.15))},
		{Title: "Amount", Width: max(10, int(float64(available)*0.15))},
		{Title: "Category", Width: max(12, int(float64(available)*0.25))},
		{Title: "Description", Width: max(15, int(float64(available)*0.45))},
	})
}

func (m Model) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(m.settings.ForegroundColor())
}

func (m Model) mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(cli.SubtleColor)
}

func (m Model) statusView() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return cli.FormatError(m.status)
	}
	return cli.FormatSuccess(m.status)
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(s string) {
	m.status, m.statusErr = s, true
}

// formatAmount renders a signed amount without colour; the table applies
// its own row styling.
func formatAmount(amount float64, symbol string) string {
	if amount < 0 {
		return fmt.Sprintf("-%s%.2f", symbol, -amount)
	}
	return fmt.Sprintf("%s%.2f", symbol, amount)
}

// Run starts the interactive ledger session and blocks until the user
// quits or ctx is canceled.
func Run(ctx context.Context, led *ledger.Ledger, set *settings.Settings) error {
	m := newModel(led, set)

	led.AddObserver(m.relay)
	defer led.RemoveObserver(m.relay)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("session failed: %w", err)
	}
	return nil
}
