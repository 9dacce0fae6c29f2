// Package ledger implements the in-memory transaction store: an ordered
// sequence of transactions, a set of categories, an optional category
// filter, and change notifications to registered observers.
//
// Every mutating operation validates its input first and either fully
// applies or leaves the ledger untouched. After each successful mutation
// the ledger holds: every transaction's category is in the category set,
// the filter (when set) is in the category set, the set is never empty,
// and no category appears twice.
//
// A Ledger is not safe for concurrent use. All operations are synchronous
// and assume a single owner; callers with multiple goroutines must
// serialize access themselves.
package ledger

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/tallyho/tallyho/internal/common"
	"github.com/tallyho/tallyho/internal/model"
	"github.com/tallyho/tallyho/internal/settings"
)

// DefaultCategoryName is the category every new ledger starts with.
const DefaultCategoryName = "General"

// Ledger owns the transaction sequence and category set.
type Ledger struct {
	settings     *settings.Settings
	transactions []model.Transaction
	categories   []model.Category
	filter       model.Category
	observers    []Observer
}

// New creates an empty ledger containing only the default category.
// The settings object is shared with the presentation layer; mutations
// through SetCurrencySymbol and SetTheme are forwarded to it.
func New(set *settings.Settings) (*Ledger, error) {
	if set == nil {
		return nil, fmt.Errorf("%w: settings is nil", common.ErrInvalidArgument)
	}
	def, err := model.NewCategory(DefaultCategoryName)
	if err != nil {
		return nil, err
	}
	return &Ledger{
		settings:   set,
		categories: []model.Category{def},
	}, nil
}

// AddTransaction appends a transaction to the end of the sequence. The
// transaction must validate and its category must already be in the
// category set.
func (l *Ledger) AddTransaction(t model.Transaction) error {
	if err := l.validateTransaction(t); err != nil {
		return err
	}

	l.transactions = append(l.transactions, t)

	slog.Debug("added transaction",
		"category", t.Category.Name(),
		"amount", t.Amount,
		"date", t.Date.String())
	l.notify()
	return nil
}

// UpdateTransaction replaces the transaction at index with t, keeping its
// position. The replacement is validated like an added transaction.
func (l *Ledger) UpdateTransaction(index int, t model.Transaction) error {
	if err := l.checkIndex(index); err != nil {
		return err
	}
	if err := l.validateTransaction(t); err != nil {
		return err
	}

	l.transactions[index] = t

	slog.Debug("updated transaction", "index", index)
	l.notify()
	return nil
}

// RemoveTransaction deletes the transaction at index, shifting later
// transactions down by one position.
func (l *Ledger) RemoveTransaction(index int) error {
	if err := l.checkIndex(index); err != nil {
		return err
	}

	l.transactions = append(l.transactions[:index], l.transactions[index+1:]...)

	slog.Debug("removed transaction", "index", index)
	l.notify()
	return nil
}

// AddCategory inserts a category into the set. Adding a category that is
// already present is a no-op, not an error, and sends no notification.
func (l *Ledger) AddCategory(c model.Category) error {
	if c.IsZero() {
		return fmt.Errorf("%w: category is not set", common.ErrInvalidArgument)
	}
	if l.hasCategory(c) {
		return nil
	}

	l.categories = append(l.categories, c)

	slog.Debug("added category", "name", c.Name())
	l.notify()
	return nil
}

// RenameCategory replaces category from with to, repointing every
// transaction that references from and updating the filter if it matched.
// It reports false, changing nothing, when from or to is the zero
// category, from is absent, or to is already present.
func (l *Ledger) RenameCategory(from, to model.Category) bool {
	if from.IsZero() || to.IsZero() {
		return false
	}
	idx := l.categoryIndex(from)
	if idx < 0 || l.hasCategory(to) {
		return false
	}

	for i := range l.transactions {
		if l.transactions[i].Category == from {
			l.transactions[i].Category = to
		}
	}
	l.categories[idx] = to
	if l.filter == from {
		l.filter = to
	}

	slog.Debug("renamed category", "from", from.Name(), "to", to.Name())
	l.notify()
	return true
}

// RemoveCategory deletes a category from the set. It reports false,
// changing nothing, when c is the zero category, c is absent, any
// transaction still references c, or c is the last remaining category.
// When the removed category was the active filter, the filter is cleared.
func (l *Ledger) RemoveCategory(c model.Category) bool {
	if c.IsZero() {
		return false
	}
	idx := l.categoryIndex(c)
	if idx < 0 {
		return false
	}
	for _, t := range l.transactions {
		if t.Category == c {
			return false
		}
	}
	if len(l.categories) == 1 {
		return false
	}

	l.categories = append(l.categories[:idx], l.categories[idx+1:]...)
	if l.filter == c {
		l.filter = model.Category{}
	}

	slog.Debug("removed category", "name", c.Name())
	l.notify()
	return true
}

// SetCategoryFilter restricts what Transactions returns to one category.
// The zero category clears the filter. A non-zero category must be in the
// category set. The transaction sequence itself is never touched.
func (l *Ledger) SetCategoryFilter(c model.Category) error {
	if !c.IsZero() && !l.hasCategory(c) {
		return fmt.Errorf("%w: category %q not in ledger", common.ErrInvalidArgument, c.Name())
	}

	l.filter = c

	l.notify()
	return nil
}

// CategoryFilter returns the active filter and whether one is set.
func (l *Ledger) CategoryFilter() (model.Category, bool) {
	return l.filter, !l.filter.IsZero()
}

// SortTransactions stably sorts the full transaction sequence ascending
// by the given key. The active filter does not restrict what is sorted;
// transactions with equal keys keep their prior relative order.
func (l *Ledger) SortTransactions(key model.SortKey) error {
	switch key {
	case model.SortByDate:
		sort.SliceStable(l.transactions, func(i, j int) bool {
			return l.transactions[i].Date.Before(l.transactions[j].Date)
		})
	case model.SortByAmount:
		sort.SliceStable(l.transactions, func(i, j int) bool {
			return l.transactions[i].Amount < l.transactions[j].Amount
		})
	default:
		return fmt.Errorf("%w: unknown sort key %q", common.ErrInvalidArgument, key)
	}

	slog.Debug("sorted transactions", "key", string(key))
	l.notify()
	return nil
}

// Transactions returns a fresh snapshot of the sequence. With an active
// filter only matching transactions are returned, in their original
// relative order. Later mutations never alter a returned snapshot.
func (l *Ledger) Transactions() []model.Transaction {
	if l.filter.IsZero() {
		return l.AllTransactions()
	}

	out := make([]model.Transaction, 0, len(l.transactions))
	for _, t := range l.transactions {
		if t.Category == l.filter {
			out = append(out, t)
		}
	}
	return out
}

// AllTransactions returns a fresh snapshot of the full sequence regardless
// of the active filter. Positions in the returned slice are the indices
// UpdateTransaction and RemoveTransaction take.
func (l *Ledger) AllTransactions() []model.Transaction {
	out := make([]model.Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

// Categories returns a fresh snapshot of the category set in insertion
// order.
func (l *Ledger) Categories() []model.Category {
	out := make([]model.Category, len(l.categories))
	copy(out, l.categories)
	return out
}

// TransactionsByCategory returns the transactions in category c in
// sequence order, regardless of the active filter.
func (l *Ledger) TransactionsByCategory(c model.Category) ([]model.Transaction, error) {
	if c.IsZero() {
		return nil, fmt.Errorf("%w: category is not set", common.ErrInvalidArgument)
	}

	out := make([]model.Transaction, 0, len(l.transactions))
	for _, t := range l.transactions {
		if t.Category == c {
			out = append(out, t)
		}
	}
	return out, nil
}

// SetCurrencySymbol forwards to the shared settings and notifies
// observers so they refresh amount formatting.
func (l *Ledger) SetCurrencySymbol(symbol string) error {
	if err := l.settings.SetCurrencySymbol(symbol); err != nil {
		return err
	}
	l.notify()
	return nil
}

// SetTheme forwards to the shared settings and notifies observers so
// they refresh their colors.
func (l *Ledger) SetTheme(theme settings.Theme) error {
	if err := l.settings.SetTheme(theme); err != nil {
		return err
	}
	l.notify()
	return nil
}

func (l *Ledger) validateTransaction(t model.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if !l.hasCategory(t.Category) {
		return fmt.Errorf("%w: category %q not in ledger", common.ErrInvalidArgument, t.Category.Name())
	}
	return nil
}

func (l *Ledger) checkIndex(index int) error {
	if index < 0 || index >= len(l.transactions) {
		return fmt.Errorf("%w: index %d with %d transactions", common.ErrIndexOutOfRange, index, len(l.transactions))
	}
	return nil
}

func (l *Ledger) hasCategory(c model.Category) bool {
	return l.categoryIndex(c) >= 0
}

func (l *Ledger) categoryIndex(c model.Category) int {
	for i, existing := range l.categories {
		if existing == c {
			return i
		}
	}
	return -1
}

// invariants re-checks the ledger's consistency rules. Tests call it
// after every operation.
func (l *Ledger) invariants() error {
	if len(l.categories) == 0 {
		return fmt.Errorf("category set is empty")
	}
	seen := make(map[model.Category]bool, len(l.categories))
	for _, c := range l.categories {
		if seen[c] {
			return fmt.Errorf("duplicate category %q", c.Name())
		}
		seen[c] = true
	}
	for i, t := range l.transactions {
		if !seen[t.Category] {
			return fmt.Errorf("transaction %d references unknown category %q", i, t.Category.Name())
		}
	}
	if !l.filter.IsZero() && !seen[l.filter] {
		return fmt.Errorf("filter %q not in category set", l.filter.Name())
	}
	return nil
}
