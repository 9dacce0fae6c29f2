package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tallyho/tallyho/internal/ledger"
)

// ledgerChangedMsg tells the session to rebuild its rows from the ledger.
type ledgerChangedMsg struct{}

// changeRelay forwards ledger broadcasts into the bubbletea message loop.
// Sends coalesce: a burst of mutations between two reads still wakes the
// session exactly once.
type changeRelay struct {
	ch chan struct{}
}

var _ ledger.Observer = (*changeRelay)(nil)

func newChangeRelay() *changeRelay {
	return &changeRelay{ch: make(chan struct{}, 1)}
}

// LedgerChanged implements ledger.Observer.
func (r *changeRelay) LedgerChanged() {
	select {
	case r.ch <- struct{}{}:
	default:
	}
}

// wait blocks until the next broadcast and converts it into a message.
func (r *changeRelay) wait() tea.Cmd {
	return func() tea.Msg {
		<-r.ch
		return ledgerChangedMsg{}
	}
}
