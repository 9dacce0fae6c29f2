package ledger

// Observer receives change notifications from a Ledger. The broadcast
// carries no payload; observers re-query the ledger for fresh snapshots.
type Observer interface {
	// LedgerChanged is called once per successful mutation, after the
	// mutation has fully applied.
	LedgerChanged()
}

// AddObserver registers an observer. Observers are compared by identity;
// registering one that is already registered is a no-op.
func (l *Ledger) AddObserver(o Observer) {
	if o == nil {
		return
	}
	for _, existing := range l.observers {
		if existing == o {
			return
		}
	}
	l.observers = append(l.observers, o)
}

// RemoveObserver deregisters an observer. Removing one that is not
// registered is a no-op.
func (l *Ledger) RemoveObserver(o Observer) {
	for i, existing := range l.observers {
		if existing == o {
			l.observers = append(l.observers[:i], l.observers[i+1:]...)
			return
		}
	}
}

func (l *Ledger) notify() {
	for _, o := range l.observers {
		o.LedgerChanged()
	}
}
