package ledger

import (
	"math"
	"time"
)

// DebtObserver is notified when a debt it is registered on gets settled.
// Implementations must not assume they can fail the settlement: the flag
// is already set by the time Notify runs.
type DebtObserver interface {
	Notify(d *Debt)
}

// Debt is a directed obligation from a debtor to a creditor, produced by
// splitting an expense. Settlement is binary and one-way: once settled, a
// debt is never reopened.
type Debt struct {
	ID         int64     `json:"id"`
	ExpenseID  int64     `json:"expense_id"`
	DebtorID   int64     `json:"debtor_id"`
	CreditorID int64     `json:"creditor_id"`
	Amount     float64   `json:"amount"`
	Settled    bool      `json:"settled"`
	CreatedAt  time.Time `json:"created_at"`

	// Populated via JOIN
	DebtorName   string `json:"debtor_name,omitempty"`
	CreditorName string `json:"creditor_name,omitempty"`

	observers []DebtObserver
}

// NewDebt creates an open debt. The amount is rounded to 2 decimal places
// here, at construction, not by the caller.
func NewDebt(debtorID, creditorID int64, amount float64) *Debt {
	return &Debt{
		DebtorID:   debtorID,
		CreditorID: creditorID,
		Amount:     round2(amount),
		Settled:    false,
	}
}

// RegisterObserver adds an observer. Registering the same instance twice
// is a no-op.
func (d *Debt) RegisterObserver(o DebtObserver) {
	for _, existing := range d.observers {
		if existing == o {
			return
		}
	}
	d.observers = append(d.observers, o)
}

// RemoveObserver removes an observer; no-op if it was never registered.
func (d *Debt) RemoveObserver(o DebtObserver) {
	for i, existing := range d.observers {
		if existing == o {
			d.observers = append(d.observers[:i], d.observers[i+1:]...)
			return
		}
	}
}

// MarkSettled transitions the debt from open to settled and notifies every
// registered observer, synchronously, in registration order. Calling it on
// an already-settled debt does nothing, so observers never hear about the
// same settlement twice. Persisting the flag is the caller's job; this is
// a pure in-memory transition.
func (d *Debt) MarkSettled() {
	if d.Settled {
		return
	}
	d.Settled = true
	for _, o := range d.observers {
		o.Notify(d)
	}
}

// round2 rounds half away from zero to 2 decimal places. All monetary
// values in the ledger are stored at this precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
