package split

import (
	"fmt"

	"github.com/hruskam/roomledger/internal/ledger"
)

// Type identifies a split strategy.
type Type string

const (
	TypeEqual    Type = "EQUAL"
	TypeWeighted Type = "WEIGHTED"
)

// Strategy converts an expense plus an ordered participant list into open
// debts against the payer. Implementations are pure: no I/O, no mutation
// of the inputs.
//
// Contract shared by all strategies:
//   - one participant or none yields no debts
//   - a non-positive expense amount yields no debts
//   - the payer never owes themselves: participants matching the payer are
//     skipped, so debtor != creditor on every emitted debt
//   - amounts are rounded to 2 decimals at debt construction; the rounded
//     shares are not reconciled back to the expense total, so the sum may
//     drift from it by up to a cent per participant
type Strategy interface {
	Compute(exp *ledger.Expense, participants []*ledger.Membership) []*ledger.Debt

	Type() Type
}

// Factory creates split strategies by type.
type Factory struct{}

// NewFactory creates a strategy factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the strategy for the given type. Weighted strategies are
// created with the supplied per-user weights; the equal strategy ignores
// them.
func (f *Factory) Create(t Type, weights map[int64]float64) (Strategy, error) {
	switch t {
	case TypeEqual:
		return &EqualStrategy{}, nil
	case TypeWeighted:
		return NewWeightedStrategy(weights), nil
	default:
		return nil, fmt.Errorf("unknown split type: %s", t)
	}
}

// CreateFromString creates a strategy from a string type (useful for API
// requests).
func (f *Factory) CreateFromString(t string, weights map[int64]float64) (Strategy, error) {
	return f.Create(Type(t), weights)
}

// newDebt builds one open debt for an expense, carrying over whatever
// display names are already hydrated.
func newDebt(exp *ledger.Expense, p *ledger.Membership, amount float64) *ledger.Debt {
	d := ledger.NewDebt(p.UserID, exp.PayerID, amount)
	d.ExpenseID = exp.ID
	d.DebtorName = p.Username
	d.CreditorName = exp.PayerName
	return d
}
