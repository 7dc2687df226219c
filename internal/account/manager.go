package account

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/hruskam/roomledger/internal/ledger"
	"github.com/hruskam/roomledger/internal/ledger/split"
)

// Common errors
var (
	ErrInvalidArgument = errors.New("invalid argument")
)

// Manager is the one entry point external collaborators call to turn an
// expense into debts. It holds the currently selected split strategy;
// swapping it affects subsequent computations only, never debts already
// emitted.
type Manager struct {
	strategy split.Strategy
}

// NewManager creates a manager. A nil strategy selects the equal split.
func NewManager(strategy split.Strategy) *Manager {
	if strategy == nil {
		strategy = &split.EqualStrategy{}
	}
	return &Manager{strategy: strategy}
}

// SetStrategy swaps the split strategy for subsequent ComputeDebts calls.
// Fails with ErrInvalidArgument on a nil strategy.
func (m *Manager) SetStrategy(s split.Strategy) error {
	if s == nil {
		return fmt.Errorf("%w: nil strategy", ErrInvalidArgument)
	}
	m.strategy = s
	return nil
}

// Strategy returns the currently selected strategy.
func (m *Manager) Strategy() split.Strategy {
	return m.strategy
}

// ComputeDebts splits the expense across the group's membership list using
// the current strategy. Fails with ErrInvalidArgument when either argument
// is nil.
func (m *Manager) ComputeDebts(g *ledger.Group, exp *ledger.Expense) ([]*ledger.Debt, error) {
	if g == nil || exp == nil {
		return nil, fmt.Errorf("%w: group and expense are required", ErrInvalidArgument)
	}
	return m.strategy.Compute(exp, g.Members), nil
}

// ComputeDebtsFor splits the expense across an explicit participant subset
// instead of the full membership list.
func (m *Manager) ComputeDebtsFor(exp *ledger.Expense, participants []*ledger.Membership) ([]*ledger.Debt, error) {
	if exp == nil {
		return nil, fmt.Errorf("%w: expense is required", ErrInvalidArgument)
	}
	return m.strategy.Compute(exp, participants), nil
}

// ExportCSV writes one line per group expense:
// description, amount, date (YYYY-MM-DD), payer name. The payer id stands
// in for the name when it was not hydrated.
func (m *Manager) ExportCSV(g *ledger.Group, w io.Writer) error {
	if g == nil {
		return fmt.Errorf("%w: group is required", ErrInvalidArgument)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Description", "Amount", "Date", "Paid by"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, exp := range g.Expenses {
		payer := exp.PayerName
		if payer == "" {
			payer = strconv.FormatInt(exp.PayerID, 10)
		}
		row := []string{
			exp.Description,
			strconv.FormatFloat(exp.Amount, 'f', 2, 64),
			exp.CreatedAt.Format("2006-01-02"),
			payer,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
