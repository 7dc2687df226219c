package split

import "github.com/hruskam/roomledger/internal/ledger"

// EqualStrategy divides the expense evenly among all participants. The
// payer is counted in the denominator (they covered their own share by
// paying) but never receives a debt.
type EqualStrategy struct{}

// Type returns the split type identifier.
func (s *EqualStrategy) Type() Type {
	return TypeEqual
}

// Compute emits one debt per non-payer participant, each owing
// amount / len(participants).
func (s *EqualStrategy) Compute(exp *ledger.Expense, participants []*ledger.Membership) []*ledger.Debt {
	var debts []*ledger.Debt

	if len(participants) <= 1 || exp.Amount <= 0 {
		return debts
	}

	share := exp.Amount / float64(len(participants))

	for _, p := range participants {
		if p.UserID == exp.PayerID {
			continue
		}
		debts = append(debts, newDebt(exp, p, share))
	}

	return debts
}
