package split

import "github.com/hruskam/roomledger/internal/ledger"

const defaultWeight = 1.0

// WeightedStrategy divides the expense in proportion to per-user weights
// fixed at construction. Users without an entry in the weight map count as
// weight 1.0, so an empty map reproduces the equal split.
type WeightedStrategy struct {
	weights map[int64]float64
}

// NewWeightedStrategy creates a weighted strategy. A nil map is allowed
// and treated as empty.
func NewWeightedStrategy(weights map[int64]float64) *WeightedStrategy {
	if weights == nil {
		weights = map[int64]float64{}
	}
	return &WeightedStrategy{weights: weights}
}

// Type returns the split type identifier.
func (s *WeightedStrategy) Type() Type {
	return TypeWeighted
}

// Compute emits one debt per non-payer participant, each owing
// amount * weight / sumWeights over all participants.
func (s *WeightedStrategy) Compute(exp *ledger.Expense, participants []*ledger.Membership) []*ledger.Debt {
	var debts []*ledger.Debt

	if len(participants) <= 1 || exp.Amount <= 0 {
		return debts
	}

	var sumWeights float64
	for _, p := range participants {
		sumWeights += s.weight(p.UserID)
	}
	if sumWeights <= 0 {
		return debts
	}

	for _, p := range participants {
		if p.UserID == exp.PayerID {
			continue
		}
		amount := exp.Amount * s.weight(p.UserID) / sumWeights
		debts = append(debts, newDebt(exp, p, amount))
	}

	return debts
}

func (s *WeightedStrategy) weight(userID int64) float64 {
	if w, ok := s.weights[userID]; ok {
		return w
	}
	return defaultWeight
}
