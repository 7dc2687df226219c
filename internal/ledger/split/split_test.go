package split

import (
	"math"
	"testing"

	"github.com/hruskam/roomledger/internal/ledger"
)

func members(ids ...int64) []*ledger.Membership {
	ms := make([]*ledger.Membership, len(ids))
	for i, id := range ids {
		ms[i] = &ledger.Membership{UserID: id, GroupID: 1}
	}
	return ms
}

func expense(amount float64, payerID int64) *ledger.Expense {
	return &ledger.Expense{ID: 10, GroupID: 1, PayerID: payerID, Description: "test", Amount: amount}
}

func TestEqualSplit(t *testing.T) {
	tests := []struct {
		name         string
		amount       float64
		payerID      int64
		participants []*ledger.Membership
		wantDebts    int
		wantShare    float64
	}{
		{
			name:         "three members split rent",
			amount:       900.00,
			payerID:      1,
			participants: members(1, 2, 3),
			wantDebts:    2,
			wantShare:    300.00,
		},
		{
			name:         "two members",
			amount:       50.00,
			payerID:      2,
			participants: members(1, 2),
			wantDebts:    1,
			wantShare:    25.00,
		},
		{
			name:         "single participant produces nothing",
			amount:       100.00,
			payerID:      1,
			participants: members(1),
			wantDebts:    0,
		},
		{
			name:         "no participants produces nothing",
			amount:       100.00,
			payerID:      1,
			participants: nil,
			wantDebts:    0,
		},
		{
			name:         "zero amount produces nothing",
			amount:       0,
			payerID:      1,
			participants: members(1, 2, 3),
			wantDebts:    0,
		},
		{
			name:         "negative amount produces nothing",
			amount:       -10.00,
			payerID:      1,
			participants: members(1, 2),
			wantDebts:    0,
		},
		{
			name:         "payer outside participant list owes nobody, everyone owes payer",
			amount:       60.00,
			payerID:      9,
			participants: members(1, 2, 3),
			wantDebts:    3,
			wantShare:    20.00,
		},
	}

	s := &EqualStrategy{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			debts := s.Compute(expense(tt.amount, tt.payerID), tt.participants)

			if len(debts) != tt.wantDebts {
				t.Fatalf("got %d debts, want %d", len(debts), tt.wantDebts)
			}
			for _, d := range debts {
				if d.DebtorID == d.CreditorID {
					t.Errorf("self-debt emitted for user %d", d.DebtorID)
				}
				if d.CreditorID != tt.payerID {
					t.Errorf("creditor = %d, want payer %d", d.CreditorID, tt.payerID)
				}
				if d.Settled {
					t.Error("new debt must start unsettled")
				}
				if math.Abs(d.Amount-tt.wantShare) > 0.01 {
					t.Errorf("share = %v, want %v", d.Amount, tt.wantShare)
				}
			}
		})
	}
}

func TestEqualSplitSumWithinRoundingTolerance(t *testing.T) {
	// 100 / 3 does not round cleanly; the rounded shares may drift from
	// the debtors' exact portion by up to a cent per participant.
	s := &EqualStrategy{}
	participants := members(1, 2, 3)
	exp := expense(100.00, 1)

	debts := s.Compute(exp, participants)
	if len(debts) != 2 {
		t.Fatalf("got %d debts, want 2", len(debts))
	}

	var sum float64
	for _, d := range debts {
		sum += d.Amount
	}
	// Debtors owe everything except the payer's own share.
	expected := exp.Amount - exp.Amount/float64(len(participants))
	tolerance := 0.01 * float64(len(participants))
	if math.Abs(sum-expected) > tolerance {
		t.Errorf("debt sum = %v, want within %v of %v", sum, tolerance, expected)
	}
}

func TestWeightedSplit(t *testing.T) {
	tests := []struct {
		name         string
		amount       float64
		payerID      int64
		weights      map[int64]float64
		participants []*ledger.Membership
		want         map[int64]float64 // debtor id -> amount
	}{
		{
			name:         "two-to-one weighting",
			amount:       90.00,
			payerID:      1,
			weights:      map[int64]float64{2: 2.0},
			participants: members(1, 2, 3),
			// sum of weights = 1 + 2 + 1 = 4
			want: map[int64]float64{2: 45.00, 3: 22.50},
		},
		{
			name:         "unmapped users default to weight 1",
			amount:       100.00,
			payerID:      1,
			weights:      nil,
			participants: members(1, 2),
			want:         map[int64]float64{2: 50.00},
		},
		{
			name:         "single participant produces nothing",
			amount:       100.00,
			payerID:      1,
			weights:      map[int64]float64{1: 3.0},
			participants: members(1),
			want:         map[int64]float64{},
		},
		{
			name:         "non-positive amount produces nothing",
			amount:       -5.00,
			payerID:      1,
			weights:      nil,
			participants: members(1, 2, 3),
			want:         map[int64]float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewWeightedStrategy(tt.weights)
			debts := s.Compute(expense(tt.amount, tt.payerID), tt.participants)

			if len(debts) != len(tt.want) {
				t.Fatalf("got %d debts, want %d", len(debts), len(tt.want))
			}
			for _, d := range debts {
				want, ok := tt.want[d.DebtorID]
				if !ok {
					t.Errorf("unexpected debtor %d", d.DebtorID)
					continue
				}
				if math.Abs(d.Amount-want) > 0.01 {
					t.Errorf("debtor %d owes %v, want %v", d.DebtorID, d.Amount, want)
				}
			}
		})
	}
}

func TestWeightedSplitEqualWeightsMatchesEqualSplit(t *testing.T) {
	participants := members(1, 2, 3, 4)
	exp := expense(123.45, 2)

	equal := (&EqualStrategy{}).Compute(exp, participants)
	weighted := NewWeightedStrategy(map[int64]float64{1: 1, 2: 1, 3: 1, 4: 1}).Compute(exp, participants)

	if len(equal) != len(weighted) {
		t.Fatalf("debt counts differ: equal %d, weighted %d", len(equal), len(weighted))
	}
	for i := range equal {
		if equal[i].DebtorID != weighted[i].DebtorID {
			t.Errorf("debtor order differs at %d: %d vs %d", i, equal[i].DebtorID, weighted[i].DebtorID)
		}
		if math.Abs(equal[i].Amount-weighted[i].Amount) > 0.01 {
			t.Errorf("amounts differ for debtor %d: %v vs %v",
				equal[i].DebtorID, equal[i].Amount, weighted[i].Amount)
		}
	}
}

func TestFactory(t *testing.T) {
	f := NewFactory()

	s, err := f.Create(TypeEqual, nil)
	if err != nil {
		t.Fatalf("Create(EQUAL) failed: %v", err)
	}
	if s.Type() != TypeEqual {
		t.Errorf("Type() = %s, want %s", s.Type(), TypeEqual)
	}

	s, err = f.CreateFromString("WEIGHTED", map[int64]float64{1: 2})
	if err != nil {
		t.Fatalf("CreateFromString(WEIGHTED) failed: %v", err)
	}
	if s.Type() != TypeWeighted {
		t.Errorf("Type() = %s, want %s", s.Type(), TypeWeighted)
	}

	if _, err := f.Create("LOTTERY", nil); err == nil {
		t.Error("expected error for unknown split type")
	}
}
