package account

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/hruskam/roomledger/internal/ledger"
	"github.com/hruskam/roomledger/internal/ledger/split"
)

func fixtureGroup() *ledger.Group {
	g := &ledger.Group{ID: 1, Name: "Flat 4B"}
	g.AddMember(&ledger.User{ID: 1, Name: "Alice"}, true)
	g.AddMember(&ledger.User{ID: 2, Name: "Bob"}, false)
	g.AddMember(&ledger.User{ID: 3, Name: "Cleo"}, false)
	return g
}

func TestComputeDebtsRequiresArguments(t *testing.T) {
	m := NewManager(nil)
	g := fixtureGroup()
	exp := ledger.NewExpense("Rent", 900, 1, 1)

	tests := []struct {
		name  string
		group *ledger.Group
		exp   *ledger.Expense
	}{
		{"nil group", nil, exp},
		{"nil expense", g, nil},
		{"both nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.ComputeDebts(tt.group, tt.exp); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestComputeDebtsUsesEqualSplitByDefault(t *testing.T) {
	m := NewManager(nil)
	g := fixtureGroup()

	debts, err := m.ComputeDebts(g, ledger.NewExpense("Rent", 900, 1, 1))
	if err != nil {
		t.Fatalf("ComputeDebts failed: %v", err)
	}
	if len(debts) != 2 {
		t.Fatalf("got %d debts, want 2", len(debts))
	}
	for _, d := range debts {
		if math.Abs(d.Amount-300.00) > 0.01 {
			t.Errorf("debt amount = %v, want 300.00", d.Amount)
		}
	}
}

func TestSetStrategy(t *testing.T) {
	m := NewManager(nil)

	if err := m.SetStrategy(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("SetStrategy(nil) error = %v, want ErrInvalidArgument", err)
	}

	weighted := split.NewWeightedStrategy(map[int64]float64{2: 3.0})
	if err := m.SetStrategy(weighted); err != nil {
		t.Fatalf("SetStrategy failed: %v", err)
	}

	// Weights 1/3/1: Bob owes 3/5 of 100, Cleo 1/5.
	debts, err := m.ComputeDebts(fixtureGroup(), ledger.NewExpense("Groceries", 100, 1, 1))
	if err != nil {
		t.Fatalf("ComputeDebts failed: %v", err)
	}
	want := map[int64]float64{2: 60.00, 3: 20.00}
	for _, d := range debts {
		if math.Abs(d.Amount-want[d.DebtorID]) > 0.01 {
			t.Errorf("debtor %d owes %v, want %v", d.DebtorID, d.Amount, want[d.DebtorID])
		}
	}
}

func TestExportCSV(t *testing.T) {
	g := fixtureGroup()
	exp := ledger.NewExpense("Rent", 900, 1, 1)
	exp.PayerName = "Alice"
	exp.CreatedAt = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	g.Expenses = append(g.Expenses, exp)

	unnamed := ledger.NewExpense("Internet", 45.5, 2, 1)
	unnamed.CreatedAt = time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC)
	g.Expenses = append(g.Expenses, unnamed)

	var sb strings.Builder
	if err := NewManager(nil).ExportCSV(g, &sb); err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	want := []string{
		"Description,Amount,Date,Paid by",
		"Rent,900.00,2026-03-15,Alice",
		"Internet,45.50,2026-03-16,2",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), sb.String())
	}
	for i, line := range want {
		if lines[i] != line {
			t.Errorf("line %d = %q, want %q", i, lines[i], line)
		}
	}
}

func TestExportCSVRequiresGroup(t *testing.T) {
	var sb strings.Builder
	if err := NewManager(nil).ExportCSV(nil, &sb); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("error = %v, want ErrInvalidArgument", err)
	}
}
