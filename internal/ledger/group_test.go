package ledger

import (
	"math"
	"testing"
)

// rentGroup builds the canonical fixture: A pays 900 rent for A, B, C,
// split equally, so B and C each owe A 300.
func rentGroup() *Group {
	g := &Group{ID: 1, Name: "Flat 4B"}
	g.AddMember(&User{ID: 1, Name: "A"}, true)
	g.AddMember(&User{ID: 2, Name: "B"}, false)
	g.AddMember(&User{ID: 3, Name: "C"}, false)

	exp := NewExpense("Rent", 900.00, 1, g.ID)
	exp.Debts = []*Debt{
		NewDebt(2, 1, 300.00),
		NewDebt(3, 1, 300.00),
	}
	g.Expenses = append(g.Expenses, exp)
	return g
}

func TestAddMemberRejectsDuplicates(t *testing.T) {
	g := &Group{ID: 1}
	u := &User{ID: 7, Name: "Dana"}

	if _, err := g.AddMember(u, false); err != nil {
		t.Fatalf("first AddMember failed: %v", err)
	}
	if _, err := g.AddMember(u, true); err != ErrDuplicateMember {
		t.Fatalf("second AddMember error = %v, want ErrDuplicateMember", err)
	}
	if len(g.Members) != 1 {
		t.Errorf("membership count = %d after failed add, want 1", len(g.Members))
	}
}

func TestRemoveMember(t *testing.T) {
	g := rentGroup()

	g.RemoveMember(3)
	if g.IsMember(3) {
		t.Error("member 3 still present after removal")
	}

	// Removing a non-member is a no-op.
	g.RemoveMember(99)
	if len(g.Members) != 2 {
		t.Errorf("membership count = %d, want 2", len(g.Members))
	}
}

func TestMembershipPredicates(t *testing.T) {
	g := rentGroup()

	if !g.IsMember(2) || g.IsMember(99) {
		t.Error("IsMember gave wrong answers")
	}
	if !g.IsAdmin(1) {
		t.Error("creator should be admin")
	}
	if g.IsAdmin(2) {
		t.Error("member 2 should not be admin")
	}
	if g.IsAdmin(99) {
		t.Error("non-member should not be admin")
	}
}

func TestBalanceOf(t *testing.T) {
	g := rentGroup()

	tests := []struct {
		userID int64
		want   float64
	}{
		{1, 600.00},
		{2, -300.00},
		{3, -300.00},
		{99, 0},
	}
	for _, tt := range tests {
		if got := g.BalanceOf(tt.userID); math.Abs(got-tt.want) > 0.01 {
			t.Errorf("BalanceOf(%d) = %v, want %v", tt.userID, got, tt.want)
		}
	}
}

func TestBalancesConserveToZero(t *testing.T) {
	g := rentGroup()

	// Every debt counts once positive for the creditor and once negative
	// for the debtor, so the group nets out to zero.
	var sum float64
	for _, m := range g.Members {
		sum += g.BalanceOf(m.UserID)
	}
	if math.Abs(sum) > 0.01 {
		t.Errorf("balances sum to %v, want 0", sum)
	}
}

func TestSettlementUpdatesBalancesImmediately(t *testing.T) {
	g := rentGroup()

	g.AllDebts()[0].MarkSettled() // B's debt to A

	if got := g.BalanceOf(1); math.Abs(got-300.00) > 0.01 {
		t.Errorf("BalanceOf(A) = %v after settlement, want 300.00", got)
	}
	if got := g.BalanceOf(2); math.Abs(got) > 0.01 {
		t.Errorf("BalanceOf(B) = %v after settlement, want 0", got)
	}
	if got := g.BalanceOf(3); math.Abs(got+300.00) > 0.01 {
		t.Errorf("BalanceOf(C) = %v after settlement, want -300.00", got)
	}
	if len(g.UnsettledDebts()) != 1 {
		t.Errorf("unsettled debts = %d, want 1", len(g.UnsettledDebts()))
	}
}

func TestAllDebtsFlattensAcrossExpenses(t *testing.T) {
	g := rentGroup()
	groceries := NewExpense("Groceries", 60.00, 2, g.ID)
	groceries.Debts = []*Debt{
		NewDebt(1, 2, 20.00),
		NewDebt(3, 2, 20.00),
	}
	g.Expenses = append(g.Expenses, groceries)

	if got := len(g.AllDebts()); got != 4 {
		t.Errorf("AllDebts() = %d debts, want 4", got)
	}
}

func TestStatistics(t *testing.T) {
	g := rentGroup()
	g.AllDebts()[0].MarkSettled()

	stats := g.Statistics()

	if stats.Total != 2 || stats.Settled != 1 || stats.Unsettled != 1 {
		t.Errorf("counts = %d/%d/%d, want 2/1/1", stats.Total, stats.Settled, stats.Unsettled)
	}
	if math.Abs(stats.TotalAmount-600.00) > 0.01 {
		t.Errorf("TotalAmount = %v, want 600.00", stats.TotalAmount)
	}
	if math.Abs(stats.UnsettledAmount-300.00) > 0.01 {
		t.Errorf("UnsettledAmount = %v, want 300.00", stats.UnsettledAmount)
	}
}

func TestAuthorizeAdminAction(t *testing.T) {
	g := rentGroup()

	tests := []struct {
		name    string
		userID  int64
		wantOK  bool
		wantMsg string
	}{
		{"admin passes", 1, true, ""},
		{"member without admin flag", 2, false, "only a group admin may delete the group"},
		{"non-member", 99, false, "you are not a member of this group"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := g.AuthorizeAdminAction(tt.userID, "delete the group")
			if ok != tt.wantOK {
				t.Errorf("ok = %v, want %v", ok, tt.wantOK)
			}
			if msg != tt.wantMsg {
				t.Errorf("message = %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestNewExpenseRoundsAmount(t *testing.T) {
	exp := NewExpense("Utilities", 33.335, 1, 1)
	if math.Abs(exp.Amount-33.34) > 1e-9 {
		t.Errorf("amount = %v, want 33.34", exp.Amount)
	}
}
