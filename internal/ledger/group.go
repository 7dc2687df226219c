package ledger

import (
	"errors"
	"fmt"
	"time"
)

// Common errors
var (
	ErrDuplicateMember = errors.New("user is already a member of this group")
)

// Membership binds one user to one group. Its identity is the
// (user, group) pair; the Group aggregate enforces uniqueness.
type Membership struct {
	UserID   int64     `json:"user_id"`
	GroupID  int64     `json:"group_id"`
	IsAdmin  bool      `json:"is_admin"`
	JoinedAt time.Time `json:"joined_at"`

	// Populated via JOIN
	Username string `json:"username,omitempty"`
}

// Group owns its memberships and expenses and derives every balance and
// statistic from the debts hanging off those expenses. It performs no I/O;
// callers hydrate it and persist whatever it mutates.
type Group struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`

	Members  []*Membership `json:"members,omitempty"`
	Expenses []*Expense    `json:"expenses,omitempty"`
}

// DebtStatistics summarizes the debts of a group.
type DebtStatistics struct {
	Total           int     `json:"total"`
	Settled         int     `json:"settled"`
	Unsettled       int     `json:"unsettled"`
	TotalAmount     float64 `json:"total_amount"`
	UnsettledAmount float64 `json:"unsettled_amount"`
}

// AddMember adds a user to the group. Fails with ErrDuplicateMember if the
// user already holds a membership here; the membership list is unchanged
// in that case.
func (g *Group) AddMember(u *User, isAdmin bool) (*Membership, error) {
	if g.IsMember(u.ID) {
		return nil, ErrDuplicateMember
	}
	m := &Membership{
		UserID:   u.ID,
		GroupID:  g.ID,
		IsAdmin:  isAdmin,
		JoinedAt: time.Now(),
		Username: u.Name,
	}
	g.Members = append(g.Members, m)
	return m, nil
}

// RemoveMember drops the user's membership; no-op if they are not a
// member. Outstanding-debt checks are a caller policy, not enforced here.
func (g *Group) RemoveMember(userID int64) {
	for i, m := range g.Members {
		if m.UserID == userID {
			g.Members = append(g.Members[:i], g.Members[i+1:]...)
			return
		}
	}
}

// Rename changes the group name.
func (g *Group) Rename(name string) {
	g.Name = name
}

// MembershipOf returns the user's membership, or nil.
func (g *Group) MembershipOf(userID int64) *Membership {
	for _, m := range g.Members {
		if m.UserID == userID {
			return m
		}
	}
	return nil
}

// IsMember reports whether the user holds a membership in this group.
func (g *Group) IsMember(userID int64) bool {
	return g.MembershipOf(userID) != nil
}

// IsAdmin reports whether the user is a member with the admin flag set.
func (g *Group) IsAdmin(userID int64) bool {
	m := g.MembershipOf(userID)
	return m != nil && m.IsAdmin
}

// AllDebts flattens the debts of every expense in the group.
func (g *Group) AllDebts() []*Debt {
	var debts []*Debt
	for _, e := range g.Expenses {
		debts = append(debts, e.Debts...)
	}
	return debts
}

// UnsettledDebts returns only the debts still open.
func (g *Group) UnsettledDebts() []*Debt {
	var debts []*Debt
	for _, d := range g.AllDebts() {
		if !d.Settled {
			debts = append(debts, d)
		}
	}
	return debts
}

// BalanceOf computes the user's net position over unsettled debts:
// positive means the group owes them, negative means they owe the group.
func (g *Group) BalanceOf(userID int64) float64 {
	var balance float64
	for _, d := range g.UnsettledDebts() {
		switch userID {
		case d.CreditorID:
			balance += d.Amount
		case d.DebtorID:
			balance -= d.Amount
		}
	}
	return round2(balance)
}

// Statistics derives debt counts and totals in a single pass over AllDebts.
func (g *Group) Statistics() DebtStatistics {
	var stats DebtStatistics
	for _, d := range g.AllDebts() {
		stats.Total++
		stats.TotalAmount += d.Amount
		if d.Settled {
			stats.Settled++
		} else {
			stats.Unsettled++
			stats.UnsettledAmount += d.Amount
		}
	}
	stats.TotalAmount = round2(stats.TotalAmount)
	stats.UnsettledAmount = round2(stats.UnsettledAmount)
	return stats
}

// AuthorizeAdminAction is the single gate for admin-only group mutations.
// It returns (false, message) for non-members and for members without the
// admin flag; the message is meant to be shown to the end user as-is.
func (g *Group) AuthorizeAdminAction(userID int64, action string) (bool, string) {
	if !g.IsMember(userID) {
		return false, "you are not a member of this group"
	}
	if !g.IsAdmin(userID) {
		return false, fmt.Sprintf("only a group admin may %s", action)
	}
	return true, ""
}
