package ledger

import "time"

// Expense is a cost paid by one group member on behalf of the group. It
// owns the debts generated from it; an expense with at most one
// participant generates none.
type Expense struct {
	ID          int64     `json:"id"`
	GroupID     int64     `json:"group_id"`
	PayerID     int64     `json:"payer_id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`

	// Populated via JOIN
	PayerName string `json:"payer_name,omitempty"`

	Debts []*Debt `json:"debts,omitempty"`
}

// NewExpense creates an expense with the amount rounded to 2 decimal
// places at assignment time.
func NewExpense(description string, amount float64, payerID, groupID int64) *Expense {
	return &Expense{
		GroupID:     groupID,
		PayerID:     payerID,
		Description: description,
		Amount:      round2(amount),
		CreatedAt:   time.Now(),
	}
}
