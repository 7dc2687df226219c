package expense

import "github.com/hruskam/roomledger/internal/ledger"

// CreateExpenseRequest represents the request to create an expense
type CreateExpenseRequest struct {
	GroupID     int64   `json:"group_id" validate:"required"`
	Description string  `json:"description" validate:"required,min=1,max=255"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`

	// SplitType selects the strategy: EQUAL (default) or WEIGHTED
	SplitType string `json:"split_type,omitempty" validate:"omitempty,oneof=EQUAL WEIGHTED"`

	// ParticipantIDs narrows the split to a subset of the group; empty
	// means every member participates
	ParticipantIDs []int64 `json:"participant_ids,omitempty"`

	// Weights are per-user weights for the WEIGHTED split; unmapped users
	// weigh 1.0
	Weights map[int64]float64 `json:"weights,omitempty"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID          int64           `json:"id"`
	GroupID     int64           `json:"group_id"`
	PayerID     int64           `json:"payer_id"`
	PayerName   string          `json:"payer_name,omitempty"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	CreatedAt   string          `json:"created_at"`
	Debts       []*DebtResponse `json:"debts,omitempty"`
}

// DebtResponse represents the response for a debt
type DebtResponse struct {
	ID           int64   `json:"id"`
	ExpenseID    int64   `json:"expense_id"`
	DebtorID     int64   `json:"debtor_id"`
	DebtorName   string  `json:"debtor_name,omitempty"`
	CreditorID   int64   `json:"creditor_id"`
	CreditorName string  `json:"creditor_name,omitempty"`
	Amount       float64 `json:"amount"`
	Settled      bool    `json:"settled"`
}

// ToResponse converts a ledger.Expense to an ExpenseResponse DTO
func ToResponse(e *ledger.Expense) *ExpenseResponse {
	resp := &ExpenseResponse{
		ID:          e.ID,
		GroupID:     e.GroupID,
		PayerID:     e.PayerID,
		PayerName:   e.PayerName,
		Description: e.Description,
		Amount:      e.Amount,
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	for _, d := range e.Debts {
		resp.Debts = append(resp.Debts, ToDebtResponse(d))
	}
	return resp
}

// ToDebtResponse converts a ledger.Debt to a DebtResponse DTO
func ToDebtResponse(d *ledger.Debt) *DebtResponse {
	return &DebtResponse{
		ID:           d.ID,
		ExpenseID:    d.ExpenseID,
		DebtorID:     d.DebtorID,
		DebtorName:   d.DebtorName,
		CreditorID:   d.CreditorID,
		CreditorName: d.CreditorName,
		Amount:       d.Amount,
		Settled:      d.Settled,
	}
}
