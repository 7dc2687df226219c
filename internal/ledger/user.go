package ledger

import "time"

// User is a registered person. Users are referenced by memberships,
// expenses and debts and are never cascading-deleted while a debt still
// points at them.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
