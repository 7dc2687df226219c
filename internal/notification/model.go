package notification

import "time"

// Notification is one persistent in-app inbox entry for a user.
type Notification struct {
	ID          int64     `json:"id"`
	RecipientID int64     `json:"recipient_id"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read"`
	DebtID      *int64    `json:"debt_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
