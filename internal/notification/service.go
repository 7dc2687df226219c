package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Common errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotRecipient         = errors.New("not the recipient of this notification")
)

// Service handles the persistent in-app inbox. Writing an inbox entry is
// best-effort for callers on the settlement path: failures are logged and
// never bubble back into ledger state.
type Service struct {
	repo *Repository
}

// NewService creates a new notification service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// ListByRecipient retrieves a user's notifications
func (s *Service) ListByRecipient(ctx context.Context, recipientID int64, unreadOnly bool) ([]*Notification, error) {
	return s.repo.ListByRecipientID(ctx, recipientID, unreadOnly)
}

// MarkAsRead marks one of the user's notifications as read
func (s *Service) MarkAsRead(ctx context.Context, id, userID int64) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n == nil {
		return ErrNotificationNotFound
	}
	if n.RecipientID != userID {
		return ErrNotRecipient
	}

	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks all of the user's notifications as read
func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// GetUnreadCount returns the number of unread notifications
func (s *Service) GetUnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// NotifyExpenseAdded records that a new debt was assigned to the user.
func (s *Service) NotifyExpenseAdded(ctx context.Context, recipientID int64, payerName string, amount float64, debtID int64) {
	message := fmt.Sprintf("%s added an expense; you owe %.2f", payerName, amount)
	if _, err := s.repo.Create(ctx, recipientID, message, &debtID); err != nil {
		slog.Warn("failed to write inbox entry", "recipient", recipientID, "error", err)
	}
}

// NotifyDebtSettled records that a debt owed to the user was settled.
func (s *Service) NotifyDebtSettled(ctx context.Context, recipientID int64, debtorName string, amount float64, debtID int64) {
	message := fmt.Sprintf("%s settled their debt of %.2f", debtorName, amount)
	if _, err := s.repo.Create(ctx, recipientID, message, &debtID); err != nil {
		slog.Warn("failed to write inbox entry", "recipient", recipientID, "error", err)
	}
}
