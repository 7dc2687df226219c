package notify

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hruskam/roomledger/internal/ledger"
)

// SMSNotifier announces settlements by text message. Delivery is stubbed
// as a log line, same as email.
type SMSNotifier struct {
	recipient string
	log       *slog.Logger
}

// NewSMSNotifier creates an SMS notifier. Fails if no recipient number is
// configured.
func NewSMSNotifier(recipient string) (*SMSNotifier, error) {
	if recipient == "" {
		return nil, errors.New("sms recipient not configured")
	}
	return &SMSNotifier{recipient: recipient, log: slog.Default()}, nil
}

// Type returns the notifier type identifier.
func (n *SMSNotifier) Type() Type {
	return TypeSMS
}

// Notify sends a settlement SMS. Failures are logged and swallowed.
func (n *SMSNotifier) Notify(d *ledger.Debt) {
	if !d.Settled {
		return
	}
	n.log.Info("sending settlement sms",
		"to", n.recipient,
		"message", fmt.Sprintf("%s settled their debt of %.2f.",
			displayName(d.DebtorName, d.DebtorID), d.Amount),
	)
}
