package notify

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/hruskam/roomledger/internal/ledger"
)

// EmailNotifier announces settlements to the creditor by email. Actual
// delivery is stubbed: the message is logged, because real SMTP sending is
// owned by the surrounding infrastructure.
type EmailNotifier struct {
	host     string
	port     int
	username string
	password string
	log      *slog.Logger
}

// NewEmailNotifier creates an email notifier. Fails if no SMTP host is
// configured.
func NewEmailNotifier(host string, port int, username, password string) (*EmailNotifier, error) {
	if host == "" {
		return nil, errors.New("smtp host not configured")
	}
	return &EmailNotifier{
		host:     host,
		port:     port,
		username: username,
		password: password,
		log:      slog.Default(),
	}, nil
}

// Type returns the notifier type identifier.
func (n *EmailNotifier) Type() Type {
	return TypeEmail
}

// Notify sends a settlement email to the creditor. Failures are logged and
// swallowed; settlement state never depends on delivery.
func (n *EmailNotifier) Notify(d *ledger.Debt) {
	if !d.Settled {
		return
	}
	subject := "Debt settled"
	body := fmt.Sprintf("%s settled their debt of %.2f to you.",
		displayName(d.DebtorName, d.DebtorID), d.Amount)
	n.log.Info("sending settlement email",
		"smtp", n.host+":"+strconv.Itoa(n.port),
		"to", displayName(d.CreditorName, d.CreditorID),
		"subject", subject,
		"body", body,
	)
}

// displayName falls back to the numeric id when the name was not hydrated.
func displayName(name string, id int64) string {
	if name != "" {
		return name
	}
	return "user " + strconv.FormatInt(id, 10)
}
