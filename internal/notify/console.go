package notify

import (
	"log/slog"

	"github.com/hruskam/roomledger/internal/ledger"
)

// ConsoleNotifier writes settlement events to the application log. Mostly
// useful in development.
type ConsoleNotifier struct {
	log *slog.Logger
}

// NewConsoleNotifier creates a console notifier using the default logger.
func NewConsoleNotifier() *ConsoleNotifier {
	return &ConsoleNotifier{log: slog.Default()}
}

// Type returns the notifier type identifier.
func (n *ConsoleNotifier) Type() Type {
	return TypeConsole
}

// Notify logs the settled debt.
func (n *ConsoleNotifier) Notify(d *ledger.Debt) {
	if !d.Settled {
		return
	}
	n.log.Info("debt settled",
		"debt_id", d.ID,
		"debtor", displayName(d.DebtorName, d.DebtorID),
		"creditor", displayName(d.CreditorName, d.CreditorID),
		"amount", d.Amount,
	)
}
