package notify

import (
	"fmt"

	"github.com/hruskam/roomledger/internal/ledger"
)

// InAppNotifier buffers settlement messages for later retrieval, e.g. to
// flush into a user's persistent inbox.
type InAppNotifier struct {
	messages []string
}

// NewInAppNotifier creates an empty in-app notifier.
func NewInAppNotifier() *InAppNotifier {
	return &InAppNotifier{}
}

// Type returns the notifier type identifier.
func (n *InAppNotifier) Type() Type {
	return TypeInApp
}

// Notify buffers one message for the settled debt.
func (n *InAppNotifier) Notify(d *ledger.Debt) {
	if !d.Settled {
		return
	}
	n.messages = append(n.messages,
		fmt.Sprintf("A debt of %.2f was marked as settled.", d.Amount))
}

// Messages returns the buffered messages in arrival order.
func (n *InAppNotifier) Messages() []string {
	return n.messages
}

// Clear drops all buffered messages.
func (n *InAppNotifier) Clear() {
	n.messages = nil
}
