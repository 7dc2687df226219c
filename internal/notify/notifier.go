package notify

import (
	"errors"
	"fmt"
	"sort"

	"github.com/hruskam/roomledger/internal/ledger"
)

// Common errors
var (
	ErrUnknownNotifierType = errors.New("unknown notifier type")
)

// Type identifies a notifier variant.
type Type string

const (
	TypeConsole Type = "console"
	TypeEmail   Type = "email"
	TypeInApp   Type = "inapp"
	TypeSMS     Type = "sms"
)

// Notifier is a delivery channel for debt-settlement events. Notify is
// fire-and-forget: delivery failures are the notifier's problem and must
// never surface to the code that settled the debt.
type Notifier interface {
	ledger.DebtObserver

	Type() Type
}

// Config carries the channel settings notifier constructors need.
type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMSRecipient string
}

// constructors is the static registry of notifier variants. Each entry may
// fail individually; best-effort callers collect the failures instead of
// aborting.
var constructors = map[Type]func(cfg Config) (Notifier, error){
	TypeConsole: func(cfg Config) (Notifier, error) {
		return NewConsoleNotifier(), nil
	},
	TypeEmail: func(cfg Config) (Notifier, error) {
		return NewEmailNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	},
	TypeInApp: func(cfg Config) (Notifier, error) {
		return NewInAppNotifier(), nil
	},
	TypeSMS: func(cfg Config) (Notifier, error) {
		return NewSMSNotifier(cfg.SMSRecipient)
	},
}

// Factory creates notifiers from the registry.
type Factory struct {
	cfg Config
}

// NewFactory creates a notifier factory with the given channel settings.
func NewFactory(cfg Config) *Factory {
	return &Factory{cfg: cfg}
}

// Create builds the notifier for the given type. Fails with
// ErrUnknownNotifierType when the type is not registered.
func (f *Factory) Create(t Type) (Notifier, error) {
	ctor, ok := constructors[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNotifierType, t)
	}
	return ctor(f.cfg)
}

// CreateAll builds every registered notifier, best-effort: construction
// failures do not abort the rest, and the returned map reports which types
// failed and why.
func (f *Factory) CreateAll() ([]Notifier, map[Type]error) {
	var notifiers []Notifier
	failed := map[Type]error{}
	for _, t := range f.AvailableTypes() {
		n, err := f.Create(t)
		if err != nil {
			failed[t] = err
			continue
		}
		notifiers = append(notifiers, n)
	}
	return notifiers, failed
}

// AvailableTypes lists the registered notifier types in a stable order.
func (f *Factory) AvailableTypes() []Type {
	types := make([]Type, 0, len(constructors))
	for t := range constructors {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
