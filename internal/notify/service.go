package notify

import (
	"log/slog"

	"github.com/hruskam/roomledger/internal/ledger"
)

// Service owns the set of active notifiers and attaches them to debts, so
// the ledger entity never has to know which channels exist. A settled debt
// then fans out to every notifier that was active when it was attached.
type Service struct {
	factory *Factory
	active  []Notifier
}

// NewService creates a dispatch service around the given factory.
func NewService(factory *Factory) *Service {
	return &Service{factory: factory}
}

// Activate instantiates and registers the notifier of the given type.
// Fails with ErrUnknownNotifierType for unrecognized types; activating a
// type that is already active is a no-op.
func (s *Service) Activate(t Type) error {
	for _, n := range s.active {
		if n.Type() == t {
			return nil
		}
	}
	n, err := s.factory.Create(t)
	if err != nil {
		return err
	}
	s.active = append(s.active, n)
	return nil
}

// ActivateAll replaces the active set with every notifier the factory can
// build. Best-effort: individual construction failures are logged and
// returned, and the successfully built notifiers become active regardless.
func (s *Service) ActivateAll() map[Type]error {
	notifiers, failed := s.factory.CreateAll()
	s.active = notifiers
	for t, err := range failed {
		slog.Warn("notifier not activated", "type", string(t), "error", err)
	}
	return failed
}

// AttachActiveNotifiers registers every active notifier on the debt, so
// its next MarkSettled call reaches all of them.
func (s *Service) AttachActiveNotifiers(d *ledger.Debt) {
	for _, n := range s.active {
		d.RegisterObserver(n)
	}
}

// ActiveTypes lists the types currently active, in activation order.
func (s *Service) ActiveTypes() []Type {
	types := make([]Type, len(s.active))
	for i, n := range s.active {
		types[i] = n.Type()
	}
	return types
}

// AvailableTypes lists every type the factory knows.
func (s *Service) AvailableTypes() []Type {
	return s.factory.AvailableTypes()
}

// DeactivateAll clears the active set.
func (s *Service) DeactivateAll() {
	s.active = nil
}
