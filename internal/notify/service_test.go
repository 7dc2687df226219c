package notify

import (
	"errors"
	"testing"

	"github.com/hruskam/roomledger/internal/ledger"
)

func TestFactoryCreateUnknownType(t *testing.T) {
	f := NewFactory(Config{})
	if _, err := f.Create(Type("carrier-pigeon")); !errors.Is(err, ErrUnknownNotifierType) {
		t.Errorf("error = %v, want ErrUnknownNotifierType", err)
	}
}

func TestFactoryCreateAllReportsFailures(t *testing.T) {
	// Empty config: email has no SMTP host, sms has no recipient.
	notifiers, failed := NewFactory(Config{}).CreateAll()

	if len(notifiers) != 2 {
		t.Fatalf("got %d notifiers, want 2 (console, inapp)", len(notifiers))
	}
	if len(failed) != 2 {
		t.Fatalf("got %d failures, want 2 (email, sms): %v", len(failed), failed)
	}
	for _, want := range []Type{TypeEmail, TypeSMS} {
		if _, ok := failed[want]; !ok {
			t.Errorf("failed map missing %s", want)
		}
	}
}

func TestFactoryCreateAllWithFullConfig(t *testing.T) {
	cfg := Config{SMTPHost: "smtp.local", SMTPPort: 587, SMSRecipient: "+15550100"}
	notifiers, failed := NewFactory(cfg).CreateAll()

	if len(failed) != 0 {
		t.Fatalf("unexpected failures: %v", failed)
	}
	if len(notifiers) != len(constructors) {
		t.Errorf("got %d notifiers, want %d", len(notifiers), len(constructors))
	}
}

func TestServiceActivate(t *testing.T) {
	s := NewService(NewFactory(Config{}))

	if err := s.Activate(Type("carrier-pigeon")); !errors.Is(err, ErrUnknownNotifierType) {
		t.Errorf("error = %v, want ErrUnknownNotifierType", err)
	}

	if err := s.Activate(TypeConsole); err != nil {
		t.Fatalf("Activate(console) failed: %v", err)
	}
	// Activating an already-active type is a no-op.
	if err := s.Activate(TypeConsole); err != nil {
		t.Fatalf("second Activate(console) failed: %v", err)
	}
	if got := s.ActiveTypes(); len(got) != 1 || got[0] != TypeConsole {
		t.Errorf("ActiveTypes() = %v, want [console]", got)
	}
}

func TestServiceActivateAllBestEffort(t *testing.T) {
	s := NewService(NewFactory(Config{}))

	failed := s.ActivateAll()
	if len(failed) != 2 {
		t.Fatalf("got %d failures, want 2: %v", len(failed), failed)
	}
	active := s.ActiveTypes()
	if len(active) != 2 {
		t.Fatalf("ActiveTypes() = %v, want [console inapp]", active)
	}
	if active[0] != TypeConsole || active[1] != TypeInApp {
		t.Errorf("ActiveTypes() = %v, want [console inapp]", active)
	}
}

func TestAttachActiveNotifiersDeliversOnSettle(t *testing.T) {
	s := NewService(NewFactory(Config{}))
	if err := s.Activate(TypeInApp); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	inapp := s.active[0].(*InAppNotifier)

	d := ledger.NewDebt(2, 1, 300)
	s.AttachActiveNotifiers(d)

	if got := len(inapp.Messages()); got != 0 {
		t.Fatalf("got %d messages before settlement, want 0", got)
	}

	d.MarkSettled()
	if got := len(inapp.Messages()); got != 1 {
		t.Fatalf("got %d messages after settlement, want 1", got)
	}

	// Settling again must not redeliver.
	d.MarkSettled()
	if got := len(inapp.Messages()); got != 1 {
		t.Errorf("got %d messages after second MarkSettled, want 1", got)
	}

	inapp.Clear()
	if got := len(inapp.Messages()); got != 0 {
		t.Errorf("got %d messages after Clear, want 0", got)
	}
}

func TestDeactivateAll(t *testing.T) {
	s := NewService(NewFactory(Config{}))
	s.ActivateAll()
	s.DeactivateAll()
	if got := s.ActiveTypes(); len(got) != 0 {
		t.Errorf("ActiveTypes() = %v, want empty", got)
	}
}

func TestAvailableTypesSorted(t *testing.T) {
	got := NewFactory(Config{}).AvailableTypes()
	want := []Type{TypeConsole, TypeEmail, TypeInApp, TypeSMS}
	if len(got) != len(want) {
		t.Fatalf("AvailableTypes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AvailableTypes()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
