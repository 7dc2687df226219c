package ledger

import (
	"math"
	"testing"
)

type recordingObserver struct {
	seen []*Debt
}

func (o *recordingObserver) Notify(d *Debt) {
	o.seen = append(o.seen, d)
}

func TestNewDebtRoundsAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{33.333333, 33.33},
		{33.335, 33.34},
		{10.005, 10.01},
		{-10.005, -10.01},
		{100, 100},
	}

	for _, tt := range tests {
		d := NewDebt(1, 2, tt.in)
		if math.Abs(d.Amount-tt.want) > 1e-9 {
			t.Errorf("NewDebt amount %v rounded to %v, want %v", tt.in, d.Amount, tt.want)
		}
	}
}

func TestMarkSettledNotifiesInRegistrationOrder(t *testing.T) {
	d := NewDebt(1, 2, 30)
	first := &recordingObserver{}
	second := &recordingObserver{}

	d.RegisterObserver(first)
	d.RegisterObserver(second)
	d.MarkSettled()

	if !d.Settled {
		t.Fatal("debt not settled")
	}
	for _, o := range []*recordingObserver{first, second} {
		if len(o.seen) != 1 {
			t.Fatalf("observer notified %d times, want 1", len(o.seen))
		}
		if !o.seen[0].Settled {
			t.Error("observer saw an unsettled debt")
		}
		if o.seen[0] != d {
			t.Error("observer did not receive the full debt object")
		}
	}
}

func TestMarkSettledTwiceDoesNotRefire(t *testing.T) {
	d := NewDebt(1, 2, 30)
	early := &recordingObserver{}
	d.RegisterObserver(early)

	d.MarkSettled()

	// An observer registered after the first settlement must not hear
	// about it through a second call.
	late := &recordingObserver{}
	d.RegisterObserver(late)
	d.MarkSettled()

	if !d.Settled {
		t.Fatal("settled debt must stay settled")
	}
	if len(early.seen) != 1 {
		t.Errorf("early observer notified %d times, want 1", len(early.seen))
	}
	if len(late.seen) != 0 {
		t.Errorf("late observer notified %d times, want 0", len(late.seen))
	}
}

func TestRegisterObserverIsIdempotent(t *testing.T) {
	d := NewDebt(1, 2, 30)
	o := &recordingObserver{}

	d.RegisterObserver(o)
	d.RegisterObserver(o)
	d.MarkSettled()

	if len(o.seen) != 1 {
		t.Errorf("observer notified %d times, want 1", len(o.seen))
	}
}

func TestRemoveObserver(t *testing.T) {
	d := NewDebt(1, 2, 30)
	kept := &recordingObserver{}
	removed := &recordingObserver{}

	d.RegisterObserver(kept)
	d.RegisterObserver(removed)
	d.RemoveObserver(removed)
	d.RemoveObserver(&recordingObserver{}) // never registered, no-op

	d.MarkSettled()

	if len(kept.seen) != 1 {
		t.Errorf("kept observer notified %d times, want 1", len(kept.seen))
	}
	if len(removed.seen) != 0 {
		t.Errorf("removed observer notified %d times, want 0", len(removed.seen))
	}
}
