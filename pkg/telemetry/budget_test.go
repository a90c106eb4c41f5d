package telemetry

import "testing"

func TestLookupBudget(t *testing.T) {
	b := newLookupBudget(2)

	if !b.take() || !b.take() {
		t.Fatal("expected two lookups to be allowed")
	}
	if b.open() {
		t.Error("budget should be closed once the limit is reached")
	}

	for i := 0; i < 3; i++ {
		if b.take() {
			t.Errorf("take %d succeeded on a closed budget", i)
		}
	}

	if b.used != 2 {
		t.Errorf("expected 2 used, got %d", b.used)
	}
}

func TestErrorSlot(t *testing.T) {
	var slot errorSlot
	if slot.message() != "" {
		t.Errorf("expected empty slot, got %q", slot.message())
	}

	slot = slot.record(ErrMalformedStatus)
	slot = slot.record(nil)
	if slot.message() != ErrMalformedStatus.Error() {
		t.Errorf("nil should not clear the slot, got %q", slot.message())
	}

	slot = slot.record(ErrGeolocationBudgetExceeded)
	if slot.message() != ErrGeolocationBudgetExceeded.Error() {
		t.Errorf("expected latest failure, got %q", slot.message())
	}
}
