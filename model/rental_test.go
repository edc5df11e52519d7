package model

import "testing"

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to RentalStatus }{
		{RentalPending, RentalActive},
		{RentalPending, RentalCancelled},
		{RentalActive, RentalCompleted},
		{RentalActive, RentalCancelled},
	}
	for _, tc := range allowed {
		if !CanTransition(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}

	denied := []struct{ from, to RentalStatus }{
		{RentalPending, RentalCompleted},
		{RentalPending, RentalPending},
		{RentalActive, RentalPending},
		{RentalActive, RentalActive},
		{RentalCompleted, RentalPending},
		{RentalCompleted, RentalActive},
		{RentalCancelled, RentalActive},
		{RentalCancelled, RentalCompleted},
	}
	for _, tc := range denied {
		if CanTransition(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be denied", tc.from, tc.to)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	if RentalPending.Terminal() || RentalActive.Terminal() {
		t.Error("open statuses must not be terminal")
	}
	if !RentalCompleted.Terminal() || !RentalCancelled.Terminal() {
		t.Error("completed and cancelled must be terminal")
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []RentalStatus{RentalPending, RentalActive, RentalCompleted, RentalCancelled} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if RentalStatus("returned").Valid() {
		t.Error("unknown status should be invalid")
	}
}
