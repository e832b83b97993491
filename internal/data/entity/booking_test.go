package entity

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{"confirmed to boarded", BookingStatusConfirmed, BookingStatusBoarded, true},
		{"confirmed to cancelled", BookingStatusConfirmed, BookingStatusCancelled, true},
		{"confirmed to completed skips boarding", BookingStatusConfirmed, BookingStatusCompleted, false},
		{"boarded to completed", BookingStatusBoarded, BookingStatusCompleted, true},
		{"boarded to cancelled", BookingStatusBoarded, BookingStatusCancelled, true},
		{"boarded back to confirmed", BookingStatusBoarded, BookingStatusConfirmed, false},
		{"completed is terminal", BookingStatusCompleted, BookingStatusCancelled, false},
		{"cancelled is terminal", BookingStatusCancelled, BookingStatusConfirmed, false},
		{"cancelled cannot re-board", BookingStatusCancelled, BookingStatusBoarded, false},
		{"no self transition", BookingStatusConfirmed, BookingStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Fatalf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestStatusIsActive(t *testing.T) {
	if !BookingStatusConfirmed.IsActive() {
		t.Fatal("Confirmed should hold the seat")
	}
	if !BookingStatusBoarded.IsActive() {
		t.Fatal("Boarded should hold the seat")
	}
	if BookingStatusCompleted.IsActive() {
		t.Fatal("Completed should release the seat")
	}
	if BookingStatusCancelled.IsActive() {
		t.Fatal("Cancelled should release the seat")
	}
}

func TestValidBookingStatus(t *testing.T) {
	for _, s := range []BookingStatus{BookingStatusConfirmed, BookingStatusBoarded, BookingStatusCompleted, BookingStatusCancelled} {
		if !ValidBookingStatus(s) {
			t.Fatalf("%s should be valid", s)
		}
	}
	if ValidBookingStatus("Pending") {
		t.Fatal("Pending is not a known status")
	}
	if ValidBookingStatus("") {
		t.Fatal("empty status is not valid")
	}
}

func TestFareFor(t *testing.T) {
	if got := FareFor(BusTypeAC); got != FareAC {
		t.Fatalf("AC fare = %d, want %d", got, FareAC)
	}
	if got := FareFor(BusTypeNonAC); got != FareNonAC {
		t.Fatalf("NonAC fare = %d, want %d", got, FareNonAC)
	}
}
