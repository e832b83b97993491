package entity

import "github.com/google/uuid"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusBoarded   BookingStatus = "Boarded"
	BookingStatusCompleted BookingStatus = "Completed"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

// legalTransitions holds the allowed booking status transitions.
// Completed and Cancelled are terminal.
var legalTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusConfirmed: {BookingStatusBoarded, BookingStatusCancelled},
	BookingStatusBoarded:   {BookingStatusCompleted, BookingStatusCancelled},
}

// ValidBookingStatus reports whether s is one of the four known statuses.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusConfirmed, BookingStatusBoarded, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsActive reports whether a status occupies a seat.
func (s BookingStatus) IsActive() bool {
	return s == BookingStatusConfirmed || s == BookingStatusBoarded
}

type Booking struct {
	Base
	TicketNumber uuid.UUID     `db:"ticket_number"`
	PassengerID  int64         `db:"passenger_id"`
	BusID        int64         `db:"bus_id"`
	FromStopName string        `db:"from_stop_name"`
	ToStopName   string        `db:"to_stop_name"`
	SeatNumber   int           `db:"seat_number"`
	Status       BookingStatus `db:"status"`
	Amount       int64         `db:"amount"`
}
