package response

import (
	"time"

	"bus-ticketing/internal/data/entity"
)

type BookingResponse struct {
	ID             int64                `json:"id"`
	TicketNumber   string               `json:"ticket_number"`
	BusID          int64                `json:"bus_id"`
	BusName        string               `json:"bus_name,omitempty"`
	BusNumber      string               `json:"bus_number,omitempty"`
	PassengerName  string               `json:"passenger_name,omitempty"`
	PassengerPhone string               `json:"passenger_phone,omitempty"`
	FromStop       string               `json:"from_stop"`
	ToStop         string               `json:"to_stop"`
	SeatNumber     int                  `json:"seat_number"`
	Status         entity.BookingStatus `json:"status"`
	Amount         int64                `json:"amount"`
	CreatedAt      time.Time            `json:"created_at"`
}

type OccupiedSeatsResponse struct {
	BusID         int64 `json:"bus_id"`
	TotalSeats    int   `json:"total_seats"`
	OccupiedSeats []int `json:"occupied_seats"`
}

type TicketResponse struct {
	Booking BookingResponse `json:"booking"`
	QRCode  string          `json:"qr_code"` // base64-encoded PNG
}

// Helper converters
func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:           booking.ID,
		TicketNumber: booking.TicketNumber.String(),
		BusID:        booking.BusID,
		FromStop:     booking.FromStopName,
		ToStop:       booking.ToStopName,
		SeatNumber:   booking.SeatNumber,
		Status:       booking.Status,
		Amount:       booking.Amount,
		CreatedAt:    booking.CreatedAt,
	}
}

func BookingDetailToResponse(booking *entity.Booking, bus *entity.Bus, passenger *entity.Passenger) BookingResponse {
	resp := BookingToResponse(booking)
	if bus != nil {
		resp.BusName = bus.BusName
		resp.BusNumber = bus.BusNumber
	}
	if passenger != nil {
		resp.PassengerName = passenger.FullName
		resp.PassengerPhone = passenger.Phone
	}
	return resp
}
