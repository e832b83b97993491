package request

type ReserveSeatRequest struct {
	BusID          int64   `json:"bus_id" validate:"required,min=1"`
	SeatNumber     int     `json:"seat_number"`
	PassengerName  string  `json:"passenger_name" validate:"required,min=2,max=100"`
	PassengerPhone string  `json:"passenger_phone" validate:"required,min=10,max=15"`
	PassengerEmail *string `json:"passenger_email,omitempty" validate:"omitempty,email"`
	FromStop       string  `json:"from_stop" validate:"required"`
	ToStop         string  `json:"to_stop" validate:"required"`
	PaymentMethod  string  `json:"payment_method,omitempty" validate:"omitempty,oneof=Cash Card UPI"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Confirmed Boarded Completed Cancelled"`
}
