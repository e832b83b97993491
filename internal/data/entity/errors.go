package entity

import "errors"

var (
	ErrBusNotFound        = errors.New("bus not found")
	ErrBusUnavailable     = errors.New("bus is not active")
	ErrInvalidSeat        = errors.New("seat number out of range")
	ErrSeatAlreadyBooked  = errors.New("seat is already booked")
	ErrInvalidTransition  = errors.New("invalid booking status transition")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrPassengerNotFound  = errors.New("passenger not found")
	ErrRouteNotFound      = errors.New("route not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
