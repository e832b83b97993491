package entity

import "time"

type BusType string

const (
	BusTypeAC    BusType = "AC"
	BusTypeNonAC BusType = "NonAC"
)

type BusStatus string

const (
	BusStatusActive      BusStatus = "Active"
	BusStatusInactive    BusStatus = "Inactive"
	BusStatusMaintenance BusStatus = "Maintenance"
)

type Bus struct {
	Base
	BusNumber       string     `db:"bus_number"`
	BusName         string     `db:"bus_name"`
	TotalSeats      int        `db:"total_seats"`
	Type            BusType    `db:"type"`
	Status          BusStatus  `db:"status"`
	Amenities       string     `db:"amenities"`   // comma-separated
	SeatConfig      string     `db:"seat_config"` // e.g. "2x2"
	LastMaintenance *time.Time `db:"last_maintenance"`
	Rating          float64    `db:"rating"`
}
