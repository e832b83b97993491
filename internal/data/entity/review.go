package entity

type Review struct {
	BaseSimple
	BusID       int64  `db:"bus_id"`
	PassengerID int64  `db:"passenger_id"`
	Rating      int    `db:"rating"` // 1..5
	Comment     string `db:"comment"`
}
