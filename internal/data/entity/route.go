package entity

type BusRoute struct {
	Base
	BusID       int64  `db:"bus_id"`
	Source      string `db:"source"`
	Destination string `db:"destination"`
}

type Stop struct {
	BaseSimple
	RouteID     int64  `db:"route_id"`
	StopName    string `db:"stop_name"`
	StopOrder   int    `db:"stop_order"`
	ArrivalTime string `db:"arrival_time"` // HH:MM, local time along the route
}
