package request

type CreateBusRequest struct {
	BusNumber  string      `json:"bus_number" validate:"required,min=3,max=20"`
	BusName    string      `json:"bus_name" validate:"required,min=3,max=100"`
	TotalSeats int         `json:"total_seats" validate:"required,min=1,max=100"`
	Type       string      `json:"type" validate:"required,oneof=AC NonAC"`
	Amenities  []string    `json:"amenities,omitempty"`
	SeatConfig string      `json:"seat_config,omitempty"`
	Route      *RouteInput `json:"route,omitempty"`
}

type UpdateBusRequest struct {
	BusName    string      `json:"bus_name,omitempty" validate:"omitempty,min=3,max=100"`
	Status     string      `json:"status,omitempty" validate:"omitempty,oneof=Active Inactive Maintenance"`
	Amenities  []string    `json:"amenities,omitempty"`
	SeatConfig string      `json:"seat_config,omitempty"`
	Route      *RouteInput `json:"route,omitempty"`
}

type RouteInput struct {
	Source      string      `json:"source" validate:"required"`
	Destination string      `json:"destination" validate:"required"`
	Stops       []StopInput `json:"stops" validate:"required,min=2,dive"`
}

type StopInput struct {
	StopName    string `json:"stop_name" validate:"required"`
	ArrivalTime string `json:"arrival_time" validate:"required,len=5"`
}
