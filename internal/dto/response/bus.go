package response

import (
	"strings"
	"time"

	"bus-ticketing/internal/data/entity"
)

type BusResponse struct {
	ID              int64            `json:"id"`
	BusNumber       string           `json:"bus_number"`
	BusName         string           `json:"bus_name"`
	TotalSeats      int              `json:"total_seats"`
	Type            entity.BusType   `json:"type"`
	Status          entity.BusStatus `json:"status"`
	Fare            int64            `json:"fare"`
	Amenities       []string         `json:"amenities,omitempty"`
	SeatConfig      string           `json:"seat_config,omitempty"`
	Rating          float64          `json:"rating"`
	LastMaintenance *time.Time       `json:"last_maintenance,omitempty"`
	Route           *RouteResponse   `json:"route,omitempty"`
}

type RouteResponse struct {
	ID          int64          `json:"id"`
	Source      string         `json:"source"`
	Destination string         `json:"destination"`
	Stops       []StopResponse `json:"stops,omitempty"`
}

type StopResponse struct {
	StopName    string `json:"stop_name"`
	StopOrder   int    `json:"stop_order"`
	ArrivalTime string `json:"arrival_time"`
}

// Helper converters
func BusToResponse(bus *entity.Bus) BusResponse {
	resp := BusResponse{
		ID:              bus.ID,
		BusNumber:       bus.BusNumber,
		BusName:         bus.BusName,
		TotalSeats:      bus.TotalSeats,
		Type:            bus.Type,
		Status:          bus.Status,
		Fare:            entity.FareFor(bus.Type),
		SeatConfig:      bus.SeatConfig,
		Rating:          bus.Rating,
		LastMaintenance: bus.LastMaintenance,
	}
	if bus.Amenities != "" {
		resp.Amenities = strings.Split(bus.Amenities, ",")
	}
	return resp
}

func RouteToResponse(route *entity.BusRoute, stops []*entity.Stop) *RouteResponse {
	resp := &RouteResponse{
		ID:          route.ID,
		Source:      route.Source,
		Destination: route.Destination,
	}
	for _, stop := range stops {
		resp.Stops = append(resp.Stops, StopResponse{
			StopName:    stop.StopName,
			StopOrder:   stop.StopOrder,
			ArrivalTime: stop.ArrivalTime,
		})
	}
	return resp
}
