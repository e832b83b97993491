package response

import (
	"time"

	"bus-ticketing/internal/data/entity"
)

type DashboardStatsResponse struct {
	TotalBuses      int64 `json:"total_buses"`
	ActiveBuses     int64 `json:"active_buses"`
	TotalRoutes     int64 `json:"total_routes"`
	TotalBookings   int64 `json:"total_bookings"`
	TodayBookings   int64 `json:"today_bookings"`
	TotalPassengers int64 `json:"total_passengers"`
}

type DailyRevenueResponse struct {
	Date          string `json:"date"`
	TotalBookings int64  `json:"total_bookings"`
	Revenue       int64  `json:"revenue"`
	ACBookings    int64  `json:"ac_bookings"`
	NonACBookings int64  `json:"non_ac_bookings"`
}

type RevenueReportResponse struct {
	From    string                 `json:"from"`
	To      string                 `json:"to"`
	Total   int64                  `json:"total_revenue"`
	PerDay  []DailyRevenueResponse `json:"per_day"`
}

type ConductorDashboardResponse struct {
	BusID          int64 `json:"bus_id"`
	TotalSeats     int   `json:"total_seats"`
	ConfirmedCount int64 `json:"confirmed_count"`
	BoardedCount   int64 `json:"boarded_count"`
	AvailableSeats int   `json:"available_seats"`
}

func DailyRevenueToResponse(row *entity.DailyRevenue) DailyRevenueResponse {
	return DailyRevenueResponse{
		Date:          row.Date.Format(time.DateOnly),
		TotalBookings: row.TotalBookings,
		Revenue:       row.Revenue,
		ACBookings:    row.ACBookings,
		NonACBookings: row.NonACBookings,
	}
}
