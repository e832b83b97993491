package entity

import "time"

// DailyRevenue is one row of the admin revenue report.
type DailyRevenue struct {
	Date          time.Time
	TotalBookings int64
	Revenue       int64
	ACBookings    int64
	NonACBookings int64
}
