package entity

// Conductor links a conductor user account to the bus it operates.
type Conductor struct {
	Base
	UserID        int64 `db:"user_id"`
	AssignedBusID int64 `db:"assigned_bus_id"`
}
