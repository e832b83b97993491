package request

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type CreateConductorRequest struct {
	FullName      string `json:"full_name" validate:"required,min=3,max=100"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6"`
	AssignedBusID int64  `json:"assigned_bus_id" validate:"required,min=1"`
}

type AssignBusRequest struct {
	BusID int64 `json:"bus_id" validate:"required,min=1"`
}
