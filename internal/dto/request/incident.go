package request

type CreateIncidentRequest struct {
	IncidentType string `json:"incident_type" validate:"required,oneof=Breakdown Accident Delay Other"`
	Description  string `json:"description" validate:"required,min=5,max=1000"`
}

type ResolveIncidentRequest struct {
	Status string `json:"status" validate:"required,oneof=Reported Resolved"`
}
