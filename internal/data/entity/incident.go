package entity

type IncidentStatus string

const (
	IncidentStatusReported IncidentStatus = "Reported"
	IncidentStatusResolved IncidentStatus = "Resolved"
)

type IncidentReport struct {
	BaseSimple
	BusID        int64          `db:"bus_id"`
	ConductorID  int64          `db:"conductor_id"`
	IncidentType string         `db:"incident_type"`
	Description  string         `db:"description"`
	Status       IncidentStatus `db:"status"`
}
