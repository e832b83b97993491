package repository

import (
	"context"
	"fmt"

	"bus-ticketing/internal/data/entity"
	"bus-ticketing/pkg/database"

	"go.uber.org/zap"
)

type IncidentRepository interface {
	Create(ctx context.Context, report *entity.IncidentReport) error
	FindAll(ctx context.Context, limit, offset int) ([]*entity.IncidentReport, error)
	UpdateStatus(ctx context.Context, id int64, status entity.IncidentStatus) error
}

type incidentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewIncidentRepository(db database.PgxIface, log *zap.Logger) IncidentRepository {
	return &incidentRepository{
		db:  db,
		log: log.With(zap.String("repository", "incident")),
	}
}

func (r *incidentRepository) Create(ctx context.Context, report *entity.IncidentReport) error {
	query := `
		INSERT INTO incident_reports (bus_id, conductor_id, incident_type, description, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		report.BusID,
		report.ConductorID,
		report.IncidentType,
		report.Description,
		report.Status,
		report.CreatedAt,
	).Scan(&report.ID)

	if err != nil {
		r.log.Error("Failed to create incident report",
			zap.Error(err),
			zap.Int64("bus_id", report.BusID),
			zap.String("incident_type", report.IncidentType),
		)
		return fmt.Errorf("create incident report: %w", err)
	}

	return nil
}

func (r *incidentRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.IncidentReport, error) {
	query := `
		SELECT id, bus_id, conductor_id, incident_type, description, status, created_at
		FROM incident_reports
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to query incident reports", zap.Error(err))
		return nil, fmt.Errorf("query incident reports: %w", err)
	}
	defer rows.Close()

	var reports []*entity.IncidentReport
	for rows.Next() {
		var report entity.IncidentReport
		err := rows.Scan(
			&report.ID,
			&report.BusID,
			&report.ConductorID,
			&report.IncidentType,
			&report.Description,
			&report.Status,
			&report.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan incident row: %w", err)
		}
		reports = append(reports, &report)
	}

	return reports, rows.Err()
}

func (r *incidentRepository) UpdateStatus(ctx context.Context, id int64, status entity.IncidentStatus) error {
	result, err := r.db.Exec(ctx, `UPDATE incident_reports SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		r.log.Error("Failed to update incident status", zap.Error(err), zap.Int64("incident_id", id))
		return fmt.Errorf("update incident %d status: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("incident report %d not found", id)
	}

	return nil
}
