package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/agendasalud/clinic-api/internal/model"
	"github.com/agendasalud/clinic-api/internal/repository"
)

func (r *reportRepository) Appointments(ctx context.Context, req *model.AppointmentReportRequest) ([]*model.AppointmentDetail, error) {
	query := appointmentDetailQuery + ` WHERE a.date >= $1 AND a.date <= $2`
	args := []interface{}{req.DateFrom, req.DateTo}
	argCount := 3

	if req.PhysicianID != nil {
		query += fmt.Sprintf(" AND a.physician_id = $%d", argCount)
		args = append(args, *req.PhysicianID)
		argCount++
	}
	if req.Status != "" {
		query += fmt.Sprintf(" AND a.status = $%d", argCount)
		args = append(args, req.Status)
		argCount++
	}
	query += " ORDER BY a.date, a.time"

	appointments := []*model.AppointmentDetail{}
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to run appointment report: %w", err)
	}
	return appointments, nil
}

func (r *reportRepository) PhysicianWorkload(ctx context.Context) ([]*model.PhysicianWorkload, error) {
	query := `
		SELECT m.id AS physician_id,
		       m.first_name || ' ' || m.last_name AS name,
		       m.specialty,
		       COUNT(*) FILTER (WHERE a.status = 'scheduled') AS scheduled,
		       COUNT(*) FILTER (WHERE a.status = 'confirmed') AS confirmed,
		       COUNT(*) FILTER (WHERE a.status = 'completed') AS completed,
		       COUNT(*) FILTER (WHERE a.status = 'cancelled') AS cancelled,
		       COUNT(*) FILTER (WHERE a.status = 'no_show') AS no_show,
		       COUNT(a.id) AS total
		FROM physicians m
		LEFT JOIN appointments a ON a.physician_id = m.id
		GROUP BY m.id, m.first_name, m.last_name, m.specialty
		ORDER BY total DESC
	`
	workload := []*model.PhysicianWorkload{}
	if err := r.db.SelectContext(ctx, &workload, query); err != nil {
		return nil, fmt.Errorf("failed to run physician report: %w", err)
	}
	return workload, nil
}

func (r *reportRepository) PatientVisits(ctx context.Context, includeInactive bool) ([]*model.PatientVisits, error) {
	query := `
		SELECT p.id AS patient_id,
		       p.first_name || ' ' || p.last_name AS name,
		       p.rut,
		       p.active,
		       COUNT(a.id) AS appointments,
		       MAX(a.date) AS last_appointment
		FROM patients p
		LEFT JOIN appointments a ON a.patient_id = p.id
	`
	if !includeInactive {
		query += " WHERE p.active = 1"
	}
	query += `
		GROUP BY p.id, p.first_name, p.last_name, p.rut, p.active
		ORDER BY appointments DESC
	`
	visits := []*model.PatientVisits{}
	if err := r.db.SelectContext(ctx, &visits, query); err != nil {
		return nil, fmt.Errorf("failed to run patient report: %w", err)
	}
	return visits, nil
}

func (r *reportRepository) SaveRecord(ctx context.Context, rec *model.ReportRecord) error {
	query := `
		INSERT INTO report_history (type, title, file_name, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	rec.CreatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query, rec.Type, rec.Title, rec.FileName, rec.CreatedAt).Scan(&rec.ID)
	if err != nil {
		if isUndefinedTable(err) {
			return repository.ErrNoHistoryTable
		}
		return fmt.Errorf("failed to save report record: %w", err)
	}
	return nil
}

func (r *reportRepository) History(ctx context.Context) ([]*model.ReportRecord, error) {
	query := `SELECT id, type, title, file_name, created_at FROM report_history ORDER BY created_at DESC`
	records := []*model.ReportRecord{}
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		if isUndefinedTable(err) {
			return nil, repository.ErrNoHistoryTable
		}
		return nil, fmt.Errorf("failed to read report history: %w", err)
	}
	return records, nil
}

func (r *reportRepository) Statistics(ctx context.Context) (*model.Statistics, error) {
	var stats model.Statistics

	patientCounts := struct {
		Active   int `db:"active"`
		Inactive int `db:"inactive"`
	}{}
	err := r.db.GetContext(ctx, &patientCounts, `
		SELECT COUNT(*) FILTER (WHERE active = 1) AS active,
		       COUNT(*) FILTER (WHERE active = 0) AS inactive
		FROM patients
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count patients: %w", err)
	}
	stats.PatientsActive = patientCounts.Active
	stats.PatientsInactive = patientCounts.Inactive

	if err := r.db.GetContext(ctx, &stats.Physicians, `SELECT COUNT(*) FROM physicians`); err != nil {
		return nil, fmt.Errorf("failed to count physicians: %w", err)
	}

	statusRows := []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}{}
	err = r.db.SelectContext(ctx, &statusRows, `
		SELECT status, COUNT(*) AS count FROM appointments GROUP BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count appointments: %w", err)
	}

	stats.AppointmentsByStatus = make(map[string]int, len(statusRows))
	for _, row := range statusRows {
		stats.AppointmentsByStatus[row.Status] = row.Count
		stats.AppointmentsTotal += row.Count
	}
	return &stats, nil
}
