package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/agendasalud/clinic-api/internal/model"
	"github.com/agendasalud/clinic-api/internal/repository"
)

const appointmentColumns = `
	id, patient_id, physician_id, date, time, reason, notes,
	medical_notes, preparation_notes, specialty, location, priority,
	status, cancellation_reason, cancellation_details, cancelled_by,
	cancelled_at, created_at, updated_at
`

const appointmentDetailQuery = `
	SELECT a.id, a.patient_id, a.physician_id, a.date, a.time, a.reason,
	       a.notes, a.medical_notes, a.preparation_notes, a.specialty,
	       a.location, a.priority, a.status, a.cancellation_reason,
	       a.cancellation_details, a.cancelled_by, a.cancelled_at,
	       a.created_at, a.updated_at,
	       p.first_name || ' ' || p.last_name AS patient_name,
	       m.first_name || ' ' || m.last_name AS physician_name,
	       m.specialty AS physician_specialty
	FROM appointments a
	JOIN patients p ON p.id = a.patient_id
	JOIN physicians m ON m.id = a.physician_id
`

func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			patient_id, physician_id, date, time, reason, notes,
			medical_notes, preparation_notes, specialty, location,
			priority, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		apt.PatientID,
		apt.PhysicianID,
		apt.Date,
		apt.Time,
		apt.Reason,
		apt.Notes,
		apt.MedicalNotes,
		apt.PreparationNotes,
		apt.Specialty,
		apt.Location,
		apt.Priority,
		apt.Status,
		apt.CreatedAt,
		apt.UpdatedAt,
	).Scan(&apt.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrSlotTaken
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `SELECT` + appointmentColumns + `FROM appointments WHERE id = $1`
	var apt model.Appointment
	if err := r.db.GetContext(ctx, &apt, query, id); err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &apt, nil
}

func (r *appointmentRepository) List(ctx context.Context) ([]*model.AppointmentDetail, error) {
	query := appointmentDetailQuery + ` ORDER BY a.date DESC, a.time DESC`
	appointments := []*model.AppointmentDetail{}
	if err := r.db.SelectContext(ctx, &appointments, query); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.AppointmentDetail, error) {
	query := appointmentDetailQuery + ` WHERE a.patient_id = $1 ORDER BY a.date DESC, a.time DESC`
	appointments := []*model.AppointmentDetail{}
	if err := r.db.SelectContext(ctx, &appointments, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list patient appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListByPhysician(ctx context.Context, physicianID int64) ([]*model.AppointmentDetail, error) {
	query := appointmentDetailQuery + ` WHERE a.physician_id = $1 ORDER BY a.date DESC, a.time DESC`
	appointments := []*model.AppointmentDetail{}
	if err := r.db.SelectContext(ctx, &appointments, query, physicianID); err != nil {
		return nil, fmt.Errorf("failed to list physician appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(ctx context.Context, apt *model.Appointment) error {
	query := `
		UPDATE appointments
		SET patient_id = $1, physician_id = $2, date = $3, time = $4,
		    reason = $5, notes = $6, medical_notes = $7,
		    preparation_notes = $8, specialty = $9, location = $10,
		    priority = $11, status = $12, updated_at = $13
		WHERE id = $14
	`
	apt.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		apt.PatientID,
		apt.PhysicianID,
		apt.Date,
		apt.Time,
		apt.Reason,
		apt.Notes,
		apt.MedicalNotes,
		apt.PreparationNotes,
		apt.Specialty,
		apt.Location,
		apt.Priority,
		apt.Status,
		apt.UpdatedAt,
		apt.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrSlotTaken
		}
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("appointment %d: %w", apt.ID, sql.ErrNoRows)
	}
	return nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) error {
	query := `UPDATE appointments SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("appointment %d: %w", id, sql.ErrNoRows)
	}
	return nil
}

func (r *appointmentRepository) Cancel(ctx context.Context, id int64, reason, details, cancelledBy string, at time.Time) error {
	query := `
		UPDATE appointments
		SET status = $1, cancellation_reason = $2, cancellation_details = $3,
		    cancelled_by = $4, cancelled_at = $5, updated_at = $5
		WHERE id = $6
	`
	result, err := r.db.ExecContext(ctx, query,
		model.AppointmentStatusCancelled, reason, details, cancelledBy, at, id)
	if err != nil {
		return fmt.Errorf("failed to cancel appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("appointment %d: %w", id, sql.ErrNoRows)
	}
	return nil
}

func (r *appointmentRepository) UpdateNotes(ctx context.Context, id int64, medicalNotes string) error {
	query := `UPDATE appointments SET medical_notes = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, medicalNotes, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update appointment notes: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("appointment %d: %w", id, sql.ErrNoRows)
	}
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("appointment %d: %w", id, sql.ErrNoRows)
	}
	return nil
}

func (r *appointmentRepository) FindConflict(ctx context.Context, physicianID int64, date, timeOfDay string) (*model.Appointment, error) {
	query := `SELECT` + appointmentColumns + `
		FROM appointments
		WHERE physician_id = $1 AND date = $2 AND time = $3 AND status <> 'cancelled'
		LIMIT 1
	`
	var apt model.Appointment
	err := r.db.GetContext(ctx, &apt, query, physicianID, date, timeOfDay)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check appointment conflict: %w", err)
	}
	return &apt, nil
}
