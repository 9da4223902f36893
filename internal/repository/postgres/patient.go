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

func (r *patientRepository) List(ctx context.Context, includeInactive bool) ([]*model.Patient, error) {
	query := `
		SELECT id, rut, first_name, last_name, email, phone, address,
		       birth_date, gender, active, created_at, updated_at
		FROM patients
	`
	if !includeInactive {
		query += " WHERE active = 1"
	}
	query += " ORDER BY last_name, first_name"

	patients := []*model.Patient{}
	if err := r.db.SelectContext(ctx, &patients, query); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	query := `
		SELECT id, rut, first_name, last_name, email, phone, address,
		       birth_date, gender, active, created_at, updated_at
		FROM patients
		WHERE id = $1
	`
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, id); err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) GetByRut(ctx context.Context, rut string, includeInactive bool) (*model.Patient, error) {
	query := `
		SELECT id, rut, first_name, last_name, email, phone, address,
		       birth_date, gender, active, created_at, updated_at
		FROM patients
		WHERE rut = $1
	`
	if !includeInactive {
		query += " AND active = 1"
	}

	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, rut); err != nil {
		return nil, fmt.Errorf("failed to get patient by rut: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (
			rut, first_name, last_name, email, phone, address,
			birth_date, gender, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	patient.Active = 1
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		patient.Rut,
		patient.FirstName,
		patient.LastName,
		patient.Email,
		patient.Phone,
		patient.Address,
		patient.BirthDate,
		patient.Gender,
		patient.Active,
		patient.CreatedAt,
		patient.UpdatedAt,
	).Scan(&patient.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("patient rut already registered: %w", err)
		}
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET rut = $1, first_name = $2, last_name = $3, email = $4,
		    phone = $5, address = $6, birth_date = $7, gender = $8,
		    updated_at = $9
		WHERE id = $10
	`
	patient.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		patient.Rut,
		patient.FirstName,
		patient.LastName,
		patient.Email,
		patient.Phone,
		patient.Address,
		patient.BirthDate,
		patient.Gender,
		patient.UpdatedAt,
		patient.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("patient %d: %w", patient.ID, sql.ErrNoRows)
	}
	return nil
}

// Deactivate is a compare-and-swap: the WHERE clause carries the guard, so
// two concurrent calls cannot both succeed.
func (r *patientRepository) Deactivate(ctx context.Context, id int64) (int64, error) {
	query := `UPDATE patients SET active = 0, updated_at = $1 WHERE id = $2 AND active = 1`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate patient: %w", err)
	}
	return result.RowsAffected()
}

func (r *patientRepository) Reactivate(ctx context.Context, id int64) (int64, error) {
	query := `UPDATE patients SET active = 1, updated_at = $1 WHERE id = $2 AND active = 0`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return 0, fmt.Errorf("failed to reactivate patient: %w", err)
	}
	return result.RowsAffected()
}

func (r *patientRepository) CountAppointments(ctx context.Context, patientID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM appointments WHERE patient_id = $1`
	if err := r.db.GetContext(ctx, &count, query, patientID); err != nil {
		return 0, fmt.Errorf("failed to count patient appointments: %w", err)
	}
	return count, nil
}

// DeleteGuarded re-runs the permanent-delete guards inside one transaction
// so the checks and the delete observe the same state.
func (r *patientRepository) DeleteGuarded(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var active int
	if err := tx.GetContext(ctx, &active, `SELECT active FROM patients WHERE id = $1 FOR UPDATE`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("patient %d: %w", id, sql.ErrNoRows)
		}
		return fmt.Errorf("failed to load patient: %w", err)
	}
	if active != 0 {
		return repository.ErrPatientActive
	}

	var count int
	if err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM appointments WHERE patient_id = $1`, id); err != nil {
		return fmt.Errorf("failed to count patient appointments: %w", err)
	}
	if count > 0 {
		return &repository.HasAppointmentsError{Count: count}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}
