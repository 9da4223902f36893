package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/agendasalud/clinic-api/internal/model"
)

func (r *physicianRepository) List(ctx context.Context) ([]*model.Physician, error) {
	query := `
		SELECT id, first_name, last_name, email, password, specialty,
		       created_at, updated_at
		FROM physicians
		ORDER BY last_name, first_name
	`
	physicians := []*model.Physician{}
	if err := r.db.SelectContext(ctx, &physicians, query); err != nil {
		return nil, fmt.Errorf("failed to list physicians: %w", err)
	}
	return physicians, nil
}

func (r *physicianRepository) Get(ctx context.Context, id int64) (*model.Physician, error) {
	query := `
		SELECT id, first_name, last_name, email, password, specialty,
		       created_at, updated_at
		FROM physicians
		WHERE id = $1
	`
	var physician model.Physician
	if err := r.db.GetContext(ctx, &physician, query, id); err != nil {
		return nil, fmt.Errorf("failed to get physician: %w", err)
	}
	return &physician, nil
}

func (r *physicianRepository) Create(ctx context.Context, p *model.Physician) error {
	query := `
		INSERT INTO physicians (first_name, last_name, email, password, specialty, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		p.FirstName, p.LastName, p.Email, p.Password, p.Specialty,
		p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to create physician: %w", err)
	}
	return nil
}

func (r *physicianRepository) Update(ctx context.Context, p *model.Physician) error {
	query := `
		UPDATE physicians
		SET first_name = $1, last_name = $2, email = $3, password = $4,
		    specialty = $5, updated_at = $6
		WHERE id = $7
	`
	p.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		p.FirstName, p.LastName, p.Email, p.Password, p.Specialty,
		p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update physician: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("physician %d: %w", p.ID, sql.ErrNoRows)
	}
	return nil
}

func (r *physicianRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM physicians WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete physician: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("physician %d: %w", id, sql.ErrNoRows)
	}
	return nil
}
