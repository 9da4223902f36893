package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/agendasalud/clinic-api/internal/model"
)

func (r *administratorRepository) List(ctx context.Context) ([]*model.Administrator, error) {
	query := `
		SELECT id, first_name, last_name, email, password, created_at, updated_at
		FROM administrators
		ORDER BY last_name, first_name
	`
	administrators := []*model.Administrator{}
	if err := r.db.SelectContext(ctx, &administrators, query); err != nil {
		return nil, fmt.Errorf("failed to list administrators: %w", err)
	}
	return administrators, nil
}

func (r *administratorRepository) Get(ctx context.Context, id int64) (*model.Administrator, error) {
	query := `
		SELECT id, first_name, last_name, email, password, created_at, updated_at
		FROM administrators
		WHERE id = $1
	`
	var administrator model.Administrator
	if err := r.db.GetContext(ctx, &administrator, query, id); err != nil {
		return nil, fmt.Errorf("failed to get administrator: %w", err)
	}
	return &administrator, nil
}

func (r *administratorRepository) Create(ctx context.Context, a *model.Administrator) error {
	query := `
		INSERT INTO administrators (first_name, last_name, email, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		a.FirstName, a.LastName, a.Email, a.Password,
		a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("failed to create administrator: %w", err)
	}
	return nil
}

func (r *administratorRepository) Update(ctx context.Context, a *model.Administrator) error {
	query := `
		UPDATE administrators
		SET first_name = $1, last_name = $2, email = $3, password = $4, updated_at = $5
		WHERE id = $6
	`
	a.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		a.FirstName, a.LastName, a.Email, a.Password, a.UpdatedAt, a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update administrator: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("administrator %d: %w", a.ID, sql.ErrNoRows)
	}
	return nil
}

func (r *administratorRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM administrators WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete administrator: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("administrator %d: %w", id, sql.ErrNoRows)
	}
	return nil
}
