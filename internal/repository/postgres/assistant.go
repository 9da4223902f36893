package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/agendasalud/clinic-api/internal/model"
)

func (r *assistantRepository) List(ctx context.Context) ([]*model.Assistant, error) {
	query := `
		SELECT id, first_name, last_name, email, password, created_at, updated_at
		FROM assistants
		ORDER BY last_name, first_name
	`
	assistants := []*model.Assistant{}
	if err := r.db.SelectContext(ctx, &assistants, query); err != nil {
		return nil, fmt.Errorf("failed to list assistants: %w", err)
	}
	return assistants, nil
}

func (r *assistantRepository) Get(ctx context.Context, id int64) (*model.Assistant, error) {
	query := `
		SELECT id, first_name, last_name, email, password, created_at, updated_at
		FROM assistants
		WHERE id = $1
	`
	var assistant model.Assistant
	if err := r.db.GetContext(ctx, &assistant, query, id); err != nil {
		return nil, fmt.Errorf("failed to get assistant: %w", err)
	}
	return &assistant, nil
}

func (r *assistantRepository) Create(ctx context.Context, a *model.Assistant) error {
	query := `
		INSERT INTO assistants (first_name, last_name, email, password, created_at, updated_at)
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
		return fmt.Errorf("failed to create assistant: %w", err)
	}
	return nil
}

func (r *assistantRepository) Update(ctx context.Context, a *model.Assistant) error {
	query := `
		UPDATE assistants
		SET first_name = $1, last_name = $2, email = $3, password = $4, updated_at = $5
		WHERE id = $6
	`
	a.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		a.FirstName, a.LastName, a.Email, a.Password, a.UpdatedAt, a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update assistant: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("assistant %d: %w", a.ID, sql.ErrNoRows)
	}
	return nil
}

func (r *assistantRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM assistants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete assistant: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("assistant %d: %w", id, sql.ErrNoRows)
	}
	return nil
}
