package postgres

import (
	"context"
	"fmt"

	"github.com/agendasalud/clinic-api/internal/model"
)

type authScan struct {
	ID        int64  `db:"id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Email     string `db:"email"`
	Specialty string `db:"specialty"`
}

// FindByEmail is a linear unkeyed lookup across the four entity tables, in
// a fixed order: patients, physicians, assistants, administrators. Every
// table is scanned even after a match.
func (r *authRepository) FindByEmail(ctx context.Context, email string) ([]*model.AuthMatch, error) {
	queries := []struct {
		role  string
		query string
	}{
		{model.RolePatient, `SELECT id, first_name, last_name, email, '' AS specialty FROM patients WHERE email = $1`},
		{model.RolePhysician, `SELECT id, first_name, last_name, email, specialty FROM physicians WHERE email = $1`},
		{model.RoleAssistant, `SELECT id, first_name, last_name, email, '' AS specialty FROM assistants WHERE email = $1`},
		{model.RoleAdministrator, `SELECT id, first_name, last_name, email, '' AS specialty FROM administrators WHERE email = $1`},
	}

	matches := []*model.AuthMatch{}
	for _, q := range queries {
		rows := []authScan{}
		if err := r.db.SelectContext(ctx, &rows, q.query, email); err != nil {
			return nil, fmt.Errorf("failed to look up %s by email: %w", q.role, err)
		}
		for _, row := range rows {
			matches = append(matches, &model.AuthMatch{
				Role:      q.role,
				ID:        row.ID,
				FirstName: row.FirstName,
				LastName:  row.LastName,
				Email:     row.Email,
				Specialty: row.Specialty,
			})
		}
	}
	return matches, nil
}
