package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendasalud/clinic-api/internal/model"
)

type fakeAuthRepo struct {
	matches map[string][]*model.AuthMatch
}

func (f *fakeAuthRepo) FindByEmail(_ context.Context, email string) ([]*model.AuthMatch, error) {
	return f.matches[email], nil
}

func TestLookupReturnsAllMatches(t *testing.T) {
	repo := &fakeAuthRepo{matches: map[string][]*model.AuthMatch{
		"doctora@clinica.cl": {
			{Role: model.RolePhysician, ID: 4, Email: "doctora@clinica.cl", Specialty: "Cardiología"},
		},
		"compartido@clinica.cl": {
			{Role: model.RolePatient, ID: 1, Email: "compartido@clinica.cl"},
			{Role: model.RoleAssistant, ID: 2, Email: "compartido@clinica.cl"},
		},
	}}
	svc := NewService(repo)

	matches, err := svc.Lookup(context.Background(), "doctora@clinica.cl")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, model.RolePhysician, matches[0].Role)
	assert.Equal(t, "Cardiología", matches[0].Specialty)

	matches, err = svc.Lookup(context.Background(), "compartido@clinica.cl")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, model.RolePatient, matches[0].Role)
	assert.Equal(t, model.RoleAssistant, matches[1].Role)
}

func TestLookupUnknownEmailIsEmptyNotNil(t *testing.T) {
	svc := NewService(&fakeAuthRepo{matches: map[string][]*model.AuthMatch{}})

	matches, err := svc.Lookup(context.Background(), "nadie@clinica.cl")
	require.NoError(t, err)
	assert.NotNil(t, matches)
	assert.Empty(t, matches)
}
