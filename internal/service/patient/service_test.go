package patient

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendasalud/clinic-api/internal/model"
	"github.com/agendasalud/clinic-api/internal/repository"
	apperrors "github.com/agendasalud/clinic-api/pkg/errors"
)

type fakePatientRepo struct {
	patients map[int64]*model.Patient
	byRut    map[string]*model.Patient
	counts   map[int64]int
	updates  int
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{
		patients: map[int64]*model.Patient{},
		byRut:    map[string]*model.Patient{},
		counts:   map[int64]int{},
	}
}

func (f *fakePatientRepo) add(p *model.Patient) {
	f.patients[p.ID] = p
	f.byRut[p.Rut] = p
}

func (f *fakePatientRepo) List(_ context.Context, includeInactive bool) ([]*model.Patient, error) {
	out := []*model.Patient{}
	for _, p := range f.patients {
		if includeInactive || p.Active == 1 {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePatientRepo) Get(_ context.Context, id int64) (*model.Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, fmt.Errorf("patient %d: %w", id, sql.ErrNoRows)
	}
	return p, nil
}

func (f *fakePatientRepo) GetByRut(_ context.Context, rut string, includeInactive bool) (*model.Patient, error) {
	p, ok := f.byRut[rut]
	if !ok || (!includeInactive && p.Active != 1) {
		return nil, fmt.Errorf("patient rut %s: %w", rut, sql.ErrNoRows)
	}
	return p, nil
}

func (f *fakePatientRepo) Create(_ context.Context, p *model.Patient) error {
	p.ID = int64(len(f.patients) + 1)
	p.Active = 1
	f.add(p)
	return nil
}

func (f *fakePatientRepo) Update(_ context.Context, p *model.Patient) error {
	existing, ok := f.patients[p.ID]
	if !ok {
		return fmt.Errorf("patient %d: %w", p.ID, sql.ErrNoRows)
	}
	p.Active = existing.Active
	f.add(p)
	f.updates++
	return nil
}

func (f *fakePatientRepo) Deactivate(_ context.Context, id int64) (int64, error) {
	p, ok := f.patients[id]
	if !ok || p.Active != 1 {
		return 0, nil
	}
	p.Active = 0
	f.updates++
	return 1, nil
}

func (f *fakePatientRepo) Reactivate(_ context.Context, id int64) (int64, error) {
	p, ok := f.patients[id]
	if !ok || p.Active != 0 {
		return 0, nil
	}
	p.Active = 1
	f.updates++
	return 1, nil
}

func (f *fakePatientRepo) CountAppointments(_ context.Context, patientID int64) (int, error) {
	return f.counts[patientID], nil
}

func (f *fakePatientRepo) DeleteGuarded(_ context.Context, id int64) error {
	p, ok := f.patients[id]
	if !ok {
		return fmt.Errorf("patient %d: %w", id, sql.ErrNoRows)
	}
	if p.Active == 1 {
		return repository.ErrPatientActive
	}
	if n := f.counts[id]; n > 0 {
		return &repository.HasAppointmentsError{Count: n}
	}
	delete(f.patients, id)
	delete(f.byRut, p.Rut)
	return nil
}

func TestCreateRejectsDuplicateRut(t *testing.T) {
	repo := newFakePatientRepo()
	repo.add(&model.Patient{ID: 1, Rut: "12345678-5", Active: 1})
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), &model.CreatePatientRequest{
		Rut:       "12345678-5",
		FirstName: "Ana",
		LastName:  "Rojas",
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
	assert.Contains(t, appErr.Message, "12345678-5")
	assert.Contains(t, appErr.Message, "ya está registrado")
}

func TestDeactivateAlreadyInactive(t *testing.T) {
	repo := newFakePatientRepo()
	repo.add(&model.Patient{ID: 1, Rut: "12345678-5", Active: 0})
	svc := NewService(repo)

	err := svc.Deactivate(context.Background(), 1)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrPreconditionFailed, appErr.Code)
	assert.Equal(t, "El paciente ya está desactivado", appErr.Message)
	assert.Zero(t, repo.updates, "no update should be issued")
}

func TestDeactivateMissingPatient(t *testing.T) {
	svc := NewService(newFakePatientRepo())

	err := svc.Deactivate(context.Background(), 99)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestReactivateAlreadyActive(t *testing.T) {
	repo := newFakePatientRepo()
	repo.add(&model.Patient{ID: 1, Rut: "12345678-5", Active: 1})
	svc := NewService(repo)

	err := svc.Reactivate(context.Background(), 1)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrPreconditionFailed, appErr.Code)
	assert.Equal(t, "El paciente ya está activo", appErr.Message)
	assert.Zero(t, repo.updates)
}

func TestDeactivateThenReactivate(t *testing.T) {
	repo := newFakePatientRepo()
	repo.add(&model.Patient{ID: 1, Rut: "12345678-5", Active: 1})
	svc := NewService(repo)

	require.NoError(t, svc.Deactivate(context.Background(), 1))
	assert.Equal(t, 0, repo.patients[1].Active)

	require.NoError(t, svc.Reactivate(context.Background(), 1))
	assert.Equal(t, 1, repo.patients[1].Active)
}

func TestDeleteRequiresInactive(t *testing.T) {
	repo := newFakePatientRepo()
	repo.add(&model.Patient{ID: 1, Rut: "12345678-5", Active: 1})
	svc := NewService(repo)

	err := svc.Delete(context.Background(), 1)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrPreconditionFailed, appErr.Code)
	assert.Equal(t, "El paciente aún está activo", appErr.Message)
	assert.Contains(t, repo.patients, int64(1), "patient must not be deleted")
}

func TestDeleteBlockedByAppointments(t *testing.T) {
	repo := newFakePatientRepo()
	repo.add(&model.Patient{ID: 1, Rut: "12345678-5", Active: 0})
	repo.counts[1] = 3
	svc := NewService(repo)

	err := svc.Delete(context.Background(), 1)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
	assert.Contains(t, appErr.Message, "3 citas asociadas")
	assert.Contains(t, repo.patients, int64(1))
}

func TestDeleteInactiveWithoutAppointments(t *testing.T) {
	repo := newFakePatientRepo()
	repo.add(&model.Patient{ID: 1, Rut: "12345678-5", Active: 0})
	svc := NewService(repo)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.NotContains(t, repo.patients, int64(1))
}

func TestCheckRut(t *testing.T) {
	repo := newFakePatientRepo()
	repo.add(&model.Patient{ID: 1, Rut: "12345678-5", Active: 1})
	svc := NewService(repo)

	check, err := svc.CheckRut(context.Background(), "12345678-5", false)
	require.NoError(t, err)
	assert.True(t, check.Exists)
	require.NotNil(t, check.Patient)
	assert.Equal(t, int64(1), check.Patient.ID)

	check, err = svc.CheckRut(context.Background(), "87654321-4", false)
	require.NoError(t, err)
	assert.False(t, check.Exists)
	assert.Nil(t, check.Patient)
}
