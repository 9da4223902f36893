package patient

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/agendasalud/clinic-api/internal/model"
	"github.com/agendasalud/clinic-api/internal/repository"
	apperrors "github.com/agendasalud/clinic-api/pkg/errors"
)

// Service owns the patient active/inactive lifecycle and the guarded
// permanent delete. Medical history must survive a patient's departure
// unless provably orphaned of appointments, so deletion is two-tier:
// deactivate first, hard-delete only with zero linked appointments.
type Service struct {
	repo repository.PatientRepository
}

func NewService(repo repository.PatientRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, includeInactive bool) ([]*model.Patient, error) {
	return s.repo.List(ctx, includeInactive)
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, err
	}
	return patient, nil
}

func (s *Service) Create(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	existing, err := s.repo.GetByRut(ctx, req.Rut, true)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict(
			fmt.Sprintf("El RUT %s ya está registrado", req.Rut),
			"Verifique el RUT o reactive al paciente existente",
		)
	}

	patient := &model.Patient{
		Rut:       req.Rut,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		BirthDate: req.BirthDate,
		Gender:    req.Gender,
	}
	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *Service) Update(ctx context.Context, id int64, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient := &model.Patient{
		ID:        id,
		Rut:       req.Rut,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		BirthDate: req.BirthDate,
		Gender:    req.Gender,
	}
	if err := s.repo.Update(ctx, patient); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// Deactivate flips the active flag 1 -> 0. The repository applies the guard
// and the write in one statement; a zero row count is disambiguated after
// the fact into not-found versus already-inactive.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	rows, err := s.repo.Deactivate(ctx, id)
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}

	if _, err := s.repo.Get(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("patient", err)
		}
		return err
	}
	return apperrors.PreconditionFailed(
		"El paciente ya está desactivado",
		"Reactive al paciente si desea volver a atenderlo",
	)
}

func (s *Service) Reactivate(ctx context.Context, id int64) error {
	rows, err := s.repo.Reactivate(ctx, id)
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}

	if _, err := s.repo.Get(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("patient", err)
		}
		return err
	}
	return apperrors.PreconditionFailed(
		"El paciente ya está activo",
		"No es necesario reactivarlo",
	)
}

// Delete is permanent and irreversible. Guards: the patient must exist,
// must be inactive, and must have zero linked appointments.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.repo.DeleteGuarded(ctx, id)
	if err == nil {
		return nil
	}

	var hasAppts *repository.HasAppointmentsError
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return apperrors.NotFound("patient", err)
	case errors.Is(err, repository.ErrPatientActive):
		return apperrors.PreconditionFailed(
			"El paciente aún está activo",
			"Debe desactivar al paciente antes de eliminarlo permanentemente",
		)
	case errors.As(err, &hasAppts):
		return apperrors.Conflict(
			fmt.Sprintf("El paciente tiene %d citas asociadas", hasAppts.Count),
			"Mantenga al paciente desactivado para conservar su historial médico",
		)
	}
	return err
}

func (s *Service) CheckRut(ctx context.Context, rut string, includeInactive bool) (*model.RutCheck, error) {
	patient, err := s.repo.GetByRut(ctx, rut, includeInactive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &model.RutCheck{Exists: false}, nil
		}
		return nil, err
	}
	return &model.RutCheck{Exists: true, Patient: patient}, nil
}
