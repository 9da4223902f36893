package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/agendasalud/clinic-api/internal/email"
	"github.com/agendasalud/clinic-api/internal/model"
	"github.com/agendasalud/clinic-api/internal/repository"
	apperrors "github.com/agendasalud/clinic-api/pkg/errors"
)

const defaultPriority = "normal"

// Service owns the appointment lifecycle: the status set, the scheduling
// conflict rule and cancellation metadata. Every other field is opaque
// payload written as received.
type Service struct {
	repo        repository.AppointmentRepository
	patientRepo repository.PatientRepository
	notifier    email.Notifier
	logger      zerolog.Logger
}

func NewService(repo repository.AppointmentRepository, patientRepo repository.PatientRepository, notifier email.Notifier, logger zerolog.Logger) *Service {
	return &Service{
		repo:        repo,
		patientRepo: patientRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

func (s *Service) Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	status := model.AppointmentStatusScheduled
	if req.Status != "" {
		status = model.AppointmentStatus(req.Status)
		if !status.Valid() {
			return nil, apperrors.Validation(fmt.Sprintf("invalid appointment status: %q", req.Status), nil)
		}
	}

	priority := req.Priority
	if priority == "" {
		priority = defaultPriority
	}

	apt := &model.Appointment{
		PatientID:        req.PatientID,
		PhysicianID:      req.PhysicianID,
		Date:             req.Date,
		Time:             req.Time,
		Reason:           req.Reason,
		Notes:            req.Notes,
		MedicalNotes:     req.MedicalNotes,
		PreparationNotes: req.PreparationNotes,
		Specialty:        req.Specialty,
		Location:         req.Location,
		Priority:         priority,
		Status:           status,
	}

	if err := s.repo.Create(ctx, apt); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, apperrors.Conflict(
				"El médico ya tiene una cita agendada en ese horario",
				"Seleccione otro horario disponible",
			)
		}
		return nil, err
	}

	s.notifyPatient(ctx, apt, "created")
	return apt, nil
}

// CheckConflict returns the non-cancelled appointment occupying the slot,
// or nil when the slot is free. Collaborators call it before creating; the
// partial unique index on live slots backstops the race two concurrent
// creates would otherwise win together.
func (s *Service) CheckConflict(ctx context.Context, physicianID int64, date, timeOfDay string) (*model.Appointment, error) {
	return s.repo.FindConflict(ctx, physicianID, date, timeOfDay)
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, err
	}
	return apt, nil
}

func (s *Service) List(ctx context.Context) ([]*model.AppointmentDetail, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*model.AppointmentDetail, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) ListByPhysician(ctx context.Context, physicianID int64) ([]*model.AppointmentDetail, error) {
	return s.repo.ListByPhysician(ctx, physicianID)
}

func (s *Service) Update(ctx context.Context, id int64, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	status := model.AppointmentStatus(req.Status)
	if req.Status == "" {
		status = model.AppointmentStatusScheduled
	} else if !status.Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("invalid appointment status: %q", req.Status), nil)
	}

	priority := req.Priority
	if priority == "" {
		priority = defaultPriority
	}

	apt := &model.Appointment{
		ID:               id,
		PatientID:        req.PatientID,
		PhysicianID:      req.PhysicianID,
		Date:             req.Date,
		Time:             req.Time,
		Reason:           req.Reason,
		Notes:            req.Notes,
		MedicalNotes:     req.MedicalNotes,
		PreparationNotes: req.PreparationNotes,
		Specialty:        req.Specialty,
		Location:         req.Location,
		Priority:         priority,
		Status:           status,
	}

	if err := s.repo.Update(ctx, apt); err != nil {
		switch {
		case errors.Is(err, repository.ErrSlotTaken):
			return nil, apperrors.Conflict(
				"El médico ya tiene una cita agendada en ese horario",
				"Seleccione otro horario disponible",
			)
		case errors.Is(err, sql.ErrNoRows):
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, err
	}
	return apt, nil
}

// UpdateStatus validates the status against the recognized set and applies
// the transition unconditionally. Transitions out of a terminal state are
// permitted but logged, so the permissiveness stays visible in operation.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) error {
	st := model.AppointmentStatus(status)
	if !st.Valid() {
		return apperrors.Validation(fmt.Sprintf("invalid appointment status: %q", status), nil)
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("appointment", err)
		}
		return err
	}

	if current.Status.Terminal() && st != current.Status {
		s.logger.Warn().
			Int64("appointment_id", id).
			Str("from", string(current.Status)).
			Str("to", string(st)).
			Msg("status transition out of terminal state")
	}

	if err := s.repo.UpdateStatus(ctx, id, st); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("appointment", err)
		}
		return err
	}
	return nil
}

func (s *Service) Cancel(ctx context.Context, id int64, req *model.CancelAppointmentRequest) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, err
	}

	if apt.Status.Terminal() && apt.Status != model.AppointmentStatusCancelled {
		s.logger.Warn().
			Int64("appointment_id", id).
			Str("from", string(apt.Status)).
			Msg("cancelling appointment in terminal state")
	}

	now := time.Now()
	if err := s.repo.Cancel(ctx, id, req.CancellationReason, req.CancellationDetails, req.CancelledBy, now); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, err
	}

	apt.Status = model.AppointmentStatusCancelled
	apt.CancellationReason = &req.CancellationReason
	apt.CancellationDetails = &req.CancellationDetails
	apt.CancelledBy = &req.CancelledBy
	apt.CancelledAt = &now
	apt.UpdatedAt = now

	s.notifyPatient(ctx, apt, "cancelled")
	return apt, nil
}

func (s *Service) UpdateNotes(ctx context.Context, id int64, medicalNotes string) error {
	if err := s.repo.UpdateNotes(ctx, id, medicalNotes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("appointment", err)
		}
		return err
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("appointment", err)
		}
		return err
	}
	return nil
}

func (s *Service) notifyPatient(ctx context.Context, apt *model.Appointment, event string) {
	patient, err := s.patientRepo.Get(ctx, apt.PatientID)
	if err != nil || patient.Email == "" {
		return
	}

	switch event {
	case "created":
		err = s.notifier.AppointmentCreated(patient.Email, apt)
	case "cancelled":
		err = s.notifier.AppointmentCancelled(patient.Email, apt)
	}
	if err != nil {
		s.logger.Warn().Err(err).
			Int64("appointment_id", apt.ID).
			Str("event", event).
			Msg("failed to send appointment notification")
	}
}
