package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agendasalud/clinic-api/internal/model"
)

// Sentinel errors returned by the guarded write paths. Services translate
// them into the caller-facing rejection.
var (
	// ErrSlotTaken signals the partial unique index on live appointment
	// slots rejected an insert or update.
	ErrSlotTaken = errors.New("appointment slot already taken")

	// ErrPatientActive signals a permanent delete attempted on a patient
	// whose active flag is still set.
	ErrPatientActive = errors.New("patient is still active")
)

// HasAppointmentsError signals a permanent delete blocked by linked
// appointments. Count carries the exact number found.
type HasAppointmentsError struct {
	Count int
}

func (e *HasAppointmentsError) Error() string {
	return fmt.Sprintf("patient has %d linked appointments", e.Count)
}

type PatientRepository interface {
	List(ctx context.Context, includeInactive bool) ([]*model.Patient, error)
	Get(ctx context.Context, id int64) (*model.Patient, error)
	// GetByRut returns sql.ErrNoRows (wrapped) when no record matches.
	GetByRut(ctx context.Context, rut string, includeInactive bool) (*model.Patient, error)
	Create(ctx context.Context, patient *model.Patient) error
	Update(ctx context.Context, patient *model.Patient) error
	// Deactivate flips active 1 -> 0 in a single compare-and-swap update
	// and reports the number of rows changed. Reactivate is the mirror.
	Deactivate(ctx context.Context, id int64) (int64, error)
	Reactivate(ctx context.Context, id int64) (int64, error)
	CountAppointments(ctx context.Context, patientID int64) (int, error)
	// DeleteGuarded runs the permanent-delete guards and the delete in one
	// transaction. Returns ErrPatientActive, *HasAppointmentsError, or a
	// wrapped sql.ErrNoRows on guard failure.
	DeleteGuarded(ctx context.Context, id int64) error
}

type AppointmentRepository interface {
	Create(ctx context.Context, apt *model.Appointment) error
	Get(ctx context.Context, id int64) (*model.Appointment, error)
	List(ctx context.Context) ([]*model.AppointmentDetail, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*model.AppointmentDetail, error)
	ListByPhysician(ctx context.Context, physicianID int64) ([]*model.AppointmentDetail, error)
	Update(ctx context.Context, apt *model.Appointment) error
	UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) error
	Cancel(ctx context.Context, id int64, reason, details, cancelledBy string, at time.Time) error
	UpdateNotes(ctx context.Context, id int64, medicalNotes string) error
	Delete(ctx context.Context, id int64) error
	// FindConflict returns the non-cancelled appointment occupying the
	// physician/date/time slot, or nil when the slot is free.
	FindConflict(ctx context.Context, physicianID int64, date, timeOfDay string) (*model.Appointment, error)
}

type PhysicianRepository interface {
	List(ctx context.Context) ([]*model.Physician, error)
	Get(ctx context.Context, id int64) (*model.Physician, error)
	Create(ctx context.Context, p *model.Physician) error
	Update(ctx context.Context, p *model.Physician) error
	Delete(ctx context.Context, id int64) error
}

type AssistantRepository interface {
	List(ctx context.Context) ([]*model.Assistant, error)
	Get(ctx context.Context, id int64) (*model.Assistant, error)
	Create(ctx context.Context, a *model.Assistant) error
	Update(ctx context.Context, a *model.Assistant) error
	Delete(ctx context.Context, id int64) error
}

type AdministratorRepository interface {
	List(ctx context.Context) ([]*model.Administrator, error)
	Get(ctx context.Context, id int64) (*model.Administrator, error)
	Create(ctx context.Context, a *model.Administrator) error
	Update(ctx context.Context, a *model.Administrator) error
	Delete(ctx context.Context, id int64) error
}

type AuthRepository interface {
	// FindByEmail scans patients, physicians, assistants and administrators
	// in that order, tagging each match with its role.
	FindByEmail(ctx context.Context, email string) ([]*model.AuthMatch, error)
}

type ReportRepository interface {
	Appointments(ctx context.Context, req *model.AppointmentReportRequest) ([]*model.AppointmentDetail, error)
	PhysicianWorkload(ctx context.Context) ([]*model.PhysicianWorkload, error)
	PatientVisits(ctx context.Context, includeInactive bool) ([]*model.PatientVisits, error)
	// SaveRecord and History return ErrNoHistoryTable when report_history
	// does not exist; the service falls back to the reports directory.
	SaveRecord(ctx context.Context, rec *model.ReportRecord) error
	History(ctx context.Context) ([]*model.ReportRecord, error)
	Statistics(ctx context.Context) (*model.Statistics, error)
}

// ErrNoHistoryTable signals the optional report_history table is absent.
var ErrNoHistoryTable = errors.New("report_history table does not exist")
