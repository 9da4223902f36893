package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/agendasalud/clinic-api/internal/repository"
)

type patientRepository struct {
	db *sqlx.DB
}

type appointmentRepository struct {
	db *sqlx.DB
}

type physicianRepository struct {
	db *sqlx.DB
}

type assistantRepository struct {
	db *sqlx.DB
}

type administratorRepository struct {
	db *sqlx.DB
}

type authRepository struct {
	db *sqlx.DB
}

type reportRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func NewPhysicianRepository(db *sqlx.DB) repository.PhysicianRepository {
	return &physicianRepository{db: db}
}

func NewAssistantRepository(db *sqlx.DB) repository.AssistantRepository {
	return &assistantRepository{db: db}
}

func NewAdministratorRepository(db *sqlx.DB) repository.AdministratorRepository {
	return &administratorRepository{db: db}
}

func NewAuthRepository(db *sqlx.DB) repository.AuthRepository {
	return &authRepository{db: db}
}

func NewReportRepository(db *sqlx.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}
