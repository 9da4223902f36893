package model

import "time"

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
)

// Valid reports whether s is one of the recognized appointment statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCancelled,
		AppointmentStatusNoShow:
		return true
	}
	return false
}

// Terminal reports whether no further lifecycle progress is expected after s.
func (s AppointmentStatus) Terminal() bool {
	switch s {
	case AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

// Appointment dates and times are stored as plain strings (YYYY-MM-DD and
// HH:MM): the scheduling rule is exact tuple equality on
// (physician_id, date, time), never time arithmetic.
type Appointment struct {
	ID                  int64             `db:"id" json:"id"`
	PatientID           int64             `db:"patient_id" json:"patient_id"`
	PhysicianID         int64             `db:"physician_id" json:"physician_id"`
	Date                string            `db:"date" json:"date"`
	Time                string            `db:"time" json:"time"`
	Reason              string            `db:"reason" json:"reason"`
	Notes               string            `db:"notes" json:"notes"`
	MedicalNotes        string            `db:"medical_notes" json:"medical_notes"`
	PreparationNotes    string            `db:"preparation_notes" json:"preparation_notes"`
	Specialty           string            `db:"specialty" json:"specialty"`
	Location            string            `db:"location" json:"location"`
	Priority            string            `db:"priority" json:"priority"`
	Status              AppointmentStatus `db:"status" json:"status"`
	CancellationReason  *string           `db:"cancellation_reason" json:"cancellation_reason,omitempty"`
	CancellationDetails *string           `db:"cancellation_details" json:"cancellation_details,omitempty"`
	CancelledBy         *string           `db:"cancelled_by" json:"cancelled_by,omitempty"`
	CancelledAt         *time.Time        `db:"cancelled_at" json:"cancelled_at,omitempty"`
	CreatedAt           time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time         `db:"updated_at" json:"updated_at"`
}

// AppointmentDetail is an appointment row joined with the patient and
// physician directory entries, as returned by the listing endpoints.
type AppointmentDetail struct {
	Appointment
	PatientName        string `db:"patient_name" json:"patient_name"`
	PhysicianName      string `db:"physician_name" json:"physician_name"`
	PhysicianSpecialty string `db:"physician_specialty" json:"physician_specialty"`
}

type CreateAppointmentRequest struct {
	PatientID        int64  `json:"patient_id" binding:"required"`
	PhysicianID      int64  `json:"physician_id" binding:"required"`
	Date             string `json:"date" binding:"required,datetime=2006-01-02"`
	Time             string `json:"time" binding:"required,datetime=15:04"`
	Reason           string `json:"reason"`
	Status           string `json:"status"`
	Priority         string `json:"priority"`
	Notes            string `json:"notes"`
	MedicalNotes     string `json:"medical_notes"`
	PreparationNotes string `json:"preparation_notes"`
	Specialty        string `json:"specialty"`
	Location         string `json:"location"`
}

type UpdateAppointmentRequest struct {
	PatientID        int64  `json:"patient_id" binding:"required"`
	PhysicianID      int64  `json:"physician_id" binding:"required"`
	Date             string `json:"date" binding:"required,datetime=2006-01-02"`
	Time             string `json:"time" binding:"required,datetime=15:04"`
	Reason           string `json:"reason"`
	Status           string `json:"status"`
	Priority         string `json:"priority"`
	Notes            string `json:"notes"`
	MedicalNotes     string `json:"medical_notes"`
	PreparationNotes string `json:"preparation_notes"`
	Specialty        string `json:"specialty"`
	Location         string `json:"location"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CancelAppointmentRequest struct {
	CancellationReason  string `json:"cancellation_reason" binding:"required"`
	CancellationDetails string `json:"cancellation_details"`
	CancelledBy         string `json:"cancelled_by"`
}

type UpdateNotesRequest struct {
	MedicalNotes string `json:"medical_notes" binding:"required"`
}
