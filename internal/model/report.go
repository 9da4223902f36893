package model

import "time"

// AppointmentReportRequest filters the appointment report by date range and
// optionally by physician and status.
type AppointmentReportRequest struct {
	DateFrom    string `json:"date_from" binding:"required,datetime=2006-01-02"`
	DateTo      string `json:"date_to" binding:"required,datetime=2006-01-02"`
	PhysicianID *int64 `json:"physician_id"`
	Status      string `json:"status"`
}

type PatientReportRequest struct {
	IncludeInactive bool `json:"include_inactive"`
}

// AppointmentReport bundles the matching rows with per-status counts.
type AppointmentReport struct {
	Appointments []*AppointmentDetail `json:"appointments"`
	CountsByStatus map[string]int     `json:"counts_by_status"`
	Total        int                  `json:"total"`
}

// PhysicianWorkload is one row of the physician report.
type PhysicianWorkload struct {
	PhysicianID int64  `db:"physician_id" json:"physician_id"`
	Name        string `db:"name" json:"name"`
	Specialty   string `db:"specialty" json:"specialty"`
	Scheduled   int    `db:"scheduled" json:"scheduled"`
	Confirmed   int    `db:"confirmed" json:"confirmed"`
	Completed   int    `db:"completed" json:"completed"`
	Cancelled   int    `db:"cancelled" json:"cancelled"`
	NoShow      int    `db:"no_show" json:"no_show"`
	Total       int    `db:"total" json:"total"`
}

// PatientVisits is one row of the patient report.
type PatientVisits struct {
	PatientID       int64   `db:"patient_id" json:"patient_id"`
	Name            string  `db:"name" json:"name"`
	Rut             string  `db:"rut" json:"rut"`
	Active          int     `db:"active" json:"active"`
	Appointments    int     `db:"appointments" json:"appointments"`
	LastAppointment *string `db:"last_appointment" json:"last_appointment,omitempty"`
}

type SaveReportRequest struct {
	Type    string      `json:"type" binding:"required"`
	Title   string      `json:"title"`
	Payload interface{} `json:"payload" binding:"required"`
}

// ReportRecord is a saved report, persisted in report_history and mirrored
// as a JSON file under the reports directory.
type ReportRecord struct {
	ID        int64     `db:"id" json:"id"`
	Type      string    `db:"type" json:"type"`
	Title     string    `db:"title" json:"title"`
	FileName  string    `db:"file_name" json:"file_name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Statistics are the dashboard totals.
type Statistics struct {
	PatientsActive       int            `json:"patients_active"`
	PatientsInactive     int            `json:"patients_inactive"`
	Physicians           int            `json:"physicians"`
	AppointmentsByStatus map[string]int `json:"appointments_by_status"`
	AppointmentsTotal    int            `json:"appointments_total"`
}
