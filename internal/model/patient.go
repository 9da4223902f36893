package model

import "time"

// Patient active flag: 1 active, 0 soft-deleted. Permanent deletion is only
// permitted for inactive patients with zero linked appointments.
type Patient struct {
	ID        int64     `db:"id" json:"id"`
	Rut       string    `db:"rut" json:"rut"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	Address   string    `db:"address" json:"address"`
	BirthDate string    `db:"birth_date" json:"birth_date"`
	Gender    string    `db:"gender" json:"gender"`
	Active    int       `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type CreatePatientRequest struct {
	Rut       string `json:"rut" binding:"required,rut"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	BirthDate string `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	Gender    string `json:"gender"`
}

type UpdatePatientRequest struct {
	Rut       string `json:"rut" binding:"required,rut"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	BirthDate string `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	Gender    string `json:"gender"`
}

// RutCheck is the payload of the RUT existence lookup.
type RutCheck struct {
	Exists  bool     `json:"exists"`
	Patient *Patient `json:"patient,omitempty"`
}
