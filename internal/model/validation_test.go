package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRut(t *testing.T) {
	valid := []string{
		"12345678-5",
		"12.345.678-5",
		"11111111-1",
		"7775777-5",
	}
	for _, rut := range valid {
		assert.True(t, ValidRut(rut), rut)
	}

	invalid := []string{
		"",
		"12345678",
		"12345678-0",
		"12345678-K",
		"abcdefgh-5",
		"12345678-55",
		"-5",
	}
	for _, rut := range invalid {
		assert.False(t, ValidRut(rut), rut)
	}
}

func TestValidRutAcceptsLowercaseK(t *testing.T) {
	// 20347878 has check digit K.
	assert.True(t, ValidRut("20347878-K"))
	assert.True(t, ValidRut("20347878-k"))
}

func TestAppointmentStatus(t *testing.T) {
	for _, s := range []AppointmentStatus{
		AppointmentStatusScheduled, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCancelled,
		AppointmentStatusNoShow,
	} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, AppointmentStatus("pending").Valid())
	assert.False(t, AppointmentStatus("").Valid())

	assert.False(t, AppointmentStatusScheduled.Terminal())
	assert.False(t, AppointmentStatusConfirmed.Terminal())
	assert.True(t, AppointmentStatusCompleted.Terminal())
	assert.True(t, AppointmentStatusCancelled.Terminal())
	assert.True(t, AppointmentStatusNoShow.Terminal())
}
