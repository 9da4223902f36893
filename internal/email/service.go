package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/agendasalud/clinic-api/internal/config"
	"github.com/agendasalud/clinic-api/internal/model"
)

// Notifier sends appointment notifications. Callers treat failures as
// best-effort: a failed send never fails the request that triggered it.
type Notifier interface {
	AppointmentCreated(to string, apt *model.Appointment) error
	AppointmentCancelled(to string, apt *model.Appointment) error
}

type smtpNotifier struct {
	dialer *gomail.Dialer
	from   string
}

type noopNotifier struct{}

// NewNotifier returns an SMTP notifier, or a no-op one when no SMTP host is
// configured.
func NewNotifier(cfg config.SMTPConfig) Notifier {
	if cfg.Host == "" {
		return noopNotifier{}
	}
	return &smtpNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (n *smtpNotifier) AppointmentCreated(to string, apt *model.Appointment) error {
	subject := "Confirmación de cita médica"
	body := fmt.Sprintf(
		"Su cita ha sido agendada para el %s a las %s.\nMotivo: %s\nLugar: %s\n",
		apt.Date, apt.Time, apt.Reason, apt.Location,
	)
	return n.send(to, subject, body)
}

func (n *smtpNotifier) AppointmentCancelled(to string, apt *model.Appointment) error {
	subject := "Cita médica cancelada"
	body := fmt.Sprintf(
		"Su cita del %s a las %s ha sido cancelada.\n",
		apt.Date, apt.Time,
	)
	if apt.CancellationReason != nil && *apt.CancellationReason != "" {
		body += fmt.Sprintf("Motivo: %s\n", *apt.CancellationReason)
	}
	return n.send(to, subject, body)
}

func (n *smtpNotifier) send(to, subject, body string) error {
	if to == "" {
		return nil
	}
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (noopNotifier) AppointmentCreated(string, *model.Appointment) error   { return nil }
func (noopNotifier) AppointmentCancelled(string, *model.Appointment) error { return nil }
