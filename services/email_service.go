package services

import (
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/mikczynski/werble-backend/config"
	"github.com/mikczynski/werble-backend/models"
)

// EmailService sends cancellation notices over SMTP. It implements
// CancellationNotifier.
type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
	log    *zerolog.Logger
}

func NewEmailService(cfg *config.Config, log *zerolog.Logger) *EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	return &EmailService{
		config: cfg,
		dialer: dialer,
		log:    log,
	}
}

// NotifyEventCancelled mails every recipient that the event was cancelled.
// Individual delivery failures do not stop the remaining sends.
func (es *EmailService) NotifyEventCancelled(event *models.Event, recipients []models.User) error {
	var failed int
	for _, recipient := range recipients {
		if recipient.Email == "" {
			continue
		}

		m := gomail.NewMessage()
		m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
		m.SetHeader("To", recipient.Email)
		m.SetHeader("Subject", fmt.Sprintf("Werble - %q has been cancelled", event.Name))

		body := fmt.Sprintf(
			"Hello %s,\r\n\r\nThe event %q scheduled for %s has been cancelled by its creator.\r\n\r\nThe Werble team",
			recipient.FirstName,
			event.Name,
			event.StartDatetime.Format("2006-01-02 15:04"),
		)
		m.SetBody("text/plain", body)

		if err := es.dialer.DialAndSend(m); err != nil {
			failed++
			es.log.Warn().Err(err).Str("recipient", recipient.Email).Str("event_id", event.ID).Msg("failed to send cancellation email")
		}
	}

	if failed > 0 {
		return fmt.Errorf("failed to deliver %d of %d cancellation emails", failed, len(recipients))
	}
	return nil
}
