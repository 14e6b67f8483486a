package services

import (
	"fmt"

	"workshopmailer/internal/config"
	"workshopmailer/internal/models"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"gopkg.in/gomail.v2"
)

// Mailer delivers a single email through an external provider.
type Mailer interface {
	Send(toEmail, toName, subject, plainContent, htmlContent string) error
}

// NewMailer builds the provider selected by MAIL_PROVIDER.
func NewMailer(cfg *config.Config) (Mailer, error) {
	switch cfg.MailProvider {
	case config.ProviderSMTP:
		return NewSMTPMailer(cfg), nil
	case config.ProviderSendGrid:
		return NewSendGridMailer(cfg), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.MailProvider)
	}
}

// SMTPMailer sends through a plain SMTP server (Gmail app passwords in the
// usual deployment). Port 465 means implicit TLS, anything else STARTTLS.
type SMTPMailer struct {
	dialer    *gomail.Dialer
	fromEmail string
	fromName  string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SenderEmail, cfg.SenderPassword)
	if cfg.SMTPPort == 465 {
		dialer.SSL = true
	}
	return &SMTPMailer{
		dialer:    dialer,
		fromEmail: cfg.SenderEmail,
		fromName:  cfg.SenderName,
	}
}

func (m *SMTPMailer) Send(toEmail, toName, subject, plainContent, htmlContent string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.fromEmail, m.fromName)
	msg.SetAddressHeader("To", toEmail, toName)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", plainContent)
	msg.AddAlternative("text/html", htmlContent)
	return m.dialer.DialAndSend(msg)
}

// SendGridMailer sends through the SendGrid API for deployments without SMTP
// credentials.
type SendGridMailer struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewSendGridMailer(cfg *config.Config) *SendGridMailer {
	return &SendGridMailer{
		client:    sendgrid.NewSendClient(cfg.SendGridAPIKey),
		fromEmail: cfg.SendGridFromEmail,
		fromName:  cfg.SenderName,
	}
}

func (m *SendGridMailer) Send(toEmail, toName, subject, plainContent, htmlContent string) error {
	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainContent, htmlContent)

	response, err := m.client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email to %s: %d", toEmail, response.StatusCode)
	}
	return nil
}

// EmailService composes the workshop emails and hands them to the Mailer.
type EmailService struct {
	mailer        Mailer
	workshopTitle string
	workshopLink  string
}

func NewEmailService(mailer Mailer, cfg *config.Config) *EmailService {
	return &EmailService{
		mailer:        mailer,
		workshopTitle: cfg.WorkshopTitle,
		workshopLink:  cfg.WorkshopLink,
	}
}

// Send composes and delivers the email for the given reminder kind.
// It returns the subject used, for the audit log.
func (s *EmailService) Send(kind models.ReminderKind, candidate models.Candidate) (string, error) {
	var subject, plainContent, htmlContent string

	switch kind {
	case models.KindConfirmation:
		subject, plainContent, htmlContent = s.confirmationEmail(candidate)
	case models.KindOneHourReminder:
		subject, plainContent, htmlContent = s.oneHourReminderEmail(candidate)
	case models.KindStartingNow:
		subject, plainContent, htmlContent = s.startingNowEmail(candidate)
	default:
		return "", fmt.Errorf("unknown reminder kind %q", kind)
	}

	return subject, s.mailer.Send(candidate.Email, candidate.Name, subject, plainContent, htmlContent)
}

func (s *EmailService) confirmationEmail(c models.Candidate) (string, string, string) {
	subject := fmt.Sprintf("Congratulations %s! Your %s registration is confirmed", c.Name, s.workshopTitle)
	when := c.WorkshopTime.Format("Mon Jan 2, 3:04 PM")

	plainContent := fmt.Sprintf("Dear %s, You are confirmed for the %s on %s. Join here: %s",
		c.Name, s.workshopTitle, when, s.workshopLink)

	htmlContent := fmt.Sprintf("<h2>Registration Confirmed</h2><p>Dear <b>%s</b>,</p><p>You are confirmed for the <b>%s</b> on %s.</p><p><a href=\"%s\">Join Here</a></p>",
		c.Name, s.workshopTitle, when, s.workshopLink)

	return subject, plainContent, htmlContent
}

func (s *EmailService) oneHourReminderEmail(c models.Candidate) (string, string, string) {
	subject := fmt.Sprintf("Reminder: %s starts in 1 hour", s.workshopTitle)
	when := c.WorkshopTime.Format("Mon Jan 2, 3:04 PM")

	plainContent := fmt.Sprintf("Dear %s, Your workshop %s starts in 1 hour (%s). Join here: %s",
		c.Name, s.workshopTitle, when, s.workshopLink)

	htmlContent := fmt.Sprintf("<h2>Workshop Reminder</h2><p>Dear <b>%s</b>,</p><p>Your workshop <b>%s</b> starts in 1 hour (%s).</p><p><a href=\"%s\">Join Here</a></p>",
		c.Name, s.workshopTitle, when, s.workshopLink)

	return subject, plainContent, htmlContent
}

func (s *EmailService) startingNowEmail(c models.Candidate) (string, string, string) {
	subject := fmt.Sprintf("%s is starting now!", s.workshopTitle)

	plainContent := fmt.Sprintf("Dear %s, The workshop %s is starting now! Join here: %s",
		c.Name, s.workshopTitle, s.workshopLink)

	htmlContent := fmt.Sprintf("<h2>Starting Now</h2><p>Dear <b>%s</b>,</p><p>The workshop <b>%s</b> is starting now!</p><p><a href=\"%s\">Join Here</a></p>",
		c.Name, s.workshopTitle, s.workshopLink)

	return subject, plainContent, htmlContent
}
