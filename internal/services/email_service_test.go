package services

import (
	"testing"
	"time"

	"workshopmailer/internal/config"
	"workshopmailer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEmailService(mailer Mailer) *EmailService {
	return NewEmailService(mailer, &config.Config{
		WorkshopTitle: "Test Workshop",
		WorkshopLink:  "https://example.com/join",
	})
}

func TestSendConfirmationContent(t *testing.T) {
	mailer := &fakeMailer{}
	svc := testEmailService(mailer)
	candidate := models.Candidate{
		Name:         "ALICE",
		Email:        "alice@example.com",
		WorkshopTime: time.Date(2025, 8, 15, 20, 0, 0, 0, time.UTC),
	}

	subject, err := svc.Send(models.KindConfirmation, candidate)
	require.NoError(t, err)

	assert.Equal(t, "Congratulations ALICE! Your Test Workshop registration is confirmed", subject)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "alice@example.com", mailer.sent[0].to)
}

func TestSendSubjectsPerKind(t *testing.T) {
	candidate := models.Candidate{
		Name:         "BOB",
		Email:        "bob@example.com",
		WorkshopTime: time.Date(2025, 8, 15, 20, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		kind    models.ReminderKind
		subject string
	}{
		{models.KindConfirmation, "Congratulations BOB! Your Test Workshop registration is confirmed"},
		{models.KindOneHourReminder, "Reminder: Test Workshop starts in 1 hour"},
		{models.KindStartingNow, "Test Workshop is starting now!"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			mailer := &fakeMailer{}
			svc := testEmailService(mailer)

			subject, err := svc.Send(tt.kind, candidate)
			require.NoError(t, err)
			assert.Equal(t, tt.subject, subject)
		})
	}
}

func TestSendUnknownKind(t *testing.T) {
	mailer := &fakeMailer{}
	svc := testEmailService(mailer)

	_, err := svc.Send(models.ReminderKind("bogus"), models.Candidate{Email: "x@example.com"})
	require.Error(t, err)
	assert.Empty(t, mailer.sent)
}
