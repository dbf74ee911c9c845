package notification

import (
	"context"
	"errors"
	"net/smtp"
	"testing"
	"time"

	"go-calypso/internal/events"

	"github.com/jordan-wright/email"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMailer_NotifyPendingApproval(t *testing.T) {
	event := events.VisitLifecycleEvent{
		EventType:      events.VisitSelfRegistered,
		VisitID:        "v-1",
		VisitorName:    "Luisa Gómez",
		DocumentNumber: "52345678",
		Purpose:        "Entrevista",
		OccurredAt:     time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
	}

	t.Run("sends to every recipient", func(t *testing.T) {
		m := NewMailer(SMTPConfig{Host: "smtp.local", Port: 2525, User: "bot@calypso.co"}, []string{"a@calypso.co", "b@calypso.co"}, zap.NewNop())
		var gotAddr string
		var sent *email.Email
		m.send = func(e *email.Email, addr string, auth smtp.Auth) error {
			sent, gotAddr = e, addr
			return nil
		}

		err := m.NotifyPendingApproval(context.Background(), event)

		assert.NoError(t, err)
		assert.Equal(t, "smtp.local:2525", gotAddr)
		assert.Equal(t, "bot@calypso.co", sent.From)
		assert.Equal(t, []string{"a@calypso.co", "b@calypso.co"}, sent.To)
		assert.Contains(t, sent.Subject, "Luisa Gómez")
		assert.Contains(t, string(sent.Text), "52345678")
		assert.Contains(t, string(sent.Text), "Entrevista")
	})

	t.Run("no recipients", func(t *testing.T) {
		m := NewMailer(SMTPConfig{}, nil, zap.NewNop())
		assert.ErrorIs(t, m.NotifyPendingApproval(context.Background(), event), ErrNoRecipients)
	})

	t.Run("smtp failure is wrapped", func(t *testing.T) {
		m := NewMailer(SMTPConfig{Host: "smtp.local", Port: 25}, []string{"a@calypso.co"}, zap.NewNop())
		m.send = func(e *email.Email, addr string, auth smtp.Auth) error {
			return errors.New("connection refused")
		}
		err := m.NotifyPendingApproval(context.Background(), event)
		assert.ErrorContains(t, err, "connection refused")
	})
}
