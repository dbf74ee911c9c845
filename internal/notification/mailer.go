package notification

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"go-calypso/internal/events"

	"github.com/jordan-wright/email"
	"go.uber.org/zap"
)

var ErrNoRecipients = errors.New("notification: no recipients configured")

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Mailer sends staff notifications over SMTP.
type Mailer struct {
	cfg        SMTPConfig
	recipients []string
	send       func(e *email.Email, addr string, auth smtp.Auth) error
	logger     *zap.Logger
}

func NewMailer(cfg SMTPConfig, recipients []string, logger ...*zap.Logger) *Mailer {
	l := zap.L().Named("notification.mailer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.mailer")
	}
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	return &Mailer{
		cfg:        cfg,
		recipients: recipients,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
		logger: l,
	}
}

func (m *Mailer) NotifyPendingApproval(ctx context.Context, event events.VisitLifecycleEvent) error {
	if len(m.recipients) == 0 {
		return ErrNoRecipients
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	e := email.NewEmail()
	e.From = m.cfg.From
	e.To = m.recipients
	e.Subject = fmt.Sprintf("Visita pendiente de aprobación: %s", event.VisitorName)
	e.Text = []byte(pendingApprovalBody(event))

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}

	if err := m.send(e, addr, auth); err != nil {
		return fmt.Errorf("notification: send pending approval: %w", err)
	}
	m.logger.Info("pending approval email sent",
		zap.String("visit_id", event.VisitID),
		zap.Int("recipients", len(m.recipients)),
	)
	return nil
}

func pendingApprovalBody(event events.VisitLifecycleEvent) string {
	var b strings.Builder
	b.WriteString("Un visitante se registró y espera aprobación.\n\n")
	fmt.Fprintf(&b, "Visitante: %s\n", event.VisitorName)
	fmt.Fprintf(&b, "Documento: %s\n", event.DocumentNumber)
	if event.Purpose != "" {
		fmt.Fprintf(&b, "Motivo: %s\n", event.Purpose)
	}
	fmt.Fprintf(&b, "Solicitud: %s\n", event.OccurredAt.In(time.Local).Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Referencia: %s\n", event.VisitID)
	return b.String()
}
