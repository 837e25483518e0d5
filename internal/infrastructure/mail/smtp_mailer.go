// Package mail adaptadores de ports.Mailer.
package mail

import (
	"context"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/recruitment-api/internal/application/ports"
	"github.com/jhoicas/recruitment-api/pkg/config"
)

var (
	_ ports.Mailer = (*SMTPMailer)(nil)
	_ ports.Mailer = (*LogMailer)(nil)
)

// SMTPMailer entrega correos HTML por SMTP con gomail (una conexión por mensaje).
type SMTPMailer struct {
	from   string
	dialer *gomail.Dialer
}

// NewSMTPMailer construye el mailer con las credenciales configuradas.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		from:   cfg.FromEmail,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

// Send arma el mensaje y lo envía. ctx solo se consulta antes de abrir la conexión.
func (m *SMTPMailer) Send(ctx context.Context, msg ports.EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTMLBody)
	return m.dialer.DialAndSend(gm)
}

// LogMailer registra el correo en vez de enviarlo (SMTP_HOST vacío).
type LogMailer struct {
	log zerolog.Logger
}

// NewLogMailer construye el mailer de desarrollo.
func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, msg ports.EmailMessage) error {
	m.log.Info().Str("to", msg.To).Str("subject", msg.Subject).Int("body_bytes", len(msg.HTMLBody)).Msg("correo no enviado (SMTP deshabilitado)")
	return nil
}

// New elige el adaptador según la configuración.
func New(cfg config.SMTPConfig, log zerolog.Logger) ports.Mailer {
	if cfg.Enabled() {
		return NewSMTPMailer(cfg)
	}
	return NewLogMailer(log)
}
