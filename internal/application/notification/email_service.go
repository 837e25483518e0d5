// Package notification entrega correos transaccionales a partir de plantillas persistidas.
package notification

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/recruitment-api/internal/application/ports"
	"github.com/jhoicas/recruitment-api/internal/domain"
	"github.com/jhoicas/recruitment-api/internal/domain/repository"
)

// EmailService busca la plantilla activa, la renderiza y la entrega por el Mailer.
type EmailService struct {
	renderer ports.TemplateRenderer
	mailer   ports.Mailer
	log      zerolog.Logger
}

// NewEmailService construye el servicio.
func NewEmailService(renderer ports.TemplateRenderer, mailer ports.Mailer, log zerolog.Logger) *EmailService {
	return &EmailService{renderer: renderer, mailer: mailer, log: log}
}

// Send envía a recipient la plantilla activa de templateType (filtrada por name si no es vacío).
// Sin plantilla activa devuelve un error ErrTemplateNotFound; un fallo SMTP devuelve ErrEmailDelivery.
// No hay reintentos.
func (s *EmailService) Send(
	ctx context.Context,
	templates repository.EmailTemplateRepository,
	recipient, templateType, name string,
	vars map[string]any,
) error {
	tpl, err := templates.GetActive(ctx, templateType, name)
	if err != nil {
		return err
	}
	if tpl == nil {
		return domain.Errorf(domain.ErrTemplateNotFound, "No active template found for type: %s", templateType)
	}

	subject, err := s.renderer.Render(tpl.SubjectTemplate, vars)
	if err != nil {
		s.log.Error().Err(err).Int64("template_id", tpl.ID).Msg("renderizar asunto")
		return domain.Errorf(domain.ErrValidation, "Failed to render template: %v", err)
	}
	body, err := s.renderer.Render(tpl.HTMLContent, vars)
	if err != nil {
		s.log.Error().Err(err).Int64("template_id", tpl.ID).Msg("renderizar cuerpo")
		return domain.Errorf(domain.ErrValidation, "Failed to render template: %v", err)
	}

	if err := s.mailer.Send(ctx, ports.EmailMessage{To: recipient, Subject: subject, HTMLBody: body}); err != nil {
		s.log.Error().Err(err).Str("to", recipient).Str("type", templateType).Msg("envío de correo fallido")
		return domain.Errorf(domain.ErrEmailDelivery, "Failed to send email: %v", err)
	}
	s.log.Info().Str("to", recipient).Str("type", templateType).Msg("correo enviado")
	return nil
}
