package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/recruitment-api/internal/application/dto"
	"github.com/jhoicas/recruitment-api/internal/application/ports"
	"github.com/jhoicas/recruitment-api/internal/domain"
	"github.com/jhoicas/recruitment-api/internal/domain/entity"
	"github.com/jhoicas/recruitment-api/internal/domain/policy"
	"github.com/jhoicas/recruitment-api/internal/domain/repository"
)

// EmailTemplateUseCase administración de plantillas de correo.
type EmailTemplateUseCase struct {
	tx       ports.TxRunner
	renderer ports.TemplateRenderer
	log      zerolog.Logger
}

// NewEmailTemplateUseCase construye el caso de uso. El renderer valida la sintaxis y genera vistas previas.
func NewEmailTemplateUseCase(tx ports.TxRunner, renderer ports.TemplateRenderer, log zerolog.Logger) *EmailTemplateUseCase {
	return &EmailTemplateUseCase{tx: tx, renderer: renderer, log: log}
}

// Create valida la sintaxis de asunto y cuerpo y persiste la plantilla (activa por defecto).
func (uc *EmailTemplateUseCase) Create(ctx context.Context, actor *entity.User, in dto.CreateEmailTemplateRequest) (*dto.EmailTemplateResponse, error) {
	if err := authorize(actor, policy.Create, policy.EmailTemplate); err != nil {
		return nil, err
	}
	if err := uc.validateSyntax(in.SubjectTemplate, in.HTMLContent); err != nil {
		return nil, err
	}
	tpl := &entity.EmailTemplate{
		Name:            in.Name,
		Description:     in.Description,
		Type:            in.Type,
		SubjectTemplate: in.SubjectTemplate,
		HTMLContent:     in.HTMLContent,
		IsActive:        in.IsActive == nil || *in.IsActive,
	}
	tpl.StampCreated(actor.ActorID(), time.Now().UTC())
	if err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		return repos.EmailTemplates.Create(ctx, tpl)
	}); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("template_id", tpl.ID).Str("type", tpl.Type).Msg("plantilla de correo creada")
	return entityToEmailTemplateResponse(tpl), nil
}

// GetByID obtiene una plantilla.
func (uc *EmailTemplateUseCase) GetByID(ctx context.Context, id int64) (*dto.EmailTemplateResponse, error) {
	var tpl *entity.EmailTemplate
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		tpl, err = mustEmailTemplate(ctx, repos, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entityToEmailTemplateResponse(tpl), nil
}

// List lista plantillas por tipo y estado.
func (uc *EmailTemplateUseCase) List(ctx context.Context, filter repository.EmailTemplateFilter, page repository.Page) ([]dto.EmailTemplateResponse, error) {
	var list []*entity.EmailTemplate
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		list, err = repos.EmailTemplates.List(ctx, filter, page)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmailTemplateResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *entityToEmailTemplateResponse(t))
	}
	return out, nil
}

// Update reemplaza los campos presentes revalidando la sintaxis resultante.
func (uc *EmailTemplateUseCase) Update(ctx context.Context, actor *entity.User, id int64, in dto.UpdateEmailTemplateRequest) (*dto.EmailTemplateResponse, error) {
	if err := authorize(actor, policy.Update, policy.EmailTemplate); err != nil {
		return nil, err
	}
	var tpl *entity.EmailTemplate
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		tpl, err = mustEmailTemplate(ctx, repos, id)
		if err != nil {
			return err
		}
		setString(&tpl.Name, in.Name)
		setString(&tpl.Description, in.Description)
		setString(&tpl.Type, in.Type)
		setString(&tpl.SubjectTemplate, in.SubjectTemplate)
		setString(&tpl.HTMLContent, in.HTMLContent)
		if in.IsActive != nil {
			tpl.IsActive = *in.IsActive
		}
		if err := uc.validateSyntax(tpl.SubjectTemplate, tpl.HTMLContent); err != nil {
			return err
		}
		tpl.StampUpdated(actor.ActorID(), time.Now().UTC())
		return repos.EmailTemplates.Update(ctx, tpl)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("template_id", id).Msg("plantilla de correo actualizada")
	return entityToEmailTemplateResponse(tpl), nil
}

// Delete elimina una plantilla.
func (uc *EmailTemplateUseCase) Delete(ctx context.Context, actor *entity.User, id int64) error {
	if err := authorize(actor, policy.Delete, policy.EmailTemplate); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(repos repository.Repositories) error {
		if _, err := mustEmailTemplate(ctx, repos, id); err != nil {
			return err
		}
		return repos.EmailTemplates.Delete(ctx, id)
	})
}

// Preview renderiza asunto y cuerpo con las variables dadas, sin enviar nada.
func (uc *EmailTemplateUseCase) Preview(ctx context.Context, actor *entity.User, id int64, vars map[string]any) (*dto.PreviewEmailTemplateResponse, error) {
	if err := authorize(actor, policy.Read, policy.EmailTemplate); err != nil {
		return nil, err
	}
	out, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	subject, err := uc.renderer.Render(out.SubjectTemplate, vars)
	if err != nil {
		return nil, domain.Errorf(domain.ErrValidation, "Failed to render template: %v", err)
	}
	body, err := uc.renderer.Render(out.HTMLContent, vars)
	if err != nil {
		return nil, domain.Errorf(domain.ErrValidation, "Failed to render template: %v", err)
	}
	return &dto.PreviewEmailTemplateResponse{Subject: subject, HTMLContent: body}, nil
}

func (uc *EmailTemplateUseCase) validateSyntax(subject, body string) error {
	for _, src := range []string{subject, body} {
		if err := uc.renderer.Validate(src); err != nil {
			return domain.Errorf(domain.ErrValidation, "Invalid template syntax: %v", err)
		}
	}
	return nil
}

func mustEmailTemplate(ctx context.Context, repos repository.Repositories, id int64) (*entity.EmailTemplate, error) {
	tpl, err := repos.EmailTemplates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, domain.NotFound("Email template")
	}
	return tpl, nil
}

func entityToEmailTemplateResponse(t *entity.EmailTemplate) *dto.EmailTemplateResponse {
	return &dto.EmailTemplateResponse{
		ID:              t.ID,
		Name:            t.Name,
		Description:     t.Description,
		Type:            t.Type,
		SubjectTemplate: t.SubjectTemplate,
		HTMLContent:     t.HTMLContent,
		IsActive:        t.IsActive,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}
