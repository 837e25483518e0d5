package repository

import (
	"context"

	"github.com/jhoicas/recruitment-api/internal/domain/entity"
)

// EmailTemplateFilter filtros del listado de plantillas de correo.
type EmailTemplateFilter struct {
	Type     string
	IsActive *bool
}

// EmailTemplateRepository puerto de persistencia para EmailTemplate.
type EmailTemplateRepository interface {
	Create(ctx context.Context, tpl *entity.EmailTemplate) error
	GetByID(ctx context.Context, id int64) (*entity.EmailTemplate, error)
	// GetActive devuelve la primera plantilla activa del tipo (y nombre, si no es vacío).
	GetActive(ctx context.Context, templateType, name string) (*entity.EmailTemplate, error)
	Update(ctx context.Context, tpl *entity.EmailTemplate) error
	List(ctx context.Context, filter EmailTemplateFilter, page Page) ([]*entity.EmailTemplate, error)
	Delete(ctx context.Context, id int64) error
}
