package repository

import (
	"context"

	"github.com/jhoicas/recruitment-api/internal/domain/entity"
)

// InterviewTemplateRepository puerto de persistencia para plantillas y sus etapas.
// Create inserta la cabecera y todas las etapas; GetByID devuelve la plantilla con etapas ordenadas.
type InterviewTemplateRepository interface {
	Create(ctx context.Context, tpl *entity.InterviewTemplate) error
	GetByID(ctx context.Context, id int64) (*entity.InterviewTemplate, error)
	Update(ctx context.Context, tpl *entity.InterviewTemplate) error
	List(ctx context.Context, activeOnly bool, page Page) ([]*entity.InterviewTemplate, error)
	Delete(ctx context.Context, id int64) error
}
