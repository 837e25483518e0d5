package usecase

import (
	"github.com/jhoicas/recruitment-api/internal/application/dto"
	"github.com/jhoicas/recruitment-api/internal/domain"
	"github.com/jhoicas/recruitment-api/internal/domain/entity"
	"github.com/jhoicas/recruitment-api/internal/domain/policy"
	"github.com/jhoicas/recruitment-api/internal/domain/repository"
)

// authorize exige un actor autenticado y consulta la tabla de políticas.
func authorize(actor *entity.User, action policy.Action, resource policy.Resource) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}
	return policy.Authorize(actor.Role, action, resource)
}

func pageResponse(p repository.Page) dto.PageResponse {
	return dto.PageResponse{Skip: p.Skip, Limit: p.Limit}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
