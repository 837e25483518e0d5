package interview

import (
	"github.com/jhoicas/recruitment-api/internal/domain"
	"github.com/jhoicas/recruitment-api/internal/domain/entity"
	"github.com/jhoicas/recruitment-api/internal/domain/policy"
)

func authorize(actor *entity.User, action policy.Action, resource policy.Resource) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}
	return policy.Authorize(actor.Role, action, resource)
}
