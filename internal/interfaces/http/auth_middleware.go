package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/recruitment-api/internal/domain"
	"github.com/jhoicas/recruitment-api/internal/domain/entity"
	"github.com/jhoicas/recruitment-api/internal/domain/policy"
)

// LocalUser clave de c.Locals con el *entity.User autenticado.
const LocalUser = "current_user"

// CurrentUserResolver resuelve el usuario activo a partir del token (auth.AuthUseCase).
type CurrentUserResolver interface {
	ResolveCurrentUser(ctx context.Context, token string) (*entity.User, error)
}

// AuthMiddleware valida el Bearer Token, carga el usuario desde la base y lo deja en c.Locals.
// El rol que se usa después es el de la base, no el del token.
func AuthMiddleware(resolver CurrentUserResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return domain.Errorf(domain.ErrUnauthenticated, "Not authenticated")
		}
		user, err := resolver.ResolveCurrentUser(c.UserContext(), token)
		if err != nil {
			return err
		}
		c.Locals(LocalUser, user)
		return c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	tok := strings.TrimSpace(parts[1])
	return tok, tok != ""
}

// RequireRole deja pasar solo a los roles indicados. Debe ir después de AuthMiddleware.
func RequireRole(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			return domain.Errorf(domain.ErrUnauthenticated, "Not authenticated")
		}
		for _, r := range roles {
			if user.Role == r {
				return c.Next()
			}
		}
		return domain.Errorf(domain.ErrForbidden, "Not enough permissions")
	}
}

// RequirePermission consulta la tabla de políticas para (acción, recurso).
func RequirePermission(action policy.Action, resource policy.Resource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			return domain.Errorf(domain.ErrUnauthenticated, "Not authenticated")
		}
		if err := policy.Authorize(user.Role, action, resource); err != nil {
			return err
		}
		return c.Next()
	}
}

// GetUser devuelve el usuario autenticado o nil.
func GetUser(c *fiber.Ctx) *entity.User {
	u, _ := c.Locals(LocalUser).(*entity.User)
	return u
}

// GetUserID devuelve el ID del usuario autenticado (0 si no hay).
func GetUserID(c *fiber.Ctx) int64 {
	if u := GetUser(c); u != nil {
		return u.ID
	}
	return 0
}

// GetRole devuelve el rol del usuario autenticado ("" si no hay).
func GetRole(c *fiber.Ctx) string {
	if u := GetUser(c); u != nil {
		return string(u.Role)
	}
	return ""
}
