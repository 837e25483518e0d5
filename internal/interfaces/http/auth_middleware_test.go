package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/recruitment-api/internal/application/auth"
	"github.com/jhoicas/recruitment-api/internal/domain/entity"
	"github.com/jhoicas/recruitment-api/internal/domain/policy"
	"github.com/jhoicas/recruitment-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/recruitment-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/recruitment-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var testJWT = pkgjwt.Config{
	Secret:     "test-secret-key-for-unit-tests",
	Algorithm:  "HS256",
	Issuer:     "recruitment-test",
	ExpMinutes: 60,
}

// authFixture store en memoria con un usuario por rol y el caso de uso de auth.
type authFixture struct {
	store  *memory.Store
	authUC *auth.AuthUseCase
	users  map[entity.Role]*entity.User
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	store := memory.NewStore()
	f := &authFixture{
		store:  store,
		authUC: auth.NewAuthUseCase(store, testJWT, zerolog.Nop()),
		users:  map[entity.Role]*entity.User{},
	}
	for _, role := range []entity.Role{entity.RoleAdmin, entity.RoleRecruiter, entity.RoleInterviewer, entity.RoleCandidate} {
		f.users[role] = f.seedUser(t, string(role)+"@company.com", role, true)
	}
	return f
}

func (f *authFixture) seedUser(t *testing.T, email string, role entity.Role, active bool) *entity.User {
	t.Helper()
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	u := &entity.User{Email: auth.NormalizeEmail(email), PasswordHash: hash, Role: role, IsActive: active}
	require.NoError(t, f.store.Repositories().Users.Create(context.Background(), u))
	return u
}

// tokenFor genera el header Authorization de un usuario sembrado.
func (f *authFixture) tokenFor(t *testing.T, u *entity.User) string {
	t.Helper()
	tok, err := f.authUC.IssueToken(u)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// tokenForRole atajo para los usuarios por rol.
func (f *authFixture) tokenForRole(t *testing.T, role entity.Role) string {
	return f.tokenFor(t, f.users[role])
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para validar el token y cargar el usuario
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(f *authFixture, allowedRoles ...entity.Role) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(zerolog.Nop())})
	app.Get("/protected",
		apphttp.AuthMiddleware(f.authUC),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "role": apphttp.GetRole(c), "user_id": apphttp.GetUserID(c)})
		},
	)
	app.Get("/can-delete-companies",
		apphttp.AuthMiddleware(f.authUC),
		apphttp.RequirePermission(policy.Delete, policy.Company),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) },
	)
	return app
}

// doRequest lanza una petición GET y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body), "cuerpo: %s", raw)
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// El usuario tiene el rol requerido → pasa (HTTP 200).
func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	f := newAuthFixture(t)
	app := buildTestApp(f, entity.RoleAdmin)

	resp := doRequest(t, app, "/protected", f.tokenForRole(t, entity.RoleAdmin))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "ADMIN", body["role"])
	assert.EqualValues(t, f.users[entity.RoleAdmin].ID, body["user_id"])
}

// Varios roles permitidos → cualquiera de ellos pasa.
func TestRequireRole_VariosRolesPermitidos(t *testing.T) {
	f := newAuthFixture(t)
	app := buildTestApp(f, entity.RoleAdmin, entity.RoleRecruiter)

	for _, role := range []entity.Role{entity.RoleAdmin, entity.RoleRecruiter} {
		resp := doRequest(t, app, "/protected", f.tokenForRole(t, role))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, "rol %s", role)
	}
}

// Rol no incluido → 403 con código FORBIDDEN.
func TestRequireRole_CandidatoNoAccedeRutaAdmin(t *testing.T) {
	f := newAuthFixture(t)
	app := buildTestApp(f, entity.RoleAdmin)

	resp := doRequest(t, app, "/protected", f.tokenForRole(t, entity.RoleCandidate))
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, apphttp.CodeForbidden, decodeBody(t, resp)["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeader401(t *testing.T) {
	f := newAuthFixture(t)
	app := buildTestApp(f, entity.RoleAdmin)

	resp := doRequest(t, app, "/protected", "")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))

	body := decodeBody(t, resp)
	assert.Equal(t, apphttp.CodeUnauthenticated, body["code"])
	assert.Equal(t, "Not authenticated", body["detail"])
}

func TestAuthMiddleware_EsquemaNoBearer401(t *testing.T) {
	f := newAuthFixture(t)
	app := buildTestApp(f, entity.RoleAdmin)

	resp := doRequest(t, app, "/protected", "Basic dXNlcjpwYXNz")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalido401(t *testing.T) {
	f := newAuthFixture(t)
	app := buildTestApp(f, entity.RoleAdmin)

	resp := doRequest(t, app, "/protected", "Bearer no.es.un.jwt")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Could not validate credentials", decodeBody(t, resp)["detail"])
}

// Token firmado con otro secreto.
func TestAuthMiddleware_FirmaAjena401(t *testing.T) {
	f := newAuthFixture(t)
	app := buildTestApp(f, entity.RoleAdmin)

	other := testJWT
	other.Secret = "otro-secreto"
	tok, err := pkgjwt.Generate(other, f.users[entity.RoleAdmin].Email, "ADMIN", time.Now())
	require.NoError(t, err)

	resp := doRequest(t, app, "/protected", "Bearer "+tok)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// El subject ya no existe en la base.
func TestAuthMiddleware_UsuarioInexistente401(t *testing.T) {
	f := newAuthFixture(t)
	app := buildTestApp(f, entity.RoleAdmin)

	tok, err := pkgjwt.Generate(testJWT, "ghost@company.com", "ADMIN", time.Now())
	require.NoError(t, err)

	resp := doRequest(t, app, "/protected", "Bearer "+tok)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// Cuenta desactivada → 400 "Inactive user".
func TestAuthMiddleware_UsuarioInactivo400(t *testing.T) {
	f := newAuthFixture(t)
	inactive := f.seedUser(t, "inactive@company.com", entity.RoleAdmin, false)
	app := buildTestApp(f, entity.RoleAdmin)

	resp := doRequest(t, app, "/protected", f.tokenFor(t, inactive))
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, apphttp.CodeInactiveUser, body["code"])
	assert.Equal(t, "Inactive user", body["detail"])
}

// El rol efectivo es el de la base aunque el token diga otra cosa.
func TestAuthMiddleware_RolDesdeLaBase(t *testing.T) {
	f := newAuthFixture(t)
	app := buildTestApp(f, entity.RoleAdmin)

	tok, err := pkgjwt.Generate(testJWT, f.users[entity.RoleCandidate].Email, "ADMIN", time.Now())
	require.NoError(t, err)

	resp := doRequest(t, app, "/protected", "Bearer "+tok)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePermission_ConsultaTablaDePoliticas(t *testing.T) {
	f := newAuthFixture(t)
	app := buildTestApp(f)

	resp := doRequest(t, app, "/can-delete-companies", f.tokenForRole(t, entity.RoleAdmin))
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, app, "/can-delete-companies", f.tokenForRole(t, entity.RoleRecruiter))
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Only admins can delete companies", decodeBody(t, resp)["detail"])
}
