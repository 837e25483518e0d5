package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/recruitment-api/internal/application/dto"
	"github.com/jhoicas/recruitment-api/internal/application/interview"
	"github.com/jhoicas/recruitment-api/internal/application/notification"
	"github.com/jhoicas/recruitment-api/internal/application/ports"
	"github.com/jhoicas/recruitment-api/internal/application/report"
	"github.com/jhoicas/recruitment-api/internal/application/usecase"
	"github.com/jhoicas/recruitment-api/internal/domain/entity"
	"github.com/jhoicas/recruitment-api/internal/infrastructure/export"
	"github.com/jhoicas/recruitment-api/internal/infrastructure/render"
	apphttp "github.com/jhoicas/recruitment-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: app completa sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

type captureMailer struct {
	mu   sync.Mutex
	sent []ports.EmailMessage
}

func (m *captureMailer) Send(_ context.Context, msg ports.EmailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

type apiFixture struct {
	*authFixture
	app    *fiber.App
	mailer *captureMailer
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	f := newAuthFixture(t)
	log := zerolog.Nop()
	renderer := render.NewPongo2Renderer()
	mailer := &captureMailer{}
	emails := notification.NewEmailService(renderer, mailer, log)

	app := apphttp.NewApp(apphttp.ServerConfig{AppName: "recruitment-test", Log: log})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:          f.authUC,
		CompanyUC:       usecase.NewCompanyUseCase(f.store, log),
		JobOpeningUC:    usecase.NewJobOpeningUseCase(f.store, log),
		CandidateUC:     usecase.NewCandidateUseCase(f.store, log),
		ApplicationUC:   usecase.NewApplicationUseCase(f.store, log),
		UserUC:          usecase.NewUserUseCase(f.store, log),
		EmailTemplateUC: usecase.NewEmailTemplateUseCase(f.store, renderer, log),
		TemplateUC:      interview.NewTemplateUseCase(f.store, log),
		ProcessUC:       interview.NewProcessUseCase(f.store, emails, log),
		ReportUC:        report.NewReportUseCase(f.store, export.NewXLSXExporter(), export.NewProcessReportPDF(), log),
	})
	return &apiFixture{authFixture: f, app: app, mailer: mailer}
}

// call lanza una petición JSON; body nil envía cuerpo vacío.
func (f *apiFixture) call(t *testing.T, method, path string, role entity.Role, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", f.tokenForRole(t, role))
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeInto decodifica la respuesta y valida el status esperado.
func decodeInto(t *testing.T, resp *http.Response, status int, out any) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, status, resp.StatusCode, "cuerpo: %s", raw)
	if out != nil {
		require.NoError(t, json.Unmarshal(raw, out))
	}
}

func (f *apiFixture) createCompany(t *testing.T, name string) dto.CompanyResponse {
	t.Helper()
	var out dto.CompanyResponse
	resp := f.call(t, http.MethodPost, "/v1/companies", entity.RoleRecruiter, dto.CreateCompanyRequest{
		Name: name, Industry: "Technology", Location: "San Francisco, CA",
	})
	decodeInto(t, resp, fiber.StatusCreated, &out)
	return out
}

func (f *apiFixture) createTemplate(t *testing.T) dto.InterviewTemplateResponse {
	t.Helper()
	var out dto.InterviewTemplateResponse
	resp := f.call(t, http.MethodPost, "/v1/interviews/templates", entity.RoleRecruiter, dto.CreateInterviewTemplateRequest{
		Name: "Standard Technical Interview",
		Steps: []dto.TemplateStepRequest{
			{Name: "Initial Screening", StepType: "screening", Order: 1, DurationMinutes: 30},
			{Name: "Technical Assessment", StepType: "technical", Order: 2, DurationMinutes: 60},
			{Name: "Culture Fit", StepType: "culture_fit", Order: 3, DurationMinutes: 45},
		},
	})
	decodeInto(t, resp, fiber.StatusCreated, &out)
	return out
}

func (f *apiFixture) createJob(t *testing.T, companyID int64, templateID *int64) dto.JobOpeningResponse {
	t.Helper()
	var out dto.JobOpeningResponse
	resp := f.call(t, http.MethodPost, "/v1/job-openings", entity.RoleRecruiter, dto.CreateJobOpeningRequest{
		CompanyID:           companyID,
		InterviewTemplateID: templateID,
		Title:               "Senior Go Developer",
		Description:         "Backend services",
		Requirements:        "5+ years",
		Location:            "Remote",
		JobType:             "full-time",
		ExperienceLevel:     "Senior",
	})
	decodeInto(t, resp, fiber.StatusCreated, &out)
	return out
}

func (f *apiFixture) createCandidate(t *testing.T, email string) dto.CandidateResponse {
	t.Helper()
	var out dto.CandidateResponse
	resp := f.call(t, http.MethodPost, "/v1/candidates", entity.RoleRecruiter, dto.CreateCandidateRequest{
		FirstName: "John", LastName: "Doe", Email: email, Skills: "Go, SQL", Education: "BSc Computer Science",
	})
	decodeInto(t, resp, fiber.StatusCreated, &out)
	return out
}

func (f *apiFixture) createApplication(t *testing.T, candidateID, jobID int64) dto.ApplicationResponse {
	t.Helper()
	var out dto.ApplicationResponse
	resp := f.call(t, http.MethodPost, "/v1/applications", entity.RoleRecruiter, dto.CreateApplicationRequest{
		CandidateID: candidateID, JobOpeningID: jobID,
	})
	decodeInto(t, resp, fiber.StatusCreated, &out)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Rutas públicas
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_RootYHealth(t *testing.T) {
	f := newAPIFixture(t)

	var info map[string]string
	decodeInto(t, f.call(t, http.MethodGet, "/", "", nil), fiber.StatusOK, &info)
	assert.Equal(t, apphttp.APIVersion, info["version"])
	assert.Equal(t, "/docs", info["documentation"])

	resp := f.call(t, http.MethodGet, "/health", "", nil)
	var health map[string]string
	decodeInto(t, resp, fiber.StatusOK, &health)
	assert.Equal(t, "healthy", health["status"])
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestRouter_HealthConBaseCaida(t *testing.T) {
	f := newAuthFixture(t)
	app := apphttp.NewApp(apphttp.ServerConfig{Log: zerolog.Nop()})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: f.authUC,
		Ping:   func(context.Context) error { return errors.New("connection refused") },
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestRouter_LecturaPublicaDeEmpresasYVacantes(t *testing.T) {
	f := newAPIFixture(t)
	company := f.createCompany(t, "TechCorp Solutions")
	f.createJob(t, company.ID, nil)

	var companies dto.CompanyListResponse
	decodeInto(t, f.call(t, http.MethodGet, "/v1/companies?limit=500", "", nil), fiber.StatusOK, &companies)
	require.Len(t, companies.Items, 1)
	assert.Equal(t, 100, companies.Page.Limit, "limit fuera de rango vuelve al máximo")

	var jobs dto.JobOpeningListResponse
	path := fmt.Sprintf("/v1/job-openings?company_id=%d&status=open", company.ID)
	decodeInto(t, f.call(t, http.MethodGet, path, "", nil), fiber.StatusOK, &jobs)
	assert.Len(t, jobs.Items, 1)

	decodeInto(t, f.call(t, http.MethodGet, "/v1/job-openings?status=archived", "", nil), fiber.StatusBadRequest, nil)
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_EscrituraSinTokenEs401(t *testing.T) {
	f := newAPIFixture(t)
	resp := f.call(t, http.MethodPost, "/v1/companies", "", dto.CreateCompanyRequest{Name: "X", Industry: "Y", Location: "Z"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_ValidacionDevuelveCamposJSON(t *testing.T) {
	f := newAPIFixture(t)

	var body dto.ErrorResponse
	resp := f.call(t, http.MethodPost, "/v1/companies", entity.RoleAdmin, map[string]any{"name": "Acme", "website": "nope"})
	decodeInto(t, resp, fiber.StatusBadRequest, &body)
	assert.Equal(t, apphttp.CodeValidation, body.Code)
	assert.Contains(t, body.Detail, "industry: field required")
	assert.Contains(t, body.Detail, "website: value is not a valid URL")
}

func TestRouter_CuerpoInvalido(t *testing.T) {
	f := newAPIFixture(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/companies", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", f.tokenForRole(t, entity.RoleAdmin))
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)

	var body dto.ErrorResponse
	decodeInto(t, resp, fiber.StatusBadRequest, &body)
	assert.Equal(t, apphttp.CodeInvalidBody, body.Code)
}

func TestRouter_IDInvalidoYNoEncontrado(t *testing.T) {
	f := newAPIFixture(t)

	decodeInto(t, f.call(t, http.MethodGet, "/v1/companies/abc", "", nil), fiber.StatusBadRequest, nil)

	var body dto.ErrorResponse
	decodeInto(t, f.call(t, http.MethodGet, "/v1/companies/999", "", nil), fiber.StatusNotFound, &body)
	assert.Equal(t, apphttp.CodeNotFound, body.Code)
	assert.Equal(t, "Company not found", body.Detail)
}

func TestRouter_PoliticasPorRol(t *testing.T) {
	f := newAPIFixture(t)
	company := f.createCompany(t, "Acme")

	// Solo ADMIN borra empresas.
	path := fmt.Sprintf("/v1/companies/%d", company.ID)
	decodeInto(t, f.call(t, http.MethodDelete, path, entity.RoleRecruiter, nil), fiber.StatusForbidden, nil)
	decodeInto(t, f.call(t, http.MethodDelete, path, entity.RoleAdmin, nil), fiber.StatusOK, nil)

	// Un candidato no lista candidatos ni usuarios.
	decodeInto(t, f.call(t, http.MethodGet, "/v1/candidates", entity.RoleCandidate, nil), fiber.StatusForbidden, nil)
	decodeInto(t, f.call(t, http.MethodGet, "/v1/users", entity.RoleRecruiter, nil), fiber.StatusForbidden, nil)

	var users dto.UserListResponse
	decodeInto(t, f.call(t, http.MethodGet, "/v1/users", entity.RoleAdmin, nil), fiber.StatusOK, &users)
	assert.Len(t, users.Items, 4)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_TokenPorFormularioYMe(t *testing.T) {
	f := newAPIFixture(t)

	form := url.Values{"username": {"ADMIN@company.com"}, "password": {"password123"}}
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)

	var tok dto.TokenResponse
	decodeInto(t, resp, fiber.StatusOK, &tok)
	assert.Equal(t, "bearer", tok.TokenType)
	require.NotEmpty(t, tok.AccessToken)

	req = httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
	resp, err = f.app.Test(req, -1)
	require.NoError(t, err)

	var me dto.UserResponse
	decodeInto(t, resp, fiber.StatusOK, &me)
	assert.Equal(t, "admin@company.com", me.Email)
	assert.Equal(t, "ADMIN", me.Role)
}

func TestAuth_CredencialesIncorrectas(t *testing.T) {
	f := newAPIFixture(t)
	resp := f.call(t, http.MethodPost, "/v1/auth/token", "", dto.TokenRequest{Username: "admin@company.com", Password: "wrong-password"})

	var body dto.ErrorResponse
	decodeInto(t, resp, fiber.StatusUnauthorized, &body)
	assert.Equal(t, apphttp.CodeInvalidLogin, body.Code)
	assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
}

func TestAuth_RegistroCreaCandidato(t *testing.T) {
	f := newAPIFixture(t)
	in := dto.RegisterRequest{Email: "new@example.com", Password: "password123", FirstName: "Jane", LastName: "Roe"}

	var user dto.UserResponse
	decodeInto(t, f.call(t, http.MethodPost, "/v1/auth/register", "", in), fiber.StatusCreated, &user)
	assert.Equal(t, "CANDIDATE", user.Role)

	// El email ya existe.
	decodeInto(t, f.call(t, http.MethodPost, "/v1/auth/register", "", in), fiber.StatusBadRequest, nil)
}

// bcrypt no admite más de 72 bytes: se rechaza con 400 y detalle por campo.
func TestAuth_PasswordDemasiadoLargo(t *testing.T) {
	f := newAPIFixture(t)
	long := strings.Repeat("x", 80)

	var body dto.ErrorResponse
	in := dto.RegisterRequest{Email: "long@example.com", Password: long, FirstName: "Jane", LastName: "Roe"}
	decodeInto(t, f.call(t, http.MethodPost, "/v1/auth/register", "", in), fiber.StatusBadRequest, &body)
	assert.Equal(t, apphttp.CodeValidation, body.Code)
	assert.Contains(t, body.Detail, "password: must have at most 72 items/characters")

	user := dto.CreateUserRequest{Email: "staff@company.com", Password: long, Role: "RECRUITER"}
	decodeInto(t, f.call(t, http.MethodPost, "/v1/users", entity.RoleAdmin, user), fiber.StatusBadRequest, &body)
	assert.Contains(t, body.Detail, "password")

	// 40 runas multibyte pasan el tag max pero ocupan 80 bytes.
	in.Password = strings.Repeat("ñ", 40)
	decodeInto(t, f.call(t, http.MethodPost, "/v1/auth/register", "", in), fiber.StatusBadRequest, &body)
	assert.Equal(t, apphttp.CodeValidation, body.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo de entrevistas y reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestInterviewFlow_StartProgramarYReportes(t *testing.T) {
	f := newAPIFixture(t)
	tpl := f.createTemplate(t)
	company := f.createCompany(t, "TechCorp Solutions")
	job := f.createJob(t, company.ID, &tpl.ID)
	cand := f.createCandidate(t, "john.doe@example.com")
	application := f.createApplication(t, cand.ID, job.ID)

	// Las plantillas activas son públicas.
	var templates []dto.InterviewTemplateResponse
	decodeInto(t, f.call(t, http.MethodGet, "/v1/interviews/templates", "", nil), fiber.StatusOK, &templates)
	require.Len(t, templates, 1)

	decodeInto(t, f.call(t, http.MethodPost, "/v1/email-templates", entity.RoleAdmin, dto.CreateEmailTemplateRequest{
		Name:            "Process Started",
		Type:            entity.EmailTypeProcessStarted,
		SubjectTemplate: "Your application for {{ job_title }}",
		HTMLContent:     "<p>Hi {{ candidate_name }}, {{ company_name }} started your process.</p>",
	}), fiber.StatusCreated, nil)

	startPath := fmt.Sprintf("/v1/interviews/applications/%d/start", application.ID)
	decodeInto(t, f.call(t, http.MethodPost, startPath, entity.RoleInterviewer, nil), fiber.StatusForbidden, nil)

	var proc dto.InterviewProcessResponse
	decodeInto(t, f.call(t, http.MethodPost, startPath, entity.RoleRecruiter, nil), fiber.StatusCreated, &proc)
	require.Len(t, proc.Steps, 3)
	assert.Equal(t, "pending", proc.Status)

	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "john.doe@example.com", f.mailer.sent[0].To)
	assert.Equal(t, "Your application for Senior Go Developer", f.mailer.sent[0].Subject)

	decodeInto(t, f.call(t, http.MethodPost, startPath, entity.RoleRecruiter, nil), fiber.StatusBadRequest, nil)

	var byApp dto.InterviewProcessResponse
	processPath := fmt.Sprintf("/v1/interviews/applications/%d/process", application.ID)
	decodeInto(t, f.call(t, http.MethodGet, processPath, entity.RoleInterviewer, nil), fiber.StatusOK, &byApp)
	assert.Equal(t, proc.ID, byApp.ID)

	var step dto.InterviewStepResponse
	stepPath := fmt.Sprintf("/v1/interviews/steps/%d", proc.Steps[0].ID)
	resp := f.call(t, http.MethodPut, stepPath, entity.RoleRecruiter, map[string]any{
		"status":       "scheduled",
		"scheduled_at": "2026-11-02T10:00:00Z",
		"meeting_link": "https://meet.example.com/abc",
	})
	decodeInto(t, resp, fiber.StatusOK, &step)
	assert.Equal(t, "scheduled", step.Status)
	require.NotNil(t, step.ScheduledAt)

	// PDF del proceso.
	resp = f.call(t, http.MethodGet, fmt.Sprintf("/v1/interviews/processes/%d/report", proc.ID), entity.RoleInterviewer, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	pdf, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	// Excel de postulaciones.
	resp = f.call(t, http.MethodGet, "/v1/applications/export?status=interviewing", entity.RoleRecruiter, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "applications.xlsx")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	book, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	rows, err := book.GetRows(export.ApplicationsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "John Doe", rows[1][1])

	decodeInto(t, f.call(t, http.MethodGet, "/v1/applications/export", entity.RoleInterviewer, nil), fiber.StatusForbidden, nil)
}

func TestApplications_FiltrosYCambioDeEstado(t *testing.T) {
	f := newAPIFixture(t)
	company := f.createCompany(t, "Acme")
	job := f.createJob(t, company.ID, nil)
	cand := f.createCandidate(t, "ana@example.com")
	application := f.createApplication(t, cand.ID, job.ID)

	// Postulación duplicada.
	resp := f.call(t, http.MethodPost, "/v1/applications", entity.RoleRecruiter, dto.CreateApplicationRequest{
		CandidateID: cand.ID, JobOpeningID: job.ID,
	})
	decodeInto(t, resp, fiber.StatusBadRequest, nil)

	var updated dto.ApplicationResponse
	resp = f.call(t, http.MethodPut, fmt.Sprintf("/v1/applications/%d/status", application.ID), entity.RoleRecruiter,
		dto.UpdateApplicationStatusRequest{Status: "screening"})
	decodeInto(t, resp, fiber.StatusOK, &updated)
	assert.Equal(t, "screening", updated.Status)

	resp = f.call(t, http.MethodPut, fmt.Sprintf("/v1/applications/%d/status", application.ID), entity.RoleRecruiter,
		map[string]any{"status": "bogus"})
	decodeInto(t, resp, fiber.StatusBadRequest, nil)

	var list dto.ApplicationListResponse
	decodeInto(t, f.call(t, http.MethodGet, "/v1/applications?status=screening", entity.RoleInterviewer, nil), fiber.StatusOK, &list)
	assert.Len(t, list.Items, 1)
	decodeInto(t, f.call(t, http.MethodGet, "/v1/applications?status=applied", entity.RoleInterviewer, nil), fiber.StatusOK, &list)
	assert.Empty(t, list.Items)
	decodeInto(t, f.call(t, http.MethodGet, "/v1/applications?candidate_id=x", entity.RoleInterviewer, nil), fiber.StatusBadRequest, nil)
}

// ──────────────────────────────────────────────────────────────────────────────
// Plantillas de correo
// ──────────────────────────────────────────────────────────────────────────────

func TestEmailTemplates_CrearYPrevisualizar(t *testing.T) {
	f := newAPIFixture(t)
	in := dto.CreateEmailTemplateRequest{
		Name:            "Interview Scheduled",
		Type:            "interview_scheduled",
		SubjectTemplate: "Interview for {{ job_title }}",
		HTMLContent:     "<p>Hello {{ candidate_name }}</p>",
	}

	decodeInto(t, f.call(t, http.MethodPost, "/v1/email-templates", entity.RoleRecruiter, in), fiber.StatusForbidden, nil)

	var tpl dto.EmailTemplateResponse
	decodeInto(t, f.call(t, http.MethodPost, "/v1/email-templates", entity.RoleAdmin, in), fiber.StatusCreated, &tpl)

	var preview dto.PreviewEmailTemplateResponse
	resp := f.call(t, http.MethodPost, fmt.Sprintf("/v1/email-templates/%d/preview", tpl.ID), entity.RoleRecruiter,
		dto.PreviewEmailTemplateRequest{Variables: map[string]any{"job_title": "Go Dev", "candidate_name": "Ana"}})
	decodeInto(t, resp, fiber.StatusOK, &preview)
	assert.Equal(t, "Interview for Go Dev", preview.Subject)
	assert.Equal(t, "<p>Hello Ana</p>", preview.HTMLContent)

	var list []dto.EmailTemplateResponse
	decodeInto(t, f.call(t, http.MethodGet, "/v1/email-templates?type=interview_scheduled", entity.RoleRecruiter, nil), fiber.StatusOK, &list)
	assert.Len(t, list, 1)
	decodeInto(t, f.call(t, http.MethodGet, "/v1/email-templates?is_active=false", entity.RoleRecruiter, nil), fiber.StatusOK, &list)
	assert.Empty(t, list)

	bad := in
	bad.HTMLContent = "{% if %}"
	decodeInto(t, f.call(t, http.MethodPost, "/v1/email-templates", entity.RoleAdmin, bad), fiber.StatusBadRequest, nil)
}
