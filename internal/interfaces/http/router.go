package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/recruitment-api/internal/application/auth"
	"github.com/jhoicas/recruitment-api/internal/application/interview"
	"github.com/jhoicas/recruitment-api/internal/application/report"
	"github.com/jhoicas/recruitment-api/internal/application/usecase"
	"github.com/jhoicas/recruitment-api/internal/domain/policy"
)

// APIVersion versión publicada en GET /.
const APIVersion = "1.0.0"

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	CompanyUC       *usecase.CompanyUseCase
	JobOpeningUC    *usecase.JobOpeningUseCase
	CandidateUC     *usecase.CandidateUseCase
	ApplicationUC   *usecase.ApplicationUseCase
	UserUC          *usecase.UserUseCase
	EmailTemplateUC *usecase.EmailTemplateUseCase
	TemplateUC      *interview.TemplateUseCase
	ProcessUC       *interview.ProcessUseCase
	ReportUC        *report.ReportUseCase
	// Ping comprueba la base en /health; nil omite la comprobación.
	Ping func(ctx context.Context) error
}

// Router registra las rutas de la API bajo /v1.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/", rootInfo)
	app.Get("/health", health(deps.Ping))

	api := app.Group("/v1")
	authn := AuthMiddleware(deps.AuthUC)
	can := RequirePermission

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/token", authHandler.Token)
	api.Post("/auth/register", authHandler.Register)
	api.Get("/auth/me", authn, authHandler.Me)

	// Users (admin)
	users := api.Group("/users", authn)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", can(policy.Create, policy.User), userHandler.Create)
	users.Get("/", can(policy.Read, policy.User), userHandler.List)
	users.Get("/:id", can(policy.Read, policy.User), userHandler.GetByID)
	users.Put("/:id", can(policy.Update, policy.User), userHandler.Update)

	// Companies (lectura pública)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Post("/", authn, can(policy.Create, policy.Company), companyHandler.Create)
	companies.Put("/:id", authn, can(policy.Update, policy.Company), companyHandler.Update)
	companies.Delete("/:id", authn, can(policy.Delete, policy.Company), companyHandler.Delete)

	// Job openings (lectura pública)
	jobs := api.Group("/job-openings")
	jobHandler := NewJobOpeningHandler(deps.JobOpeningUC)
	jobs.Get("/", jobHandler.List)
	jobs.Get("/:id", jobHandler.GetByID)
	jobs.Post("/", authn, can(policy.Create, policy.JobOpening), jobHandler.Create)
	jobs.Put("/:id", authn, can(policy.Update, policy.JobOpening), jobHandler.Update)
	jobs.Delete("/:id", authn, can(policy.Delete, policy.JobOpening), jobHandler.Delete)

	// Candidates
	candidates := api.Group("/candidates", authn)
	candidateHandler := NewCandidateHandler(deps.CandidateUC)
	candidates.Get("/", can(policy.Read, policy.Candidate), candidateHandler.List)
	candidates.Get("/:id", can(policy.Read, policy.Candidate), candidateHandler.GetByID)
	candidates.Post("/", can(policy.Create, policy.Candidate), candidateHandler.Create)
	candidates.Put("/:id", can(policy.Update, policy.Candidate), candidateHandler.Update)
	candidates.Delete("/:id", can(policy.Delete, policy.Candidate), candidateHandler.Delete)

	// Applications; /export antes de /:id
	applications := api.Group("/applications", authn)
	applicationHandler := NewApplicationHandler(deps.ApplicationUC)
	reportHandler := NewReportHandler(deps.ReportUC)
	applications.Get("/export", can(policy.Export, policy.Application), reportHandler.ExportApplications)
	applications.Get("/", can(policy.Read, policy.Application), applicationHandler.List)
	applications.Get("/:id", can(policy.Read, policy.Application), applicationHandler.GetByID)
	applications.Post("/", can(policy.Create, policy.Application), applicationHandler.Create)
	applications.Put("/:id/status", can(policy.Update, policy.Application), applicationHandler.UpdateStatus)
	applications.Put("/:id", can(policy.Update, policy.Application), applicationHandler.Update)
	applications.Delete("/:id", can(policy.Delete, policy.Application), applicationHandler.Delete)

	// Interviews
	interviews := api.Group("/interviews")
	interviewHandler := NewInterviewHandler(deps.TemplateUC, deps.ProcessUC)
	interviews.Get("/templates", interviewHandler.ListTemplates)
	interviews.Get("/templates/:id", interviewHandler.GetTemplate)
	interviews.Post("/templates", authn, can(policy.Create, policy.InterviewTemplate), interviewHandler.CreateTemplate)
	interviews.Put("/templates/:id", authn, can(policy.Update, policy.InterviewTemplate), interviewHandler.UpdateTemplate)
	interviews.Delete("/templates/:id", authn, can(policy.Delete, policy.InterviewTemplate), interviewHandler.DeleteTemplate)
	interviews.Post("/applications/:id/start", authn, can(policy.Start, policy.InterviewProcess), interviewHandler.StartProcess)
	interviews.Get("/applications/:id/process", authn, can(policy.Read, policy.InterviewProcess), interviewHandler.GetApplicationProcess)
	interviews.Get("/processes/:id", authn, can(policy.Read, policy.InterviewProcess), interviewHandler.GetProcess)
	interviews.Get("/processes/:id/report", authn, can(policy.Read, policy.InterviewProcess), reportHandler.ProcessReport)
	interviews.Delete("/processes/:id", authn, can(policy.Delete, policy.InterviewProcess), interviewHandler.DeleteProcess)
	interviews.Put("/steps/:id", authn, can(policy.Update, policy.InterviewStep), interviewHandler.UpdateStep)

	// Email templates
	emails := api.Group("/email-templates", authn)
	emailHandler := NewEmailTemplateHandler(deps.EmailTemplateUC)
	emails.Get("/", can(policy.Read, policy.EmailTemplate), emailHandler.List)
	emails.Get("/:id", can(policy.Read, policy.EmailTemplate), emailHandler.GetByID)
	emails.Post("/", can(policy.Create, policy.EmailTemplate), emailHandler.Create)
	emails.Put("/:id", can(policy.Update, policy.EmailTemplate), emailHandler.Update)
	emails.Delete("/:id", can(policy.Delete, policy.EmailTemplate), emailHandler.Delete)
	emails.Post("/:id/preview", can(policy.Read, policy.EmailTemplate), emailHandler.Preview)
}

// rootInfo godoc
// @Summary  Información de la API
// @Tags     health
// @Produce  json
// @Success  200  {object}  map[string]string
// @Router   / [get]
func rootInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name":          "Recruitment System API",
		"version":       APIVersion,
		"documentation": "/docs",
	})
}

func health(ping func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now().UTC().Format(time.RFC3339)
		if ping != nil {
			if err := ping(c.UserContext()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unhealthy", "timestamp": now})
			}
		}
		return c.JSON(fiber.Map{"status": "healthy", "timestamp": now})
	}
}
