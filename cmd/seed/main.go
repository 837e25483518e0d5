// seed carga los datos de ejemplo (usuarios, empresas, plantilla técnica, vacantes,
// candidatos, postulaciones y plantillas de correo) a través de los casos de uso.
//
// Uso: go run ./cmd/seed
// Usa FIRST_ADMIN_EMAIL / FIRST_ADMIN_PASSWORD (por defecto admin@company.com / admin123).
// Si el administrador ya existe no hace nada.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/recruitment-api/internal/application/auth"
	"github.com/jhoicas/recruitment-api/internal/application/dto"
	"github.com/jhoicas/recruitment-api/internal/application/interview"
	"github.com/jhoicas/recruitment-api/internal/application/ports"
	"github.com/jhoicas/recruitment-api/internal/application/usecase"
	"github.com/jhoicas/recruitment-api/internal/domain/entity"
	"github.com/jhoicas/recruitment-api/internal/infrastructure/postgres"
	"github.com/jhoicas/recruitment-api/internal/infrastructure/render"
	"github.com/jhoicas/recruitment-api/pkg/config"
	"github.com/jhoicas/recruitment-api/pkg/jwt"
	"github.com/jhoicas/recruitment-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "seed"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log.Service("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}

	email, password := cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword
	if email == "" {
		email, password = "admin@company.com", "admin123"
	}

	s := newSeeder(postgres.NewTxRunner(pool), cfg, log)
	created, err := s.run(ctx, email, password)
	if err != nil {
		log.Fatal().Err(err).Msg("sembrar datos")
	}
	if !created {
		log.Info().Str("admin", email).Msg("la base ya tiene datos; no se sembró nada")
		return
	}
	log.Info().Msg("datos de ejemplo cargados")
}

type seeder struct {
	auth         *auth.AuthUseCase
	users        *usecase.UserUseCase
	companies    *usecase.CompanyUseCase
	jobs         *usecase.JobOpeningUseCase
	candidates   *usecase.CandidateUseCase
	applications *usecase.ApplicationUseCase
	templates    *interview.TemplateUseCase
	emails       *usecase.EmailTemplateUseCase
}

func newSeeder(tx ports.TxRunner, cfg *config.Config, log *logger.Logger) *seeder {
	return &seeder{
		auth: auth.NewAuthUseCase(tx, jwt.Config{
			Secret:     cfg.JWT.Secret,
			Algorithm:  cfg.JWT.Algorithm,
			Issuer:     cfg.JWT.Issuer,
			ExpMinutes: cfg.JWT.Expiration,
		}, log.Service("auth")),
		users:        usecase.NewUserUseCase(tx, log.Service("users")),
		companies:    usecase.NewCompanyUseCase(tx, log.Service("companies")),
		jobs:         usecase.NewJobOpeningUseCase(tx, log.Service("job_openings")),
		candidates:   usecase.NewCandidateUseCase(tx, log.Service("candidates")),
		applications: usecase.NewApplicationUseCase(tx, log.Service("applications")),
		templates:    interview.NewTemplateUseCase(tx, log.Service("interview_templates")),
		emails:       usecase.NewEmailTemplateUseCase(tx, render.NewPongo2Renderer(), log.Service("email_templates")),
	}
}

// run devuelve false si el administrador ya existía.
func (s *seeder) run(ctx context.Context, email, password string) (bool, error) {
	created, err := s.auth.BootstrapAdmin(ctx, email, password)
	if err != nil || !created {
		return false, err
	}
	admin, err := s.auth.Authenticate(ctx, email, password)
	if err != nil {
		return false, fmt.Errorf("autenticar administrador: %w", err)
	}

	for _, u := range []dto.CreateUserRequest{
		{Email: "recruiter@company.com", Password: "recruiter123", Role: string(entity.RoleRecruiter)},
		{Email: "interviewer@company.com", Password: "interviewer123", Role: string(entity.RoleInterviewer)},
	} {
		if _, err := s.users.Create(ctx, admin, u); err != nil {
			return false, fmt.Errorf("usuario %s: %w", u.Email, err)
		}
	}

	companyIDs := make([]int64, 0, 3)
	for _, c := range []dto.CreateCompanyRequest{
		{Name: "Tech Innovators Inc", Industry: "Technology", Location: "San Francisco, CA",
			Website: "https://techinnovators.com", Description: "Leading technology company focused on AI and ML solutions"},
		{Name: "Global Solutions Ltd", Industry: "Consulting", Location: "New York, NY",
			Website: "https://globalsolutions.com", Description: "International consulting firm"},
		{Name: "Future Systems", Industry: "Software", Location: "Austin, TX",
			Website: "https://futuresystems.com", Description: "Enterprise software solutions provider"},
	} {
		out, err := s.companies.Create(ctx, admin, c)
		if err != nil {
			return false, fmt.Errorf("empresa %s: %w", c.Name, err)
		}
		companyIDs = append(companyIDs, out.ID)
	}

	tpl, err := s.templates.Create(ctx, admin, technicalTemplate())
	if err != nil {
		return false, fmt.Errorf("plantilla de entrevistas: %w", err)
	}

	jobIDs := make([]int64, 0, 2)
	for _, j := range []dto.CreateJobOpeningRequest{
		{CompanyID: companyIDs[0], InterviewTemplateID: &tpl.ID, Title: "Senior Software Engineer",
			Description: "Looking for an experienced software engineer...", Requirements: "5+ years of experience in Python, cloud technologies...",
			Location: "San Francisco, CA", SalaryRange: "$130,000 - $180,000", JobType: string(entity.JobTypeFullTime), ExperienceLevel: "Senior"},
		{CompanyID: companyIDs[1], InterviewTemplateID: &tpl.ID, Title: "Full Stack Developer",
			Description: "Full stack developer position...", Requirements: "3+ years of experience with React and Node.js...",
			Location: "New York, NY", SalaryRange: "$100,000 - $140,000", JobType: string(entity.JobTypeFullTime), ExperienceLevel: "Mid-level"},
	} {
		out, err := s.jobs.Create(ctx, admin, j)
		if err != nil {
			return false, fmt.Errorf("vacante %s: %w", j.Title, err)
		}
		jobIDs = append(jobIDs, out.ID)
	}

	candidateIDs := make([]int64, 0, 5)
	for i := 1; i <= 5; i++ {
		out, err := s.candidates.Create(ctx, admin, dto.CreateCandidateRequest{
			FirstName:       fmt.Sprintf("John%d", i),
			LastName:        fmt.Sprintf("Doe%d", i),
			Email:           fmt.Sprintf("candidate%d@example.com", i),
			Phone:           fmt.Sprintf("+1555000%04d", i-1),
			Skills:          "Python, JavaScript, React, AWS",
			ExperienceYears: 2 + i,
			CurrentCompany:  "Previous Corp",
			CurrentPosition: "Software Engineer",
			Education:       "Bachelor's in Computer Science, Tech University",
			Password:        "password123",
		})
		if err != nil {
			return false, fmt.Errorf("candidato %d: %w", i, err)
		}
		candidateIDs = append(candidateIDs, out.ID)
	}

	// Los tres primeros candidatos postulan, alternando vacantes.
	for i, candidateID := range candidateIDs[:3] {
		_, err := s.applications.Create(ctx, admin, dto.CreateApplicationRequest{
			CandidateID:   candidateID,
			JobOpeningID:  jobIDs[i%len(jobIDs)],
			ResumeVersion: "1.0",
			CoverLetter:   "I am very interested in this position...",
		})
		if err != nil {
			return false, fmt.Errorf("postulación %d: %w", i+1, err)
		}
	}

	for _, e := range emailTemplates() {
		if _, err := s.emails.Create(ctx, admin, e); err != nil {
			return false, fmt.Errorf("plantilla de correo %s: %w", e.Name, err)
		}
	}
	return true, nil
}

func technicalTemplate() dto.CreateInterviewTemplateRequest {
	score := func(v int64) *decimal.Decimal {
		d := decimal.NewFromInt(v)
		return &d
	}
	return dto.CreateInterviewTemplateRequest{
		Name:        "Standard Technical Interview",
		Description: "Standard technical interview process for software engineers",
		Steps: []dto.TemplateStepRequest{
			{
				Name: "Initial Screening", Description: "Basic technical screening call",
				StepType: string(entity.StepTypeScreening), Order: 1, DurationMinutes: 30,
				RequiredParticipants: []string{"HR", "Technical Lead"},
				EvaluationCriteria:   []string{"Communication", "Basic Technical Knowledge"},
				PassingScore:         score(7),
			},
			{
				Name: "Technical Assessment", Description: "In-depth technical interview",
				StepType: string(entity.StepTypeTechnical), Order: 2, DurationMinutes: 60,
				RequiredParticipants: []string{"Senior Engineer", "Technical Lead"},
				EvaluationCriteria:   []string{"Problem Solving", "Code Quality", "System Design"},
				PassingScore:         score(8),
			},
			{
				Name: "Culture Fit", Description: "Team and culture fit interview",
				StepType: string(entity.StepTypeCultureFit), Order: 3, DurationMinutes: 45,
				RequiredParticipants: []string{"HR", "Team Lead"},
				EvaluationCriteria:   []string{"Team Fit", "Culture Alignment"},
				PassingScore:         score(7),
			},
		},
	}
}
