package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/jhoicas/recruitment-api/internal/application/auth"
	"github.com/jhoicas/recruitment-api/internal/application/interview"
	"github.com/jhoicas/recruitment-api/internal/application/notification"
	"github.com/jhoicas/recruitment-api/internal/application/report"
	"github.com/jhoicas/recruitment-api/internal/application/usecase"
	"github.com/jhoicas/recruitment-api/internal/infrastructure/export"
	"github.com/jhoicas/recruitment-api/internal/infrastructure/mail"
	"github.com/jhoicas/recruitment-api/internal/infrastructure/postgres"
	"github.com/jhoicas/recruitment-api/internal/infrastructure/render"
	"github.com/jhoicas/recruitment-api/internal/infrastructure/telemetry"
	httpRouter "github.com/jhoicas/recruitment-api/internal/interfaces/http"
	"github.com/jhoicas/recruitment-api/pkg/config"
	"github.com/jhoicas/recruitment-api/pkg/jwt"
	"github.com/jhoicas/recruitment-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.App, cfg.Telemetry, log.Service("telemetry"))
	if err != nil {
		log.Fatal().Err(err).Msg("configurar trazas")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB, log.Service("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
		log.Info().Msg("esquema aplicado")
	}

	txRunner := postgres.NewTxRunner(pool)
	renderer := render.NewPongo2Renderer()
	mailer := mail.New(cfg.SMTP, log.Service("mail"))
	emails := notification.NewEmailService(renderer, mailer, log.Service("email"))

	authUC := auth.NewAuthUseCase(txRunner, jwt.Config{
		Secret:     cfg.JWT.Secret,
		Algorithm:  cfg.JWT.Algorithm,
		Issuer:     cfg.JWT.Issuer,
		ExpMinutes: cfg.JWT.Expiration,
	}, log.Service("auth"))

	if created, err := authUC.BootstrapAdmin(ctx, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("crear administrador inicial")
	} else if !created && cfg.Bootstrap.AdminEmail == "" {
		log.Warn().Msg("FIRST_ADMIN_EMAIL no configurado; no se creó administrador inicial")
	}

	app := httpRouter.NewApp(httpRouter.ServerConfig{
		AppName:      cfg.App.Name,
		AllowOrigins: cfg.HTTP.AllowOrigins,
		Log:          log.Service("http"),
	})

	// Swagger UI en http://localhost:<port>/docs (generado con swag init).
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Recruitment System API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("sin especificación OpenAPI; /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		CompanyUC:       usecase.NewCompanyUseCase(txRunner, log.Service("companies")),
		JobOpeningUC:    usecase.NewJobOpeningUseCase(txRunner, log.Service("job_openings")),
		CandidateUC:     usecase.NewCandidateUseCase(txRunner, log.Service("candidates")),
		ApplicationUC:   usecase.NewApplicationUseCase(txRunner, log.Service("applications")),
		UserUC:          usecase.NewUserUseCase(txRunner, log.Service("users")),
		EmailTemplateUC: usecase.NewEmailTemplateUseCase(txRunner, renderer, log.Service("email_templates")),
		TemplateUC:      interview.NewTemplateUseCase(txRunner, log.Service("interview_templates")),
		ProcessUC:       interview.NewProcessUseCase(txRunner, emails, log.Service("interview_processes")),
		ReportUC:        report.NewReportUseCase(txRunner, export.NewXLSXExporter(), export.NewProcessReportPDF(), log.Service("reports")),
		Ping:            pool.Ping,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("cierre del exportador de trazas")
	}

	log.Info().Msg("aplicación detenida")
}
