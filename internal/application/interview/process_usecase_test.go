package interview_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/recruitment-api/internal/application/dto"
	"github.com/jhoicas/recruitment-api/internal/application/interview"
	"github.com/jhoicas/recruitment-api/internal/application/notification"
	"github.com/jhoicas/recruitment-api/internal/application/ports"
	"github.com/jhoicas/recruitment-api/internal/domain"
	"github.com/jhoicas/recruitment-api/internal/domain/entity"
	"github.com/jhoicas/recruitment-api/internal/domain/repository"
	"github.com/jhoicas/recruitment-api/internal/infrastructure/memory"
	"github.com/jhoicas/recruitment-api/internal/infrastructure/render"
)

// ────────────────────────────────────────────────────────────────────────────
// fixture
// ────────────────────────────────────────────────────────────────────────────

type captureMailer struct {
	mu   sync.Mutex
	sent []ports.EmailMessage
	err  error
}

func (m *captureMailer) Send(_ context.Context, msg ports.EmailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *captureMailer) last() ports.EmailMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}

type fixture struct {
	store     *memory.Store
	mailer    *captureMailer
	processes *interview.ProcessUseCase
	templates *interview.TemplateUseCase
	recruiter *entity.User
	appID     int64
	jobID     int64
}

func newFixture(t *testing.T, withTemplate bool) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repositories()
	log := zerolog.Nop()
	mailer := &captureMailer{}
	emails := notification.NewEmailService(render.NewPongo2Renderer(), mailer, log)

	f := &fixture{
		store:     store,
		mailer:    mailer,
		processes: interview.NewProcessUseCase(store, emails, log),
		templates: interview.NewTemplateUseCase(store, log),
	}
	f.recruiter = &entity.User{Email: "rec@company.com", Role: entity.RoleRecruiter, IsActive: true}
	require.NoError(t, repos.Users.Create(ctx, f.recruiter))

	company := &entity.Company{Name: "TechCorp Solutions", Active: true}
	require.NoError(t, repos.Companies.Create(ctx, company))

	job := &entity.JobOpening{CompanyID: company.ID, Title: "Senior Python Developer", Status: entity.JobStatusOpen, JobType: entity.JobTypeFullTime}
	if withTemplate {
		tpl, err := f.templates.Create(ctx, f.recruiter, dto.CreateInterviewTemplateRequest{
			Name: "Standard Technical Interview",
			Steps: []dto.TemplateStepRequest{
				{Name: "Technical Assessment", StepType: "technical", Order: 2, DurationMinutes: 60},
				{Name: "Initial Screening", StepType: "screening", Order: 1, DurationMinutes: 30},
				{Name: "Culture Fit", StepType: "culture_fit", Order: 3, DurationMinutes: 45},
			},
		})
		require.NoError(t, err)
		job.InterviewTemplateID = &tpl.ID
	}
	require.NoError(t, repos.JobOpenings.Create(ctx, job))
	f.jobID = job.ID

	user := &entity.User{Email: "candidate1@example.com", Role: entity.RoleCandidate, IsActive: true}
	require.NoError(t, repos.Users.Create(ctx, user))
	cand := &entity.Candidate{UserID: user.ID, FirstName: "John", LastName: "Doe", Email: user.Email}
	require.NoError(t, repos.Candidates.Create(ctx, cand))

	app := &entity.Application{CandidateID: cand.ID, JobOpeningID: job.ID, Status: entity.ApplicationStatusApplied, AppliedDate: time.Now()}
	require.NoError(t, repos.Applications.Create(ctx, app))
	f.appID = app.ID

	for _, tpl := range []entity.EmailTemplate{
		{Name: "started", Type: entity.EmailTypeProcessStarted, SubjectTemplate: "Proceso {{ job_title }}", HTMLContent: "Hola {{ candidate_name }} de {{ company_name }}", IsActive: true},
		{Name: "scheduled", Type: entity.EmailTypeInterviewSched, SubjectTemplate: "{{ interview_type }}", HTMLContent: "{{ candidate_name }}|{{ scheduled_at }}|{{ duration }}|{{ location }}|{{ meeting_link }}", IsActive: true},
		{Name: "success", Type: entity.EmailTypeInterviewSuccess, SubjectTemplate: "Aprobado {{ interview_type }}", HTMLContent: "{{ feedback }}|{% if is_final_step %}final{% else %}next{% endif %}", IsActive: true},
	} {
		tpl := tpl
		require.NoError(t, repos.EmailTemplates.Create(ctx, &tpl))
	}
	return f
}

func strPtr(s string) *string { return &s }

// ────────────────────────────────────────────────────────────────────────────
// Start
// ────────────────────────────────────────────────────────────────────────────

func TestStart_CreatesOrderedPendingSteps(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	proc, err := f.processes.Start(ctx, f.recruiter, f.appID)
	require.NoError(t, err)
	assert.Equal(t, 0, proc.CurrentStep)
	assert.Equal(t, "pending", proc.Status)
	require.Len(t, proc.Steps, 3)
	for i, s := range proc.Steps {
		assert.Equal(t, i+1, s.Order)
		assert.Equal(t, "pending", s.Status)
	}

	app, err := f.store.Repositories().Applications.GetByID(ctx, f.appID)
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationStatusInterviewing, app.Status)

	msg := f.mailer.last()
	assert.Equal(t, "candidate1@example.com", msg.To)
	assert.Equal(t, "Proceso Senior Python Developer", msg.Subject)
	assert.Equal(t, "Hola John Doe de TechCorp Solutions", msg.HTMLBody)
}

func TestStart_WithoutTemplateFails(t *testing.T) {
	f := newFixture(t, false)
	_, err := f.processes.Start(context.Background(), f.recruiter, f.appID)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "Job opening has no interview template assigned", domain.Detail(err))
}

func TestStart_UnknownApplication(t *testing.T) {
	f := newFixture(t, true)
	_, err := f.processes.Start(context.Background(), f.recruiter, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Application not found", domain.Detail(err))
}

func TestStart_Twice(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	_, err := f.processes.Start(ctx, f.recruiter, f.appID)
	require.NoError(t, err)
	_, err = f.processes.Start(ctx, f.recruiter, f.appID)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStart_InterviewerForbidden(t *testing.T) {
	f := newFixture(t, true)
	interviewer := &entity.User{ID: 50, Role: entity.RoleInterviewer}
	_, err := f.processes.Start(context.Background(), interviewer, f.appID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, "Only recruiters and admins can start interview processes", domain.Detail(err))
}

func TestStart_MissingEmailTemplateIsSkipped(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	repos := f.store.Repositories()
	list, err := repos.EmailTemplates.List(ctx, repository.EmailTemplateFilter{Type: entity.EmailTypeProcessStarted}, repository.Page{})
	require.NoError(t, err)
	for _, tpl := range list {
		require.NoError(t, repos.EmailTemplates.Delete(ctx, tpl.ID))
	}

	_, err = f.processes.Start(ctx, f.recruiter, f.appID)
	require.NoError(t, err)
	assert.Empty(t, f.mailer.sent)
}

func TestStart_DeliveryFailureRollsBack(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	f.mailer.err = errors.New("connection refused")

	_, err := f.processes.Start(ctx, f.recruiter, f.appID)
	assert.ErrorIs(t, err, domain.ErrEmailDelivery)

	_, err = f.processes.GetByApplication(ctx, f.appID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	app, err := f.store.Repositories().Applications.GetByID(ctx, f.appID)
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationStatusApplied, app.Status)
}

// ────────────────────────────────────────────────────────────────────────────
// UpdateStep
// ────────────────────────────────────────────────────────────────────────────

func TestUpdateStep_ScheduledSendsDetails(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	proc, err := f.processes.Start(ctx, f.recruiter, f.appID)
	require.NoError(t, err)

	at := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	step, err := f.processes.UpdateStep(ctx, f.recruiter, proc.Steps[0].ID, dto.UpdateInterviewStepRequest{
		Status:      strPtr("scheduled"),
		ScheduledAt: &at,
		MeetingLink: strPtr("https://meet.example.com/abc"),
	})
	require.NoError(t, err)
	assert.Equal(t, "scheduled", step.Status)

	msg := f.mailer.last()
	assert.Equal(t, "Initial Screening", msg.Subject)
	assert.Equal(t, "John|2025-03-10 15:30|30|Remote|https://meet.example.com/abc", msg.HTMLBody)
}

func TestUpdateStep_PassedOnLastStepIsFinal(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	proc, err := f.processes.Start(ctx, f.recruiter, f.appID)
	require.NoError(t, err)

	_, err = f.processes.UpdateStep(ctx, f.recruiter, proc.Steps[0].ID, dto.UpdateInterviewStepRequest{Status: strPtr("passed")})
	require.NoError(t, err)
	msg := f.mailer.last()
	assert.Equal(t, "Aprobado Initial Screening", msg.Subject)
	assert.Equal(t, "No specific feedback provided.|next", msg.HTMLBody)

	score := decimal.RequireFromString("87.5")
	_, err = f.processes.UpdateStep(ctx, f.recruiter, proc.Steps[2].ID, dto.UpdateInterviewStepRequest{
		Status:   strPtr("passed"),
		Score:    &score,
		Feedback: strPtr("Great fit"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Great fit|final", f.mailer.last().HTMLBody)
}

func TestUpdateStep_FailedWithoutTemplateStillUpdates(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	proc, err := f.processes.Start(ctx, f.recruiter, f.appID)
	require.NoError(t, err)
	before := len(f.mailer.sent)

	step, err := f.processes.UpdateStep(ctx, f.recruiter, proc.Steps[1].ID, dto.UpdateInterviewStepRequest{Status: strPtr("failed")})
	require.NoError(t, err)
	assert.Equal(t, "failed", step.Status)
	assert.Len(t, f.mailer.sent, before)
}

func TestUpdateStep_CompletedStampsCompletedAt(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	proc, err := f.processes.Start(ctx, f.recruiter, f.appID)
	require.NoError(t, err)

	step, err := f.processes.UpdateStep(ctx, f.recruiter, proc.Steps[0].ID, dto.UpdateInterviewStepRequest{Status: strPtr("completed")})
	require.NoError(t, err)
	require.NotNil(t, step.CompletedAt)
}

func TestUpdateStep_PartialUpdateKeepsOtherFields(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	proc, err := f.processes.Start(ctx, f.recruiter, f.appID)
	require.NoError(t, err)
	stepID := proc.Steps[0].ID

	_, err = f.processes.UpdateStep(ctx, f.recruiter, stepID, dto.UpdateInterviewStepRequest{Location: strPtr("Office 3")})
	require.NoError(t, err)
	step, err := f.processes.UpdateStep(ctx, f.recruiter, stepID, dto.UpdateInterviewStepRequest{Feedback: strPtr("ok")})
	require.NoError(t, err)
	assert.Equal(t, "Office 3", step.Location)
	assert.Equal(t, "ok", step.Feedback)
	assert.Equal(t, "pending", step.Status)
}

func TestUpdateStep_NotFoundAndForbidden(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	_, err := f.processes.UpdateStep(ctx, f.recruiter, 404, dto.UpdateInterviewStepRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Interview step not found", domain.Detail(err))

	_, err = f.processes.UpdateStep(ctx, &entity.User{ID: 9, Role: entity.RoleInterviewer}, 1, dto.UpdateInterviewStepRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ────────────────────────────────────────────────────────────────────────────
// lectura y borrado
// ────────────────────────────────────────────────────────────────────────────

func TestGetProcess_AndDelete(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	proc, err := f.processes.Start(ctx, f.recruiter, f.appID)
	require.NoError(t, err)

	got, err := f.processes.GetProcess(ctx, proc.ID)
	require.NoError(t, err)
	assert.Len(t, got.Steps, 3)

	err = f.processes.Delete(ctx, f.recruiter, proc.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	admin := &entity.User{ID: 77, Role: entity.RoleAdmin}
	require.NoError(t, f.processes.Delete(ctx, admin, proc.ID))
	_, err = f.processes.GetProcess(ctx, proc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
