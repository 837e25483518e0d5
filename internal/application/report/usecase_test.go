package report_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/recruitment-api/internal/application/ports"
	"github.com/jhoicas/recruitment-api/internal/application/report"
	"github.com/jhoicas/recruitment-api/internal/domain"
	"github.com/jhoicas/recruitment-api/internal/domain/entity"
	"github.com/jhoicas/recruitment-api/internal/domain/repository"
	"github.com/jhoicas/recruitment-api/internal/infrastructure/memory"
)

type fakeSheet struct{ rows []*entity.ApplicationDetail }

func (f *fakeSheet) ExportApplications(_ context.Context, rows []*entity.ApplicationDetail) ([]byte, error) {
	f.rows = rows
	return []byte("xlsx"), nil
}

type fakePDF struct{ report ports.ProcessReport }

func (f *fakePDF) GenerateProcessReport(_ context.Context, r ports.ProcessReport) ([]byte, error) {
	f.report = r
	return []byte("%PDF"), nil
}

var recruiter = &entity.User{ID: 1, Role: entity.RoleRecruiter}

func seedApplications(t *testing.T, store *memory.Store, n int) {
	t.Helper()
	ctx := context.Background()
	repos := store.Repositories()
	company := &entity.Company{Name: "Acme"}
	require.NoError(t, repos.Companies.Create(ctx, company))
	job := &entity.JobOpening{CompanyID: company.ID, Title: "Engineer", Status: entity.JobStatusOpen}
	require.NoError(t, repos.JobOpenings.Create(ctx, job))
	for i := 0; i < n; i++ {
		u := &entity.User{Email: fmt.Sprintf("c%d@example.com", i), Role: entity.RoleCandidate}
		require.NoError(t, repos.Users.Create(ctx, u))
		c := &entity.Candidate{UserID: u.ID, FirstName: "C", Email: u.Email}
		require.NoError(t, repos.Candidates.Create(ctx, c))
		require.NoError(t, repos.Applications.Create(ctx, &entity.Application{CandidateID: c.ID, JobOpeningID: job.ID, Status: entity.ApplicationStatusApplied}))
	}
}

func TestExportApplications_ReadsEveryPage(t *testing.T) {
	store := memory.NewStore()
	seedApplications(t, store, repository.MaxLimit+5)
	sheet := &fakeSheet{}
	uc := report.NewReportUseCase(store, sheet, &fakePDF{}, zerolog.Nop())

	out, err := uc.ExportApplications(context.Background(), recruiter, repository.ApplicationFilter{})
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), out)
	assert.Len(t, sheet.rows, repository.MaxLimit+5)
	assert.Equal(t, "Acme", sheet.rows[0].CompanyName)
}

func TestExportApplications_InterviewerForbidden(t *testing.T) {
	uc := report.NewReportUseCase(memory.NewStore(), &fakeSheet{}, &fakePDF{}, zerolog.Nop())
	_, err := uc.ExportApplications(context.Background(), &entity.User{Role: entity.RoleInterviewer}, repository.ApplicationFilter{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestProcessReport_CollectsStepNames(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	repos := store.Repositories()
	seedApplications(t, store, 1)

	tpl := &entity.InterviewTemplate{Name: "Standard", IsActive: true, Steps: []entity.InterviewTemplateStep{
		{Name: "Screening", Order: 1, StepType: entity.StepTypeScreening},
		{Name: "Technical", Order: 2, StepType: entity.StepTypeTechnical},
	}}
	require.NoError(t, repos.InterviewTemplates.Create(ctx, tpl))
	p := &entity.InterviewProcess{ApplicationID: 1, TemplateID: tpl.ID, Status: entity.StepStatusPending}
	require.NoError(t, repos.InterviewProcesses.Create(ctx, p))
	for _, ts := range []entity.InterviewTemplateStep{tpl.Steps[1], tpl.Steps[0]} {
		require.NoError(t, repos.InterviewProcesses.CreateStep(ctx, &entity.InterviewStep{
			ProcessID: p.ID, TemplateStepID: ts.ID, Order: ts.Order, Status: entity.StepStatusPending,
		}))
	}

	pdf := &fakePDF{}
	uc := report.NewReportUseCase(store, &fakeSheet{}, pdf, zerolog.Nop())
	_, err := uc.ProcessReport(ctx, recruiter, p.ID)
	require.NoError(t, err)

	assert.Equal(t, "Standard", pdf.report.TemplateName)
	assert.Equal(t, "Engineer", pdf.report.JobTitle)
	require.Len(t, pdf.report.Steps, 2)
	assert.Equal(t, "Screening", pdf.report.Steps[0].Name)
	assert.Equal(t, "Technical", pdf.report.Steps[1].Name)

	_, err = uc.ProcessReport(ctx, recruiter, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
