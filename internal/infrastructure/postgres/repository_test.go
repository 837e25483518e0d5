package postgres

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/recruitment-api/internal/domain"
	"github.com/jhoicas/recruitment-api/internal/domain/entity"
	"github.com/jhoicas/recruitment-api/internal/domain/repository"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func ptr[T any](v T) *T { return &v }

func TestApplicationWhere_NumbersPlaceholdersInOrder(t *testing.T) {
	cases := []struct {
		name  string
		f     repository.ApplicationFilter
		where string
		args  []any
	}{
		{name: "sin filtros"},
		{
			name:  "solo estado",
			f:     repository.ApplicationFilter{Status: ptr(entity.ApplicationStatus("screening"))},
			where: " WHERE a.status = $1",
			args:  []any{"screening"},
		},
		{
			name:  "vacante y estado",
			f:     repository.ApplicationFilter{JobOpeningID: ptr(int64(4)), Status: ptr(entity.ApplicationStatus("applied"))},
			where: " WHERE a.job_opening_id = $1 AND a.status = $2",
			args:  []any{int64(4), "applied"},
		},
		{
			name: "todos",
			f: repository.ApplicationFilter{
				CandidateID: ptr(int64(1)), JobOpeningID: ptr(int64(2)), Status: ptr(entity.ApplicationStatus("hired")),
			},
			where: " WHERE a.candidate_id = $1 AND a.job_opening_id = $2 AND a.status = $3",
			args:  []any{int64(1), int64(2), "hired"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			where, args := applicationWhere(tc.f)
			assert.Equal(t, tc.where, where)
			assert.Equal(t, tc.args, args)
		})
	}
}

func TestApplicationRepo_ListPagesAfterFilters(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM applications a WHERE a.candidate_id = $1 AND a.status = $2 ORDER BY a.id LIMIT $3 OFFSET $4")).
		WithArgs(int64(7), "applied", 10, 20).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	list, err := NewApplicationRepository(mock).List(context.Background(),
		repository.ApplicationFilter{CandidateID: ptr(int64(7)), Status: ptr(entity.ApplicationStatus("applied"))},
		repository.Page{Skip: 20, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestApplicationRepo_ListDetailedJoinsAndPages(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("ON co.id = j.company_id WHERE a.job_opening_id = $1 ORDER BY a.id LIMIT $2 OFFSET $3")).
		WithArgs(int64(3), 100, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	_, err := NewApplicationRepository(mock).ListDetailed(context.Background(),
		repository.ApplicationFilter{JobOpeningID: ptr(int64(3))}, repository.NewPage(0, 0))
	require.NoError(t, err)
}

func TestJobOpeningRepo_ListFilters(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM job_openings WHERE company_id = $1 AND status = $2 ORDER BY id LIMIT $3 OFFSET $4")).
		WithArgs(int64(2), "open", 5, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta("FROM job_openings ORDER BY id LIMIT $1 OFFSET $2")).
		WithArgs(100, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	repo := NewJobOpeningRepository(mock)
	ctx := context.Background()
	_, err := repo.List(ctx, repository.JobOpeningFilter{CompanyID: ptr(int64(2)), Status: ptr(entity.JobStatus("open"))},
		repository.Page{Limit: 5})
	require.NoError(t, err)
	_, err = repo.List(ctx, repository.JobOpeningFilter{}, repository.Page{Limit: 100})
	require.NoError(t, err)
}

func TestEmailTemplateRepo_ListFilters(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM email_templates WHERE is_active = $1 ORDER BY id LIMIT $2 OFFSET $3")).
		WithArgs(true, 100, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	_, err := NewEmailTemplateRepository(mock).List(context.Background(),
		repository.EmailTemplateFilter{IsActive: ptr(true)}, repository.Page{Limit: 100})
	require.NoError(t, err)
}

func TestInterviewProcessRepo_StepContext(t *testing.T) {
	mock := newMock(t)
	cols := []string{"name", "duration_minutes", "step_order", "count", "id", "first_name", "last_name", "email", "title", "company"}
	countJoin := regexp.QuoteMeta("(SELECT count(*) FROM interview_template_steps x WHERE x.template_id = ts.template_id)")

	mock.ExpectQuery(countJoin).
		WithArgs(int64(9)).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow("Technical Assessment", 60, 2, 3, int64(7), "Ana", "Gómez", "ana@example.com", "Backend Engineer", "Acme"))
	mock.ExpectQuery(countJoin).
		WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows(cols))

	repo := NewInterviewProcessRepository(mock)
	sc, err := repo.StepContext(context.Background(), 9)
	require.NoError(t, err)
	require.NotNil(t, sc)
	assert.Equal(t, entity.StepContext{
		StepName: "Technical Assessment", DurationMinutes: 60, TemplateStepOrder: 2, TemplateStepCount: 3,
		ApplicationID: 7, CandidateFirst: "Ana", CandidateLast: "Gómez", CandidateEmail: "ana@example.com",
		JobTitle: "Backend Engineer", CompanyName: "Acme",
	}, *sc)

	sc, err = repo.StepContext(context.Background(), 10)
	require.NoError(t, err)
	assert.Nil(t, sc)
}

func TestInterviewTemplateRepo_DeleteInUseIsIntegrity(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM interview_templates WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnError(&pgconn.PgError{Code: codeForeignKeyViolation, ConstraintName: "interview_processes_template_id_fkey"})

	err := NewInterviewTemplateRepository(mock).Delete(context.Background(), 4)
	assert.ErrorIs(t, err, domain.ErrIntegrity)
}

// Las reglas ON DELETE del esquema son las mismas que aplica el store en memoria.
func TestSchema_DeleteRules(t *testing.T) {
	rules := map[string]string{
		"template_id           BIGINT      NOT NULL REFERENCES interview_templates (id)": "CASCADE",
		"company_id            BIGINT      NOT NULL REFERENCES companies (id)":           "CASCADE",
		"interview_template_id BIGINT REFERENCES interview_templates (id)":               "SET NULL",
		"user_id           BIGINT      NOT NULL UNIQUE REFERENCES users (id)":           "CASCADE",
		"candidate_id        BIGINT      NOT NULL REFERENCES candidates (id)":           "CASCADE",
		"job_opening_id      BIGINT      NOT NULL REFERENCES job_openings (id)":         "CASCADE",
		"application_id  BIGINT      NOT NULL UNIQUE REFERENCES applications (id)":      "CASCADE",
		"template_id     BIGINT      NOT NULL REFERENCES interview_templates (id)":      "RESTRICT",
		"process_id        BIGINT      NOT NULL REFERENCES interview_processes (id)":    "CASCADE",
		"template_step_id  BIGINT      NOT NULL REFERENCES interview_template_steps (id)": "RESTRICT",
	}
	for column, rule := range rules {
		assert.Contains(t, schemaSQL, column+" ON DELETE "+rule, column)
	}
	assert.Contains(t, schemaSQL, "UNIQUE (candidate_id, job_opening_id)")
	assert.Equal(t, strings.Count(schemaSQL, "CREATE TABLE"), strings.Count(schemaSQL, "CREATE TABLE IF NOT EXISTS"))
}
