package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/recruitment-api/internal/application/ports"
	"github.com/jhoicas/recruitment-api/internal/domain"
	"github.com/jhoicas/recruitment-api/internal/domain/entity"
	"github.com/jhoicas/recruitment-api/internal/domain/repository"
	"github.com/jhoicas/recruitment-api/internal/infrastructure/memory"
	"github.com/jhoicas/recruitment-api/internal/infrastructure/render"
)

type stubMailer struct {
	sent []ports.EmailMessage
	err  error
}

func (m *stubMailer) Send(_ context.Context, msg ports.EmailMessage) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func seedTemplates(t *testing.T, tpls ...entity.EmailTemplate) repository.EmailTemplateRepository {
	t.Helper()
	repo := memory.NewStore().Repositories().EmailTemplates
	for i := range tpls {
		require.NoError(t, repo.Create(context.Background(), &tpls[i]))
	}
	return repo
}

func TestSend_RendersActiveTemplate(t *testing.T) {
	repo := seedTemplates(t,
		entity.EmailTemplate{Name: "old", Type: entity.EmailTypeInterviewSuccess, SubjectTemplate: "viejo", HTMLContent: "x", IsActive: false},
		entity.EmailTemplate{Name: "current", Type: entity.EmailTypeInterviewSuccess,
			SubjectTemplate: "{{ interview_type }} aprobada", HTMLContent: "<p>{{ candidate_name }}</p>", IsActive: true},
	)
	mailer := &stubMailer{}
	svc := NewEmailService(render.NewPongo2Renderer(), mailer, zerolog.Nop())

	err := svc.Send(context.Background(), repo, "ana@example.com", entity.EmailTypeInterviewSuccess, "",
		map[string]any{"interview_type": "technical", "candidate_name": "Ana"})
	require.NoError(t, err)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ana@example.com", mailer.sent[0].To)
	assert.Equal(t, "technical aprobada", mailer.sent[0].Subject)
	assert.Equal(t, "<p>Ana</p>", mailer.sent[0].HTMLBody)
}

func TestSend_FiltersByName(t *testing.T) {
	repo := seedTemplates(t,
		entity.EmailTemplate{Name: "a", Type: entity.EmailTypeInterviewSched, SubjectTemplate: "A", HTMLContent: "a", IsActive: true},
		entity.EmailTemplate{Name: "b", Type: entity.EmailTypeInterviewSched, SubjectTemplate: "B", HTMLContent: "b", IsActive: true},
	)
	mailer := &stubMailer{}
	svc := NewEmailService(render.NewPongo2Renderer(), mailer, zerolog.Nop())

	require.NoError(t, svc.Send(context.Background(), repo, "x@example.com", entity.EmailTypeInterviewSched, "b", nil))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "B", mailer.sent[0].Subject)
}

func TestSend_NoActiveTemplate(t *testing.T) {
	repo := seedTemplates(t)
	mailer := &stubMailer{}
	svc := NewEmailService(render.NewPongo2Renderer(), mailer, zerolog.Nop())

	err := svc.Send(context.Background(), repo, "x@example.com", entity.EmailTypeInterviewFailure, "", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, mailer.sent)
}

func TestSend_DeliveryFailure(t *testing.T) {
	repo := seedTemplates(t,
		entity.EmailTemplate{Name: "s", Type: entity.EmailTypeProcessStarted, SubjectTemplate: "s", HTMLContent: "b", IsActive: true},
	)
	svc := NewEmailService(render.NewPongo2Renderer(), &stubMailer{err: errors.New("dial tcp: refused")}, zerolog.Nop())

	err := svc.Send(context.Background(), repo, "x@example.com", entity.EmailTypeProcessStarted, "", nil)
	assert.ErrorIs(t, err, domain.ErrEmailDelivery)
}

func TestSend_InvalidTemplateSyntax(t *testing.T) {
	repo := seedTemplates(t,
		entity.EmailTemplate{Name: "bad", Type: entity.EmailTypeProcessStarted, SubjectTemplate: "{% if x %}sin cierre", HTMLContent: "b", IsActive: true},
	)
	mailer := &stubMailer{}
	svc := NewEmailService(render.NewPongo2Renderer(), mailer, zerolog.Nop())

	err := svc.Send(context.Background(), repo, "x@example.com", entity.EmailTypeProcessStarted, "", nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, mailer.sent)
}
