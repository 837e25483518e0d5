package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/recruitment-api/internal/domain"
)

func TestErrorf_WrapsKind(t *testing.T) {
	err := domain.Errorf(domain.ErrValidation, "Candidate with email %s already exists", "a@b.com")

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Candidate with email a@b.com already exists", domain.Detail(err))
}

func TestDetail_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("create application: %w", domain.NotFound("Job opening"))

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Job opening not found", domain.Detail(err))
}

func TestTemplateNotFound_IsNotFound(t *testing.T) {
	assert.True(t, errors.Is(domain.ErrTemplateNotFound, domain.ErrNotFound))
	assert.Equal(t, "could not validate credentials", domain.Detail(domain.ErrUnauthenticated))
}
