package postgres

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/recruitment-api/internal/domain"
)

func TestWrapErr_ConstraintViolationsAreIntegrity(t *testing.T) {
	for _, code := range []string{codeUniqueViolation, codeForeignKeyViolation, codeCheckViolation} {
		err := wrapErr("applications.create", &pgconn.PgError{Code: code, ConstraintName: "uq_application"})
		assert.ErrorIs(t, err, domain.ErrIntegrity, "código %s", code)
		assert.Contains(t, err.Error(), "uq_application")
	}
}

func TestWrapErr_OtherErrorsKeepCause(t *testing.T) {
	cause := errors.New("conn reset")
	err := wrapErr("companies.list", cause)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, domain.ErrIntegrity)
	assert.Equal(t, "companies.list: conn reset", err.Error())
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, isNoRows(pgx.ErrNoRows))
	assert.True(t, isNoRows(wrapErr("users.get", pgx.ErrNoRows)))
	assert.False(t, isNoRows(errors.New("x")))
}

func TestCompactSQL(t *testing.T) {
	assert.Equal(t, "SELECT id FROM companies WHERE id = $1", compactSQL("SELECT id\n\t FROM companies\n WHERE id = $1"))

	long := compactSQL(strings.Repeat("a ", 400))
	assert.Len(t, long, 303)
	assert.True(t, strings.HasSuffix(long, "..."))
}

func TestSlowQueryTracer(t *testing.T) {
	var buf bytes.Buffer
	tr := NewSlowQueryTracer(0, zerolog.New(&buf))

	ctx := tr.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT  1"})
	tr.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{CommandTag: pgconn.NewCommandTag("SELECT 1")})
	assert.Contains(t, buf.String(), `"sql":"SELECT 1"`)
	assert.Contains(t, buf.String(), "consulta lenta")

	buf.Reset()
	slow := NewSlowQueryTracer(time.Hour, zerolog.New(&buf))
	ctx = slow.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	slow.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})
	assert.Zero(t, buf.Len())
}
