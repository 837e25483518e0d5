package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type queryStartKey struct{}

type queryStart struct {
	at  time.Time
	sql string
}

// SlowQueryTracer pgx.QueryTracer que registra las consultas que superan el umbral.
type SlowQueryTracer struct {
	threshold time.Duration
	log       zerolog.Logger
}

var _ pgx.QueryTracer = (*SlowQueryTracer)(nil)

// NewSlowQueryTracer construye el tracer.
func NewSlowQueryTracer(threshold time.Duration, log zerolog.Logger) *SlowQueryTracer {
	return &SlowQueryTracer{threshold: threshold, log: log.With().Str("component", "db").Logger()}
}

func (t *SlowQueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{at: time.Now(), sql: data.SQL})
}

func (t *SlowQueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}
	elapsed := time.Since(start.at)
	if elapsed < t.threshold {
		return
	}
	ev := t.log.Warn().
		Dur("elapsed", elapsed).
		Str("sql", compactSQL(start.sql)).
		Int64("rows", data.CommandTag.RowsAffected())
	if data.Err != nil {
		ev = ev.Err(data.Err)
	}
	ev.Msg("consulta lenta")
}

// compactSQL colapsa espacios y recorta consultas largas para el log.
func compactSQL(sql string) string {
	s := strings.Join(strings.Fields(sql), " ")
	if len(s) > 300 {
		s = s[:300] + "..."
	}
	return s
}
