// Package telemetry configura el proveedor de trazas OpenTelemetry (exportador OTLP/HTTP).
package telemetry

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/jhoicas/recruitment-api/pkg/config"
)

// Shutdown vacía y cierra el exportador. Se llama una vez al apagar el servidor.
type Shutdown func(ctx context.Context) error

// Enabled indica si se deben exportar trazas: solo en production y con endpoint.
func Enabled(app config.AppConfig, cfg config.TelemetryConfig) bool {
	return app.IsProduction() && cfg.OTLPEndpoint != ""
}

// Setup registra el TracerProvider global. Si la telemetría está desactivada
// no registra nada y devuelve un Shutdown vacío.
func Setup(ctx context.Context, app config.AppConfig, cfg config.TelemetryConfig, log zerolog.Logger) (Shutdown, error) {
	if !Enabled(app, cfg) {
		log.Debug().Msg("telemetría desactivada")
		return func(context.Context) error { return nil }, nil
	}

	exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.OTLPEndpoint))
	if err != nil {
		return nil, fmt.Errorf("telemetry: exportador OTLP: %w", err)
	}

	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(
		attribute.String("service.name", app.Name),
		attribute.String("deployment.environment", app.Env),
	))
	if err != nil {
		return nil, fmt.Errorf("telemetry: recurso: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	log.Info().Str("endpoint", cfg.OTLPEndpoint).Msg("telemetría OTLP activa")
	return tp.Shutdown, nil
}
