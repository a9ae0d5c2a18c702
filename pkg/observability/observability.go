package observability

import (
	"context"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

var (
	completionCalls metric.Int64Counter
	chatTurns       metric.Int64Counter
	checkins        metric.Int64Counter
)

// SetupTracing initializes OpenTelemetry tracing with stdout exporter (for demo; replace with OTLP in prod)
func SetupTracing(serviceName string) func() {
	exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		log.Fatalf("failed to initialize stdouttrace exporter: %v", err)
	}
	res, _ := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
	provider := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	return func() { _ = provider.Shutdown(context.Background()) }
}

// SetupMetrics initializes the Prometheus metrics exporter and registers the
// application counters. The /metrics endpoint itself is mounted by the router.
func SetupMetrics(serviceName string) (*sdkmetric.MeterProvider, error) {
	exp, err := otelprom.New()
	if err != nil {
		return nil, err
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp))
	otel.SetMeterProvider(mp)

	meter := mp.Meter(serviceName)
	completionCalls, err = meter.Int64Counter("completion_client_calls_total",
		metric.WithDescription("Calls made to the completion service"))
	if err != nil {
		return nil, err
	}
	chatTurns, err = meter.Int64Counter("chat_turns_total",
		metric.WithDescription("Completed conversation turns"))
	if err != nil {
		return nil, err
	}
	checkins, err = meter.Int64Counter("checkins_total",
		metric.WithDescription("Daily check-ins recorded or updated"))
	if err != nil {
		return nil, err
	}

	return mp, nil
}

// RecordCompletion counts one completion-service call by kind (chat or
// summary) and outcome.
func RecordCompletion(ctx context.Context, kind string, err error) {
	if completionCalls == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	completionCalls.Add(ctx, 1,
		metric.WithAttributes(attribute.String("kind", kind), attribute.String("outcome", outcome)))
}

// RecordChatTurn counts one fully processed conversation turn.
func RecordChatTurn(ctx context.Context) {
	if chatTurns == nil {
		return
	}
	chatTurns.Add(ctx, 1)
}

// RecordCheckin counts one check-in write by path taken.
func RecordCheckin(ctx context.Context, created bool) {
	if checkins == nil {
		return
	}
	path := "updated"
	if created {
		path = "created"
	}
	checkins.Add(ctx, 1, metric.WithAttributes(attribute.String("path", path)))
}
