// internal/common/observability/metrics.go
package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Observability owns the OpenTelemetry meter and tracer providers.
type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	tracer         trace.Tracer
	jobCounter     otelmetric.Int64Counter
	jobDuration    otelmetric.Float64Histogram
}

// New registers global providers. sampleRatio is the head sampling ratio for job spans.
func New(serviceName string, sampleRatio float64) (*Observability, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	mp := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(mp)

	// TODO: register an OTLP span exporter once the collector endpoint is provisioned.
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio))),
	)
	otel.SetTracerProvider(tp)

	meter := mp.Meter(serviceName)

	jobCounter, err := meter.Int64Counter(
		"jobs.processed",
		otelmetric.WithDescription("Number of jobs processed"),
	)
	if err != nil {
		return nil, err
	}

	jobDuration, err := meter.Float64Histogram(
		"jobs.duration",
		otelmetric.WithDescription("Job processing duration"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &Observability{
		meterProvider:  mp,
		tracerProvider: tp,
		tracer:         tp.Tracer(serviceName),
		jobCounter:     jobCounter,
		jobDuration:    jobDuration,
	}, nil
}

// StartJobSpan opens a span for one job. Safe on a nil receiver.
func (o *Observability) StartJobSpan(ctx context.Context, taskType string, jobKey int64) (context.Context, trace.Span) {
	tracer := otel.Tracer("accelerator-workers")
	if o != nil && o.tracer != nil {
		tracer = o.tracer
	}
	return tracer.Start(ctx, taskType, trace.WithAttributes(
		attribute.String("job.type", taskType),
		attribute.Int64("job.key", jobKey),
	))
}

// RecordJob records one processed job with its outcome. Safe on a nil receiver.
func (o *Observability) RecordJob(ctx context.Context, taskType string, duration time.Duration, status string) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("task_type", taskType),
		attribute.String("status", status),
	)
	if o.jobCounter != nil {
		o.jobCounter.Add(ctx, 1, attrs)
	}
	if o.jobDuration != nil {
		o.jobDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
}

func (o *Observability) Shutdown(ctx context.Context) error {
	if o == nil {
		return nil
	}
	var firstErr error
	if o.tracerProvider != nil {
		if err := o.tracerProvider.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}
	if o.meterProvider != nil {
		if err := o.meterProvider.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
