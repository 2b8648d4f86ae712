// Package telemetry initializes OpenTelemetry tracing and metrics with either a
// stdout (development) or OTLP/HTTP (production) exporter.
//
// The stdout exporters write to a caller-supplied writer. In MCP mode stdout
// carries the JSON-RPC stream, so the caller passes os.Stderr there.
//
//	tp, err := telemetry.InitTracer(ctx, telemetry.Options{ServiceName: "go-task-tracker"})
//	defer tp.Shutdown(ctx)
//
//	mp, err := telemetry.InitMeter(ctx, opts)
//	metrics, err := telemetry.NewMetrics(mp, opts.ServiceName)
//	metrics.TaskTransitionTotal.Add(ctx, 1, ...)
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
)

// Supported exporter names.
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// InstrumentationScope names the tracer and meter used across the module.
const InstrumentationScope = "github.com/jsamuelsen11/go-task-tracker"

// Attribute keys for metric labels.
var (
	AttrHTTPMethod = attribute.Key("http.method")
	AttrHTTPRoute  = attribute.Key("http.route")
	AttrHTTPStatus = attribute.Key("http.status_code")
	AttrCommand    = attribute.Key("task.command")
	AttrResult     = attribute.Key("result")
)

// Metric result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Options selects the exporter for InitTracer and InitMeter.
type Options struct {
	ServiceName string
	// Exporter is ExporterStdout or ExporterOTLP. Empty means stdout.
	Exporter string
	// Endpoint is required for OTLP, e.g. "http://otel-collector:4318".
	Endpoint string
	// Writer receives stdout-exporter output. Nil means os.Stderr.
	Writer io.Writer
}

// Metrics holds pre-registered OpenTelemetry metric instruments.
type Metrics struct {
	ServerRequestDuration metric.Float64Histogram
	ServerRequestTotal    metric.Int64Counter
	TaskTransitionTotal   metric.Int64Counter
	StorageWriteDuration  metric.Float64Histogram
}

// InitTracer creates and registers a global TracerProvider and the W3C
// trace-context propagator. The returned provider must be shut down on exit.
func InitTracer(ctx context.Context, opts Options) (*sdktrace.TracerProvider, error) {
	res, err := newResource(opts.ServiceName)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	spanExporter, err := newSpanExporter(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("creating span exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(spanExporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp, nil
}

// InitMeter creates and registers a global MeterProvider.
// The returned provider must be shut down on exit.
func InitMeter(ctx context.Context, opts Options) (*sdkmetric.MeterProvider, error) {
	res, err := newResource(opts.ServiceName)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	metricExporter, err := newMetricExporter(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	return mp, nil
}

// NewMetrics registers every instrument on mp. Any metric.MeterProvider
// works, including the noop provider used when telemetry is disabled.
func NewMetrics(mp metric.MeterProvider, serviceName string) (*Metrics, error) {
	meter := mp.Meter(InstrumentationScope, metric.WithInstrumentationAttributes(
		semconv.ServiceName(serviceName),
	))

	serverDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("Duration of incoming HTTP requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http.server.request.duration: %w", err)
	}

	serverTotal, err := meter.Int64Counter(
		"http.server.request.total",
		metric.WithDescription("Total number of incoming HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http.server.request.total: %w", err)
	}

	transitions, err := meter.Int64Counter(
		"task.transition.total",
		metric.WithDescription("Task lifecycle commands by command and result"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating task.transition.total: %w", err)
	}

	writeDuration, err := meter.Float64Histogram(
		"storage.write.duration",
		metric.WithDescription("Duration of user store file writes"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating storage.write.duration: %w", err)
	}

	return &Metrics{
		ServerRequestDuration: serverDuration,
		ServerRequestTotal:    serverTotal,
		TaskTransitionTotal:   transitions,
		StorageWriteDuration:  writeDuration,
	}, nil
}

func newResource(serviceName string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
}

func newSpanExporter(ctx context.Context, opts Options) (sdktrace.SpanExporter, error) {
	switch opts.Exporter {
	case ExporterOTLP:
		if opts.Endpoint == "" {
			return nil, errors.New("otlp exporter requires an endpoint")
		}
		exporterOpts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(hostPort(opts.Endpoint))}
		if !isHTTPS(opts.Endpoint) {
			exporterOpts = append(exporterOpts, otlptracehttp.WithInsecure())
		}
		return otlptracehttp.New(ctx, exporterOpts...)
	case ExporterStdout, "":
		return stdouttrace.New(stdouttrace.WithWriter(writer(opts)), stdouttrace.WithPrettyPrint())
	default:
		return nil, fmt.Errorf("unsupported exporter %q", opts.Exporter)
	}
}

func newMetricExporter(ctx context.Context, opts Options) (sdkmetric.Exporter, error) {
	switch opts.Exporter {
	case ExporterOTLP:
		if opts.Endpoint == "" {
			return nil, errors.New("otlp exporter requires an endpoint")
		}
		exporterOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(hostPort(opts.Endpoint))}
		if !isHTTPS(opts.Endpoint) {
			exporterOpts = append(exporterOpts, otlpmetrichttp.WithInsecure())
		}
		return otlpmetrichttp.New(ctx, exporterOpts...)
	case ExporterStdout, "":
		return stdoutmetric.New(stdoutmetric.WithWriter(writer(opts)))
	default:
		return nil, fmt.Errorf("unsupported exporter %q", opts.Exporter)
	}
}

func writer(opts Options) io.Writer {
	if opts.Writer != nil {
		return opts.Writer
	}
	return os.Stderr
}

// hostPort extracts the host:port from a URL string
// (e.g., "http://otel-collector:4318" -> "otel-collector:4318").
func hostPort(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return endpoint
	}
	return u.Host
}

// isHTTPS returns true if the endpoint URL uses the https scheme.
func isHTTPS(endpoint string) bool {
	u, err := url.Parse(endpoint)
	if err != nil {
		return false
	}
	return u.Scheme == "https"
}
