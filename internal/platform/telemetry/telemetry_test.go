package telemetry_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"

	"github.com/jsamuelsen11/go-task-tracker/internal/platform/telemetry"
)

func TestInitTracer_Stdout(t *testing.T) {
	ctx := context.Background()

	tp, err := telemetry.InitTracer(ctx, telemetry.Options{ServiceName: "test-service", Exporter: telemetry.ExporterStdout, Endpoint: "", Writer: io.Discard})
	if err != nil {
		t.Fatalf("InitTracer(stdout) error = %v", err)
	}
	t.Cleanup(func() {
		if err := tp.Shutdown(ctx); err != nil {
			t.Errorf("Shutdown error = %v", err)
		}
	})

	if tp == nil {
		t.Fatal("InitTracer(stdout) returned nil TracerProvider")
	}
}

func TestInitTracer_OTLP(t *testing.T) {
	ctx := context.Background()

	tp, err := telemetry.InitTracer(ctx, telemetry.Options{ServiceName: "test-service", Exporter: telemetry.ExporterOTLP, Endpoint: "http://localhost:4318", Writer: io.Discard})
	if err != nil {
		t.Fatalf("InitTracer(otlp) error = %v", err)
	}
	t.Cleanup(func() {
		// Shutdown may fail when no collector is running; this is expected in unit tests.
		_ = tp.Shutdown(ctx)
	})

	if tp == nil {
		t.Fatal("InitTracer(otlp) returned nil TracerProvider")
	}
}

func TestInitTracer_SetsGlobalPropagator(t *testing.T) {
	ctx := context.Background()

	tp, err := telemetry.InitTracer(ctx, telemetry.Options{ServiceName: "test-service", Exporter: telemetry.ExporterStdout, Endpoint: "", Writer: io.Discard})
	if err != nil {
		t.Fatalf("InitTracer error = %v", err)
	}
	t.Cleanup(func() {
		if err := tp.Shutdown(ctx); err != nil {
			t.Errorf("Shutdown error = %v", err)
		}
	})

	prop := otel.GetTextMapPropagator()
	if _, ok := prop.(propagation.TraceContext); ok {
		// Single TraceContext is fine but we expect a composite.
		return
	}
	// Composite propagator should have non-empty Fields().
	if len(prop.Fields()) == 0 {
		t.Error("global propagator has no fields, want TraceContext + Baggage fields")
	}
}

func TestInitTracer_UnsupportedExporter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	_, err := telemetry.InitTracer(ctx, telemetry.Options{ServiceName: "test-service", Exporter: "invalid", Endpoint: "", Writer: io.Discard})
	if err == nil {
		t.Fatal("InitTracer with unsupported exporter should return error")
	}
}

func TestInitTracer_OTLPEmptyEndpoint(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	_, err := telemetry.InitTracer(ctx, telemetry.Options{ServiceName: "test-service", Exporter: telemetry.ExporterOTLP, Endpoint: "", Writer: io.Discard})
	if err == nil {
		t.Fatal("InitTracer with otlp and empty endpoint should return error")
	}
}

func TestInitMeter_Stdout(t *testing.T) {
	ctx := context.Background()

	mp, err := telemetry.InitMeter(ctx, telemetry.Options{ServiceName: "test-service", Exporter: telemetry.ExporterStdout, Endpoint: "", Writer: io.Discard})
	if err != nil {
		t.Fatalf("InitMeter(stdout) error = %v", err)
	}
	t.Cleanup(func() {
		if err := mp.Shutdown(ctx); err != nil {
			t.Errorf("Shutdown error = %v", err)
		}
	})

	if mp == nil {
		t.Fatal("InitMeter(stdout) returned nil MeterProvider")
	}
}

func TestInitMeter_OTLP(t *testing.T) {
	ctx := context.Background()

	mp, err := telemetry.InitMeter(ctx, telemetry.Options{ServiceName: "test-service", Exporter: telemetry.ExporterOTLP, Endpoint: "http://localhost:4318", Writer: io.Discard})
	if err != nil {
		t.Fatalf("InitMeter(otlp) error = %v", err)
	}
	t.Cleanup(func() {
		// Shutdown may fail when no collector is running; this is expected in unit tests.
		_ = mp.Shutdown(ctx)
	})

	if mp == nil {
		t.Fatal("InitMeter(otlp) returned nil MeterProvider")
	}
}

func TestInitMeter_UnsupportedExporter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	_, err := telemetry.InitMeter(ctx, telemetry.Options{ServiceName: "test-service", Exporter: "invalid", Endpoint: "", Writer: io.Discard})
	if err == nil {
		t.Fatal("InitMeter with unsupported exporter should return error")
	}
}

func TestInitMeter_OTLPEmptyEndpoint(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	_, err := telemetry.InitMeter(ctx, telemetry.Options{ServiceName: "test-service", Exporter: telemetry.ExporterOTLP, Endpoint: "", Writer: io.Discard})
	if err == nil {
		t.Fatal("InitMeter with otlp and empty endpoint should return error")
	}
}

func TestNewMetrics(t *testing.T) {
	ctx := context.Background()

	mp, err := telemetry.InitMeter(ctx, telemetry.Options{ServiceName: "test-service", Exporter: telemetry.ExporterStdout, Endpoint: "", Writer: io.Discard})
	if err != nil {
		t.Fatalf("InitMeter error = %v", err)
	}
	t.Cleanup(func() {
		if err := mp.Shutdown(ctx); err != nil {
			t.Errorf("Shutdown error = %v", err)
		}
	})

	metrics, err := telemetry.NewMetrics(mp, "test-service")
	if err != nil {
		t.Fatalf("NewMetrics error = %v", err)
	}

	if metrics.ServerRequestDuration == nil {
		t.Error("ServerRequestDuration is nil")
	}
	if metrics.ServerRequestTotal == nil {
		t.Error("ServerRequestTotal is nil")
	}
	if metrics.TaskTransitionTotal == nil {
		t.Error("TaskTransitionTotal is nil")
	}
	if metrics.StorageWriteDuration == nil {
		t.Error("StorageWriteDuration is nil")
	}
}

func TestNewMetrics_NoopProvider(t *testing.T) {
	t.Parallel()

	metrics, err := telemetry.NewMetrics(noop.NewMeterProvider(), "test-service")
	if err != nil {
		t.Fatalf("NewMetrics(noop) error = %v", err)
	}

	// Recording on noop instruments must not panic.
	ctx := context.Background()
	metrics.TaskTransitionTotal.Add(ctx, 1, metric.WithAttributes(
		telemetry.AttrCommand.String("start"),
		telemetry.AttrResult.String(telemetry.ResultSuccess),
	))
	metrics.StorageWriteDuration.Record(ctx, 0.01)
}

func TestInitTracer_StdoutWritesToWriter(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	tp, err := telemetry.InitTracer(ctx, telemetry.Options{
		ServiceName: "test-service",
		Exporter:    telemetry.ExporterStdout,
		Writer:      &buf,
	})
	if err != nil {
		t.Fatalf("InitTracer error = %v", err)
	}

	_, span := tp.Tracer("test").Start(ctx, "ChangeTaskStatus")
	span.End()

	if err := tp.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown error = %v", err)
	}

	if !strings.Contains(buf.String(), "ChangeTaskStatus") {
		t.Errorf("writer output = %q, want it to contain the span name", buf.String())
	}
}
