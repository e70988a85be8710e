package telemetry

import (
	"context"
	"errors"
	"testing"
)

func TestInitTracingDisabledWithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	shutdown, err := InitTracing("clockname-test", "0.0.0")
	if err != nil {
		t.Fatalf("InitTracing() error: %v", err)
	}
	if shutdown == nil {
		t.Fatal("expected no-op shutdown func")
	}
	shutdown()
}

func TestStartSpanCarriesCorrelation(t *testing.T) {
	ctx := WithCorrelation(context.Background(), "corr-1")
	ctx, span := StartSpan(ctx, "test", "op")
	defer span.End()
	if ctx == nil {
		t.Fatal("StartSpan returned nil context")
	}
	RecordError(span, errors.New("boom"))
	SetSpanHTTPStatus(span, 500)
}
