package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSetup_DisabledWithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	exp, err := Setup(context.Background(), "test")
	require.NoError(t, err)
	assert.Nil(t, exp)
	assert.NoError(t, exp.Shutdown(context.Background()))
}

func TestStartEnd_RecordsSpan(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	_, span := Start(context.Background(), "github.fetch", map[string]string{"user": "octocat"})
	End(span, errors.New("boom"))

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "devfolio.github.fetch", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)

	var found bool
	for _, kv := range spans[0].Attributes() {
		if string(kv.Key) == "devfolio.user" && kv.Value.AsString() == "octocat" {
			found = true
		}
	}
	assert.True(t, found, "expected devfolio.user attribute")
}
