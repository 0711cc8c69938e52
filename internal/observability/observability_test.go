package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{ServiceName: ServiceName, Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
	assert.NotNil(t, Tracer)
}

func TestTraceRepositoryMethod_RecordsErrors(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := Tracer
	Tracer = tp.Tracer("test")
	defer func() { Tracer = prev }()

	_, span := TraceRepositoryMethod(context.Background(), "GetByID", "posts")
	EndSpan(span, errors.New("boom"))

	_, span = TraceServiceMethod(context.Background(), "PostService", "List")
	EndSpan(span, nil)

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "repository.GetByID", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "PostService.List", ended[1].Name())
	assert.Equal(t, codes.Unset, ended[1].Status().Code)
}

func TestAuthAttemptsCounter(t *testing.T) {
	before := testutil.ToFloat64(AuthAttempts.WithLabelValues(OutcomeFailure))
	AuthAttempts.WithLabelValues(OutcomeFailure).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(AuthAttempts.WithLabelValues(OutcomeFailure)))
}

func TestTrackQuery(t *testing.T) {
	done := TrackQuery("select", "users")
	done()
	assert.Equal(t, 1, testutil.CollectAndCount(DatabaseQueryLatency))
}
