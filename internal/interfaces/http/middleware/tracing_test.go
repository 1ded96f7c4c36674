package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/erp/projectlink/internal/infrastructure/i18n"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTestTracer sets up a test tracer provider and returns the span recorder.
func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	t.Cleanup(func() {
		_ = tp.Shutdown(t.Context())
		otel.SetTracerProvider(prev)
	})

	return sr
}

func findSpan(t *testing.T, sr *tracetest.SpanRecorder, name string) sdktrace.ReadOnlySpan {
	t.Helper()
	for _, span := range sr.Ended() {
		if span.Name() == name {
			return span
		}
	}
	require.Failf(t, "span not found", "no ended span named %q", name)
	return nil
}

func TestTracingWithConfig_Disabled(t *testing.T) {
	sr := setupTestTracer(t)

	router := gin.New()
	router.Use(TracingWithConfig(TracingConfig{Enabled: false, ServiceName: "test-service"}))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sr.Ended())
}

func TestTracing_RouteSpanWithAttributes(t *testing.T) {
	sr := setupTestTracer(t)
	tr, err := i18n.NewTranslator("en")
	require.NoError(t, err)

	router := gin.New()
	router.Use(RequestID())
	router.Use(TracingWithConfig(TracingConfig{Enabled: true, ServiceName: "test-service"}))
	router.Use(Language(tr))
	router.Use(TracingAttributeInjector())
	router.GET("/projects/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})

	req := httptest.NewRequest(http.MethodGet, "/projects/42", nil)
	req.Header.Set(RequestIDHeader, "test-request-id-123")
	req.Header.Set("Accept-Language", "zh-CN")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	span := findSpan(t, sr, "GET /projects/:id")
	assert.Contains(t, span.Attributes(), attribute.String("request_id", "test-request-id-123"))
	assert.Contains(t, span.Attributes(), attribute.String("language", "zh-Hans"))
}

func TestSpanErrorMarker(t *testing.T) {
	sr := setupTestTracer(t)

	router := gin.New()
	router.Use(Tracing())
	router.Use(SpanErrorMarker())
	router.GET("/missing", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false})
	})
	router.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))

	missing := findSpan(t, sr, "GET /missing")
	assert.Equal(t, codes.Error, missing.Status().Code)
	assert.Equal(t, "Not Found", missing.Status().Description)

	ok := findSpan(t, sr, "GET /ok")
	assert.NotEqual(t, codes.Error, ok.Status().Code)
}

func TestMarkSpanStatus_Messages(t *testing.T) {
	sr := setupTestTracer(t)
	tracer := otel.Tracer("test")

	for _, status := range []int{http.StatusBadRequest, http.StatusInternalServerError} {
		_, span := tracer.Start(t.Context(), http.StatusText(status))
		markSpanStatus(span, status)
		span.End()
	}

	assert.Equal(t, "Client Error", findSpan(t, sr, "Bad Request").Status().Description)
	assert.Equal(t, "Internal Server Error", findSpan(t, sr, "Internal Server Error").Status().Description)
}
