// Package middleware provides HTTP middleware for the project link API.
package middleware

import (
	"net/http"

	"github.com/erp/projectlink/internal/infrastructure/i18n"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"
)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	// ServiceName is the name of the service for trace identification.
	ServiceName string
	// Enabled controls whether tracing is active.
	Enabled bool
}

// DefaultTracingConfig returns default tracing configuration.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName: "projectlink",
		Enabled:     true,
	}
}

// Tracing returns OpenTelemetry tracing middleware with default configuration.
func Tracing() gin.HandlerFunc {
	return TracingWithConfig(DefaultTracingConfig())
}

// TracingWithConfig wraps otelgin. The server span is named after the route
// pattern (e.g. "POST /api/v1/projects/actions/:action"). otelgin ends the span
// when it returns, so span enrichment lives in the middlewares placed after it.
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return otelgin.Middleware(cfg.ServiceName)
}

// SpanErrorMarker marks the server span as failed for 4xx and 5xx responses.
// Place it after Tracing.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if span := trace.SpanFromContext(c.Request.Context()); span.IsRecording() {
			markSpanStatus(span, c.Writer.Status())
		}
	}
}

// TracingAttributeInjector adds request attributes to the server span. Place it
// after Tracing, RequestID and Language.
func TracingAttributeInjector() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			if id := GetRequestID(c); id != "" {
				span.SetAttributes(attribute.String("request_id", id))
			}
			if tag := i18n.FromContext(c.Request.Context()); tag != language.Und {
				span.SetAttributes(attribute.String("language", tag.String()))
			}
		}
		c.Next()
	}
}

// markSpanStatus flags 4xx and 5xx responses on the span.
func markSpanStatus(span trace.Span, statusCode int) {
	if statusCode < http.StatusBadRequest {
		return
	}
	msg := "Client Error"
	switch {
	case statusCode >= http.StatusInternalServerError:
		msg = "Internal Server Error"
	case statusCode == http.StatusNotFound:
		msg = "Not Found"
	}
	span.SetStatus(codes.Error, msg)
	span.SetAttributes(attribute.Int("http.status_code", statusCode))
}
