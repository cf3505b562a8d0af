package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/ClairKirsch/raichi/internal/core/domain"
)

const (
	// TraceIDHeader is the HTTP header name for trace ID
	TraceIDHeader = "X-Trace-ID"
	// TraceIDKey is the context key for trace ID
	TraceIDKey = "trace_id"
	// CurrentUserKey is the context key for the authenticated user
	CurrentUserKey = "current_user"
)

// EnrichContext adds a trace ID to each request. When the tracing middleware
// has already started a span, its trace ID wins so log lines and the response
// header correlate with exported spans.
func EnrichContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceIDHeader)
		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			traceID = sc.TraceID().String()
		}
		if traceID == "" {
			traceID = uuid.NewString()
		}

		c.Set(TraceIDKey, traceID)
		c.Header(TraceIDHeader, traceID)

		c.Next()
	}
}

// GetTraceID retrieves the trace ID from the context.
func GetTraceID(c *gin.Context) string {
	if traceID, exists := c.Get(TraceIDKey); exists {
		if id, ok := traceID.(string); ok {
			return id
		}
	}
	return ""
}

// CurrentUser retrieves the authenticated user placed by RequireAuth.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	val, exists := c.Get(CurrentUserKey)
	if !exists {
		return domain.User{}, false
	}
	user, ok := val.(domain.User)
	return user, ok
}
