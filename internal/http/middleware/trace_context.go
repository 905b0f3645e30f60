package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/platewise/platewise-backend/internal/pkg/ctxutil"
)

const (
	headerTraceID   = "X-Trace-Id"
	headerRequestID = "X-Request-Id"

	// Inbound correlation ids longer than this are treated as junk.
	maxCorrelationIDLen = 64
)

// usableID accepts client-supplied correlation ids that are short and
// printable; anything else is discarded so log fields stay clean.
func usableID(raw string) (string, bool) {
	id := strings.TrimSpace(raw)
	if id == "" || len(id) > maxCorrelationIDLen {
		return "", false
	}
	for _, r := range id {
		if r <= ' ' || r > '~' {
			return "", false
		}
	}
	return id, true
}

// requestTraceID picks the trace id for a request. A valid inbound header
// wins, then an active otel span, then a fresh UUID.
func requestTraceID(c *gin.Context) string {
	if id, ok := usableID(c.GetHeader(headerTraceID)); ok {
		return id
	}
	if spanCtx := trace.SpanContextFromContext(c.Request.Context()); spanCtx.HasTraceID() {
		return spanCtx.TraceID().String()
	}
	return uuid.New().String()
}

// AttachTraceContext stamps every request with trace and request ids, stores
// them for downstream handlers and the request logger, and echoes them on the
// response so clients can correlate.
func AttachTraceContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID, ok := usableID(c.GetHeader(headerRequestID))
		if !ok {
			reqID = uuid.New().String()
		}
		traceID := requestTraceID(c)

		ctx := ctxutil.WithTraceData(c.Request.Context(), &ctxutil.TraceData{
			TraceID:   traceID,
			RequestID: reqID,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Set("trace_id", traceID)
		c.Set("request_id", reqID)
		c.Writer.Header().Set(headerTraceID, traceID)
		c.Writer.Header().Set(headerRequestID, reqID)
		c.Next()
	}
}
