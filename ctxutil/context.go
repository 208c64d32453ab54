package ctxutil

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ctxKey keeps values set by this package from colliding with other packages.
type ctxKey string

const ginContextKey ctxKey = "gin_context"

const (
	// TraceIDKey is the log field and context key carrying the request trace ID.
	TraceIDKey   = "trace_id"
	adminIDKey   = "admin_id"
	adminNameKey = "admin_username"
)

// WithGinContext returns a context.Context that embeds the *gin.Context.
func WithGinContext(ctx context.Context, c *gin.Context) context.Context {
	return context.WithValue(ctx, ginContextKey, c)
}

// GetGinContext extracts *gin.Context from context.Context if it exists.
func GetGinContext(ctx context.Context) (*gin.Context, bool) {
	if ctx == nil {
		return nil, false
	}
	if c, ok := ctx.Value(ginContextKey).(*gin.Context); ok {
		return c, ok
	}
	return nil, false
}

// GetValue retrieves a value from the context, looking at the gin keys first.
func GetValue(ctx context.Context, key string) any {
	if ctx == nil {
		return nil
	}
	if c, ok := GetGinContext(ctx); ok {
		if val, exists := c.Get(key); exists {
			return val
		}
	}
	return ctx.Value(ctxKey(key))
}

// SetValue sets a value to the context.
func SetValue(ctx context.Context, key string, val any) context.Context {
	if c, ok := GetGinContext(ctx); ok {
		c.Set(key, val)
	}
	return context.WithValue(ctx, ctxKey(key), val)
}

// GetTraceID gets the trace ID from the context.
func GetTraceID(ctx context.Context) string {
	if traceID, ok := GetValue(ctx, TraceIDKey).(string); ok {
		return traceID
	}
	return ""
}

// SetTraceID sets the trace ID on the context.
func SetTraceID(ctx context.Context, traceID string) context.Context {
	return SetValue(ctx, TraceIDKey, traceID)
}

// EnsureTraceID ensures that a trace ID exists in the context.
func EnsureTraceID(ctx context.Context) (context.Context, string) {
	if traceID := GetTraceID(ctx); traceID != "" {
		return ctx, traceID
	}
	traceID := uuid.NewString()
	return SetTraceID(ctx, traceID), traceID
}

// SetAdmin records the authenticated admin on the context.
func SetAdmin(ctx context.Context, id int64, username string) context.Context {
	ctx = SetValue(ctx, adminIDKey, id)
	return SetValue(ctx, adminNameKey, username)
}

// GetAdminID returns the authenticated admin ID, or 0.
func GetAdminID(ctx context.Context) int64 {
	if id, ok := GetValue(ctx, adminIDKey).(int64); ok {
		return id
	}
	return 0
}

// GetAdminUsername returns the authenticated admin username, or "".
func GetAdminUsername(ctx context.Context) string {
	if name, ok := GetValue(ctx, adminNameKey).(string); ok {
		return name
	}
	return ""
}
