package logger

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	// RequestIDKey is both the header name and the echo context key for the request ID
	RequestIDKey = "X-Request-ID"

	contextLoggerKey = "logger"
)

// WithLogger stores a request scoped logger on the echo context
func WithLogger(c echo.Context, l *zap.Logger) {
	c.Set(contextLoggerKey, l)
}

// FromContext retrieves the logger from echo.Context with the request ID
func FromContext(c echo.Context) *zap.Logger {
	if l, ok := c.Get(contextLoggerKey).(*zap.Logger); ok {
		return l
	}

	requestID, ok := c.Get(RequestIDKey).(string)
	if !ok {
		requestID = c.Request().Header.Get(RequestIDKey)
		if requestID == "" {
			requestID = "unknown"
		}
	}

	return GetLogger().With(zap.String("request_id", requestID))
}
