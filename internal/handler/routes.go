package handler

import (
	"chatbot-service/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts the public endpoints
func RegisterRoutes(e *echo.Echo, chatHandler *ChatHandler) {
	e.GET("/", Hello)
	e.GET("/health", Hello)

	// Prometheus metrics endpoint
	e.GET("/metrics", echo.WrapHandler(metrics.GetPrometheusHandler()))

	e.POST("/chat", chatHandler.Chat)
}
