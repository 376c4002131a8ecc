package handler

import (
	"context"
	"net/http"

	"chatbot-service/internal/chat"
	"chatbot-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ChatRequest is the body of POST /chat. Message is loosely typed so a
// missing or non-string value degrades to an empty message instead of a 400.
type ChatRequest struct {
	Message interface{} `json:"message"`
}

// ChatResponse is the body returned by POST /chat
type ChatResponse struct {
	Reply string `json:"reply"`
}

// Replier produces the chatbot answer for one message
type Replier interface {
	Reply(ctx context.Context, message string) (chat.Reply, error)
}

// ChatHandler serves the chat endpoint
type ChatHandler struct {
	replier Replier
}

func NewChatHandler(replier Replier) *ChatHandler {
	return &ChatHandler{replier: replier}
}

// Chat answers a free-text message
func (h *ChatHandler) Chat(c echo.Context) error {
	log := logger.FromContext(c)

	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Unreadable chat request, treating as empty message", zap.Error(err))
		req.Message = nil
	}

	message, ok := req.Message.(string)
	if !ok && req.Message != nil {
		log.Warn("Non-string message field, treating as empty message")
	}

	reply, err := h.replier.Reply(c.Request().Context(), message)
	if err != nil {
		log.Error("Failed to process chat message",
			zap.Int("message_length", len(message)),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to process message",
		})
	}

	log.Info("Chat message answered",
		zap.String("intent", reply.Intent.String()),
		zap.String("entity", reply.Entity))
	return c.JSON(http.StatusOK, ChatResponse{Reply: reply.Text})
}
