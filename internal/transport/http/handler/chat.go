package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/peoplecare/hrportal/internal/transport/http/middleware"
)

type chatUsecaser interface {
	Ask(ctx context.Context, question, employeeID string) (string, error)
}

type ChatHandler struct {
	chat   chatUsecaser
	logger *slog.Logger
}

func NewChatHandler(chat chatUsecaser, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{chat: chat, logger: logger.With("component", "chat_handler")}
}

type askRequest struct {
	Question string `json:"question" binding:"required"`
}

// POST /chat/ask. The employee ID always comes from the caller's access
// token, never from the request body.
func (h *ChatHandler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.chat.Ask(c.Request.Context(), req.Question, c.GetString(middleware.CtxEmployeeID))
	if err != nil {
		h.logger.Error("chat ask", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "answer": answer})
}
