package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"swasthyam/internal/repository"
	"swasthyam/internal/service/assistant"
)

type ChatHandler struct {
	assistant *assistant.Service
	users     *repository.UserRepository
	logger    *zap.Logger
}

func NewChatHandler(assistantService *assistant.Service, users *repository.UserRepository, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{assistant: assistantService, users: users, logger: logger}
}

// Ask handles POST /chat
func (h *ChatHandler) Ask(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req struct {
		Question  string `json:"question" binding:"required,max=2000"`
		SessionID string `json:"session_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please enter a question"})
		return
	}

	sessionID := uuid.New()
	if req.SessionID != "" {
		parsed, err := uuid.Parse(req.SessionID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session_id"})
			return
		}
		sessionID = parsed
	}

	userName := ""
	if user, err := h.users.FindByID(c.Request.Context(), userID); err == nil {
		userName = user.Username
	}

	answer, err := h.assistant.Ask(c.Request.Context(), userID, sessionID, userName, req.Question)
	if err != nil {
		h.logger.Error("Ask failed", zap.Int("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to answer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"chat_id":    answer.Message.ID,
		"session_id": sessionID.String(),
		"answer":     answer.Message.Answer,
		"source":     answer.Source,
	})
}

// History handles GET /chat/history?limit=
func (h *ChatHandler) History(c *gin.Context) {
	userID := c.GetInt("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	messages, err := h.assistant.History(c.Request.Context(), userID, limit)
	if err != nil {
		h.logger.Error("History failed", zap.Int("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// Rate handles POST /chat/:id/rate
func (h *ChatHandler) Rate(c *gin.Context) {
	userID := c.GetInt("user_id")
	chatID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req struct {
		Helpful *bool `json:"helpful" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.assistant.Rate(c.Request.Context(), chatID, userID, *req.Helpful); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
			return
		}
		h.logger.Error("Rate failed", zap.Int("chat_id", chatID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rate"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
