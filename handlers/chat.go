// File: handlers/chat.go
package handlers

import (
	"errors"
	"net/http"

	"innoviahub/models"
	"innoviahub/services/assistant"
	"innoviahub/services/booking"
	"innoviahub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatRequest is the inbound chat payload.
type ChatRequest struct {
	Question string `json:"question" binding:"required"`
}

// ConfirmActionRequest resolves the caller's pending proposal.
type ConfirmActionRequest struct {
	Confirm bool `json:"confirm"`
}

// ChatHandler exposes the conversational booking endpoints.
type ChatHandler struct {
	Actions   booking.ActionService
	Assistant assistant.Service
	History   *assistant.RedisHistoryStore
	Logger    *zap.Logger
}

func NewChatHandler(actions booking.ActionService, assistantSvc assistant.Service, history *assistant.RedisHistoryStore, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{Actions: actions, Assistant: assistantSvc, History: history, Logger: logger}
}

func currentUserID(c *gin.Context) (string, bool) {
	val, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	userID, ok := val.(string)
	return userID, ok && userID != ""
}

// Chat handles POST /api/chat: append the question to the history, extract
// one structured intent and dispatch it.
func (h *ChatHandler) Chat(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	ctx := c.Request.Context()

	history, err := h.History.Get(ctx, userID)
	if err != nil {
		// A lost history degrades reply quality but must not block booking.
		h.Logger.Warn("Failed to load conversation history", zap.String("userID", userID), zap.Error(err))
		history = &models.Conversation{}
	}
	history.Append("user", req.Question)

	intent, err := h.Assistant.ExtractIntent(ctx, history)
	if err != nil {
		h.Logger.Error("Intent extraction failed", zap.String("userID", userID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "AI service unavailable", err.Error())
		return
	}

	resp, err := h.Actions.Dispatch(ctx, userID, intent, history)
	if err != nil {
		h.Logger.Error("Failed to dispatch intent", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process action", "details": err.Error()})
		return
	}

	if err := h.History.Save(ctx, userID, history); err != nil {
		h.Logger.Warn("Failed to save conversation history", zap.String("userID", userID), zap.Error(err))
	}

	c.JSON(http.StatusOK, resp)
}

// Confirm handles POST /api/chat/confirm: commit or discard the caller's
// pending action.
func (h *ChatHandler) Confirm(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req ConfirmActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	ctx := c.Request.Context()

	history, err := h.History.Get(ctx, userID)
	if err != nil {
		h.Logger.Warn("Failed to load conversation history", zap.String("userID", userID), zap.Error(err))
		history = &models.Conversation{}
	}

	resp, err := h.Actions.Confirm(ctx, userID, req.Confirm, history)
	if errors.Is(err, booking.ErrNoPendingAction) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No pending action found."})
		return
	}
	if err != nil {
		h.Logger.Error("Failed to resolve pending action", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process action", "details": err.Error()})
		return
	}

	history.Append("assistant", resp.Message)
	if err := h.History.Save(ctx, userID, history); err != nil {
		h.Logger.Warn("Failed to save conversation history", zap.String("userID", userID), zap.Error(err))
	}

	c.JSON(http.StatusOK, resp)
}
