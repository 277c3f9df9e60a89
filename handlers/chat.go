package handlers

import (
	"net/http"

	"tabletalk/models"
	ai "tabletalk/services/intelligence"
	"tabletalk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AssistantHandler exposes the conversational assistant over HTTP.
type AssistantHandler struct {
	Service ai.AssistantService
}

func NewAssistantHandler(svc ai.AssistantService) *AssistantHandler {
	return &AssistantHandler{Service: svc}
}

// ChatHandler handles one conversational turn: {session_id?, message} in,
// {response, session_id} out. An absent or unseen session_id starts a fresh
// session.
func (h *AssistantHandler) ChatHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	resp, err := h.Service.Chat(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		logger.Error("Chat processing failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to process message", err.Error())
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HealthHandler reports liveness plus the latest dependency snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"service":      "booking-assistant",
		"dependencies": utils.GetHealthStatus(),
	})
}
