package api

import (
	"net/http"

	"github.com/Rama-lab79/Chatbot-AI/ai"
	"github.com/Rama-lab79/Chatbot-AI/internal/models"
	"github.com/Rama-lab79/Chatbot-AI/internal/service"
	"github.com/Rama-lab79/Chatbot-AI/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ChatHandler handles conversation endpoints. All routes require a resolved
// user identity from the JWT middleware.
type ChatHandler struct {
	service *service.ChatService
	logger  *logger.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(service *service.ChatService, logger *logger.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the chat routes on an authenticated group.
func (h *ChatHandler) RegisterRoutes(group *gin.RouterGroup) {
	chat := group.Group("/chat")
	{
		chat.POST("", h.SendMessage)
		chat.GET("/today", h.Today)
		chat.DELETE("/today", h.ClearToday)
		chat.POST("/summary", h.GenerateSummary)
	}
}

// SendMessage processes one conversation turn and returns both sides of the
// exchange. Validation failures are reported with field-level messages;
// anything after that surfaces as a single generic failure.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}
	if req.Mode == "" {
		req.Mode = ai.ModeListening
	}

	userMessage, aiMessage, err := h.service.HandleTurn(c.Request.Context(), currentUserID(c), req.Message, req.Mode)
	if err != nil {
		switch err {
		case service.ErrEmptyMessage:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		case service.ErrInvalidMode:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Mode must be listening or solution"})
		default:
			h.logger.Error("Chat turn failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process message"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userMessage": userMessage,
		"aiResponse":  aiMessage,
	})
}

// Today returns today's conversation in chronological order.
func (h *ChatHandler) Today(c *gin.Context) {
	chats, err := h.service.TodayMessages(currentUserID(c))
	if err != nil {
		h.logger.Error("Failed to get today's chats", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get chats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"chats": chats})
}

// ClearToday purges today's conversation for the caller.
func (h *ChatHandler) ClearToday(c *gin.Context) {
	if err := h.service.ClearToday(currentUserID(c)); err != nil {
		h.logger.Error("Failed to delete today's chats", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete chats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Today's chat deleted"})
}

// GenerateSummary builds and persists the end-of-day summary. A completion
// failure still answers 200 with a null summary; only a missing check-in or a
// store failure is an error.
func (h *ChatHandler) GenerateSummary(c *gin.Context) {
	checkin, err := h.service.GenerateSummary(c.Request.Context(), currentUserID(c))
	if err != nil {
		switch err {
		case service.ErrNoCheckinToday:
			c.JSON(http.StatusNotFound, gin.H{"error": "No check-in found for today"})
		default:
			h.logger.Error("Summary generation failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate summary"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Summary generated",
		"summary": checkin.Summary,
	})
}
